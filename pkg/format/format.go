// Package format renders query results as console, JSON, CSV, XML, or HTML.
package format

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/ismailtasdelen/hackertarget/pkg/models"
)

// Formatter renders single and batch query results.
type Formatter interface {
	Format(res *models.QueryResult) (string, error)
	FormatBatch(results []models.BatchResult) (string, error)
}

// New returns the formatter for a kind: console, json, csv, xml, or html.
func New(kind string, colored bool) (Formatter, error) {
	switch strings.ToLower(kind) {
	case "console":
		return &consoleFormatter{colored: colored}, nil
	case "json":
		return &jsonFormatter{}, nil
	case "csv":
		return &csvFormatter{}, nil
	case "xml":
		return &xmlFormatter{}, nil
	case "html":
		return &htmlFormatter{}, nil
	}
	return nil, fmt.Errorf("unknown output format: %s (available: console, json, csv, xml, html)", kind)
}

type jsonFormatter struct{}

type jsonEnvelope struct {
	Timestamp time.Time           `json:"timestamp"`
	Metadata  map[string]string   `json:"metadata,omitempty"`
	Data      string              `json:"data,omitempty"`
	Results   []models.BatchResult `json:"results,omitempty"`
}

func (f *jsonFormatter) Format(res *models.QueryResult) (string, error) {
	out, err := json.MarshalIndent(jsonEnvelope{
		Timestamp: res.Timestamp,
		Metadata: map[string]string{
			"tool":   res.Tool,
			"target": res.Target,
		},
		Data: res.Data,
	}, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal json: %w", err)
	}
	return string(out), nil
}

func (f *jsonFormatter) FormatBatch(results []models.BatchResult) (string, error) {
	out, err := json.MarshalIndent(jsonEnvelope{
		Timestamp: time.Now(),
		Results:   results,
	}, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal json: %w", err)
	}
	return string(out), nil
}

type csvFormatter struct{}

func (f *csvFormatter) Format(res *models.QueryResult) (string, error) {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "# tool: %s\n# target: %s\n", res.Tool, res.Target)

	w := csv.NewWriter(&buf)
	for _, line := range strings.Split(strings.TrimSpace(res.Data), "\n") {
		w.Write(splitRecord(line))
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("write csv: %w", err)
	}
	return buf.String(), nil
}

func (f *csvFormatter) FormatBatch(results []models.BatchResult) (string, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	w.Write([]string{"target", "success", "result"})
	for _, r := range results {
		out := r.Data
		if !r.Success {
			out = r.Error
		}
		w.Write([]string{r.Target, fmt.Sprintf("%t", r.Success), out})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("write csv: %w", err)
	}
	return buf.String(), nil
}

// splitRecord breaks an API response line on its most likely delimiter.
func splitRecord(line string) []string {
	switch {
	case strings.Contains(line, ","):
		return strings.Split(line, ",")
	case strings.Contains(line, "\t"):
		return strings.Split(line, "\t")
	case strings.Contains(line, ":"):
		parts := strings.SplitN(line, ":", 2)
		return []string{strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])}
	default:
		return []string{strings.TrimSpace(line)}
	}
}
