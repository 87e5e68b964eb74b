package format

import (
	"net/netip"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ismailtasdelen/hackertarget/pkg/models"
)

type consoleFormatter struct {
	colored bool
}

var (
	ruleStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	titleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	keyStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	valueStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	ipStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	domainStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("13"))
	failedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
)

const rule = "============================================================"

func (f *consoleFormatter) style(s lipgloss.Style, text string) string {
	if !f.colored {
		return text
	}
	return s.Render(text)
}

func (f *consoleFormatter) Format(res *models.QueryResult) (string, error) {
	var parts []string

	parts = append(parts,
		f.style(ruleStyle, rule),
		f.style(titleStyle, "QUERY INFORMATION"),
		f.style(ruleStyle, rule),
		f.style(keyStyle, "tool:")+" "+f.style(valueStyle, res.Tool),
		f.style(keyStyle, "target:")+" "+f.style(valueStyle, res.Target),
	)
	if res.Cached {
		parts = append(parts, f.style(keyStyle, "cached:")+" "+f.style(valueStyle, "true"))
	}

	parts = append(parts,
		"",
		f.style(ruleStyle, rule),
		f.style(titleStyle, "RESULTS"),
		f.style(ruleStyle, rule),
		"",
		f.highlight(res.Data),
		"",
		f.style(ruleStyle, rule),
	)
	return strings.Join(parts, "\n"), nil
}

func (f *consoleFormatter) FormatBatch(results []models.BatchResult) (string, error) {
	var parts []string
	for _, r := range results {
		if r.Success {
			parts = append(parts,
				f.style(successStyle, "✔ "+r.Target),
				f.highlight(r.Data),
				"")
		} else {
			parts = append(parts,
				f.style(failedStyle, "✘ "+r.Target+": "+r.Error),
				"")
		}
	}
	return strings.Join(parts, "\n"), nil
}

// highlight colors result lines the way the interactive output does:
// addresses blue, domains magenta, header-style lines as key/value.
func (f *consoleFormatter) highlight(data string) string {
	if !f.colored {
		return data
	}

	lines := strings.Split(data, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		switch {
		case looksLikeIP(line):
			line = ipStyle.Render(line)
		case strings.Contains(line, ".com") || strings.Contains(line, ".net") || strings.Contains(line, ".org"):
			line = domainStyle.Render(line)
		case strings.Contains(line, ":") && !strings.HasPrefix(line, " "):
			parts := strings.SplitN(line, ":", 2)
			line = keyStyle.Render(parts[0]+":") + valueStyle.Render(parts[1])
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}

func looksLikeIP(line string) bool {
	for _, field := range strings.Fields(line) {
		if _, err := netip.ParseAddr(strings.Trim(field, ",")); err == nil {
			return true
		}
	}
	return false
}
