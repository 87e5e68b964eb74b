package format

import (
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/ismailtasdelen/hackertarget/pkg/models"
)

type htmlFormatter struct{}

var htmlTmpl = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <title>HackerTarget Results</title>
  <style>
    body { font-family: 'Courier New', monospace; margin: 20px; background: #1e1e1e; color: #d4d4d4; }
    .container { max-width: 1200px; margin: 0 auto; }
    .header { background: #2d2d2d; padding: 20px; border-radius: 5px; margin-bottom: 20px; }
    .metadata { background: #252526; padding: 15px; border-radius: 5px; margin-bottom: 20px; }
    .data { background: #1e1e1e; padding: 20px; border: 1px solid #3e3e3e; border-radius: 5px; white-space: pre-wrap; }
    h1 { color: #4ec9b0; margin: 0; }
    .meta-key { color: #9cdcfe; font-weight: bold; }
    .meta-value { color: #ce9178; }
    .failed { color: #f14c4c; }
  </style>
</head>
<body>
  <div class="container">
    <div class="header"><h1>HackerTarget Results</h1></div>
    <div class="metadata">
{{- range $key, $value := .Metadata}}
      <div><span class="meta-key">{{$key}}:</span> <span class="meta-value">{{$value}}</span></div>
{{- end}}
    </div>
{{- if .Data}}
    <div class="data">{{.Data}}</div>
{{- end}}
{{- range .Results}}
    <div class="data{{if not .Success}} failed{{end}}"><span class="meta-key">{{.Target}}</span>
{{if .Success}}{{.Data}}{{else}}{{.Error}}{{end}}</div>
{{- end}}
  </div>
</body>
</html>
`))

type htmlContext struct {
	Metadata map[string]string
	Data     string
	Results  []models.BatchResult
}

func (f *htmlFormatter) Format(res *models.QueryResult) (string, error) {
	return renderHTML(htmlContext{
		Metadata: map[string]string{
			"tool":      res.Tool,
			"target":    res.Target,
			"timestamp": res.Timestamp.Format(time.RFC3339),
		},
		Data: res.Data,
	})
}

func (f *htmlFormatter) FormatBatch(results []models.BatchResult) (string, error) {
	return renderHTML(htmlContext{
		Metadata: map[string]string{
			"targets":   fmt.Sprintf("%d", len(results)),
			"timestamp": time.Now().Format(time.RFC3339),
		},
		Results: results,
	})
}

func renderHTML(ctx htmlContext) (string, error) {
	var b strings.Builder
	if err := htmlTmpl.Execute(&b, ctx); err != nil {
		return "", fmt.Errorf("render html: %w", err)
	}
	return b.String(), nil
}
