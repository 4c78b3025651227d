// Package render turns a resolved roadmap into a static HTML/CSS
// timeline. Positioning comes entirely from the grid package; this layer
// only translates column spans into CSS grid placements.
package render

import (
	"fmt"
	"html/template"
	"io"
	"os"
	"path/filepath"

	"github.com/calebhart/gantry/internal/domain"
)

const pageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Page.Title}} - {{.Page.Year}}</title>
<style>
  body {
    margin: 0;
    padding: 24px;
    background: {{.Theme.Colors.Background}};
    font-family: {{.Theme.Font.Family}};
    font-size: {{.Theme.Font.Size}}px;
    color: {{.Theme.Colors.MonthText}};
  }
  h1 { font-size: 20px; margin: 0 0 16px; }
  h2 { font-size: 15px; margin: {{.Theme.Layout.EpicGap}}px 0 6px; }
  .grid {
    display: grid;
    grid-template-columns: repeat(120, {{.Theme.Layout.ColumnWidth}}px);
    row-gap: 4px;
  }
  .months {
    height: {{.Theme.Layout.HeaderHeight}}px;
    border-bottom: 2px solid {{.Theme.Colors.GridLine}};
    margin-bottom: 8px;
  }
  .month {
    border-left: 1px solid {{.Theme.Colors.GridLine}};
    padding: 4px 0 0 6px;
    font-weight: 600;
  }
  .bar {
    height: {{.Theme.Layout.RowHeight}}px;
    line-height: {{.Theme.Layout.RowHeight}}px;
    border-radius: 4px;
    color: {{.Theme.Colors.BarText}};
    background: {{.Theme.Colors.BarDefault}};
    padding: 0 8px;
    overflow: hidden;
    white-space: nowrap;
    text-overflow: ellipsis;
  }
  .bar.at_risk { background: {{.Theme.Colors.AtRisk}}; }
  .bar.done { background: {{.Theme.Colors.Done}}; }
  .annotation {
    background: {{.Theme.Colors.Annotation}};
    border: 1px solid {{.Theme.Colors.GridLine}};
    border-radius: 4px;
    font-size: 11px;
    padding: 2px 6px;
  }
  .continues { font-size: 11px; opacity: 0.75; padding: 0 4px; }
</style>
</head>
<body>
<h1>{{.Page.Title}} - {{.Page.Year}}</h1>
<div class="grid months">
{{- range .Page.Months}}
  <div class="month" style="grid-column: {{.StartColumn}} / {{.EndColumn}};">{{.Label}}</div>
{{- end}}
</div>
{{- range .Page.Epics}}
<h2{{if .Color}} style="color: {{.Color}};"{{end}}>{{.Title}}</h2>
<div class="grid epic">
{{- range .Stories}}
  <div class="bar {{.Status}}" style="grid-column: {{.StartColumn}} / {{.EndColumn}};" title="{{.Title}}">
    {{- if .ContinuesLeft}}<span class="continues">&larr; {{.ContinuesLeft}}</span>{{end -}}
    {{.Title}}
    {{- if .ContinuesRight}}<span class="continues">{{.ContinuesRight}} &rarr;</span>{{end -}}
  </div>
  {{- with .Annotation}}
  <div class="annotation" style="grid-column: {{.Column}} / span {{.Width}};">
    {{- range $i, $item := .Items}}{{if $i}} &middot; {{end}}{{$item}}{{end -}}
  </div>
  {{- end}}
{{- end}}
</div>
{{- end}}
</body>
</html>
`

type templateData struct {
	Page  Page
	Theme Theme
}

var tmpl = template.Must(template.New("roadmap").Parse(pageTemplate))

// Render writes the HTML timeline for rm to w.
func Render(w io.Writer, rm *domain.Roadmap, theme Theme, opts Options) error {
	page := BuildPage(rm, opts)
	if err := tmpl.Execute(w, templateData{Page: page, Theme: theme}); err != nil {
		return fmt.Errorf("executing roadmap template: %w", err)
	}
	return nil
}

// RenderToFile renders rm into dir/<name>.html, creating dir as needed,
// and returns the written path.
func RenderToFile(dir, name string, rm *domain.Roadmap, theme Theme, opts Options) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}
	path := filepath.Join(dir, name+".html")
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating output file: %w", err)
	}
	defer f.Close()
	if err := Render(f, rm, theme, opts); err != nil {
		return "", err
	}
	return path, nil
}
