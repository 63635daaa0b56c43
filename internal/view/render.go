package view

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
)

var widgetTemplate = template.Must(template.New("widget").Parse(`
{{- if not .Loaded -}}
<div class="dimmed light">Loading &hellip;</div>
{{- else -}}
<div>
<div class="center heading">{{.Category}}</div>
<div class="main center">
{{- range $i, $w := .Words}}
{{- if and $i $.Separator}}
<div class="word-separator">{{$.Separator}}</div>
{{- end}}
<div class="word-pair">{{$w.Flag}} {{$w.Word}}</div>
{{- end}}
</div>
{{- if .Countdown.Show}}
<div class="bar nostripes" style="width: {{.Countdown.BarWidth}};"><span{{if .Countdown.Color}} class="{{.Countdown.Band}}"{{end}} style="width: {{.Countdown.Percent}}%;{{if not .Countdown.Color}} opacity: {{printf "%.2f" .Countdown.Opacity}};{{end}}"></span></div>
{{- end}}
</div>
{{- end}}`))

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Lingo</title>
<link rel="stylesheet" href="/static/lingo.css">
</head>
<body>
<div id="lingo">{{.Widget}}</div>
<script>
setInterval(function () {
  fetch("/widget").then(function (r) { return r.text(); }).then(function (html) {
    document.getElementById("lingo").innerHTML = html;
  });
}, {{.RefreshMs}});
</script>
</body>
</html>
`))

// HTML renders the widget markup
func HTML(m Model) (string, error) {
	var buf bytes.Buffer
	if err := widgetTemplate.Execute(&buf, m); err != nil {
		return "", fmt.Errorf("render widget: %w", err)
	}
	return buf.String(), nil
}

// Text renders the widget as a plain-text card
func Text(m Model) string {
	if !m.Loaded {
		return "Loading …"
	}

	var b strings.Builder
	if m.Category != "" {
		b.WriteString(m.Category)
		b.WriteString("\n\n")
	}

	words := make([]string, 0, len(m.Words))
	for _, w := range m.Words {
		words = append(words, strings.TrimSpace(w.Flag+" "+w.Word))
	}
	separator := "\n"
	if m.Separator != "" {
		separator = " " + m.Separator + " "
	}
	b.WriteString(strings.Join(words, separator))
	return b.String()
}

// Page renders a standalone document that embeds the widget and refreshes it every refreshMs
func Page(m Model, refreshMs int) (string, error) {
	widget, err := HTML(m)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	data := struct {
		Widget    template.HTML
		RefreshMs int
	}{
		Widget:    template.HTML(widget),
		RefreshMs: refreshMs,
	}
	if err := pageTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render page: %w", err)
	}
	return buf.String(), nil
}
