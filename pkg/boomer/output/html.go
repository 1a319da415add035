package output

import (
	"html/template"
	"io"

	"github.com/marmidr/boomer/pkg/boomer/models"
)

var htmlReport = template.Must(template.New("report").Parse(`<html>
<head>
<meta charset="utf-8">
<style>
h3 { color: DarkSlateGray; }
h5 { color: DimGray; }
pre { font-family: Consolas, monospace; font-size: 80%; }
.bom-only { color: Crimson; }
.changed { color: DarkOrange; font-weight: bold; }
</style>
</head>
<body>
<h3>Cross-check report for: <em>{{.Project}}</em></h3>
{{- range .Sections}}
<h5>{{.Header}}</h5>
<pre>
{{- range .Lines}}
{{if or .BOM .PnP -}}
{{.Label}}: BOM='{{range .BOM}}<span class="{{.Class}}">{{.Text}}</span>{{end}}', PnP='{{range .PnP}}<span class="{{.Class}}">{{.Text}}</span>{{end}}'
{{- else -}}
{{.Label}}: {{.Text}}
{{- end}}
{{- end}}
</pre>
{{- end}}
</body>
</html>
`))

// WriteHTML writes result as an HTML page. Comment mismatches are
// highlighted span by span.
func WriteHTML(w io.Writer, project string, result *models.Result) error {
	return htmlReport.Execute(w, struct {
		Project  string
		Sections []section
	}{
		Project:  project,
		Sections: buildSections(result),
	})
}
