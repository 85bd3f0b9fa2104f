package export

import (
	"html/template"
	"io"

	"github.com/kurihiro0119/github-repo-inventory/internal/domain"
)

var tableTemplate = template.Must(template.New("table").Parse(
	`<table border="1" class="dataframe">
  <thead>
    <tr style="text-align: right;">
{{- range .Columns}}
      <th>{{.}}</th>
{{- end}}
    </tr>
  </thead>
  <tbody>
{{- range .Rows}}
    <tr>
{{- range .}}
      <td>{{.}}</td>
{{- end}}
    </tr>
{{- end}}
  </tbody>
</table>
`))

// HTMLExporter renders records as a single HTML table with one header row
// and no index column
type HTMLExporter struct{}

// NewHTMLExporter creates a new HTML exporter
func NewHTMLExporter() *HTMLExporter {
	return &HTMLExporter{}
}

// Export writes the table to w
func (e *HTMLExporter) Export(w io.Writer, records []domain.RepositoryRecord) error {
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, r.Values())
	}

	return tableTemplate.Execute(w, struct {
		Columns []string
		Rows    [][]string
	}{
		Columns: domain.Columns(),
		Rows:    rows,
	})
}
