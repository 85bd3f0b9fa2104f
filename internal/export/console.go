package export

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"

	"github.com/kurihiro0119/github-repo-inventory/internal/domain"
)

// TableExporter renders records as a terminal table
type TableExporter struct{}

// NewTableExporter creates a new terminal table exporter
func NewTableExporter() *TableExporter {
	return &TableExporter{}
}

// Export writes the table to w
func (e *TableExporter) Export(w io.Writer, records []domain.RepositoryRecord) error {
	table := newTable(w, domain.Columns())
	for _, r := range records {
		table.Append(r.Values())
	}
	table.Render()
	return nil
}

// WriteSummary renders an inventory summary as terminal tables
func WriteSummary(w io.Writer, summary *domain.Summary) {
	fmt.Fprintf(w, "\nInventory: %s (%d repositories)\n\n", summary.InventoryID, summary.TotalRecords)

	orgs := newTable(w, []string{"Organization", "Repositories", "Degraded"})
	for _, o := range summary.Orgs {
		orgs.Append([]string{o.Org, fmt.Sprintf("%d", o.Repositories), fmt.Sprintf("%d", o.Degraded)})
	}
	orgs.Render()

	fmt.Fprintln(w)
	fields := newTable(w, []string{"Field", "EMPTY"})
	for _, column := range domain.Columns() {
		fields.Append([]string{column, fmt.Sprintf("%d", summary.EmptyByColumn[column])})
	}
	fields.Render()

	if len(summary.TopExtensions) == 0 {
		return
	}
	fmt.Fprintln(w)
	exts := newTable(w, []string{"Extension", "Repositories"})
	for _, e := range summary.TopExtensions {
		exts.Append([]string{e.Extension, fmt.Sprintf("%d", e.Repositories)})
	}
	exts.Render()
}

// WriteInventories renders stored inventories without their records
func WriteInventories(w io.Writer, inventories []*domain.Inventory) {
	table := newTable(w, []string{"ID", "Created", "Organizations", "Base URL"})
	for _, inv := range inventories {
		table.Append([]string{
			inv.ID,
			inv.CreatedAt.Format("2006-01-02 15:04:05"),
			fmt.Sprintf("%v", inv.Orgs),
			inv.BaseURL,
		})
	}
	table.Render()
}

func newTable(w io.Writer, header []string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetAutoWrapText(false)
	return table
}
