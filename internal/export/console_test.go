package export_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kurihiro0119/github-repo-inventory/internal/domain"
	"github.com/kurihiro0119/github-repo-inventory/internal/export"
)

func TestTableExporter(t *testing.T) {
	t.Parallel()

	// given
	var buf bytes.Buffer

	// when
	err := export.NewTableExporter().Export(&buf, sampleRecords())

	// then
	require.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, "GITHUB ORG NAME")
	assert.Contains(t, out, "https://github.com/acme/web")
	assert.Contains(t, out, domain.Sentinel)
}

func TestWriteSummary(t *testing.T) {
	t.Parallel()

	// given
	var buf bytes.Buffer
	summary := &domain.Summary{
		InventoryID:   "inv-1",
		TotalRecords:  2,
		Orgs:          []domain.OrgSummary{{Org: "acme", Repositories: 2, Degraded: 1}},
		EmptyByColumn: map[string]int{domain.ColumnEmails: 1},
		TopExtensions: []domain.ExtensionCount{{Extension: "go", Repositories: 2}},
	}

	// when
	export.WriteSummary(&buf, summary)

	// then
	out := buf.String()
	assert.Contains(t, out, "Inventory: inv-1 (2 repositories)")
	assert.Contains(t, out, "acme")
	assert.Contains(t, out, domain.ColumnEmails)
	assert.Contains(t, out, "go")
}

func TestWriteInventories(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	export.WriteInventories(&buf, []*domain.Inventory{{
		ID:        "inv-1",
		Orgs:      []string{"acme", "globex"},
		BaseURL:   "https://api.github.com",
		CreatedAt: time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
	}})

	assert.Contains(t, buf.String(), "inv-1")
	assert.Contains(t, buf.String(), "2024-03-01 10:00:00")
	assert.Contains(t, buf.String(), "[acme globex]")
}
