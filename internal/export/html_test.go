package export_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"

	"github.com/kurihiro0119/github-repo-inventory/internal/domain"
	"github.com/kurihiro0119/github-repo-inventory/internal/export"
)

// parsedTable holds the header and body cells of the first table in a document
type parsedTable struct {
	tables int
	header [][]string
	body   [][]string
}

func parseTable(t *testing.T, doc string) parsedTable {
	t.Helper()

	root, err := html.Parse(strings.NewReader(doc))
	require.NoError(t, err)

	var out parsedTable
	var section string
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "table":
				out.tables++
			case "thead", "tbody":
				section = n.Data
			case "tr":
				var cells []string
				for c := n.FirstChild; c != nil; c = c.NextSibling {
					if c.Type == html.ElementNode && (c.Data == "th" || c.Data == "td") {
						var text string
						if c.FirstChild != nil {
							text = c.FirstChild.Data
						}
						cells = append(cells, text)
					}
				}
				if section == "thead" {
					out.header = append(out.header, cells)
				} else {
					out.body = append(out.body, cells)
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return out
}

func sampleRecords() []domain.RepositoryRecord {
	return []domain.RepositoryRecord{
		{
			Org:            "acme",
			Repository:     "web",
			URL:            "https://github.com/acme/web",
			DefaultBranch:  "main",
			Branches:       "main, dev",
			LastCommitDate: "2024-03-01 10:20:30+00:00",
			Contributors:   "alice, bob",
			Emails:         "alice@example.com",
			Extensions:     "go, md",
		},
		domain.EmptyRecord(),
	}
}

func TestHTMLExporter(t *testing.T) {
	t.Parallel()

	t.Run("should write one header row and one row per record", func(t *testing.T) {
		t.Parallel()

		// given
		var buf bytes.Buffer

		// when
		err := export.NewHTMLExporter().Export(&buf, sampleRecords())

		// then
		require.NoError(t, err)
		table := parseTable(t, buf.String())
		assert.Equal(t, 1, table.tables)
		require.Len(t, table.header, 1)
		assert.Equal(t, domain.Columns(), table.header[0])
		require.Len(t, table.body, 2)
		assert.Equal(t, sampleRecords()[0].Values(), table.body[0])
		assert.Equal(t, domain.EmptyRecord().Values(), table.body[1])
	})

	t.Run("should keep the header for an empty record set", func(t *testing.T) {
		t.Parallel()

		// given
		var buf bytes.Buffer

		// when
		err := export.NewHTMLExporter().Export(&buf, nil)

		// then
		require.NoError(t, err)
		table := parseTable(t, buf.String())
		require.Len(t, table.header, 1)
		assert.Empty(t, table.body)
	})

	t.Run("should escape cell contents", func(t *testing.T) {
		t.Parallel()

		// given
		var buf bytes.Buffer
		record := domain.EmptyRecord()
		record.Repository = "<script>alert(1)</script>"

		// when
		err := export.NewHTMLExporter().Export(&buf, []domain.RepositoryRecord{record})

		// then
		require.NoError(t, err)
		assert.NotContains(t, buf.String(), "<script>")
		assert.Contains(t, buf.String(), "&lt;script&gt;")
	})

	t.Run("should match the dataframe table layout", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		require.NoError(t, export.NewHTMLExporter().Export(&buf, nil))

		assert.True(t, strings.HasPrefix(buf.String(), "<table border=\"1\" class=\"dataframe\">\n  <thead>\n    <tr style=\"text-align: right;\">\n      <th>Github Org Name</th>\n"))
		assert.True(t, strings.HasSuffix(buf.String(), "    </tr>\n  </thead>\n  <tbody>\n  </tbody>\n</table>\n"))
	})
}

func TestWriteFile(t *testing.T) {
	t.Parallel()

	t.Run("should create the report file", func(t *testing.T) {
		t.Parallel()

		// given
		path := filepath.Join(t.TempDir(), "report.html")

		// when
		err := export.WriteFile(path, export.NewHTMLExporter(), sampleRecords())

		// then
		require.NoError(t, err)
		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Len(t, parseTable(t, string(content)).body, 2)
	})

	t.Run("should fail for a missing directory", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "missing", "report.html")
		assert.Error(t, export.WriteFile(path, export.NewHTMLExporter(), nil))
	})
}
