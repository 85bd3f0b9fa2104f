package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kurihiro0119/github-repo-inventory/internal/domain"
)

func TestEmptyRecord(t *testing.T) {
	t.Parallel()

	for _, value := range domain.EmptyRecord().Values() {
		assert.Equal(t, domain.Sentinel, value)
	}
}

func TestValuesFollowColumns(t *testing.T) {
	t.Parallel()

	record := domain.RepositoryRecord{
		Org:            "acme",
		Repository:     "web",
		URL:            "https://github.com/acme/web",
		DefaultBranch:  "main",
		Branches:       "main, dev",
		LastCommitDate: "2024-03-01 10:20:30+00:00",
		Contributors:   "alice",
		Emails:         "alice@example.com",
		Extensions:     "go",
	}

	columns := domain.Columns()
	values := record.Values()

	assert.Len(t, values, len(columns))
	assert.Equal(t, domain.ColumnOrg, columns[0])
	assert.Equal(t, "acme", values[0])
	assert.Equal(t, domain.ColumnExtensions, columns[len(columns)-1])
	assert.Equal(t, "go", values[len(values)-1])
}
