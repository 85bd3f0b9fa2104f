package aggregator

import (
	"context"
	"sort"
	"strings"

	"github.com/kurihiro0119/github-repo-inventory/internal/domain"
	"github.com/kurihiro0119/github-repo-inventory/internal/storage"
)

// DefaultTopExtensions is the number of extensions kept in a summary
const DefaultTopExtensions = 10

// Aggregator defines the interface for summarizing inventories
type Aggregator interface {
	// Summarize aggregates the records of an in-memory inventory
	Summarize(inv *domain.Inventory) *domain.Summary

	// GetInventorySummary loads a stored inventory and summarizes it
	GetInventorySummary(ctx context.Context, id string) (*domain.Summary, error)
}

// aggregator implements the Aggregator interface
type aggregator struct {
	storage storage.Storage
	topN    int
}

// NewAggregator creates a new aggregator. storage may be nil when only
// in-memory inventories are summarized.
func NewAggregator(storage storage.Storage) Aggregator {
	return &aggregator{
		storage: storage,
		topN:    DefaultTopExtensions,
	}
}

// Summarize aggregates the records of an in-memory inventory
func (a *aggregator) Summarize(inv *domain.Inventory) *domain.Summary {
	summary := &domain.Summary{
		InventoryID:   inv.ID,
		TotalRecords:  len(inv.Records),
		Orgs:          []domain.OrgSummary{},
		EmptyByColumn: make(map[string]int),
		TopExtensions: []domain.ExtensionCount{},
	}

	orgIndex := make(map[string]int)
	extCounts := make(map[string]int)
	columns := domain.Columns()

	for _, record := range inv.Records {
		idx, ok := orgIndex[record.Org]
		if !ok {
			idx = len(summary.Orgs)
			orgIndex[record.Org] = idx
			summary.Orgs = append(summary.Orgs, domain.OrgSummary{Org: record.Org})
		}
		summary.Orgs[idx].Repositories++

		degraded := false
		for i, value := range record.Values() {
			if value == domain.Sentinel {
				summary.EmptyByColumn[columns[i]]++
				degraded = true
			}
		}
		if degraded {
			summary.Orgs[idx].Degraded++
		}

		if record.Extensions != domain.Sentinel && record.Extensions != "" {
			for _, ext := range strings.Split(record.Extensions, ", ") {
				extCounts[ext]++
			}
		}
	}

	for ext, n := range extCounts {
		summary.TopExtensions = append(summary.TopExtensions, domain.ExtensionCount{Extension: ext, Repositories: n})
	}
	sort.Slice(summary.TopExtensions, func(i, j int) bool {
		x, y := summary.TopExtensions[i], summary.TopExtensions[j]
		if x.Repositories != y.Repositories {
			return x.Repositories > y.Repositories
		}
		return x.Extension < y.Extension
	})
	if len(summary.TopExtensions) > a.topN {
		summary.TopExtensions = summary.TopExtensions[:a.topN]
	}

	return summary
}

// GetInventorySummary loads a stored inventory and summarizes it
func (a *aggregator) GetInventorySummary(ctx context.Context, id string) (*domain.Summary, error) {
	inv, err := a.storage.GetInventory(ctx, id)
	if err != nil {
		return nil, err
	}

	records, err := a.storage.GetRecords(ctx, id)
	if err != nil {
		return nil, err
	}
	inv.Records = records

	return a.Summarize(inv), nil
}
