package inventory_test

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kurihiro0119/github-repo-inventory/internal/domain"
	"github.com/kurihiro0119/github-repo-inventory/internal/inventory"
)

func reposNamed(n int) []*domain.Repository {
	repos := make([]*domain.Repository, n)
	for i := range repos {
		repos[i] = sampleRepo(fmt.Sprintf("repo-%02d", i))
	}
	return repos
}

func TestFetchOrg(t *testing.T) {
	t.Parallel()

	t.Run("should keep listing order regardless of completion order", func(t *testing.T) {
		t.Parallel()

		// given
		repos := reposNamed(25)
		coll := healthyCollector()
		coll.ListRepositoriesFunc = func(context.Context, string) ([]*domain.Repository, error) {
			return repos, nil
		}
		coll.ListBranchesFunc = func(_ context.Context, _ string, repo string) ([]string, error) {
			// earlier repositories finish last
			var idx int
			_, _ = fmt.Sscanf(repo, "repo-%d", &idx)
			time.Sleep(time.Duration(25-idx) * time.Millisecond)
			return []string{repo}, nil
		}
		fetcher := inventory.NewFetcher(coll, inventory.WithLogger(quietLogger()))

		// when
		records := fetcher.FetchOrg(context.Background(), "acme")

		// then
		require.Len(t, records, len(repos))
		for i, record := range records {
			assert.Equal(t, repos[i].Name, record.Repository)
			assert.Equal(t, repos[i].Name, record.Branches)
		}
	})

	t.Run("should never run more workers than configured", func(t *testing.T) {
		t.Parallel()

		// given
		var inFlight, peak atomic.Int32
		coll := healthyCollector()
		coll.ListRepositoriesFunc = func(context.Context, string) ([]*domain.Repository, error) {
			return reposNamed(30), nil
		}
		coll.ListBranchesFunc = func(context.Context, string, string) ([]string, error) {
			n := inFlight.Add(1)
			for {
				old := peak.Load()
				if n <= old || peak.CompareAndSwap(old, n) {
					break
				}
			}
			time.Sleep(5 * time.Millisecond)
			inFlight.Add(-1)
			return []string{"main"}, nil
		}
		fetcher := inventory.NewFetcher(coll, inventory.WithWorkers(3), inventory.WithLogger(quietLogger()))

		// when
		records := fetcher.FetchOrg(context.Background(), "acme")

		// then
		assert.Len(t, records, 30)
		assert.LessOrEqual(t, peak.Load(), int32(3))
		assert.Greater(t, peak.Load(), int32(0))
	})

	t.Run("should report progress once per repository", func(t *testing.T) {
		t.Parallel()

		// given
		coll := healthyCollector()
		coll.ListRepositoriesFunc = func(context.Context, string) ([]*domain.Repository, error) {
			return reposNamed(12), nil
		}
		var mu sync.Mutex
		var seen []int
		fetcher := inventory.NewFetcher(coll,
			inventory.WithLogger(quietLogger()),
			inventory.WithProgress(func(org, _ string, done, total int) {
				mu.Lock()
				defer mu.Unlock()
				assert.Equal(t, "acme", org)
				assert.Equal(t, 12, total)
				seen = append(seen, done)
			}),
		)

		// when
		fetcher.FetchOrg(context.Background(), "acme")

		// then
		require.Len(t, seen, 12)
		for i, done := range seen {
			assert.Equal(t, i+1, done)
		}
	})

	t.Run("should log and return nothing when listing fails", func(t *testing.T) {
		t.Parallel()

		// given
		logger, hook := test.NewNullLogger()
		fetcher := inventory.NewFetcher(&stubCollector{}, inventory.WithLogger(logger))

		// when
		records := fetcher.FetchOrg(context.Background(), "ghost")

		// then
		assert.Empty(t, records)
		require.NotNil(t, hook.LastEntry())
		assert.Equal(t, logrus.ErrorLevel, hook.LastEntry().Level)
		assert.Equal(t, "Error fetching repos for org ghost: stub failure", hook.LastEntry().Message)
	})

	t.Run("should return an empty slice for an organization without repositories", func(t *testing.T) {
		t.Parallel()

		coll := healthyCollector()
		coll.ListRepositoriesFunc = func(context.Context, string) ([]*domain.Repository, error) {
			return nil, nil
		}
		fetcher := inventory.NewFetcher(coll, inventory.WithLogger(quietLogger()))

		assert.Empty(t, fetcher.FetchOrg(context.Background(), "acme"))
	})
}

func TestRun(t *testing.T) {
	t.Parallel()

	// given
	coll := healthyCollector()
	coll.ListRepositoriesFunc = func(_ context.Context, org string) ([]*domain.Repository, error) {
		switch org {
		case "acme":
			return []*domain.Repository{sampleRepo("web"), sampleRepo("api")}, nil
		case "globex":
			return []*domain.Repository{{Org: "globex", Name: "core", DefaultBranch: "main"}}, nil
		default:
			return nil, errStub
		}
	}
	fetcher := inventory.NewFetcher(coll, inventory.WithLogger(quietLogger()))

	// when
	records := fetcher.Run(context.Background(), []string{"acme", "broken", "globex"})

	// then
	require.Len(t, records, 3)
	assert.Equal(t, []string{"acme", "acme", "globex"}, []string{records[0].Org, records[1].Org, records[2].Org})
	assert.Equal(t, []string{"web", "api", "core"}, []string{records[0].Repository, records[1].Repository, records[2].Repository})
	for _, record := range records {
		assert.NotEqual(t, "broken", record.Org)
	}
}

func TestCollect(t *testing.T) {
	t.Parallel()

	// given
	fetcher := inventory.NewFetcher(&stubCollector{}, inventory.WithLogger(quietLogger()))

	// when
	inv := fetcher.Collect(context.Background(), []string{"ghost"}, "https://api.github.com")

	// then
	assert.NotEmpty(t, inv.ID)
	assert.Equal(t, []string{"ghost"}, inv.Orgs)
	assert.Equal(t, "https://api.github.com", inv.BaseURL)
	assert.NotNil(t, inv.Records)
	assert.Empty(t, inv.Records)
	assert.False(t, inv.CreatedAt.IsZero())
}
