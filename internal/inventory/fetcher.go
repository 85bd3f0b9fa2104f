package inventory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/kurihiro0119/github-repo-inventory/internal/collector"
	"github.com/kurihiro0119/github-repo-inventory/internal/domain"
	apperrors "github.com/kurihiro0119/github-repo-inventory/internal/errors"
)

// DefaultWorkers is the number of repositories fetched concurrently per organization
const DefaultWorkers = 10

// ProgressCallback is a callback function for reporting progress within one organization
type ProgressCallback func(org, repo string, done, total int)

// Fetcher walks organizations sequentially and extracts their repositories
// with a bounded worker pool.
type Fetcher struct {
	collector  collector.Collector
	extractor  *Extractor
	workers    int
	logger     logrus.FieldLogger
	onProgress ProgressCallback
}

// Option configures a Fetcher
type Option func(*Fetcher)

// WithWorkers sets the pool width. Values below 1 are ignored.
func WithWorkers(n int) Option {
	return func(f *Fetcher) {
		if n > 0 {
			f.workers = n
		}
	}
}

// WithLogger sets the logger used for listing and sub-fetch failures
func WithLogger(logger logrus.FieldLogger) Option {
	return func(f *Fetcher) {
		f.logger = logger
	}
}

// WithProgress sets the progress callback. Calls are serialized.
func WithProgress(cb ProgressCallback) Option {
	return func(f *Fetcher) {
		f.onProgress = cb
	}
}

// NewFetcher creates a new fetcher
func NewFetcher(coll collector.Collector, opts ...Option) *Fetcher {
	f := &Fetcher{
		collector: coll,
		workers:   DefaultWorkers,
		logger:    logrus.StandardLogger(),
	}
	for _, apply := range opts {
		apply(f)
	}
	f.extractor = NewExtractor(coll, f.logger)
	return f
}

// FetchOrg lists the repositories of org and extracts each of them.
// Records come back in listing order. A listing failure is logged and
// yields no records.
func (f *Fetcher) FetchOrg(ctx context.Context, org string) []domain.RepositoryRecord {
	repos, err := f.collector.ListRepositories(ctx, org)
	if err != nil {
		f.logger.WithFields(logrus.Fields{
			"org":  org,
			"code": apperrors.CodeOf(err),
		}).Errorf("Error fetching repos for org %s: %v", org, err)
		return nil
	}

	records := make([]domain.RepositoryRecord, len(repos))

	var mu sync.Mutex
	done := 0

	var g errgroup.Group
	g.SetLimit(f.workers)
	for i, repo := range repos {
		g.Go(func() error {
			records[i] = f.extractor.Extract(ctx, repo)

			if f.onProgress != nil {
				name := ""
				if repo != nil {
					name = repo.Name
				}
				mu.Lock()
				done++
				f.onProgress(org, name, done, len(repos))
				mu.Unlock()
			}
			return nil
		})
	}
	// workers never fail, the group only bounds concurrency
	g.Wait()

	return records
}

// Run processes orgs one after another and flattens their records in order
func (f *Fetcher) Run(ctx context.Context, orgs []string) []domain.RepositoryRecord {
	var all []domain.RepositoryRecord
	for _, org := range orgs {
		all = append(all, f.FetchOrg(ctx, org)...)
	}
	return all
}

// Collect runs the fetcher and wraps the records into a new inventory
func (f *Fetcher) Collect(ctx context.Context, orgs []string, baseURL string) *domain.Inventory {
	records := f.Run(ctx, orgs)
	if records == nil {
		records = []domain.RepositoryRecord{}
	}
	return &domain.Inventory{
		ID:        uuid.New().String(),
		Orgs:      orgs,
		BaseURL:   baseURL,
		CreatedAt: time.Now().UTC(),
		Records:   records,
	}
}
