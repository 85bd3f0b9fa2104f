package inventory

import (
	"context"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/kurihiro0119/github-repo-inventory/internal/collector"
	"github.com/kurihiro0119/github-repo-inventory/internal/domain"
	apperrors "github.com/kurihiro0119/github-repo-inventory/internal/errors"
)

// CommitDateLayout renders commit dates in UTC with an explicit offset
const CommitDateLayout = "2006-01-02 15:04:05-07:00"

// Extractor builds one RepositoryRecord per repository.
// Every sub-fetch fails independently: a failing lookup only turns its own
// field(s) into domain.Sentinel.
type Extractor struct {
	collector collector.Collector
	logger    logrus.FieldLogger
}

// NewExtractor creates a new extractor
func NewExtractor(coll collector.Collector, logger logrus.FieldLogger) *Extractor {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Extractor{
		collector: coll,
		logger:    logger,
	}
}

// Extract fetches the details of repo. It never fails: a repository without an
// organization reference, or a panic during extraction, yields domain.EmptyRecord.
func (e *Extractor) Extract(ctx context.Context, repo *domain.Repository) (record domain.RepositoryRecord) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.WithField("panic", r).Warn("repository extraction aborted")
			record = domain.EmptyRecord()
		}
	}()

	if repo == nil || repo.Org == "" {
		e.logger.Debug("repository has no organization reference")
		return domain.EmptyRecord()
	}

	record = domain.RepositoryRecord{
		Org:           repo.Org,
		Repository:    repo.Name,
		URL:           repo.URL,
		DefaultBranch: repo.DefaultBranch,
	}
	log := e.logger.WithFields(logrus.Fields{"org": repo.Org, "repo": repo.Name})

	record.Branches = e.branches(ctx, log, repo)
	record.LastCommitDate = e.lastCommitDate(ctx, log, repo)
	record.Contributors, record.Emails = e.contributors(ctx, log, repo)
	record.Extensions = e.extensions(ctx, log, repo)

	return record
}

func (e *Extractor) branches(ctx context.Context, log logrus.FieldLogger, repo *domain.Repository) string {
	names, err := e.collector.ListBranches(ctx, repo.Org, repo.Name)
	if err != nil {
		logSubFetch(log, domain.ColumnBranches, err)
		return domain.Sentinel
	}
	return joinOrSentinel(names)
}

func (e *Extractor) lastCommitDate(ctx context.Context, log logrus.FieldLogger, repo *domain.Repository) string {
	date, err := e.collector.GetBranchCommitDate(ctx, repo.Org, repo.Name, repo.DefaultBranch)
	if err != nil {
		logSubFetch(log, domain.ColumnLastCommitDate, err)
		return domain.Sentinel
	}
	return date.UTC().Format(CommitDateLayout)
}

func (e *Extractor) contributors(ctx context.Context, log logrus.FieldLogger, repo *domain.Repository) (string, string) {
	contributors, err := e.collector.ListContributors(ctx, repo.Org, repo.Name)
	if err != nil {
		logSubFetch(log, domain.ColumnContributors, err)
		return domain.Sentinel, domain.Sentinel
	}

	logins := make([]string, 0, len(contributors))
	var emails []string
	for _, c := range contributors {
		logins = append(logins, c.Login)
		if c.Email != "" {
			emails = append(emails, c.Email)
		}
	}
	return joinOrSentinel(logins), joinOrSentinel(emails)
}

func (e *Extractor) extensions(ctx context.Context, log logrus.FieldLogger, repo *domain.Repository) string {
	paths, err := e.collector.ListTreePaths(ctx, repo.Org, repo.Name, repo.DefaultBranch)
	if err != nil {
		logSubFetch(log, domain.ColumnExtensions, err)
		return domain.Sentinel
	}
	return joinOrSentinel(UniqueExtensions(paths))
}

// UniqueExtensions returns the sorted set of text after the last dot of every
// path that contains one.
func UniqueExtensions(paths []string) []string {
	seen := make(map[string]struct{})
	for _, p := range paths {
		i := strings.LastIndex(p, ".")
		if i < 0 {
			continue
		}
		seen[p[i+1:]] = struct{}{}
	}

	exts := make([]string, 0, len(seen))
	for ext := range seen {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

func joinOrSentinel(values []string) string {
	if len(values) == 0 {
		return domain.Sentinel
	}
	return strings.Join(values, ", ")
}

func logSubFetch(log logrus.FieldLogger, field string, err error) {
	log.WithFields(logrus.Fields{
		"field": field,
		"code":  apperrors.CodeOf(err),
	}).WithError(err).Debugf("%s unavailable", field)
}
