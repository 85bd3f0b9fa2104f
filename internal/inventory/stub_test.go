package inventory_test

import (
	"context"
	"errors"
	"time"

	"github.com/kurihiro0119/github-repo-inventory/internal/domain"
)

var errStub = errors.New("stub failure")

// stubCollector answers every lookup from its func fields; unset fields fail
type stubCollector struct {
	ListRepositoriesFunc    func(ctx context.Context, org string) ([]*domain.Repository, error)
	ListBranchesFunc        func(ctx context.Context, owner, repo string) ([]string, error)
	GetBranchCommitDateFunc func(ctx context.Context, owner, repo, branch string) (time.Time, error)
	ListContributorsFunc    func(ctx context.Context, owner, repo string) ([]*domain.Contributor, error)
	ListTreePathsFunc       func(ctx context.Context, owner, repo, ref string) ([]string, error)
}

func (s *stubCollector) ListRepositories(ctx context.Context, org string) ([]*domain.Repository, error) {
	if s.ListRepositoriesFunc == nil {
		return nil, errStub
	}
	return s.ListRepositoriesFunc(ctx, org)
}

func (s *stubCollector) ListBranches(ctx context.Context, owner, repo string) ([]string, error) {
	if s.ListBranchesFunc == nil {
		return nil, errStub
	}
	return s.ListBranchesFunc(ctx, owner, repo)
}

func (s *stubCollector) GetBranchCommitDate(ctx context.Context, owner, repo, branch string) (time.Time, error) {
	if s.GetBranchCommitDateFunc == nil {
		return time.Time{}, errStub
	}
	return s.GetBranchCommitDateFunc(ctx, owner, repo, branch)
}

func (s *stubCollector) ListContributors(ctx context.Context, owner, repo string) ([]*domain.Contributor, error) {
	if s.ListContributorsFunc == nil {
		return nil, errStub
	}
	return s.ListContributorsFunc(ctx, owner, repo)
}

func (s *stubCollector) ListTreePaths(ctx context.Context, owner, repo, ref string) ([]string, error) {
	if s.ListTreePathsFunc == nil {
		return nil, errStub
	}
	return s.ListTreePathsFunc(ctx, owner, repo, ref)
}

// healthyCollector returns a stub where every sub-fetch succeeds
func healthyCollector() *stubCollector {
	return &stubCollector{
		ListBranchesFunc: func(context.Context, string, string) ([]string, error) {
			return []string{"main", "dev"}, nil
		},
		GetBranchCommitDateFunc: func(context.Context, string, string, string) (time.Time, error) {
			return time.Date(2024, 3, 1, 10, 20, 30, 0, time.UTC), nil
		},
		ListContributorsFunc: func(context.Context, string, string) ([]*domain.Contributor, error) {
			return []*domain.Contributor{
				{Login: "alice", Email: "alice@example.com"},
				{Login: "bob"},
			}, nil
		},
		ListTreePathsFunc: func(context.Context, string, string, string) ([]string, error) {
			return []string{"README.md", "src", "src/main.go", "src/util.go"}, nil
		},
	}
}

func sampleRepo(name string) *domain.Repository {
	return &domain.Repository{
		Org:           "acme",
		Name:          name,
		URL:           "https://github.com/acme/" + name,
		DefaultBranch: "main",
	}
}
