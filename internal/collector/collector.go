package collector

import (
	"context"
	"time"

	"github.com/kurihiro0119/github-repo-inventory/internal/domain"
)

// Collector defines the interface for looking up repository data on GitHub
type Collector interface {
	// ListRepositories retrieves all repositories of an organization
	ListRepositories(ctx context.Context, org string) ([]*domain.Repository, error)

	// ListBranches retrieves the branch names of a repository
	ListBranches(ctx context.Context, owner, repo string) ([]string, error)

	// GetBranchCommitDate retrieves the author date of the head commit of a branch
	GetBranchCommitDate(ctx context.Context, owner, repo, branch string) (time.Time, error)

	// ListContributors retrieves the contributors of a repository with their public email
	ListContributors(ctx context.Context, owner, repo string) ([]*domain.Contributor, error)

	// ListTreePaths retrieves every path in the recursive tree of ref
	ListTreePaths(ctx context.Context, owner, repo, ref string) ([]string, error)
}
