package collector

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/go-github/v55/github"
	"golang.org/x/oauth2"

	"github.com/kurihiro0119/github-repo-inventory/internal/domain"
	apperrors "github.com/kurihiro0119/github-repo-inventory/internal/errors"
)

// githubCollector implements Collector using GitHub API
type githubCollector struct {
	client *github.Client

	mu     sync.Mutex
	emails map[string]string
}

// NewGitHubCollector creates a new GitHub collector authenticated with a bearer token.
// baseURL points at the REST API root, e.g. https://github.example.com/api/v3 for an
// enterprise server.
func NewGitHubCollector(token, baseURL string) (Collector, error) {
	ctx := context.Background()
	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: token},
	)
	tc := oauth2.NewClient(ctx, ts)
	client := github.NewClient(tc)

	if baseURL != "" {
		if !strings.HasSuffix(baseURL, "/") {
			baseURL += "/"
		}
		u, err := url.Parse(baseURL)
		if err != nil {
			return nil, fmt.Errorf("invalid base URL %q: %w", baseURL, err)
		}
		client.BaseURL = u
		client.UploadURL = u
	}

	return &githubCollector{
		client: client,
		emails: make(map[string]string),
	}, nil
}

// ListRepositories retrieves all repositories of an organization
func (c *githubCollector) ListRepositories(ctx context.Context, org string) ([]*domain.Repository, error) {
	var allRepos []*domain.Repository
	opts := &github.RepositoryListByOrgOptions{
		ListOptions: github.ListOptions{PerPage: 100},
	}

	for {
		repos, resp, err := c.client.Repositories.ListByOrg(ctx, org, opts)
		if err != nil {
			return nil, apperrors.FromGitHub(fmt.Errorf("failed to list repositories: %w", err))
		}

		for _, repo := range repos {
			allRepos = append(allRepos, &domain.Repository{
				Org:           orgLogin(repo),
				Name:          repo.GetName(),
				URL:           repo.GetHTMLURL(),
				DefaultBranch: repo.GetDefaultBranch(),
			})
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return allRepos, nil
}

// orgLogin returns the owning organization of a listed repository.
// Org listings carry only the owner, so an owner of type Organization counts.
func orgLogin(repo *github.Repository) string {
	if login := repo.GetOrganization().GetLogin(); login != "" {
		return login
	}
	if repo.GetOwner().GetType() == "Organization" {
		return repo.GetOwner().GetLogin()
	}
	return ""
}

// ListBranches retrieves the branch names of a repository
func (c *githubCollector) ListBranches(ctx context.Context, owner, repo string) ([]string, error) {
	var names []string
	opts := &github.BranchListOptions{
		ListOptions: github.ListOptions{PerPage: 100},
	}

	for {
		branches, resp, err := c.client.Repositories.ListBranches(ctx, owner, repo, opts)
		if err != nil {
			return nil, apperrors.FromGitHub(fmt.Errorf("failed to list branches for %s/%s: %w", owner, repo, err))
		}

		for _, branch := range branches {
			names = append(names, branch.GetName())
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return names, nil
}

// GetBranchCommitDate retrieves the author date of the head commit of a branch
func (c *githubCollector) GetBranchCommitDate(ctx context.Context, owner, repo, branch string) (time.Time, error) {
	b, _, err := c.client.Repositories.GetBranch(ctx, owner, repo, branch, true)
	if err != nil {
		return time.Time{}, apperrors.FromGitHub(fmt.Errorf("failed to get branch %s for %s/%s: %w", branch, owner, repo, err))
	}

	author := b.GetCommit().GetCommit().GetAuthor()
	if author == nil || author.Date == nil {
		return time.Time{}, apperrors.NewNotFoundError(fmt.Sprintf("commit author date of %s/%s@%s", owner, repo, branch))
	}
	return author.GetDate().Time, nil
}

// ListContributors retrieves the contributors of a repository with their public email.
// The contributor listing carries no email, so each login is looked up once per collector.
func (c *githubCollector) ListContributors(ctx context.Context, owner, repo string) ([]*domain.Contributor, error) {
	var allContributors []*domain.Contributor
	opts := &github.ListContributorsOptions{
		ListOptions: github.ListOptions{PerPage: 100},
	}

	for {
		contributors, resp, err := c.client.Repositories.ListContributors(ctx, owner, repo, opts)
		if err != nil {
			return nil, apperrors.FromGitHub(fmt.Errorf("failed to list contributors for %s/%s: %w", owner, repo, err))
		}

		for _, contributor := range contributors {
			email, err := c.userEmail(ctx, contributor.GetLogin())
			if err != nil {
				return nil, err
			}
			allContributors = append(allContributors, &domain.Contributor{
				Login: contributor.GetLogin(),
				Email: email,
			})
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return allContributors, nil
}

func (c *githubCollector) userEmail(ctx context.Context, login string) (string, error) {
	c.mu.Lock()
	email, ok := c.emails[login]
	c.mu.Unlock()
	if ok {
		return email, nil
	}

	user, _, err := c.client.Users.Get(ctx, login)
	if err != nil {
		return "", apperrors.FromGitHub(fmt.Errorf("failed to get user %s: %w", login, err))
	}

	c.mu.Lock()
	c.emails[login] = user.GetEmail()
	c.mu.Unlock()
	return user.GetEmail(), nil
}

// ListTreePaths retrieves every path in the recursive tree of ref
func (c *githubCollector) ListTreePaths(ctx context.Context, owner, repo, ref string) ([]string, error) {
	tree, _, err := c.client.Git.GetTree(ctx, owner, repo, ref, true)
	if err != nil {
		return nil, apperrors.FromGitHub(fmt.Errorf("failed to get tree %s for %s/%s: %w", ref, owner, repo, err))
	}

	paths := make([]string, 0, len(tree.Entries))
	for _, entry := range tree.Entries {
		paths = append(paths, entry.GetPath())
	}
	return paths, nil
}
