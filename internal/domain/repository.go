package domain

// Repository represents a GitHub repository as returned by the organization listing
type Repository struct {
	Org           string // empty when the API response carries no organization
	Name          string
	URL           string
	DefaultBranch string
}

// Contributor represents a contributor of a repository
type Contributor struct {
	Login string
	Email string // empty when the user has no public email
}
