package domain

// Sentinel marks a field whose value could not be fetched
const Sentinel = "EMPTY"

// Column names of the exported report, in column order
const (
	ColumnOrg            = "Github Org Name"
	ColumnRepository     = "Repository"
	ColumnURL            = "Repository URL"
	ColumnDefaultBranch  = "Default Branch"
	ColumnBranches       = "Branches"
	ColumnLastCommitDate = "Last Commit Date For Default Branch"
	ColumnContributors   = "Contributor Usernames"
	ColumnEmails         = "Contributor Emails"
	ColumnExtensions     = "Unique File Types Extensions In The Default Repo"
)

// RepositoryRecord is the flat per-repository row of an inventory
type RepositoryRecord struct {
	Org            string `json:"org"`
	Repository     string `json:"repository"`
	URL            string `json:"url"`
	DefaultBranch  string `json:"default_branch"`
	Branches       string `json:"branches"`
	LastCommitDate string `json:"last_commit_date"`
	Contributors   string `json:"contributors"`
	Emails         string `json:"emails"`
	Extensions     string `json:"extensions"`
}

// EmptyRecord returns a record with every field set to Sentinel
func EmptyRecord() RepositoryRecord {
	return RepositoryRecord{
		Org:            Sentinel,
		Repository:     Sentinel,
		URL:            Sentinel,
		DefaultBranch:  Sentinel,
		Branches:       Sentinel,
		LastCommitDate: Sentinel,
		Contributors:   Sentinel,
		Emails:         Sentinel,
		Extensions:     Sentinel,
	}
}

// Columns returns the report header names in column order
func Columns() []string {
	return []string{
		ColumnOrg,
		ColumnRepository,
		ColumnURL,
		ColumnDefaultBranch,
		ColumnBranches,
		ColumnLastCommitDate,
		ColumnContributors,
		ColumnEmails,
		ColumnExtensions,
	}
}

// Values returns the cell values in the same order as Columns
func (r RepositoryRecord) Values() []string {
	return []string{
		r.Org,
		r.Repository,
		r.URL,
		r.DefaultBranch,
		r.Branches,
		r.LastCommitDate,
		r.Contributors,
		r.Emails,
		r.Extensions,
	}
}
