package domain

import "time"

// Inventory represents one collection run over a set of organizations
type Inventory struct {
	ID        string             `json:"id"`
	Orgs      []string           `json:"orgs"`
	BaseURL   string             `json:"base_url"`
	CreatedAt time.Time          `json:"created_at"`
	Records   []RepositoryRecord `json:"records,omitempty"`
}

// OrgSummary represents per-organization counts of an inventory
type OrgSummary struct {
	Org          string `json:"org"`
	Repositories int    `json:"repositories"`
	Degraded     int    `json:"degraded"` // records with at least one EMPTY field
}

// ExtensionCount represents how many repositories contain a file extension
type ExtensionCount struct {
	Extension    string `json:"extension"`
	Repositories int    `json:"repositories"`
}

// Summary represents aggregated figures of an inventory
type Summary struct {
	InventoryID   string           `json:"inventory_id"`
	TotalRecords  int              `json:"total_records"`
	Orgs          []OrgSummary     `json:"orgs"`
	EmptyByColumn map[string]int   `json:"empty_by_column"`
	TopExtensions []ExtensionCount `json:"top_extensions"`
}
