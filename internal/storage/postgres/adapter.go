package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	_ "github.com/lib/pq"

	"github.com/kurihiro0119/github-repo-inventory/internal/domain"
	apperrors "github.com/kurihiro0119/github-repo-inventory/internal/errors"
	"github.com/kurihiro0119/github-repo-inventory/internal/storage"
)

// postgresStorage implements the Storage interface for PostgreSQL
type postgresStorage struct {
	db *sql.DB
}

// NewPostgresStorage creates a new PostgreSQL storage instance
func NewPostgresStorage(connStr string) (storage.Storage, error) {
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}

	// Test connection
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}

	s := &postgresStorage{db: db}
	if err := s.Migrate(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}

	return s, nil
}

// Migrate runs database migrations
func (s *postgresStorage) Migrate(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS inventories (
		id TEXT PRIMARY KEY,
		orgs JSONB NOT NULL,
		base_url TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);

	CREATE INDEX IF NOT EXISTS idx_inventories_created_at ON inventories(created_at);

	CREATE TABLE IF NOT EXISTS repository_records (
		inventory_id TEXT NOT NULL REFERENCES inventories(id) ON DELETE CASCADE,
		position INTEGER NOT NULL,
		org TEXT NOT NULL,
		repository TEXT NOT NULL,
		url TEXT NOT NULL,
		default_branch TEXT NOT NULL,
		branches TEXT NOT NULL,
		last_commit_date TEXT NOT NULL,
		contributors TEXT NOT NULL,
		emails TEXT NOT NULL,
		extensions TEXT NOT NULL,
		PRIMARY KEY (inventory_id, position)
	);

	CREATE INDEX IF NOT EXISTS idx_repository_records_org ON repository_records(org);
	`

	_, err := s.db.ExecContext(ctx, schema)
	return err
}

// SaveInventory stores an inventory with its records in one transaction
func (s *postgresStorage) SaveInventory(ctx context.Context, inv *domain.Inventory) error {
	orgsJSON, err := json.Marshal(inv.Orgs)
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO inventories (id, orgs, base_url, created_at)
		VALUES ($1, $2, $3, $4)
	`, inv.ID, string(orgsJSON), inv.BaseURL, inv.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to save inventory %s: %w", inv.ID, err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO repository_records (inventory_id, position, org, repository, url, default_branch,
			branches, last_commit_date, contributors, emails, extensions)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, r := range inv.Records {
		_, err = stmt.ExecContext(ctx,
			inv.ID,
			i,
			r.Org,
			r.Repository,
			r.URL,
			r.DefaultBranch,
			r.Branches,
			r.LastCommitDate,
			r.Contributors,
			r.Emails,
			r.Extensions,
		)
		if err != nil {
			return fmt.Errorf("failed to save record %d of inventory %s: %w", i, inv.ID, err)
		}
	}

	return tx.Commit()
}

// GetInventory retrieves an inventory without its records
func (s *postgresStorage) GetInventory(ctx context.Context, id string) (*domain.Inventory, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, orgs, base_url, created_at
		FROM inventories
		WHERE id = $1
	`, id)

	inv, err := scanInventory(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NewNotFoundError("inventory " + id)
	}
	return inv, err
}

// ListInventories retrieves all inventories, newest first, without their records
func (s *postgresStorage) ListInventories(ctx context.Context) ([]*domain.Inventory, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, orgs, base_url, created_at
		FROM inventories
		ORDER BY created_at DESC, id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	inventories := []*domain.Inventory{}
	for rows.Next() {
		inv, err := scanInventory(rows)
		if err != nil {
			return nil, err
		}
		inventories = append(inventories, inv)
	}

	return inventories, rows.Err()
}

// GetRecords retrieves the records of an inventory in their original order
func (s *postgresStorage) GetRecords(ctx context.Context, id string) ([]domain.RepositoryRecord, error) {
	if _, err := s.GetInventory(ctx, id); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT org, repository, url, default_branch, branches, last_commit_date,
			contributors, emails, extensions
		FROM repository_records
		WHERE inventory_id = $1
		ORDER BY position
	`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := []domain.RepositoryRecord{}
	for rows.Next() {
		var r domain.RepositoryRecord
		err := rows.Scan(&r.Org, &r.Repository, &r.URL, &r.DefaultBranch, &r.Branches,
			&r.LastCommitDate, &r.Contributors, &r.Emails, &r.Extensions)
		if err != nil {
			return nil, err
		}
		records = append(records, r)
	}

	return records, rows.Err()
}

func scanInventory(row interface{ Scan(dest ...any) error }) (*domain.Inventory, error) {
	var inv domain.Inventory
	var orgsJSON []byte

	if err := row.Scan(&inv.ID, &orgsJSON, &inv.BaseURL, &inv.CreatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(orgsJSON, &inv.Orgs); err != nil {
		return nil, fmt.Errorf("invalid orgs of inventory %s: %w", inv.ID, err)
	}

	return &inv, nil
}

// Close closes the database connection
func (s *postgresStorage) Close() error {
	return s.db.Close()
}
