package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/kurihiro0119/github-repo-inventory/internal/domain"
	apperrors "github.com/kurihiro0119/github-repo-inventory/internal/errors"
	"github.com/kurihiro0119/github-repo-inventory/internal/storage"
)

// sqliteStorage implements the Storage interface for SQLite
type sqliteStorage struct {
	db *sql.DB
}

// NewSQLiteStorage creates a new SQLite storage instance
func NewSQLiteStorage(dbPath string) (storage.Storage, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on")
	if err != nil {
		return nil, err
	}

	s := &sqliteStorage{db: db}
	if err := s.Migrate(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}

	return s, nil
}

// Migrate runs database migrations
func (s *sqliteStorage) Migrate(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS inventories (
		id TEXT PRIMARY KEY,
		orgs TEXT NOT NULL,
		base_url TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
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
func (s *sqliteStorage) SaveInventory(ctx context.Context, inv *domain.Inventory) error {
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
		VALUES (?, ?, ?, ?)
	`, inv.ID, string(orgsJSON), inv.BaseURL, inv.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to save inventory %s: %w", inv.ID, err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO repository_records (inventory_id, position, org, repository, url, default_branch,
			branches, last_commit_date, contributors, emails, extensions)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
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
func (s *sqliteStorage) GetInventory(ctx context.Context, id string) (*domain.Inventory, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, orgs, base_url, created_at
		FROM inventories
		WHERE id = ?
	`, id)

	inv, err := scanInventory(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NewNotFoundError("inventory " + id)
	}
	return inv, err
}

// ListInventories retrieves all inventories, newest first, without their records
func (s *sqliteStorage) ListInventories(ctx context.Context) ([]*domain.Inventory, error) {
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
func (s *sqliteStorage) GetRecords(ctx context.Context, id string) ([]domain.RepositoryRecord, error) {
	if _, err := s.GetInventory(ctx, id); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT org, repository, url, default_branch, branches, last_commit_date,
			contributors, emails, extensions
		FROM repository_records
		WHERE inventory_id = ?
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

type scanner interface {
	Scan(dest ...any) error
}

func scanInventory(row scanner) (*domain.Inventory, error) {
	var inv domain.Inventory
	var orgsJSON string

	if err := row.Scan(&inv.ID, &orgsJSON, &inv.BaseURL, &inv.CreatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(orgsJSON), &inv.Orgs); err != nil {
		return nil, fmt.Errorf("invalid orgs of inventory %s: %w", inv.ID, err)
	}

	return &inv, nil
}

// Close closes the database connection
func (s *sqliteStorage) Close() error {
	return s.db.Close()
}
