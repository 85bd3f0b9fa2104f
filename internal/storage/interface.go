package storage

import (
	"context"

	"github.com/kurihiro0119/github-repo-inventory/internal/domain"
)

// Storage is the abstract interface for the persistence layer
type Storage interface {
	// SaveInventory stores an inventory with its records in one transaction
	SaveInventory(ctx context.Context, inv *domain.Inventory) error

	// GetInventory retrieves an inventory without its records
	GetInventory(ctx context.Context, id string) (*domain.Inventory, error)

	// ListInventories retrieves all inventories, newest first, without their records
	ListInventories(ctx context.Context) ([]*domain.Inventory, error)

	// GetRecords retrieves the records of an inventory in their original order
	GetRecords(ctx context.Context, id string) ([]domain.RepositoryRecord, error)

	// Migration
	Migrate(ctx context.Context) error

	// Connection management
	Close() error
}
