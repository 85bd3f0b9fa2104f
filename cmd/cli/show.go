package main

import (
	"context"
	"encoding/json"
	"io"

	"github.com/spf13/cobra"

	"github.com/kurihiro0119/github-repo-inventory/internal/aggregator"
	"github.com/kurihiro0119/github-repo-inventory/internal/config"
	"github.com/kurihiro0119/github-repo-inventory/internal/domain"
	"github.com/kurihiro0119/github-repo-inventory/internal/export"
	"github.com/kurihiro0119/github-repo-inventory/internal/storage"
	"github.com/kurihiro0119/github-repo-inventory/pkg/client"
)

// inventorySource is satisfied by both the local storage and the API client
type inventorySource interface {
	ListInventories(ctx context.Context) ([]*domain.Inventory, error)
	GetRecords(ctx context.Context, id string) ([]domain.RepositoryRecord, error)
	GetSummary(ctx context.Context, id string) (*domain.Summary, error)
}

// localSource reads inventories from the configured storage
type localSource struct {
	storage.Storage
	agg aggregator.Aggregator
}

func (s *localSource) GetSummary(ctx context.Context, id string) (*domain.Summary, error) {
	return s.agg.GetInventorySummary(ctx, id)
}

// openSource returns the inventory source selected by --remote and a close function
func openSource(cfg *config.Config) (inventorySource, func(), error) {
	if remote {
		return client.NewClient(cfg.APIEndpoint), func() {}, nil
	}

	store, err := getStorage(cfg)
	if err != nil {
		return nil, nil, err
	}
	src := &localSource{
		Storage: store,
		agg:     aggregator.NewAggregator(store),
	}
	return src, func() { _ = store.Close() }, nil
}

func runList(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	src, closeFn, err := openSource(cfg)
	if err != nil {
		return err
	}
	defer closeFn()

	inventories, err := src.ListInventories(context.Background())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if outputJSON {
		return writeJSON(out, inventories)
	}
	export.WriteInventories(out, inventories)
	return nil
}

func runShow(cmd *cobra.Command, args []string) error {
	id := args[0]

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	src, closeFn, err := openSource(cfg)
	if err != nil {
		return err
	}
	defer closeFn()

	ctx := context.Background()
	out := cmd.OutOrStdout()

	if showSummary {
		summary, err := src.GetSummary(ctx, id)
		if err != nil {
			return err
		}
		if outputJSON {
			return writeJSON(out, summary)
		}
		export.WriteSummary(out, summary)
		return nil
	}

	records, err := src.GetRecords(ctx, id)
	if err != nil {
		return err
	}
	if outputJSON {
		return writeJSON(out, records)
	}
	return export.NewTableExporter().Export(out, records)
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
