package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kurihiro0119/github-repo-inventory/internal/aggregator"
	"github.com/kurihiro0119/github-repo-inventory/internal/collector"
	"github.com/kurihiro0119/github-repo-inventory/internal/export"
	"github.com/kurihiro0119/github-repo-inventory/internal/inventory"
)

func runCollect(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	coll, err := collector.NewGitHubCollector(cfg.GitHubToken, cfg.BaseURL)
	if err != nil {
		return fmt.Errorf("failed to initialize GitHub client: %w", err)
	}

	out := cmd.OutOrStdout()
	fetcher := inventory.NewFetcher(coll,
		inventory.WithWorkers(cfg.Workers),
		inventory.WithLogger(logger),
		inventory.WithProgress(func(org, repo string, done, total int) {
			fmt.Fprintf(out, "\rProcessing %s: %d/%d (%s)\033[K", org, done, total, repo)
			if done == total {
				fmt.Fprintln(out)
			}
		}),
	)

	ctx := context.Background()
	inv := fetcher.Collect(ctx, args, cfg.BaseURL)

	if err := export.WriteFile(cfg.OutputPath, export.NewHTMLExporter(), inv.Records); err != nil {
		return err
	}
	fmt.Fprintf(out, "Data exported to %s\n", cfg.OutputPath)

	if cfg.StorageEnabled() {
		store, err := getStorage(cfg)
		if err != nil {
			logger.WithError(err).Warn("failed to initialize storage, inventory not saved")
		} else {
			defer store.Close()
			if err := store.SaveInventory(ctx, inv); err != nil {
				logger.WithError(err).Warn("failed to save inventory")
			} else {
				fmt.Fprintf(out, "Inventory saved: %s\n", inv.ID)
			}
		}
	}

	if showSummary {
		summary := aggregator.NewAggregator(nil).Summarize(inv)
		if outputJSON {
			return json.NewEncoder(out).Encode(summary)
		}
		export.WriteSummary(out, summary)
	}

	return nil
}
