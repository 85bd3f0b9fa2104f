package main

import (
	"fmt"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/kurihiro0119/github-repo-inventory/internal/aggregator"
	"github.com/kurihiro0119/github-repo-inventory/internal/api"
	"github.com/kurihiro0119/github-repo-inventory/internal/config"
	"github.com/kurihiro0119/github-repo-inventory/internal/storage"
	"github.com/kurihiro0119/github-repo-inventory/internal/storage/postgres"
	"github.com/kurihiro0119/github-repo-inventory/internal/storage/sqlite"
)

func main() {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("Failed to load configuration: %v", err)
	}
	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		logger.SetLevel(level)
	}
	if err := cfg.ValidateStorage(); err != nil {
		logger.Fatalf("Invalid configuration: %v", err)
	}

	// Initialize storage
	var store storage.Storage
	switch cfg.StorageType {
	case "postgres":
		store, err = postgres.NewPostgresStorage(cfg.PostgresURL)
		if err != nil {
			logger.Fatalf("Failed to initialize PostgreSQL storage: %v", err)
		}
	case "sqlite":
		store, err = sqlite.NewSQLiteStorage(cfg.SQLitePath)
		if err != nil {
			logger.Fatalf("Failed to initialize SQLite storage: %v", err)
		}
	default:
		logger.Fatal("The API server needs STORAGE_TYPE set to 'sqlite' or 'postgres'")
	}
	defer store.Close()

	// Initialize aggregator
	agg := aggregator.NewAggregator(store)

	// Initialize handler
	handler := api.NewHandler(store, agg)

	// Setup routes
	gin.SetMode(gin.ReleaseMode)
	router := api.SetupRoutes(handler, logger)

	// Start server
	addr := fmt.Sprintf("%s:%s", cfg.APIHost, cfg.APIPort)
	logger.WithFields(logrus.Fields{
		"addr":    addr,
		"storage": cfg.StorageType,
	}).Info("Starting API server")

	if err := router.Run(addr); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to start server: %v\n", err)
		os.Exit(1)
	}
}
