package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/kurihiro0119/github-repo-inventory/internal/config"
	"github.com/kurihiro0119/github-repo-inventory/internal/storage"
	"github.com/kurihiro0119/github-repo-inventory/internal/storage/postgres"
	"github.com/kurihiro0119/github-repo-inventory/internal/storage/sqlite"
)

var (
	cfgFile    string
	outputJSON bool
	logLevel   string

	patToken    string
	baseURL     string
	outputPath  string
	workers     int
	showSummary bool

	remote bool
)

var rootCmd = &cobra.Command{
	Use:   "github-repo-inventory [org...]",
	Short: "Export GitHub organization repository details to HTML",
	Long: `A CLI tool for building an inventory of the repositories of one or more
GitHub organizations.

For every repository it collects the branches, the last commit date of the
default branch, contributor usernames and emails, and the file extensions
found on the default branch, then writes everything to one HTML table.
Values that cannot be fetched are written as EMPTY.`,
	Args:          cobra.MinimumNArgs(1),
	RunE:          runCollect,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored inventories",
	Long:  `Display the inventories saved by previous runs (requires STORAGE_TYPE or --remote).`,
	Args:  cobra.NoArgs,
	RunE:  runList,
}

var showCmd = &cobra.Command{
	Use:   "show [inventory-id]",
	Short: "Show a stored inventory",
	Long:  `Display the records or the summary of a stored inventory.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is .env)")
	rootCmd.PersistentFlags().BoolVar(&outputJSON, "json", false, "output in JSON format")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")

	rootCmd.Flags().StringVar(&patToken, "pat_token", "", "GitHub Personal Access Token (default $GITHUB_TOKEN)")
	rootCmd.Flags().StringVar(&baseURL, "base_url", config.DefaultBaseURL, "Base URL for GitHub API")
	rootCmd.Flags().StringVar(&outputPath, "output", config.DefaultOutputPath, "Output HTML file name")
	rootCmd.Flags().IntVar(&workers, "workers", config.DefaultWorkers, "repositories fetched concurrently per organization")
	rootCmd.Flags().BoolVar(&showSummary, "summary", false, "print a summary of the collected inventory")

	showCmd.Flags().BoolVar(&showSummary, "summary", false, "show the summary instead of the records")
	for _, cmd := range []*cobra.Command{listCmd, showCmd} {
		cmd.Flags().BoolVar(&remote, "remote", false, "read from the API server at $API_ENDPOINT")
	}

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig loads the configuration and applies the flags set on cmd
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	var files []string
	if cfgFile != "" {
		files = append(files, cfgFile)
	}

	cfg, err := config.Load(files...)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("pat_token") {
		cfg.GitHubToken = patToken
	}
	if flags.Changed("base_url") {
		cfg.BaseURL = baseURL
	}
	if flags.Changed("output") {
		cfg.OutputPath = outputPath
	}
	if flags.Changed("workers") {
		cfg.Workers = workers
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = logLevel
	}

	return cfg, nil
}

func newLogger(cfg *config.Config) (*logrus.Logger, error) {
	level, err := logrus.ParseLevel(strings.ToLower(cfg.LogLevel))
	if err != nil {
		return nil, &config.ConfigError{Field: "log-level", Message: err.Error()}
	}

	logger := logrus.New()
	logger.SetOutput(os.Stdout)
	logger.SetLevel(level)
	logger.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
	})
	return logger, nil
}

func getStorage(cfg *config.Config) (storage.Storage, error) {
	if err := cfg.ValidateStorage(); err != nil {
		return nil, err
	}

	switch cfg.StorageType {
	case "postgres":
		return postgres.NewPostgresStorage(cfg.PostgresURL)
	case "sqlite":
		return sqlite.NewSQLiteStorage(cfg.SQLitePath)
	default:
		return nil, fmt.Errorf("storage is disabled: set STORAGE_TYPE to 'sqlite' or 'postgres'")
	}
}
