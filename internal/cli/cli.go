package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tleroy/tennis-results/internal/config"
	"github.com/tleroy/tennis-results/internal/fetch"
	"github.com/tleroy/tennis-results/internal/logger"
	"github.com/tleroy/tennis-results/internal/storage"
)

const (
	ExitSuccess = 0
	ExitError   = 1
)

var (
	flagConfig      string
	flagDataDir     string
	flagCategory    string
	flagFormat      string
	flagMaxArchives int
	flagVerbose     bool
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tennis-results",
		Short: "Scrape historical tennis results and odds into datasets",
		Long: `A CLI tool that scrapes tournament listings, per-season archives,
match results and bookmaker odds from the results site, and writes them
as CSV datasets plus a JSON snapshot (and optionally into Postgres).`,
		RunE: runScrape,
	}

	cmd.Flags().StringVar(&flagConfig, "config", "", "Path to a YAML config file")
	cmd.Flags().StringVar(&flagDataDir, "data-dir", "", "Data directory for datasets (default from config)")
	cmd.Flags().StringVar(&flagCategory, "category", "", "Only scrape tournaments of this category (e.g. atp-singles)")
	cmd.Flags().StringVar(&flagFormat, "format", "text", "Output format: text or json")
	cmd.Flags().IntVar(&flagMaxArchives, "max-archives", 0, "Max editions per tournament, 0 for all")
	cmd.Flags().BoolVar(&flagVerbose, "verbose", false, "Enable verbose logging and counter output")

	return cmd
}

// runScrape is the main command logic
func runScrape(cmd *cobra.Command, args []string) error {
	format := OutputFormat(strings.ToLower(flagFormat))
	if format != FormatText && format != FormatJSON {
		return fmt.Errorf("invalid format: %s (must be 'text' or 'json')", flagFormat)
	}

	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	if flagDataDir != "" {
		cfg.Output.DataDir = flagDataDir
	}
	if flagMaxArchives > 0 {
		cfg.Source.MaxArchives = flagMaxArchives
	}

	level := logger.LevelInfo
	if flagVerbose {
		level = logger.LevelDebug
	}
	logger.SetDefault(logger.New(level, os.Stderr))

	store, err := storage.New(cfg.Output.DataDir)
	if err != nil {
		return fmt.Errorf("initializing storage: %w", err)
	}

	ctx := cmd.Context()

	pipeline := &Pipeline{
		Client: fetch.New(fetch.Options{
			BaseURL:     cfg.Source.BaseURL,
			FeedBaseURL: cfg.Source.FeedBaseURL,
			Timeout:     cfg.Source.Timeout(),
		}),
		Category:    flagCategory,
		MaxArchives: cfg.Source.MaxArchives,
		Bookmakers:  cfg.Bookmaker,
	}

	logger.Info("scrape started", logger.Fields{
		"listing_feed": cfg.Source.ListingFeed,
		"category":     flagCategory,
		"data_dir":     store.DataDir(),
	})

	snapshot, err := pipeline.Run(ctx, cfg.Source.ListingFeed)
	if err != nil {
		return err
	}

	if err := store.SaveDatasets(snapshot); err != nil {
		return fmt.Errorf("writing datasets: %w", err)
	}

	if cfg.Database.DSN != "" {
		db, err := storage.NewPostgresStore(ctx, cfg.Database.DSN)
		if err != nil {
			return fmt.Errorf("connecting to postgres: %w", err)
		}
		defer db.Close()
		if err := db.SaveSnapshot(ctx, snapshot); err != nil {
			return fmt.Errorf("saving to postgres: %w", err)
		}
	}

	result := Summarize(snapshot, store.DataDir(), logger.MetricsSnapshot())
	if err := WriteOutput(os.Stdout, result, format, flagVerbose); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}

// Execute runs the CLI
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitError)
	}
}
