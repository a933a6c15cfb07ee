package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/tleroy/tennis-results/internal/fetch"
)

const (
	databaseDSNEnv = "TENNIS_RESULTS_DATABASE_DSN"
	dataDirEnv     = "TENNIS_RESULTS_DATA_DIR"

	defaultDataDir = "data"
)

// Config holds high-level settings required across the application.
type Config struct {
	Source    SourceConfig      `yaml:"source"`
	Output    OutputConfig      `yaml:"output"`
	Database  DatabaseConfig    `yaml:"database"`
	Bookmaker map[string]string `yaml:"bookmakers"`
}

// SourceConfig describes the upstream site and feed endpoints.
type SourceConfig struct {
	BaseURL        string `yaml:"baseUrl"`
	FeedBaseURL    string `yaml:"feedBaseUrl"`
	ListingFeed    string `yaml:"listingFeed"`
	TimeoutSeconds int    `yaml:"timeoutSeconds"`
	MaxArchives    int    `yaml:"maxArchives"`
}

// Timeout resolves the configured request timeout.
func (s SourceConfig) Timeout() time.Duration {
	if s.TimeoutSeconds <= 0 {
		return fetch.Timeout
	}
	return time.Duration(s.TimeoutSeconds) * time.Second
}

// OutputConfig controls where datasets are written.
type OutputConfig struct {
	DataDir string `yaml:"dataDir"`
}

// DatabaseConfig describes the optional Postgres sink.
type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

// Load reads YAML configuration from path (if non-empty) and applies
// environment overrides. A missing or empty path yields the defaults.
func Load(path string) (Config, error) {
	cfg := defaultConfig()

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("config: read %s: %w", path, err)
		}
		var fileCfg Config
		if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
			return cfg, fmt.Errorf("config: parse %s: %w", path, err)
		}
		cfg = mergeConfig(cfg, fileCfg)
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(databaseDSNEnv); v != "" {
		c.Database.DSN = v
	}
	if v := os.Getenv(dataDirEnv); v != "" {
		c.Output.DataDir = v
	}
}

func mergeConfig(base, override Config) Config {
	if override.Source.BaseURL != "" {
		base.Source.BaseURL = override.Source.BaseURL
	}
	if override.Source.FeedBaseURL != "" {
		base.Source.FeedBaseURL = override.Source.FeedBaseURL
	}
	if override.Source.ListingFeed != "" {
		base.Source.ListingFeed = override.Source.ListingFeed
	}
	if override.Source.TimeoutSeconds > 0 {
		base.Source.TimeoutSeconds = override.Source.TimeoutSeconds
	}
	if override.Source.MaxArchives > 0 {
		base.Source.MaxArchives = override.Source.MaxArchives
	}

	if override.Output.DataDir != "" {
		base.Output.DataDir = override.Output.DataDir
	}

	if override.Database.DSN != "" {
		base.Database.DSN = override.Database.DSN
	}

	for id, name := range override.Bookmaker {
		base.Bookmaker[id] = name
	}

	return base
}

func defaultConfig() Config {
	return Config{
		Source: SourceConfig{
			BaseURL:     fetch.DefaultBaseURL,
			FeedBaseURL: fetch.DefaultFeedBaseURL,
			ListingFeed: fetch.DefaultListingFeed,
		},
		Output:    OutputConfig{DataDir: defaultDataDir},
		Bookmaker: map[string]string{},
	}
}
