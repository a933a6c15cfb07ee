package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/tleroy/tennis-results/internal/fetch"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Source.BaseURL != fetch.DefaultBaseURL {
		t.Errorf("BaseURL = %q, want %q", cfg.Source.BaseURL, fetch.DefaultBaseURL)
	}
	if cfg.Source.ListingFeed != fetch.DefaultListingFeed {
		t.Errorf("ListingFeed = %q, want %q", cfg.Source.ListingFeed, fetch.DefaultListingFeed)
	}
	if cfg.Output.DataDir != defaultDataDir {
		t.Errorf("DataDir = %q, want %q", cfg.Output.DataDir, defaultDataDir)
	}
	if cfg.Source.Timeout() != fetch.Timeout {
		t.Errorf("Timeout() = %v, want %v", cfg.Source.Timeout(), fetch.Timeout)
	}
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	raw := `
source:
  baseUrl: https://example.org
  timeoutSeconds: 5
  maxArchives: 3
output:
  dataDir: /tmp/tennis
database:
  dsn: postgres://localhost/tennis
bookmakers:
  "999": Example Bet
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Source.BaseURL != "https://example.org" {
		t.Errorf("BaseURL = %q", cfg.Source.BaseURL)
	}
	if cfg.Source.FeedBaseURL != fetch.DefaultFeedBaseURL {
		t.Errorf("FeedBaseURL should keep default, got %q", cfg.Source.FeedBaseURL)
	}
	if cfg.Source.Timeout() != 5*time.Second {
		t.Errorf("Timeout() = %v, want 5s", cfg.Source.Timeout())
	}
	if cfg.Source.MaxArchives != 3 {
		t.Errorf("MaxArchives = %d, want 3", cfg.Source.MaxArchives)
	}
	if cfg.Output.DataDir != "/tmp/tennis" {
		t.Errorf("DataDir = %q", cfg.Output.DataDir)
	}
	if cfg.Database.DSN != "postgres://localhost/tennis" {
		t.Errorf("DSN = %q", cfg.Database.DSN)
	}
	if got := cfg.Bookmaker["999"]; got != "Example Bet" {
		t.Errorf("Bookmaker[999] = %q", got)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv(databaseDSNEnv, "postgres://env/tennis")
	t.Setenv(dataDirEnv, "/var/tennis")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Database.DSN != "postgres://env/tennis" {
		t.Errorf("DSN = %q", cfg.Database.DSN)
	}
	if cfg.Output.DataDir != "/var/tennis" {
		t.Errorf("DataDir = %q", cfg.Output.DataDir)
	}
}
