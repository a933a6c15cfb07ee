package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/tleroy/tennis-results/internal/model"
)

// Snapshot is the combined output of a scrape run.
type Snapshot struct {
	UpdatedAt   string                     `json:"updated_at"`
	Tournaments []*model.Tournament        `json:"tournaments"`
	Archives    []*model.TournamentArchive `json:"archives"`
	Players     []*model.Player            `json:"players"`
	Matches     []*model.Match             `json:"matches"`
	Odds        []*model.Odds              `json:"odds"`
}

// Store handles persistence of scraped datasets.
type Store struct {
	dataDir string
}

// New creates a Store rooted at dataDir, creating the directory if needed.
func New(dataDir string) (*Store, error) {
	// Expand ~ to home directory
	if strings.HasPrefix(dataDir, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, dataDir[2:])
	}

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	return &Store{dataDir: dataDir}, nil
}

// DataDir returns the resolved data directory.
func (s *Store) DataDir() string {
	return s.dataDir
}

func (s *Store) snapshotPath() string {
	return filepath.Join(s.dataDir, "snapshot.json")
}

// LoadSnapshot loads the previous run's snapshot from disk. A missing
// file yields an empty snapshot.
func (s *Store) LoadSnapshot() (*Snapshot, error) {
	data, err := os.ReadFile(s.snapshotPath())
	if err != nil {
		if os.IsNotExist(err) {
			return &Snapshot{}, nil
		}
		return nil, fmt.Errorf("reading snapshot: %w", err)
	}

	var snapshot Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("parsing snapshot: %w", err)
	}
	return &snapshot, nil
}

// SaveSnapshot writes the snapshot to disk, stamping UpdatedAt.
func (s *Store) SaveSnapshot(snapshot *Snapshot) error {
	snapshot.UpdatedAt = time.Now().UTC().Format(time.RFC3339)

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}

	if err := os.WriteFile(s.snapshotPath(), data, 0644); err != nil {
		return fmt.Errorf("writing snapshot: %w", err)
	}
	return nil
}

// SaveDatasets writes the CSV datasets and the combined snapshot.
func (s *Store) SaveDatasets(snapshot *Snapshot) error {
	datasets := []struct {
		name string
		rows []model.Mapping
	}{
		{"tournaments", tournamentRows(snapshot.Tournaments)},
		{"archives", archiveRows(snapshot.Archives)},
		{"players", playerRows(snapshot.Players)},
		{"matches", matchRows(snapshot.Matches)},
		{"odds", oddsRows(snapshot.Odds)},
	}

	for _, ds := range datasets {
		if err := s.WriteCSV(ds.name, ds.rows); err != nil {
			return fmt.Errorf("dataset %s: %w", ds.name, err)
		}
	}

	return s.SaveSnapshot(snapshot)
}

func tournamentRows(items []*model.Tournament) []model.Mapping {
	rows := make([]model.Mapping, 0, len(items))
	for _, t := range items {
		rows = append(rows, t.ToMapping())
	}
	return rows
}

func archiveRows(items []*model.TournamentArchive) []model.Mapping {
	rows := make([]model.Mapping, 0, len(items))
	for _, a := range items {
		rows = append(rows, a.ToMapping())
	}
	return rows
}

func playerRows(items []*model.Player) []model.Mapping {
	rows := make([]model.Mapping, 0, len(items))
	for _, p := range items {
		rows = append(rows, p.ToMapping())
	}
	return rows
}

func matchRows(items []*model.Match) []model.Mapping {
	rows := make([]model.Mapping, 0, len(items))
	for _, m := range items {
		rows = append(rows, m.ToMapping())
	}
	return rows
}

func oddsRows(items []*model.Odds) []model.Mapping {
	rows := make([]model.Mapping, 0, len(items))
	for _, o := range items {
		rows = append(rows, o.ToMapping())
	}
	return rows
}
