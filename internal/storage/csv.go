package storage

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/tleroy/tennis-results/internal/model"
)

// WriteCSV writes rows to <dataDir>/<name>.csv. The header is the sorted
// union of all row keys so every run with the same shape produces the
// same column order. Keys absent from a row are written as the explicit
// absence marker.
func (s *Store) WriteCSV(name string, rows []model.Mapping) error {
	path := filepath.Join(s.dataDir, name+".csv")

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	header := columnUnion(rows)
	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	record := make([]string, len(header))
	for _, row := range rows {
		for i, key := range header {
			value, ok := row[key]
			if !ok {
				value = model.NotFound
			}
			record[i] = value
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("writing row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flushing %s: %w", path, err)
	}
	return nil
}

func columnUnion(rows []model.Mapping) []string {
	seen := make(map[string]bool)
	for _, row := range rows {
		for key := range row {
			seen[key] = true
		}
	}

	header := make([]string, 0, len(seen))
	for key := range seen {
		header = append(header, key)
	}
	sort.Strings(header)
	return header
}
