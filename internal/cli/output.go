package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/tleroy/tennis-results/internal/storage"
)

// OutputFormat specifies the output format
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

// OutputResult is the run summary written at the end of a scrape.
type OutputResult struct {
	ScrapedAt   time.Time        `json:"scraped_at"`
	DataDir     string           `json:"data_dir"`
	Tournaments int              `json:"tournaments"`
	Archives    int              `json:"archives"`
	Players     int              `json:"players"`
	Matches     int              `json:"matches"`
	Odds        int              `json:"odds"`
	ByStatus    map[string]int   `json:"by_status,omitempty"`
	Counters    map[string]int64 `json:"counters,omitempty"`
}

// Summarize builds the run summary from a finished snapshot.
func Summarize(snapshot *storage.Snapshot, dataDir string, counters map[string]int64) *OutputResult {
	result := &OutputResult{
		ScrapedAt:   time.Now().UTC(),
		DataDir:     dataDir,
		Tournaments: len(snapshot.Tournaments),
		Archives:    len(snapshot.Archives),
		Players:     len(snapshot.Players),
		Matches:     len(snapshot.Matches),
		Odds:        len(snapshot.Odds),
		ByStatus:    make(map[string]int),
		Counters:    counters,
	}
	for _, match := range snapshot.Matches {
		result.ByStatus[string(match.Status)]++
	}
	return result
}

// WriteOutput writes the result in the specified format
func WriteOutput(w io.Writer, result *OutputResult, format OutputFormat, verbose bool) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, result)
	case FormatText:
		return writeText(w, result, verbose)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

func writeJSON(w io.Writer, result *OutputResult) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

func writeText(w io.Writer, result *OutputResult, verbose bool) error {
	if result.Matches == 0 {
		fmt.Fprintln(w, "No matches scraped.")
	} else {
		fmt.Fprintf(w, "Scraped %d matches across %d editions of %d tournaments.\n",
			result.Matches, result.Archives, result.Tournaments)
		fmt.Fprintf(w, "Players: %d  Odds records: %d\n", result.Players, result.Odds)

		for _, status := range sortedKeysInt(result.ByStatus) {
			fmt.Fprintf(w, "  %-10s %d\n", status, result.ByStatus[status])
		}
	}
	fmt.Fprintf(w, "Datasets written to %s\n", result.DataDir)

	if verbose && len(result.Counters) > 0 {
		fmt.Fprintln(w, "\nCounters:")
		for _, name := range sortedKeysInt64(result.Counters) {
			fmt.Fprintf(w, "  %-28s %d\n", name, result.Counters[name])
		}
	}
	return nil
}

func sortedKeysInt(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedKeysInt64(m map[string]int64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
