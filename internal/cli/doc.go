// Package cli implements the command-line interface for tennis-results.
//
// The cli package provides the Cobra-based CLI that sequences the full
// scrape: tournament listing, per-tournament archives, per-edition
// results, then per-match status, score and odds feeds, ending in the
// dataset writer. Output is a text or JSON run summary; per-item parse
// failures are logged and counted, never fatal to the run.
package cli
