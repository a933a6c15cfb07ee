// Package storage persists scraped tennis results to local files and,
// optionally, to Postgres.
//
// Each run writes CSV datasets (tournaments, archives, players, matches,
// odds) built from mapping projections of the domain records, plus a
// combined snapshot.json for diffing across runs. When a database DSN is
// configured the same records are upserted into Postgres.
package storage
