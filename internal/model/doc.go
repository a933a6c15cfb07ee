// Package model defines the typed records built by the parsing
// pipeline: tournaments, their dated archive editions, players,
// matches, set scores and bookmaker odds.
//
// Records are write-once: constructors validate invariants up front and
// the parsers fill a match's status, score and odds exactly once.
// Optional fields use explicit absence (empty string, Offered/Played
// flags) and project to the NotFound marker in mappings, so a missing
// value can never be confused with a real zero.
package model
