// Package parse turns raw text and markup segments from the results
// site into domain records: the tournament listing, a tournament's
// archive of dated editions, the matches of one edition, and a match's
// status, score and bookmaker odds.
//
// Parsers are stateless between calls and never perform I/O; each call
// is a bounded computation over one already-retrieved segment. Failures
// that affect a single row are accumulated as Error values next to the
// records that did parse, so one malformed row never discards its
// siblings. Only a segment that cannot yield its required parent record
// (e.g. a tournament with no name) fails outright.
package parse
