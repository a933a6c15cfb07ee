// Package extract provides stateless helpers for locating sub-patterns
// inside raw text fragments: digit runs, years, decimal odds tokens,
// clock durations, and the delimited-feed tokenizer shared by the
// parsers. All functions are total; absence is reported through an ok
// flag and the caller decides fallback policy.
package extract
