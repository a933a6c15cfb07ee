package parse

import (
	"regexp"

	"github.com/tleroy/tennis-results/internal/extract"
	"github.com/tleroy/tennis-results/internal/model"
)

// Status feed keys (the dc_ per-match feed): DB carries the raw status
// text or numeric code, DJ the winning side (H/A).
const (
	keyStatusValue = "DB"
	keyWinnerSide  = "DJ"
)

// statusRule maps a raw-status pattern to its variant. Rules are
// ordered most specific first: a retirement must not classify as a
// plain finish, and a walkover is not a cancellation.
type statusRule struct {
	pattern *regexp.Regexp
	status  model.MatchStatus
}

// The numeric codes are the site's own: 1 scheduled, 2 live,
// 3 finished, 8 retired, 9 walkover, 54 awarded (won without play).
var statusRules = []statusRule{
	{regexp.MustCompile(`(?i)retired|\bret\.?$|^8$`), model.StatusRetired},
	{regexp.MustCompile(`(?i)walk\s?-?over|\bw\.?o\.?\b|awarded|^9$|^54$`), model.StatusWalkover},
	{regexp.MustCompile(`(?i)cancell?ed|abandoned|postponed|^4$`), model.StatusCancelled},
	{regexp.MustCompile(`(?i)\blive\b|in progress|set \d|^2$`), model.StatusLive},
	{regexp.MustCompile(`(?i)finished|\bfinish\b|\bended\b|after penalties|^3$`), model.StatusFinished},
	{regexp.MustCompile(`(?i)scheduled|not started|^1$`), model.StatusScheduled},
}

var winnerSides = map[string]int{
	"H": model.WinnerHome,
	"A": model.WinnerAway,
}

// StatusParser classifies a match's lifecycle state from its raw
// status text.
type StatusParser struct{}

// Classify returns the variant for raw status text. Unrecognized text
// classifies as StatusUnknown with ok=false; Unknown is a valid
// terminal state, never an error.
func (p *StatusParser) Classify(raw string) (model.MatchStatus, bool) {
	for _, rule := range statusRules {
		if rule.pattern.MatchString(raw) {
			return rule.status, true
		}
	}
	return model.StatusUnknown, false
}

// Apply reads a match's status feed, updates the match's raw status,
// classification and winner side in place, and reports an
// UnrecognizedStatus error when the text fell through to Unknown. The
// match record stays valid either way.
func (p *StatusParser) Apply(match *model.Match, feed string) *Error {
	fields := extract.Fields(feed)

	if raw, ok := extract.FirstValue(fields, keyStatusValue); ok {
		match.RawStatus = raw
	}
	if side, ok := extract.FirstValue(fields, keyWinnerSide); ok {
		match.Winner = winnerSides[side]
	}

	status, recognized := p.Classify(match.RawStatus)
	match.Status = status
	if !recognized {
		return newError(KindUnrecognizedStatus, "status", match.ID, match.RawStatus)
	}
	return nil
}
