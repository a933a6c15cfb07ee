package extract

import (
	"regexp"
	"strconv"
)

var (
	numberRe   = regexp.MustCompile(`\d+`)
	yearRe     = regexp.MustCompile(`\b(\d{4})\b`)
	durationRe = regexp.MustCompile(`^(\d{1,2}):([0-5]\d)$`)

	// Decimal odds with 1-3 fraction digits, optionally followed by a
	// drift annotation: "1.85" or "1.85[u]1.91" ([u] rise, [d] drop).
	oddsRe = regexp.MustCompile(`^(\d+(?:\.\d{1,3})?)(?:\[[ud]\](\d+(?:\.\d{1,3})?))?$`)
)

// Number returns the first contiguous digit run in text.
func Number(text string) (int, bool) {
	m := numberRe.FindString(text)
	if m == "" {
		return 0, false
	}
	n, err := strconv.Atoi(m)
	if err != nil {
		return 0, false
	}
	return n, true
}

// Year returns the first standalone 4-digit run in text, e.g. the
// season in "ATP Acapulco 2024".
func Year(text string) (string, bool) {
	m := yearRe.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// OddsToken parses a decimal odds token. The closing price defaults to
// the opening one when no drift annotation is present.
func OddsToken(text string) (open, close float64, ok bool) {
	m := oddsRe.FindStringSubmatch(text)
	if m == nil {
		return 0, 0, false
	}
	open, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, 0, false
	}
	close = open
	if m[2] != "" {
		if close, err = strconv.ParseFloat(m[2], 64); err != nil {
			return 0, 0, false
		}
	}
	return open, close, true
}

// Duration parses a "H:MM" clock token into total minutes.
func Duration(text string) (int, bool) {
	m := durationRe.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	hours, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	minutes, err := strconv.Atoi(m[2])
	if err != nil {
		return 0, false
	}
	return hours*60 + minutes, true
}
