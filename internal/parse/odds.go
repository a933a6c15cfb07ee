package parse

import (
	"strings"

	"github.com/tleroy/tennis-results/internal/extract"
	"github.com/tleroy/tennis-results/internal/model"
)

// Odds feed keys: ~OA÷ opens a market (type in OAU), ~OB÷ a market
// variant (the variant name leads the segment), ~OCT÷ a threshold
// group (value in OC), and ~OE÷ a bookmaker row (the id leads the
// segment; display name in OD, outcome values in XB/XC).
const (
	keyMarket      = "OA"
	keyMarketType  = "OAU"
	keyVariant     = "OB"
	keyThreshold   = "OCT"
	keyThresholdAt = "OC"
	keyBookmaker   = "OE"
	keyDisplayName = "OD"
	keyHomeValue   = "XB"
	keyAwayValue   = "XC"
)

const marketCorrectScore = "correct-score"

// Bookmaker ids seen on the odds panels. Unknown ids fall back to the
// row's display name so one new bookmaker never drops its rows.
var bookmakerNames = map[string]string{
	"129": "Bwin",
	"141": "Betclic",
	"160": "Unibet",
	"264": "Winamax",
	"398": "Netbet",
	"484": "Parions-Sport",
}

// OddsParser turns a match's odds panel into Odds records, one per
// (bookmaker, market, variant, threshold).
type OddsParser struct {
	// Bookmakers overrides or extends the built-in id table.
	Bookmakers map[string]string
}

// OddsResult accumulates records alongside skipped bookmaker rows.
type OddsResult struct {
	Odds   []*model.Odds
	Errors []*Error
}

// Parse scans the panel's markets, variants, threshold groups and
// bookmaker rows. A value token that is not a valid odds token leaves
// that outcome recorded as not offered; the rest of the row and its
// siblings are unaffected. A repeated (bookmaker, market) pair keeps
// the last occurrence, since the site re-emits rows on update.
func (p *OddsParser) Parse(matchID, feed string) OddsResult {
	var result OddsResult
	index := make(map[string]int)

	for _, market := range extract.Segments(feed, keyMarket) {
		marketType, _ := extract.FirstValue(extract.Fields(market), keyMarketType)
		for _, variant := range extract.Segments(market, keyVariant) {
			variantName := leadingToken(variant)

			groups := extract.Segments(variant, keyThreshold)
			if len(groups) == 0 {
				p.parseRows(matchID, marketType, variantName, "", variant, index, &result)
				continue
			}
			for _, group := range groups {
				threshold := thresholdLabel(group)
				p.parseRows(matchID, marketType, variantName, threshold, group, index, &result)
			}
		}
	}
	return result
}

func (p *OddsParser) parseRows(matchID, market, variant, threshold, segment string, index map[string]int, result *OddsResult) {
	for _, row := range extract.Segments(segment, keyBookmaker) {
		odds, err := p.parseRow(matchID, market, variant, threshold, row)
		if err != nil {
			result.Errors = append(result.Errors, err)
			continue
		}
		if at, seen := index[odds.Key()]; seen {
			result.Odds[at] = odds
			continue
		}
		index[odds.Key()] = len(result.Odds)
		result.Odds = append(result.Odds, odds)
	}
}

func (p *OddsParser) parseRow(matchID, market, variant, threshold, row string) (*model.Odds, *Error) {
	fields := extract.Fields(row)

	id := leadingToken(row)
	display, _ := extract.FirstValue(fields, keyDisplayName)
	name := p.bookmakerName(id, display)
	if name == "" {
		return nil, newError(KindMalformedRow, "odds", matchID, row)
	}

	odds := &model.Odds{
		MatchID:   matchID,
		Bookmaker: name,
		Market:    market,
		Variant:   variant,
		Threshold: threshold,
	}

	homeToken, _ := extract.FirstValue(fields, keyHomeValue)
	awayToken, _ := extract.FirstValue(fields, keyAwayValue)
	if market == marketCorrectScore {
		// Single-outcome market: the one price arrives in XC.
		odds.Home = oddsValue(awayToken)
		odds.Away = model.NotOffered()
		return odds, nil
	}
	odds.Home = oddsValue(homeToken)
	odds.Away = oddsValue(awayToken)
	return odds, nil
}

func (p *OddsParser) bookmakerName(id, display string) string {
	if name, ok := p.Bookmakers[id]; ok {
		return name
	}
	if name, ok := bookmakerNames[id]; ok {
		return name
	}
	return strings.TrimSpace(display)
}

// oddsValue converts a raw token into a priced or not-offered value.
// Absence is explicit: an unreadable token or a price at or below 1.0
// records as not offered, never as zero.
func oddsValue(token string) model.OddsValue {
	open, close, ok := extract.OddsToken(strings.TrimSpace(token))
	if !ok {
		return model.NotOffered()
	}
	value, err := model.OfferedOdds(open, close)
	if err != nil {
		return model.NotOffered()
	}
	return value
}

// leadingToken returns the text before the first field separator: the
// variant name of an ~OB÷ segment or the bookmaker id of an ~OE÷ row.
func leadingToken(segment string) string {
	if idx := strings.IndexAny(segment, "¬~"); idx >= 0 {
		segment = segment[:idx]
	}
	return strings.TrimSpace(segment)
}

// thresholdLabel joins an over-under group's kind and value ("Games"
// + "21.5") or returns a correct-score line ("2:0") as-is.
func thresholdLabel(group string) string {
	kind := leadingToken(group)
	value, ok := extract.FirstValue(extract.Fields(group), keyThresholdAt)
	if !ok {
		return kind
	}
	if kind == "" || kind == value {
		return value
	}
	return kind + " " + value
}
