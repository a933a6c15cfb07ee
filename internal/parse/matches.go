package parse

import (
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/tleroy/tennis-results/internal/extract"
	"github.com/tleroy/tennis-results/internal/model"
)

// Results feed keys. ~AA÷ opens a match row (its value is the match
// id), ~ER÷ opens a round header applying to the rows that follow, and
// the header block before the first row carries the edition banner in
// ZA ("Acapulco (Mexico), hard").
const (
	keyMatchRow    = "AA"
	keyRoundHeader = "ER"
	keyBanner      = "ZA"
	keyKickoff     = "AD"
	keyRawStatus   = "AC"
	keyHomeID      = "PX"
	keyHomeName    = "WU"
	keyHomeCountry = "FU"
	keyAwayID      = "PY"
	keyAwayName    = "WV"
	keyAwayCountry = "FV"
)

// Round display names used by the site, normalized for downstream
// grouping. Anything else is kept verbatim.
var roundNames = map[string]string{
	"Final":             "final",
	"Semi-finals":       "semi_finals",
	"3rd place":         "third_place",
	"Quarter-finals":    "quarter_finals",
	"1/8-finals":        "round_of_16",
	"1/16-finals":       "round_of_32",
	"1/32-finals":       "round_of_64",
	"1/64-finals":       "round_of_128",
	"Qualifying Finals": "qualifying",
}

var resultsFeedRe = regexp.MustCompile(`cjs\.initialFeeds\['results'\] = \{[\s\S]*?data: ` + "`(.*?)`")

// ExtractResultsFeed locates the embedded results feed inside a
// results page's script tags.
func ExtractResultsFeed(markup io.Reader) (string, error) {
	doc, err := goquery.NewDocumentFromReader(markup)
	if err != nil {
		return "", fmt.Errorf("parsing results markup: %w", err)
	}
	var feed string
	doc.Find("script").EachWithBreak(func(i int, script *goquery.Selection) bool {
		if m := resultsFeedRe.FindStringSubmatch(script.Text()); m != nil {
			feed = m[1]
			return false
		}
		return true
	})
	if feed == "" {
		return "", fmt.Errorf("results feed not found in page scripts")
	}
	return feed, nil
}

// MatchesParser turns one edition's results feed into skeletal Match
// records plus the deduplicated Player records they reference.
type MatchesParser struct{}

// MatchesResult carries the ordered matches, the players in first
// occurrence order, the edition surface from the banner, and the rows
// that were skipped.
type MatchesResult struct {
	Surface string
	Matches []*model.Match
	Players []*model.Player
	Errors  []*Error
}

// matchRow accumulates one row's fields during the scan; the first
// value seen for a key wins.
type matchRow struct {
	id     string
	round  string
	fields map[string]string
	raw    []string
}

func (r *matchRow) set(f extract.Field) {
	r.raw = append(r.raw, f.Key+"÷"+f.Value)
	if _, dup := r.fields[f.Key]; !dup {
		r.fields[f.Key] = f.Value
	}
}

// Parse scans the feed row by row. Round headers reset the current
// round context; match rows that cannot yield two distinct players are
// recorded as MalformedRow and skipped, leaving the rest of the
// edition intact. The player table is scoped to this call only.
func (p *MatchesParser) Parse(archive *model.TournamentArchive, feed string) MatchesResult {
	var result MatchesResult

	players := make(map[string]*model.Player)
	currentRound := ""
	var row *matchRow

	flush := func() {
		if row == nil {
			return
		}
		match, err := p.buildMatch(archive, row, players, &result)
		if err != nil {
			result.Errors = append(result.Errors, err)
		} else {
			result.Matches = append(result.Matches, match)
		}
		row = nil
	}

	for _, f := range extract.Fields(feed) {
		if f.NewRow {
			flush()
			switch f.Key {
			case keyRoundHeader:
				if normalized, ok := roundNames[f.Value]; ok {
					currentRound = normalized
				} else {
					currentRound = f.Value
				}
			case keyMatchRow:
				row = &matchRow{id: f.Value, round: currentRound, fields: make(map[string]string)}
			}
			continue
		}
		if row != nil {
			row.set(f)
			continue
		}
		if f.Key == keyBanner {
			result.Surface = bannerSurface(f.Value)
		}
	}
	flush()

	return result
}

func (p *MatchesParser) buildMatch(archive *model.TournamentArchive, row *matchRow, players map[string]*model.Player, result *MatchesResult) (*model.Match, *Error) {
	reference := archive.ID + "/" + row.id
	snippet := strings.Join(row.raw, "¬")

	staged := make(map[string]*model.Player)
	var added []*model.Player

	home, err := p.resolvePlayer(row, keyHomeID, keyHomeName, keyHomeCountry, players, staged, &added)
	if err != nil {
		return nil, newError(KindMalformedRow, "matches", reference, snippet)
	}
	away, err := p.resolvePlayer(row, keyAwayID, keyAwayName, keyAwayCountry, players, staged, &added)
	if err != nil {
		return nil, newError(KindMalformedRow, "matches", reference, snippet)
	}

	match, err := model.NewMatch(row.id, archive.ID, home, away)
	if err != nil {
		return nil, newError(KindMalformedRow, "matches", reference, snippet)
	}

	// The row is accepted; only now do its new players enter the dedup
	// table, so a skipped row never leaves a player behind.
	for _, player := range added {
		players[model.PlayerKey(player.Name, player.Country)] = player
		result.Players = append(result.Players, player)
	}
	match.Round = row.round
	match.RawStatus = row.fields[keyRawStatus]
	if ts, ok := extract.Number(row.fields[keyKickoff]); ok {
		match.Timestamp = strconv.Itoa(ts)
		match.Date = time.Unix(int64(ts), 0).UTC().Format("2006-01-02 15:04:05")
	}
	return match, nil
}

// resolvePlayer builds or reuses a Player for one side of the row.
// Deduplication is by normalized name+country; the first occurrence
// wins and later rows reuse its record. New players land in the staged
// table, committed by the caller only when the whole row parses.
func (p *MatchesParser) resolvePlayer(row *matchRow, idKey, nameKey, countryKey string, players, staged map[string]*model.Player, added *[]*model.Player) (*model.Player, error) {
	name := row.fields[nameKey]
	country := row.fields[countryKey]

	key := model.PlayerKey(name, country)
	if existing, ok := players[key]; ok {
		return existing, nil
	}
	if pending, ok := staged[key]; ok {
		return pending, nil
	}
	player, err := model.NewPlayer(row.fields[idKey], name, country)
	if err != nil {
		return nil, err
	}
	staged[key] = player
	*added = append(*added, player)
	return player, nil
}

// bannerSurface pulls the surface off the banner's trailing ", hard"
// part; an unrecognized value is dropped rather than guessed.
func bannerSurface(banner string) string {
	comma := strings.LastIndex(banner, ", ")
	if comma < 0 {
		return ""
	}
	surface := strings.ToLower(strings.TrimSpace(banner[comma+2:]))
	if !validSurfaces[surface] {
		return ""
	}
	return surface
}
