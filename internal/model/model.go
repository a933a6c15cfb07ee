package model

import (
	"crypto/sha1"
	"fmt"
	"strings"
)

// NotFound marks an absent optional value in mapping projections.
// Downstream tabular consumers rely on this exact string.
const NotFound = "not found"

// MatchStatus classifies a match's lifecycle state.
type MatchStatus string

const (
	StatusScheduled MatchStatus = "scheduled"
	StatusLive      MatchStatus = "live"
	StatusFinished  MatchStatus = "finished"
	StatusRetired   MatchStatus = "retired"
	StatusWalkover  MatchStatus = "walkover"
	StatusCancelled MatchStatus = "cancelled"
	StatusUnknown   MatchStatus = "unknown"
)

// ParseMatchStatus maps a stored status string back to its variant.
// Anything unrecognized is StatusUnknown.
func ParseMatchStatus(s string) MatchStatus {
	switch MatchStatus(s) {
	case StatusScheduled, StatusLive, StatusFinished, StatusRetired, StatusWalkover, StatusCancelled:
		return MatchStatus(s)
	default:
		return StatusUnknown
	}
}

// Tournament is one competition from the listing feed. Surface,
// Category and Location are optional and stay empty when the listing
// omits them.
type Tournament struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Surface    string `json:"surface,omitempty"`
	Category   string `json:"category,omitempty"`
	Location   string `json:"location,omitempty"`
	ArchiveURL string `json:"archive_url,omitempty"`
}

// NewTournament validates required fields and returns the record.
func NewTournament(id, name string) (*Tournament, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("tournament name must not be empty")
	}
	if id == "" {
		id = stableID("tournament", name)
	}
	return &Tournament{ID: id, Name: name}, nil
}

// TournamentArchive is one dated edition of a tournament.
type TournamentArchive struct {
	ID           string `json:"id"`
	TournamentID string `json:"tournament_id"`
	Name         string `json:"name"`
	Year         string `json:"year"`
	URL          string `json:"url,omitempty"`
	ResultsURL   string `json:"results_url,omitempty"`
	Winner       string `json:"winner,omitempty"`
}

// NewTournamentArchive requires a parent tournament reference and a
// season year. The archive's own ID is derived from both, so matches
// can reference the edition they belong to.
func NewTournamentArchive(tournamentID, name, year string) (*TournamentArchive, error) {
	if tournamentID == "" {
		return nil, fmt.Errorf("archive must reference a tournament")
	}
	if year == "" {
		return nil, fmt.Errorf("archive %q has no year", name)
	}
	return &TournamentArchive{
		ID:           stableID("archive", tournamentID+"|"+year),
		TournamentID: tournamentID,
		Name:         name,
		Year:         year,
	}, nil
}

// Player is shared by reference between the matches naming it.
type Player struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Country string `json:"country,omitempty"`
}

// NewPlayer validates the name and derives a stable ID from the
// normalized name and country when the source supplies none, so the
// same player resolves to the same record across match rows.
func NewPlayer(id, name, country string) (*Player, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("player name must not be empty")
	}
	if id == "" {
		id = stableID("player", PlayerKey(name, country))
	}
	return &Player{ID: id, Name: name, Country: country}, nil
}

// PlayerKey normalizes name+country for deduplication.
func PlayerKey(name, country string) string {
	return strings.ToLower(strings.TrimSpace(name)) + "|" + strings.ToLower(strings.TrimSpace(country))
}

// SetScore holds the game counts of one set. Tiebreak points are only
// meaningful when TiebreakPlayed is set.
type SetScore struct {
	HomeGames      int  `json:"home_games"`
	AwayGames      int  `json:"away_games"`
	TiebreakPlayed bool `json:"tiebreak_played,omitempty"`
	TiebreakPoints int  `json:"tiebreak_points,omitempty"`
}

// NewSetScore rejects negative game counts.
func NewSetScore(homeGames, awayGames int) (SetScore, error) {
	if homeGames < 0 || awayGames < 0 {
		return SetScore{}, fmt.Errorf("set score %d-%d: game counts must be non-negative", homeGames, awayGames)
	}
	return SetScore{HomeGames: homeGames, AwayGames: awayGames}, nil
}

// Score is the set-by-set result of a match. Retired marks a partial
// score truncated at the last completed set.
type Score struct {
	Sets            []SetScore `json:"sets"`
	DurationMinutes int        `json:"duration_minutes,omitempty"`
	HasDuration     bool       `json:"has_duration,omitempty"`
	Retired         bool       `json:"retired,omitempty"`
}

// SetsWon counts completed sets won per side.
func (s *Score) SetsWon() (home, away int) {
	for _, set := range s.Sets {
		switch {
		case set.HomeGames > set.AwayGames:
			home++
		case set.AwayGames > set.HomeGames:
			away++
		}
	}
	return home, away
}

// String renders the score in the human-readable token form the score
// parser accepts, e.g. "6-4 7-6(5)" or "6-2 3-1 ret.".
func (s *Score) String() string {
	var b strings.Builder
	for i, set := range s.Sets {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%d-%d", set.HomeGames, set.AwayGames)
		if set.TiebreakPlayed {
			fmt.Fprintf(&b, "(%d)", set.TiebreakPoints)
		}
	}
	if s.HasDuration {
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%d:%02d", s.DurationMinutes/60, s.DurationMinutes%60)
	}
	if s.Retired {
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString("ret.")
	}
	return b.String()
}

// Winner side markers on a Match.
const (
	WinnerNone = 0
	WinnerHome = 1
	WinnerAway = 2
)

// Match is created skeletal by the matches parser and enriched in
// place by the status and score parsers. Score stays nil unless the
// match was actually played.
type Match struct {
	ID        string      `json:"id"`
	ArchiveID string      `json:"archive_id"`
	Round     string      `json:"round,omitempty"`
	Date      string      `json:"date,omitempty"`
	Timestamp string      `json:"timestamp,omitempty"`
	Home      *Player     `json:"home"`
	Away      *Player     `json:"away"`
	RawStatus string      `json:"raw_status,omitempty"`
	Status    MatchStatus `json:"status"`
	Winner    int         `json:"winner,omitempty"`
	Score     *Score      `json:"score,omitempty"`
}

// NewMatch requires exactly two distinct player references. Status
// starts as StatusUnknown until the status parser classifies it.
func NewMatch(id, archiveID string, home, away *Player) (*Match, error) {
	if home == nil || away == nil {
		return nil, fmt.Errorf("match %s: both players are required", id)
	}
	if home.ID == away.ID {
		return nil, fmt.Errorf("match %s: players must be distinct (%s)", id, home.ID)
	}
	if id == "" {
		id = stableID("match", archiveID+"|"+home.ID+"|"+away.ID)
	}
	return &Match{ID: id, ArchiveID: archiveID, Home: home, Away: away, Status: StatusUnknown}, nil
}

// OddsValue is one outcome's decimal odds. Open is the opening price,
// Close the latest seen. Offered is false when the bookmaker did not
// price the outcome.
type OddsValue struct {
	Open    float64 `json:"open,omitempty"`
	Close   float64 `json:"close,omitempty"`
	Offered bool    `json:"offered"`
}

// OfferedOdds validates that priced odds are strictly above 1.0.
func OfferedOdds(open, close float64) (OddsValue, error) {
	if open <= 1.0 || close <= 1.0 {
		return OddsValue{}, fmt.Errorf("odds %v/%v: decimal odds must exceed 1.0", open, close)
	}
	return OddsValue{Open: open, Close: close, Offered: true}, nil
}

// NotOffered records explicit absence of a price.
func NotOffered() OddsValue {
	return OddsValue{}
}

// Odds is one bookmaker's prices for one market of one match. Home
// carries the first outcome (home player / over / the exact score),
// Away the second where the market has one.
type Odds struct {
	MatchID   string    `json:"match_id"`
	Bookmaker string    `json:"bookmaker"`
	Market    string    `json:"market"`
	Variant   string    `json:"variant,omitempty"`
	Threshold string    `json:"threshold,omitempty"`
	Home      OddsValue `json:"home"`
	Away      OddsValue `json:"away"`
}

// Key identifies the (bookmaker, market) pair for last-wins
// deduplication inside one odds panel.
func (o *Odds) Key() string {
	return strings.Join([]string{o.Bookmaker, o.Market, o.Variant, o.Threshold}, "|")
}

// stableID derives a deterministic identifier from stable fields, the
// same way snapshot diffing keys records.
func stableID(kind, seed string) string {
	h := sha1.New()
	h.Write([]byte(kind + "|" + seed))
	return fmt.Sprintf("%x", h.Sum(nil))[:16]
}
