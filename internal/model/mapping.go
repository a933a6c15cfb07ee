package model

import (
	"fmt"
	"strconv"
)

// Mapping is the flat field-name → value projection handed to tabular
// consumers. Key names and the NotFound absence marker are a stable
// contract; see the dataset writer.
type Mapping map[string]string

func opt(v string) string {
	if v == "" {
		return NotFound
	}
	return v
}

func unopt(v string) string {
	if v == NotFound {
		return ""
	}
	return v
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// ToMapping projects the tournament onto stable column names.
func (t *Tournament) ToMapping() Mapping {
	return Mapping{
		"id":          t.ID,
		"name":        t.Name,
		"surface":     opt(t.Surface),
		"category":    opt(t.Category),
		"location":    opt(t.Location),
		"archive_url": opt(t.ArchiveURL),
	}
}

// TournamentFromMapping inverts ToMapping.
func TournamentFromMapping(m Mapping) (*Tournament, error) {
	t, err := NewTournament(m["id"], m["name"])
	if err != nil {
		return nil, err
	}
	t.Surface = unopt(m["surface"])
	t.Category = unopt(m["category"])
	t.Location = unopt(m["location"])
	t.ArchiveURL = unopt(m["archive_url"])
	return t, nil
}

// ToMapping projects the archive edition onto stable column names.
func (a *TournamentArchive) ToMapping() Mapping {
	return Mapping{
		"id":            a.ID,
		"tournament_id": a.TournamentID,
		"name":          a.Name,
		"year":          a.Year,
		"url":           opt(a.URL),
		"results_url":   opt(a.ResultsURL),
		"winner":        opt(a.Winner),
	}
}

// TournamentArchiveFromMapping inverts ToMapping.
func TournamentArchiveFromMapping(m Mapping) (*TournamentArchive, error) {
	a, err := NewTournamentArchive(m["tournament_id"], m["name"], m["year"])
	if err != nil {
		return nil, err
	}
	a.URL = unopt(m["url"])
	a.ResultsURL = unopt(m["results_url"])
	a.Winner = unopt(m["winner"])
	return a, nil
}

// ToMapping projects the player onto stable column names.
func (p *Player) ToMapping() Mapping {
	return Mapping{
		"id":      p.ID,
		"name":    p.Name,
		"country": opt(p.Country),
	}
}

// PlayerFromMapping inverts ToMapping.
func PlayerFromMapping(m Mapping) (*Player, error) {
	return NewPlayer(m["id"], m["name"], unopt(m["country"]))
}

// ToMapping flattens the match, its players and its score into one
// row. Set columns appear only for sets actually played; a tiebreak
// column carries the loser's points or the NotFound marker.
func (mt *Match) ToMapping() Mapping {
	m := Mapping{
		"id":           mt.ID,
		"archive_id":   mt.ArchiveID,
		"round":        opt(mt.Round),
		"date":         opt(mt.Date),
		"timestamp":    opt(mt.Timestamp),
		"home_id":      mt.Home.ID,
		"home_name":    mt.Home.Name,
		"home_country": opt(mt.Home.Country),
		"away_id":      mt.Away.ID,
		"away_name":    mt.Away.Name,
		"away_country": opt(mt.Away.Country),
		"raw_status":   opt(mt.RawStatus),
		"status":       string(mt.Status),
		"winner":       strconv.Itoa(mt.Winner),
	}
	if mt.Score == nil {
		m["sets"] = NotFound
		return m
	}
	m["sets"] = strconv.Itoa(len(mt.Score.Sets))
	m["retired"] = strconv.FormatBool(mt.Score.Retired)
	if mt.Score.HasDuration {
		m["duration_minutes"] = strconv.Itoa(mt.Score.DurationMinutes)
	} else {
		m["duration_minutes"] = NotFound
	}
	for i, set := range mt.Score.Sets {
		prefix := fmt.Sprintf("set%d_", i+1)
		m[prefix+"home_games"] = strconv.Itoa(set.HomeGames)
		m[prefix+"away_games"] = strconv.Itoa(set.AwayGames)
		if set.TiebreakPlayed {
			m[prefix+"tiebreak"] = strconv.Itoa(set.TiebreakPoints)
		} else {
			m[prefix+"tiebreak"] = NotFound
		}
	}
	return m
}

// MatchFromMapping inverts ToMapping.
func MatchFromMapping(m Mapping) (*Match, error) {
	home, err := NewPlayer(m["home_id"], m["home_name"], unopt(m["home_country"]))
	if err != nil {
		return nil, fmt.Errorf("home player: %w", err)
	}
	away, err := NewPlayer(m["away_id"], m["away_name"], unopt(m["away_country"]))
	if err != nil {
		return nil, fmt.Errorf("away player: %w", err)
	}
	mt, err := NewMatch(m["id"], m["archive_id"], home, away)
	if err != nil {
		return nil, err
	}
	mt.Round = unopt(m["round"])
	mt.Date = unopt(m["date"])
	mt.Timestamp = unopt(m["timestamp"])
	mt.RawStatus = unopt(m["raw_status"])
	mt.Status = ParseMatchStatus(m["status"])
	if m["winner"] != "" && m["winner"] != NotFound {
		if mt.Winner, err = strconv.Atoi(m["winner"]); err != nil {
			return nil, fmt.Errorf("winner: %w", err)
		}
	}
	if m["sets"] == NotFound || m["sets"] == "" {
		return mt, nil
	}
	count, err := strconv.Atoi(m["sets"])
	if err != nil {
		return nil, fmt.Errorf("sets: %w", err)
	}
	score := &Score{Retired: m["retired"] == "true"}
	if d := m["duration_minutes"]; d != "" && d != NotFound {
		if score.DurationMinutes, err = strconv.Atoi(d); err != nil {
			return nil, fmt.Errorf("duration: %w", err)
		}
		score.HasDuration = true
	}
	for i := 1; i <= count; i++ {
		prefix := fmt.Sprintf("set%d_", i)
		hg, err := strconv.Atoi(m[prefix+"home_games"])
		if err != nil {
			return nil, fmt.Errorf("set %d home games: %w", i, err)
		}
		ag, err := strconv.Atoi(m[prefix+"away_games"])
		if err != nil {
			return nil, fmt.Errorf("set %d away games: %w", i, err)
		}
		set, err := NewSetScore(hg, ag)
		if err != nil {
			return nil, err
		}
		if tb := m[prefix+"tiebreak"]; tb != "" && tb != NotFound {
			if set.TiebreakPoints, err = strconv.Atoi(tb); err != nil {
				return nil, fmt.Errorf("set %d tiebreak: %w", i, err)
			}
			set.TiebreakPlayed = true
		}
		score.Sets = append(score.Sets, set)
	}
	mt.Score = score
	return mt, nil
}

func oddsValueToMapping(m Mapping, prefix string, v OddsValue) {
	if !v.Offered {
		m[prefix+"_open"] = NotFound
		m[prefix+"_close"] = NotFound
		return
	}
	m[prefix+"_open"] = formatFloat(v.Open)
	m[prefix+"_close"] = formatFloat(v.Close)
}

func oddsValueFromMapping(m Mapping, prefix string) (OddsValue, error) {
	open := m[prefix+"_open"]
	if open == NotFound || open == "" {
		return NotOffered(), nil
	}
	o, err := strconv.ParseFloat(open, 64)
	if err != nil {
		return OddsValue{}, fmt.Errorf("%s open: %w", prefix, err)
	}
	c, err := strconv.ParseFloat(m[prefix+"_close"], 64)
	if err != nil {
		return OddsValue{}, fmt.Errorf("%s close: %w", prefix, err)
	}
	return OfferedOdds(o, c)
}

// ToMapping projects the odds record onto stable column names. Sides
// that were not offered project as NotFound, never as zero.
func (o *Odds) ToMapping() Mapping {
	m := Mapping{
		"match_id":  o.MatchID,
		"bookmaker": o.Bookmaker,
		"market":    o.Market,
		"variant":   opt(o.Variant),
		"threshold": opt(o.Threshold),
	}
	oddsValueToMapping(m, "home", o.Home)
	oddsValueToMapping(m, "away", o.Away)
	return m
}

// OddsFromMapping inverts ToMapping.
func OddsFromMapping(m Mapping) (*Odds, error) {
	home, err := oddsValueFromMapping(m, "home")
	if err != nil {
		return nil, err
	}
	away, err := oddsValueFromMapping(m, "away")
	if err != nil {
		return nil, err
	}
	return &Odds{
		MatchID:   m["match_id"],
		Bookmaker: m["bookmaker"],
		Market:    m["market"],
		Variant:   unopt(m["variant"]),
		Threshold: unopt(m["threshold"]),
		Home:      home,
		Away:      away,
	}, nil
}
