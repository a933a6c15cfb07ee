package parse

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/tleroy/tennis-results/internal/extract"
	"github.com/tleroy/tennis-results/internal/model"
)

var (
	setTokenRe      = regexp.MustCompile(`^(\d+)-(\d+)(?:\((\d+)\))?$`)
	tiebreakTokenRe = regexp.MustCompile(`^\((\d+)\)$`)
)

// Retirement markers accepted mid-sequence. A marker truncates the set
// list at the last completed set; no final set is ever fabricated.
var retirementMarkers = map[string]bool{
	"ret":     true,
	"ret.":    true,
	"retired": true,
}

// ScoreParser reads one match's raw score text, e.g.
// "6-4 7-6(5) 2:14" or "3-6 6-3 ret.".
type ScoreParser struct{}

// Scan states.
const (
	readSet = iota
	readDuration
	scoreDone
)

// Parse walks the score tokens left to right: set tokens, an optional
// tiebreak annotation binding to the immediately preceding set, an
// optional duration clock, and an optional retirement marker. Any
// other token fails with InvalidScoreToken, aborting only this match's
// score.
func (p *ScoreParser) Parse(reference, text string) (*model.Score, *Error) {
	tokens := strings.Fields(text)
	if len(tokens) == 0 {
		return nil, newError(KindInvalidScoreToken, "score", reference, text)
	}

	score := &model.Score{}
	state := readSet

	for _, token := range tokens {
		if retirementMarkers[strings.ToLower(token)] {
			score.Retired = true
			state = scoreDone
			continue
		}

		switch {
		case state == readSet && setTokenRe.MatchString(token):
			set, err := p.parseSet(token)
			if err != nil {
				return nil, newError(KindInvalidScoreToken, "score", reference, token)
			}
			score.Sets = append(score.Sets, set)

		case state == readSet && tiebreakTokenRe.MatchString(token):
			// Standalone annotation: binds to the preceding set, never a
			// later one.
			if len(score.Sets) == 0 {
				return nil, newError(KindInvalidScoreToken, "score", reference, token)
			}
			last := &score.Sets[len(score.Sets)-1]
			if last.TiebreakPlayed {
				return nil, newError(KindInvalidScoreToken, "score", reference, token)
			}
			points, ok := extract.Number(token)
			if !ok {
				return nil, newError(KindInvalidScoreToken, "score", reference, token)
			}
			last.TiebreakPoints = points
			last.TiebreakPlayed = true

		case state == readSet && isDurationToken(token):
			minutes, _ := extract.Duration(token)
			score.DurationMinutes = minutes
			score.HasDuration = true
			state = readDuration

		default:
			return nil, newError(KindInvalidScoreToken, "score", reference, token)
		}
	}

	if len(score.Sets) == 0 && !score.Retired {
		return nil, newError(KindInvalidScoreToken, "score", reference, text)
	}
	return score, nil
}

func (p *ScoreParser) parseSet(token string) (model.SetScore, error) {
	m := setTokenRe.FindStringSubmatch(token)
	home, okHome := extract.Number(m[1])
	away, okAway := extract.Number(m[2])
	if !okHome || !okAway {
		return model.SetScore{}, fmt.Errorf("set token %q: unreadable game counts", token)
	}
	set, err := model.NewSetScore(home, away)
	if err != nil {
		return model.SetScore{}, err
	}
	if m[3] != "" {
		points, ok := extract.Number(m[3])
		if !ok {
			return model.SetScore{}, fmt.Errorf("set token %q: unreadable tiebreak", token)
		}
		set.TiebreakPoints = points
		set.TiebreakPlayed = true
	}
	return set, nil
}

func isDurationToken(token string) bool {
	_, ok := extract.Duration(token)
	return ok
}

// Score feed keys (the df_ per-match feed): home set games in BA..BI,
// away in BB..BJ, tiebreak points in DA..DJ, the overall clock in RB.
var (
	homeSetKeys      = []string{"BA", "BC", "BE", "BG", "BI"}
	awaySetKeys      = []string{"BB", "BD", "BF", "BH", "BJ"}
	homeTiebreakKeys = []string{"DA", "DC", "DE", "DG", "DI"}
	awayTiebreakKeys = []string{"DB", "DD", "DF", "DH", "DJ"}
	keyMatchClock    = "RB"
)

// FeedText flattens a score feed into the token text Parse consumes.
// Sets are emitted in order until the first absent pair; a tiebreak
// set carries the loser's points inline. retired appends the marker
// for partially played matches.
func FeedText(feed string, retired bool) string {
	fields := extract.Fields(feed)

	var tokens []string
	for i := range homeSetKeys {
		home, okHome := extract.FirstValue(fields, homeSetKeys[i])
		away, okAway := extract.FirstValue(fields, awaySetKeys[i])
		if !okHome || !okAway {
			break
		}
		token := home + "-" + away
		homeTB, okHomeTB := extract.FirstValue(fields, homeTiebreakKeys[i])
		awayTB, okAwayTB := extract.FirstValue(fields, awayTiebreakKeys[i])
		if okHomeTB && okAwayTB {
			if loser, ok := tiebreakLoserPoints(homeTB, awayTB); ok {
				token += "(" + loser + ")"
			}
		}
		tokens = append(tokens, token)
	}

	if clock, ok := extract.FirstValue(fields, keyMatchClock); ok {
		if _, valid := extract.Duration(clock); valid {
			tokens = append(tokens, clock)
		}
	}
	if retired {
		tokens = append(tokens, "ret.")
	}
	return strings.Join(tokens, " ")
}

func tiebreakLoserPoints(home, away string) (string, bool) {
	h, okH := extract.Number(home)
	a, okA := extract.Number(away)
	if !okH || !okA {
		return "", false
	}
	if h < a {
		return home, true
	}
	return away, true
}
