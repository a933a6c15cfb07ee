package parse

import (
	"strings"

	"github.com/tleroy/tennis-results/internal/extract"
	"github.com/tleroy/tennis-results/internal/model"
)

// Listing feed keys. Each tournament block opens with ~MN÷; the name
// arrives in MU, the site's identifier in MTI, and the optional
// metadata in MT ("Name (Location), Surface") and MC (category).
const (
	keyTournamentBlock    = "MN"
	keyTournamentName     = "MU"
	keyTournamentID       = "MTI"
	keyTournamentMeta     = "MT"
	keyTournamentCategory = "MC"
)

var validSurfaces = map[string]bool{
	"hard":   true,
	"clay":   true,
	"grass":  true,
	"carpet": true,
}

// TournamentParser turns a tournament listing feed into Tournament
// records, one per ~MN÷ block.
type TournamentParser struct{}

// TournamentResult accumulates parsed records alongside per-block
// failures.
type TournamentResult struct {
	Tournaments []*model.Tournament
	Errors      []*Error
}

// Parse scans every tournament block in the listing. Blocks without an
// extractable name fail with a MissingRequiredField error; metadata is
// optional and left unset when absent.
func (p *TournamentParser) Parse(feed string) TournamentResult {
	var result TournamentResult
	for _, block := range extract.Segments(feed, keyTournamentBlock) {
		tournament, err := p.parseBlock(block)
		if err != nil {
			result.Errors = append(result.Errors, err)
			continue
		}
		result.Tournaments = append(result.Tournaments, tournament)
	}
	return result
}

// Block scan states.
const (
	awaitName = iota
	awaitMetadata
	blockDone
)

func (p *TournamentParser) parseBlock(block string) (*model.Tournament, *Error) {
	var name, id, meta, category string

	state := awaitName
	for _, f := range extract.Fields(block) {
		switch state {
		case awaitName:
			if f.Key == keyTournamentName {
				name = f.Value
				state = awaitMetadata
			}
		case awaitMetadata:
			switch f.Key {
			case keyTournamentID:
				id = f.Value
			case keyTournamentMeta:
				meta = f.Value
			case keyTournamentCategory:
				category = f.Value
				state = blockDone
			}
		}
		if state == blockDone {
			break
		}
	}

	if name == "" {
		return nil, newError(KindMissingRequiredField, "tournament", "listing", block)
	}
	tournament, err := model.NewTournament(id, name)
	if err != nil {
		return nil, newError(KindMissingRequiredField, "tournament", name, block)
	}
	tournament.Category = category
	tournament.Location, tournament.Surface = splitMeta(meta)
	return tournament, nil
}

// splitMeta pulls the optional location and surface out of a display
// string like "ATP Acapulco (Mexico), hard". Either part may be
// missing; an unrecognized surface is left unset rather than guessed.
func splitMeta(meta string) (location, surface string) {
	if meta == "" {
		return "", ""
	}
	if open := strings.LastIndex(meta, "("); open >= 0 {
		if close := strings.Index(meta[open:], ")"); close > 0 {
			location = strings.TrimSpace(meta[open+1 : open+close])
		}
	}
	if comma := strings.LastIndex(meta, ", "); comma >= 0 {
		candidate := strings.ToLower(strings.TrimSpace(meta[comma+2:]))
		if validSurfaces[candidate] {
			surface = candidate
		}
	}
	return location, surface
}
