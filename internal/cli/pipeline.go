package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/tleroy/tennis-results/internal/fetch"
	"github.com/tleroy/tennis-results/internal/logger"
	"github.com/tleroy/tennis-results/internal/model"
	"github.com/tleroy/tennis-results/internal/parse"
	"github.com/tleroy/tennis-results/internal/storage"
)

// Pipeline runs one full scrape: listing, archives, results, then the
// per-match status, score and odds feeds.
type Pipeline struct {
	Client *fetch.Client

	// Category filters the listing to tournaments of one category
	// (e.g. "atp-singles"); empty keeps everything.
	Category string

	// MaxArchives caps the editions scraped per tournament; zero means
	// all of them.
	MaxArchives int

	// Bookmakers extends the odds parser's id table.
	Bookmakers map[string]string

	tournaments parse.TournamentParser
	archives    parse.ArchiveParser
	matches     parse.MatchesParser
	status      parse.StatusParser
	scores      parse.ScoreParser
}

// Run scrapes the listing feed and everything below it into one
// snapshot. Per-item parse failures are logged and counted; only
// transport-level failures on the listing itself abort the run.
func (p *Pipeline) Run(ctx context.Context, listingFeed string) (*storage.Snapshot, error) {
	listing, err := p.Client.Text(ctx, p.Client.ListingURL(listingFeed))
	if err != nil {
		return nil, fmt.Errorf("fetching listing: %w", err)
	}

	result := p.tournaments.Parse(listing)
	reportFailures(result.Errors)

	snapshot := &storage.Snapshot{}
	for _, tournament := range result.Tournaments {
		if p.Category != "" && tournament.Category != p.Category {
			continue
		}
		tournament.ArchiveURL = archivePath(tournament)
		snapshot.Tournaments = append(snapshot.Tournaments, tournament)

		if err := p.scrapeTournament(ctx, tournament, snapshot); err != nil {
			logger.Error("tournament skipped", logger.Fields{"tournament": tournament.Name}, err)
			logger.IncrCounter("tournaments_skipped")
		}
	}
	return snapshot, nil
}

// archivePath follows the site's URL scheme for a tournament's archive
// page: /tennis/<category>/<slug>/archive/.
func archivePath(t *model.Tournament) string {
	category := t.Category
	if category == "" {
		category = "atp-singles"
	}
	return "/tennis/" + category + "/" + slug(t.Name) + "/archive/"
}

func slug(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ' || r == '-':
			b.WriteByte('-')
		}
	}
	return strings.Trim(b.String(), "-")
}

func (p *Pipeline) scrapeTournament(ctx context.Context, tournament *model.Tournament, snapshot *storage.Snapshot) error {
	page, err := p.Client.Text(ctx, p.Client.Resolve(tournament.ArchiveURL))
	if err != nil {
		return fmt.Errorf("fetching archive page: %w", err)
	}

	result, err := p.archives.Parse(tournament, strings.NewReader(page))
	if err != nil {
		return err
	}
	reportFailures(result.Errors)

	editions := result.Archives
	if p.MaxArchives > 0 && len(editions) > p.MaxArchives {
		editions = editions[:p.MaxArchives]
	}

	for _, archive := range editions {
		snapshot.Archives = append(snapshot.Archives, archive)
		if err := p.scrapeEdition(ctx, tournament, archive, snapshot); err != nil {
			logger.Error("edition skipped", logger.Fields{"archive": archive.Name}, err)
			logger.IncrCounter("editions_skipped")
		}
	}
	return nil
}

func (p *Pipeline) scrapeEdition(ctx context.Context, tournament *model.Tournament, archive *model.TournamentArchive, snapshot *storage.Snapshot) error {
	page, err := p.Client.Text(ctx, p.Client.Resolve(archive.ResultsURL))
	if err != nil {
		return fmt.Errorf("fetching results page: %w", err)
	}
	feed, err := parse.ExtractResultsFeed(strings.NewReader(page))
	if err != nil {
		return err
	}

	result := p.matches.Parse(archive, feed)
	reportFailures(result.Errors)
	if result.Surface != "" && tournament.Surface == "" {
		tournament.Surface = result.Surface
	}

	snapshot.Players = append(snapshot.Players, result.Players...)
	for _, match := range result.Matches {
		p.scrapeMatch(ctx, match, snapshot)
		snapshot.Matches = append(snapshot.Matches, match)
	}

	logger.Info("edition scraped", logger.Fields{
		"archive": archive.Name,
		"matches": len(result.Matches),
		"players": len(result.Players),
	})
	return nil
}

// scrapeMatch enriches one skeletal match in place. Feed fetch failures
// and parse failures degrade the match, never drop it: the skeletal
// record from the results feed always survives.
func (p *Pipeline) scrapeMatch(ctx context.Context, match *model.Match, snapshot *storage.Snapshot) {
	if feed, err := p.Client.Text(ctx, p.Client.StatusFeedURL(match.ID)); err != nil {
		logger.Warn("status feed unavailable", logger.Fields{"match": match.ID, "error": err.Error()})
	} else if parseErr := p.status.Apply(match, feed); parseErr != nil {
		reportFailures([]*parse.Error{parseErr})
	}

	if match.Status == model.StatusFinished || match.Status == model.StatusRetired {
		p.scrapeScore(ctx, match)
	}

	if feed, err := p.Client.Text(ctx, p.Client.OddsFeedURL(match.ID)); err != nil {
		logger.Warn("odds feed unavailable", logger.Fields{"match": match.ID, "error": err.Error()})
	} else {
		odds := parse.OddsParser{Bookmakers: p.Bookmakers}
		result := odds.Parse(match.ID, feed)
		reportFailures(result.Errors)
		snapshot.Odds = append(snapshot.Odds, result.Odds...)
	}
}

func (p *Pipeline) scrapeScore(ctx context.Context, match *model.Match) {
	feed, err := p.Client.Text(ctx, p.Client.ScoreFeedURL(match.ID))
	if err != nil {
		logger.Warn("score feed unavailable", logger.Fields{"match": match.ID, "error": err.Error()})
		return
	}

	text := parse.FeedText(feed, match.Status == model.StatusRetired)
	score, parseErr := p.scores.Parse(match.ID, text)
	if parseErr != nil {
		reportFailures([]*parse.Error{parseErr})
		return
	}
	match.Score = score

	// A finished match without a winner side falls back to sets won.
	if match.Winner == model.WinnerNone {
		home, away := score.SetsWon()
		switch {
		case home > away:
			match.Winner = model.WinnerHome
		case away > home:
			match.Winner = model.WinnerAway
		}
	}
}

func reportFailures(errs []*parse.Error) {
	for _, e := range errs {
		logger.ParseFailure(e.Stage, e.Reference, string(e.Kind), e.Snippet)
	}
}
