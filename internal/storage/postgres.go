package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/lib/pq"

	"github.com/tleroy/tennis-results/internal/model"
)

// PostgresStore upserts scraped records into Postgres. It is optional:
// the CLI only wires it when a DSN is configured.
type PostgresStore struct {
	db      *sql.DB
	builder sq.StatementBuilderType
}

// NewPostgresStore opens a connection, verifies it and ensures the schema.
func NewPostgresStore(ctx context.Context, dsn string) (*PostgresStore, error) {
	if dsn == "" {
		return nil, fmt.Errorf("postgres DSN is required")
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening postgres connection: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging postgres: %w", err)
	}

	s := &PostgresStore{
		db:      db,
		builder: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
	if err := s.initSchema(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing schema: %w", err)
	}
	return s, nil
}

// Close releases the underlying connection pool.
func (s *PostgresStore) Close() error {
	return s.db.Close()
}

func (s *PostgresStore) initSchema(ctx context.Context) error {
	query := `
	CREATE TABLE IF NOT EXISTS tournaments (
		id VARCHAR(64) PRIMARY KEY,
		name VARCHAR(200) NOT NULL,
		surface VARCHAR(20) NOT NULL,
		category VARCHAR(100) NOT NULL,
		location VARCHAR(200) NOT NULL,
		archive_url VARCHAR(500) NOT NULL
	);

	CREATE TABLE IF NOT EXISTS tournament_archives (
		id VARCHAR(64) PRIMARY KEY,
		tournament_id VARCHAR(64) NOT NULL,
		name VARCHAR(200) NOT NULL,
		year VARCHAR(10) NOT NULL,
		url VARCHAR(500) NOT NULL,
		results_url VARCHAR(500) NOT NULL,
		winner VARCHAR(200) NOT NULL
	);

	CREATE TABLE IF NOT EXISTS players (
		id VARCHAR(64) PRIMARY KEY,
		name VARCHAR(200) NOT NULL,
		country VARCHAR(100) NOT NULL
	);

	CREATE TABLE IF NOT EXISTS matches (
		id VARCHAR(64) PRIMARY KEY,
		archive_id VARCHAR(64) NOT NULL,
		round VARCHAR(100) NOT NULL,
		match_date VARCHAR(30) NOT NULL,
		home_player_id VARCHAR(64) NOT NULL,
		away_player_id VARCHAR(64) NOT NULL,
		status VARCHAR(20) NOT NULL,
		winner SMALLINT NOT NULL,
		score TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS odds (
		match_id VARCHAR(64) NOT NULL,
		bookmaker VARCHAR(100) NOT NULL,
		market VARCHAR(50) NOT NULL,
		variant VARCHAR(50) NOT NULL,
		threshold VARCHAR(50) NOT NULL,
		home_open VARCHAR(20) NOT NULL,
		home_close VARCHAR(20) NOT NULL,
		away_open VARCHAR(20) NOT NULL,
		away_close VARCHAR(20) NOT NULL,
		PRIMARY KEY (match_id, bookmaker, market, variant, threshold)
	);

	CREATE INDEX IF NOT EXISTS idx_archives_tournament ON tournament_archives(tournament_id);
	CREATE INDEX IF NOT EXISTS idx_matches_archive ON matches(archive_id);
	`
	_, err := s.db.ExecContext(ctx, query)
	return err
}

// SaveSnapshot upserts every record of the snapshot.
func (s *PostgresStore) SaveSnapshot(ctx context.Context, snapshot *Snapshot) error {
	for _, t := range snapshot.Tournaments {
		if err := s.saveTournament(ctx, t); err != nil {
			return fmt.Errorf("tournament %s: %w", t.ID, err)
		}
	}
	for _, a := range snapshot.Archives {
		if err := s.saveArchive(ctx, a); err != nil {
			return fmt.Errorf("archive %s: %w", a.ID, err)
		}
	}
	for _, p := range snapshot.Players {
		if err := s.savePlayer(ctx, p); err != nil {
			return fmt.Errorf("player %s: %w", p.ID, err)
		}
	}
	for _, m := range snapshot.Matches {
		if err := s.saveMatch(ctx, m); err != nil {
			return fmt.Errorf("match %s: %w", m.ID, err)
		}
	}
	for _, o := range snapshot.Odds {
		if err := s.saveOdds(ctx, o); err != nil {
			return fmt.Errorf("odds %s: %w", o.Key(), err)
		}
	}
	return nil
}

func (s *PostgresStore) saveTournament(ctx context.Context, t *model.Tournament) error {
	query := s.builder.
		Insert("tournaments").
		Columns("id", "name", "surface", "category", "location", "archive_url").
		Values(t.ID, t.Name, t.Surface, t.Category, t.Location, t.ArchiveURL).
		Suffix(`ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			surface = EXCLUDED.surface,
			category = EXCLUDED.category,
			location = EXCLUDED.location,
			archive_url = EXCLUDED.archive_url`)

	_, err := query.RunWith(s.db).ExecContext(ctx)
	return err
}

func (s *PostgresStore) saveArchive(ctx context.Context, a *model.TournamentArchive) error {
	query := s.builder.
		Insert("tournament_archives").
		Columns("id", "tournament_id", "name", "year", "url", "results_url", "winner").
		Values(a.ID, a.TournamentID, a.Name, a.Year, a.URL, a.ResultsURL, a.Winner).
		Suffix(`ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			url = EXCLUDED.url,
			results_url = EXCLUDED.results_url,
			winner = EXCLUDED.winner`)

	_, err := query.RunWith(s.db).ExecContext(ctx)
	return err
}

func (s *PostgresStore) savePlayer(ctx context.Context, p *model.Player) error {
	query := s.builder.
		Insert("players").
		Columns("id", "name", "country").
		Values(p.ID, p.Name, p.Country).
		Suffix(`ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			country = EXCLUDED.country`)

	_, err := query.RunWith(s.db).ExecContext(ctx)
	return err
}

func (s *PostgresStore) saveMatch(ctx context.Context, m *model.Match) error {
	score := model.NotFound
	if m.Score != nil {
		score = m.Score.String()
	}

	query := s.builder.
		Insert("matches").
		Columns("id", "archive_id", "round", "match_date",
			"home_player_id", "away_player_id", "status", "winner", "score").
		Values(m.ID, m.ArchiveID, m.Round, m.Date,
			m.Home.ID, m.Away.ID, string(m.Status), m.Winner, score).
		Suffix(`ON CONFLICT (id) DO UPDATE SET
			round = EXCLUDED.round,
			match_date = EXCLUDED.match_date,
			status = EXCLUDED.status,
			winner = EXCLUDED.winner,
			score = EXCLUDED.score`)

	_, err := query.RunWith(s.db).ExecContext(ctx)
	return err
}

func (s *PostgresStore) saveOdds(ctx context.Context, o *model.Odds) error {
	query := s.builder.
		Insert("odds").
		Columns("match_id", "bookmaker", "market", "variant", "threshold",
			"home_open", "home_close", "away_open", "away_close").
		Values(o.MatchID, o.Bookmaker, o.Market, o.Variant, o.Threshold,
			oddsColumn(o.Home, o.Home.Open), oddsColumn(o.Home, o.Home.Close),
			oddsColumn(o.Away, o.Away.Open), oddsColumn(o.Away, o.Away.Close)).
		Suffix(`ON CONFLICT (match_id, bookmaker, market, variant, threshold) DO UPDATE SET
			home_open = EXCLUDED.home_open,
			home_close = EXCLUDED.home_close,
			away_open = EXCLUDED.away_open,
			away_close = EXCLUDED.away_close`)

	_, err := query.RunWith(s.db).ExecContext(ctx)
	return err
}

func oddsColumn(v model.OddsValue, price float64) string {
	if !v.Offered {
		return model.NotFound
	}
	return fmt.Sprintf("%.2f", price)
}
