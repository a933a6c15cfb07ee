package parse

import (
	"strings"
	"testing"

	"github.com/tleroy/tennis-results/internal/model"
)

func testArchive(t *testing.T) *model.TournamentArchive {
	t.Helper()
	archive, err := model.NewTournamentArchive("t100", "ATP Acapulco 2024", "2024")
	if err != nil {
		t.Fatal(err)
	}
	return archive
}

func matchRowFeed(id, home, homeCountry, away, awayCountry string) string {
	return "~AA÷" + id + "¬AD÷1709406000¬AC÷3¬" +
		"PX÷h_" + id + "¬WU÷" + home + "¬FU÷" + homeCountry + "¬" +
		"PY÷a_" + id + "¬WV÷" + away + "¬FV÷" + awayCountry + "¬"
}

func TestMatchesParserParse(t *testing.T) {
	feed := "SA÷2¬ZA÷Acapulco (Mexico), clay¬ZEE÷x¬" +
		"~ER÷Final¬" +
		matchRowFeed("m1", "Alcaraz C.", "Spain", "Zverev A.", "Germany") +
		"~ER÷Semi-finals¬" +
		matchRowFeed("m2", "Alcaraz C.", "Spain", "Ruud C.", "Norway") +
		"~AA÷m3¬AD÷1709300000¬PX÷h_m3¬WU÷¬FU÷¬PY÷a_m3¬WV÷Paul T.¬FV÷USA¬" +
		matchRowFeed("m4", "Zverev A.", "Germany", "Paul T.", "USA") +
		"~ER÷1/8-finals¬" +
		matchRowFeed("m5", "Ruud C.", "Norway", "Monfils G.", "France")

	archive := testArchive(t)
	var p MatchesParser
	result := p.Parse(archive, feed)

	if len(result.Matches) != 4 {
		t.Fatalf("matches = %d, want 4", len(result.Matches))
	}
	if len(result.Errors) != 1 {
		t.Fatalf("errors = %d, want 1", len(result.Errors))
	}
	if result.Errors[0].Kind != KindMalformedRow {
		t.Errorf("error kind = %q, want %q", result.Errors[0].Kind, KindMalformedRow)
	}
	if !strings.Contains(result.Errors[0].Reference, "m3") {
		t.Errorf("error reference = %q, want the row id", result.Errors[0].Reference)
	}

	if result.Surface != "clay" {
		t.Errorf("surface = %q, want clay", result.Surface)
	}

	final := result.Matches[0]
	if final.ID != "m1" {
		t.Errorf("first match ID = %q, want m1", final.ID)
	}
	if final.Round != "final" {
		t.Errorf("round = %q, want final", final.Round)
	}
	if final.ArchiveID != archive.ID {
		t.Errorf("ArchiveID = %q, want %q", final.ArchiveID, archive.ID)
	}
	if final.Date != "2024-03-02 19:00:00" {
		t.Errorf("Date = %q", final.Date)
	}
	if final.Timestamp != "1709406000" {
		t.Errorf("Timestamp = %q", final.Timestamp)
	}
	if final.RawStatus != "3" {
		t.Errorf("RawStatus = %q", final.RawStatus)
	}
	if final.Status != model.StatusUnknown {
		t.Errorf("skeletal status = %q, want unknown", final.Status)
	}

	// Semi-final rows keep the header until the next one.
	if result.Matches[1].Round != "semi_finals" || result.Matches[2].Round != "semi_finals" {
		t.Errorf("semi rounds = %q, %q", result.Matches[1].Round, result.Matches[2].Round)
	}
	if result.Matches[3].Round != "round_of_16" {
		t.Errorf("last round = %q, want round_of_16", result.Matches[3].Round)
	}
}

func TestMatchesParserPlayerDedup(t *testing.T) {
	feed := "~ER÷Final¬" +
		matchRowFeed("m1", "Alcaraz C.", "Spain", "Zverev A.", "Germany") +
		"~ER÷Semi-finals¬" +
		matchRowFeed("m2", "Alcaraz C.", "Spain", "Ruud C.", "Norway")

	var p MatchesParser
	result := p.Parse(testArchive(t), feed)

	if len(result.Players) != 3 {
		t.Fatalf("players = %d, want 3", len(result.Players))
	}
	if result.Matches[0].Home != result.Matches[1].Home {
		t.Error("repeated player should resolve to the same record")
	}
	// First occurrence wins: the id from m1 sticks.
	if result.Matches[1].Home.ID != "h_m1" {
		t.Errorf("deduped home ID = %q, want h_m1", result.Matches[1].Home.ID)
	}
}

func TestMatchesParserSkippedRowAddsNoPlayers(t *testing.T) {
	// Home side resolves fine, away side is blank. The whole row is
	// skipped and the home player must not linger in the output.
	feed := "~AA÷m1¬PX÷h1¬WU÷Alcaraz C.¬FU÷Spain¬PY÷a1¬WV÷¬FV÷¬"

	var p MatchesParser
	result := p.Parse(testArchive(t), feed)

	if len(result.Matches) != 0 {
		t.Fatalf("matches = %d, want 0", len(result.Matches))
	}
	if len(result.Errors) != 1 || result.Errors[0].Kind != KindMalformedRow {
		t.Fatalf("errors = %v, want one malformed row", result.Errors)
	}
	if len(result.Players) != 0 {
		t.Fatalf("players = %v, want none from a skipped row", result.Players)
	}
}

func TestMatchesParserSkippedRowKeepsDedupFirstWins(t *testing.T) {
	// The broken m1 row must not claim the name+country slot; the later
	// good row's id wins the dedup table.
	feed := "~AA÷m1¬PX÷h1¬WU÷Alcaraz C.¬FU÷Spain¬PY÷a1¬WV÷¬FV÷¬" +
		matchRowFeed("m2", "Alcaraz C.", "Spain", "Ruud C.", "Norway")

	var p MatchesParser
	result := p.Parse(testArchive(t), feed)

	if len(result.Matches) != 1 {
		t.Fatalf("matches = %d, want 1", len(result.Matches))
	}
	if len(result.Players) != 2 {
		t.Fatalf("players = %d, want 2", len(result.Players))
	}
	if result.Matches[0].Home.ID != "h_m2" {
		t.Errorf("home ID = %q, want h_m2", result.Matches[0].Home.ID)
	}
}

func TestMatchesParserEmptyFeed(t *testing.T) {
	var p MatchesParser
	result := p.Parse(testArchive(t), "")
	if len(result.Matches) != 0 || len(result.Errors) != 0 {
		t.Errorf("empty feed: matches = %d, errors = %d", len(result.Matches), len(result.Errors))
	}
}

func TestExtractResultsFeed(t *testing.T) {
	page := "<html><head><script>var x = 1;</script></head><body>" +
		"<script>cjs.initialFeeds['results'] = {\n\tdata: " +
		"`~AA÷m1¬AD÷1709406000¬`,\n};</script>" +
		"</body></html>"

	feed, err := ExtractResultsFeed(strings.NewReader(page))
	if err != nil {
		t.Fatalf("ExtractResultsFeed: %v", err)
	}
	if feed != "~AA÷m1¬AD÷1709406000¬" {
		t.Errorf("feed = %q", feed)
	}
}

func TestExtractResultsFeedMissing(t *testing.T) {
	page := "<html><body><script>var y = 2;</script></body></html>"
	if _, err := ExtractResultsFeed(strings.NewReader(page)); err == nil {
		t.Fatal("expected error when no results feed is embedded")
	}
}
