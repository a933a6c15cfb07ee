package parse

import (
	"testing"

	"github.com/tleroy/tennis-results/internal/model"
)

func TestScoreParserParse(t *testing.T) {
	tests := []struct {
		name         string
		text         string
		wantSets     []model.SetScore
		wantRetired  bool
		wantDuration int
	}{
		{
			name: "straight sets",
			text: "6-4 6-2",
			wantSets: []model.SetScore{
				{HomeGames: 6, AwayGames: 4},
				{HomeGames: 6, AwayGames: 2},
			},
		},
		{
			name: "inline tiebreak",
			text: "6-4 7-6(5)",
			wantSets: []model.SetScore{
				{HomeGames: 6, AwayGames: 4},
				{HomeGames: 7, AwayGames: 6, TiebreakPlayed: true, TiebreakPoints: 5},
			},
		},
		{
			name: "standalone tiebreak binds to preceding set",
			text: "7-6 (3) 6-4",
			wantSets: []model.SetScore{
				{HomeGames: 7, AwayGames: 6, TiebreakPlayed: true, TiebreakPoints: 3},
				{HomeGames: 6, AwayGames: 4},
			},
		},
		{
			name: "retirement truncates",
			text: "6-2 3-1 ret.",
			wantSets: []model.SetScore{
				{HomeGames: 6, AwayGames: 2},
				{HomeGames: 3, AwayGames: 1},
			},
			wantRetired: true,
		},
		{
			name: "retired marker spelled out",
			text: "2-0 retired",
			wantSets: []model.SetScore{
				{HomeGames: 2, AwayGames: 0},
			},
			wantRetired: true,
		},
		{
			name: "duration clock",
			text: "6-3 6-4 2:14",
			wantSets: []model.SetScore{
				{HomeGames: 6, AwayGames: 3},
				{HomeGames: 6, AwayGames: 4},
			},
			wantDuration: 134,
		},
		{
			name:        "retired before any set",
			text:        "ret.",
			wantRetired: true,
		},
	}

	var p ScoreParser
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score, err := p.Parse("m1", tt.text)
			if err != nil {
				t.Fatalf("Parse(%q): %v", tt.text, err)
			}
			if len(score.Sets) != len(tt.wantSets) {
				t.Fatalf("sets = %d, want %d", len(score.Sets), len(tt.wantSets))
			}
			for i, want := range tt.wantSets {
				if score.Sets[i] != want {
					t.Errorf("set %d = %+v, want %+v", i+1, score.Sets[i], want)
				}
			}
			if score.Retired != tt.wantRetired {
				t.Errorf("Retired = %v, want %v", score.Retired, tt.wantRetired)
			}
			if tt.wantDuration > 0 {
				if !score.HasDuration || score.DurationMinutes != tt.wantDuration {
					t.Errorf("duration = %d (has=%v), want %d",
						score.DurationMinutes, score.HasDuration, tt.wantDuration)
				}
			} else if score.HasDuration {
				t.Errorf("unexpected duration %d", score.DurationMinutes)
			}
		})
	}
}

func TestScoreParserInvalid(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"empty text", ""},
		{"garbage token", "6-4 banana 6-2"},
		{"leading tiebreak", "(5) 6-4"},
		{"double tiebreak", "7-6(5) (3)"},
		{"duration only", "2:14"},
		{"repeated clock", "6-4 2:14 3:05"},
		{"clock after retirement", "6-4 ret. 2:14"},
		{"negative games", "6--4"},
	}

	var p ScoreParser
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score, err := p.Parse("m1", tt.text)
			if err == nil {
				t.Fatalf("Parse(%q) = %+v, want error", tt.text, score)
			}
			if err.Kind != KindInvalidScoreToken {
				t.Errorf("kind = %q, want %q", err.Kind, KindInvalidScoreToken)
			}
			if err.Reference != "m1" {
				t.Errorf("reference = %q, want m1", err.Reference)
			}
		})
	}
}

func TestFeedText(t *testing.T) {
	tests := []struct {
		name    string
		feed    string
		retired bool
		want    string
	}{
		{
			name: "two sets with tiebreak and clock",
			feed: "DB÷3¬BA÷6¬BB÷4¬BC÷7¬BD÷6¬DC÷7¬DD÷5¬RB÷2:14¬",
			want: "6-4 7-6(5) 2:14",
		},
		{
			name:    "partial score with retirement",
			feed:    "DB÷8¬BA÷6¬BB÷2¬BC÷3¬BD÷1¬",
			retired: true,
			want:    "6-2 3-1 ret.",
		},
		{
			name: "stops at first absent set pair",
			feed: "BA÷6¬BB÷4¬BE÷6¬BF÷1¬",
			want: "6-4",
		},
		{
			name: "ignores an unreadable clock",
			feed: "BA÷6¬BB÷3¬RB÷soon¬",
			want: "6-3",
		},
		{
			name: "empty feed",
			feed: "DB÷1¬",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FeedText(tt.feed, tt.retired); got != tt.want {
				t.Errorf("FeedText() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFeedTextRoundTrip(t *testing.T) {
	feed := "BA÷7¬BB÷6¬DA÷7¬DB÷4¬BC÷6¬BD÷3¬RB÷1:58¬"

	var p ScoreParser
	score, err := p.Parse("m1", FeedText(feed, false))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(score.Sets) != 2 {
		t.Fatalf("sets = %d, want 2", len(score.Sets))
	}
	if !score.Sets[0].TiebreakPlayed || score.Sets[0].TiebreakPoints != 4 {
		t.Errorf("first set tiebreak = %+v, want loser points 4", score.Sets[0])
	}
	if !score.HasDuration || score.DurationMinutes != 118 {
		t.Errorf("duration = %d, want 118", score.DurationMinutes)
	}
}
