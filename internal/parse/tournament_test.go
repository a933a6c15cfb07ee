package parse

import "testing"

func TestTournamentParserParse(t *testing.T) {
	feed := "SA÷2¬ZA÷Tennis¬" +
		"~MN÷0¬MU÷ATP Acapulco¬MTI÷t100¬MT÷ATP Acapulco (Mexico), hard¬MC÷atp-singles¬" +
		"~MN÷1¬MU÷ATP Rome¬MTI÷t200¬MT÷ATP Rome (Italy), clay¬MC÷atp-singles¬" +
		"~MN÷2¬MTI÷t300¬MC÷atp-singles¬"

	var p TournamentParser
	result := p.Parse(feed)

	if len(result.Tournaments) != 2 {
		t.Fatalf("tournaments = %d, want 2", len(result.Tournaments))
	}
	if len(result.Errors) != 1 {
		t.Fatalf("errors = %d, want 1", len(result.Errors))
	}
	if result.Errors[0].Kind != KindMissingRequiredField {
		t.Errorf("error kind = %q, want %q", result.Errors[0].Kind, KindMissingRequiredField)
	}

	first := result.Tournaments[0]
	if first.ID != "t100" {
		t.Errorf("ID = %q, want t100", first.ID)
	}
	if first.Name != "ATP Acapulco" {
		t.Errorf("Name = %q", first.Name)
	}
	if first.Surface != "hard" {
		t.Errorf("Surface = %q, want hard", first.Surface)
	}
	if first.Location != "Mexico" {
		t.Errorf("Location = %q, want Mexico", first.Location)
	}
	if first.Category != "atp-singles" {
		t.Errorf("Category = %q, want atp-singles", first.Category)
	}

	if result.Tournaments[1].Surface != "clay" {
		t.Errorf("second surface = %q, want clay", result.Tournaments[1].Surface)
	}
}

func TestTournamentParserDerivesIDWhenMissing(t *testing.T) {
	feed := "~MN÷0¬MU÷Challenger Quito¬MC÷challenger¬"

	var p TournamentParser
	result := p.Parse(feed)

	if len(result.Tournaments) != 1 {
		t.Fatalf("tournaments = %d, want 1", len(result.Tournaments))
	}
	if result.Tournaments[0].ID == "" {
		t.Error("missing MTI should still yield a derived ID")
	}
}

func TestSplitMeta(t *testing.T) {
	tests := []struct {
		meta         string
		wantLocation string
		wantSurface  string
	}{
		{"ATP Acapulco (Mexico), hard", "Mexico", "hard"},
		{"WTA Rome (Italy), clay", "Italy", "clay"},
		{"Davis Cup (World Group)", "World Group", ""},
		{"ATP Indoors (France), indoor", "France", ""},
		{"ATP Finals, carpet", "", "carpet"},
		{"", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.meta, func(t *testing.T) {
			location, surface := splitMeta(tt.meta)
			if location != tt.wantLocation {
				t.Errorf("location = %q, want %q", location, tt.wantLocation)
			}
			if surface != tt.wantSurface {
				t.Errorf("surface = %q, want %q", surface, tt.wantSurface)
			}
		})
	}
}
