package extract

import "testing"

func TestNumber(t *testing.T) {
	tests := []struct {
		text string
		want int
		ok   bool
	}{
		{"Set 3", 3, true},
		{"21.5 games", 21, true},
		{"no digits here", 0, false},
		{"", 0, false},
		{"ranked 104th", 104, true},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got, ok := Number(tt.text)
			if ok != tt.ok || got != tt.want {
				t.Errorf("Number(%q) = (%d, %v), want (%d, %v)", tt.text, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestYear(t *testing.T) {
	tests := []struct {
		text string
		want string
		ok   bool
	}{
		{"ATP Acapulco 2024", "2024", true},
		{"Wimbledon 2016 - final", "2016", true},
		{"no year", "", false},
		{"id 123456 then 1999", "1999", true},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got, ok := Year(tt.text)
			if ok != tt.ok || got != tt.want {
				t.Errorf("Year(%q) = (%q, %v), want (%q, %v)", tt.text, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestOddsToken(t *testing.T) {
	tests := []struct {
		text  string
		open  float64
		close float64
		ok    bool
	}{
		{"1.85", 1.85, 1.85, true},
		{"1.85[u]1.91", 1.85, 1.91, true},
		{"2.10[d]1.95", 2.10, 1.95, true},
		{"3", 3, 3, true},
		{"abc", 0, 0, false},
		{"1.8500", 0, 0, false},
		{"", 0, 0, false},
		{"1.85[x]1.91", 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			open, close, ok := OddsToken(tt.text)
			if ok != tt.ok || open != tt.open || close != tt.close {
				t.Errorf("OddsToken(%q) = (%v, %v, %v), want (%v, %v, %v)",
					tt.text, open, close, ok, tt.open, tt.close, tt.ok)
			}
		})
	}
}

func TestDuration(t *testing.T) {
	tests := []struct {
		text string
		want int
		ok   bool
	}{
		{"2:14", 134, true},
		{"0:58", 58, true},
		{"10:05", 605, true},
		{"2:70", 0, false},
		{"6-4", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got, ok := Duration(tt.text)
			if ok != tt.ok || got != tt.want {
				t.Errorf("Duration(%q) = (%d, %v), want (%d, %v)", tt.text, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestFields(t *testing.T) {
	feed := "~AA÷Kx3ou23b¬AD÷1709416800¬WU÷alcaraz-carlos~AA÷C2238Yq4"
	fields := Fields(feed)

	want := []Field{
		{Key: "AA", Value: "Kx3ou23b", NewRow: true},
		{Key: "AD", Value: "1709416800"},
		{Key: "WU", Value: "alcaraz-carlos"},
		{Key: "AA", Value: "C2238Yq4", NewRow: true},
	}
	if len(fields) != len(want) {
		t.Fatalf("got %d fields, want %d: %+v", len(fields), len(want), fields)
	}
	for i, w := range want {
		if fields[i] != w {
			t.Errorf("field %d = %+v, want %+v", i, fields[i], w)
		}
	}
}

func TestFieldsRowBreakInsideChunk(t *testing.T) {
	// A row separator can be glued to the previous value.
	fields := Fields("¬ER÷Final~AA÷abc¬AD÷1")
	if len(fields) != 3 {
		t.Fatalf("got %d fields: %+v", len(fields), fields)
	}
	if fields[0].Key != "ER" || fields[0].Value != "Final" || fields[0].NewRow {
		t.Errorf("unexpected first field: %+v", fields[0])
	}
	if fields[1].Key != "AA" || !fields[1].NewRow {
		t.Errorf("expected AA to open a row: %+v", fields[1])
	}
}

func TestSegmentsWithHead(t *testing.T) {
	head, segments := SegmentsWithHead("¬ZA÷Acapulco (Mexico), hard¬ZEE÷x~AA÷one~AA÷two", "AA")
	if head != "¬ZA÷Acapulco (Mexico), hard¬ZEE÷x" {
		t.Errorf("unexpected head: %q", head)
	}
	if len(segments) != 2 || segments[0] != "one" || segments[1] != "two" {
		t.Errorf("unexpected segments: %q", segments)
	}
}
