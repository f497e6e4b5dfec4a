package core_test

import (
	"testing"

	"github.com/aretw0/scribble/pkg/core"
)

func TestMatches(t *testing.T) {
	n := core.Note{Title: "Straße Plan", Content: "Buy MILK\nand bread"}

	tests := []struct {
		name  string
		query string
		want  bool
	}{
		{"Blank Query", "   ", true},
		{"Title Substring", "plan", true},
		{"Content Case Insensitive", "milk", true},
		{"Folded Sharp S", "STRASSE", true},
		{"Spans Title And Content", "plan\nbuy", true},
		{"Trimmed Query", "  bread  ", true},
		{"No Match", "cheese", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := core.Matches(n, tt.query); got != tt.want {
				t.Errorf("Matches(%q) = %v, want %v", tt.query, got, tt.want)
			}
		})
	}
}

func TestFilterTitleGlob(t *testing.T) {
	notes := []core.Note{
		{ID: "1", Title: "Meeting 2024-01"},
		{ID: "2", Title: "meeting notes"},
		{ID: "3", Title: "Groceries"},
	}

	got, err := core.FilterTitleGlob(notes, "MEETING*")
	if err != nil {
		t.Fatalf("FilterTitleGlob failed: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("expected 2 matches, got %d", len(got))
	}

	all, err := core.FilterTitleGlob(notes, "")
	if err != nil || len(all) != 3 {
		t.Errorf("empty pattern should return everything, got %d (%v)", len(all), err)
	}

	if _, err := core.FilterTitleGlob(notes, "[unclosed"); err == nil {
		t.Error("expected error for bad pattern")
	}
}
