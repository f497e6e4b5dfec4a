package core

import (
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// fold normalizes s for case-insensitive comparison.
// A Caser is stateful, so a fresh one is built per call.
func fold(s string) string {
	return cases.Fold().String(norm.NFKC.String(s))
}

// Matches reports whether the note's title or content contains query,
// ignoring case. A blank query matches every note.
func Matches(n Note, query string) bool {
	q := strings.TrimSpace(query)
	if q == "" {
		return true
	}
	return strings.Contains(fold(n.Title+"\n"+n.Content), fold(q))
}

// Filter returns the notes matching query, preserving order.
// A blank query returns notes unchanged.
func Filter(notes []Note, query string) []Note {
	if strings.TrimSpace(query) == "" {
		return notes
	}
	out := make([]Note, 0, len(notes))
	for _, n := range notes {
		if Matches(n, query) {
			out = append(out, n)
		}
	}
	return out
}

// FilterTitleGlob returns the notes whose title matches a doublestar
// pattern, ignoring case. An empty pattern returns notes unchanged.
func FilterTitleGlob(notes []Note, pattern string) ([]Note, error) {
	if pattern == "" {
		return notes, nil
	}
	pattern = fold(pattern)
	if !doublestar.ValidatePattern(pattern) {
		return nil, doublestar.ErrBadPattern
	}

	out := make([]Note, 0, len(notes))
	for _, n := range notes {
		ok, err := doublestar.Match(pattern, fold(n.Title))
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, n)
		}
	}
	return out, nil
}
