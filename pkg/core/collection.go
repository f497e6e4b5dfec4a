package core

import (
	"cmp"
	"slices"
)

// SortByUpdated orders notes most-recently-updated first, in place.
// Notes with equal UpdatedAt keep their relative order.
func SortByUpdated(notes []Note) {
	slices.SortStableFunc(notes, func(a, b Note) int {
		return cmp.Compare(b.UpdatedAt, a.UpdatedAt)
	})
}

// IsSorted reports whether notes are ordered by UpdatedAt descending.
func IsSorted(notes []Note) bool {
	for i := 1; i < len(notes); i++ {
		if notes[i].UpdatedAt > notes[i-1].UpdatedAt {
			return false
		}
	}
	return true
}

// IndexOf returns the position of the note with the given id, or -1.
func IndexOf(notes []Note, id string) int {
	return slices.IndexFunc(notes, func(n Note) bool { return n.ID == id })
}

// Find returns the note with the given id.
func Find(notes []Note, id string) (Note, bool) {
	if i := IndexOf(notes, id); i >= 0 {
		return notes[i], true
	}
	return Note{}, false
}
