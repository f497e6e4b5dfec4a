package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/aretw0/scribble/pkg/core"
)

// ErrNotArray is returned by Decode when the payload is valid JSON but not an array.
var ErrNotArray = errors.New("stored collection is not an array")

// Stats describes what Decode had to do to produce a valid collection.
type Stats struct {
	Entries    int // array elements read
	Skipped    int // elements that were not objects
	Repaired   int // notes with at least one coerced field
	Duplicates int // notes dropped because their id was already taken
}

// Decode parses a stored collection. Entries that are not objects are
// skipped and fields with missing or wrong types are replaced: titles and
// content become "", timestamps become now and ids come from newID.
// The result is sorted by UpdatedAt descending without duplicate ids; the
// most recently updated copy of an id wins.
func Decode(data []byte, now int64, newID core.IDGenerator) ([]core.Note, Stats, error) {
	var stats Stats

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw any
	if err := dec.Decode(&raw); err != nil {
		return nil, stats, fmt.Errorf("failed to parse collection: %w", err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, stats, errors.New("failed to parse collection: trailing data after value")
	}
	entries, ok := raw.([]any)
	if !ok {
		return nil, stats, ErrNotArray
	}
	stats.Entries = len(entries)

	notes := make([]core.Note, 0, len(entries))
	for _, e := range entries {
		obj, ok := e.(map[string]any)
		if !ok {
			stats.Skipped++
			continue
		}
		n, repaired := decodeNote(obj, now, newID)
		if repaired {
			stats.Repaired++
		}
		notes = append(notes, n)
	}

	core.SortByUpdated(notes)

	seen := make(map[string]bool, len(notes))
	unique := notes[:0]
	for _, n := range notes {
		if seen[n.ID] {
			stats.Duplicates++
			continue
		}
		seen[n.ID] = true
		unique = append(unique, n)
	}
	return unique, stats, nil
}

func decodeNote(obj map[string]any, now int64, newID core.IDGenerator) (core.Note, bool) {
	var n core.Note
	var okID, okTitle, okContent, okCreated, okUpdated bool

	n.ID, okID = coerceID(obj["id"])
	if !okID {
		n.ID = newID()
	}
	n.Title, okTitle = obj["title"].(string)
	n.Content, okContent = obj["content"].(string)
	n.CreatedAt, okCreated = coerceMillis(obj["createdAt"])
	if !okCreated {
		n.CreatedAt = now
	}
	n.UpdatedAt, okUpdated = coerceMillis(obj["updatedAt"])
	if !okUpdated {
		n.UpdatedAt = now
	}

	repaired := !(okID && okTitle && okContent && okCreated && okUpdated)
	return n, repaired
}

// coerceID converts a stored id to its string form. Falsy values (missing,
// null, "", 0, false) and composite values report false.
func coerceID(v any) (string, bool) {
	switch id := v.(type) {
	case string:
		return id, id != ""
	case json.Number:
		f, err := id.Float64()
		if err != nil || f == 0 {
			return "", false
		}
		return formatNumber(f), true
	case bool:
		if id {
			return "true", true
		}
	}
	return "", false
}

// formatNumber renders f the way ids written by JavaScript print: plain
// digits between 1e-6 and 1e21, exponent form ("1e+21", "1.5e-7") outside.
func formatNumber(f float64) string {
	if abs := math.Abs(f); abs >= 1e-6 && abs < 1e21 {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	s := strconv.FormatFloat(f, 'e', -1, 64)
	mant, exp, _ := strings.Cut(s, "e")
	sign, digits := exp[:1], strings.TrimLeft(exp[1:], "0")
	return mant + "e" + sign + digits
}

// coerceMillis accepts numbers that fit in an int64; fractions are truncated.
func coerceMillis(v any) (int64, bool) {
	num, ok := v.(json.Number)
	if !ok {
		return 0, false
	}
	if i, err := num.Int64(); err == nil {
		return i, true
	}
	f, err := num.Float64()
	if err != nil || math.IsNaN(f) || f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, false
	}
	return int64(f), true
}

// Encode serializes the collection. A nil collection encodes as "[]".
func Encode(notes []core.Note) ([]byte, error) {
	if notes == nil {
		notes = []core.Note{}
	}
	return json.Marshal(notes)
}
