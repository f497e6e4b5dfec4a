package core

import (
	"crypto/rand"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
)

// FallbackIDPrefix marks ids that were not produced by the primary generator.
const FallbackIDPrefix = "note_"

// IDGenerator returns a new unique note id.
type IDGenerator func() string

// NewID returns a random UUID. If the random source is unavailable it
// falls back to FallbackID.
func NewID() string {
	id, err := uuid.NewRandom()
	if err != nil {
		return FallbackID()
	}
	return id.String()
}

var (
	entropyMu sync.Mutex
	entropy   = ulid.Monotonic(rand.Reader, 0)
)

// FallbackID returns a time-ordered id of the form note_<ulid>.
// It is used for stored notes that lost their id and when NewID cannot
// read randomness.
func FallbackID() string {
	entropyMu.Lock()
	defer entropyMu.Unlock()

	id := ulid.MustNew(ulid.Timestamp(time.Now()), entropy)
	return FallbackIDPrefix + strings.ToLower(id.String())
}

// Clock returns the current time.
type Clock func() time.Time

// SystemClock is the wall clock.
func SystemClock() time.Time { return time.Now() }
