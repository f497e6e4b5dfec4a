package core

import "slices"

// Repository implements the note operations on an in-memory collection.
// It holds no notes itself: every method takes the current collection and
// returns the next one, leaving its input untouched.
type Repository struct {
	clock Clock
	newID IDGenerator
}

// RepositoryOption configures a Repository.
type RepositoryOption func(*Repository)

// WithClock overrides the time source used for timestamps.
func WithClock(c Clock) RepositoryOption {
	return func(r *Repository) {
		if c != nil {
			r.clock = c
		}
	}
}

// WithIDGenerator overrides the id source used by Create.
func WithIDGenerator(g IDGenerator) RepositoryOption {
	return func(r *Repository) {
		if g != nil {
			r.newID = g
		}
	}
}

// NewRepository creates a Repository using the wall clock and random UUIDs.
func NewRepository(opts ...RepositoryOption) *Repository {
	r := &Repository{
		clock: SystemClock,
		newID: NewID,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Now returns the current time in epoch milliseconds.
func (r *Repository) Now() int64 {
	return r.clock().UnixMilli()
}

// Create returns a new empty note with a fresh id and both timestamps set to now.
func (r *Repository) Create() Note {
	now := r.Now()
	return Note{
		ID:        r.newID(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Add places n in front of notes and returns the re-sorted collection.
func (r *Repository) Add(notes []Note, n Note) []Note {
	next := make([]Note, 0, len(notes)+1)
	next = append(next, n)
	next = append(next, notes...)
	SortByUpdated(next)
	return next
}

// Update applies patch to the note matching id, bumps its UpdatedAt and
// returns the collection re-sorted by UpdatedAt descending.
// If no note matches, notes is returned as is.
func (r *Repository) Update(notes []Note, id string, patch Patch) []Note {
	i := IndexOf(notes, id)
	if i < 0 {
		return notes
	}

	next := slices.Clone(notes)
	next[i] = patch.apply(next[i])
	next[i].UpdatedAt = r.Now()
	SortByUpdated(next)
	return next
}

// DeleteResult is the outcome of Delete.
type DeleteResult struct {
	Notes []Note
	// NextSelectedID is the most recently updated remaining note, or ""
	// when the collection became empty.
	NextSelectedID string
}

// Delete removes the note matching id.
func (r *Repository) Delete(notes []Note, id string) DeleteResult {
	remaining := make([]Note, 0, len(notes))
	for _, n := range notes {
		if n.ID != id {
			remaining = append(remaining, n)
		}
	}
	SortByUpdated(remaining)

	res := DeleteResult{Notes: remaining}
	if len(remaining) > 0 {
		res.NextSelectedID = remaining[0].ID
	}
	return res
}
