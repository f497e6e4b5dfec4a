package core

import "context"

// EventType represents the type of change observed on a storage slot.
type EventType string

const (
	EventCreate EventType = "CREATE"
	EventModify EventType = "MODIFY"
	EventDelete EventType = "DELETE"
)

// Event represents a change to a storage slot made outside the process.
type Event struct {
	Type      EventType
	Key       string
	Timestamp int64 // Unix milliseconds
}

// String implements fmt.Stringer.
func (e Event) String() string {
	return string(e.Type) + " " + e.Key
}

// Slot is the key-value storage facility holding serialized collections.
// Adhering to this interface keeps the core independent of the
// underlying storage mechanism (files, SQLite, Redis).
type Slot interface {
	// Get returns the raw value stored under key.
	// It returns ErrSlotNotFound if the key holds nothing.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set replaces the value stored under key.
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}

// Watchable is implemented by slots that can report external changes.
type Watchable interface {
	Watch(ctx context.Context, key string) (<-chan Event, error)
}

// Persister is the port used by Service to load and save the collection.
// Implementations never fail: problems degrade to an empty collection or
// a skipped write.
type Persister interface {
	Load(ctx context.Context) []Note
	Save(ctx context.Context, notes []Note)
}
