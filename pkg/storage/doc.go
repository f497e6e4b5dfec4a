// Package storage is the persistence adapter between the note collection
// and a key-value storage slot.
//
// The whole collection is stored as one JSON array under a single key:
//
//	[{"id":"...","title":"...","content":"...","createdAt":1700000000000,"updatedAt":1700000000000}]
//
// Reading never fails. A missing, unreadable or malformed slot yields an
// empty collection, and individual entries are repaired field by field.
// Writing never fails either: rejected writes are logged and dropped.
//
// The key carries the schema version (DefaultKey ends in "_v1"). A new
// layout gets a new key and a migration in Store.Load.
package storage
