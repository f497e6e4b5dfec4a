// Package scribble is the Composition Root for the scribble note store.
//
// It connects the note domain (pkg/core) with the storage adapters
// (pkg/storage and pkg/adapters/...) using the Hexagonal Architecture pattern.
//
// All notes live as one JSON array under a single key of a key-value slot.
// Loading never fails: a missing or corrupt slot yields an empty collection,
// and failed saves are logged and dropped. The collection is kept sorted
// with the most recently updated note first.
//
// Slots:
//
//   - **fs**: one file per key inside a directory, written atomically and watchable.
//   - **memory**: an in-memory filesystem, for tests and dry runs.
//   - **sqlite**: a single-table SQLite database.
//   - **redis**: plain string keys on a Redis server.
//
// Usage:
//
//	app, err := scribble.New(ctx, "./.scribble",
//		scribble.WithLogger(logger),
//	)
//	defer app.Close()
//
//	note, err := app.Service.Create(ctx)
//	note, err = app.Service.Update(ctx, note.ID, core.TitlePatch("Groceries"))
package scribble
