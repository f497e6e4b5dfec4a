package core

import "errors"

// Common errors.
var (
	ErrSlotNotFound = errors.New("storage slot is empty")
	ErrNoteNotFound = errors.New("note not found")
	ErrReadOnly     = errors.New("storage slot is in read-only mode")
	ErrInvalidKey   = errors.New("invalid storage key")
	ErrNotLoaded    = errors.New("notes are not loaded yet")
)
