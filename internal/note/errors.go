package note

import "errors"

var (
	// ErrNoteNotFound signals a missing or foreign-owned note.
	ErrNoteNotFound = errors.New("note not found")
	// ErrDateRequired rejects a note without a calendar date.
	ErrDateRequired = errors.New("note date is required")
)
