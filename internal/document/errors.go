package document

import "errors"

var (
	// ErrTitleRequired rejects an upload without a display title.
	ErrTitleRequired = errors.New("title is required")
	// ErrFileRequired rejects an upload without a file payload.
	ErrFileRequired = errors.New("file is required")
	// ErrInvalidCategory rejects an unknown document category.
	ErrInvalidCategory = errors.New("invalid category")
	// ErrDocumentNotFound signals a missing or foreign-owned record.
	ErrDocumentNotFound = errors.New("document not found")
	// ErrObjectNotFound signals that no blob exists under the key.
	ErrObjectNotFound = errors.New("object not found")
	// ErrObjectExists signals a storage key collision on upload.
	ErrObjectExists = errors.New("object already exists")
	// ErrLinkUnavailable signals that a view link could not be issued.
	ErrLinkUnavailable = errors.New("signed link unavailable")
)
