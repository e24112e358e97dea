package parser

import "errors"

var (
	// ErrMalformedStore means the store could not be read or had an unexpected shape.
	// The caller keeps its previous tree.
	ErrMalformedStore = errors.New("malformed bookmark store")

	// ErrProfileNotFound means no matching browser profile directory exists.
	ErrProfileNotFound = errors.New("browser profile not found")

	// ErrRootNotFound means the store has no root record.
	ErrRootNotFound = errors.New("bookmark root not found")

	// ErrInvalidEntry marks a single entry with an unusable name or address.
	// It never aborts a parse.
	ErrInvalidEntry = errors.New("invalid bookmark entry")

	// ErrStoreNotFound means the store file does not exist (yet).
	ErrStoreNotFound = errors.New("bookmark store not found")
)
