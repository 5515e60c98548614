package store

import "errors"

var (
	// ErrInvalidCodepoint is returned for records or keys with codepoint 0.
	ErrInvalidCodepoint = errors.New("store: invalid codepoint")
	// ErrDuplicate is returned when a codepoint is already present.
	ErrDuplicate = errors.New("store: duplicate codepoint")
	// ErrOrphan is returned when indexing a codepoint the primary index does not own.
	ErrOrphan = errors.New("store: codepoint not in primary index")
	// ErrUnknownIndex is returned for an index or legacy space out of range.
	ErrUnknownIndex = errors.New("store: unknown index")
)
