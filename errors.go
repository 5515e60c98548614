package kanjigo

import (
	"errors"
	"fmt"
)

var (
	// ErrClosed is returned by operations on a closed Catalog.
	ErrClosed = errors.New("kanjigo: catalog closed")
	// ErrNoSource is returned when a catalog must be built but no source
	// is configured.
	ErrNoSource = errors.New("kanjigo: no source configured")
	// ErrNoCache is returned by Save when no cache is configured.
	ErrNoCache = errors.New("kanjigo: no cache configured")
	// ErrNotFound is returned when a record does not exist.
	ErrNotFound = errors.New("kanjigo: not found")
)

// BuildError reports a failed catalog build.
//
// The original underlying error can be accessed via errors.Unwrap.
type BuildError struct {
	Source string
	cause  error
}

func (e *BuildError) Error() string {
	return fmt.Sprintf("kanjigo: build from %s: %v", e.Source, e.cause)
}

func (e *BuildError) Unwrap() error { return e.cause }
