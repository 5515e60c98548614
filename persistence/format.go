package persistence

import (
	"errors"
	"fmt"
	"io"
)

const (
	// MagicNumber identifies catalog cache files.
	MagicNumber = 0x5AD5AD15
	// Version is the format version written by this codec. Streams with a
	// lower version are rejected.
	Version = 3

	// maxLength bounds every decoded count and string length.
	maxLength = 1 << 24
)

var (
	// ErrInvalidMagic is returned when the stream is not a catalog file.
	ErrInvalidMagic = errors.New("persistence: not a recognized catalog file")
	// ErrOutdatedVersion is returned for streams older than Version.
	ErrOutdatedVersion = errors.New("persistence: unsupported or outdated cache")
	// ErrTruncated is returned when the stream ends early.
	ErrTruncated = errors.New("persistence: truncated stream")
	// ErrUnknownTag is returned when an index refers to a tag that the
	// primary section did not define.
	ErrUnknownTag = errors.New("persistence: unknown identity tag")
	// ErrCorrupt is returned for structurally invalid content.
	ErrCorrupt = errors.New("persistence: corrupt stream")
)

// Header is the fixed prefix of every stream.
type Header struct {
	Magic   uint32
	Version uint32
}

func truncated(err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("%w: %w", ErrTruncated, io.ErrUnexpectedEOF)
	}
	return err
}
