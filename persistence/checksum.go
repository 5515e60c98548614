package persistence

import (
	"errors"
	"fmt"
	"hash"
	"hash/crc32"
	"io"
)

// CRC32 (IEEE) guards the stream against accidental corruption only.
// It is not a tamper check.

// CRC32Table is the IEEE polynomial table for checksum computation.
var CRC32Table = crc32.MakeTable(crc32.IEEE)

// ChecksumWriter wraps an io.Writer and computes a running CRC32 checksum.
type ChecksumWriter struct {
	w    io.Writer
	hash hash.Hash32
}

// NewChecksumWriter creates a new checksumming writer.
func NewChecksumWriter(w io.Writer) *ChecksumWriter {
	return &ChecksumWriter{
		w:    w,
		hash: crc32.New(CRC32Table),
	}
}

// Write implements io.Writer.
func (cw *ChecksumWriter) Write(p []byte) (int, error) {
	n, err := cw.w.Write(p)
	if n > 0 {
		_, _ = cw.hash.Write(p[:n])
	}
	return n, err
}

// Sum returns the current checksum value.
func (cw *ChecksumWriter) Sum() uint32 {
	return cw.hash.Sum32()
}

// ChecksumReader wraps an io.Reader and computes a running CRC32 checksum.
type ChecksumReader struct {
	r    io.Reader
	hash hash.Hash32
}

// NewChecksumReader creates a new checksumming reader.
func NewChecksumReader(r io.Reader) *ChecksumReader {
	return &ChecksumReader{
		r:    r,
		hash: crc32.New(CRC32Table),
	}
}

// Read implements io.Reader.
func (cr *ChecksumReader) Read(p []byte) (int, error) {
	n, err := cr.r.Read(p)
	if n > 0 {
		_, _ = cr.hash.Write(p[:n])
	}
	return n, err
}

// Sum returns the current checksum value.
func (cr *ChecksumReader) Sum() uint32 {
	return cr.hash.Sum32()
}

// Verify checks if the computed checksum matches the expected value.
func (cr *ChecksumReader) Verify(expected uint32) error {
	actual := cr.Sum()
	if actual != expected {
		return &ChecksumMismatchError{
			Expected: expected,
			Actual:   actual,
		}
	}
	return nil
}

// ChecksumMismatchError is returned when checksum verification fails.
type ChecksumMismatchError struct {
	Expected uint32
	Actual   uint32
}

func (e *ChecksumMismatchError) Error() string {
	return fmt.Sprintf("persistence: checksum mismatch: expected 0x%08x, got 0x%08x", e.Expected, e.Actual)
}

// Unwrap lets errors.Is match ErrCorrupt.
func (e *ChecksumMismatchError) Unwrap() error {
	return ErrCorrupt
}

// IsChecksumMismatch returns true if err is or wraps a checksum mismatch error.
func IsChecksumMismatch(err error) bool {
	var target *ChecksumMismatchError
	return errors.As(err, &target)
}
