package mmap

import (
	"errors"
	"io"
	"os"
	"sync/atomic"
)

var (
	// ErrInvalidOffset is returned for negative read offsets.
	ErrInvalidOffset = errors.New("mmap: invalid offset")
	// ErrClosed is returned when reading a closed mapping.
	ErrClosed = errors.New("mmap: closed")
)

// AccessPattern is a hint about how the mapping will be read.
type AccessPattern int

const (
	AccessNormal AccessPattern = iota
	AccessSequential
	AccessRandom
)

// File is a read-only memory-mapped file.
type File struct {
	data   []byte
	unmap  func([]byte) error
	closed atomic.Bool
}

// Open maps the file at path into memory.
func Open(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return nil, err
	}

	size := fi.Size()
	if size == 0 {
		return &File{}, nil
	}
	if size < 0 || int64(int(size)) != size {
		return nil, errors.New("mmap: file size out of range")
	}

	data, unmap, err := osMap(f, int(size))
	if err != nil {
		return nil, err
	}
	// The mapping stays valid after the descriptor is closed.
	return &File{data: data, unmap: unmap}, nil
}

// Bytes returns the mapped content.
func (m *File) Bytes() []byte {
	return m.data
}

// Size returns the length of the mapping.
func (m *File) Size() int {
	return len(m.data)
}

// Advise passes an access pattern hint to the kernel. It is a no-op where
// unsupported.
func (m *File) Advise(pattern AccessPattern) error {
	if m.closed.Load() {
		return ErrClosed
	}
	return osAdvise(m.data, pattern)
}

// ReadAt implements io.ReaderAt.
func (m *File) ReadAt(p []byte, off int64) (int, error) {
	if m.closed.Load() {
		return 0, ErrClosed
	}
	if off < 0 {
		return 0, ErrInvalidOffset
	}
	if off >= int64(len(m.data)) {
		return 0, io.EOF
	}
	n := copy(p, m.data[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

// Close releases the mapping. It is idempotent.
func (m *File) Close() error {
	if m == nil || !m.closed.CompareAndSwap(false, true) {
		return nil
	}
	data := m.data
	m.data = nil
	if m.unmap == nil || data == nil {
		return nil
	}
	return m.unmap(data)
}
