package blobstore

import (
	"bytes"
	"context"
	"io"
	"os"
)

// ErrNotFound is returned when a blob does not exist.
//
// Implementations should return an error that satisfies `errors.Is(err, ErrNotFound)`.
// The default maps to `os.ErrNotExist`.
var ErrNotFound = os.ErrNotExist

// BlobStore stores named blobs.
type BlobStore interface {
	// Open opens a blob for reading.
	Open(ctx context.Context, name string) (Blob, error)
	// Put writes a blob atomically, replacing any previous content.
	Put(ctx context.Context, name string, data []byte) error
	// Delete removes a blob. Deleting a missing blob is not an error.
	Delete(ctx context.Context, name string) error
	// List returns the sorted names starting with prefix.
	List(ctx context.Context, prefix string) ([]string, error)
}

// Blob is a read-only handle to a data blob.
type Blob interface {
	io.ReaderAt
	io.Closer
	// Size returns the size of the blob in bytes.
	Size() int64
}

// Mappable is an optional interface for Blobs that expose their content
// without copying.
type Mappable interface {
	// Bytes returns the underlying byte slice.
	// The slice is valid until the Blob is closed.
	Bytes() ([]byte, error)
}

// ReadAll returns a copy of the content of the named blob.
func ReadAll(ctx context.Context, s BlobStore, name string) ([]byte, error) {
	b, err := s.Open(ctx, name)
	if err != nil {
		return nil, err
	}
	defer b.Close()

	if m, ok := b.(Mappable); ok {
		data, err := m.Bytes()
		if err != nil {
			return nil, err
		}
		return bytes.Clone(data), nil
	}

	data := make([]byte, b.Size())
	if _, err := b.ReadAt(data, 0); err != nil && err != io.EOF {
		return nil, err
	}
	return data, nil
}

// NewReader returns a sequential reader over b.
func NewReader(b Blob) io.Reader {
	return io.NewSectionReader(b, 0, b.Size())
}

// bytesBlob is a Blob over an in-memory slice.
type bytesBlob struct {
	*bytes.Reader
	data []byte
}

// NewBytesBlob returns a Blob reading data. data must not be modified
// afterwards.
func NewBytesBlob(data []byte) Blob {
	return &bytesBlob{Reader: bytes.NewReader(data), data: data}
}

func (b *bytesBlob) Close() error {
	return nil
}

func (b *bytesBlob) Bytes() ([]byte, error) {
	return b.data, nil
}
