package blobstore

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"path/filepath"
	"slices"
	"strings"

	kfs "github.com/hupe1980/kanjigo/internal/fs"
	"github.com/hupe1980/kanjigo/internal/mmap"
	"github.com/hupe1980/kanjigo/persistence"
)

// LocalStore implements BlobStore using the local file system.
type LocalStore struct {
	root string
	fsys kfs.FileSystem
}

// NewLocalStore creates a new LocalStore rooted at the given directory.
func NewLocalStore(root string) *LocalStore {
	return newLocalStoreFS(root, kfs.Default)
}

// newLocalStoreFS routes writes and deletes through fsys.
func newLocalStoreFS(root string, fsys kfs.FileSystem) *LocalStore {
	return &LocalStore{root: root, fsys: fsys}
}

// Root returns the directory of the store.
func (s *LocalStore) Root() string {
	return s.root
}

func (s *LocalStore) path(name string) string {
	return filepath.Join(s.root, filepath.FromSlash(name))
}

// Open maps the blob into memory.
func (s *LocalStore) Open(ctx context.Context, name string) (Blob, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m, err := mmap.Open(s.path(name))
	if err != nil {
		return nil, err
	}
	_ = m.Advise(mmap.AccessSequential)
	return &localBlob{m: m}, nil
}

// Put writes the blob through a temp file and rename.
func (s *LocalStore) Put(ctx context.Context, name string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	path := s.path(name)
	if err := s.fsys.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return persistence.SaveToFileFS(s.fsys, path, func(w io.Writer) error {
		_, err := w.Write(data)
		return err
	})
}

// Delete removes a blob.
func (s *LocalStore) Delete(_ context.Context, name string) error {
	err := s.fsys.Remove(s.path(name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// List returns the blobs whose slash-separated name starts with prefix.
// Temp files of interrupted writes are skipped.
func (s *LocalStore) List(ctx context.Context, prefix string) ([]string, error) {
	var names []string
	err := filepath.WalkDir(s.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) && path == s.root {
				return fs.SkipAll
			}
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() || strings.Contains(d.Name(), persistence.TempMarker) {
			return nil
		}
		rel, err := filepath.Rel(s.root, path)
		if err != nil {
			return err
		}
		if name := filepath.ToSlash(rel); strings.HasPrefix(name, prefix) {
			names = append(names, name)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	slices.Sort(names)
	return names, nil
}

type localBlob struct {
	m *mmap.File
}

func (b *localBlob) ReadAt(p []byte, off int64) (int, error) {
	return b.m.ReadAt(p, off)
}

func (b *localBlob) Close() error {
	return b.m.Close()
}

func (b *localBlob) Size() int64 {
	return int64(b.m.Size())
}

func (b *localBlob) Bytes() ([]byte, error) {
	return b.m.Bytes(), nil
}
