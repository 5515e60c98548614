package cache

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/hupe1980/kanjigo/blobstore"
	"github.com/hupe1980/kanjigo/persistence"
	"github.com/hupe1980/kanjigo/store"
)

const (
	// CurrentName is the pointer blob naming the latest version.
	CurrentName = "CURRENT"

	// DefaultName is the default prefix of version blobs.
	DefaultName = "catalog"

	// DefaultRetain is the default number of versions kept after a save.
	DefaultRetain = 2

	versionExt = ".kjc"
)

// ErrNoCurrent is returned by Current when nothing has been saved yet.
var ErrNoCurrent = errors.New("cache: no current version")

// MissError reports why a cached catalog could not be used.
type MissError struct {
	Name string
	Err  error
}

func (e *MissError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("cache miss: %v", e.Err)
	}
	return fmt.Sprintf("cache miss (%s): %v", e.Name, e.Err)
}

func (e *MissError) Unwrap() error {
	return e.Err
}

// IsMiss reports whether err means the cache holds no usable catalog, as
// opposed to a failure of the blob store itself.
func IsMiss(err error) bool {
	var me *MissError
	if errors.As(err, &me) {
		return true
	}
	for _, target := range []error{
		blobstore.ErrNotFound,
		ErrNoCurrent,
		persistence.ErrInvalidMagic,
		persistence.ErrOutdatedVersion,
		persistence.ErrTruncated,
		persistence.ErrUnknownTag,
		persistence.ErrCorrupt,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// Cache stores encoded catalogs in a blob store.
type Cache struct {
	blobs       blobstore.BlobStore
	name        string
	compression Compression
	retain      int
}

// Option configures a Cache.
type Option func(*Cache)

// WithName sets the prefix of version blob names.
func WithName(name string) Option {
	return func(c *Cache) {
		if name != "" {
			c.name = name
		}
	}
}

// WithCompression sets the codec used by Save.
func WithCompression(comp Compression) Option {
	return func(c *Cache) {
		c.compression = comp
	}
}

// WithRetain sets how many versions Save keeps, the new one included.
// Values below 1 keep every version.
func WithRetain(n int) Option {
	return func(c *Cache) {
		c.retain = n
	}
}

// New creates a cache over blobs.
func New(blobs blobstore.BlobStore, optFns ...Option) *Cache {
	c := &Cache{
		blobs:  blobs,
		name:   DefaultName,
		retain: DefaultRetain,
	}
	for _, fn := range optFns {
		fn(c)
	}
	return c
}

// Blobs returns the underlying blob store.
func (c *Cache) Blobs() blobstore.BlobStore {
	return c.blobs
}

// Compression returns the codec used by Save.
func (c *Cache) Compression() Compression {
	return c.compression
}

func (c *Cache) versionName(seq uint64) string {
	return fmt.Sprintf("%s-%08d%s", c.name, seq, versionExt)
}

func (c *Cache) parseVersion(name string) (uint64, bool) {
	rest, ok := strings.CutPrefix(name, c.name+"-")
	if !ok {
		return 0, false
	}
	rest, ok = strings.CutSuffix(rest, versionExt)
	if !ok {
		return 0, false
	}
	seq, err := strconv.ParseUint(rest, 10, 64)
	return seq, err == nil
}

// Versions returns the version blob names in ascending order.
func (c *Cache) Versions(ctx context.Context) ([]string, error) {
	names, err := c.blobs.List(ctx, c.name+"-")
	if err != nil {
		return nil, err
	}
	type version struct {
		name string
		seq  uint64
	}
	var vs []version
	for _, n := range names {
		if seq, ok := c.parseVersion(n); ok {
			vs = append(vs, version{n, seq})
		}
	}
	slices.SortFunc(vs, func(a, b version) int {
		switch {
		case a.seq < b.seq:
			return -1
		case a.seq > b.seq:
			return 1
		default:
			return 0
		}
	})
	out := make([]string, len(vs))
	for i, v := range vs {
		out[i] = v.name
	}
	return out, nil
}

// Current returns the version blob CURRENT points at.
func (c *Cache) Current(ctx context.Context) (string, error) {
	data, err := blobstore.ReadAll(ctx, c.blobs, CurrentName)
	if err != nil {
		if errors.Is(err, blobstore.ErrNotFound) {
			return "", ErrNoCurrent
		}
		return "", err
	}
	name := strings.TrimSpace(string(data))
	if name == "" {
		return "", ErrNoCurrent
	}
	return name, nil
}

// Save encodes s into a new version blob and makes it current. Older
// versions beyond the retention limit are removed on a best-effort basis.
// It returns the name of the new version.
func (c *Cache) Save(ctx context.Context, s *store.Store) (string, error) {
	var buf bytes.Buffer
	if err := persistence.Encode(&buf, s); err != nil {
		return "", err
	}
	data, err := compress(buf.Bytes(), c.compression)
	if err != nil {
		return "", err
	}

	versions, err := c.Versions(ctx)
	if err != nil {
		return "", err
	}
	var next uint64 = 1
	if len(versions) > 0 {
		last, _ := c.parseVersion(versions[len(versions)-1])
		next = last + 1
	}

	name := c.versionName(next)
	if err := c.blobs.Put(ctx, name, data); err != nil {
		return "", fmt.Errorf("cache: write %s: %w", name, err)
	}
	if err := c.blobs.Put(ctx, CurrentName, []byte(name)); err != nil {
		_ = c.blobs.Delete(ctx, name)
		return "", fmt.Errorf("cache: commit %s: %w", name, err)
	}

	c.prune(ctx, append(versions, name))
	return name, nil
}

func (c *Cache) prune(ctx context.Context, versions []string) {
	if c.retain < 1 || len(versions) <= c.retain {
		return
	}
	for _, name := range versions[:len(versions)-c.retain] {
		_ = c.blobs.Delete(ctx, name)
	}
}

// Load decodes the current version. The options are passed to
// persistence.Decode. Errors that make the cache unusable satisfy IsMiss.
func (c *Cache) Load(ctx context.Context, opts ...store.Option) (*store.Store, error) {
	name, err := c.Current(ctx)
	if err != nil {
		if IsMiss(err) {
			return nil, &MissError{Err: err}
		}
		return nil, err
	}
	return c.LoadVersion(ctx, name, opts...)
}

// LoadVersion decodes a specific version blob.
func (c *Cache) LoadVersion(ctx context.Context, name string, opts ...store.Option) (*store.Store, error) {
	data, err := blobstore.ReadAll(ctx, c.blobs, name)
	if err != nil {
		if errors.Is(err, blobstore.ErrNotFound) {
			return nil, &MissError{Name: name, Err: err}
		}
		return nil, err
	}

	raw, comp, err := decompress(data)
	if err != nil {
		return nil, &MissError{Name: name, Err: fmt.Errorf("%w: %s: %w", persistence.ErrCorrupt, comp, err)}
	}

	s, err := persistence.Decode(bytes.NewReader(raw), opts...)
	if err != nil {
		if IsMiss(err) {
			return nil, &MissError{Name: name, Err: err}
		}
		return nil, err
	}
	return s, nil
}

// Info describes a version blob without decoding its body.
type Info struct {
	Name        string
	Size        int64
	Compression Compression
	Header      *persistence.Header
}

// Stat reads the header of a version blob. An empty name selects the
// current version.
func (c *Cache) Stat(ctx context.Context, name string) (*Info, error) {
	if name == "" {
		var err error
		if name, err = c.Current(ctx); err != nil {
			return nil, err
		}
	}
	data, err := blobstore.ReadAll(ctx, c.blobs, name)
	if err != nil {
		return nil, err
	}
	raw, comp, err := decompress(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", persistence.ErrCorrupt, comp, err)
	}
	h, err := persistence.ReadHeader(bytes.NewReader(raw))
	if err != nil {
		return nil, err
	}
	return &Info{
		Name:        name,
		Size:        int64(len(data)),
		Compression: comp,
		Header:      h,
	}, nil
}
