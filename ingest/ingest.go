// Package ingest builds catalog stores from dictionary files.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/klauspost/compress/gzip"
	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/kanjigo/ingest/kanjidic2"
	"github.com/hupe1980/kanjigo/ingest/kradfile"
	"github.com/hupe1980/kanjigo/store"
)

// ErrNoKanjidic2 is returned when a source names no kanjidic2 file.
var ErrNoKanjidic2 = errors.New("ingest: no kanjidic2 file configured")

// Source names the dictionary files a catalog is built from. Files ending in
// .gz are decompressed transparently.
type Source struct {
	Kanjidic2 string
	Kradfiles []string
}

// Paths returns every file of the source.
func (s Source) Paths() []string {
	out := make([]string, 0, 1+len(s.Kradfiles))
	if s.Kanjidic2 != "" {
		out = append(out, s.Kanjidic2)
	}
	return append(out, s.Kradfiles...)
}

// Stats describes one build.
type Stats struct {
	Characters int
	// Decomposed counts characters that received components.
	Decomposed int
	// Duplicates counts source characters dropped because their codepoint
	// was already present.
	Duplicates int
	Version    string
	Duration   time.Duration
}

// Load opens the files of src and builds a store from them.
func Load(ctx context.Context, src Source, opts ...store.Option) (*store.Store, Stats, error) {
	if src.Kanjidic2 == "" {
		return nil, Stats{}, ErrNoKanjidic2
	}

	dic, err := open(src.Kanjidic2)
	if err != nil {
		return nil, Stats{}, err
	}
	defer dic.Close()

	krads := make([]io.Reader, 0, len(src.Kradfiles))
	for _, path := range src.Kradfiles {
		f, err := open(path)
		if err != nil {
			return nil, Stats{}, err
		}
		defer f.Close()
		krads = append(krads, f)
	}
	return Build(ctx, dic, krads, opts...)
}

// Build decodes a kanjidic2 stream and any number of KRADFILE streams
// concurrently and ingests the result into a new store.
func Build(ctx context.Context, dic io.Reader, krads []io.Reader, opts ...store.Option) (*store.Store, Stats, error) {
	start := time.Now()

	var (
		entries []*store.Entry
		header  *kanjidic2.Header
		decomps = make([]kradfile.Decompositions, len(krads))
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		d := kanjidic2.NewDecoder(dic)
		for {
			if len(entries)%1024 == 0 {
				if err := gctx.Err(); err != nil {
					return err
				}
			}
			e, err := d.Next()
			if err == io.EOF {
				header = d.Header()
				return nil
			}
			if err != nil {
				return err
			}
			entries = append(entries, e)
		}
	})
	for i, r := range krads {
		g.Go(func() error {
			d, err := kradfile.Read(r)
			if err != nil {
				return err
			}
			decomps[i] = d
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, Stats{}, err
	}

	components := make(kradfile.Decompositions)
	for _, d := range decomps {
		components.Merge(d)
	}

	s := store.New(opts...)
	stats := Stats{}
	if header != nil {
		stats.Version = header.DatabaseVersion
	}
	for _, e := range entries {
		cs, decomposed := components[e.Codepoint]
		e.Components = append(e.Components, cs...)
		if _, err := s.Ingest(e); err != nil {
			if errors.Is(err, store.ErrDuplicate) {
				stats.Duplicates++
				continue
			}
			return nil, Stats{}, fmt.Errorf("ingest: %s: %w", e.Literal, err)
		}
		stats.Characters++
		if decomposed {
			stats.Decomposed++
		}
	}
	stats.Duration = time.Since(start)
	return s, stats, nil
}

type gzipFile struct {
	*gzip.Reader
	f *os.File
}

func (g *gzipFile) Close() error {
	return errors.Join(g.Reader.Close(), g.f.Close())
}

func open(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("ingest: %w", err)
	}
	if !strings.HasSuffix(path, ".gz") {
		return f, nil
	}
	zr, err := gzip.NewReader(f)
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("ingest: %s: %w", path, err)
	}
	return &gzipFile{Reader: zr, f: f}, nil
}
