package kanjigo_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/hupe1980/kanjigo"
	"github.com/hupe1980/kanjigo/blobstore"
	"github.com/hupe1980/kanjigo/cache"
	"github.com/hupe1980/kanjigo/ingest"
	"github.com/hupe1980/kanjigo/testutil"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// withoutWater drops 水 from the kanjidic2 fixture.
func withoutWater() string {
	xml := testutil.Kanjidic2XML
	start := strings.Index(xml, "<!-- Entry for Kanji: 水 -->")
	end := strings.Index(xml, "</kanjidic2>")
	return xml[:start] + xml[end:]
}

func writeSource(t *testing.T, dir, dic string) ingest.Source {
	t.Helper()
	src := ingest.Source{
		Kanjidic2: filepath.Join(dir, "kanjidic2.xml"),
		Kradfiles: []string{filepath.Join(dir, "kradfile")},
	}
	require.NoError(t, os.WriteFile(src.Kanjidic2, []byte(dic), 0o644))
	require.NoError(t, os.WriteFile(src.Kradfiles[0], []byte(testutil.KradfileUTF8), 0o644))
	return src
}

func TestOpen_BuildThenCache(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	src := writeSource(t, dir, testutil.Kanjidic2XML)
	c := cache.New(blobstore.NewLocalStore(filepath.Join(dir, "cache")), cache.WithCompression(cache.CompressionZSTD))
	metrics := &kanjigo.BasicMetricsCollector{}

	cat, err := kanjigo.Open(ctx, kanjigo.WithSource(src), kanjigo.WithCache(c), kanjigo.WithMetricsCollector(metrics))
	require.NoError(t, err)
	stats := cat.Stats()
	assert.Equal(t, kanjigo.OriginSource, stats.Origin)
	assert.Equal(t, 4, stats.Records)
	assert.Equal(t, "2024-001", stats.Build.Version)
	require.NoError(t, cat.Close())

	got := metrics.GetStats()
	assert.Equal(t, int64(1), got.LoadMisses)
	assert.Equal(t, int64(1), got.BuildCount)
	assert.Equal(t, int64(1), got.SaveCount)
	assert.Zero(t, got.SaveErrors)

	// The second open must not need the source.
	require.NoError(t, os.Remove(src.Kanjidic2))
	cat, err = kanjigo.Open(ctx, kanjigo.WithSource(src), kanjigo.WithCache(c))
	require.NoError(t, err)
	defer cat.Close()
	assert.Equal(t, kanjigo.OriginCache, cat.Stats().Origin)

	k, err := cat.Lookup('亜')
	require.NoError(t, err)
	assert.Equal(t, []rune{'一', '口'}, k.Components)
}

func TestOpen_CorruptCacheRebuilds(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	src := writeSource(t, dir, testutil.Kanjidic2XML)
	blobs := blobstore.NewMemoryStore()
	require.NoError(t, blobs.Put(ctx, cache.CurrentName, []byte("catalog-00000001.kjc")))
	require.NoError(t, blobs.Put(ctx, "catalog-00000001.kjc", []byte("garbage")))

	cat, err := kanjigo.Open(ctx, kanjigo.WithSource(src), kanjigo.WithCache(cache.New(blobs)))
	require.NoError(t, err)
	defer cat.Close()
	assert.Equal(t, kanjigo.OriginSource, cat.Stats().Origin)

	current, err := cache.New(blobs).Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, "catalog-00000002.kjc", current)
}

func TestOpen_NoSource(t *testing.T) {
	ctx := context.Background()

	_, err := kanjigo.Open(ctx)
	require.ErrorIs(t, err, kanjigo.ErrNoSource)

	_, err = kanjigo.Open(ctx, kanjigo.WithCache(cache.New(blobstore.NewMemoryStore())))
	require.ErrorIs(t, err, kanjigo.ErrNoSource)
	assert.True(t, kanjigo.IsMiss(err))
}

func TestOpen_BuildError(t *testing.T) {
	dir := t.TempDir()
	src := writeSource(t, dir, "<JMdict/>")

	_, err := kanjigo.Open(context.Background(), kanjigo.WithSource(src))
	var be *kanjigo.BuildError
	require.ErrorAs(t, err, &be)
	assert.Contains(t, be.Source, "kanjidic2.xml")
}

func TestOpen_WithoutCacheWrite(t *testing.T) {
	ctx := context.Background()
	src := writeSource(t, t.TempDir(), testutil.Kanjidic2XML)
	blobs := blobstore.NewMemoryStore()

	cat, err := kanjigo.Open(ctx, kanjigo.WithSource(src), kanjigo.WithCache(cache.New(blobs)), kanjigo.WithoutCacheWrite())
	require.NoError(t, err)
	defer cat.Close()

	names, err := blobs.List(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, names)

	name, err := cat.Save(ctx)
	require.NoError(t, err)
	assert.Equal(t, "catalog-00000001.kjc", name)
}

func TestQuery(t *testing.T) {
	ctx := context.Background()
	metrics := &kanjigo.BasicMetricsCollector{}
	cat, err := kanjigo.Open(ctx, kanjigo.WithStore(testutil.NewStore(t)), kanjigo.WithMetricsCollector(metrics))
	require.NoError(t, err)
	defer cat.Close()

	res, err := cat.Query(ctx, "水一水")
	require.NoError(t, err)
	assert.False(t, res.Keyed)
	assert.Equal(t, []rune{'水', '一'}, testutil.Codepoints(res.Records))

	res, err = cat.Query(ctx, "grade=3")
	require.NoError(t, err)
	assert.True(t, res.Keyed)
	assert.Equal(t, []rune{'氷'}, testutil.Codepoints(res.Records))

	_, err = cat.Query(ctx, "grade=3")
	require.NoError(t, err)

	stats := metrics.GetStats()
	assert.Equal(t, int64(3), stats.QueryCount)
	assert.Equal(t, int64(1), stats.QueryCacheHits)
}

func TestQuery_CallersDoNotShareRecords(t *testing.T) {
	ctx := context.Background()
	cat, err := kanjigo.Open(ctx, kanjigo.WithStore(testutil.NewStore(t)))
	require.NoError(t, err)
	defer cat.Close()

	first, err := cat.Query(ctx, "水一水")
	require.NoError(t, err)
	first.Records[0] = nil

	second, err := cat.Query(ctx, "水一水")
	require.NoError(t, err)
	assert.Equal(t, []rune{'水', '一'}, testutil.Codepoints(second.Records))
	second.Records[0], second.Records[1] = second.Records[1], second.Records[0]

	third, err := cat.Query(ctx, "水一水")
	require.NoError(t, err)
	assert.Equal(t, []rune{'水', '一'}, testutil.Codepoints(third.Records))
}

func TestQuery_NoResultCache(t *testing.T) {
	ctx := context.Background()
	metrics := &kanjigo.BasicMetricsCollector{}
	cat, err := kanjigo.Open(ctx,
		kanjigo.WithStore(testutil.NewStore(t)),
		kanjigo.WithMetricsCollector(metrics),
		kanjigo.WithQueryCacheSize(0),
	)
	require.NoError(t, err)
	defer cat.Close()

	for range 3 {
		_, err := cat.Query(ctx, "jlpt=4")
		require.NoError(t, err)
	}
	assert.Zero(t, metrics.GetStats().QueryCacheHits)
}

func TestQuery_Canceled(t *testing.T) {
	cat, err := kanjigo.Open(context.Background(), kanjigo.WithStore(testutil.NewStore(t)))
	require.NoError(t, err)
	defer cat.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = cat.Query(ctx, "一")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestClosed(t *testing.T) {
	ctx := context.Background()
	cat, err := kanjigo.Open(ctx, kanjigo.WithStore(testutil.NewStore(t)))
	require.NoError(t, err)
	require.NoError(t, cat.Close())
	require.NoError(t, cat.Close())

	_, err = cat.Query(ctx, "一")
	assert.ErrorIs(t, err, kanjigo.ErrClosed)
	_, err = cat.Lookup('一')
	assert.ErrorIs(t, err, kanjigo.ErrClosed)
	assert.ErrorIs(t, cat.Reload(ctx), kanjigo.ErrClosed)
	_, err = cat.Save(ctx)
	assert.ErrorIs(t, err, kanjigo.ErrClosed)
	assert.ErrorIs(t, cat.Watch(ctx), kanjigo.ErrNoSource)
}

func TestLookupAndVariants(t *testing.T) {
	cat, err := kanjigo.Open(context.Background(), kanjigo.WithStore(testutil.NewStore(t)))
	require.NoError(t, err)
	defer cat.Close()

	_, err = cat.Lookup(0x9F9C)
	assert.ErrorIs(t, err, kanjigo.ErrNotFound)

	vs, err := cat.Variants('学')
	require.NoError(t, err)
	assert.Equal(t, []rune{'學'}, testutil.Codepoints(vs))

	_, err = cat.Variants(0x9F9C)
	assert.ErrorIs(t, err, kanjigo.ErrNotFound)
}

func TestSave_NoCache(t *testing.T) {
	cat, err := kanjigo.Open(context.Background(), kanjigo.WithStore(testutil.NewStore(t)))
	require.NoError(t, err)
	defer cat.Close()

	_, err = cat.Save(context.Background())
	assert.ErrorIs(t, err, kanjigo.ErrNoCache)
	assert.ErrorIs(t, cat.Reload(context.Background()), kanjigo.ErrNoSource)
}

func TestReload_SwapsAtomically(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	src := writeSource(t, dir, testutil.Kanjidic2XML)

	cat, err := kanjigo.Open(ctx, kanjigo.WithSource(src))
	require.NoError(t, err)
	defer cat.Close()

	before, err := cat.Query(ctx, "grade=1")
	require.NoError(t, err)
	require.Len(t, before.Records, 3)
	oldStore := cat.Store()

	require.NoError(t, os.WriteFile(src.Kanjidic2, []byte(withoutWater()), 0o644))
	require.NoError(t, cat.Reload(ctx))

	after, err := cat.Query(ctx, "grade=1")
	require.NoError(t, err)
	assert.Equal(t, []rune{'一', '学'}, testutil.Codepoints(after.Records))
	assert.Equal(t, uint64(2), cat.Stats().Generation)

	// The previous store and results stay intact.
	assert.Len(t, before.Records, 3)
	assert.Equal(t, 4, oldStore.Len())
	_, err = cat.Lookup('水')
	assert.ErrorIs(t, err, kanjigo.ErrNotFound)
}

func TestReload_ConcurrentWithQueries(t *testing.T) {
	ctx := context.Background()
	src := writeSource(t, t.TempDir(), testutil.Kanjidic2XML)

	cat, err := kanjigo.Open(ctx, kanjigo.WithSource(src), kanjigo.WithQueryCacheSize(4))
	require.NoError(t, err)
	defer cat.Close()

	var wg sync.WaitGroup
	for range 4 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for range 5 {
				assert.NoError(t, cat.Reload(ctx))
			}
		}()
		go func() {
			defer wg.Done()
			for range 200 {
				res, err := cat.Query(ctx, "jlpt=4&strokes<9")
				assert.NoError(t, err)
				assert.Len(t, res.Records, 3)
			}
		}()
	}
	wg.Wait()

	assert.Greater(t, cat.Stats().Generation, uint64(1))
	assert.Equal(t, 4, cat.Stats().Records)
}

func TestReload_CanceledCallerDoesNotAbortRebuild(t *testing.T) {
	src := writeSource(t, t.TempDir(), testutil.Kanjidic2XML)

	cat, err := kanjigo.Open(context.Background(), kanjigo.WithSource(src))
	require.NoError(t, err)
	defer cat.Close()

	require.NoError(t, os.WriteFile(src.Kanjidic2, []byte(withoutWater()), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err = cat.Reload(ctx)
	assert.ErrorIs(t, err, context.Canceled)

	// The rebuild started by the canceled caller still completes.
	assert.Eventually(t, func() bool {
		return cat.Stats().Generation == 2
	}, 5*time.Second, 10*time.Millisecond)
	assert.Equal(t, 3, cat.Stats().Records)
}

func TestWatch(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	src := writeSource(t, dir, testutil.Kanjidic2XML)

	cat, err := kanjigo.Open(ctx, kanjigo.WithSource(src), kanjigo.WithReloadInterval(10*time.Millisecond))
	require.NoError(t, err)
	require.NoError(t, cat.Watch(ctx))

	// Unrelated files in the same directory are ignored.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(src.Kanjidic2, []byte(withoutWater()), 0o644))

	require.Eventually(t, func() bool {
		return cat.Stats().Records == 3
	}, 5*time.Second, 20*time.Millisecond)
	assert.Equal(t, uint64(2), cat.Stats().Generation)

	require.NoError(t, cat.Close())
	assert.ErrorIs(t, cat.Watch(ctx), kanjigo.ErrClosed)
}

func TestWatch_StopsWithContext(t *testing.T) {
	src := writeSource(t, t.TempDir(), testutil.Kanjidic2XML)

	cat, err := kanjigo.Open(context.Background(), kanjigo.WithSource(src))
	require.NoError(t, err)
	defer cat.Close()

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, cat.Watch(ctx))
	cancel()
}
