package ingest

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/kanjigo/ingest/kanjidic2"
	"github.com/hupe1980/kanjigo/store"
	"github.com/hupe1980/kanjigo/testutil"
)

func TestBuild(t *testing.T) {
	s, stats, err := Build(context.Background(),
		strings.NewReader(testutil.Kanjidic2XML),
		[]io.Reader{strings.NewReader(testutil.KradfileUTF8)},
	)
	require.NoError(t, err)

	assert.Equal(t, 4, stats.Characters)
	assert.Equal(t, 4, stats.Decomposed)
	assert.Zero(t, stats.Duplicates)
	assert.Equal(t, "2024-001", stats.Version)
	assert.Equal(t, 4, s.Len())

	a, ok := s.Lookup(0x4E9C)
	require.True(t, ok)
	assert.Equal(t, []rune{'一', '口'}, a.Components)
	assert.Equal(t, []rune{0x4E00, 0x4E9C}, testutil.Codepoints(s.Select(store.ByComponent, '一')))

	k, ok := s.LookupLegacy(store.JIS208, "1-35-31")
	require.True(t, ok)
	assert.Equal(t, "水", k.Literal)
}

func TestBuild_Duplicates(t *testing.T) {
	const dic = `<kanjidic2>
<character><literal>一</literal><misc><stroke_count>1</stroke_count></misc></character>
<character><literal>一</literal><misc><stroke_count>2</stroke_count></misc></character>
</kanjidic2>`
	s, stats, err := Build(context.Background(), strings.NewReader(dic), nil)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Characters)
	assert.Equal(t, 1, stats.Duplicates)

	k, _ := s.Lookup(0x4E00)
	assert.Equal(t, uint8(1), k.StrokeCount)
}

func TestBuild_Errors(t *testing.T) {
	_, _, err := Build(context.Background(), strings.NewReader("<JMdict/>"), nil)
	require.ErrorIs(t, err, kanjidic2.ErrNotKanjidic2)

	_, _, err = Build(context.Background(),
		strings.NewReader(testutil.Kanjidic2XML),
		[]io.Reader{strings.NewReader("broken line\n")},
	)
	require.Error(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err = Build(ctx, strings.NewReader(testutil.Kanjidic2XML), nil)
	require.ErrorIs(t, err, context.Canceled)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	dic := filepath.Join(dir, "kanjidic2.xml.gz")
	krad := filepath.Join(dir, "kradfile")

	f, err := os.Create(dic)
	require.NoError(t, err)
	zw := gzip.NewWriter(f)
	_, err = io.WriteString(zw, testutil.Kanjidic2XML)
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())
	require.NoError(t, os.WriteFile(krad, []byte(testutil.KradfileUTF8), 0o644))

	src := Source{Kanjidic2: dic, Kradfiles: []string{krad}}
	assert.Equal(t, []string{dic, krad}, src.Paths())

	s, stats, err := Load(context.Background(), src)
	require.NoError(t, err)
	assert.Equal(t, 4, stats.Characters)
	assert.Equal(t, 4, s.Len())

	_, _, err = Load(context.Background(), Source{})
	require.ErrorIs(t, err, ErrNoKanjidic2)

	_, _, err = Load(context.Background(), Source{Kanjidic2: filepath.Join(dir, "missing.xml")})
	require.ErrorIs(t, err, os.ErrNotExist)
}
