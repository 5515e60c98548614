package store

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/kanjigo/model"
	"github.com/hupe1980/kanjigo/radical"
)

func codepoints(ks []*model.Kanji) []rune {
	out := make([]rune, 0, len(ks))
	for _, k := range ks {
		out = append(out, k.Codepoint)
	}
	return out
}

func sampleEntries() []*Entry {
	return []*Entry{
		{Literal: "一", Codepoint: 0x4E00, JIS208: "1-16-76", ClassicalRadical: 1, Grade: 1, StrokeCount: 1, JLPT: 4, Components: []rune{0x4E00}},
		{Literal: "水", Codepoint: 0x6C34, JIS208: "1-35-31", ClassicalRadical: 85, Grade: 1, StrokeCount: 4, JLPT: 4, Components: []rune{0x6C34}},
		{Literal: "氷", Codepoint: 0x6C37, JIS208: "1-41-25", ClassicalRadical: 85, Grade: 3, StrokeCount: 5, JLPT: 2, Components: []rune{0x4E36, 0x6C34}},
		{Literal: "学", Codepoint: 0x5B66, JIS208: "1-19-56", ClassicalRadical: 39, Grade: 1, StrokeCount: 8, JLPT: 4, CodepointVariants: []rune{0x5B78}},
		{Literal: "學", Codepoint: 0x5B78, JIS208: "1-53-67", ClassicalRadical: 39, StrokeCount: 16, JIS208Variants: []string{"1-19-56"}, CodepointVariants: []rune{0x9F9C}},
	}
}

func newSampleStore(t *testing.T) *Store {
	t.Helper()
	s := New(WithComponents(nil))
	for _, e := range sampleEntries() {
		_, err := s.Ingest(e)
		require.NoError(t, err)
	}
	return s
}

func TestStore_InsertAndLookupIdentity(t *testing.T) {
	s := newSampleStore(t)
	require.Equal(t, 5, s.Len())

	k, ok := s.Lookup(0x6C34)
	require.True(t, ok)
	assert.Equal(t, "水", k.Literal)

	byJIS, ok := s.LookupLegacy(JIS208, "1-35-31")
	require.True(t, ok)
	assert.Same(t, k, byJIS)

	for _, idx := range Indices {
		for _, key := range s.Keys(idx) {
			for _, r := range s.Select(idx, key) {
				owner, ok := s.Lookup(r.Codepoint)
				require.True(t, ok, "%s/%d references U+%04X", idx, key, r.Codepoint)
				assert.Same(t, owner, r)
			}
		}
	}
}

func TestStore_InsertErrors(t *testing.T) {
	s := New(WithComponents(nil))

	require.ErrorIs(t, s.Insert(nil), ErrInvalidCodepoint)
	require.ErrorIs(t, s.Insert(model.New("", 0)), ErrInvalidCodepoint)

	require.NoError(t, s.Insert(model.New("一", 0x4E00)))
	require.ErrorIs(t, s.Insert(model.New("一", 0x4E00)), ErrDuplicate)

	_, err := s.Ingest(&Entry{Literal: "一", Codepoint: 0x4E00, StrokeCount: 1})
	require.ErrorIs(t, err, ErrDuplicate)
	assert.Empty(t, s.Keys(ByStrokes))
}

func TestStore_IndexRefusesOrphans(t *testing.T) {
	s := New(WithComponents(nil))

	require.ErrorIs(t, s.Index(ByGrade, 1, 0x4E00), ErrOrphan)
	require.ErrorIs(t, s.IndexLegacy(JIS208, "1-16-76", 0x4E00), ErrOrphan)
	require.ErrorIs(t, s.Index(Index(42), 1, 0x4E00), ErrUnknownIndex)
	require.ErrorIs(t, s.IndexLegacy(LegacySpace(9), "x", 0x4E00), ErrUnknownIndex)

	// Empty codes are ignored before the orphan check.
	require.NoError(t, s.IndexLegacy(JIS212, "", 0x4E00))
	assert.Empty(t, s.Keys(ByGrade))
}

func TestStore_Select(t *testing.T) {
	s := newSampleStore(t)

	assert.Equal(t, []rune{0x4E00, 0x5B66, 0x6C34}, codepoints(s.Select(ByGrade, 1)))
	assert.Equal(t, []rune{0x6C34, 0x6C37}, codepoints(s.Select(ByRadical, 85)))
	assert.Equal(t, []rune{0x6C34, 0x6C37}, codepoints(s.Select(ByComponent, 0x6C34)))
	assert.Empty(t, s.Select(ByGrade, 9))
	assert.Empty(t, s.Select(Index(42), 1))

	// Zero-valued fields are not indexed.
	assert.Equal(t, []uint32{1, 3}, s.Keys(ByGrade))
	assert.Equal(t, []uint32{2, 4}, s.Keys(ByJLPT))

	members := slices.Collect(s.Members(ByStrokes, 4))
	assert.Equal(t, []rune{0x6C34}, members)
	assert.Empty(t, slices.Collect(s.Members(ByStrokes, 99)))
}

func TestStore_StrokeBounds(t *testing.T) {
	s := New(WithComponents(nil))
	lo, hi := s.StrokeBounds()
	assert.Zero(t, lo)
	assert.Zero(t, hi)

	s = newSampleStore(t)
	lo, hi = s.StrokeBounds()
	assert.Equal(t, uint32(1), lo)
	assert.Equal(t, uint32(16), hi)

	// Restoring narrower bounds never narrows.
	s.SetStrokeBounds(3, 5)
	lo, hi = s.StrokeBounds()
	assert.Equal(t, uint32(1), lo)
	assert.Equal(t, uint32(16), hi)

	s.SetStrokeBounds(9, 3)
	lo, hi = s.StrokeBounds()
	assert.Equal(t, uint32(1), lo)
	assert.Equal(t, uint32(16), hi)

	for _, key := range s.Keys(ByStrokes) {
		assert.GreaterOrEqual(t, key, lo)
		assert.LessOrEqual(t, key, hi)
	}
}

func TestStore_Variants(t *testing.T) {
	s := newSampleStore(t)

	gaku, _ := s.Lookup(0x5B66)
	oldGaku, _ := s.Lookup(0x5B78)

	assert.Equal(t, []rune{0x5B78}, codepoints(s.Variants(gaku)))
	// 0x9F9C is not loaded and is skipped; the JIS variant resolves to 学.
	assert.Equal(t, []rune{0x5B66}, codepoints(s.Variants(oldGaku)))

	water, _ := s.Lookup(0x6C34)
	assert.Empty(t, s.Variants(water))
	assert.Nil(t, s.Variants(nil))
}

func TestStore_LegacyLastWriteWins(t *testing.T) {
	s := newSampleStore(t)
	require.NoError(t, s.IndexLegacy(JIS208, "1-35-31", 0x6C37))

	k, ok := s.LookupLegacy(JIS208, "1-35-31")
	require.True(t, ok)
	assert.Equal(t, rune(0x6C37), k.Codepoint)
	assert.Equal(t, 5, s.LegacyLen(JIS208))
}

func TestStore_ClearIdempotent(t *testing.T) {
	s := newSampleStore(t)

	s.Clear()
	s.Clear()

	assert.Zero(t, s.Len())
	for _, idx := range Indices {
		assert.Empty(t, s.Keys(idx))
	}
	for _, space := range LegacySpaces {
		assert.Zero(t, s.LegacyLen(space))
	}
	assert.Zero(t, s.ComponentLen())
	lo, hi := s.StrokeBounds()
	assert.Zero(t, lo)
	assert.Zero(t, hi)

	empty := New(WithComponents(nil))
	empty.Clear()
	assert.Zero(t, empty.Len())
}

func TestStore_AllOrdered(t *testing.T) {
	s := newSampleStore(t)
	var got []rune
	for k := range s.All() {
		got = append(got, k.Codepoint)
	}
	assert.True(t, slices.IsSorted(got))
	assert.Len(t, got, 5)
}

func TestStore_DefaultComponents(t *testing.T) {
	s := New()

	assert.Equal(t, len(radical.DefaultComponents()), s.ComponentLen())

	water, ok := s.Component(0x6C34)
	require.True(t, ok)
	assert.Equal(t, uint8(4), water.StrokeCount)

	ord, ok := s.ComponentOrdinal(0x6C34)
	require.True(t, ok)
	byOrd, ok := s.ComponentByOrdinal(ord)
	require.True(t, ok)
	assert.Same(t, water, byOrd)

	diag, ok := s.Faulty(0x5316)
	require.True(t, ok)
	assert.NotEmpty(t, diag)
	_, ok = s.Faulty(0x6C34)
	assert.False(t, ok)

	n := 0
	for range s.FaultyComponents() {
		n++
	}
	assert.Equal(t, 20, n)

	assert.Same(t, radical.Default(), s.Radicals())
}

func TestStore_ComponentCatalogErrors(t *testing.T) {
	s := New(WithComponents(nil))

	require.ErrorIs(t, s.SetComponentOrdinal(1, 0x4E00), ErrOrphan)
	require.ErrorIs(t, s.SetFaulty(0x4E00, "x"), ErrOrphan)
	require.ErrorIs(t, s.AddComponent(nil), ErrInvalidCodepoint)

	require.NoError(t, s.AddComponent(model.New("一", 0x4E00)))
	require.ErrorIs(t, s.AddComponent(model.New("一", 0x4E00)), ErrDuplicate)
	require.NoError(t, s.AddComponent(model.New("丨", 0x4E28)))

	require.NoError(t, s.SetComponentOrdinal(1, 0x4E00))
	require.NoError(t, s.SetComponentOrdinal(1, 0x4E00))
	require.ErrorIs(t, s.SetComponentOrdinal(1, 0x4E28), ErrDuplicate)
}

func TestEntry_Record(t *testing.T) {
	g := &model.ReadingMeaningGroup{}
	g.AddOn("スイ")
	e := &Entry{
		Literal:      "水",
		Codepoint:    0x6C34,
		Frequency:    223,
		Groups:       []*model.ReadingMeaningGroup{g, nil},
		Nanori:       []string{"み", "み", "ず"},
		RadicalNames: []string{""},
	}

	k := e.Record()
	assert.Equal(t, uint16(223), k.Frequency)
	assert.Len(t, k.Groups, 1)
	assert.Equal(t, []string{"み", "ず"}, k.Nanori)
	assert.Empty(t, k.RadicalNames)
}
