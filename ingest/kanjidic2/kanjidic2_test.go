package kanjidic2

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/kanjigo/store"
	"github.com/hupe1980/kanjigo/testutil"
)

func fixture(literals ...string) []*store.Entry {
	byLiteral := make(map[string]*store.Entry)
	for _, e := range testutil.Entries() {
		e.Components = nil
		byLiteral[e.Literal] = e
	}
	out := make([]*store.Entry, 0, len(literals))
	for _, l := range literals {
		out = append(out, byLiteral[l])
	}
	return out
}

func TestDecode_Fixture(t *testing.T) {
	entries, header, err := Decode(strings.NewReader(testutil.Kanjidic2XML))
	require.NoError(t, err)
	require.NotNil(t, header)
	assert.Equal(t, "2024-001", header.DatabaseVersion)
	assert.Equal(t, "4", header.FileVersion)

	require.Len(t, entries, 4)
	assert.Equal(t, fixture("一", "亜", "学", "水"), entries)
}

func TestDecoder_FirstStrokeCountWins(t *testing.T) {
	d := NewDecoder(strings.NewReader(testutil.Kanjidic2XML))
	_, err := d.Next()
	require.NoError(t, err)
	a, err := d.Next()
	require.NoError(t, err)
	assert.Equal(t, "亜", a.Literal)
	assert.Equal(t, uint8(7), a.StrokeCount)
}

func TestDecoder_EOFIsSticky(t *testing.T) {
	d := NewDecoder(strings.NewReader(`<kanjidic2><character><literal>一</literal></character></kanjidic2>`))
	e, err := d.Next()
	require.NoError(t, err)
	assert.Equal(t, rune(0x4E00), e.Codepoint, "codepoint falls back to the literal")

	_, err = d.Next()
	require.ErrorIs(t, err, io.EOF)
	_, err = d.Next()
	require.ErrorIs(t, err, io.EOF)
	assert.Nil(t, d.Header())
}

func TestDecode_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  error
	}{
		{"empty", "", ErrNotKanjidic2},
		{"wrong root", `<JMdict><entry/></JMdict>`, ErrNotKanjidic2},
		{"missing literal", `<kanjidic2><character><misc><grade>1</grade></misc></character></kanjidic2>`, ErrMalformed},
		{"bad grade", `<kanjidic2><character><literal>一</literal><misc><grade>one</grade></misc></character></kanjidic2>`, ErrMalformed},
		{"bad ucs", `<kanjidic2><character><literal>一</literal><codepoint><cp_value cp_type="ucs">xyz</cp_value></codepoint></character></kanjidic2>`, ErrMalformed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Decode(strings.NewReader(tt.input))
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestDecode_SyntaxError(t *testing.T) {
	_, _, err := Decode(strings.NewReader(`<kanjidic2><character><literal>一</literal>`))
	require.Error(t, err)
}

func TestDecode_SkipsEmptyGroups(t *testing.T) {
	const input = `<kanjidic2><character><literal>一</literal>
<reading_meaning><rmgroup><reading r_type="pinyin">yi1</reading><meaning m_lang="es">uno</meaning></rmgroup></reading_meaning>
</character></kanjidic2>`
	entries, _, err := Decode(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Empty(t, entries[0].Groups)
}
