package kradfile

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/japanese"

	"github.com/hupe1980/kanjigo/testutil"
)

func TestRead_UTF8(t *testing.T) {
	d, err := Read(strings.NewReader(testutil.KradfileUTF8))
	require.NoError(t, err)

	assert.Equal(t, Decompositions{
		'一': {'一'},
		'亜': {'一', '口'},
		'学': {'冖', '子'},
		'水': {'水'},
	}, d)
}

func TestRead_EUCJPMatchesUTF8(t *testing.T) {
	encoded, err := japanese.EUCJP.NewEncoder().Bytes([]byte(testutil.KradfileUTF8))
	require.NoError(t, err)
	require.NotEqual(t, []byte(testutil.KradfileUTF8), encoded)

	fromEUC, err := Read(bytes.NewReader(encoded))
	require.NoError(t, err)
	fromUTF8, err := Read(strings.NewReader(testutil.KradfileUTF8))
	require.NoError(t, err)
	assert.Equal(t, fromUTF8, fromEUC)
}

func TestRead_MalformedLine(t *testing.T) {
	_, err := Read(strings.NewReader("# ok\n休 化 木\n"))
	require.ErrorIs(t, err, ErrMalformedLine)

	_, err = Read(strings.NewReader("休木 : 化\n"))
	require.ErrorIs(t, err, ErrMalformedLine)
}

func TestRead_DuplicateComponents(t *testing.T) {
	d, err := Read(strings.NewReader("休 : 化 木 化\n\n休 : 木\n"))
	require.NoError(t, err)
	assert.Equal(t, []rune{'化', '木'}, d['休'])
}

func TestDecompositions_Merge(t *testing.T) {
	d := Decompositions{'休': {'化'}}
	d.Merge(Decompositions{'休': {'木', '化'}, '水': {'水'}})
	assert.Equal(t, Decompositions{'休': {'化', '木'}, '水': {'水'}}, d)
}
