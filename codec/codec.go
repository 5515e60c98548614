// Package codec renders catalog records as JSON for output.
//
// The binary cache format lives in package persistence; this package only
// renders records for humans and tools.
package codec

import (
	"io"
	"slices"

	"github.com/hupe1980/kanjigo/model"
)

// Codec writes rendered records.
// Implementations must be safe for concurrent use.
type Codec interface {
	// Encode writes recs to w as one JSON array followed by a newline.
	// A nil recs is written as an empty array.
	Encode(w io.Writer, recs []Record) error
	Name() string
}

var codecs = []Codec{JSON{}, GoJSON{}}

// Names returns the names of the built-in codecs.
func Names() []string {
	names := make([]string, len(codecs))
	for i, c := range codecs {
		names[i] = c.Name()
	}
	return names
}

// ByName returns a built-in codec by its stable name.
func ByName(name string) (Codec, bool) {
	i := slices.IndexFunc(codecs, func(c Codec) bool { return c.Name() == name })
	if i < 0 {
		return nil, false
	}
	return codecs[i], true
}

// EncodeKanji renders ks and writes them with c.
func EncodeKanji(w io.Writer, c Codec, ks []*model.Kanji) error {
	return c.Encode(w, NewRecords(ks))
}

func nonNil(recs []Record) []Record {
	if recs == nil {
		return []Record{}
	}
	return recs
}
