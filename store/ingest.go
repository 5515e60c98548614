package store

import (
	"github.com/hupe1980/kanjigo/model"
)

// Entry carries the field values of one source character as handed over by
// an ingestion source. Zero values mean absent.
type Entry struct {
	Literal   string
	Codepoint rune

	JIS208 string
	JIS212 string
	JIS213 string

	ClassicalRadical uint8
	NelsonRadical    uint8
	Grade            uint8
	StrokeCount      uint8
	Frequency        uint16
	JLPT             uint8

	CodepointVariants []rune
	JIS208Variants    []string
	JIS212Variants    []string
	JIS213Variants    []string

	RadicalNames []string
	Groups       []*model.ReadingMeaningGroup
	Nanori       []string
	Components   []rune
}

// Record builds the record described by the entry.
func (e *Entry) Record() *model.Kanji {
	k := model.New(e.Literal, e.Codepoint)
	k.JIS208 = e.JIS208
	k.JIS212 = e.JIS212
	k.JIS213 = e.JIS213
	k.ClassicalRadical = e.ClassicalRadical
	k.NelsonRadical = e.NelsonRadical
	k.Grade = e.Grade
	k.StrokeCount = e.StrokeCount
	k.Frequency = e.Frequency
	k.JLPT = e.JLPT
	for _, cp := range e.CodepointVariants {
		k.AddCodepointVariant(cp)
	}
	for _, c := range e.JIS208Variants {
		k.AddJIS208Variant(c)
	}
	for _, c := range e.JIS212Variants {
		k.AddJIS212Variant(c)
	}
	for _, c := range e.JIS213Variants {
		k.AddJIS213Variant(c)
	}
	for _, n := range e.RadicalNames {
		k.AddRadicalName(n)
	}
	for _, g := range e.Groups {
		k.AddGroup(g)
	}
	for _, r := range e.Nanori {
		k.AddNanori(r)
	}
	for _, cp := range e.Components {
		k.AddComponent(cp)
	}
	return k
}

// Ingest inserts the record described by e and fans it out into every
// secondary index its fields apply to.
func (s *Store) Ingest(e *Entry) (*model.Kanji, error) {
	k := e.Record()
	if err := s.Insert(k); err != nil {
		return nil, err
	}

	cp := k.Codepoint
	// Insert succeeded, so indexing below cannot report an orphan.
	_ = s.IndexLegacy(JIS208, k.JIS208, cp)
	_ = s.IndexLegacy(JIS212, k.JIS212, cp)
	_ = s.IndexLegacy(JIS213, k.JIS213, cp)

	if k.StrokeCount > 0 {
		_ = s.Index(ByStrokes, uint32(k.StrokeCount), cp)
	}
	if k.ClassicalRadical > 0 {
		_ = s.Index(ByRadical, uint32(k.ClassicalRadical), cp)
	}
	if k.Grade > 0 {
		_ = s.Index(ByGrade, uint32(k.Grade), cp)
	}
	if k.JLPT > 0 {
		_ = s.Index(ByJLPT, uint32(k.JLPT), cp)
	}
	for _, c := range k.Components {
		_ = s.Index(ByComponent, uint32(c), cp)
	}
	return k, nil
}
