package codec

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/hupe1980/kanjigo/model"
)

// Group is the rendered form of a model.ReadingMeaningGroup.
type Group struct {
	On      []string `json:"on,omitempty"`
	Kun     []string `json:"kun,omitempty"`
	English []string `json:"en,omitempty"`
	French  []string `json:"fr,omitempty"`
}

// Record is the rendered form of a model.Kanji. Codepoints are written as
// "U+XXXX" and zero-valued numeric fields are omitted.
type Record struct {
	Literal    string   `json:"literal"`
	Codepoint  string   `json:"ucs"`
	JIS208     string   `json:"jis208,omitempty"`
	JIS212     string   `json:"jis212,omitempty"`
	JIS213     string   `json:"jis213,omitempty"`
	Radical    uint8    `json:"radical,omitempty"`
	Nelson     uint8    `json:"nelson,omitempty"`
	Grade      uint8    `json:"grade,omitempty"`
	Strokes    uint8    `json:"strokes,omitempty"`
	Frequency  uint16   `json:"freq,omitempty"`
	JLPT       uint8    `json:"jlpt,omitempty"`
	Variants   []string `json:"variants,omitempty"`
	Radicals   []string `json:"radical_names,omitempty"`
	Groups     []Group  `json:"groups,omitempty"`
	Nanori     []string `json:"nanori,omitempty"`
	Components []string `json:"components,omitempty"`
}

// FormatCodepoint renders cp as "U+XXXX".
func FormatCodepoint(cp rune) string {
	return fmt.Sprintf("U+%04X", cp)
}

// ParseCodepoint parses "U+XXXX" or bare hex.
func ParseCodepoint(s string) (rune, error) {
	hex := strings.TrimPrefix(strings.TrimPrefix(s, "U+"), "u+")
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("codec: invalid codepoint %q", s)
	}
	return rune(v), nil
}

// NewRecord renders k. Variant and component codepoints are rendered as
// literals.
func NewRecord(k *model.Kanji) Record {
	r := Record{
		Literal:   k.Literal,
		Codepoint: FormatCodepoint(k.Codepoint),
		JIS208:    k.JIS208,
		JIS212:    k.JIS212,
		JIS213:    k.JIS213,
		Radical:   k.ClassicalRadical,
		Nelson:    k.NelsonRadical,
		Grade:     k.Grade,
		Strokes:   k.StrokeCount,
		Frequency: k.Frequency,
		JLPT:      k.JLPT,
		Radicals:  k.RadicalNames,
		Nanori:    k.Nanori,
	}
	for _, cp := range k.CodepointVariants {
		r.Variants = append(r.Variants, string(cp))
	}
	for _, code := range k.JIS208Variants {
		r.Variants = append(r.Variants, "jis208:"+code)
	}
	for _, code := range k.JIS212Variants {
		r.Variants = append(r.Variants, "jis212:"+code)
	}
	for _, code := range k.JIS213Variants {
		r.Variants = append(r.Variants, "jis213:"+code)
	}
	for _, g := range k.Groups {
		r.Groups = append(r.Groups, Group{On: g.On, Kun: g.Kun, English: g.English, French: g.French})
	}
	for _, cp := range k.Components {
		r.Components = append(r.Components, string(cp))
	}
	return r
}

// NewRecords renders every record of ks.
func NewRecords(ks []*model.Kanji) []Record {
	out := make([]Record, len(ks))
	for i, k := range ks {
		out[i] = NewRecord(k)
	}
	return out
}
