package model

import (
	"fmt"
	"slices"
)

// Kanji is one character of the catalog.
//
// Codepoint is the identity of the record. Set-valued fields keep insertion
// order but never hold duplicates; use the Add helpers to extend them.
type Kanji struct {
	Literal   string
	Codepoint rune

	JIS208 string
	JIS212 string
	JIS213 string

	ClassicalRadical uint8
	NelsonRadical    uint8
	// Grade is the school grade; 0 means not taught.
	Grade       uint8
	StrokeCount uint8
	// Frequency is the rank among the most frequent characters; 0 means unranked.
	Frequency uint16
	// JLPT is the proficiency level; 0 means none.
	JLPT uint8

	CodepointVariants []rune
	JIS208Variants    []string
	JIS212Variants    []string
	JIS213Variants    []string

	// RadicalNames are the names used when the character serves as a radical.
	RadicalNames []string
	Groups       []*ReadingMeaningGroup
	// Nanori are readings used only in names.
	Nanori     []string
	Components []rune
}

// New returns a record for the given literal and codepoint.
func New(literal string, cp rune) *Kanji {
	return &Kanji{Literal: literal, Codepoint: cp}
}

// String returns a short representation of the record.
func (k *Kanji) String() string {
	if k == nil {
		return "Kanji(nil)"
	}
	return fmt.Sprintf("Kanji(%s U+%04X)", k.Literal, k.Codepoint)
}

// AddCodepointVariant records another codepoint depicting the same character.
func (k *Kanji) AddCodepointVariant(cp rune) {
	if cp == 0 || cp == k.Codepoint {
		return
	}
	k.CodepointVariants = addRune(k.CodepointVariants, cp)
}

// AddJIS208Variant records a JIS X 0208 code of a variant form.
func (k *Kanji) AddJIS208Variant(code string) { k.JIS208Variants = addString(k.JIS208Variants, code) }

// AddJIS212Variant records a JIS X 0212 code of a variant form.
func (k *Kanji) AddJIS212Variant(code string) { k.JIS212Variants = addString(k.JIS212Variants, code) }

// AddJIS213Variant records a JIS X 0213 code of a variant form.
func (k *Kanji) AddJIS213Variant(code string) { k.JIS213Variants = addString(k.JIS213Variants, code) }

// AddRadicalName records a name of the character as a radical.
func (k *Kanji) AddRadicalName(name string) { k.RadicalNames = addString(k.RadicalNames, name) }

// AddNanori records a name-only reading.
func (k *Kanji) AddNanori(reading string) { k.Nanori = addString(k.Nanori, reading) }

// AddComponent records a structural component contained in the character.
func (k *Kanji) AddComponent(cp rune) {
	if cp == 0 {
		return
	}
	k.Components = addRune(k.Components, cp)
}

// AddGroup appends a reading/meaning group. Nil groups are ignored.
func (k *Kanji) AddGroup(g *ReadingMeaningGroup) {
	if g == nil {
		return
	}
	k.Groups = append(k.Groups, g)
}

// HasComponent reports whether cp is one of the record's components.
func (k *Kanji) HasComponent(cp rune) bool {
	return slices.Contains(k.Components, cp)
}

// Clone returns a deep copy of the record.
func (k *Kanji) Clone() *Kanji {
	if k == nil {
		return nil
	}
	c := *k
	c.CodepointVariants = slices.Clone(k.CodepointVariants)
	c.JIS208Variants = slices.Clone(k.JIS208Variants)
	c.JIS212Variants = slices.Clone(k.JIS212Variants)
	c.JIS213Variants = slices.Clone(k.JIS213Variants)
	c.RadicalNames = slices.Clone(k.RadicalNames)
	c.Nanori = slices.Clone(k.Nanori)
	c.Components = slices.Clone(k.Components)
	if k.Groups != nil {
		c.Groups = make([]*ReadingMeaningGroup, len(k.Groups))
		for i, g := range k.Groups {
			c.Groups[i] = g.Clone()
		}
	}
	return &c
}

func addString(set []string, s string) []string {
	if s == "" || slices.Contains(set, s) {
		return set
	}
	return append(set, s)
}

func addRune(set []rune, r rune) []rune {
	if slices.Contains(set, r) {
		return set
	}
	return append(set, r)
}
