// Package kanjidic2 decodes the kanjidic2 XML dictionary into store entries.
package kanjidic2

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/hupe1980/kanjigo/model"
	"github.com/hupe1980/kanjigo/store"
)

var (
	// ErrNotKanjidic2 is returned when the root element is not kanjidic2.
	ErrNotKanjidic2 = errors.New("kanjidic2: root element is not kanjidic2")
	// ErrMalformed is returned for a character with unusable field values.
	ErrMalformed = errors.New("kanjidic2: malformed character")
)

// Header is the database header of a kanjidic2 file.
type Header struct {
	FileVersion     string `xml:"file_version"`
	DatabaseVersion string `xml:"database_version"`
	DateOfCreation  string `xml:"date_of_creation"`
}

type cpValue struct {
	Type  string `xml:"cp_type,attr"`
	Value string `xml:",chardata"`
}

type radValue struct {
	Type  string `xml:"rad_type,attr"`
	Value string `xml:",chardata"`
}

type variant struct {
	Type  string `xml:"var_type,attr"`
	Value string `xml:",chardata"`
}

type reading struct {
	Type  string `xml:"r_type,attr"`
	Value string `xml:",chardata"`
}

type meaning struct {
	Lang  string `xml:"m_lang,attr"`
	Value string `xml:",chardata"`
}

type character struct {
	Literal    string     `xml:"literal"`
	Codepoints []cpValue  `xml:"codepoint>cp_value"`
	Radicals   []radValue `xml:"radical>rad_value"`
	Misc       struct {
		Grade        string    `xml:"grade"`
		StrokeCounts []string  `xml:"stroke_count"`
		Variants     []variant `xml:"variant"`
		Freq         string    `xml:"freq"`
		RadNames     []string  `xml:"rad_name"`
		JLPT         string    `xml:"jlpt"`
	} `xml:"misc"`
	ReadingMeaning struct {
		Groups []struct {
			Readings []reading `xml:"reading"`
			Meanings []meaning `xml:"meaning"`
		} `xml:"rmgroup"`
		Nanori []string `xml:"nanori"`
	} `xml:"reading_meaning"`
}

// Decoder reads characters one at a time.
type Decoder struct {
	d      *xml.Decoder
	header *Header
	inRoot bool
	done   bool
}

// NewDecoder returns a decoder reading from r.
func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{d: xml.NewDecoder(r)}
}

// Header returns the database header once it has been read, or nil.
func (d *Decoder) Header() *Header {
	return d.header
}

// Next returns the next character. It returns io.EOF after the last one.
func (d *Decoder) Next() (*store.Entry, error) {
	if d.done {
		return nil, io.EOF
	}
	for {
		tok, err := d.d.Token()
		if err == io.EOF {
			d.done = true
			if !d.inRoot {
				return nil, ErrNotKanjidic2
			}
			return nil, io.EOF
		}
		if err != nil {
			return nil, fmt.Errorf("kanjidic2: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if !d.inRoot {
				if t.Name.Local != "kanjidic2" {
					d.done = true
					return nil, fmt.Errorf("%w: got %q", ErrNotKanjidic2, t.Name.Local)
				}
				d.inRoot = true
				continue
			}
			switch t.Name.Local {
			case "header":
				h := &Header{}
				if err := d.d.DecodeElement(h, &t); err != nil {
					return nil, fmt.Errorf("kanjidic2: header: %w", err)
				}
				d.header = h
			case "character":
				var c character
				if err := d.d.DecodeElement(&c, &t); err != nil {
					return nil, fmt.Errorf("kanjidic2: character: %w", err)
				}
				return c.entry()
			default:
				if err := d.d.Skip(); err != nil {
					return nil, fmt.Errorf("kanjidic2: %w", err)
				}
			}
		case xml.EndElement:
			if d.inRoot && t.Name.Local == "kanjidic2" {
				d.done = true
				return nil, io.EOF
			}
		}
	}
}

// Decode reads every character of r.
func Decode(r io.Reader) ([]*store.Entry, *Header, error) {
	d := NewDecoder(r)
	var out []*store.Entry
	for {
		e, err := d.Next()
		if err == io.EOF {
			return out, d.Header(), nil
		}
		if err != nil {
			return nil, nil, err
		}
		out = append(out, e)
	}
}

func (c *character) entry() (*store.Entry, error) {
	literal := strings.TrimSpace(c.Literal)
	if literal == "" {
		return nil, fmt.Errorf("%w: missing literal", ErrMalformed)
	}
	p := parser{literal: literal}

	e := &store.Entry{Literal: literal}
	for _, cp := range c.Codepoints {
		v := strings.TrimSpace(cp.Value)
		switch cp.Type {
		case "ucs":
			e.Codepoint = p.hex(v)
		case "jis208":
			e.JIS208 = v
		case "jis212":
			e.JIS212 = v
		case "jis213":
			e.JIS213 = v
		}
	}
	if e.Codepoint == 0 {
		e.Codepoint, _ = utf8.DecodeRuneInString(literal)
	}

	for _, r := range c.Radicals {
		switch r.Type {
		case "classical":
			e.ClassicalRadical = p.u8(r.Value)
		case "nelson_c":
			e.NelsonRadical = p.u8(r.Value)
		}
	}

	m := &c.Misc
	e.Grade = p.u8(m.Grade)
	// The first stroke count is the accepted one; later ones are common miscounts.
	if len(m.StrokeCounts) > 0 {
		e.StrokeCount = p.u8(m.StrokeCounts[0])
	}
	for _, v := range m.Variants {
		code := strings.TrimSpace(v.Value)
		switch v.Type {
		case "ucs":
			e.CodepointVariants = append(e.CodepointVariants, p.hex(code))
		case "jis208":
			e.JIS208Variants = append(e.JIS208Variants, code)
		case "jis212":
			e.JIS212Variants = append(e.JIS212Variants, code)
		case "jis213":
			e.JIS213Variants = append(e.JIS213Variants, code)
		}
	}
	e.Frequency = p.u16(m.Freq)
	for _, n := range m.RadNames {
		e.RadicalNames = append(e.RadicalNames, strings.TrimSpace(n))
	}
	e.JLPT = p.u8(m.JLPT)

	for _, rg := range c.ReadingMeaning.Groups {
		g := &model.ReadingMeaningGroup{}
		for _, r := range rg.Readings {
			switch r.Type {
			case "ja_on":
				g.AddOn(strings.TrimSpace(r.Value))
			case "ja_kun":
				g.AddKun(strings.TrimSpace(r.Value))
			}
		}
		for _, mn := range rg.Meanings {
			switch mn.Lang {
			case "", "en":
				g.AddEnglish(strings.TrimSpace(mn.Value))
			case "fr":
				g.AddFrench(strings.TrimSpace(mn.Value))
			}
		}
		if !g.Empty() {
			e.Groups = append(e.Groups, g)
		}
	}
	for _, n := range c.ReadingMeaning.Nanori {
		e.Nanori = append(e.Nanori, strings.TrimSpace(n))
	}

	if p.err != nil {
		return nil, p.err
	}
	return e, nil
}

// parser converts field text and keeps the first failure.
type parser struct {
	literal string
	err     error
}

func (p *parser) uint(s string, base, bits int) uint64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	v, err := strconv.ParseUint(s, base, bits)
	if err != nil && p.err == nil {
		p.err = fmt.Errorf("%w: %s: %q", ErrMalformed, p.literal, s)
	}
	return v
}

func (p *parser) u8(s string) uint8   { return uint8(p.uint(s, 10, 8)) }
func (p *parser) u16(s string) uint16 { return uint16(p.uint(s, 10, 16)) }
func (p *parser) hex(s string) rune   { return rune(p.uint(s, 16, 32)) }
