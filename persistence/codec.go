package persistence

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/hupe1980/kanjigo/model"
	"github.com/hupe1980/kanjigo/store"
)

// ErrNilStore is returned when encoding a nil store.
var ErrNilStore = errors.New("persistence: nil store")

// Encode writes s to w.
func Encode(w io.Writer, s *store.Store) error {
	if s == nil {
		return ErrNilStore
	}

	cw := NewChecksumWriter(w)
	bw := &binaryWriter{w: cw}

	bw.u32(MagicNumber)
	bw.u32(Version)

	// Tags follow ascending codepoint order.
	tags := make(map[rune]uint32, s.Len())
	bw.u32(uint32(s.Len()))
	for k := range s.All() {
		tag := uint32(len(tags))
		tags[k.Codepoint] = tag
		bw.u32(uint32(k.Codepoint))
		writeRecord(bw, k)
		bw.u32(tag)
	}

	for _, space := range store.LegacySpaces {
		bw.u32(uint32(s.LegacyLen(space)))
		for code, cp := range s.LegacyEntries(space) {
			bw.str(code)
			bw.u32(tags[cp])
		}
	}

	for _, idx := range store.Indices {
		keys := s.Keys(idx)
		bw.u32(uint32(len(keys)))
		for _, key := range keys {
			set, _ := s.Postings(idx, key)
			bw.u32(key)
			bw.u32(uint32(set.Cardinality()))
			for cp := range set.Iterator() {
				bw.u32(tags[cp])
			}
		}
	}

	bw.u32(uint32(s.ComponentLen()))
	for k := range s.Components() {
		bw.u32(uint32(k.Codepoint))
		writeRecord(bw, k)
	}

	var ordinals, faulty uint32
	for range s.ComponentOrdinals() {
		ordinals++
	}
	bw.u32(ordinals)
	for ord, cp := range s.ComponentOrdinals() {
		bw.u32(ord)
		bw.u32(uint32(cp))
	}

	for range s.FaultyComponents() {
		faulty++
	}
	bw.u32(faulty)
	for cp, diag := range s.FaultyComponents() {
		bw.u32(uint32(cp))
		bw.str(diag)
	}

	lo, hi := s.StrokeBounds()
	bw.u32(lo)
	bw.u32(hi)

	if bw.err != nil {
		return bw.err
	}

	// The trailer is not part of the checksummed range.
	trailer := &binaryWriter{w: w}
	trailer.u32(cw.Sum())
	return trailer.err
}

func writeRecord(bw *binaryWriter, k *model.Kanji) {
	bw.str(k.Literal)
	bw.u32(uint32(k.Codepoint))
	bw.str(k.JIS208)
	bw.str(k.JIS212)
	bw.str(k.JIS213)
	bw.u8(k.ClassicalRadical)
	bw.u8(k.NelsonRadical)
	bw.u8(k.Grade)
	bw.u8(k.StrokeCount)
	bw.runes(k.CodepointVariants)
	bw.strings(k.JIS208Variants)
	bw.strings(k.JIS212Variants)
	bw.strings(k.JIS213Variants)
	bw.u16(k.Frequency)
	bw.strings(k.RadicalNames)
	bw.u8(k.JLPT)
	bw.u32(uint32(len(k.Groups)))
	for _, g := range k.Groups {
		bw.strings(g.On)
		bw.strings(g.Kun)
		bw.strings(g.English)
		bw.strings(g.French)
	}
	bw.strings(k.Nanori)
	bw.runes(k.Components)
}

func readRecord(br *binaryReader) *model.Kanji {
	k := &model.Kanji{}
	k.Literal = br.str()
	k.Codepoint = rune(br.u32())
	k.JIS208 = br.str()
	k.JIS212 = br.str()
	k.JIS213 = br.str()
	k.ClassicalRadical = br.u8()
	k.NelsonRadical = br.u8()
	k.Grade = br.u8()
	k.StrokeCount = br.u8()
	k.CodepointVariants = br.runes()
	k.JIS208Variants = br.strings()
	k.JIS212Variants = br.strings()
	k.JIS213Variants = br.strings()
	k.Frequency = br.u16()
	k.RadicalNames = br.strings()
	k.JLPT = br.u8()
	n := br.count()
	for i := 0; i < n && br.err == nil; i++ {
		k.Groups = append(k.Groups, &model.ReadingMeaningGroup{
			On:      br.strings(),
			Kun:     br.strings(),
			English: br.strings(),
			French:  br.strings(),
		})
	}
	k.Nanori = br.strings()
	k.Components = br.runes()
	return k
}

// ReadHeader reads and validates the stream header.
func ReadHeader(r io.Reader) (*Header, error) {
	br := &binaryReader{r: r}
	h := &Header{Magic: br.u32()}
	if br.err != nil {
		return nil, br.err
	}
	if h.Magic != MagicNumber {
		return nil, fmt.Errorf("%w: got 0x%08x", ErrInvalidMagic, h.Magic)
	}
	h.Version = br.u32()
	if br.err != nil {
		return nil, br.err
	}
	if h.Version < Version {
		return nil, fmt.Errorf("%w: version %d, want at least %d", ErrOutdatedVersion, h.Version, Version)
	}
	return h, nil
}

// Decode reads a stream written by Encode into a new store. The options are
// passed to store.New; the component catalog always comes from the stream.
// On error no store is returned.
func Decode(r io.Reader, opts ...store.Option) (*store.Store, error) {
	src, ok := r.(*bufio.Reader)
	if !ok {
		src = bufio.NewReader(r)
	}
	cr := NewChecksumReader(src)

	if _, err := ReadHeader(cr); err != nil {
		return nil, err
	}

	s := store.New(slices.Concat(opts, []store.Option{store.WithComponents(nil)})...)
	d := &decoder{br: &binaryReader{r: cr}, s: s}
	if err := d.decode(); err != nil {
		return nil, err
	}

	trailer := &binaryReader{r: src}
	sum := trailer.u32()
	if trailer.err != nil {
		return nil, trailer.err
	}
	if err := cr.Verify(sum); err != nil {
		return nil, err
	}
	return s, nil
}

type decoder struct {
	br   *binaryReader
	s    *store.Store
	tags map[uint32]rune
}

func (d *decoder) decode() error {
	steps := []func() error{
		d.primary,
		d.legacy,
		d.numeric,
		d.components,
		d.ordinals,
		d.faulty,
		d.bounds,
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return err
		}
		if d.br.err != nil {
			return d.br.err
		}
	}
	return nil
}

func (d *decoder) resolve(tag uint32) (rune, error) {
	cp, ok := d.tags[tag]
	if !ok {
		return 0, fmt.Errorf("%w: %d", ErrUnknownTag, tag)
	}
	return cp, nil
}

func (d *decoder) primary() error {
	br := d.br
	n := br.count()
	d.tags = make(map[uint32]rune, n)
	for i := 0; i < n && br.err == nil; i++ {
		key := rune(br.u32())
		k := readRecord(br)
		tag := br.u32()
		if br.err != nil {
			break
		}
		if k.Codepoint != key {
			return fmt.Errorf("%w: key U+%04X holds record U+%04X", ErrCorrupt, key, k.Codepoint)
		}
		if _, dup := d.tags[tag]; dup {
			return fmt.Errorf("%w: tag %d defined twice", ErrCorrupt, tag)
		}
		if err := d.s.Insert(k); err != nil {
			return fmt.Errorf("%w: %w", ErrCorrupt, err)
		}
		d.tags[tag] = k.Codepoint
	}
	return nil
}

func (d *decoder) legacy() error {
	br := d.br
	for _, space := range store.LegacySpaces {
		n := br.count()
		for i := 0; i < n && br.err == nil; i++ {
			code := br.str()
			tag := br.u32()
			if br.err != nil {
				break
			}
			cp, err := d.resolve(tag)
			if err != nil {
				return err
			}
			if err := d.s.IndexLegacy(space, code, cp); err != nil {
				return fmt.Errorf("%w: %w", ErrCorrupt, err)
			}
		}
	}
	return nil
}

func (d *decoder) numeric() error {
	br := d.br
	for _, idx := range store.Indices {
		n := br.count()
		for i := 0; i < n && br.err == nil; i++ {
			key := br.u32()
			size := br.count()
			for j := 0; j < size && br.err == nil; j++ {
				tag := br.u32()
				if br.err != nil {
					break
				}
				cp, err := d.resolve(tag)
				if err != nil {
					return err
				}
				if err := d.s.Index(idx, key, cp); err != nil {
					return fmt.Errorf("%w: %w", ErrCorrupt, err)
				}
			}
		}
	}
	return nil
}

func (d *decoder) components() error {
	br := d.br
	n := br.count()
	for i := 0; i < n && br.err == nil; i++ {
		key := rune(br.u32())
		k := readRecord(br)
		if br.err != nil {
			break
		}
		if k.Codepoint != key {
			return fmt.Errorf("%w: component key U+%04X holds U+%04X", ErrCorrupt, key, k.Codepoint)
		}
		if err := d.s.AddComponent(k); err != nil {
			return fmt.Errorf("%w: %w", ErrCorrupt, err)
		}
	}
	return nil
}

func (d *decoder) ordinals() error {
	br := d.br
	n := br.count()
	for i := 0; i < n && br.err == nil; i++ {
		ord := br.u32()
		cp := rune(br.u32())
		if br.err != nil {
			break
		}
		if err := d.s.SetComponentOrdinal(ord, cp); err != nil {
			return fmt.Errorf("%w: %w", ErrCorrupt, err)
		}
	}
	return nil
}

func (d *decoder) faulty() error {
	br := d.br
	n := br.count()
	for i := 0; i < n && br.err == nil; i++ {
		cp := rune(br.u32())
		diag := br.str()
		if br.err != nil {
			break
		}
		if err := d.s.SetFaulty(cp, diag); err != nil {
			return fmt.Errorf("%w: %w", ErrCorrupt, err)
		}
	}
	return nil
}

func (d *decoder) bounds() error {
	lo := d.br.u32()
	hi := d.br.u32()
	if d.br.err == nil {
		d.s.SetStrokeBounds(lo, hi)
	}
	return nil
}

// SaveStore writes s to path atomically.
func SaveStore(path string, s *store.Store) error {
	return SaveToFile(path, func(w io.Writer) error {
		return Encode(w, s)
	})
}

// LoadStore reads a store from path.
func LoadStore(path string, opts ...store.Option) (*store.Store, error) {
	var s *store.Store
	err := LoadFromFile(path, func(r io.Reader) error {
		var err error
		s, err = Decode(r, opts...)
		return err
	})
	return s, err
}
