package radical

import (
	_ "embed"
	"errors"
	"fmt"
	"iter"
	"maps"
	"slices"
	"sync"
	"unicode/utf8"

	"github.com/hupe1980/kanjigo/model"
	"gopkg.in/yaml.v3"
)

// kangxiBlock is the codepoint of the first Kangxi Radicals block entry.
// The block lists the 214 radicals in ordinal order.
const kangxiBlock = 0x2F00

//go:embed data/radicals.yaml
var radicalsYAML []byte

var (
	// ErrInvalidDataset is returned when a dataset cannot be loaded.
	ErrInvalidDataset = errors.New("radical: invalid dataset")
)

type strokeGroup struct {
	Strokes  uint8  `yaml:"strokes"`
	Literals string `yaml:"literals"`
}

type radicalFile struct {
	Radicals []strokeGroup    `yaml:"radicals"`
	Variants map[int][]string `yaml:"variants"`
}

// Catalog is the canonical radical table.
type Catalog struct {
	radicals    []*model.Kanji
	byCodepoint map[rune]uint8
}

var defaultCatalog = sync.OnceValue(func() *Catalog {
	c, err := Load(radicalsYAML)
	if err != nil {
		panic(err)
	}
	return c
})

// Default returns the process-wide catalog built from the embedded dataset.
func Default() *Catalog {
	return defaultCatalog()
}

// Load parses a radical dataset.
func Load(data []byte) (*Catalog, error) {
	var f radicalFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDataset, err)
	}

	c := &Catalog{byCodepoint: make(map[rune]uint8)}
	for _, g := range f.Radicals {
		if g.Strokes == 0 {
			return nil, fmt.Errorf("%w: stroke group without stroke count", ErrInvalidDataset)
		}
		for _, r := range g.Literals {
			if len(c.radicals) == 255 {
				return nil, fmt.Errorf("%w: too many radicals", ErrInvalidDataset)
			}
			ordinal := uint8(len(c.radicals) + 1)
			k := model.New(string(r), r)
			k.ClassicalRadical = ordinal
			k.StrokeCount = g.Strokes
			if err := c.bind(r, ordinal); err != nil {
				return nil, err
			}
			c.radicals = append(c.radicals, k)
		}
	}

	for _, ordinal := range slices.Sorted(maps.Keys(f.Variants)) {
		forms := f.Variants[ordinal]
		k, ok := c.ByOrdinal(ordinal)
		if !ok {
			return nil, fmt.Errorf("%w: variant for unknown ordinal %d", ErrInvalidDataset, ordinal)
		}
		for _, form := range forms {
			r, size := utf8.DecodeRuneInString(form)
			if r == utf8.RuneError || size != len(form) {
				return nil, fmt.Errorf("%w: variant %q of ordinal %d is not a single character", ErrInvalidDataset, form, ordinal)
			}
			if err := c.bind(r, k.ClassicalRadical); err != nil {
				return nil, err
			}
			k.AddCodepointVariant(r)
		}
	}

	// The Kangxi Radicals block only covers the classical 214.
	for _, k := range c.radicals {
		if k.ClassicalRadical > 214 {
			break
		}
		block := rune(kangxiBlock + int(k.ClassicalRadical) - 1)
		if err := c.bind(block, k.ClassicalRadical); err != nil {
			return nil, err
		}
		k.AddCodepointVariant(block)
	}

	return c, nil
}

func (c *Catalog) bind(r rune, ordinal uint8) error {
	if prev, ok := c.byCodepoint[r]; ok && prev != ordinal {
		return fmt.Errorf("%w: %q bound to ordinals %d and %d", ErrInvalidDataset, r, prev, ordinal)
	}
	c.byCodepoint[r] = ordinal
	return nil
}

// Len returns the number of radicals.
func (c *Catalog) Len() int {
	return len(c.radicals)
}

// ByOrdinal returns the radical with the given 1-based ordinal.
func (c *Catalog) ByOrdinal(ordinal int) (*model.Kanji, bool) {
	if ordinal < 1 || ordinal > len(c.radicals) {
		return nil, false
	}
	return c.radicals[ordinal-1], true
}

// Ordinal resolves a canonical or variant codepoint to its radical ordinal.
func (c *Catalog) Ordinal(cp rune) (uint8, bool) {
	o, ok := c.byCodepoint[cp]
	return o, ok
}

// Lookup resolves a canonical or variant codepoint to the canonical radical.
func (c *Catalog) Lookup(cp rune) (*model.Kanji, bool) {
	o, ok := c.byCodepoint[cp]
	if !ok {
		return nil, false
	}
	return c.ByOrdinal(int(o))
}

// All iterates the radicals in ordinal order.
func (c *Catalog) All() iter.Seq[*model.Kanji] {
	return func(yield func(*model.Kanji) bool) {
		for _, k := range c.radicals {
			if !yield(k) {
				return
			}
		}
	}
}
