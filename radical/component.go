package radical

import (
	_ "embed"
	"fmt"
	"sync"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

//go:embed data/components.yaml
var componentsYAML []byte

// Component is one entry of the component dataset.
type Component struct {
	// Ordinal is the 1-based position in the dataset.
	Ordinal   uint32
	Literal   string
	Codepoint rune
	Strokes   uint8
	// Faulty is non-empty when the dataset could not represent the component
	// cleanly and substitutes another character for it.
	Faulty string
}

type componentFile struct {
	Components []strokeGroup     `yaml:"components"`
	Faulty     map[string]string `yaml:"faulty"`
}

var defaultComponents = sync.OnceValue(func() []Component {
	cs, err := LoadComponents(componentsYAML)
	if err != nil {
		panic(err)
	}
	return cs
})

// DefaultComponents returns the embedded component dataset.
// The returned slice is shared and must not be modified.
func DefaultComponents() []Component {
	return defaultComponents()
}

// LoadComponents parses a component dataset.
func LoadComponents(data []byte) ([]Component, error) {
	var f componentFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDataset, err)
	}

	seen := make(map[rune]struct{})
	var out []Component
	for _, g := range f.Components {
		if g.Strokes == 0 {
			return nil, fmt.Errorf("%w: stroke group without stroke count", ErrInvalidDataset)
		}
		for _, r := range g.Literals {
			if _, dup := seen[r]; dup {
				return nil, fmt.Errorf("%w: duplicate component %q", ErrInvalidDataset, r)
			}
			seen[r] = struct{}{}
			out = append(out, Component{
				Ordinal:   uint32(len(out) + 1),
				Literal:   string(r),
				Codepoint: r,
				Strokes:   g.Strokes,
			})
		}
	}

	for lit, note := range f.Faulty {
		r, size := utf8.DecodeRuneInString(lit)
		if size != len(lit) {
			return nil, fmt.Errorf("%w: faulty key %q is not a single character", ErrInvalidDataset, lit)
		}
		if _, ok := seen[r]; !ok {
			return nil, fmt.Errorf("%w: faulty entry %q is not a component", ErrInvalidDataset, lit)
		}
		for i := range out {
			if out[i].Codepoint == r {
				out[i].Faulty = note
				break
			}
		}
	}
	return out, nil
}
