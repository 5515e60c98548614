package store

import (
	"fmt"
	"iter"
	"maps"
	"slices"

	"github.com/hupe1980/kanjigo/model"
)

// AddComponent adds a component pseudo-record keyed by its codepoint.
func (s *Store) AddComponent(k *model.Kanji) error {
	if k == nil || k.Codepoint <= 0 {
		return ErrInvalidCodepoint
	}
	if _, ok := s.components[k.Codepoint]; ok {
		return fmt.Errorf("%w: component U+%04X", ErrDuplicate, k.Codepoint)
	}
	s.components[k.Codepoint] = k
	return nil
}

// SetComponentOrdinal binds an ordinal to a known component.
func (s *Store) SetComponentOrdinal(ordinal uint32, cp rune) error {
	if _, ok := s.components[cp]; !ok {
		return fmt.Errorf("%w: component U+%04X", ErrOrphan, cp)
	}
	if prev, ok := s.componentOrdinals[ordinal]; ok && prev != cp {
		return fmt.Errorf("%w: component ordinal %d", ErrDuplicate, ordinal)
	}
	s.componentOrdinals[ordinal] = cp
	s.ordinalOf[cp] = ordinal
	return nil
}

// SetFaulty records a diagnostic for a known component.
func (s *Store) SetFaulty(cp rune, diagnostic string) error {
	if _, ok := s.components[cp]; !ok {
		return fmt.Errorf("%w: component U+%04X", ErrOrphan, cp)
	}
	s.faulty[cp] = diagnostic
	return nil
}

// Component returns the component pseudo-record for cp.
func (s *Store) Component(cp rune) (*model.Kanji, bool) {
	k, ok := s.components[cp]
	return k, ok
}

// ComponentByOrdinal returns the component bound to ordinal.
func (s *Store) ComponentByOrdinal(ordinal uint32) (*model.Kanji, bool) {
	cp, ok := s.componentOrdinals[ordinal]
	if !ok {
		return nil, false
	}
	return s.Component(cp)
}

// ComponentOrdinal returns the ordinal bound to the component cp.
func (s *Store) ComponentOrdinal(cp rune) (uint32, bool) {
	o, ok := s.ordinalOf[cp]
	return o, ok
}

// Faulty returns the diagnostic recorded for the component cp.
func (s *Store) Faulty(cp rune) (string, bool) {
	d, ok := s.faulty[cp]
	return d, ok
}

// ComponentLen returns the number of components.
func (s *Store) ComponentLen() int {
	return len(s.components)
}

// Components iterates the component pseudo-records in ascending codepoint order.
func (s *Store) Components() iter.Seq[*model.Kanji] {
	return func(yield func(*model.Kanji) bool) {
		for _, cp := range slices.Sorted(maps.Keys(s.components)) {
			if !yield(s.components[cp]) {
				return
			}
		}
	}
}

// ComponentOrdinals iterates the ordinal table in ascending ordinal order.
func (s *Store) ComponentOrdinals() iter.Seq2[uint32, rune] {
	return func(yield func(uint32, rune) bool) {
		for _, o := range slices.Sorted(maps.Keys(s.componentOrdinals)) {
			if !yield(o, s.componentOrdinals[o]) {
				return
			}
		}
	}
}

// FaultyComponents iterates the diagnostics table in ascending codepoint order.
func (s *Store) FaultyComponents() iter.Seq2[rune, string] {
	return func(yield func(rune, string) bool) {
		for _, cp := range slices.Sorted(maps.Keys(s.faulty)) {
			if !yield(cp, s.faulty[cp]) {
				return
			}
		}
	}
}
