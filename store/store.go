package store

import (
	"fmt"
	"iter"
	"maps"
	"slices"

	"github.com/hupe1980/kanjigo/model"
	"github.com/hupe1980/kanjigo/radical"
)

// Store owns every record of a catalog and indexes it by several keys.
type Store struct {
	records map[rune]*model.Kanji

	legacy  [numLegacySpaces]map[string]rune
	numeric [numIndices]map[uint32]*Postings

	hasStrokes bool
	minStrokes uint32
	maxStrokes uint32

	components        map[rune]*model.Kanji
	componentOrdinals map[uint32]rune
	ordinalOf         map[rune]uint32
	faulty            map[rune]string

	radicals *radical.Catalog
}

type options struct {
	radicals      *radical.Catalog
	components    []radical.Component
	componentsSet bool
}

// Option configures a Store.
type Option func(*options)

// WithRadicals sets the radical catalog used to resolve radical literals.
// A nil catalog selects radical.Default.
func WithRadicals(c *radical.Catalog) Option {
	return func(o *options) {
		o.radicals = c
	}
}

// WithComponents replaces the component dataset installed at construction.
// A nil or empty dataset installs no components.
func WithComponents(cs []radical.Component) Option {
	return func(o *options) {
		o.components = cs
		o.componentsSet = true
	}
}

// New creates an empty store. The component catalog is populated from the
// embedded component dataset unless WithComponents says otherwise.
func New(optFns ...Option) *Store {
	o := options{}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	if o.radicals == nil {
		o.radicals = radical.Default()
	}
	if !o.componentsSet {
		o.components = radical.DefaultComponents()
	}

	s := &Store{radicals: o.radicals}
	s.reset()

	for _, c := range o.components {
		k := model.New(c.Literal, c.Codepoint)
		k.StrokeCount = c.Strokes
		// The dataset is validated on load; duplicates cannot occur here.
		_ = s.AddComponent(k)
		_ = s.SetComponentOrdinal(c.Ordinal, c.Codepoint)
		if c.Faulty != "" {
			_ = s.SetFaulty(c.Codepoint, c.Faulty)
		}
	}
	return s
}

func (s *Store) reset() {
	s.records = make(map[rune]*model.Kanji)
	for i := range s.legacy {
		s.legacy[i] = make(map[string]rune)
	}
	for i := range s.numeric {
		s.numeric[i] = make(map[uint32]*Postings)
	}
	s.hasStrokes = false
	s.minStrokes = 0
	s.maxStrokes = 0
	s.components = make(map[rune]*model.Kanji)
	s.componentOrdinals = make(map[uint32]rune)
	s.ordinalOf = make(map[rune]uint32)
	s.faulty = make(map[rune]string)
}

// Clear releases every record and empties every index, including the
// component catalog. It is safe to call on an empty store and idempotent.
func (s *Store) Clear() {
	s.reset()
}

// Radicals returns the radical catalog of the store.
func (s *Store) Radicals() *radical.Catalog {
	return s.radicals
}

// Len returns the number of records in the primary index.
func (s *Store) Len() int {
	return len(s.records)
}

// Insert adds a record to the primary index.
func (s *Store) Insert(k *model.Kanji) error {
	if k == nil || k.Codepoint <= 0 {
		return ErrInvalidCodepoint
	}
	if _, ok := s.records[k.Codepoint]; ok {
		return fmt.Errorf("%w: U+%04X", ErrDuplicate, k.Codepoint)
	}
	s.records[k.Codepoint] = k
	return nil
}

// IndexLegacy maps a legacy code to the record owning cp. Empty codes are
// ignored. A code already mapped is rebound to cp.
func (s *Store) IndexLegacy(space LegacySpace, code string, cp rune) error {
	if !space.valid() {
		return fmt.Errorf("%w: %s", ErrUnknownIndex, space)
	}
	if code == "" {
		return nil
	}
	if _, ok := s.records[cp]; !ok {
		return fmt.Errorf("%w: U+%04X", ErrOrphan, cp)
	}
	s.legacy[space][code] = cp
	return nil
}

// Index adds the record owning cp to the set stored under key, creating the
// set on first use.
func (s *Store) Index(idx Index, key uint32, cp rune) error {
	if !idx.valid() {
		return fmt.Errorf("%w: %s", ErrUnknownIndex, idx)
	}
	if _, ok := s.records[cp]; !ok {
		return fmt.Errorf("%w: U+%04X", ErrOrphan, cp)
	}
	set, ok := s.numeric[idx][key]
	if !ok {
		set = newPostings()
		s.numeric[idx][key] = set
	}
	set.Add(cp)
	if idx == ByStrokes {
		s.widenStrokeBounds(key, key)
	}
	return nil
}

func (s *Store) widenStrokeBounds(lo, hi uint32) {
	if !s.hasStrokes {
		s.minStrokes, s.maxStrokes = lo, hi
		s.hasStrokes = true
		return
	}
	s.minStrokes = min(s.minStrokes, lo)
	s.maxStrokes = max(s.maxStrokes, hi)
}

// StrokeBounds returns the smallest and largest key of the stroke index.
// Both are 0 when the stroke index is empty.
func (s *Store) StrokeBounds() (lo, hi uint32) {
	return s.minStrokes, s.maxStrokes
}

// SetStrokeBounds restores recorded stroke bounds. Bounds are only widened,
// so they keep covering every key already present.
func (s *Store) SetStrokeBounds(lo, hi uint32) {
	if lo > hi {
		return
	}
	if !s.hasStrokes && lo == 0 && hi == 0 {
		return
	}
	s.widenStrokeBounds(lo, hi)
}

// Lookup returns the record with the given codepoint.
func (s *Store) Lookup(cp rune) (*model.Kanji, bool) {
	k, ok := s.records[cp]
	return k, ok
}

// LookupLegacy returns the record with the given legacy code.
func (s *Store) LookupLegacy(space LegacySpace, code string) (*model.Kanji, bool) {
	if !space.valid() || code == "" {
		return nil, false
	}
	cp, ok := s.legacy[space][code]
	if !ok {
		return nil, false
	}
	return s.Lookup(cp)
}

// Select returns the records stored under key in ascending codepoint order.
// It returns nil when the key is absent.
func (s *Store) Select(idx Index, key uint32) []*model.Kanji {
	if !idx.valid() {
		return nil
	}
	set, ok := s.numeric[idx][key]
	if !ok {
		return nil
	}
	out := make([]*model.Kanji, 0, set.Cardinality())
	for cp := range set.Iterator() {
		if k, ok := s.records[cp]; ok {
			out = append(out, k)
		}
	}
	return out
}

// Postings returns the codepoint set stored under key.
// The returned set must be treated as read-only.
func (s *Store) Postings(idx Index, key uint32) (*Postings, bool) {
	if !idx.valid() {
		return nil, false
	}
	set, ok := s.numeric[idx][key]
	return set, ok
}

// Keys returns the keys of a numeric index in ascending order.
func (s *Store) Keys(idx Index) []uint32 {
	if !idx.valid() {
		return nil
	}
	return slices.Sorted(maps.Keys(s.numeric[idx]))
}

// Members iterates the codepoints stored under key in ascending order.
func (s *Store) Members(idx Index, key uint32) iter.Seq[rune] {
	set, ok := s.Postings(idx, key)
	if !ok {
		return func(func(rune) bool) {}
	}
	return set.Iterator()
}

// LegacyEntries iterates a legacy index ordered by code.
func (s *Store) LegacyEntries(space LegacySpace) iter.Seq2[string, rune] {
	return func(yield func(string, rune) bool) {
		if !space.valid() {
			return
		}
		m := s.legacy[space]
		for _, code := range slices.Sorted(maps.Keys(m)) {
			if !yield(code, m[code]) {
				return
			}
		}
	}
}

// LegacyLen returns the number of codes in a legacy index.
func (s *Store) LegacyLen(space LegacySpace) int {
	if !space.valid() {
		return 0
	}
	return len(s.legacy[space])
}

// All iterates the records in ascending codepoint order.
func (s *Store) All() iter.Seq[*model.Kanji] {
	return func(yield func(*model.Kanji) bool) {
		for _, cp := range slices.Sorted(maps.Keys(s.records)) {
			if !yield(s.records[cp]) {
				return
			}
		}
	}
}

// Variants resolves the declared variants of k through the primary and
// legacy indices. The result is ordered by codepoint and excludes k itself.
// Variants that do not resolve to a record are skipped.
func (s *Store) Variants(k *model.Kanji) []*model.Kanji {
	if k == nil {
		return nil
	}
	found := newPostings()
	add := func(v *model.Kanji, ok bool) {
		if ok && v.Codepoint != k.Codepoint {
			found.Add(v.Codepoint)
		}
	}
	for _, cp := range k.CodepointVariants {
		add(s.Lookup(cp))
	}
	for _, code := range k.JIS208Variants {
		add(s.LookupLegacy(JIS208, code))
	}
	for _, code := range k.JIS212Variants {
		add(s.LookupLegacy(JIS212, code))
	}
	for _, code := range k.JIS213Variants {
		add(s.LookupLegacy(JIS213, code))
	}

	var out []*model.Kanji
	for cp := range found.Iterator() {
		out = append(out, s.records[cp])
	}
	return out
}
