package query

import (
	"strconv"
	"unicode/utf8"

	"github.com/hupe1980/kanjigo/model"
	"github.com/hupe1980/kanjigo/store"
)

// Result is the outcome of a query.
type Result struct {
	// Records are the matches in insertion order of the last combine step.
	Records []*model.Kanji
	// Keyed reports whether the input was read as keyed groups rather than
	// as literal characters.
	Keyed bool
}

// Engine evaluates queries against one store. The store must not be mutated
// while queries run; concurrent queries are safe.
type Engine struct {
	store *store.Store
}

// New returns an engine for s.
func New(s *store.Store) *Engine {
	return &Engine{store: s}
}

// Query evaluates input. It never fails; unparsable groups only shrink the
// result.
func (e *Engine) Query(input string) Result {
	groups, keyed := Parse(input)
	if !keyed {
		return Result{Records: e.literals(input)}
	}
	return Result{Records: e.Evaluate(groups).Records(), Keyed: true}
}

func (e *Engine) literals(input string) []*model.Kanji {
	rs := NewResultSet()
	for _, r := range input {
		if k, ok := e.store.Lookup(r); ok {
			rs.Add(k)
		}
	}
	return rs.Records()
}

// Evaluate combines groups left to right. The first group is merged as a
// union; every later group combines according to the separator preceding it.
func (e *Engine) Evaluate(groups []Group) *ResultSet {
	result := NewResultSet()
	union := true
	for _, g := range groups {
		candidates, ok := e.candidates(g)
		switch {
		case !ok && !union:
			result.Clear()
		case !ok:
			// contributes nothing
		case union:
			result.Union(candidates)
		default:
			result.Retain(candidates)
		}
		union = g.Next != SepIntersection
	}
	return result
}

// candidates resolves a group. It reports false when the value cannot be
// parsed for the key.
func (e *Engine) candidates(g Group) (*ResultSet, bool) {
	rs := NewResultSet()
	if g.Value == "" {
		return rs, true
	}

	switch g.Key {
	case KeyUCS:
		cp, err := strconv.ParseUint(g.Value, 16, 32)
		if err != nil {
			return nil, false
		}
		if k, ok := e.store.Lookup(rune(cp)); ok {
			rs.Add(k)
		}
	case KeyJIS208, KeyJIS212, KeyJIS213:
		space := store.JIS208 + store.LegacySpace(g.Key-KeyJIS208)
		if k, ok := e.store.LookupLegacy(space, g.Value); ok {
			rs.Add(k)
		}
	case KeyGrade:
		return e.selectDecimal(rs, store.ByGrade, g.Value)
	case KeyJLPT:
		return e.selectDecimal(rs, store.ByJLPT, g.Value)
	case KeyStrokes:
		return e.strokes(rs, g)
	case KeyRadical:
		ordinal, ok := e.radicalOrdinal(g.Value)
		if !ok {
			return nil, false
		}
		e.add(rs, store.ByRadical, ordinal)
	case KeyComponent:
		cp, ok := single(g.Value)
		if !ok {
			return nil, false
		}
		e.add(rs, store.ByComponent, uint32(cp))
	default:
		return nil, false
	}
	return rs, true
}

func (e *Engine) add(rs *ResultSet, idx store.Index, key uint32) {
	for _, k := range e.store.Select(idx, key) {
		rs.Add(k)
	}
}

func (e *Engine) selectDecimal(rs *ResultSet, idx store.Index, value string) (*ResultSet, bool) {
	key, err := strconv.ParseUint(value, 10, 32)
	if err != nil {
		return nil, false
	}
	e.add(rs, idx, uint32(key))
	return rs, true
}

// strokes handles strokes=, strokes< and strokes>. Range lookups union the
// buckets inside the recorded stroke bounds in ascending stroke order.
func (e *Engine) strokes(rs *ResultSet, g Group) (*ResultSet, bool) {
	bound, err := strconv.ParseUint(g.Value, 10, 32)
	if err != nil {
		return nil, false
	}
	if g.Op == OpEqual {
		e.add(rs, store.ByStrokes, uint32(bound))
		return rs, true
	}

	lo, hi := e.store.StrokeBounds()
	from, to := uint64(lo), uint64(hi)
	if g.Op == OpLess {
		if bound == 0 {
			return rs, true
		}
		to = min(to, bound-1)
	} else {
		from = max(from, bound+1)
	}
	for _, key := range e.store.Keys(store.ByStrokes) {
		if n := uint64(key); n >= from && n <= to {
			e.add(rs, store.ByStrokes, key)
		}
	}
	return rs, true
}

// radicalOrdinal parses a decimal ordinal or resolves a single radical
// literal, including its variant forms.
func (e *Engine) radicalOrdinal(value string) (uint32, bool) {
	if n, err := strconv.ParseUint(value, 10, 32); err == nil {
		return uint32(n), true
	}
	cp, ok := single(value)
	if !ok {
		return 0, false
	}
	ordinal, ok := e.store.Radicals().Ordinal(cp)
	if !ok {
		return 0, false
	}
	return uint32(ordinal), true
}

func single(s string) (rune, bool) {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError || size != len(s) {
		return 0, false
	}
	return r, true
}
