package query

import "github.com/hupe1980/kanjigo/model"

// ResultSet is a set of records that remembers insertion order.
type ResultSet struct {
	records []*model.Kanji
	index   map[rune]struct{}
}

// NewResultSet returns an empty set.
func NewResultSet() *ResultSet {
	return &ResultSet{index: make(map[rune]struct{})}
}

// Len returns the number of records.
func (rs *ResultSet) Len() int {
	return len(rs.records)
}

// Contains reports whether a record with codepoint cp is in the set.
func (rs *ResultSet) Contains(cp rune) bool {
	_, ok := rs.index[cp]
	return ok
}

// Add appends k unless a record with the same codepoint is present.
func (rs *ResultSet) Add(k *model.Kanji) {
	if k == nil || rs.Contains(k.Codepoint) {
		return
	}
	rs.index[k.Codepoint] = struct{}{}
	rs.records = append(rs.records, k)
}

// Union appends every member of other in other's order.
func (rs *ResultSet) Union(other *ResultSet) {
	for _, k := range other.records {
		rs.Add(k)
	}
}

// Retain drops every member not present in other, keeping the order of rs.
func (rs *ResultSet) Retain(other *ResultSet) {
	kept := rs.records[:0]
	for _, k := range rs.records {
		if other.Contains(k.Codepoint) {
			kept = append(kept, k)
		} else {
			delete(rs.index, k.Codepoint)
		}
	}
	clear(rs.records[len(kept):])
	rs.records = kept
}

// Clear empties the set.
func (rs *ResultSet) Clear() {
	clear(rs.records)
	rs.records = rs.records[:0]
	clear(rs.index)
}

// Records returns the members in insertion order.
func (rs *ResultSet) Records() []*model.Kanji {
	out := make([]*model.Kanji, len(rs.records))
	copy(out, rs.records)
	return out
}
