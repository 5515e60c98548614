package store

import (
	"iter"

	"github.com/RoaringBitmap/roaring/v2"
)

// Postings is a set of codepoints backed by a roaring bitmap.
type Postings struct {
	rb *roaring.Bitmap
}

func newPostings() *Postings {
	return &Postings{rb: roaring.New()}
}

// Add adds a codepoint to the set.
func (p *Postings) Add(cp rune) {
	p.rb.Add(uint32(cp))
}

// Contains reports whether cp is in the set.
func (p *Postings) Contains(cp rune) bool {
	return p.rb.Contains(uint32(cp))
}

// Cardinality returns the number of codepoints in the set.
func (p *Postings) Cardinality() int {
	return int(p.rb.GetCardinality())
}

// Iterator iterates the codepoints in ascending order.
func (p *Postings) Iterator() iter.Seq[rune] {
	return func(yield func(rune) bool) {
		it := p.rb.Iterator()
		for it.HasNext() {
			if !yield(rune(it.Next())) {
				return
			}
		}
	}
}

// Or adds every member of other to p.
func (p *Postings) Or(other *Postings) {
	p.rb.Or(other.rb)
}

// Clone returns a deep copy of the set.
func (p *Postings) Clone() *Postings {
	return &Postings{rb: p.rb.Clone()}
}
