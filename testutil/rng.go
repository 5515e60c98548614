package testutil

import (
	"fmt"
	"math/rand"
	"sync"

	"github.com/hupe1980/kanjigo/store"
)

// RNG generates random catalog content. It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

var kana = []rune("あいうえおかきくけこさしすせそたちつてとなにぬねのアイウエオカキクケコサシスセソ")

func (r *RNG) wordLocked(n int) string {
	out := make([]rune, n)
	for i := range out {
		out[i] = kana[r.rand.Intn(len(kana))]
	}
	return string(out)
}

func (r *RNG) wordsLocked(maxN int) []string {
	n := r.rand.Intn(maxN + 1)
	out := make([]string, 0, n)
	for range n {
		out = append(out, r.wordLocked(1+r.rand.Intn(3)))
	}
	return out
}

// Entries returns n entries with distinct codepoints in the CJK unified
// ideographs block. Roughly every third entry declares a variant, some of
// which point outside the generated set.
func (r *RNG) Entries(n int) []*store.Entry {
	r.mu.Lock()
	defer r.mu.Unlock()

	const base, span = 0x4E00, 0x9FFF - 0x4E00
	if n > span {
		n = span
	}
	perm := r.rand.Perm(span)[:n]

	out := make([]*store.Entry, 0, n)
	for i, off := range perm {
		cp := rune(base + off)
		e := &store.Entry{
			Literal:          string(cp),
			Codepoint:        cp,
			ClassicalRadical: uint8(1 + r.rand.Intn(214)),
			StrokeCount:      uint8(1 + r.rand.Intn(30)),
			Grade:            uint8(r.rand.Intn(10)),
			JLPT:             uint8(r.rand.Intn(5)),
			Frequency:        uint16(r.rand.Intn(2500)),
			RadicalNames:     r.wordsLocked(1),
			Nanori:           r.wordsLocked(3),
		}
		switch r.rand.Intn(3) {
		case 0:
			e.JIS208 = fmt.Sprintf("1-%d-%d", 16+i/94, 1+i%94)
		case 1:
			e.JIS212 = fmt.Sprintf("1-%d-%d", 16+i/94, 1+i%94)
		default:
			e.JIS213 = fmt.Sprintf("2-%d-%d", 1+i/94, 1+i%94)
		}
		if i%3 == 0 {
			e.CodepointVariants = []rune{rune(base + perm[r.rand.Intn(n)]), rune(base + r.rand.Intn(span))}
		}
		for range r.rand.Intn(3) {
			e.Components = append(e.Components, rune(base+perm[r.rand.Intn(n)]))
		}
		for range r.rand.Intn(3) {
			e.Groups = append(e.Groups, group(r.wordsLocked(2), r.wordsLocked(2), r.wordsLocked(2), r.wordsLocked(1)))
		}
		out = append(out, e)
	}
	return out
}
