package model

import "slices"

// ReadingMeaningGroup bundles readings with the meanings they carry.
// All four sets are unordered and optional.
type ReadingMeaningGroup struct {
	On      []string
	Kun     []string
	English []string
	French  []string
}

// AddOn records an on (Sino-Japanese) reading.
func (g *ReadingMeaningGroup) AddOn(r string) { g.On = addString(g.On, r) }

// AddKun records a kun (native Japanese) reading.
func (g *ReadingMeaningGroup) AddKun(r string) { g.Kun = addString(g.Kun, r) }

// AddEnglish records an English meaning.
func (g *ReadingMeaningGroup) AddEnglish(m string) { g.English = addString(g.English, m) }

// AddFrench records a French meaning.
func (g *ReadingMeaningGroup) AddFrench(m string) { g.French = addString(g.French, m) }

// Empty reports whether the group carries no readings and no meanings.
func (g *ReadingMeaningGroup) Empty() bool {
	return len(g.On) == 0 && len(g.Kun) == 0 && len(g.English) == 0 && len(g.French) == 0
}

// Clone returns a deep copy of the group.
func (g *ReadingMeaningGroup) Clone() *ReadingMeaningGroup {
	if g == nil {
		return nil
	}
	return &ReadingMeaningGroup{
		On:      slices.Clone(g.On),
		Kun:     slices.Clone(g.Kun),
		English: slices.Clone(g.English),
		French:  slices.Clone(g.French),
	}
}
