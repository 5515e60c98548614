package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hupe1980/kanjigo/model"
	"github.com/hupe1980/kanjigo/store"
)

func group(on, kun, en, fr []string) *model.ReadingMeaningGroup {
	g := &model.ReadingMeaningGroup{}
	for _, r := range on {
		g.AddOn(r)
	}
	for _, r := range kun {
		g.AddKun(r)
	}
	for _, m := range en {
		g.AddEnglish(m)
	}
	for _, m := range fr {
		g.AddFrench(m)
	}
	return g
}

// Entries returns the fixed fixture entries. Every call returns fresh values.
func Entries() []*store.Entry {
	return []*store.Entry{
		{
			Literal: "一", Codepoint: 0x4E00, JIS208: "1-16-76",
			ClassicalRadical: 1, NelsonRadical: 1, Grade: 1, StrokeCount: 1, Frequency: 2, JLPT: 4,
			Groups: []*model.ReadingMeaningGroup{group(
				[]string{"イチ", "イツ"}, []string{"ひと-", "ひと.つ"}, []string{"one", "one radical (no.1)"}, []string{"un"},
			)},
			Nanori:     []string{"かず", "はじめ"},
			Components: []rune{0x4E00},
		},
		{
			Literal: "丂", Codepoint: 0x4E02, JIS212: "1-16-02",
			ClassicalRadical: 1, StrokeCount: 2,
			Components: []rune{0x4E00},
		},
		{
			Literal: "三", Codepoint: 0x4E09, JIS208: "1-27-16",
			ClassicalRadical: 1, Grade: 1, StrokeCount: 3, Frequency: 14, JLPT: 4,
			Groups:     []*model.ReadingMeaningGroup{group([]string{"サン"}, []string{"み", "みっ.つ"}, []string{"three"}, []string{"trois"})},
			Components: []rune{0x4E00, 0x4E8C},
		},
		{
			Literal: "二", Codepoint: 0x4E8C, JIS208: "1-38-83",
			ClassicalRadical: 7, Grade: 1, StrokeCount: 2, Frequency: 9, JLPT: 4,
			Groups:     []*model.ReadingMeaningGroup{group([]string{"ニ", "ジ"}, []string{"ふた", "ふた.つ"}, []string{"two"}, []string{"deux"})},
			Components: []rune{0x4E8C},
		},
		{
			Literal: "亜", Codepoint: 0x4E9C, JIS208: "1-16-01",
			ClassicalRadical: 7, NelsonRadical: 1, Grade: 8, StrokeCount: 7, Frequency: 1509, JLPT: 1,
			CodepointVariants: []rune{0x4E9E},
			JIS208Variants:    []string{"1-48-19"},
			Groups:            []*model.ReadingMeaningGroup{group([]string{"ア"}, []string{"つ.ぐ"}, []string{"Asia", "rank next"}, []string{"Asie"})},
			Nanori:            []string{"や", "つぎ"},
			Components:        []rune{0x4E00, 0x53E3},
		},
		{
			Literal: "人", Codepoint: 0x4EBA, JIS208: "1-31-45",
			ClassicalRadical: 9, Grade: 1, StrokeCount: 2, Frequency: 5, JLPT: 4,
			RadicalNames: []string{"ひと"},
			Groups:       []*model.ReadingMeaningGroup{group([]string{"ジン", "ニン"}, []string{"ひと"}, []string{"person"}, []string{"personne"})},
			Components:   []rune{0x4EBA},
		},
		{
			Literal: "休", Codepoint: 0x4F11, JIS208: "1-21-57",
			ClassicalRadical: 9, Grade: 1, StrokeCount: 6, Frequency: 642, JLPT: 4,
			Groups:     []*model.ReadingMeaningGroup{group([]string{"キュウ"}, []string{"やす.む"}, []string{"rest"}, []string{"repos"})},
			Components: []rune{0x5316, 0x6728},
		},
		{
			Literal: "学", Codepoint: 0x5B66, JIS208: "1-19-56",
			ClassicalRadical: 39, Grade: 1, StrokeCount: 8, Frequency: 63, JLPT: 4,
			CodepointVariants: []rune{0x5B78},
			Groups:            []*model.ReadingMeaningGroup{group([]string{"ガク"}, []string{"まな.ぶ"}, []string{"study", "learning"}, []string{"étude"})},
			Components:        []rune{0x5196, 0x5B50},
		},
		{
			Literal: "學", Codepoint: 0x5B78, JIS208: "1-53-67",
			ClassicalRadical: 39, StrokeCount: 16,
			JIS208Variants: []string{"1-19-56"},
			Groups:         []*model.ReadingMeaningGroup{group([]string{"ガク"}, []string{"まな.ぶ"}, []string{"study"}, nil)},
			Components:     []rune{0x5196, 0x5B50, 0x81FC},
		},
		{
			Literal: "木", Codepoint: 0x6728, JIS208: "1-44-58",
			ClassicalRadical: 75, Grade: 1, StrokeCount: 4, Frequency: 317, JLPT: 4,
			Groups:     []*model.ReadingMeaningGroup{group([]string{"ボク", "モク"}, []string{"き", "こ-"}, []string{"tree", "wood"}, []string{"arbre", "bois"})},
			Components: []rune{0x6728},
		},
		{
			Literal: "水", Codepoint: 0x6C34, JIS208: "1-35-31",
			ClassicalRadical: 85, Grade: 1, StrokeCount: 4, Frequency: 223, JLPT: 4,
			RadicalNames: []string{"みず"},
			Groups:       []*model.ReadingMeaningGroup{group([]string{"スイ"}, []string{"みず", "みず-"}, []string{"water"}, []string{"eau"})},
			Nanori:       []string{"み", "みな"},
			Components:   []rune{0x6C34},
		},
		{
			Literal: "氷", Codepoint: 0x6C37, JIS208: "1-41-25",
			ClassicalRadical: 85, Grade: 3, StrokeCount: 5, Frequency: 1399, JLPT: 2,
			Groups:     []*model.ReadingMeaningGroup{group([]string{"ヒョウ"}, []string{"こおり", "ひ"}, []string{"icicle", "ice"}, []string{"glace"})},
			Components: []rune{0x4E36, 0x6C34},
		},
		{
			Literal: "\U0002000B", Codepoint: 0x2000B, JIS213: "1-14-02",
			ClassicalRadical: 1, StrokeCount: 4,
			Components: []rune{0x4E00},
		},
	}
}

// NewStore builds a store from Entries with the embedded component dataset.
func NewStore(tb testing.TB) *store.Store {
	tb.Helper()
	s := store.New()
	for _, e := range Entries() {
		_, err := s.Ingest(e)
		require.NoError(tb, err)
	}
	return s
}

// Codepoints returns the codepoints of ks in order.
func Codepoints(ks []*model.Kanji) []rune {
	out := make([]rune, 0, len(ks))
	for _, k := range ks {
		out = append(out, k.Codepoint)
	}
	return out
}
