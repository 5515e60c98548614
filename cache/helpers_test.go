package cache

import (
	"slices"

	"github.com/hupe1980/kanjigo/model"
	"github.com/hupe1980/kanjigo/store"
)

func collect(s *store.Store) []*model.Kanji {
	return slices.Collect(s.All())
}
