package market

import (
	"sort"
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/disgoorg/card-binder/internal/domain/tcg"
)

type Filter struct {
	Query string
	Game  tcg.Game
	// MinCondition keeps listings at least this good. Nil keeps all.
	MinCondition  *tcg.Condition
	MaxDistanceKm float64
	MaxPriceCents int64
}

type searchItems []Listing

func (items searchItems) Len() int { return len(items) }

func (items searchItems) String(i int) string { return items[i].CardName }

// Search filters the sample listings. With a query the result is ranked by
// fuzzy name match, otherwise it is sorted nearest first.
func Search(f Filter) []Listing {
	var candidates searchItems
	for _, l := range Listings() {
		if f.Game != "" && l.Game != f.Game {
			continue
		}
		if f.MinCondition != nil && l.Condition < *f.MinCondition {
			continue
		}
		if f.MaxDistanceKm > 0 && l.DistanceKm > f.MaxDistanceKm {
			continue
		}
		if f.MaxPriceCents > 0 && l.PriceCents > f.MaxPriceCents {
			continue
		}
		candidates = append(candidates, l)
	}

	query := strings.ToLower(strings.TrimSpace(f.Query))
	if query == "" {
		sort.SliceStable(candidates, func(i, j int) bool {
			return candidates[i].DistanceKm < candidates[j].DistanceKm
		})
		return append([]Listing{}, candidates...)
	}

	lowered := make(searchItems, len(candidates))
	for i, l := range candidates {
		l.CardName = strings.ToLower(l.CardName)
		lowered[i] = l
	}

	matches := fuzzy.FindFrom(query, lowered)
	out := make([]Listing, 0, len(matches))
	for _, m := range matches {
		out = append(out, candidates[m.Index])
	}
	return out
}
