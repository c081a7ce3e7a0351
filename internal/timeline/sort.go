package timeline

import (
	"sort"

	"github.com/skullgoth/opentripboard-sub000/internal/models"
)

// SortOccurrences orders a day bucket in place: confirmed activities before
// pending suggestions, then ascending order index (absent sorts as 999),
// then ascending start time. The sort is stable, so equal-key occurrences
// keep their input order.
func SortOccurrences(occurrences []models.Occurrence) {
	sort.SliceStable(occurrences, func(i, j int) bool {
		a, b := occurrences[i].Item, occurrences[j].Item

		if a.IsSuggestion() != b.IsSuggestion() {
			return !a.IsSuggestion()
		}

		ai, bi := a.EffectiveOrderIndex(), b.EffectiveOrderIndex()
		if ai != bi {
			return ai < bi
		}

		return a.StartTime < b.StartTime
	})
}
