package timeline

import (
	"testing"

	"github.com/skullgoth/opentripboard-sub000/internal/models"
)

func orderIdx(n int) *int { return &n }

func occWith(id int64, kind string, order *int, start int64) models.Occurrence {
	return models.Occurrence{Item: &models.TimelineItem{
		ID:         id,
		Kind:       kind,
		OrderIndex: order,
		StartTime:  start,
	}}
}

func ids(occs []models.Occurrence) []int64 {
	out := make([]int64, len(occs))
	for i, o := range occs {
		out[i] = o.Item.ID
	}
	return out
}

func assertOrder(t *testing.T, occs []models.Occurrence, want []int64) {
	t.Helper()
	got := ids(occs)
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestSortActivitiesBeforeSuggestions(t *testing.T) {
	// Suggestions sort last even with a lower order index and earlier
	// start time.
	occs := []models.Occurrence{
		occWith(1, models.ItemKindSuggestion, orderIdx(0), 100),
		occWith(2, models.ItemKindActivity, orderIdx(50), 900),
		occWith(3, models.ItemKindSuggestion, orderIdx(1), 200),
		occWith(4, models.ItemKindActivity, nil, 800),
	}

	SortOccurrences(occs)
	assertOrder(t, occs, []int64{2, 4, 1, 3})
}

func TestSortByOrderIndexThenStartTime(t *testing.T) {
	occs := []models.Occurrence{
		occWith(1, models.ItemKindActivity, orderIdx(2), 100),
		occWith(2, models.ItemKindActivity, orderIdx(1), 500),
		occWith(3, models.ItemKindActivity, orderIdx(1), 300),
		occWith(4, models.ItemKindActivity, nil, 50), // missing index sorts as 999
	}

	SortOccurrences(occs)
	assertOrder(t, occs, []int64{3, 2, 1, 4})
}

func TestSortIsStable(t *testing.T) {
	// Equal order index, no start time: input order must survive.
	occs := []models.Occurrence{
		occWith(10, models.ItemKindActivity, orderIdx(5), 0),
		occWith(11, models.ItemKindActivity, orderIdx(5), 0),
		occWith(12, models.ItemKindActivity, orderIdx(5), 0),
	}

	SortOccurrences(occs)
	assertOrder(t, occs, []int64{10, 11, 12})
}

func TestSortMissingIndexDefaultsTo999(t *testing.T) {
	occs := []models.Occurrence{
		occWith(1, models.ItemKindActivity, nil, 0),
		occWith(2, models.ItemKindActivity, orderIdx(999), 0),
		occWith(3, models.ItemKindActivity, orderIdx(1000), 0),
	}

	SortOccurrences(occs)
	// nil and explicit 999 tie, stability keeps 1 before 2
	assertOrder(t, occs, []int64{1, 2, 3})
}
