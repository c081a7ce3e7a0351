package timeline

import (
	"sort"

	"github.com/skullgoth/opentripboard-sub000/internal/models"
)

// GroupByDay buckets occurrences by calendar date. Every date in the trip's
// configured range gets a bucket up front, empty or not; occurrences outside
// the range get buckets on demand rather than being dropped. Occurrences
// without a display date collect in the undated sentinel bucket, ordered
// after every dated one. Buckets come back date-ascending with their
// contents sorted.
func GroupByDay(trip *models.Trip, occurrences []models.Occurrence) []models.DayBucket {
	buckets := make(map[string][]models.Occurrence)

	if trip != nil && trip.HasDateRange() {
		for _, date := range DateRange(trip.StartDate, trip.EndDate) {
			buckets[date] = []models.Occurrence{}
		}
	}

	for _, occ := range occurrences {
		key := occ.DisplayDate
		if key == "" {
			key = models.UndatedKey
		}
		buckets[key] = append(buckets[key], occ)
	}

	keys := make([]string, 0, len(buckets))
	for key := range buckets {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		// Undated sentinel sorts last; ISO dates compare lexically
		if keys[i] == models.UndatedKey {
			return false
		}
		if keys[j] == models.UndatedKey {
			return true
		}
		return keys[i] < keys[j]
	})

	result := make([]models.DayBucket, 0, len(keys))
	for _, key := range keys {
		occs := buckets[key]
		SortOccurrences(occs)
		result = append(result, models.DayBucket{Date: key, Occurrences: occs})
	}
	return result
}
