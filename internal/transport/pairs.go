package transport

import (
	"github.com/skullgoth/opentripboard-sub000/internal/models"
	"github.com/skullgoth/opentripboard-sub000/internal/routing"
)

// PersistentDay is the day-index component of a segment key whose value is
// stored on the item itself. Ephemeral segments use the real day index of
// the multi-day occurrence, so several renders of one item never collide.
const PersistentDay = -1

// SegmentKey identifies a transport pair by its "from" item and, for
// ephemeral segments, the rendered day of a multi-day span
type SegmentKey struct {
	ItemID   int64
	DayIndex int
}

// Pair is one from→to transit leg contributing to a day total
type Pair struct {
	Key  SegmentKey
	Date string // day whose total this pair feeds, YYYY-MM-DD

	From *models.TimelineItem
	To   *models.TimelineItem

	// Persistent pairs write their resolved segment back to the from
	// item's metadata; ephemeral pairs live only in the aggregator cache.
	Persistent bool
	CrossDay   bool
	Mode       string
}

// Routable reports whether both endpoints carry coordinates. Pairs that
// are not routable render as an "add info" placeholder and contribute
// nothing to day totals.
func (p *Pair) Routable() bool {
	return p.From.HasCoordinates() && p.To.HasCoordinates()
}

// BuildPairs walks the ordered day buckets and derives every transit leg:
// the cross-day leg from the previous day's last stop to the current day's
// first, plus each consecutive intra-day leg. Only confirmed activities are
// stops; suggestions and the undated bucket never route. A non-final
// multi-day occurrence contributes no cross-day leg (the same item shows
// up again the next morning), and its intra-day legs are ephemeral.
func BuildPairs(buckets []models.DayBucket) []Pair {
	var pairs []Pair
	var prevLast *models.Occurrence

	for bi := range buckets {
		bucket := &buckets[bi]
		if bucket.Date == models.UndatedKey {
			continue
		}

		stops := activityStops(bucket.Occurrences)
		if len(stops) == 0 {
			continue
		}

		first := stops[0]
		if prevLast != nil && !prevLast.IsIntermediateDay() && prevLast.Item.ID != first.Item.ID {
			pairs = append(pairs, newPair(prevLast, first, bucket.Date, true))
		}

		for i := 0; i+1 < len(stops); i++ {
			from, to := stops[i], stops[i+1]
			if from.Item.ID == to.Item.ID {
				continue
			}
			pairs = append(pairs, newPair(from, to, bucket.Date, false))
		}

		prevLast = stops[len(stops)-1]
	}

	return pairs
}

func activityStops(occurrences []models.Occurrence) []*models.Occurrence {
	var stops []*models.Occurrence
	for i := range occurrences {
		if occurrences[i].Item.Kind == models.ItemKindActivity {
			stops = append(stops, &occurrences[i])
		}
	}
	return stops
}

func newPair(from, to *models.Occurrence, date string, crossDay bool) Pair {
	persistent := !from.IsIntermediateDay()
	key := SegmentKey{ItemID: from.Item.ID, DayIndex: PersistentDay}
	if !persistent {
		key.DayIndex = from.DayIndex
	}
	return Pair{
		Key:        key,
		Date:       date,
		From:       from.Item,
		To:         to.Item,
		Persistent: persistent,
		CrossDay:   crossDay,
		Mode:       chooseMode(from.Item, to.Item),
	}
}

// chooseMode picks the transit mode for a leg: a persisted segment's mode
// wins, then an explicit metadata preference, then a distance heuristic.
func chooseMode(from, to *models.TimelineItem) string {
	if seg, ok := models.SegmentFromMetadata(from.Metadata); ok && models.ValidMode(seg.Mode) {
		return seg.Mode
	}
	if pref, ok := from.Metadata["transportMode"].(string); ok && models.ValidMode(pref) {
		return pref
	}

	if !from.HasCoordinates() || !to.HasCoordinates() {
		return models.ModeDrive
	}
	km := routing.HaversineKm(from.Latitude, from.Longitude, to.Latitude, to.Longitude)
	switch {
	case km <= 2.5:
		return models.ModeWalk
	case km <= 300:
		return models.ModeDrive
	case km <= 800:
		return models.ModeTrain
	default:
		return models.ModeFly
	}
}
