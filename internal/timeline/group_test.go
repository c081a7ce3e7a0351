package timeline

import (
	"testing"

	"github.com/skullgoth/opentripboard-sub000/internal/models"
)

func TestGroupByDaySeedsFullRange(t *testing.T) {
	trip := &models.Trip{StartDate: "2024-05-01", EndDate: "2024-05-05"}

	buckets := GroupByDay(trip, nil)
	if len(buckets) != 5 {
		t.Fatalf("expected 5 buckets, got %d", len(buckets))
	}
	for i, b := range buckets {
		want := AddDays("2024-05-01", i)
		if b.Date != want {
			t.Errorf("bucket %d date = %q, want %q", i, b.Date, want)
		}
		if len(b.Occurrences) != 0 {
			t.Errorf("bucket %q should be empty, has %d", b.Date, len(b.Occurrences))
		}
	}
}

func TestGroupByDayOutOfRangeGetsBucket(t *testing.T) {
	trip := &models.Trip{StartDate: "2024-05-01", EndDate: "2024-05-02"}
	item := models.TimelineItem{ID: 1, Kind: models.ItemKindActivity}
	occs := []models.Occurrence{
		{Item: &item, DisplayDate: "2024-04-28"}, // before the trip
		{Item: &item, DisplayDate: "2024-05-01"},
	}

	buckets := GroupByDay(trip, occs)
	if len(buckets) != 3 {
		t.Fatalf("expected 3 buckets, got %d", len(buckets))
	}
	if buckets[0].Date != "2024-04-28" {
		t.Errorf("out-of-range bucket should sort first, got %q", buckets[0].Date)
	}
	if len(buckets[0].Occurrences) != 1 {
		t.Errorf("out-of-range occurrence was dropped")
	}
}

func TestGroupByDayUndatedSentinelSortsLast(t *testing.T) {
	trip := &models.Trip{StartDate: "2024-05-01", EndDate: "2024-05-02"}
	item := models.TimelineItem{ID: 2, Kind: models.ItemKindActivity}
	occs := []models.Occurrence{
		{Item: &item, DisplayDate: ""},
		{Item: &item, DisplayDate: "2024-05-02"},
	}

	buckets := GroupByDay(trip, occs)
	last := buckets[len(buckets)-1]
	if last.Date != models.UndatedKey {
		t.Fatalf("last bucket = %q, want %q", last.Date, models.UndatedKey)
	}
	if len(last.Occurrences) != 1 {
		t.Errorf("undated bucket has %d occurrences, want 1", len(last.Occurrences))
	}
}

func TestGroupByDayWithoutTripRange(t *testing.T) {
	// No configured range disables pre-seeding; only dated occurrences
	// produce buckets.
	item := models.TimelineItem{ID: 3, Kind: models.ItemKindActivity}
	occs := []models.Occurrence{
		{Item: &item, DisplayDate: "2024-07-09"},
	}

	for _, trip := range []*models.Trip{nil, {StartDate: "2024-07-01"}} {
		buckets := GroupByDay(trip, occs)
		if len(buckets) != 1 {
			t.Fatalf("expected 1 bucket, got %d", len(buckets))
		}
		if buckets[0].Date != "2024-07-09" {
			t.Errorf("bucket date = %q", buckets[0].Date)
		}
	}
}
