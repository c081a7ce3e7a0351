package transport

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skullgoth/opentripboard-sub000/internal/models"
	"github.com/skullgoth/opentripboard-sub000/internal/routing"
	"github.com/skullgoth/opentripboard-sub000/internal/timeline"
)

type fakeRouter struct {
	mu       sync.Mutex
	calls    []models.RouteRequest
	response models.RouteResponse
	err      error
}

func (f *fakeRouter) Route(ctx context.Context, req models.RouteRequest) (*models.RouteResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, req)
	if f.err != nil {
		return nil, f.err
	}
	resp := f.response
	return &resp, nil
}

func (f *fakeRouter) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

type savedField struct {
	itemID int64
	field  string
	value  any
	silent bool
}

type fakeSaver struct {
	mu    sync.Mutex
	saved []savedField
	err   error
}

func (f *fakeSaver) SaveField(ctx context.Context, itemID int64, field string, value any, silent bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.saved = append(f.saved, savedField{itemID, field, value, silent})
	return nil
}

func dayStart(t *testing.T, date string) int64 {
	t.Helper()
	parsed, ok := timeline.ParseDate(date)
	require.True(t, ok, "bad date %q", date)
	return parsed.Unix()
}

// buckets builds grouped, sorted day buckets from raw items the same way
// the timeline service does
func buckets(trip *models.Trip, items []models.TimelineItem) []models.DayBucket {
	return timeline.GroupByDay(trip, timeline.Expand(items))
}

func parisLondonTrip() *models.Trip {
	return &models.Trip{ID: 1, StartDate: "2024-03-01", EndDate: "2024-03-03"}
}

func TestSingleSegmentDayTotal(t *testing.T) {
	router := &fakeRouter{response: models.RouteResponse{DistanceKm: 344, DurationMin: 245}}
	agg := NewAggregator(router, &fakeSaver{}, 0)
	agg.Attach()
	defer agg.Detach()

	items := []models.TimelineItem{
		{ID: 1, Kind: models.ItemKindActivity, Category: models.CategoryMuseum,
			Latitude: 48.85, Longitude: 2.35, StartTime: dayStart(t, "2024-03-01") + 9*3600},
		{ID: 2, Kind: models.ItemKindActivity, Category: models.CategoryMuseum,
			Latitude: 51.50, Longitude: -0.12, StartTime: dayStart(t, "2024-03-01") + 15*3600},
	}

	agg.Rebuild(buckets(parisLondonTrip(), items))
	agg.ResolveAll(context.Background())

	summaries := agg.Summaries()
	day := summaries["2024-03-01"]
	assert.Equal(t, 344.0, day.TotalDistanceKm)
	assert.Equal(t, 245.0, day.TotalDurationMin)
	assert.Equal(t, 1, day.ResolvedSegments)
	assert.Equal(t, 0, day.PendingSegments)
}

func TestTotalsAreRecomputedNotAccumulated(t *testing.T) {
	router := &fakeRouter{response: models.RouteResponse{DistanceKm: 10, DurationMin: 12}}
	agg := NewAggregator(router, &fakeSaver{}, 0)
	agg.Attach()
	defer agg.Detach()

	items := []models.TimelineItem{
		{ID: 1, Kind: models.ItemKindActivity, Latitude: 48.85, Longitude: 2.35,
			StartTime: dayStart(t, "2024-03-01") + 9*3600},
		{ID: 2, Kind: models.ItemKindActivity, Latitude: 48.86, Longitude: 2.34,
			StartTime: dayStart(t, "2024-03-01") + 12*3600},
		{ID: 3, Kind: models.ItemKindActivity, Latitude: 48.87, Longitude: 2.33,
			StartTime: dayStart(t, "2024-03-01") + 15*3600},
	}

	agg.Rebuild(buckets(parisLondonTrip(), items))
	agg.ResolveAll(context.Background())

	first := agg.Summaries()["2024-03-01"]
	second := agg.Summaries()["2024-03-01"]
	assert.Equal(t, first, second, "repeated summary reads must not drift")
	assert.Equal(t, 20.0, first.TotalDistanceKm)
	assert.Equal(t, 2, first.ResolvedSegments)
}

func TestCrossDaySegment(t *testing.T) {
	router := &fakeRouter{response: models.RouteResponse{DistanceKm: 5, DurationMin: 20}}
	agg := NewAggregator(router, &fakeSaver{}, 0)
	agg.Attach()
	defer agg.Detach()

	items := []models.TimelineItem{
		{ID: 1, Kind: models.ItemKindActivity, Latitude: 48.85, Longitude: 2.35,
			StartTime: dayStart(t, "2024-03-01") + 19*3600},
		{ID: 2, Kind: models.ItemKindActivity, Latitude: 48.86, Longitude: 2.34,
			StartTime: dayStart(t, "2024-03-02") + 9*3600},
	}

	agg.Rebuild(buckets(parisLondonTrip(), items))
	agg.ResolveAll(context.Background())

	// The overnight leg counts toward the arrival day.
	assert.Equal(t, 0, agg.Summaries()["2024-03-01"].ResolvedSegments)
	assert.Equal(t, 1, agg.Summaries()["2024-03-02"].ResolvedSegments)
	assert.Equal(t, 5.0, agg.Summaries()["2024-03-02"].TotalDistanceKm)
}

func TestMultiDayLodgingSegments(t *testing.T) {
	router := &fakeRouter{response: models.RouteResponse{DistanceKm: 3, DurationMin: 15}}
	saver := &fakeSaver{}
	agg := NewAggregator(router, saver, 0)
	agg.Attach()
	defer agg.Detach()

	checkIn := dayStart(t, "2024-03-01") + 15*3600
	checkOut := dayStart(t, "2024-03-03") + 11*3600
	hotelOrder := 0
	items := []models.TimelineItem{
		// Hotel spans Mar 1-3, first in each day's ordering
		{ID: 10, Kind: models.ItemKindActivity, Category: models.CategoryHotel,
			Latitude: 48.85, Longitude: 2.35, StartTime: checkIn, EndTime: checkOut,
			OrderIndex: &hotelOrder},
		// One sight per day
		{ID: 11, Kind: models.ItemKindActivity, Latitude: 48.86, Longitude: 2.34,
			StartTime: dayStart(t, "2024-03-01") + 18*3600},
		{ID: 12, Kind: models.ItemKindActivity, Latitude: 48.87, Longitude: 2.33,
			StartTime: dayStart(t, "2024-03-02") + 10*3600},
		{ID: 13, Kind: models.ItemKindActivity, Latitude: 48.88, Longitude: 2.32,
			StartTime: dayStart(t, "2024-03-03") + 13*3600},
	}

	agg.Rebuild(buckets(parisLondonTrip(), items))
	agg.ResolveAll(context.Background())

	// Day 1: hotel(day 0)->11, ephemeral. Day 2: cross-day 11->hotel plus
	// ephemeral hotel(day 1)->12. Day 3: cross-day 12->hotel plus the
	// checkout leg hotel(final day)->13, which is the item's one persisted
	// segment.
	summaries := agg.Summaries()
	assert.Equal(t, 1, summaries["2024-03-01"].ResolvedSegments)
	assert.Equal(t, 2, summaries["2024-03-02"].ResolvedSegments)
	assert.Equal(t, 2, summaries["2024-03-03"].ResolvedSegments)

	// Ephemeral hotel legs are keyed by rendered day, so the two non-final
	// occurrences never collide with each other or the persisted slot.
	_, day0 := agg.Segment(SegmentKey{ItemID: 10, DayIndex: 0})
	_, day1 := agg.Segment(SegmentKey{ItemID: 10, DayIndex: 1})
	_, persisted := agg.Segment(SegmentKey{ItemID: 10, DayIndex: PersistentDay})
	assert.True(t, day0, "day-0 ephemeral segment missing")
	assert.True(t, day1, "day-1 ephemeral segment missing")
	assert.True(t, persisted, "checkout segment missing")

	saver.mu.Lock()
	defer saver.mu.Unlock()
	hotelSaves := 0
	for _, s := range saver.saved {
		require.Equal(t, models.MetaTransportToNext, s.field)
		require.True(t, s.silent)
		if s.itemID == 10 {
			hotelSaves++
		}
	}
	assert.Equal(t, 1, hotelSaves, "only the checkout leg persists for the hotel")
}

func TestPersistentSegmentWrittenBack(t *testing.T) {
	router := &fakeRouter{response: models.RouteResponse{DistanceKm: 8, DurationMin: 30}}
	saver := &fakeSaver{}
	agg := NewAggregator(router, saver, 0)
	agg.Attach()
	defer agg.Detach()

	items := []models.TimelineItem{
		{ID: 1, Kind: models.ItemKindActivity, Latitude: 48.85, Longitude: 2.35,
			StartTime: dayStart(t, "2024-03-01") + 9*3600},
		{ID: 2, Kind: models.ItemKindActivity, Latitude: 48.86, Longitude: 2.34,
			StartTime: dayStart(t, "2024-03-01") + 12*3600},
	}

	agg.Rebuild(buckets(parisLondonTrip(), items))
	agg.ResolveAll(context.Background())

	saver.mu.Lock()
	defer saver.mu.Unlock()
	require.Len(t, saver.saved, 1)
	assert.Equal(t, int64(1), saver.saved[0].itemID)
	assert.Equal(t, models.MetaTransportToNext, saver.saved[0].field)
	seg, ok := saver.saved[0].value.(*models.TransportSegment)
	require.True(t, ok)
	assert.Equal(t, 8.0, seg.DistanceKm)
}

func TestPersistedSegmentSeedsWithoutRouting(t *testing.T) {
	router := &fakeRouter{response: models.RouteResponse{DistanceKm: 99, DurationMin: 99}}
	agg := NewAggregator(router, &fakeSaver{}, 0)
	agg.Attach()
	defer agg.Detach()

	items := []models.TimelineItem{
		{ID: 1, Kind: models.ItemKindActivity, Latitude: 48.85, Longitude: 2.35,
			StartTime: dayStart(t, "2024-03-01") + 9*3600,
			Metadata: map[string]any{
				models.MetaTransportToNext: map[string]any{
					"mode": "walk", "distance_km": 1.2, "duration_min": 16.0,
				},
			}},
		{ID: 2, Kind: models.ItemKindActivity, Latitude: 48.86, Longitude: 2.34,
			StartTime: dayStart(t, "2024-03-01") + 12*3600},
	}

	agg.Rebuild(buckets(parisLondonTrip(), items))
	agg.ResolveAll(context.Background())

	assert.Equal(t, 0, router.callCount(), "cached segment must not hit the router")
	day := agg.Summaries()["2024-03-01"]
	assert.InDelta(t, 1.2, day.TotalDistanceKm, 1e-9)
	assert.InDelta(t, 16.0, day.TotalDurationMin, 1e-9)
}

func TestMissingCoordinatesSkipsPair(t *testing.T) {
	router := &fakeRouter{response: models.RouteResponse{DistanceKm: 7, DurationMin: 9}}
	agg := NewAggregator(router, &fakeSaver{}, 0)
	agg.Attach()
	defer agg.Detach()

	items := []models.TimelineItem{
		{ID: 1, Kind: models.ItemKindActivity, // no coordinates
			StartTime: dayStart(t, "2024-03-01") + 9*3600},
		{ID: 2, Kind: models.ItemKindActivity, Latitude: 48.86, Longitude: 2.34,
			StartTime: dayStart(t, "2024-03-01") + 12*3600},
	}

	agg.Rebuild(buckets(parisLondonTrip(), items))
	agg.ResolveAll(context.Background())

	assert.Equal(t, 0, router.callCount())
	day := agg.Summaries()["2024-03-01"]
	assert.Equal(t, 0.0, day.TotalDistanceKm)
	assert.Equal(t, 0, day.ResolvedSegments)
	assert.Equal(t, 0, day.PendingSegments, "unroutable pair is a placeholder, not pending")
}

func TestNetworkErrorKeepsPairPending(t *testing.T) {
	router := &fakeRouter{err: routing.ErrServiceUnavailable}
	agg := NewAggregator(router, &fakeSaver{}, 0)
	agg.Attach()
	defer agg.Detach()

	items := []models.TimelineItem{
		{ID: 1, Kind: models.ItemKindActivity, Latitude: 48.85, Longitude: 2.35,
			StartTime: dayStart(t, "2024-03-01") + 9*3600},
		{ID: 2, Kind: models.ItemKindActivity, Latitude: 48.86, Longitude: 2.34,
			StartTime: dayStart(t, "2024-03-01") + 12*3600},
	}

	agg.Rebuild(buckets(parisLondonTrip(), items))
	agg.ResolveAll(context.Background())

	day := agg.Summaries()["2024-03-01"]
	assert.Equal(t, 1, day.PendingSegments)
	assert.Equal(t, 0, day.ResolvedSegments)

	// Service recovers: the same pair resolves on the next pass.
	router.mu.Lock()
	router.err = nil
	router.response = models.RouteResponse{DistanceKm: 4, DurationMin: 11}
	router.mu.Unlock()

	agg.ResolveAll(context.Background())
	day = agg.Summaries()["2024-03-01"]
	assert.Equal(t, 1, day.ResolvedSegments)
	assert.Equal(t, 4.0, day.TotalDistanceKm)
}

func TestScheduleResolveRunsSinglePass(t *testing.T) {
	router := &fakeRouter{response: models.RouteResponse{DistanceKm: 2, DurationMin: 6}}
	agg := NewAggregator(router, &fakeSaver{}, time.Millisecond)
	agg.Attach()
	defer agg.Detach()

	items := []models.TimelineItem{
		{ID: 1, Kind: models.ItemKindActivity, Latitude: 48.85, Longitude: 2.35,
			StartTime: dayStart(t, "2024-03-01") + 9*3600},
		{ID: 2, Kind: models.ItemKindActivity, Latitude: 48.86, Longitude: 2.34,
			StartTime: dayStart(t, "2024-03-01") + 12*3600},
	}
	agg.Rebuild(buckets(parisLondonTrip(), items))

	// Re-entrancy guard: many concurrent schedules, one routing call.
	for i := 0; i < 8; i++ {
		agg.ScheduleResolve()
	}

	require.Eventually(t, func() bool {
		return agg.Summaries()["2024-03-01"].ResolvedSegments == 1
	}, 2*time.Second, 5*time.Millisecond)
	assert.Equal(t, 1, router.callCount())
}

func TestDetachStopsScheduling(t *testing.T) {
	router := &fakeRouter{response: models.RouteResponse{DistanceKm: 2, DurationMin: 6}}
	agg := NewAggregator(router, &fakeSaver{}, 0)
	agg.Attach()

	items := []models.TimelineItem{
		{ID: 1, Kind: models.ItemKindActivity, Latitude: 48.85, Longitude: 2.35,
			StartTime: dayStart(t, "2024-03-01") + 9*3600},
		{ID: 2, Kind: models.ItemKindActivity, Latitude: 48.86, Longitude: 2.34,
			StartTime: dayStart(t, "2024-03-01") + 12*3600},
	}
	agg.Rebuild(buckets(parisLondonTrip(), items))

	agg.Detach()
	agg.ScheduleResolve()

	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, 0, router.callCount(), "detached aggregator must not schedule passes")
}

func TestSuggestionsNeverRoute(t *testing.T) {
	router := &fakeRouter{response: models.RouteResponse{DistanceKm: 2, DurationMin: 6}}
	agg := NewAggregator(router, &fakeSaver{}, 0)
	agg.Attach()
	defer agg.Detach()

	items := []models.TimelineItem{
		{ID: 1, Kind: models.ItemKindActivity, Latitude: 48.85, Longitude: 2.35,
			StartTime: dayStart(t, "2024-03-01") + 9*3600},
		{ID: 2, Kind: models.ItemKindSuggestion, Latitude: 48.86, Longitude: 2.34,
			StartTime: dayStart(t, "2024-03-01") + 12*3600},
	}

	agg.Rebuild(buckets(parisLondonTrip(), items))
	agg.ResolveAll(context.Background())

	assert.Equal(t, 0, router.callCount())
}

// blockingRouter parks every Route call until released, so tests can hold a
// resolution pass in flight
type blockingRouter struct {
	inner   fakeRouter
	entered chan struct{}
	release chan struct{}
}

func (b *blockingRouter) Route(ctx context.Context, req models.RouteRequest) (*models.RouteResponse, error) {
	b.entered <- struct{}{}
	<-b.release
	return b.inner.Route(ctx, req)
}

func TestResolveAllWaitsOutBackgroundPass(t *testing.T) {
	router := &blockingRouter{
		inner:   fakeRouter{response: models.RouteResponse{DistanceKm: 344, DurationMin: 245}},
		entered: make(chan struct{}, 4),
		release: make(chan struct{}),
	}
	agg := NewAggregator(router, &fakeSaver{}, 0)
	agg.Attach()
	defer agg.Detach()

	items := []models.TimelineItem{
		{ID: 1, Kind: models.ItemKindActivity, Latitude: 48.85, Longitude: 2.35,
			StartTime: dayStart(t, "2024-03-01") + 9*3600},
		{ID: 2, Kind: models.ItemKindActivity, Latitude: 51.50, Longitude: -0.12,
			StartTime: dayStart(t, "2024-03-01") + 15*3600},
	}
	agg.Rebuild(buckets(parisLondonTrip(), items))

	agg.ScheduleResolve()
	<-router.entered // background pass is now parked inside the router

	done := make(chan struct{})
	go func() {
		agg.ResolveAll(context.Background())
		close(done)
	}()

	select {
	case <-done:
		t.Fatal("ResolveAll returned while a pass was still in flight")
	case <-time.After(50 * time.Millisecond):
	}

	close(router.release)
	<-done

	day := agg.Summaries()["2024-03-01"]
	assert.Equal(t, 1, day.ResolvedSegments)
	assert.Equal(t, 0, day.PendingSegments, "waited read must see fresh totals")
}
