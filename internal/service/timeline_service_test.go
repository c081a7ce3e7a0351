package service

import (
	"context"
	"database/sql"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/skullgoth/opentripboard-sub000/internal/database"
	"github.com/skullgoth/opentripboard-sub000/internal/models"
	"github.com/skullgoth/opentripboard-sub000/internal/repository"
)

type stubRouter struct {
	calls atomic.Int64
}

func (r *stubRouter) Route(ctx context.Context, req models.RouteRequest) (*models.RouteResponse, error) {
	r.calls.Add(1)
	return &models.RouteResponse{DistanceKm: 10, DurationMin: 20, Provider: "stub"}, nil
}

func newTimelineFixture(t *testing.T) (*TimelineService, *repository.TripRepository, *repository.ActivityRepository, *repository.SuggestionRepository) {
	t.Helper()
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	_, err = db.Exec("PRAGMA foreign_keys=ON")
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	trips := repository.NewTripRepository(db)
	activities := repository.NewActivityRepository(db)
	suggestions := repository.NewSuggestionRepository(db)
	svc := NewTimelineService(trips, activities, suggestions, &stubRouter{}, time.Millisecond)
	t.Cleanup(func() {
		for id := range svc.aggregators {
			svc.CloseTrip(id)
		}
	})
	return svc, trips, activities, suggestions
}

func at(date string, hour int) int64 {
	ts, _ := time.Parse("2006-01-02", date)
	return ts.Add(time.Duration(hour) * time.Hour).Unix()
}

func TestGetTimelineMissingTrip(t *testing.T) {
	svc, _, _, _ := newTimelineFixture(t)
	_, err := svc.GetTimeline(context.Background(), 42, false)
	assert.ErrorIs(t, err, ErrTripNotFound)
}

func TestGetTimelineEndToEnd(t *testing.T) {
	svc, trips, activities, suggestions := newTimelineFixture(t)
	ctx := context.Background()

	tripID, err := trips.CreateTrip(&models.Trip{
		Name: "Dolomites", Destination: "Bolzano",
		StartDate: "2024-06-10", EndDate: "2024-06-12",
	})
	require.NoError(t, err)

	// Two-night hotel spanning the full trip
	_, err = activities.CreateActivity(&models.Activity{
		TripID: tripID, Category: models.CategoryHotel, Title: "Parkhotel Laurin",
		StartTime: at("2024-06-10", 15), EndTime: at("2024-06-12", 10),
		Latitude: 46.4983, Longitude: 11.3548,
	})
	require.NoError(t, err)
	_, err = activities.CreateActivity(&models.Activity{
		TripID: tripID, Category: models.CategoryMuseum, Title: "Messner Mountain Museum",
		StartTime: at("2024-06-11", 10), EndTime: at("2024-06-11", 13),
		Latitude: 46.5405, Longitude: 11.5610,
	})
	require.NoError(t, err)
	// Pending suggestions appear in buckets; others are filtered out
	_, err = suggestions.CreateSuggestion(&models.Suggestion{
		TripID: tripID, Category: models.CategoryRestaurant, Title: "Vögele",
		StartTime: at("2024-06-11", 19),
	})
	require.NoError(t, err)
	rejectedID, err := suggestions.CreateSuggestion(&models.Suggestion{
		TripID: tripID, Category: models.CategoryRestaurant, Title: "Skip me",
		StartTime: at("2024-06-11", 19),
	})
	require.NoError(t, err)
	require.NoError(t, suggestions.SetStatus(rejectedID, models.SuggestionRejected))

	view, err := svc.GetTimeline(ctx, tripID, true)
	require.NoError(t, err)
	require.Len(t, view.Buckets, 3)
	assert.Equal(t, "2024-06-10", view.Buckets[0].Date)
	assert.Equal(t, "2024-06-12", view.Buckets[2].Date)

	// Hotel occupies every day of its range, museum and the pending
	// suggestion land on day two
	require.Len(t, view.Buckets[0].Occurrences, 1)
	require.Len(t, view.Buckets[1].Occurrences, 3)
	require.Len(t, view.Buckets[2].Occurrences, 1)
	assert.True(t, view.Buckets[1].Occurrences[0].IsMultiDay)
	for _, occ := range view.Buckets[1].Occurrences {
		assert.NotEqual(t, "Skip me", occ.Item.Title)
	}

	// With wait set all routable segments resolve before returning
	for date, sum := range view.Summaries {
		assert.Zero(t, sum.PendingSegments, "pending on %s", date)
	}

	// A second read reuses the trip's aggregator and recomputes, not
	// accumulates, the totals
	again, err := svc.GetTimeline(ctx, tripID, true)
	require.NoError(t, err)
	for date, sum := range view.Summaries {
		assert.Equal(t, sum.TotalDurationMin, again.Summaries[date].TotalDurationMin, date)
	}
}
