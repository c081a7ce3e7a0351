package repository

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/skullgoth/opentripboard-sub000/internal/database"
	"github.com/skullgoth/opentripboard-sub000/internal/models"
)

func testDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	_, err = db.Exec("PRAGMA foreign_keys=ON")
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func seedTrip(t *testing.T, db *sql.DB) int64 {
	t.Helper()
	trips := NewTripRepository(db)
	id, err := trips.CreateTrip(&models.Trip{
		Name:        "Paris long weekend",
		Destination: "Paris",
		StartDate:   "2024-03-01",
		EndDate:     "2024-03-04",
	})
	require.NoError(t, err)
	return id
}

func TestTripCRUD(t *testing.T) {
	db := testDB(t)
	repo := NewTripRepository(db)

	id := seedTrip(t, db)

	trip, err := repo.GetTripByID(id)
	require.NoError(t, err)
	require.NotNil(t, trip)
	assert.Equal(t, "Paris long weekend", trip.Name)
	assert.True(t, trip.HasDateRange())

	trip.Destination = "Paris, France"
	require.NoError(t, repo.UpdateTrip(trip))

	trips, total, err := repo.GetTrips(models.TripFilter{Destination: "Paris, France"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, trips, 1)

	require.NoError(t, repo.DeleteTrip(id))
	gone, err := repo.GetTripByID(id)
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func TestActivitySaveFieldColumnsAndMetadata(t *testing.T) {
	db := testDB(t)
	tripID := seedTrip(t, db)
	repo := NewActivityRepository(db)
	ctx := context.Background()

	id, err := repo.CreateActivity(&models.Activity{
		TripID:   tripID,
		Category: models.CategoryFlight,
		Title:    "AF 1680",
		Metadata: map[string]any{"flightNumber": "AF1680"},
	})
	require.NoError(t, err)

	// Column-backed field
	require.NoError(t, repo.SaveField(ctx, id, "title", "AF 1681", false))
	// Metadata field merges without clobbering siblings
	require.NoError(t, repo.SaveField(ctx, id, "confirmationCode", "X7GH2K", false))
	// Typed segment value round-trips through JSON
	require.NoError(t, repo.SaveField(ctx, id, models.MetaTransportToNext, &models.TransportSegment{
		Mode: models.ModeDrive, DistanceKm: 12.5, DurationMin: 22,
	}, true))

	a, err := repo.GetActivityByID(id)
	require.NoError(t, err)
	require.NotNil(t, a)
	assert.Equal(t, "AF 1681", a.Title)
	assert.Equal(t, "AF1680", a.Metadata["flightNumber"])
	assert.Equal(t, "X7GH2K", a.Metadata["confirmationCode"])

	seg, ok := models.SegmentFromMetadata(a.Metadata)
	require.True(t, ok)
	assert.Equal(t, models.ModeDrive, seg.Mode)
	assert.Equal(t, 12.5, seg.DistanceKm)

	// Unknown item fails rather than silently updating nothing
	assert.Error(t, repo.SaveField(ctx, 99999, "title", "x", false))
}

func TestSuggestionVoteAndStatus(t *testing.T) {
	db := testDB(t)
	tripID := seedTrip(t, db)
	repo := NewSuggestionRepository(db)

	id, err := repo.CreateSuggestion(&models.Suggestion{
		TripID:   tripID,
		Category: models.CategoryRestaurant,
		Title:    "Septime",
	})
	require.NoError(t, err)

	require.NoError(t, repo.Vote(id, true))
	require.NoError(t, repo.Vote(id, true))
	require.NoError(t, repo.Vote(id, false))

	s, err := repo.GetSuggestionByID(id)
	require.NoError(t, err)
	require.NotNil(t, s)
	assert.Equal(t, models.SuggestionPending, s.Status)
	assert.Equal(t, 2, s.UpVotes)
	assert.Equal(t, 1, s.DownVotes)

	require.NoError(t, repo.SetStatus(id, models.SuggestionAccepted))
	assert.Error(t, repo.SetStatus(id, "maybe"))

	pending, err := repo.GetSuggestions(tripID, models.SuggestionFilter{Status: models.SuggestionPending})
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestTripDeleteCascades(t *testing.T) {
	db := testDB(t)
	tripID := seedTrip(t, db)
	trips := NewTripRepository(db)
	activities := NewActivityRepository(db)

	_, err := activities.CreateActivity(&models.Activity{
		TripID: tripID, Category: models.CategoryHotel, Title: "Hotel Lutetia",
	})
	require.NoError(t, err)

	require.NoError(t, trips.DeleteTrip(tripID))

	left, err := activities.GetActivities(tripID, models.ActivityFilter{})
	require.NoError(t, err)
	assert.Empty(t, left)
}
