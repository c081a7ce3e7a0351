package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/skullgoth/opentripboard-sub000/internal/models"
	"github.com/skullgoth/opentripboard-sub000/internal/repository"
	"github.com/skullgoth/opentripboard-sub000/internal/routing"
	"github.com/skullgoth/opentripboard-sub000/internal/timeline"
	"github.com/skullgoth/opentripboard-sub000/internal/transport"
)

// ErrTripNotFound is returned when a timeline is requested for a missing
// trip
var ErrTripNotFound = fmt.Errorf("trip not found")

// TimelineService builds the unified timeline view: it prepares and expands
// items, groups them into day buckets and keeps one transport aggregator
// alive per trip to reconcile transit totals in the background.
type TimelineService struct {
	trips       *repository.TripRepository
	activities  *repository.ActivityRepository
	suggestions *repository.SuggestionRepository
	router      routing.Router
	routeDelay  time.Duration

	mu          sync.Mutex
	aggregators map[int64]*transport.Aggregator
}

// NewTimelineService creates a timeline service. routeDelay paces the
// aggregator's batch routing requests.
func NewTimelineService(
	trips *repository.TripRepository,
	activities *repository.ActivityRepository,
	suggestions *repository.SuggestionRepository,
	router routing.Router,
	routeDelay time.Duration,
) *TimelineService {
	return &TimelineService{
		trips:       trips,
		activities:  activities,
		suggestions: suggestions,
		router:      router,
		routeDelay:  routeDelay,
		aggregators: make(map[int64]*transport.Aggregator),
	}
}

// GetTimeline builds the timeline view for a trip. With wait set, transit
// segments are resolved before returning; otherwise resolution continues in
// the background and totals fill in on later reads.
func (s *TimelineService) GetTimeline(ctx context.Context, tripID int64, wait bool) (*models.TimelineView, error) {
	trip, err := s.trips.GetTripByID(tripID)
	if err != nil {
		return nil, err
	}
	if trip == nil {
		return nil, ErrTripNotFound
	}

	activities, err := s.activities.GetActivities(tripID, models.ActivityFilter{})
	if err != nil {
		return nil, err
	}
	suggestions, err := s.suggestions.GetSuggestions(tripID, models.SuggestionFilter{})
	if err != nil {
		return nil, err
	}

	items := timeline.PrepareItems(activities, suggestions)
	buckets := timeline.GroupByDay(trip, timeline.Expand(items))

	agg := s.aggregator(tripID)
	agg.Rebuild(buckets)
	if wait {
		agg.ResolveAll(ctx)
	} else {
		agg.ScheduleResolve()
	}

	return &models.TimelineView{
		TripID:    tripID,
		Buckets:   buckets,
		Summaries: agg.Summaries(),
	}, nil
}

// CloseTrip tears down the trip's aggregator, stopping any further
// resolution passes. Called when the trip is deleted.
func (s *TimelineService) CloseTrip(tripID int64) {
	s.mu.Lock()
	agg, ok := s.aggregators[tripID]
	delete(s.aggregators, tripID)
	s.mu.Unlock()
	if ok {
		agg.Detach()
	}
}

// aggregator returns the live aggregator for a trip, creating and attaching
// one on first use
func (s *TimelineService) aggregator(tripID int64) *transport.Aggregator {
	s.mu.Lock()
	defer s.mu.Unlock()
	if agg, ok := s.aggregators[tripID]; ok {
		return agg
	}
	agg := transport.NewAggregator(s.router, s.activities, s.routeDelay)
	agg.Attach()
	s.aggregators[tripID] = agg
	return agg
}
