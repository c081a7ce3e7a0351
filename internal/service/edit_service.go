package service

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/skullgoth/opentripboard-sub000/internal/edit"
	"github.com/skullgoth/opentripboard-sub000/internal/models"
	"github.com/skullgoth/opentripboard-sub000/internal/repository"
)

// FieldChange is one ordered entry of an edit batch
type FieldChange struct {
	Field string `json:"field" binding:"required"`
	Value any    `json:"value"`
}

// LocationChange carries the compound location edit: text and coordinates
// always move together
type LocationChange struct {
	Location  string  `json:"location"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// EditService applies staged multi-field edits to activities through the
// edit transaction manager, preserving its atomic commit and per-field
// failure semantics
type EditService struct {
	activities *repository.ActivityRepository

	// mu spans every StartEdit→Stage→Save sequence. The manager allows one
	// editing item at a time; without the lock two interleaved requests
	// could stage fields onto each other's transaction.
	mu      sync.Mutex
	manager *edit.Manager
}

// NewEditService creates an edit service backed by the activity repository
func NewEditService(activities *repository.ActivityRepository) *EditService {
	s := &EditService{
		activities: activities,
		manager:    edit.NewManager(activities),
	}
	s.manager.OnCategoryChanged(func(itemID int64, category string) {
		// Category controls multi-day eligibility; the timeline re-expands
		// on its next read, nothing to invalidate eagerly.
		log.Printf("[EditService] item %d category changed to %s", itemID, category)
	})
	return s
}

// FieldSchema returns the ordered editable metadata fields for a category
func (s *EditService) FieldSchema(category string) []edit.FieldDescriptor {
	return edit.FieldsFor(category)
}

// ApplyEdits stages the given changes on one activity, in order, and
// commits them as a single transaction. A nil location leaves the compound
// location state untouched.
func (s *EditService) ApplyEdits(ctx context.Context, activityID int64, changes []FieldChange, location *LocationChange) (edit.SaveResult, error) {
	activity, err := s.activities.GetActivityByID(activityID)
	if err != nil {
		return edit.SaveResult{}, err
	}
	if activity == nil {
		return edit.SaveResult{}, fmt.Errorf("activity %d not found", activityID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	item := timelineItem(activity)
	if _, err := s.manager.StartEdit(ctx, item); err != nil {
		return edit.SaveResult{}, err
	}

	for _, c := range changes {
		if err := s.manager.StageField(c.Field, normalizeValue(c.Field, c.Value)); err != nil {
			s.manager.Cancel()
			return edit.SaveResult{}, err
		}
	}
	if location != nil {
		if err := s.manager.StageLocation(location.Location, location.Latitude, location.Longitude); err != nil {
			s.manager.Cancel()
			return edit.SaveResult{}, err
		}
	}

	return s.manager.Save(ctx)
}

// DeleteActivity removes an activity through the persistence collaborator
func (s *EditService) DeleteActivity(ctx context.Context, id int64) error {
	return s.activities.DeleteActivity(ctx, id)
}

func timelineItem(a *models.Activity) *models.TimelineItem {
	return &models.TimelineItem{
		ID:          a.ID,
		Kind:        models.ItemKindActivity,
		Category:    a.Category,
		Title:       a.Title,
		Description: a.Description,
		Location:    a.Location,
		Latitude:    a.Latitude,
		Longitude:   a.Longitude,
		StartTime:   a.StartTime,
		EndTime:     a.EndTime,
		OrderIndex:  a.OrderIndex,
		Metadata:    a.Metadata,
	}
}

// normalizeValue coerces JSON-decoded numbers into the shapes the timestamp
// fields expect
func normalizeValue(field string, value any) any {
	switch field {
	case edit.FieldStartTime, edit.FieldEndTime:
		if f, ok := value.(float64); ok {
			return int64(f)
		}
	}
	return value
}
