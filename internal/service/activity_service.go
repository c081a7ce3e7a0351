package service

import (
	"github.com/skullgoth/opentripboard-sub000/internal/models"
	"github.com/skullgoth/opentripboard-sub000/internal/repository"
)

// ActivityService handles business logic for activities
type ActivityService struct {
	repo *repository.ActivityRepository
}

// NewActivityService creates a new activity service
func NewActivityService(repo *repository.ActivityRepository) *ActivityService {
	return &ActivityService{repo: repo}
}

// GetActivities retrieves a trip's activities
func (s *ActivityService) GetActivities(tripID int64, filter models.ActivityFilter) ([]models.Activity, error) {
	return s.repo.GetActivities(tripID, filter)
}

// GetActivityByID retrieves a single activity
func (s *ActivityService) GetActivityByID(id int64) (*models.Activity, error) {
	return s.repo.GetActivityByID(id)
}

// CreateActivity creates a new activity
func (s *ActivityService) CreateActivity(a *models.Activity) (int64, error) {
	if a.Category == "" {
		a.Category = models.CategoryOther
	}
	return s.repo.CreateActivity(a)
}
