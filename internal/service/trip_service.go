package service

import (
	"github.com/skullgoth/opentripboard-sub000/internal/models"
	"github.com/skullgoth/opentripboard-sub000/internal/repository"
)

// TripService handles business logic for trips
type TripService struct {
	repo *repository.TripRepository
}

// NewTripService creates a new trip service
func NewTripService(repo *repository.TripRepository) *TripService {
	return &TripService{repo: repo}
}

// GetTrips retrieves trips with filtering and pagination
func (s *TripService) GetTrips(filter models.TripFilter) ([]models.Trip, int64, error) {
	return s.repo.GetTrips(filter)
}

// GetTripByID retrieves a single trip by ID
func (s *TripService) GetTripByID(id int64) (*models.Trip, error) {
	return s.repo.GetTripByID(id)
}

// CreateTrip creates a new trip
func (s *TripService) CreateTrip(t *models.Trip) (int64, error) {
	return s.repo.CreateTrip(t)
}

// UpdateTrip updates a trip's fields
func (s *TripService) UpdateTrip(t *models.Trip) error {
	return s.repo.UpdateTrip(t)
}

// DeleteTrip removes a trip with all its activities and suggestions
func (s *TripService) DeleteTrip(id int64) error {
	return s.repo.DeleteTrip(id)
}
