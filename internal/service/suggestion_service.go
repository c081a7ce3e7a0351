package service

import (
	"github.com/skullgoth/opentripboard-sub000/internal/models"
	"github.com/skullgoth/opentripboard-sub000/internal/repository"
)

// SuggestionService handles business logic for suggestions
type SuggestionService struct {
	repo *repository.SuggestionRepository
}

// NewSuggestionService creates a new suggestion service
func NewSuggestionService(repo *repository.SuggestionRepository) *SuggestionService {
	return &SuggestionService{repo: repo}
}

// GetSuggestions retrieves a trip's suggestions
func (s *SuggestionService) GetSuggestions(tripID int64, filter models.SuggestionFilter) ([]models.Suggestion, error) {
	return s.repo.GetSuggestions(tripID, filter)
}

// CreateSuggestion creates a new pending suggestion
func (s *SuggestionService) CreateSuggestion(sg *models.Suggestion) (int64, error) {
	if sg.Category == "" {
		sg.Category = models.CategoryOther
	}
	sg.Status = models.SuggestionPending
	return s.repo.CreateSuggestion(sg)
}

// Vote records a vote on a suggestion
func (s *SuggestionService) Vote(id int64, up bool) error {
	return s.repo.Vote(id, up)
}

// SetStatus accepts or rejects a suggestion
func (s *SuggestionService) SetStatus(id int64, status string) error {
	return s.repo.SetStatus(id, status)
}

// DeleteSuggestion removes a suggestion
func (s *SuggestionService) DeleteSuggestion(id int64) error {
	return s.repo.DeleteSuggestion(id)
}
