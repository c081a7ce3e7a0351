package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/skullgoth/opentripboard-sub000/internal/middleware"
	"github.com/skullgoth/opentripboard-sub000/internal/models"
	"github.com/skullgoth/opentripboard-sub000/internal/service"
	"github.com/skullgoth/opentripboard-sub000/pkg/response"
)

// SuggestionHandler handles HTTP requests for suggestions
type SuggestionHandler struct {
	service *service.SuggestionService
}

// NewSuggestionHandler creates a new suggestion handler
func NewSuggestionHandler(service *service.SuggestionService) *SuggestionHandler {
	return &SuggestionHandler{service: service}
}

// GetSuggestions handles GET /api/v1/trips/:id/suggestions
func (h *SuggestionHandler) GetSuggestions(c *gin.Context) {
	tripID, err := parseID(c, "id")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid trip ID", err)
		return
	}

	var filter models.SuggestionFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid query parameters", err)
		return
	}

	suggestions, err := h.service.GetSuggestions(tripID, filter)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to get suggestions", err)
		return
	}

	response.Success(c, suggestions)
}

// CreateSuggestion handles POST /api/v1/trips/:id/suggestions
func (h *SuggestionHandler) CreateSuggestion(c *gin.Context) {
	tripID, err := parseID(c, "id")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid trip ID", err)
		return
	}

	var suggestion models.Suggestion
	if err := c.ShouldBindJSON(&suggestion); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid suggestion payload", err)
		return
	}
	suggestion.TripID = tripID
	suggestion.SuggestedBy = middleware.UserID(c)

	id, err := h.service.CreateSuggestion(&suggestion)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to create suggestion", err)
		return
	}
	suggestion.ID = id

	response.Success(c, suggestion)
}

// voteRequest is the vote payload
type voteRequest struct {
	Up bool `json:"up"`
}

// Vote handles POST /api/v1/suggestions/:sid/vote
func (h *SuggestionHandler) Vote(c *gin.Context) {
	id, err := parseID(c, "sid")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid suggestion ID", err)
		return
	}

	var req voteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid vote payload", err)
		return
	}

	if err := h.service.Vote(id, req.Up); err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to record vote", err)
		return
	}

	response.Success(c, gin.H{"voted": id})
}

// statusRequest is the status change payload
type statusRequest struct {
	Status string `json:"status" binding:"required"`
}

// SetStatus handles PUT /api/v1/suggestions/:sid/status
func (h *SuggestionHandler) SetStatus(c *gin.Context) {
	id, err := parseID(c, "sid")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid suggestion ID", err)
		return
	}

	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid status payload", err)
		return
	}

	if err := h.service.SetStatus(id, req.Status); err != nil {
		response.Error(c, http.StatusBadRequest, "Failed to update status", err)
		return
	}

	response.Success(c, gin.H{"id": id, "status": req.Status})
}

// DeleteSuggestion handles DELETE /api/v1/suggestions/:sid
func (h *SuggestionHandler) DeleteSuggestion(c *gin.Context) {
	id, err := parseID(c, "sid")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid suggestion ID", err)
		return
	}

	if err := h.service.DeleteSuggestion(id); err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to delete suggestion", err)
		return
	}

	response.Success(c, gin.H{"deleted": id})
}
