package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/skullgoth/opentripboard-sub000/internal/models"
	"github.com/skullgoth/opentripboard-sub000/internal/service"
	"github.com/skullgoth/opentripboard-sub000/pkg/response"
)

// ActivityHandler handles HTTP requests for activities
type ActivityHandler struct {
	service *service.ActivityService
	edits   *service.EditService
}

// NewActivityHandler creates a new activity handler
func NewActivityHandler(service *service.ActivityService, edits *service.EditService) *ActivityHandler {
	return &ActivityHandler{service: service, edits: edits}
}

// GetActivities handles GET /api/v1/trips/:id/activities
func (h *ActivityHandler) GetActivities(c *gin.Context) {
	tripID, err := parseID(c, "id")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid trip ID", err)
		return
	}

	var filter models.ActivityFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid query parameters", err)
		return
	}

	activities, err := h.service.GetActivities(tripID, filter)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to get activities", err)
		return
	}

	response.Success(c, activities)
}

// CreateActivity handles POST /api/v1/trips/:id/activities
func (h *ActivityHandler) CreateActivity(c *gin.Context) {
	tripID, err := parseID(c, "id")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid trip ID", err)
		return
	}

	var activity models.Activity
	if err := c.ShouldBindJSON(&activity); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid activity payload", err)
		return
	}
	activity.TripID = tripID

	id, err := h.service.CreateActivity(&activity)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to create activity", err)
		return
	}
	activity.ID = id

	response.Success(c, activity)
}

// editRequest is the staged multi-field edit payload. Changes commit in
// the order given; location is the compound text+coordinates edit.
type editRequest struct {
	Changes  []service.FieldChange   `json:"changes"`
	Location *service.LocationChange `json:"location"`
}

// EditActivity handles PATCH /api/v1/activities/:aid
func (h *ActivityHandler) EditActivity(c *gin.Context) {
	id, err := parseID(c, "aid")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid activity ID", err)
		return
	}

	var req editRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid edit payload", err)
		return
	}
	if len(req.Changes) == 0 && req.Location == nil {
		response.Error(c, http.StatusBadRequest, "Empty edit batch", nil)
		return
	}

	result, err := h.edits.ApplyEdits(c.Request.Context(), id, req.Changes, req.Location)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to apply edits", err)
		return
	}

	// Partial failure is a successful transaction with per-field outcomes
	response.Success(c, result)
}

// DeleteActivity handles DELETE /api/v1/activities/:aid
func (h *ActivityHandler) DeleteActivity(c *gin.Context) {
	id, err := parseID(c, "aid")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid activity ID", err)
		return
	}

	if err := h.edits.DeleteActivity(c.Request.Context(), id); err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to delete activity", err)
		return
	}

	response.Success(c, gin.H{"deleted": id})
}

// GetFieldSchema handles GET /api/v1/schema/:category, returning the
// editable-field list the edit form renders for a category
func (h *ActivityHandler) GetFieldSchema(c *gin.Context) {
	response.Success(c, h.edits.FieldSchema(c.Param("category")))
}
