package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/skullgoth/opentripboard-sub000/internal/service"
	"github.com/skullgoth/opentripboard-sub000/pkg/response"
)

// TimelineHandler exposes the unified timeline view
type TimelineHandler struct {
	service *service.TimelineService
}

// NewTimelineHandler creates a new timeline handler
func NewTimelineHandler(service *service.TimelineService) *TimelineHandler {
	return &TimelineHandler{service: service}
}

// GetTimeline handles GET /api/v1/trips/:id/timeline. With ?wait=true the
// response carries fully resolved transport totals; otherwise resolution
// continues in the background and totals fill in on subsequent reads.
func (h *TimelineHandler) GetTimeline(c *gin.Context) {
	tripID, err := parseID(c, "id")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid trip ID", err)
		return
	}

	wait := c.Query("wait") == "true"

	view, err := h.service.GetTimeline(c.Request.Context(), tripID, wait)
	if err != nil {
		if errors.Is(err, service.ErrTripNotFound) {
			response.NotFound(c, "Trip not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "Failed to build timeline", err)
		return
	}

	response.Success(c, view)
}
