package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/skullgoth/opentripboard-sub000/internal/middleware"
	"github.com/skullgoth/opentripboard-sub000/internal/models"
	"github.com/skullgoth/opentripboard-sub000/internal/service"
	"github.com/skullgoth/opentripboard-sub000/pkg/response"
)

// TripHandler handles HTTP requests for trips
type TripHandler struct {
	service  *service.TripService
	timeline *service.TimelineService
}

// NewTripHandler creates a new trip handler
func NewTripHandler(service *service.TripService, timeline *service.TimelineService) *TripHandler {
	return &TripHandler{service: service, timeline: timeline}
}

// GetTrips handles GET /api/v1/trips
func (h *TripHandler) GetTrips(c *gin.Context) {
	var filter models.TripFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid query parameters", err)
		return
	}

	trips, total, err := h.service.GetTrips(filter)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to get trips", err)
		return
	}

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 100
	}
	totalPages := int(total) / filter.PageSize
	if int(total)%filter.PageSize > 0 {
		totalPages++
	}

	response.Success(c, models.TripsResponse{
		Data:       trips,
		Total:      total,
		Page:       filter.Page,
		PageSize:   filter.PageSize,
		TotalPages: totalPages,
	})
}

// GetTripByID handles GET /api/v1/trips/:id
func (h *TripHandler) GetTripByID(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid trip ID", err)
		return
	}

	trip, err := h.service.GetTripByID(id)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to get trip", err)
		return
	}
	if trip == nil {
		response.NotFound(c, "Trip not found")
		return
	}

	response.Success(c, trip)
}

// CreateTrip handles POST /api/v1/trips
func (h *TripHandler) CreateTrip(c *gin.Context) {
	var trip models.Trip
	if err := c.ShouldBindJSON(&trip); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid trip payload", err)
		return
	}
	trip.OwnerID = middleware.UserID(c)

	id, err := h.service.CreateTrip(&trip)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to create trip", err)
		return
	}
	trip.ID = id

	response.Success(c, trip)
}

// UpdateTrip handles PUT /api/v1/trips/:id
func (h *TripHandler) UpdateTrip(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid trip ID", err)
		return
	}

	var trip models.Trip
	if err := c.ShouldBindJSON(&trip); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid trip payload", err)
		return
	}
	trip.ID = id

	if err := h.service.UpdateTrip(&trip); err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to update trip", err)
		return
	}

	response.Success(c, trip)
}

// DeleteTrip handles DELETE /api/v1/trips/:id
func (h *TripHandler) DeleteTrip(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid trip ID", err)
		return
	}

	if err := h.service.DeleteTrip(id); err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to delete trip", err)
		return
	}
	h.timeline.CloseTrip(id)

	response.Success(c, gin.H{"deleted": id})
}

func parseID(c *gin.Context, param string) (int64, error) {
	return strconv.ParseInt(c.Param(param), 10, 64)
}
