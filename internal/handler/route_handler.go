package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/skullgoth/opentripboard-sub000/internal/models"
	"github.com/skullgoth/opentripboard-sub000/internal/routing"
	"github.com/skullgoth/opentripboard-sub000/pkg/response"
)

// RouteHandler proxies single route lookups to the routing collaborator,
// mostly for the map layer's segment previews
type RouteHandler struct {
	router routing.Router
}

// NewRouteHandler creates a new route handler
func NewRouteHandler(router routing.Router) *RouteHandler {
	return &RouteHandler{router: router}
}

// GetRoute handles GET /api/v1/route
func (h *RouteHandler) GetRoute(c *gin.Context) {
	var req models.RouteRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid route parameters", err)
		return
	}

	route, err := h.router.Route(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, routing.ErrInvalidRequest):
			response.Error(c, http.StatusBadRequest, "Invalid route request", err)
		case errors.Is(err, routing.ErrRateLimited):
			response.Error(c, http.StatusTooManyRequests, "Routing rate limit exceeded", err)
		default:
			response.Error(c, http.StatusBadGateway, "Routing service unavailable", err)
		}
		return
	}

	response.Success(c, route)
}
