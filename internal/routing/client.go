package routing

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/skullgoth/opentripboard-sub000/internal/models"
)

// Router resolves transit routes between two coordinates
type Router interface {
	Route(ctx context.Context, req models.RouteRequest) (*models.RouteResponse, error)
}

// Client talks to the external routing service. Air and sea modes are
// estimated locally since the road-network provider does not serve them;
// with no base URL configured every mode falls back to the estimator.
type Client struct {
	baseURL string
	client  *http.Client
}

// NewClient creates a routing client. baseURL may be empty to run in
// estimate-only mode.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// Route resolves a single route request
func (c *Client) Route(ctx context.Context, req models.RouteRequest) (*models.RouteResponse, error) {
	if !ValidCoordinates(req) {
		return nil, fmt.Errorf("%w: coordinates out of range", ErrInvalidRequest)
	}
	if req.Mode == "" {
		req.Mode = models.ModeDrive
	}
	if !models.ValidMode(req.Mode) {
		return nil, fmt.Errorf("%w: unknown mode %q", ErrInvalidRequest, req.Mode)
	}

	if c.baseURL == "" || req.Mode == models.ModeFly || req.Mode == models.ModeBoat {
		return Estimate(req), nil
	}

	return c.fetchRoute(ctx, req)
}

func (c *Client) fetchRoute(ctx context.Context, req models.RouteRequest) (*models.RouteResponse, error) {
	q := url.Values{}
	q.Set("fromLat", formatCoord(req.FromLat))
	q.Set("fromLng", formatCoord(req.FromLng))
	q.Set("toLat", formatCoord(req.ToLat))
	q.Set("toLng", formatCoord(req.ToLng))
	q.Set("mode", req.Mode)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/route?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build route request: %w", err)
	}
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrServiceUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, ErrRateLimited
	case resp.StatusCode == http.StatusBadRequest:
		return nil, ErrInvalidRequest
	case resp.StatusCode >= 500:
		return nil, fmt.Errorf("%w: status %d", ErrServiceUnavailable, resp.StatusCode)
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("%w: unexpected status %d", ErrServiceUnavailable, resp.StatusCode)
	}

	var route models.RouteResponse
	if err := json.NewDecoder(resp.Body).Decode(&route); err != nil {
		return nil, fmt.Errorf("failed to decode route response: %w", err)
	}

	return &route, nil
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}
