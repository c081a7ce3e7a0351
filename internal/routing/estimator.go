package routing

import (
	"github.com/golang/geo/s2"

	"github.com/skullgoth/opentripboard-sub000/internal/models"
)

// EarthRadiusKm is Earth's mean radius in kilometers
const EarthRadiusKm = 6371.0

// Average speeds (km/h) used for great-circle estimates
var modeSpeedKmh = map[string]float64{
	models.ModeWalk:  4.5,
	models.ModeBike:  15,
	models.ModeDrive: 65,
	models.ModeTrain: 90,
	models.ModeFly:   750,
	models.ModeBoat:  30,
}

// HaversineKm calculates the great-circle distance between two points in
// kilometers
func HaversineKm(lat1, lng1, lat2, lng2 float64) float64 {
	p1 := s2.LatLngFromDegrees(lat1, lng1)
	p2 := s2.LatLngFromDegrees(lat2, lng2)
	return p1.Distance(p2).Radians() * EarthRadiusKm
}

// ValidCoordinates reports whether both endpoints are plausible lat/lng
// pairs
func ValidCoordinates(req models.RouteRequest) bool {
	from := s2.LatLngFromDegrees(req.FromLat, req.FromLng)
	to := s2.LatLngFromDegrees(req.ToLat, req.ToLng)
	return from.IsValid() && to.IsValid()
}

// Estimate produces a great-circle route estimate for the requested mode.
// Used for air and sea legs, which no road-network provider serves, and as
// the zero-dependency fallback when no routing service is configured.
func Estimate(req models.RouteRequest) *models.RouteResponse {
	distance := HaversineKm(req.FromLat, req.FromLng, req.ToLat, req.ToLng)

	speed, ok := modeSpeedKmh[req.Mode]
	if !ok {
		speed = modeSpeedKmh[models.ModeDrive]
	}

	// Flights carry fixed taxi/boarding overhead on top of cruise time
	durationMin := distance / speed * 60
	if req.Mode == models.ModeFly {
		durationMin += 45
	}

	return &models.RouteResponse{
		DistanceKm:  distance,
		DurationMin: durationMin,
		Geometry: [][2]float64{
			{req.FromLng, req.FromLat},
			{req.ToLng, req.ToLat},
		},
		Provider: "greatcircle",
	}
}
