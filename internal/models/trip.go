package models

import "time"

// Trip represents a planned trip, the owning container for activities,
// suggestions and the aggregated timeline view
type Trip struct {
	ID int64 `json:"id" db:"id"`

	Name        string `json:"name" db:"name" binding:"required"`
	Description string `json:"description,omitempty" db:"description"`
	Destination string `json:"destination,omitempty" db:"destination"`

	// Date range, YYYY-MM-DD, inclusive on both ends. Either bound may be
	// empty; an empty bound disables date-range pre-seeding in the timeline.
	StartDate string `json:"start_date,omitempty" db:"start_date"`
	EndDate   string `json:"end_date,omitempty" db:"end_date"`

	OwnerID int64 `json:"owner_id,omitempty" db:"owner_id"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// HasDateRange reports whether both range bounds are configured
func (t *Trip) HasDateRange() bool {
	return t.StartDate != "" && t.EndDate != ""
}

// TripsResponse represents a paginated response of trips
type TripsResponse struct {
	Data       []Trip `json:"data"`
	Total      int64  `json:"total"`
	Page       int    `json:"page"`
	PageSize   int    `json:"pageSize"`
	TotalPages int    `json:"totalPages"`
}
