package models

import "time"

// Suggestion status values
const (
	SuggestionPending  = "pending"
	SuggestionAccepted = "accepted"
	SuggestionRejected = "rejected"
)

// Suggestion represents a proposed itinerary entry awaiting a group
// decision. Only pending suggestions enter the timeline; accepted and
// rejected ones live in the history view.
type Suggestion struct {
	ID     int64 `json:"id" db:"id"`
	TripID int64 `json:"trip_id" db:"trip_id"`

	Category    string `json:"category" db:"category"`
	Title       string `json:"title" db:"title" binding:"required"`
	Description string `json:"description,omitempty" db:"description"`

	Location  string  `json:"location,omitempty" db:"location"`
	Latitude  float64 `json:"latitude,omitempty" db:"latitude"`
	Longitude float64 `json:"longitude,omitempty" db:"longitude"`

	StartTime int64 `json:"start_time,omitempty" db:"start_time"`
	EndTime   int64 `json:"end_time,omitempty" db:"end_time"`

	OrderIndex *int `json:"order_index,omitempty" db:"order_index"`

	Metadata map[string]any `json:"metadata,omitempty" db:"metadata_json"`

	Status      string `json:"status" db:"status"`
	UpVotes     int    `json:"up_votes" db:"up_votes"`
	DownVotes   int    `json:"down_votes" db:"down_votes"`
	SuggestedBy int64  `json:"suggested_by,omitempty" db:"suggested_by"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
