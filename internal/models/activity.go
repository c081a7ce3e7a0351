package models

import "time"

// Activity categories. The category controls which metadata fields are
// editable and whether multi-day expansion applies.
const (
	CategoryHotel      = "hotel"
	CategoryLodging    = "lodging"
	CategoryCamping    = "camping"
	CategoryFlight     = "flight"
	CategoryTrain      = "train"
	CategoryRestaurant = "restaurant"
	CategoryMuseum     = "museum"
	CategoryOther      = "other"
)

// IsLodgingCategory reports whether a category is eligible for multi-day
// expansion (one occurrence per calendar night spanned)
func IsLodgingCategory(category string) bool {
	switch category {
	case CategoryHotel, CategoryLodging, CategoryCamping:
		return true
	}
	return false
}

// Activity represents a confirmed itinerary entry
type Activity struct {
	ID     int64 `json:"id" db:"id"`
	TripID int64 `json:"trip_id" db:"trip_id"`

	Category    string `json:"category" db:"category"`
	Title       string `json:"title" db:"title" binding:"required"`
	Description string `json:"description,omitempty" db:"description"`

	Location  string  `json:"location,omitempty" db:"location"`
	Latitude  float64 `json:"latitude,omitempty" db:"latitude"`
	Longitude float64 `json:"longitude,omitempty" db:"longitude"`

	// Unix timestamps (seconds). Zero means absent; an activity without a
	// start time never enters the day timeline.
	StartTime int64 `json:"start_time,omitempty" db:"start_time"`
	EndTime   int64 `json:"end_time,omitempty" db:"end_time"`

	// Manual ordering within a day. Nil means unordered (sorts as 999).
	OrderIndex *int `json:"order_index,omitempty" db:"order_index"`

	// Open category-specific fields (check-in dates, party size, ...) plus
	// the persisted transportToNext segment. Stored as a JSON column.
	Metadata map[string]any `json:"metadata,omitempty" db:"metadata_json"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
