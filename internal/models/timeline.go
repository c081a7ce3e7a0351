package models

// Item kinds in the unified timeline
const (
	ItemKindActivity   = "activity"
	ItemKindSuggestion = "suggestion"
)

// UndatedKey is the sentinel bucket key for occurrences without a
// resolvable calendar date. It is always ordered after every dated bucket.
const UndatedKey = "undated"

// DefaultOrderIndex is the sort value assumed when an item carries no
// explicit order index
const DefaultOrderIndex = 999

// TimelineItem is the normalized shape shared by confirmed activities and
// pending suggestions once they enter the unified timeline
type TimelineItem struct {
	ID   int64  `json:"id"`
	Kind string `json:"kind"` // activity | suggestion

	Category    string `json:"category"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`

	Location  string  `json:"location,omitempty"`
	Latitude  float64 `json:"latitude,omitempty"`
	Longitude float64 `json:"longitude,omitempty"`

	StartTime int64 `json:"start_time,omitempty"`
	EndTime   int64 `json:"end_time,omitempty"`

	OrderIndex *int `json:"order_index,omitempty"`

	Metadata map[string]any `json:"metadata,omitempty"`

	// Suggestion-only vote tallies, zero for activities
	UpVotes   int `json:"up_votes,omitempty"`
	DownVotes int `json:"down_votes,omitempty"`
}

// IsSuggestion reports whether the item came from a pending suggestion
func (i *TimelineItem) IsSuggestion() bool {
	return i.Kind == ItemKindSuggestion
}

// EffectiveOrderIndex returns the explicit order index or the default
// sentinel when absent
func (i *TimelineItem) EffectiveOrderIndex() int {
	if i.OrderIndex == nil {
		return DefaultOrderIndex
	}
	return *i.OrderIndex
}

// HasCoordinates reports whether the item carries a usable position
func (i *TimelineItem) HasCoordinates() bool {
	return i.Latitude != 0 || i.Longitude != 0
}

// Occurrence is one calendar-day appearance of a timeline item. Single-day
// items produce one occurrence; multi-day lodging produces one per day
// spanned, all referencing the same underlying item.
type Occurrence struct {
	Item *TimelineItem `json:"item"`

	// YYYY-MM-DD, empty for the undated sentinel bucket
	DisplayDate string `json:"display_date,omitempty"`

	IsMultiDay bool `json:"is_multi_day"`
	DayIndex   int  `json:"day_index"`
	TotalDays  int  `json:"total_days"`
	IsFirstDay bool `json:"is_first_day"`
	IsLastDay  bool `json:"is_last_day"`
}

// IsIntermediateDay reports whether the occurrence is a non-final day of a
// multi-day span. Intermediate days contribute no outgoing transport.
func (o *Occurrence) IsIntermediateDay() bool {
	return o.IsMultiDay && !o.IsLastDay
}

// DayBucket holds the ordered occurrences of a single calendar day
type DayBucket struct {
	Date        string       `json:"date"` // YYYY-MM-DD, or "undated"
	Occurrences []Occurrence `json:"occurrences"`
}

// DaySummary is the per-day transport aggregate exposed alongside buckets
type DaySummary struct {
	Date             string  `json:"date"`
	TotalDurationMin float64 `json:"total_duration_min"`
	TotalDistanceKm  float64 `json:"total_distance_km"`
	ResolvedSegments int     `json:"resolved_segments"`
	PendingSegments  int     `json:"pending_segments"`
}

// TimelineView is the engine output consumed by the rendering layer: one
// bucket per day plus per-day transport summaries
type TimelineView struct {
	TripID    int64                 `json:"trip_id"`
	Buckets   []DayBucket           `json:"buckets"`
	Summaries map[string]DaySummary `json:"summaries,omitempty"`
}
