package models

// TripFilter represents filter parameters for querying trips
type TripFilter struct {
	Destination string `form:"destination"`
	FromDate    string `form:"fromDate"` // YYYY-MM-DD, trips ending on/after
	ToDate      string `form:"toDate"`   // YYYY-MM-DD, trips starting on/before
	Page        int    `form:"page"`
	PageSize    int    `form:"pageSize"`
}

// ActivityFilter represents filter parameters for querying activities
type ActivityFilter struct {
	Category  string `form:"category"`
	StartTime int64  `form:"startTime"` // Unix timestamp
	EndTime   int64  `form:"endTime"`   // Unix timestamp
}

// SuggestionFilter represents filter parameters for querying suggestions
type SuggestionFilter struct {
	Status   string `form:"status"` // pending, accepted, rejected
	Category string `form:"category"`
}
