package timeline

import "time"

// DateLayout is the calendar date format used throughout the timeline
const DateLayout = "2006-01-02"

// CalendarDate converts a Unix timestamp (seconds) to its UTC calendar date.
// Returns "" for the zero sentinel.
func CalendarDate(ts int64) string {
	if ts == 0 {
		return ""
	}
	return time.Unix(ts, 0).UTC().Format(DateLayout)
}

// ParseDate parses a YYYY-MM-DD date, reporting ok=false on malformed input
func ParseDate(date string) (time.Time, bool) {
	t, err := time.Parse(DateLayout, date)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// AddDays returns date shifted by n calendar days
func AddDays(date string, n int) string {
	t, ok := ParseDate(date)
	if !ok {
		return date
	}
	return t.AddDate(0, 0, n).Format(DateLayout)
}

// DaysBetween returns the inclusive day count from start to end
// (same day = 1). Returns 0 when either date is malformed or end precedes
// start.
func DaysBetween(start, end string) int {
	s, ok := ParseDate(start)
	if !ok {
		return 0
	}
	e, ok := ParseDate(end)
	if !ok {
		return 0
	}
	if e.Before(s) {
		return 0
	}
	return int(e.Sub(s).Hours()/24) + 1
}

// DateRange enumerates every calendar date from start to end inclusive.
// Empty when either bound is malformed or the range is inverted.
func DateRange(start, end string) []string {
	n := DaysBetween(start, end)
	if n == 0 {
		return nil
	}
	dates := make([]string, 0, n)
	for i := 0; i < n; i++ {
		dates = append(dates, AddDays(start, i))
	}
	return dates
}
