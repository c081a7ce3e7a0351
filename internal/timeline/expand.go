package timeline

import "github.com/skullgoth/opentripboard-sub000/internal/models"

// Expand turns timeline items into per-day occurrences. A lodging item
// whose end time falls on a later calendar day produces one occurrence per
// day spanned, check-in through check-out inclusive; everything else
// produces exactly one. Items without a start time produce none.
func Expand(items []models.TimelineItem) []models.Occurrence {
	var occurrences []models.Occurrence
	for i := range items {
		occurrences = append(occurrences, ExpandItem(&items[i])...)
	}
	return occurrences
}

// ExpandItem expands a single item into its occurrences
func ExpandItem(item *models.TimelineItem) []models.Occurrence {
	startDate := CalendarDate(item.StartTime)
	if startDate == "" {
		return nil
	}

	endDate := CalendarDate(item.EndTime)
	if !models.IsLodgingCategory(item.Category) || endDate == "" || endDate == startDate {
		return []models.Occurrence{{
			Item:        item,
			DisplayDate: startDate,
			TotalDays:   1,
			IsFirstDay:  true,
			IsLastDay:   true,
		}}
	}

	total := DaysBetween(startDate, endDate)
	if total <= 1 {
		// Inverted range, treat as single-day
		return []models.Occurrence{{
			Item:        item,
			DisplayDate: startDate,
			TotalDays:   1,
			IsFirstDay:  true,
			IsLastDay:   true,
		}}
	}

	occurrences := make([]models.Occurrence, 0, total)
	for day := 0; day < total; day++ {
		date := AddDays(startDate, day)
		occurrences = append(occurrences, models.Occurrence{
			Item:        item,
			DisplayDate: date,
			IsMultiDay:  true,
			DayIndex:    day,
			TotalDays:   total,
			IsFirstDay:  day == 0,
			IsLastDay:   date == endDate,
		})
	}
	return occurrences
}
