package timeline

import "github.com/skullgoth/opentripboard-sub000/internal/models"

// PrepareItems normalizes raw activity and suggestion records into the
// unified timeline item shape. Every activity enters; only pending
// suggestions do, accepted and rejected ones belong to the history view.
func PrepareItems(activities []models.Activity, suggestions []models.Suggestion) []models.TimelineItem {
	items := make([]models.TimelineItem, 0, len(activities)+len(suggestions))

	for i := range activities {
		items = append(items, itemFromActivity(&activities[i]))
	}
	for i := range suggestions {
		s := &suggestions[i]
		if s.Status != models.SuggestionPending {
			continue
		}
		items = append(items, itemFromSuggestion(s))
	}

	return items
}

func itemFromActivity(a *models.Activity) models.TimelineItem {
	return models.TimelineItem{
		ID:          a.ID,
		Kind:        models.ItemKindActivity,
		Category:    a.Category,
		Title:       a.Title,
		Description: a.Description,
		Location:    a.Location,
		Latitude:    a.Latitude,
		Longitude:   a.Longitude,
		StartTime:   a.StartTime,
		EndTime:     a.EndTime,
		OrderIndex:  a.OrderIndex,
		Metadata:    a.Metadata,
	}
}

func itemFromSuggestion(s *models.Suggestion) models.TimelineItem {
	return models.TimelineItem{
		ID:          s.ID,
		Kind:        models.ItemKindSuggestion,
		Category:    s.Category,
		Title:       s.Title,
		Description: s.Description,
		Location:    s.Location,
		Latitude:    s.Latitude,
		Longitude:   s.Longitude,
		StartTime:   s.StartTime,
		EndTime:     s.EndTime,
		OrderIndex:  s.OrderIndex,
		Metadata:    s.Metadata,
		UpVotes:     s.UpVotes,
		DownVotes:   s.DownVotes,
	}
}
