package edit

import "github.com/skullgoth/opentripboard-sub000/internal/models"

// Well-known editable field names shared by every category
const (
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldCategory    = "category"
	FieldLocation    = "location"
	FieldLatitude    = "latitude"
	FieldLongitude   = "longitude"
	FieldStartTime   = "startTime"
	FieldEndTime     = "endTime"
)

// getField reads a named field off the item. Unknown names resolve through
// the open metadata map.
func getField(item *models.TimelineItem, name string) any {
	switch name {
	case FieldTitle:
		return item.Title
	case FieldDescription:
		return item.Description
	case FieldCategory:
		return item.Category
	case FieldLocation:
		return item.Location
	case FieldLatitude:
		return item.Latitude
	case FieldLongitude:
		return item.Longitude
	case FieldStartTime:
		return item.StartTime
	case FieldEndTime:
		return item.EndTime
	}
	if item.Metadata == nil {
		return nil
	}
	return item.Metadata[name]
}

// setField writes a named field on the item, keeping the displayed record
// in step with staged or reverted values
func setField(item *models.TimelineItem, name string, value any) {
	switch name {
	case FieldTitle:
		item.Title = asString(value)
	case FieldDescription:
		item.Description = asString(value)
	case FieldCategory:
		item.Category = asString(value)
	case FieldLocation:
		item.Location = asString(value)
	case FieldLatitude:
		item.Latitude = asFloat(value)
	case FieldLongitude:
		item.Longitude = asFloat(value)
	case FieldStartTime:
		item.StartTime = asInt64(value)
	case FieldEndTime:
		item.EndTime = asInt64(value)
	default:
		if item.Metadata == nil {
			item.Metadata = make(map[string]any)
		}
		if value == nil {
			delete(item.Metadata, name)
		} else {
			item.Metadata[name] = value
		}
	}
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}

func asFloat(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	}
	return 0
}

func asInt64(v any) int64 {
	switch n := v.(type) {
	case int64:
		return n
	case int:
		return int64(n)
	case float64:
		return int64(n)
	}
	return 0
}
