package edit

// Field input kinds, used by the rendering layer to pick a widget
const (
	FieldText   = "text"
	FieldDate   = "date"
	FieldTime   = "time"
	FieldNumber = "number"
)

// FieldDescriptor describes one editable metadata field of a category
type FieldDescriptor struct {
	Name  string `json:"name"`
	Label string `json:"label"`
	Type  string `json:"type"`
}

// categoryFields maps a category to its ordered metadata field list.
// Unmapped categories fall back to the generic schema.
var categoryFields = map[string][]FieldDescriptor{
	"hotel": {
		{Name: "checkInDate", Label: "Check-in", Type: FieldDate},
		{Name: "checkOutDate", Label: "Check-out", Type: FieldDate},
		{Name: "confirmationCode", Label: "Confirmation code", Type: FieldText},
	},
	"lodging": {
		{Name: "checkInDate", Label: "Check-in", Type: FieldDate},
		{Name: "checkOutDate", Label: "Check-out", Type: FieldDate},
		{Name: "confirmationCode", Label: "Confirmation code", Type: FieldText},
	},
	"camping": {
		{Name: "checkInDate", Label: "Arrival", Type: FieldDate},
		{Name: "checkOutDate", Label: "Departure", Type: FieldDate},
		{Name: "pitchNumber", Label: "Pitch", Type: FieldText},
	},
	"flight": {
		{Name: "flightNumber", Label: "Flight number", Type: FieldText},
		{Name: "departureAirport", Label: "From airport", Type: FieldText},
		{Name: "arrivalAirport", Label: "To airport", Type: FieldText},
		{Name: "confirmationCode", Label: "Booking reference", Type: FieldText},
	},
	"train": {
		{Name: "trainNumber", Label: "Train number", Type: FieldText},
		{Name: "departureStation", Label: "From station", Type: FieldText},
		{Name: "arrivalStation", Label: "To station", Type: FieldText},
	},
	"restaurant": {
		{Name: "reservationTime", Label: "Reservation", Type: FieldTime},
		{Name: "partySize", Label: "Party size", Type: FieldNumber},
	},
}

// genericFields is the fallback schema for unmapped categories
var genericFields = []FieldDescriptor{
	{Name: "provider", Label: "Provider", Type: FieldText},
	{Name: "startDate", Label: "Start date", Type: FieldDate},
	{Name: "endDate", Label: "End date", Type: FieldDate},
}

// FieldsFor returns the ordered editable metadata fields for a category
func FieldsFor(category string) []FieldDescriptor {
	if fields, ok := categoryFields[category]; ok {
		return fields
	}
	return genericFields
}
