package response_models

// ScheduleStateResponse is the persisted assignment state of a trip,
// grouped by day. POIs inside a day are sorted by their day order.
type ScheduleStateResponse struct {
	TripID      string                 `json:"trip_id"`
	Days        []ScheduledDayResponse `json:"days"`
	Unscheduled []POIResponse          `json:"unscheduled"`
}

type ScheduledDayResponse struct {
	Date          string                 `json:"date"`
	DayNumber     int                    `json:"day_number"`
	Accommodation *AccommodationResponse `json:"accommodation,omitempty"`
	POIs          []POIResponse          `json:"pois"`
}
