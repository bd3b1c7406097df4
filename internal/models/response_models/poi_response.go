package response_models

type POIResponse struct {
	ID                   string   `json:"id"`
	Name                 string   `json:"name"`
	Address              string   `json:"address"`
	Notes                string   `json:"notes"`
	Latitude             *float64 `json:"latitude"`
	Longitude            *float64 `json:"longitude"`
	Category             string   `json:"category"`
	Tags                 []string `json:"tags"`
	VisitDurationMinutes int      `json:"visit_duration_minutes"`

	IsAnchored   bool   `json:"is_anchored"`
	AnchoredDate string `json:"anchored_date,omitempty"`
	AnchoredTime string `json:"anchored_time,omitempty"`

	ScheduledDate string `json:"scheduled_date,omitempty"`
	DayOrder      *int   `json:"day_order,omitempty"`
}
