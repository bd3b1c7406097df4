package response_models

type TripResponse struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Status    string `json:"status"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`

	TransportProfile        string  `json:"transport_profile"`
	MaxFoodPerDay           int     `json:"max_food_per_day"`
	MaxHoursPerDay          float64 `json:"max_hours_per_day"`
	ClusterThresholdMinutes float64 `json:"cluster_threshold_minutes"`

	Days         []TripDayResponse     `json:"days,omitempty"`
	Members      []TripMemberResponse  `json:"members,omitempty"`
	Destinations []DestinationResponse `json:"destinations,omitempty"`
}

type TripDayResponse struct {
	ID        string `json:"id"`
	Date      string `json:"date"`
	DayNumber int    `json:"day_number"`
}

type TripMemberResponse struct {
	AccountID string `json:"account_id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
}

type DestinationResponse struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Country   string   `json:"country"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	Position  int      `json:"position"`
}
