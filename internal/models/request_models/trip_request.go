package request_models

type CreateTripRequest struct {
	Title string `json:"title" binding:"required,min=1,max=120"`
	// "2006-01-02"
	StartDate string `json:"start_date" binding:"required"`
	EndDate   string `json:"end_date" binding:"required"`

	TransportProfile        string   `json:"transport_profile" binding:"omitempty,oneof=foot-walking cycling-regular driving-car"`
	MaxFoodPerDay           *int     `json:"max_food_per_day" binding:"omitempty,min=1"`
	MaxHoursPerDay          *float64 `json:"max_hours_per_day" binding:"omitempty,gt=0"`
	ClusterThresholdMinutes *float64 `json:"cluster_threshold_minutes" binding:"omitempty,gt=0"`

	Destinations []DestinationInput `json:"destinations"`
}

type UpdateTripRequest struct {
	Title     *string `json:"title" binding:"omitempty,min=1,max=120"`
	StartDate *string `json:"start_date"`
	EndDate   *string `json:"end_date"`

	TransportProfile        *string  `json:"transport_profile" binding:"omitempty,oneof=foot-walking cycling-regular driving-car"`
	MaxFoodPerDay           *int     `json:"max_food_per_day" binding:"omitempty,min=1"`
	MaxHoursPerDay          *float64 `json:"max_hours_per_day" binding:"omitempty,gt=0"`
	ClusterThresholdMinutes *float64 `json:"cluster_threshold_minutes" binding:"omitempty,gt=0"`
}

type DestinationInput struct {
	Name      string   `json:"name" binding:"required"`
	Country   string   `json:"country"`
	Latitude  *float64 `json:"latitude" binding:"omitempty,min=-90,max=90"`
	Longitude *float64 `json:"longitude" binding:"omitempty,min=-180,max=180"`
}

type InviteMemberRequest struct {
	Email string `json:"email" binding:"required,email"`
	Role  string `json:"role" binding:"required,oneof=editor viewer"`
}
