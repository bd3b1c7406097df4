package request_models

// ScheduleRequest overrides the trip's stored scheduling defaults for one
// run. Zero fields fall back to the trip.
type ScheduleRequest struct {
	TransportProfile        string   `json:"transport_profile" binding:"omitempty,oneof=foot-walking cycling-regular driving-car"`
	MaxFoodPerDay           *int     `json:"max_food_per_day" binding:"omitempty,min=1"`
	MaxHoursPerDay          *float64 `json:"max_hours_per_day" binding:"omitempty,gt=0"`
	ClusterThresholdMinutes *float64 `json:"cluster_threshold_minutes" binding:"omitempty,gt=0"`
}
