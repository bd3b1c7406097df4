package request_models

type UpsertAccommodationRequest struct {
	DayNumber int      `json:"day_number" binding:"required,min=1"`
	Name      string   `json:"name" binding:"required,min=1,max=200"`
	Address   string   `json:"address"`
	Latitude  *float64 `json:"latitude" binding:"omitempty,min=-90,max=90"`
	Longitude *float64 `json:"longitude" binding:"omitempty,min=-180,max=180"`
}
