package response_models

type AccommodationResponse struct {
	ID        string   `json:"id"`
	DayNumber int      `json:"day_number"`
	Name      string   `json:"name"`
	Address   string   `json:"address"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}
