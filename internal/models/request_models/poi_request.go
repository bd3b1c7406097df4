package request_models

type CreatePOIRequest struct {
	Name                 string   `json:"name" binding:"required,min=1,max=200"`
	Address              string   `json:"address"`
	Notes                string   `json:"notes"`
	Latitude             *float64 `json:"latitude" binding:"omitempty,min=-90,max=90"`
	Longitude            *float64 `json:"longitude" binding:"omitempty,min=-180,max=180"`
	Category             string   `json:"category"`
	Tags                 []string `json:"tags"`
	VisitDurationMinutes int      `json:"visit_duration_minutes" binding:"omitempty,min=1"`

	IsAnchored bool `json:"is_anchored"`
	// "2006-01-02" / "15:04", only read when IsAnchored is set
	AnchoredDate string `json:"anchored_date"`
	AnchoredTime string `json:"anchored_time"`
}

type UpdatePOIRequest struct {
	Name                 *string  `json:"name" binding:"omitempty,min=1,max=200"`
	Address              *string  `json:"address"`
	Notes                *string  `json:"notes"`
	Latitude             *float64 `json:"latitude" binding:"omitempty,min=-90,max=90"`
	Longitude            *float64 `json:"longitude" binding:"omitempty,min=-180,max=180"`
	Category             *string  `json:"category"`
	Tags                 []string `json:"tags"`
	VisitDurationMinutes *int     `json:"visit_duration_minutes" binding:"omitempty,min=1"`
}

type AnchorPOIRequest struct {
	Date string `json:"date" binding:"required"`
	Time string `json:"time"`
}
