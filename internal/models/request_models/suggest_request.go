package request_models

type SuggestionRequest struct {
	Query     string   `json:"query" binding:"required,min=3"`
	Interests []string `json:"interests"`
	Limit     int      `json:"limit" binding:"omitempty,min=1,max=20"`
}
