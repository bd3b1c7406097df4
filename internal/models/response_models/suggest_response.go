package response_models

// SuggestionResponse carries either a Gemini-written day plan or, when the
// model is unavailable, the raw vector-search hits it would have been built
// from. Source says which one the client got.
type SuggestionResponse struct {
	Source string                  `json:"source"` // "gemini" | "vector"
	Days   []SuggestedDayResponse  `json:"days,omitempty"`
	Hits   []CatalogMatchResponse  `json:"hits"`
}

type SuggestedDayResponse struct {
	DayNumber int                     `json:"day_number"`
	Theme     string                  `json:"theme"`
	Items     []SuggestedItemResponse `json:"items"`
}

type SuggestedItemResponse struct {
	PoiID  string `json:"poi_id"`
	Name   string `json:"name"`
	Reason string `json:"reason"`
}

type CatalogMatchResponse struct {
	PoiID                string   `json:"poi_id"`
	Name                 string   `json:"name"`
	Description          string   `json:"description"`
	City                 string   `json:"city"`
	Country              string   `json:"country"`
	Category             string   `json:"category"`
	Tags                 []string `json:"tags"`
	VisitDurationMinutes int      `json:"visit_duration_minutes"`
	Similarity           float64  `json:"similarity"`
}
