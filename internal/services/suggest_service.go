package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	dbm "tripflow/internal/models/db_models"
	"tripflow/internal/models/request_models"
	"tripflow/internal/models/response_models"
	"tripflow/internal/repositories"
	"tripflow/pkg/utils"
)

const defaultSuggestionLimit = 10

type SuggestServiceInterface interface {
	SuggestForTrip(ctx context.Context, tripID, accountID string, request request_models.SuggestionRequest) (*response_models.SuggestionResponse, error)
}

type SuggestService struct {
	tripService TripServiceInterface
	embeddings  utils.EmbeddingClientInterface
	catalogRepo repositories.PoiEmbeddingRepository
	planner     utils.PlanGeneratorInterface
}

func NewSuggestService(
	tripService TripServiceInterface,
	embeddings utils.EmbeddingClientInterface,
	catalogRepo repositories.PoiEmbeddingRepository,
	planner utils.PlanGeneratorInterface,
) SuggestServiceInterface {
	return &SuggestService{
		tripService: tripService,
		embeddings:  embeddings,
		catalogRepo: catalogRepo,
		planner:     planner,
	}
}

// SuggestForTrip searches the place catalog by embedding similarity and
// then asks Gemini to arrange the hits into a day-by-day plan. When the
// model is down or returns junk, the raw hits still go out.
func (s *SuggestService) SuggestForTrip(ctx context.Context, tripID, accountID string, request request_models.SuggestionRequest) (*response_models.SuggestionResponse, error) {
	trip, err := s.tripService.AuthorizeTripAccess(ctx, tripID, accountID, false)
	if err != nil {
		return nil, err
	}

	query := request.Query
	if len(request.Interests) > 0 {
		query = fmt.Sprintf("%s. Interests: %s", query, strings.Join(request.Interests, ", "))
	}

	limit := request.Limit
	if limit <= 0 {
		limit = defaultSuggestionLimit
	}

	vector, err := s.embeddings.GetEmbedding(ctx, query)
	if err != nil {
		log.Printf("embedding for suggestion query failed: %v", err)
		return nil, utils.ErrSuggestionUnavailable
	}

	matches, err := s.catalogRepo.SearchByVector(ctx, vector, limit)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	resp := &response_models.SuggestionResponse{
		Source: "vector",
		Hits:   toCatalogMatches(matches),
	}
	if len(matches) == 0 {
		return resp, nil
	}

	days, err := s.arrangeWithGemini(ctx, trip, matches)
	if err != nil {
		log.Printf("gemini suggestion pass failed, serving raw hits: %v", err)
		return resp, nil
	}

	resp.Source = "gemini"
	resp.Days = days
	return resp, nil
}

// suggestedPlan is the shape Gemini is asked to produce.
type suggestedPlan struct {
	Days []struct {
		DayNumber int    `json:"day_number"`
		Theme     string `json:"theme"`
		Items     []struct {
			PoiID  string `json:"poi_id"`
			Name   string `json:"name"`
			Reason string `json:"reason"`
		} `json:"items"`
	} `json:"days"`
}

func (s *SuggestService) arrangeWithGemini(ctx context.Context, trip *dbm.Trip, matches []repositories.CatalogMatch) ([]response_models.SuggestedDayResponse, error) {
	raw, err := s.planner.GenerateJSON(ctx, buildSuggestionPrompt(trip, matches))
	if err != nil {
		return nil, err
	}

	var plan suggestedPlan
	if err := json.Unmarshal([]byte(raw), &plan); err != nil {
		return nil, fmt.Errorf("unparseable plan: %w", err)
	}

	known := make(map[string]string, len(matches))
	for _, m := range matches {
		known[m.PoiID] = m.Name
	}

	out := make([]response_models.SuggestedDayResponse, 0, len(plan.Days))
	for _, day := range plan.Days {
		dayResp := response_models.SuggestedDayResponse{
			DayNumber: day.DayNumber,
			Theme:     day.Theme,
		}
		for _, item := range day.Items {
			// Hallucinated ids are dropped rather than surfaced.
			name, ok := known[item.PoiID]
			if !ok {
				continue
			}
			dayResp.Items = append(dayResp.Items, response_models.SuggestedItemResponse{
				PoiID:  item.PoiID,
				Name:   name,
				Reason: item.Reason,
			})
		}
		if len(dayResp.Items) > 0 {
			out = append(out, dayResp)
		}
	}

	if len(out) == 0 {
		return nil, fmt.Errorf("plan references no known places")
	}
	return out, nil
}

func buildSuggestionPrompt(trip *dbm.Trip, matches []repositories.CatalogMatch) string {
	dates := utils.EnumerateDates(trip.StartDate, trip.EndDate)

	var sb strings.Builder
	sb.WriteString("You are a travel planner. Arrange the candidate places below into a day-by-day suggestion for the trip.\n\n")
	sb.WriteString(fmt.Sprintf("Trip: %q, %d day(s) (%s to %s).\n", trip.Title, len(dates), dates[0], dates[len(dates)-1]))

	if len(trip.Destinations) > 0 {
		names := make([]string, 0, len(trip.Destinations))
		for _, d := range trip.Destinations {
			names = append(names, d.Name)
		}
		sb.WriteString(fmt.Sprintf("Destinations: %s.\n", strings.Join(names, ", ")))
	}

	sb.WriteString("\nCandidate places:\n")
	for _, m := range matches {
		sb.WriteString(fmt.Sprintf("POI_ID: %s | Name: %s | Category: %s", m.PoiID, m.Name, m.Category))
		if len(m.Tags) > 0 {
			sb.WriteString(fmt.Sprintf(" | Tags: %s", strings.Join(m.Tags, ", ")))
		}
		if m.Description != "" {
			sb.WriteString(fmt.Sprintf(" | %s", m.Description))
		}
		sb.WriteString("\n")
	}

	sb.WriteString(fmt.Sprintf(`
Respond with JSON only, exactly this shape:
{"days":[{"day_number":1,"theme":"short theme","items":[{"poi_id":"use POI_ID values verbatim","name":"place name","reason":"one sentence"}]}]}
Use day_number 1..%d. Use only POI_ID values from the candidate list. Do not invent places.`, len(dates)))

	return sb.String()
}

func toCatalogMatches(matches []repositories.CatalogMatch) []response_models.CatalogMatchResponse {
	out := make([]response_models.CatalogMatchResponse, 0, len(matches))
	for _, m := range matches {
		out = append(out, response_models.CatalogMatchResponse{
			PoiID:                m.PoiID,
			Name:                 m.Name,
			Description:          m.Description,
			City:                 m.City,
			Country:              m.Country,
			Category:             m.Category,
			Tags:                 m.Tags,
			VisitDurationMinutes: m.VisitDurationMinutes,
			Similarity:           m.Similarity,
		})
	}
	return out
}
