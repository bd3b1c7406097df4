package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tripflow/internal/models/request_models"
	"tripflow/internal/services"
	"tripflow/pkg/utils"
)

type SuggestController struct {
	suggestService services.SuggestServiceInterface
}

func NewSuggestController(suggestService services.SuggestServiceInterface) *SuggestController {
	return &SuggestController{
		suggestService: suggestService,
	}
}

// SuggestForTrip godoc
// @Summary Suggest POIs for a trip
// @Description Search the POI catalog semantically and arrange matches over the trip days. Falls back to raw matches when the arranging model is unavailable.
// @Tags Suggestions
// @Accept json
// @Produce json
// @Param tripId path string true "Trip ID"
// @Param request body request_models.SuggestionRequest true "Suggestion query"
// @Success 200 {object} response_models.SuggestionResponse
// @Failure 503 {object} utils.APIResponse
// @Security BearerAuth
// @Router /trips/{tripId}/suggestions [post]
func (s *SuggestController) SuggestForTrip(c *gin.Context) {
	tripID := c.Param("tripId")
	if tripID == "" {
		utils.RespondError(c, http.StatusBadRequest, "Trip ID is required")
		return
	}

	var req request_models.SuggestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	accountID := c.GetString("user_id")

	suggestion, err := s.suggestService.SuggestForTrip(c.Request.Context(), tripID, accountID, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, suggestion, "Suggestions generated successfully")
}
