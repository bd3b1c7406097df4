package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tripflow/internal/models/request_models"
	"tripflow/internal/services"
	"tripflow/pkg/utils"
)

type ScheduleController struct {
	scheduleService services.ScheduleServiceInterface
}

func NewScheduleController(scheduleService services.ScheduleServiceInterface) *ScheduleController {
	return &ScheduleController{
		scheduleService: scheduleService,
	}
}

// RunSchedule godoc
// @Summary Build the trip itinerary
// @Description Run the scheduling engine over the trip's POIs. With preview=true the placements are returned but not persisted, and viewer access suffices.
// @Tags Schedule
// @Accept json
// @Produce json
// @Param tripId path string true "Trip ID"
// @Param preview query bool false "Compute without persisting" default(false)
// @Param request body request_models.ScheduleRequest false "Constraint overrides"
// @Success 200 {object} scheduler.Result
// @Failure 403 {object} utils.APIResponse
// @Security BearerAuth
// @Router /trips/{tripId}/schedule [post]
func (s *ScheduleController) RunSchedule(c *gin.Context) {
	tripID := c.Param("tripId")
	if tripID == "" {
		utils.RespondError(c, http.StatusBadRequest, "Trip ID is required")
		return
	}

	var req request_models.ScheduleRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
			return
		}
	}

	preview := c.DefaultQuery("preview", "false") == "true"
	accountID := c.GetString("user_id")

	result, err := s.scheduleService.RunSchedule(c.Request.Context(), tripID, accountID, req, preview)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	message := "Itinerary built successfully"
	if !result.Success {
		message = "Itinerary could not be built"
	} else if preview {
		message = "Itinerary preview built successfully"
	}

	utils.RespondSuccess(c, result, message)
}

// GetScheduleState godoc
// @Summary Get the stored schedule
// @Description Return the persisted placements grouped by trip day, plus the unscheduled remainder
// @Tags Schedule
// @Produce json
// @Param tripId path string true "Trip ID"
// @Success 200 {object} response_models.ScheduleStateResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /trips/{tripId}/schedule [get]
func (s *ScheduleController) GetScheduleState(c *gin.Context) {
	tripID := c.Param("tripId")
	if tripID == "" {
		utils.RespondError(c, http.StatusBadRequest, "Trip ID is required")
		return
	}

	accountID := c.GetString("user_id")

	state, err := s.scheduleService.GetScheduleState(c.Request.Context(), tripID, accountID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, state, "Schedule fetched successfully")
}
