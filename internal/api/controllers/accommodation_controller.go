package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"tripflow/internal/models/request_models"
	"tripflow/internal/services"
	"tripflow/pkg/utils"
)

type AccommodationController struct {
	accommodationService services.AccommodationServiceInterface
}

func NewAccommodationController(accommodationService services.AccommodationServiceInterface) *AccommodationController {
	return &AccommodationController{
		accommodationService: accommodationService,
	}
}

// UpsertAccommodation godoc
// @Summary Set the accommodation for a trip day
// @Description Create or replace the accommodation of the given day number
// @Tags Accommodations
// @Accept json
// @Produce json
// @Param tripId path string true "Trip ID"
// @Param request body request_models.UpsertAccommodationRequest true "Accommodation payload"
// @Success 200 {object} response_models.AccommodationResponse
// @Failure 400 {object} utils.APIResponse
// @Security BearerAuth
// @Router /trips/{tripId}/accommodations [put]
func (a *AccommodationController) UpsertAccommodation(c *gin.Context) {
	tripID := c.Param("tripId")
	if tripID == "" {
		utils.RespondError(c, http.StatusBadRequest, "Trip ID is required")
		return
	}

	var req request_models.UpsertAccommodationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	accountID := c.GetString("user_id")

	accommodation, err := a.accommodationService.UpsertAccommodation(c.Request.Context(), tripID, accountID, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, accommodation, "Accommodation saved successfully")
}

// ListAccommodations godoc
// @Summary List the accommodations of a trip
// @Tags Accommodations
// @Produce json
// @Param tripId path string true "Trip ID"
// @Success 200 {array} response_models.AccommodationResponse
// @Security BearerAuth
// @Router /trips/{tripId}/accommodations [get]
func (a *AccommodationController) ListAccommodations(c *gin.Context) {
	tripID := c.Param("tripId")
	if tripID == "" {
		utils.RespondError(c, http.StatusBadRequest, "Trip ID is required")
		return
	}

	accountID := c.GetString("user_id")

	accommodations, err := a.accommodationService.ListAccommodations(c.Request.Context(), tripID, accountID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, accommodations, "Accommodations fetched successfully")
}

// DeleteAccommodation godoc
// @Summary Remove the accommodation of a trip day
// @Tags Accommodations
// @Produce json
// @Param tripId path string true "Trip ID"
// @Param dayNumber path int true "Day number (1-based)"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Security BearerAuth
// @Router /trips/{tripId}/accommodations/{dayNumber} [delete]
func (a *AccommodationController) DeleteAccommodation(c *gin.Context) {
	tripID := c.Param("tripId")
	if tripID == "" {
		utils.RespondError(c, http.StatusBadRequest, "Trip ID is required")
		return
	}

	dayNumber, err := strconv.Atoi(c.Param("dayNumber"))
	if err != nil || dayNumber < 1 {
		utils.RespondError(c, http.StatusBadRequest, "Invalid day number")
		return
	}

	accountID := c.GetString("user_id")

	if err := a.accommodationService.DeleteAccommodation(c.Request.Context(), tripID, accountID, dayNumber); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Accommodation deleted successfully")
}
