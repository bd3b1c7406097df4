package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tripflow/internal/models/request_models"
	"tripflow/internal/services"
	"tripflow/pkg/utils"
)

type POIController struct {
	poiService services.POIServiceInterface
}

func NewPOIController(poiService services.POIServiceInterface) *POIController {
	return &POIController{
		poiService: poiService,
	}
}

// CreatePOI godoc
// @Summary Add a POI to a trip
// @Description Add a point of interest, optionally anchored to a fixed date and time
// @Tags POIs
// @Accept json
// @Produce json
// @Param tripId path string true "Trip ID"
// @Param request body request_models.CreatePOIRequest true "POI payload"
// @Success 200 {object} response_models.POIResponse
// @Failure 400 {object} utils.APIResponse
// @Security BearerAuth
// @Router /trips/{tripId}/pois [post]
func (p *POIController) CreatePOI(c *gin.Context) {
	tripID := c.Param("tripId")
	if tripID == "" {
		utils.RespondError(c, http.StatusBadRequest, "Trip ID is required")
		return
	}

	var req request_models.CreatePOIRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	accountID := c.GetString("user_id")

	poi, err := p.poiService.CreatePOI(c.Request.Context(), tripID, accountID, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, poi, "POI created successfully")
}

// ListPOIs godoc
// @Summary List the POIs of a trip
// @Tags POIs
// @Produce json
// @Param tripId path string true "Trip ID"
// @Success 200 {array} response_models.POIResponse
// @Security BearerAuth
// @Router /trips/{tripId}/pois [get]
func (p *POIController) ListPOIs(c *gin.Context) {
	tripID := c.Param("tripId")
	if tripID == "" {
		utils.RespondError(c, http.StatusBadRequest, "Trip ID is required")
		return
	}

	accountID := c.GetString("user_id")

	pois, err := p.poiService.ListPOIs(c.Request.Context(), tripID, accountID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, pois, "POIs fetched successfully")
}

// GetPOI godoc
// @Summary Get a POI
// @Tags POIs
// @Produce json
// @Param tripId path string true "Trip ID"
// @Param poiId path string true "POI ID"
// @Success 200 {object} response_models.POIResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /trips/{tripId}/pois/{poiId} [get]
func (p *POIController) GetPOI(c *gin.Context) {
	tripID := c.Param("tripId")
	poiID := c.Param("poiId")
	if tripID == "" || poiID == "" {
		utils.RespondError(c, http.StatusBadRequest, "Trip ID and POI ID are required")
		return
	}

	accountID := c.GetString("user_id")

	poi, err := p.poiService.GetPOI(c.Request.Context(), tripID, accountID, poiID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, poi, "POI fetched successfully")
}

// UpdatePOI godoc
// @Summary Update a POI
// @Description Update POI fields; edits drop the POI from the stored schedule until the next run
// @Tags POIs
// @Accept json
// @Produce json
// @Param tripId path string true "Trip ID"
// @Param poiId path string true "POI ID"
// @Param request body request_models.UpdatePOIRequest true "POI update payload"
// @Success 200 {object} response_models.POIResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /trips/{tripId}/pois/{poiId} [put]
func (p *POIController) UpdatePOI(c *gin.Context) {
	tripID := c.Param("tripId")
	poiID := c.Param("poiId")
	if tripID == "" || poiID == "" {
		utils.RespondError(c, http.StatusBadRequest, "Trip ID and POI ID are required")
		return
	}

	var req request_models.UpdatePOIRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	accountID := c.GetString("user_id")

	poi, err := p.poiService.UpdatePOI(c.Request.Context(), tripID, accountID, poiID, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, poi, "POI updated successfully")
}

// DeletePOI godoc
// @Summary Remove a POI from a trip
// @Tags POIs
// @Produce json
// @Param tripId path string true "Trip ID"
// @Param poiId path string true "POI ID"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /trips/{tripId}/pois/{poiId} [delete]
func (p *POIController) DeletePOI(c *gin.Context) {
	tripID := c.Param("tripId")
	poiID := c.Param("poiId")
	if tripID == "" || poiID == "" {
		utils.RespondError(c, http.StatusBadRequest, "Trip ID and POI ID are required")
		return
	}

	accountID := c.GetString("user_id")

	if err := p.poiService.DeletePOI(c.Request.Context(), tripID, accountID, poiID); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "POI deleted successfully")
}

// AnchorPOI godoc
// @Summary Anchor a POI to a date
// @Description Pin the POI to a fixed date and optional time; the scheduler will not move it
// @Tags POIs
// @Accept json
// @Produce json
// @Param tripId path string true "Trip ID"
// @Param poiId path string true "POI ID"
// @Param request body request_models.AnchorPOIRequest true "Anchor payload"
// @Success 200 {object} response_models.POIResponse
// @Failure 400 {object} utils.APIResponse
// @Security BearerAuth
// @Router /trips/{tripId}/pois/{poiId}/anchor [post]
func (p *POIController) AnchorPOI(c *gin.Context) {
	tripID := c.Param("tripId")
	poiID := c.Param("poiId")
	if tripID == "" || poiID == "" {
		utils.RespondError(c, http.StatusBadRequest, "Trip ID and POI ID are required")
		return
	}

	var req request_models.AnchorPOIRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	accountID := c.GetString("user_id")

	poi, err := p.poiService.AnchorPOI(c.Request.Context(), tripID, accountID, poiID, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, poi, "POI anchored successfully")
}

// UnanchorPOI godoc
// @Summary Remove a POI anchor
// @Description Release the pin so the scheduler may place the POI freely again
// @Tags POIs
// @Produce json
// @Param tripId path string true "Trip ID"
// @Param poiId path string true "POI ID"
// @Success 200 {object} response_models.POIResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /trips/{tripId}/pois/{poiId}/anchor [delete]
func (p *POIController) UnanchorPOI(c *gin.Context) {
	tripID := c.Param("tripId")
	poiID := c.Param("poiId")
	if tripID == "" || poiID == "" {
		utils.RespondError(c, http.StatusBadRequest, "Trip ID and POI ID are required")
		return
	}

	accountID := c.GetString("user_id")

	poi, err := p.poiService.UnanchorPOI(c.Request.Context(), tripID, accountID, poiID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, poi, "POI anchor removed successfully")
}
