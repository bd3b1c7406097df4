package services

import (
	"context"
	"time"

	"github.com/hibiken/asynq"
	"github.com/lib/pq"
	"github.com/rs/zerolog/log"

	dbm "tripflow/internal/models/db_models"
	"tripflow/internal/models/request_models"
	"tripflow/internal/models/response_models"
	"tripflow/internal/repositories"
	"tripflow/internal/worker"
	"tripflow/pkg/utils"
)

type POIServiceInterface interface {
	CreatePOI(ctx context.Context, tripID, accountID string, request request_models.CreatePOIRequest) (*response_models.POIResponse, error)
	GetPOI(ctx context.Context, tripID, accountID, poiID string) (*response_models.POIResponse, error)
	ListPOIs(ctx context.Context, tripID, accountID string) ([]response_models.POIResponse, error)
	UpdatePOI(ctx context.Context, tripID, accountID, poiID string, request request_models.UpdatePOIRequest) (*response_models.POIResponse, error)
	DeletePOI(ctx context.Context, tripID, accountID, poiID string) error
	AnchorPOI(ctx context.Context, tripID, accountID, poiID string, request request_models.AnchorPOIRequest) (*response_models.POIResponse, error)
	UnanchorPOI(ctx context.Context, tripID, accountID, poiID string) (*response_models.POIResponse, error)
}

type PoiService struct {
	tripService TripServiceInterface
	poiRepo     repositories.POIRepository
	distributor worker.TaskDistributor
}

func NewPOIService(
	tripService TripServiceInterface,
	poiRepo repositories.POIRepository,
	distributor worker.TaskDistributor,
) POIServiceInterface {
	return &PoiService{
		tripService: tripService,
		poiRepo:     poiRepo,
		distributor: distributor,
	}
}

func (p *PoiService) CreatePOI(ctx context.Context, tripID, accountID string, request request_models.CreatePOIRequest) (*response_models.POIResponse, error) {
	trip, err := p.tripService.AuthorizeTripAccess(ctx, tripID, accountID, true)
	if err != nil {
		return nil, err
	}

	poi := &dbm.POI{
		TripID:               trip.ID,
		Name:                 request.Name,
		Address:              request.Address,
		Notes:                request.Notes,
		Latitude:             request.Latitude,
		Longitude:            request.Longitude,
		Category:             request.Category,
		Tags:                 pq.StringArray(request.Tags),
		VisitDurationMinutes: request.VisitDurationMinutes,
	}

	if request.IsAnchored {
		anchoredDate, err := p.validateAnchor(trip, request.AnchoredDate, request.AnchoredTime)
		if err != nil {
			return nil, err
		}
		poi.IsAnchored = true
		poi.AnchoredDate = &anchoredDate
		poi.AnchoredTime = request.AnchoredTime
		poi.ScheduledDate = &anchoredDate
	}

	if _, err := p.poiRepo.Create(ctx, poi); err != nil {
		return nil, utils.ErrDatabaseError
	}

	p.enqueueMatrixPrecompute(ctx, tripID)

	resp := toPOIResponse(poi)
	return &resp, nil
}

func (p *PoiService) GetPOI(ctx context.Context, tripID, accountID, poiID string) (*response_models.POIResponse, error) {
	if _, err := p.tripService.AuthorizeTripAccess(ctx, tripID, accountID, false); err != nil {
		return nil, err
	}

	poi, err := p.poiRepo.GetByID(ctx, tripID, poiID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if poi == nil {
		return nil, utils.ErrPOINotFound
	}

	resp := toPOIResponse(poi)
	return &resp, nil
}

func (p *PoiService) ListPOIs(ctx context.Context, tripID, accountID string) ([]response_models.POIResponse, error) {
	if _, err := p.tripService.AuthorizeTripAccess(ctx, tripID, accountID, false); err != nil {
		return nil, err
	}

	pois, err := p.poiRepo.ListByTrip(ctx, tripID)
	if err != nil {
		log.Printf("Error listing POIs: %v", err)
		return nil, utils.ErrDatabaseError
	}

	out := make([]response_models.POIResponse, 0, len(pois))
	for i := range pois {
		out = append(out, toPOIResponse(&pois[i]))
	}
	return out, nil
}

func (p *PoiService) UpdatePOI(ctx context.Context, tripID, accountID, poiID string, request request_models.UpdatePOIRequest) (*response_models.POIResponse, error) {
	if _, err := p.tripService.AuthorizeTripAccess(ctx, tripID, accountID, true); err != nil {
		return nil, err
	}

	poi, err := p.poiRepo.GetByID(ctx, tripID, poiID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if poi == nil {
		return nil, utils.ErrPOINotFound
	}

	if request.Name != nil {
		poi.Name = *request.Name
	}
	if request.Address != nil {
		poi.Address = *request.Address
	}
	if request.Notes != nil {
		poi.Notes = *request.Notes
	}
	if request.Latitude != nil {
		poi.Latitude = request.Latitude
	}
	if request.Longitude != nil {
		poi.Longitude = request.Longitude
	}
	if request.Category != nil {
		poi.Category = *request.Category
	}
	if request.Tags != nil {
		poi.Tags = pq.StringArray(request.Tags)
	}
	if request.VisitDurationMinutes != nil {
		poi.VisitDurationMinutes = *request.VisitDurationMinutes
	}

	// Edits invalidate the stored placement; anchors keep their pin.
	if !poi.IsAnchored {
		poi.ScheduledDate = nil
	}
	poi.DayOrder = nil

	if err := p.poiRepo.Update(ctx, poi); err != nil {
		return nil, utils.ErrDatabaseError
	}

	p.enqueueMatrixPrecompute(ctx, tripID)

	resp := toPOIResponse(poi)
	return &resp, nil
}

func (p *PoiService) DeletePOI(ctx context.Context, tripID, accountID, poiID string) error {
	trip, err := p.tripService.AuthorizeTripAccess(ctx, tripID, accountID, true)
	if err != nil {
		return err
	}

	poi, err := p.poiRepo.GetByID(ctx, tripID, poiID)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if poi == nil {
		return utils.ErrPOINotFound
	}

	if err := p.poiRepo.Delete(ctx, trip.ID, poi.ID); err != nil {
		return utils.ErrDatabaseError
	}

	p.enqueueMatrixPrecompute(ctx, tripID)

	return nil
}

func (p *PoiService) AnchorPOI(ctx context.Context, tripID, accountID, poiID string, request request_models.AnchorPOIRequest) (*response_models.POIResponse, error) {
	trip, err := p.tripService.AuthorizeTripAccess(ctx, tripID, accountID, true)
	if err != nil {
		return nil, err
	}

	poi, err := p.poiRepo.GetByID(ctx, tripID, poiID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if poi == nil {
		return nil, utils.ErrPOINotFound
	}

	anchoredDate, err := p.validateAnchor(trip, request.Date, request.Time)
	if err != nil {
		return nil, err
	}

	poi.IsAnchored = true
	poi.AnchoredDate = &anchoredDate
	poi.AnchoredTime = request.Time
	poi.ScheduledDate = &anchoredDate
	poi.DayOrder = nil

	if err := p.poiRepo.Update(ctx, poi); err != nil {
		return nil, utils.ErrDatabaseError
	}

	resp := toPOIResponse(poi)
	return &resp, nil
}

func (p *PoiService) UnanchorPOI(ctx context.Context, tripID, accountID, poiID string) (*response_models.POIResponse, error) {
	if _, err := p.tripService.AuthorizeTripAccess(ctx, tripID, accountID, true); err != nil {
		return nil, err
	}

	poi, err := p.poiRepo.GetByID(ctx, tripID, poiID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if poi == nil {
		return nil, utils.ErrPOINotFound
	}

	poi.IsAnchored = false
	poi.AnchoredDate = nil
	poi.AnchoredTime = ""
	poi.ScheduledDate = nil
	poi.DayOrder = nil

	if err := p.poiRepo.Update(ctx, poi); err != nil {
		return nil, utils.ErrDatabaseError
	}

	resp := toPOIResponse(poi)
	return &resp, nil
}

// validateAnchor checks the pin lands on a day the trip actually has and
// the time, when present, parses as HH:MM.
func (p *PoiService) validateAnchor(trip *dbm.Trip, dateStr, timeStr string) (time.Time, error) {
	anchoredDate, err := utils.ParseDate(dateStr)
	if err != nil {
		return time.Time{}, utils.ErrInvalidTimeFormat
	}
	if anchoredDate.Before(trip.StartDate) || anchoredDate.After(trip.EndDate) {
		return time.Time{}, utils.ErrDayNotInTrip
	}
	if timeStr != "" && !utils.ValidTimeOfDay(timeStr) {
		return time.Time{}, utils.ErrInvalidTimeFormat
	}
	return anchoredDate, nil
}

// enqueueMatrixPrecompute is fire-and-forget: scheduling works off the
// estimate fallback if the warm matrix never lands.
func (p *PoiService) enqueueMatrixPrecompute(ctx context.Context, tripID string) {
	err := p.distributor.DistributeTaskMatrixPrecompute(
		ctx,
		&worker.PayloadMatrixPrecompute{TripID: tripID},
		asynq.Queue(worker.QueueDefault),
		asynq.MaxRetry(5),
	)
	if err != nil {
		log.Printf("enqueue matrix precompute for trip %s failed: %v", tripID, err)
	}
}

func toPOIResponse(poi *dbm.POI) response_models.POIResponse {
	resp := response_models.POIResponse{
		ID:                   poi.ID.String(),
		Name:                 poi.Name,
		Address:              poi.Address,
		Notes:                poi.Notes,
		Latitude:             poi.Latitude,
		Longitude:            poi.Longitude,
		Category:             poi.Category,
		Tags:                 poi.Tags,
		VisitDurationMinutes: poi.VisitDurationMinutes,
		IsAnchored:           poi.IsAnchored,
		AnchoredTime:         poi.AnchoredTime,
		DayOrder:             poi.DayOrder,
	}
	if poi.AnchoredDate != nil {
		resp.AnchoredDate = utils.FormatDate(*poi.AnchoredDate)
	}
	if poi.ScheduledDate != nil {
		resp.ScheduledDate = utils.FormatDate(*poi.ScheduledDate)
	}
	return resp
}
