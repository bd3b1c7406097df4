package services

import (
	"context"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	dbm "tripflow/internal/models/db_models"
	"tripflow/internal/models/request_models"
	"tripflow/internal/models/response_models"
	"tripflow/internal/repositories"
	"tripflow/internal/worker"
	"tripflow/pkg/utils"
)

type AccommodationServiceInterface interface {
	UpsertAccommodation(ctx context.Context, tripID, accountID string, request request_models.UpsertAccommodationRequest) (*response_models.AccommodationResponse, error)
	ListAccommodations(ctx context.Context, tripID, accountID string) ([]response_models.AccommodationResponse, error)
	DeleteAccommodation(ctx context.Context, tripID, accountID string, dayNumber int) error
}

type AccommodationService struct {
	tripService       TripServiceInterface
	accommodationRepo repositories.AccommodationRepository
	ors               ORSClientInterface
	distributor       worker.TaskDistributor
}

func NewAccommodationService(
	tripService TripServiceInterface,
	accommodationRepo repositories.AccommodationRepository,
	ors ORSClientInterface,
	distributor worker.TaskDistributor,
) AccommodationServiceInterface {
	return &AccommodationService{
		tripService:       tripService,
		accommodationRepo: accommodationRepo,
		ors:               ors,
		distributor:       distributor,
	}
}

func (a *AccommodationService) UpsertAccommodation(ctx context.Context, tripID, accountID string, request request_models.UpsertAccommodationRequest) (*response_models.AccommodationResponse, error) {
	trip, err := a.tripService.AuthorizeTripAccess(ctx, tripID, accountID, true)
	if err != nil {
		return nil, err
	}
	if request.DayNumber > len(trip.Days) {
		return nil, utils.ErrDayNotInTrip
	}

	acc := &dbm.Accommodation{
		TripID:    trip.ID,
		DayNumber: request.DayNumber,
		Name:      request.Name,
		Address:   request.Address,
		Latitude:  request.Latitude,
		Longitude: request.Longitude,
	}

	if acc.Latitude == nil || acc.Longitude == nil {
		query := acc.Name
		if acc.Address != "" {
			query = acc.Address
		}
		point, err := a.ors.GeocodeSearch(ctx, query)
		if err != nil {
			log.Printf("geocode accommodation %q failed: %v", query, err)
		} else if point != nil {
			acc.Latitude = &point.Latitude
			acc.Longitude = &point.Longitude
		}
	}

	if err := a.accommodationRepo.Upsert(ctx, acc); err != nil {
		return nil, utils.ErrDatabaseError
	}

	a.enqueueMatrixPrecompute(ctx, tripID)

	resp := toAccommodationResponse(acc)
	return &resp, nil
}

func (a *AccommodationService) ListAccommodations(ctx context.Context, tripID, accountID string) ([]response_models.AccommodationResponse, error) {
	if _, err := a.tripService.AuthorizeTripAccess(ctx, tripID, accountID, false); err != nil {
		return nil, err
	}

	accs, err := a.accommodationRepo.ListByTrip(ctx, tripID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	out := make([]response_models.AccommodationResponse, 0, len(accs))
	for i := range accs {
		out = append(out, toAccommodationResponse(&accs[i]))
	}
	return out, nil
}

func (a *AccommodationService) DeleteAccommodation(ctx context.Context, tripID, accountID string, dayNumber int) error {
	trip, err := a.tripService.AuthorizeTripAccess(ctx, tripID, accountID, true)
	if err != nil {
		return err
	}

	if err := a.accommodationRepo.DeleteByDay(ctx, trip.ID, dayNumber); err != nil {
		return utils.ErrDatabaseError
	}

	a.enqueueMatrixPrecompute(ctx, tripID)

	return nil
}

func (a *AccommodationService) enqueueMatrixPrecompute(ctx context.Context, tripID string) {
	err := a.distributor.DistributeTaskMatrixPrecompute(
		ctx,
		&worker.PayloadMatrixPrecompute{TripID: tripID},
		asynq.Queue(worker.QueueDefault),
		asynq.MaxRetry(5),
	)
	if err != nil {
		log.Printf("enqueue matrix precompute for trip %s failed: %v", tripID, err)
	}
}

func toAccommodationResponse(acc *dbm.Accommodation) response_models.AccommodationResponse {
	return response_models.AccommodationResponse{
		ID:        acc.ID.String(),
		DayNumber: acc.DayNumber,
		Name:      acc.Name,
		Address:   acc.Address,
		Latitude:  acc.Latitude,
		Longitude: acc.Longitude,
	}
}
