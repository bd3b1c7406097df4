package services

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	dbm "tripflow/internal/models/db_models"
	"tripflow/internal/models/request_models"
	"tripflow/internal/models/response_models"
	"tripflow/internal/repositories"
	"tripflow/internal/scheduler"
	"tripflow/pkg/metrics"
	"tripflow/pkg/utils"
)

type ScheduleServiceInterface interface {
	// RunSchedule executes one itinerary build. Unless preview is set, the
	// resulting placements are written back onto the POI rows.
	RunSchedule(ctx context.Context, tripID, accountID string, request request_models.ScheduleRequest, preview bool) (*scheduler.Result, error)

	// GetScheduleState returns the persisted assignment state grouped by
	// trip day.
	GetScheduleState(ctx context.Context, tripID, accountID string) (*response_models.ScheduleStateResponse, error)
}

type ScheduleService struct {
	tripService       TripServiceInterface
	tripRepo          repositories.TripRepository
	poiRepo           repositories.POIRepository
	accommodationRepo repositories.AccommodationRepository
	matrix            MatrixServiceInterface
}

func NewScheduleService(
	tripService TripServiceInterface,
	tripRepo repositories.TripRepository,
	poiRepo repositories.POIRepository,
	accommodationRepo repositories.AccommodationRepository,
	matrix MatrixServiceInterface,
) ScheduleServiceInterface {
	return &ScheduleService{
		tripService:       tripService,
		tripRepo:          tripRepo,
		poiRepo:           poiRepo,
		accommodationRepo: accommodationRepo,
		matrix:            matrix,
	}
}

func (s *ScheduleService) RunSchedule(ctx context.Context, tripID, accountID string, request request_models.ScheduleRequest, preview bool) (*scheduler.Result, error) {
	trip, err := s.tripService.AuthorizeTripAccess(ctx, tripID, accountID, !preview)
	if err != nil {
		return nil, err
	}

	pois, err := s.poiRepo.ListByTrip(ctx, tripID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	accommodations, err := s.accommodationRepo.ListByTrip(ctx, tripID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	profile := trip.TransportProfile
	if request.TransportProfile != "" {
		profile = request.TransportProfile
	}

	matrix, err := s.matrix.CachedTravelMatrix(ctx, tripID, profile)
	if err != nil {
		// Cold or broken cache only degrades travel times to estimates.
		log.Printf("travel matrix for trip %s unavailable: %v", tripID, err)
		matrix = nil
	}

	input := scheduler.Input{
		POIs:           toEnginePOIs(pois),
		Days:           toEngineDays(trip.Days),
		Accommodations: toEngineAccommodations(accommodations),
		Constraints:    buildConstraints(trip, request),
		Matrix:         matrix,
		Profile:        scheduler.TransportProfile(profile),
	}

	started := time.Now()
	result := scheduler.BuildItinerary(input)

	outcome := "success"
	if !result.Success {
		outcome = "failure"
	}
	metrics.RecordScheduleRun(outcome, time.Since(started))

	if !preview && result.Success {
		if err := s.persistResult(ctx, trip, result); err != nil {
			return nil, err
		}
	}

	return result, nil
}

func (s *ScheduleService) persistResult(ctx context.Context, trip *dbm.Trip, result *scheduler.Result) error {
	updates := make([]repositories.POIScheduleUpdate, 0, len(result.Assignments))
	for _, a := range result.Assignments {
		poiID, err := uuid.Parse(a.POIID)
		if err != nil {
			continue
		}
		date, err := utils.ParseDate(a.Date)
		if err != nil {
			continue
		}
		updates = append(updates, repositories.POIScheduleUpdate{
			POIID:         poiID,
			ScheduledDate: date,
			DayOrder:      a.DayOrder,
		})
	}

	if err := s.poiRepo.ApplySchedule(ctx, trip.ID, updates); err != nil {
		return utils.ErrDatabaseError
	}

	if trip.Status != dbm.TripStatusScheduled {
		trip.Status = dbm.TripStatusScheduled
		if err := s.tripRepo.Update(ctx, trip); err != nil {
			return utils.ErrDatabaseError
		}
	}

	return nil
}

func (s *ScheduleService) GetScheduleState(ctx context.Context, tripID, accountID string) (*response_models.ScheduleStateResponse, error) {
	trip, err := s.tripService.AuthorizeTripAccess(ctx, tripID, accountID, false)
	if err != nil {
		return nil, err
	}

	pois, err := s.poiRepo.ListByTrip(ctx, tripID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	accommodations, err := s.accommodationRepo.ListByTrip(ctx, tripID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	accByDay := make(map[int]*dbm.Accommodation, len(accommodations))
	for i := range accommodations {
		accByDay[accommodations[i].DayNumber] = &accommodations[i]
	}

	byDate := make(map[string][]response_models.POIResponse)
	state := &response_models.ScheduleStateResponse{
		TripID:      trip.ID.String(),
		Days:        make([]response_models.ScheduledDayResponse, 0, len(trip.Days)),
		Unscheduled: []response_models.POIResponse{},
	}

	for i := range pois {
		resp := toPOIResponse(&pois[i])
		if pois[i].ScheduledDate == nil {
			state.Unscheduled = append(state.Unscheduled, resp)
			continue
		}
		date := utils.FormatDate(*pois[i].ScheduledDate)
		byDate[date] = append(byDate[date], resp)
	}

	for _, day := range trip.Days {
		date := utils.FormatDate(day.Date)
		dayPOIs := byDate[date]
		sort.SliceStable(dayPOIs, func(i, j int) bool {
			// Anchors that never went through a run carry no order yet;
			// they sink to the end of the day.
			oi, oj := dayPOIs[i].DayOrder, dayPOIs[j].DayOrder
			switch {
			case oi == nil:
				return false
			case oj == nil:
				return true
			default:
				return *oi < *oj
			}
		})
		if dayPOIs == nil {
			dayPOIs = []response_models.POIResponse{}
		}

		dayResp := response_models.ScheduledDayResponse{
			Date:      date,
			DayNumber: day.DayNumber,
			POIs:      dayPOIs,
		}
		if acc, ok := accByDay[day.DayNumber]; ok {
			accResp := toAccommodationResponse(acc)
			dayResp.Accommodation = &accResp
		}
		state.Days = append(state.Days, dayResp)
	}

	return state, nil
}

func buildConstraints(trip *dbm.Trip, request request_models.ScheduleRequest) scheduler.Constraints {
	cons := scheduler.Constraints{
		MaxFoodPerDay:             trip.MaxFoodPerDay,
		MaxHoursPerDay:            trip.MaxHoursPerDay,
		MaxTravelMinutesInCluster: trip.ClusterThresholdMinutes,
	}
	if request.MaxFoodPerDay != nil {
		cons.MaxFoodPerDay = *request.MaxFoodPerDay
	}
	if request.MaxHoursPerDay != nil {
		cons.MaxHoursPerDay = *request.MaxHoursPerDay
	}
	if request.ClusterThresholdMinutes != nil {
		cons.MaxTravelMinutesInCluster = *request.ClusterThresholdMinutes
	}
	return cons
}

func toEnginePOIs(pois []dbm.POI) []scheduler.POI {
	out := make([]scheduler.POI, 0, len(pois))
	for _, p := range pois {
		ep := scheduler.POI{
			ID:              p.ID.String(),
			Name:            p.Name,
			Category:        p.Category,
			Latitude:        p.Latitude,
			Longitude:       p.Longitude,
			DurationMinutes: p.VisitDurationMinutes,
			IsAnchored:      p.IsAnchored,
			AnchoredTime:    p.AnchoredTime,
		}
		// Only the anchor pins a date; placements from earlier runs are
		// recomputed from scratch.
		if p.IsAnchored && p.AnchoredDate != nil {
			ep.ScheduledDate = utils.FormatDate(*p.AnchoredDate)
		}
		out = append(out, ep)
	}
	return out
}

func toEngineDays(days []dbm.TripDay) []scheduler.Day {
	out := make([]scheduler.Day, 0, len(days))
	for _, d := range days {
		out = append(out, scheduler.Day{
			Date:      utils.FormatDate(d.Date),
			DayNumber: d.DayNumber,
		})
	}
	return out
}

func toEngineAccommodations(accs []dbm.Accommodation) []scheduler.Accommodation {
	out := make([]scheduler.Accommodation, 0, len(accs))
	for _, a := range accs {
		out = append(out, scheduler.Accommodation{
			DayNumber: a.DayNumber,
			Name:      a.Name,
			Latitude:  a.Latitude,
			Longitude: a.Longitude,
		})
	}
	return out
}
