package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	dbm "tripflow/internal/models/db_models"
	"tripflow/internal/models/request_models"
	"tripflow/internal/models/response_models"
	"tripflow/internal/repositories"
	"tripflow/pkg/utils"
)

type TripServiceInterface interface {
	CreateTrip(ctx context.Context, ownerID string, request request_models.CreateTripRequest) (*response_models.TripResponse, error)
	GetTrip(ctx context.Context, tripID, accountID string) (*response_models.TripResponse, error)
	ListTrips(ctx context.Context, accountID string, page, pageSize int) ([]response_models.TripResponse, error)
	UpdateTrip(ctx context.Context, tripID, accountID string, request request_models.UpdateTripRequest) (*response_models.TripResponse, error)
	DeleteTrip(ctx context.Context, tripID, accountID string) error
	InviteMember(ctx context.Context, tripID, ownerID string, request request_models.InviteMemberRequest) error

	// AuthorizeTripAccess loads the trip and checks the account may see it.
	// With needEditor set, viewers are rejected too. POI, accommodation and
	// schedule services all come through here.
	AuthorizeTripAccess(ctx context.Context, tripID, accountID string, needEditor bool) (*dbm.Trip, error)
}

type TripService struct {
	tripRepo    repositories.TripRepository
	accountRepo repositories.AccountRepository
	poiRepo     repositories.POIRepository
	ors         ORSClientInterface
	mail        IMailService
}

func NewTripService(
	tripRepo repositories.TripRepository,
	accountRepo repositories.AccountRepository,
	poiRepo repositories.POIRepository,
	ors ORSClientInterface,
	mail IMailService,
) TripServiceInterface {
	return &TripService{
		tripRepo:    tripRepo,
		accountRepo: accountRepo,
		poiRepo:     poiRepo,
		ors:         ors,
		mail:        mail,
	}
}

func (t *TripService) CreateTrip(ctx context.Context, ownerID string, request request_models.CreateTripRequest) (*response_models.TripResponse, error) {
	ownerUUID, err := uuid.Parse(ownerID)
	if err != nil {
		return nil, utils.ErrAccountNotFound
	}

	start, end, err := parseDateRange(request.StartDate, request.EndDate)
	if err != nil {
		return nil, err
	}

	trip := &dbm.Trip{
		OwnerID:                 ownerUUID,
		Title:                   request.Title,
		Status:                  dbm.TripStatusDraft,
		StartDate:               start,
		EndDate:                 end,
		TransportProfile:        request.TransportProfile,
		MaxFoodPerDay:           2,
		MaxHoursPerDay:          8,
		ClusterThresholdMinutes: 15,
	}
	if trip.TransportProfile == "" {
		trip.TransportProfile = "foot-walking"
	}
	if request.MaxFoodPerDay != nil {
		trip.MaxFoodPerDay = *request.MaxFoodPerDay
	}
	if request.MaxHoursPerDay != nil {
		trip.MaxHoursPerDay = *request.MaxHoursPerDay
	}
	if request.ClusterThresholdMinutes != nil {
		trip.ClusterThresholdMinutes = *request.ClusterThresholdMinutes
	}

	trip.Days = materializeDays(start, end)
	trip.Destinations = t.resolveDestinations(ctx, request.Destinations)

	if err := t.tripRepo.Create(ctx, trip); err != nil {
		return nil, utils.ErrDatabaseError
	}

	resp := toTripResponse(trip, true)
	return &resp, nil
}

func (t *TripService) GetTrip(ctx context.Context, tripID, accountID string) (*response_models.TripResponse, error) {
	trip, err := t.AuthorizeTripAccess(ctx, tripID, accountID, false)
	if err != nil {
		return nil, err
	}

	resp := toTripResponse(trip, true)
	return &resp, nil
}

func (t *TripService) ListTrips(ctx context.Context, accountID string, page, pageSize int) ([]response_models.TripResponse, error) {
	if page < 1 {
		return nil, utils.ErrInvalidPage
	}
	if pageSize < 1 || pageSize > 100 {
		return nil, utils.ErrInvalidPageSize
	}

	trips, err := t.tripRepo.ListByAccount(ctx, accountID, page, pageSize)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	out := make([]response_models.TripResponse, 0, len(trips))
	for i := range trips {
		out = append(out, toTripResponse(&trips[i], false))
	}
	return out, nil
}

func (t *TripService) UpdateTrip(ctx context.Context, tripID, accountID string, request request_models.UpdateTripRequest) (*response_models.TripResponse, error) {
	trip, err := t.AuthorizeTripAccess(ctx, tripID, accountID, true)
	if err != nil {
		return nil, err
	}

	if request.Title != nil {
		trip.Title = *request.Title
	}
	if request.TransportProfile != nil {
		trip.TransportProfile = *request.TransportProfile
	}
	if request.MaxFoodPerDay != nil {
		trip.MaxFoodPerDay = *request.MaxFoodPerDay
	}
	if request.MaxHoursPerDay != nil {
		trip.MaxHoursPerDay = *request.MaxHoursPerDay
	}
	if request.ClusterThresholdMinutes != nil {
		trip.ClusterThresholdMinutes = *request.ClusterThresholdMinutes
	}

	datesChanged := false
	if request.StartDate != nil || request.EndDate != nil {
		startStr := utils.FormatDate(trip.StartDate)
		endStr := utils.FormatDate(trip.EndDate)
		if request.StartDate != nil {
			startStr = *request.StartDate
		}
		if request.EndDate != nil {
			endStr = *request.EndDate
		}

		start, end, err := parseDateRange(startStr, endStr)
		if err != nil {
			return nil, err
		}
		datesChanged = !start.Equal(trip.StartDate) || !end.Equal(trip.EndDate)
		trip.StartDate = start
		trip.EndDate = end
	}

	if err := t.tripRepo.Update(ctx, trip); err != nil {
		return nil, utils.ErrDatabaseError
	}

	if datesChanged {
		// The old day grid is gone, so stored placements are stale too.
		if err := t.tripRepo.ReplaceDays(ctx, trip.ID, materializeDays(trip.StartDate, trip.EndDate)); err != nil {
			return nil, utils.ErrDatabaseError
		}
		if err := t.poiRepo.ClearSchedule(ctx, trip.ID); err != nil {
			return nil, utils.ErrDatabaseError
		}
	}

	fresh, err := t.tripRepo.GetByID(ctx, trip.ID.String())
	if err != nil || fresh == nil {
		return nil, utils.ErrDatabaseError
	}

	resp := toTripResponse(fresh, true)
	return &resp, nil
}

func (t *TripService) DeleteTrip(ctx context.Context, tripID, accountID string) error {
	trip, err := t.tripRepo.GetByID(ctx, tripID)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if trip == nil {
		return utils.ErrTripNotFound
	}
	if trip.OwnerID.String() != accountID {
		return utils.ErrTripAccessDenied
	}

	if err := t.tripRepo.Delete(ctx, trip.ID); err != nil {
		return utils.ErrDatabaseError
	}
	return nil
}

func (t *TripService) InviteMember(ctx context.Context, tripID, ownerID string, request request_models.InviteMemberRequest) error {
	trip, err := t.tripRepo.GetByID(ctx, tripID)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if trip == nil {
		return utils.ErrTripNotFound
	}
	if trip.OwnerID.String() != ownerID {
		return utils.ErrTripAccessDenied
	}

	invitee, err := t.accountRepo.FindByEmail(ctx, request.Email)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if invitee == nil {
		return utils.ErrAccountNotFound
	}
	if invitee.ID == trip.OwnerID {
		return nil
	}

	member := &dbm.TripMember{
		TripID:    trip.ID,
		AccountID: invitee.ID,
		Role:      dbm.MemberRole(request.Role),
	}
	if err := t.tripRepo.AddMember(ctx, member); err != nil {
		return utils.ErrDatabaseError
	}

	inviter, err := t.accountRepo.FindByID(ctx, ownerID)
	if err == nil && inviter != nil {
		if err := t.mail.SendMailToInviteMember(invitee.Email, inviter.Name, trip.Title); err != nil {
			log.Printf("invite mail to %s failed: %v", invitee.Email, err)
		}
	}

	return nil
}

func (t *TripService) AuthorizeTripAccess(ctx context.Context, tripID, accountID string, needEditor bool) (*dbm.Trip, error) {
	trip, err := t.tripRepo.GetByID(ctx, tripID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if trip == nil {
		return nil, utils.ErrTripNotFound
	}

	if trip.OwnerID.String() == accountID {
		return trip, nil
	}

	member, err := t.tripRepo.GetMember(ctx, tripID, accountID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if member == nil {
		return nil, utils.ErrTripAccessDenied
	}
	if needEditor && member.Role != dbm.MemberRoleEditor {
		return nil, utils.ErrTripAccessDenied
	}

	return trip, nil
}

func parseDateRange(startStr, endStr string) (time.Time, time.Time, error) {
	start, err := utils.ParseDate(startStr)
	if err != nil {
		return time.Time{}, time.Time{}, utils.ErrInvalidTimeFormat
	}
	end, err := utils.ParseDate(endStr)
	if err != nil {
		return time.Time{}, time.Time{}, utils.ErrInvalidTimeFormat
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, utils.ErrInvalidDateRange
	}
	return start, end, nil
}

func materializeDays(start, end time.Time) []dbm.TripDay {
	var days []dbm.TripDay
	number := 1
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		days = append(days, dbm.TripDay{Date: d, DayNumber: number})
		number++
	}
	return days
}

// resolveDestinations geocodes entries that arrive without coordinates.
// A failed geocode is not fatal; the destination just stays unlocated.
func (t *TripService) resolveDestinations(ctx context.Context, inputs []request_models.DestinationInput) []dbm.Destination {
	destinations := make([]dbm.Destination, 0, len(inputs))
	for i, in := range inputs {
		dest := dbm.Destination{
			Name:      in.Name,
			Country:   in.Country,
			Latitude:  in.Latitude,
			Longitude: in.Longitude,
			Position:  i,
		}

		if dest.Latitude == nil || dest.Longitude == nil {
			query := in.Name
			if in.Country != "" {
				query = fmt.Sprintf("%s, %s", in.Name, in.Country)
			}
			point, err := t.ors.GeocodeSearch(ctx, query)
			if err != nil {
				log.Printf("geocode %q failed: %v", query, err)
			} else if point != nil {
				dest.Latitude = &point.Latitude
				dest.Longitude = &point.Longitude
			}
		}

		destinations = append(destinations, dest)
	}
	return destinations
}

func toTripResponse(trip *dbm.Trip, includeRelations bool) response_models.TripResponse {
	resp := response_models.TripResponse{
		ID:                      trip.ID.String(),
		Title:                   trip.Title,
		Status:                  string(trip.Status),
		StartDate:               utils.FormatDate(trip.StartDate),
		EndDate:                 utils.FormatDate(trip.EndDate),
		TransportProfile:        trip.TransportProfile,
		MaxFoodPerDay:           trip.MaxFoodPerDay,
		MaxHoursPerDay:          trip.MaxHoursPerDay,
		ClusterThresholdMinutes: trip.ClusterThresholdMinutes,
	}

	if !includeRelations {
		return resp
	}

	for _, day := range trip.Days {
		resp.Days = append(resp.Days, response_models.TripDayResponse{
			ID:        day.ID.String(),
			Date:      utils.FormatDate(day.Date),
			DayNumber: day.DayNumber,
		})
	}
	for _, m := range trip.Members {
		resp.Members = append(resp.Members, response_models.TripMemberResponse{
			AccountID: m.AccountID.String(),
			Name:      m.Account.Name,
			Email:     m.Account.Email,
			Role:      string(m.Role),
		})
	}
	for _, d := range trip.Destinations {
		resp.Destinations = append(resp.Destinations, response_models.DestinationResponse{
			ID:        d.ID.String(),
			Name:      d.Name,
			Country:   d.Country,
			Latitude:  d.Latitude,
			Longitude: d.Longitude,
			Position:  d.Position,
		})
	}

	return resp
}
