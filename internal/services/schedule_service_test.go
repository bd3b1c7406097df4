package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	dbm "tripflow/internal/models/db_models"
	"tripflow/internal/models/request_models"
	"tripflow/pkg/utils"
)

func scheduleFixture() (*dbm.Trip, *fakeTripService, *fakeTripRepo, *fakePOIRepo, *fakeAccommodationRepo, *fakeMatrixService) {
	trip := &dbm.Trip{
		OwnerID:                 uuid.New(),
		Title:                   "Lisbon weekend",
		Status:                  dbm.TripStatusDraft,
		StartDate:               mustDate("2026-06-01"),
		EndDate:                 mustDate("2026-06-02"),
		TransportProfile:        "foot-walking",
		MaxFoodPerDay:           2,
		MaxHoursPerDay:          8,
		ClusterThresholdMinutes: 15,
		Days: []dbm.TripDay{
			{Date: mustDate("2026-06-01"), DayNumber: 1},
			{Date: mustDate("2026-06-02"), DayNumber: 2},
		},
	}
	trip.ID = uuid.New()

	museum := &dbm.POI{
		TripID:               trip.ID,
		Name:                 "Museu do Azulejo",
		Latitude:             f64(38.725),
		Longitude:            f64(-9.113),
		Category:             "museum",
		VisitDurationMinutes: 90,
	}
	museum.ID = uuid.New()
	cafe := &dbm.POI{
		TripID:               trip.ID,
		Name:                 "Pastelaria",
		Latitude:             f64(38.726),
		Longitude:            f64(-9.114),
		Category:             "food",
		VisitDurationMinutes: 45,
	}
	cafe.ID = uuid.New()

	tripService := &fakeTripService{trip: trip}
	tripRepo := newFakeTripRepo(trip)
	poiRepo := newFakePOIRepo(museum, cafe)
	accommodationRepo := &fakeAccommodationRepo{}
	matrix := &fakeMatrixService{}
	return trip, tripService, tripRepo, poiRepo, accommodationRepo, matrix
}

func TestRunSchedulePreviewDoesNotPersist(t *testing.T) {
	_, tripService, tripRepo, poiRepo, accommodationRepo, matrix := scheduleFixture()
	service := NewScheduleService(tripService, tripRepo, poiRepo, accommodationRepo, matrix)

	result, err := service.RunSchedule(context.Background(), uuid.New().String(), uuid.New().String(), request_models.ScheduleRequest{}, true)
	require.NoError(t, err)
	require.True(t, result.Success)
	require.Len(t, result.Assignments, 2)

	require.Zero(t, poiRepo.applyCalls)
	require.Empty(t, tripRepo.updated)
	// Previews are read-only, so viewers may run them.
	require.False(t, tripService.lastNeedEditor)
}

func TestRunSchedulePersistsAndMarksScheduled(t *testing.T) {
	trip, tripService, tripRepo, poiRepo, accommodationRepo, matrix := scheduleFixture()
	service := NewScheduleService(tripService, tripRepo, poiRepo, accommodationRepo, matrix)

	result, err := service.RunSchedule(context.Background(), trip.ID.String(), trip.OwnerID.String(), request_models.ScheduleRequest{}, false)
	require.NoError(t, err)
	require.True(t, result.Success)
	require.True(t, tripService.lastNeedEditor)

	require.Equal(t, 1, poiRepo.applyCalls)
	require.Len(t, poiRepo.applied, 2)
	for _, update := range poiRepo.applied {
		require.NotEqual(t, uuid.Nil, update.POIID)
		require.False(t, update.ScheduledDate.Before(trip.StartDate))
		require.False(t, update.ScheduledDate.After(trip.EndDate))
	}

	require.Equal(t, dbm.TripStatusScheduled, trip.Status)
	require.Len(t, tripRepo.updated, 1)
}

func TestRunScheduleSkipsTripUpdateWhenAlreadyScheduled(t *testing.T) {
	trip, tripService, tripRepo, poiRepo, accommodationRepo, matrix := scheduleFixture()
	trip.Status = dbm.TripStatusScheduled
	service := NewScheduleService(tripService, tripRepo, poiRepo, accommodationRepo, matrix)

	_, err := service.RunSchedule(context.Background(), trip.ID.String(), trip.OwnerID.String(), request_models.ScheduleRequest{}, false)
	require.NoError(t, err)

	require.Equal(t, 1, poiRepo.applyCalls)
	require.Empty(t, tripRepo.updated)
}

func TestRunScheduleDegradesWithoutMatrix(t *testing.T) {
	trip, tripService, tripRepo, poiRepo, accommodationRepo, matrix := scheduleFixture()
	matrix.cachedErr = context.DeadlineExceeded
	service := NewScheduleService(tripService, tripRepo, poiRepo, accommodationRepo, matrix)

	result, err := service.RunSchedule(context.Background(), trip.ID.String(), trip.OwnerID.String(), request_models.ScheduleRequest{}, true)
	require.NoError(t, err)
	require.True(t, result.Success)
	require.Len(t, result.Assignments, 2)
}

func TestRunScheduleProfileOverride(t *testing.T) {
	trip, tripService, tripRepo, poiRepo, accommodationRepo, matrix := scheduleFixture()
	service := NewScheduleService(tripService, tripRepo, poiRepo, accommodationRepo, matrix)

	_, err := service.RunSchedule(context.Background(), trip.ID.String(), trip.OwnerID.String(), request_models.ScheduleRequest{}, true)
	require.NoError(t, err)
	require.Equal(t, "foot-walking", matrix.lastProfile)

	_, err = service.RunSchedule(context.Background(), trip.ID.String(), trip.OwnerID.String(), request_models.ScheduleRequest{
		TransportProfile: "driving-car",
	}, true)
	require.NoError(t, err)
	require.Equal(t, "driving-car", matrix.lastProfile)
}

func TestRunScheduleConstraintOverrides(t *testing.T) {
	trip, tripService, tripRepo, poiRepo, accommodationRepo, matrix := scheduleFixture()
	service := NewScheduleService(tripService, tripRepo, poiRepo, accommodationRepo, matrix)

	maxFood := 1
	maxHours := 5.5
	result, err := service.RunSchedule(context.Background(), trip.ID.String(), trip.OwnerID.String(), request_models.ScheduleRequest{
		MaxFoodPerDay:  &maxFood,
		MaxHoursPerDay: &maxHours,
	}, true)
	require.NoError(t, err)
	require.Equal(t, 1, result.Constraints.MaxFoodPerDay)
	require.Equal(t, 5.5, result.Constraints.MaxHoursPerDay)
	require.Equal(t, 15.0, result.Constraints.MaxTravelMinutesInCluster)
}

func TestRunScheduleDeniedWithoutAccess(t *testing.T) {
	_, tripService, tripRepo, poiRepo, accommodationRepo, matrix := scheduleFixture()
	tripService.authErr = utils.ErrTripAccessDenied
	service := NewScheduleService(tripService, tripRepo, poiRepo, accommodationRepo, matrix)

	_, err := service.RunSchedule(context.Background(), uuid.New().String(), uuid.New().String(), request_models.ScheduleRequest{}, false)
	require.ErrorIs(t, err, utils.ErrTripAccessDenied)
	require.Zero(t, poiRepo.applyCalls)
}

func TestGetScheduleStateGroupsByDay(t *testing.T) {
	trip, tripService, tripRepo, _, accommodationRepo, matrix := scheduleFixture()

	day1 := mustDate("2026-06-01")
	second := &dbm.POI{TripID: trip.ID, Name: "Castle", ScheduledDate: &day1, DayOrder: intPtr(2)}
	second.ID = uuid.New()
	first := &dbm.POI{TripID: trip.ID, Name: "Market", ScheduledDate: &day1, DayOrder: intPtr(1)}
	first.ID = uuid.New()
	pinned := &dbm.POI{TripID: trip.ID, Name: "Dinner", ScheduledDate: &day1, IsAnchored: true, AnchoredDate: &day1}
	pinned.ID = uuid.New()
	loose := &dbm.POI{TripID: trip.ID, Name: "Maybe later"}
	loose.ID = uuid.New()

	poiRepo := newFakePOIRepo(second, first, pinned, loose)
	accommodationRepo.accommodations = []dbm.Accommodation{
		{TripID: trip.ID, DayNumber: 2, Name: "Alfama Guesthouse"},
	}
	service := NewScheduleService(tripService, tripRepo, poiRepo, accommodationRepo, matrix)

	state, err := service.GetScheduleState(context.Background(), trip.ID.String(), trip.OwnerID.String())
	require.NoError(t, err)
	require.Equal(t, trip.ID.String(), state.TripID)
	require.Len(t, state.Days, 2)

	dayOne := state.Days[0]
	require.Equal(t, "2026-06-01", dayOne.Date)
	require.Len(t, dayOne.POIs, 3)
	require.Equal(t, "Market", dayOne.POIs[0].Name)
	require.Equal(t, "Castle", dayOne.POIs[1].Name)
	// A fresh anchor has no order yet and sorts last.
	require.Equal(t, "Dinner", dayOne.POIs[2].Name)
	require.Nil(t, dayOne.Accommodation)

	dayTwo := state.Days[1]
	require.NotNil(t, dayTwo.POIs)
	require.Empty(t, dayTwo.POIs)
	require.NotNil(t, dayTwo.Accommodation)
	require.Equal(t, "Alfama Guesthouse", dayTwo.Accommodation.Name)

	require.Len(t, state.Unscheduled, 1)
	require.Equal(t, "Maybe later", state.Unscheduled[0].Name)
}

func intPtr(v int) *int { return &v }
