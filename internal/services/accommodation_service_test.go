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

func accommodationFixture() (*dbm.Trip, *fakeTripService, *fakeAccommodationRepo, *fakeORSClient, *fakeDistributor) {
	trip := &dbm.Trip{
		OwnerID:   uuid.New(),
		Title:     "Kyoto",
		StartDate: mustDate("2026-11-01"),
		EndDate:   mustDate("2026-11-03"),
		Days: []dbm.TripDay{
			{Date: mustDate("2026-11-01"), DayNumber: 1},
			{Date: mustDate("2026-11-02"), DayNumber: 2},
			{Date: mustDate("2026-11-03"), DayNumber: 3},
		},
	}
	trip.ID = uuid.New()
	return trip, &fakeTripService{trip: trip}, &fakeAccommodationRepo{}, &fakeORSClient{}, &fakeDistributor{}
}

func TestUpsertAccommodationGeocodesByAddress(t *testing.T) {
	trip, tripService, repo, ors, distributor := accommodationFixture()
	ors.geocode = &GeocodePoint{Latitude: 35.0116, Longitude: 135.7681, Label: "Kyoto"}
	service := NewAccommodationService(tripService, repo, ors, distributor)

	resp, err := service.UpsertAccommodation(context.Background(), trip.ID.String(), trip.OwnerID.String(), request_models.UpsertAccommodationRequest{
		DayNumber: 2,
		Name:      "Gion Ryokan",
		Address:   "570 Gionmachi Minamigawa, Kyoto",
	})
	require.NoError(t, err)
	require.True(t, tripService.lastNeedEditor)

	// The address wins over the name as geocode query.
	require.Equal(t, "570 Gionmachi Minamigawa, Kyoto", ors.lastQuery)
	require.NotNil(t, resp.Latitude)
	require.Equal(t, 35.0116, *resp.Latitude)

	require.Len(t, repo.upserted, 1)
	require.Len(t, distributor.payloads, 1)
	require.Equal(t, trip.ID.String(), distributor.payloads[0].TripID)
}

func TestUpsertAccommodationGeocodesByNameWithoutAddress(t *testing.T) {
	trip, tripService, repo, ors, distributor := accommodationFixture()
	ors.geocode = &GeocodePoint{Latitude: 35.0, Longitude: 135.75}
	service := NewAccommodationService(tripService, repo, ors, distributor)

	_, err := service.UpsertAccommodation(context.Background(), trip.ID.String(), trip.OwnerID.String(), request_models.UpsertAccommodationRequest{
		DayNumber: 1,
		Name:      "Gion Ryokan",
	})
	require.NoError(t, err)
	require.Equal(t, "Gion Ryokan", ors.lastQuery)
}

func TestUpsertAccommodationSkipsGeocodeWithCoordinates(t *testing.T) {
	trip, tripService, repo, ors, distributor := accommodationFixture()
	service := NewAccommodationService(tripService, repo, ors, distributor)

	resp, err := service.UpsertAccommodation(context.Background(), trip.ID.String(), trip.OwnerID.String(), request_models.UpsertAccommodationRequest{
		DayNumber: 1,
		Name:      "Machiya stay",
		Latitude:  f64(35.003),
		Longitude: f64(135.778),
	})
	require.NoError(t, err)
	require.Zero(t, ors.geocodeCalls)
	require.Equal(t, 35.003, *resp.Latitude)
}

func TestUpsertAccommodationToleratesGeocodeFailure(t *testing.T) {
	trip, tripService, repo, ors, distributor := accommodationFixture()
	ors.geocodeErr = context.DeadlineExceeded
	service := NewAccommodationService(tripService, repo, ors, distributor)

	resp, err := service.UpsertAccommodation(context.Background(), trip.ID.String(), trip.OwnerID.String(), request_models.UpsertAccommodationRequest{
		DayNumber: 1,
		Name:      "Unlocatable inn",
	})
	require.NoError(t, err)
	require.Nil(t, resp.Latitude)
	require.Len(t, repo.upserted, 1)
}

func TestUpsertAccommodationRejectsDayBeyondTrip(t *testing.T) {
	trip, tripService, repo, ors, distributor := accommodationFixture()
	service := NewAccommodationService(tripService, repo, ors, distributor)

	_, err := service.UpsertAccommodation(context.Background(), trip.ID.String(), trip.OwnerID.String(), request_models.UpsertAccommodationRequest{
		DayNumber: 4,
		Name:      "One night too many",
	})
	require.ErrorIs(t, err, utils.ErrDayNotInTrip)
	require.Empty(t, repo.upserted)
	require.Empty(t, distributor.payloads)
}

func TestDeleteAccommodationEnqueuesPrecompute(t *testing.T) {
	trip, tripService, repo, ors, distributor := accommodationFixture()
	service := NewAccommodationService(tripService, repo, ors, distributor)

	err := service.DeleteAccommodation(context.Background(), trip.ID.String(), trip.OwnerID.String(), 2)
	require.NoError(t, err)
	require.Equal(t, []int{2}, repo.deletedDays)
	require.Len(t, distributor.payloads, 1)
}

func TestListAccommodationsViewerAllowed(t *testing.T) {
	trip, tripService, repo, ors, distributor := accommodationFixture()
	repo.accommodations = []dbm.Accommodation{
		{TripID: trip.ID, DayNumber: 1, Name: "Gion Ryokan"},
	}
	service := NewAccommodationService(tripService, repo, ors, distributor)

	out, err := service.ListAccommodations(context.Background(), trip.ID.String(), uuid.New().String())
	require.NoError(t, err)
	require.False(t, tripService.lastNeedEditor)
	require.Len(t, out, 1)
	require.Equal(t, "Gion Ryokan", out[0].Name)
}
