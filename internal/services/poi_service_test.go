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

func poiFixture() (*dbm.Trip, *fakeTripService, *fakePOIRepo, *fakeDistributor) {
	trip := &dbm.Trip{
		OwnerID:   uuid.New(),
		Title:     "Rome",
		StartDate: mustDate("2026-09-10"),
		EndDate:   mustDate("2026-09-12"),
	}
	trip.ID = uuid.New()
	return trip, &fakeTripService{trip: trip}, newFakePOIRepo(), &fakeDistributor{}
}

func TestCreatePOIEnqueuesMatrixPrecompute(t *testing.T) {
	trip, tripService, poiRepo, distributor := poiFixture()
	service := NewPOIService(tripService, poiRepo, distributor)

	resp, err := service.CreatePOI(context.Background(), trip.ID.String(), trip.OwnerID.String(), request_models.CreatePOIRequest{
		Name:                 "Colosseum",
		Latitude:             f64(41.8902),
		Longitude:            f64(12.4922),
		Category:             "sight",
		Tags:                 []string{"history", "unesco"},
		VisitDurationMinutes: 120,
	})
	require.NoError(t, err)
	require.True(t, tripService.lastNeedEditor)
	require.Equal(t, "Colosseum", resp.Name)
	require.Equal(t, []string{"history", "unesco"}, resp.Tags)
	require.False(t, resp.IsAnchored)
	require.Empty(t, resp.ScheduledDate)

	require.Len(t, poiRepo.created, 1)
	require.Len(t, distributor.payloads, 1)
	require.Equal(t, trip.ID.String(), distributor.payloads[0].TripID)
}

func TestCreatePOIAnchoredPinsSchedule(t *testing.T) {
	trip, tripService, poiRepo, distributor := poiFixture()
	service := NewPOIService(tripService, poiRepo, distributor)

	resp, err := service.CreatePOI(context.Background(), trip.ID.String(), trip.OwnerID.String(), request_models.CreatePOIRequest{
		Name:         "Vatican Museums",
		IsAnchored:   true,
		AnchoredDate: "2026-09-11",
		AnchoredTime: "09:30",
	})
	require.NoError(t, err)
	require.True(t, resp.IsAnchored)
	require.Equal(t, "2026-09-11", resp.AnchoredDate)
	require.Equal(t, "09:30", resp.AnchoredTime)
	// The pin doubles as the placement until the next run reorders the day.
	require.Equal(t, "2026-09-11", resp.ScheduledDate)
}

func TestCreatePOIAnchorValidation(t *testing.T) {
	trip, tripService, poiRepo, distributor := poiFixture()
	service := NewPOIService(tripService, poiRepo, distributor)

	ctx := context.Background()

	_, err := service.CreatePOI(ctx, trip.ID.String(), trip.OwnerID.String(), request_models.CreatePOIRequest{
		Name:         "Outside the trip",
		IsAnchored:   true,
		AnchoredDate: "2026-09-20",
	})
	require.ErrorIs(t, err, utils.ErrDayNotInTrip)

	_, err = service.CreatePOI(ctx, trip.ID.String(), trip.OwnerID.String(), request_models.CreatePOIRequest{
		Name:         "Bad date",
		IsAnchored:   true,
		AnchoredDate: "11/09/2026",
	})
	require.ErrorIs(t, err, utils.ErrInvalidTimeFormat)

	_, err = service.CreatePOI(ctx, trip.ID.String(), trip.OwnerID.String(), request_models.CreatePOIRequest{
		Name:         "Bad time",
		IsAnchored:   true,
		AnchoredDate: "2026-09-11",
		AnchoredTime: "9am",
	})
	require.ErrorIs(t, err, utils.ErrInvalidTimeFormat)

	require.Empty(t, poiRepo.created)
	require.Empty(t, distributor.payloads)
}

func TestUpdatePOIClearsPlacement(t *testing.T) {
	trip, tripService, poiRepo, distributor := poiFixture()
	service := NewPOIService(tripService, poiRepo, distributor)

	scheduled := mustDate("2026-09-10")
	poi := &dbm.POI{TripID: trip.ID, Name: "Pantheon", ScheduledDate: &scheduled, DayOrder: intPtr(3)}
	poi.ID = uuid.New()
	poiRepo.pois[poi.ID.String()] = poi

	notes := "Buy tickets ahead"
	resp, err := service.UpdatePOI(context.Background(), trip.ID.String(), trip.OwnerID.String(), poi.ID.String(), request_models.UpdatePOIRequest{
		Notes: &notes,
	})
	require.NoError(t, err)
	require.Equal(t, "Buy tickets ahead", resp.Notes)
	require.Empty(t, resp.ScheduledDate)
	require.Nil(t, resp.DayOrder)
	require.Len(t, poiRepo.updated, 1)
	require.Len(t, distributor.payloads, 1)
}

func TestUpdatePOIKeepsAnchorPin(t *testing.T) {
	trip, tripService, poiRepo, distributor := poiFixture()
	service := NewPOIService(tripService, poiRepo, distributor)

	pinned := mustDate("2026-09-11")
	poi := &dbm.POI{
		TripID:        trip.ID,
		Name:          "Opera",
		IsAnchored:    true,
		AnchoredDate:  &pinned,
		AnchoredTime:  "20:00",
		ScheduledDate: &pinned,
		DayOrder:      intPtr(4),
	}
	poi.ID = uuid.New()
	poiRepo.pois[poi.ID.String()] = poi

	name := "Teatro dell'Opera"
	resp, err := service.UpdatePOI(context.Background(), trip.ID.String(), trip.OwnerID.String(), poi.ID.String(), request_models.UpdatePOIRequest{
		Name: &name,
	})
	require.NoError(t, err)
	require.True(t, resp.IsAnchored)
	require.Equal(t, "2026-09-11", resp.AnchoredDate)
	require.Equal(t, "2026-09-11", resp.ScheduledDate)
	// Only the in-day position is recomputed on the next run.
	require.Nil(t, resp.DayOrder)
}

func TestUpdatePOINotFound(t *testing.T) {
	trip, tripService, poiRepo, distributor := poiFixture()
	service := NewPOIService(tripService, poiRepo, distributor)

	_, err := service.UpdatePOI(context.Background(), trip.ID.String(), trip.OwnerID.String(), uuid.New().String(), request_models.UpdatePOIRequest{})
	require.ErrorIs(t, err, utils.ErrPOINotFound)
}

func TestAnchorAndUnanchorPOI(t *testing.T) {
	trip, tripService, poiRepo, distributor := poiFixture()
	service := NewPOIService(tripService, poiRepo, distributor)

	scheduled := mustDate("2026-09-10")
	poi := &dbm.POI{TripID: trip.ID, Name: "Trastevere dinner", Category: "food", ScheduledDate: &scheduled, DayOrder: intPtr(2)}
	poi.ID = uuid.New()
	poiRepo.pois[poi.ID.String()] = poi

	ctx := context.Background()

	resp, err := service.AnchorPOI(ctx, trip.ID.String(), trip.OwnerID.String(), poi.ID.String(), request_models.AnchorPOIRequest{
		Date: "2026-09-12",
		Time: "19:30",
	})
	require.NoError(t, err)
	require.True(t, resp.IsAnchored)
	require.Equal(t, "2026-09-12", resp.AnchoredDate)
	require.Equal(t, "19:30", resp.AnchoredTime)
	require.Equal(t, "2026-09-12", resp.ScheduledDate)
	require.Nil(t, resp.DayOrder)

	_, err = service.AnchorPOI(ctx, trip.ID.String(), trip.OwnerID.String(), poi.ID.String(), request_models.AnchorPOIRequest{
		Date: "2026-10-01",
	})
	require.ErrorIs(t, err, utils.ErrDayNotInTrip)

	resp, err = service.UnanchorPOI(ctx, trip.ID.String(), trip.OwnerID.String(), poi.ID.String())
	require.NoError(t, err)
	require.False(t, resp.IsAnchored)
	require.Empty(t, resp.AnchoredDate)
	require.Empty(t, resp.AnchoredTime)
	require.Empty(t, resp.ScheduledDate)
}

func TestDeletePOIEnqueuesPrecompute(t *testing.T) {
	trip, tripService, poiRepo, distributor := poiFixture()
	service := NewPOIService(tripService, poiRepo, distributor)

	poi := &dbm.POI{TripID: trip.ID, Name: "Skipped stop"}
	poi.ID = uuid.New()
	poiRepo.pois[poi.ID.String()] = poi

	err := service.DeletePOI(context.Background(), trip.ID.String(), trip.OwnerID.String(), poi.ID.String())
	require.NoError(t, err)
	require.Equal(t, []uuid.UUID{poi.ID}, poiRepo.deleted)
	require.Len(t, distributor.payloads, 1)

	err = service.DeletePOI(context.Background(), trip.ID.String(), trip.OwnerID.String(), poi.ID.String())
	require.ErrorIs(t, err, utils.ErrPOINotFound)
}

func TestListPOIsDeniedWithoutAccess(t *testing.T) {
	_, tripService, poiRepo, distributor := poiFixture()
	tripService.authErr = utils.ErrTripAccessDenied
	service := NewPOIService(tripService, poiRepo, distributor)

	_, err := service.ListPOIs(context.Background(), uuid.New().String(), uuid.New().String())
	require.ErrorIs(t, err, utils.ErrTripAccessDenied)
}
