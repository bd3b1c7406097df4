package schedule_fx

import (
	"go.uber.org/fx"

	"tripflow/internal/repositories"
	"tripflow/internal/services"
)

var Module = fx.Provide(provideScheduleService)

func provideScheduleService(
	tripService services.TripServiceInterface,
	tripRepo repositories.TripRepository,
	poiRepo repositories.POIRepository,
	accommodationRepo repositories.AccommodationRepository,
	matrix services.MatrixServiceInterface,
) services.ScheduleServiceInterface {
	return services.NewScheduleService(tripService, tripRepo, poiRepo, accommodationRepo, matrix)
}
