package accommodation_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"tripflow/internal/repositories"
	"tripflow/internal/services"
	"tripflow/internal/worker"
)

var Module = fx.Provide(
	provideAccommodationRepo, provideAccommodationService)

func provideAccommodationRepo(db *gorm.DB) repositories.AccommodationRepository {
	return repositories.NewAccommodationRepository(db)
}

func provideAccommodationService(
	tripService services.TripServiceInterface,
	accommodationRepo repositories.AccommodationRepository,
	ors services.ORSClientInterface,
	distributor worker.TaskDistributor,
) services.AccommodationServiceInterface {
	return services.NewAccommodationService(tripService, accommodationRepo, ors, distributor)
}
