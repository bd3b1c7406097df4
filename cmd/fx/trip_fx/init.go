package trip_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"tripflow/internal/repositories"
	"tripflow/internal/services"
)

var Module = fx.Provide(provideTripRepo, provideTripService)

func provideTripRepo(db *gorm.DB) repositories.TripRepository {
	return repositories.NewTripRepository(db)
}

func provideTripService(
	tripRepo repositories.TripRepository,
	accountRepo repositories.AccountRepository,
	poiRepo repositories.POIRepository,
	ors services.ORSClientInterface,
	mailService services.IMailService,
) services.TripServiceInterface {
	return services.NewTripService(tripRepo, accountRepo, poiRepo, ors, mailService)
}
