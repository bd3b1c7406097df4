package poi_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"tripflow/internal/repositories"
	"tripflow/internal/services"
	"tripflow/internal/worker"
)

var Module = fx.Provide(
	providePoiRepo, providePoiService)

func providePoiRepo(db *gorm.DB) repositories.POIRepository {
	return repositories.NewPOIRepository(db)
}

func providePoiService(
	tripService services.TripServiceInterface,
	poiRepo repositories.POIRepository,
	distributor worker.TaskDistributor,
) services.POIServiceInterface {
	return services.NewPOIService(tripService, poiRepo, distributor)
}
