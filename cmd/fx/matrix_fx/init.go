package matrix_fx

import (
	"os"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"

	"tripflow/internal/repositories"
	"tripflow/internal/services"
	mem "tripflow/pkg/memcache"
)

var Module = fx.Provide(
	provideORSClient, provideMatrixService)

func provideORSClient() (services.ORSClientInterface, error) {
	return services.NewORSClient(os.Getenv("ORS_API_KEY"))
}

func provideMatrixService(
	ors services.ORSClientInterface,
	pairs *mem.PairCache,
	redisClient *redis.Client,
	tripRepo repositories.TripRepository,
	poiRepo repositories.POIRepository,
	accommodationRepo repositories.AccommodationRepository,
) services.MatrixServiceInterface {
	return services.NewMatrixService(ors, pairs, redisClient, tripRepo, poiRepo, accommodationRepo)
}
