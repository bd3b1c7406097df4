package suggest_fx

import (
	"os"

	"go.uber.org/fx"
	"gorm.io/gorm"

	"tripflow/internal/repositories"
	"tripflow/internal/services"
	"tripflow/pkg/utils"
)

var Module = fx.Provide(
	providePoiEmbeddingRepo, provideEmbeddingClient, providePlanGenerator, provideSuggestService)

func providePoiEmbeddingRepo(db *gorm.DB) repositories.PoiEmbeddingRepository {
	return repositories.NewPoiEmbeddingRepository(db)
}

func provideEmbeddingClient() utils.EmbeddingClientInterface {
	return utils.NewOpenAIEmbeddingClient(os.Getenv("OPENAI_API_KEY"))
}

func providePlanGenerator() (utils.PlanGeneratorInterface, error) {
	return utils.NewGeminiPlanClient(os.Getenv("GEMINI_API_KEY"), os.Getenv("GEMINI_MODEL"))
}

func provideSuggestService(
	tripService services.TripServiceInterface,
	embeddings utils.EmbeddingClientInterface,
	catalogRepo repositories.PoiEmbeddingRepository,
	planner utils.PlanGeneratorInterface,
) services.SuggestServiceInterface {
	return services.NewSuggestService(tripService, embeddings, catalogRepo, planner)
}
