package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/lib/pq"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"tripflow/internal/infra"
	"tripflow/internal/models/db_models"
	"tripflow/internal/repositories"
	"tripflow/pkg/utils"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load a starter place catalog with embeddings",
	RunE:  runSeed,
}

type seedPlace struct {
	ID          string
	Name        string
	Description string
	City        string
	Country     string
	Category    string
	Tags        []string
	Latitude    float64
	Longitude   float64
	Minutes     int
}

var starterCatalog = []seedPlace{
	{
		ID: "louvre-museum", Name: "Louvre Museum",
		Description: "The world's largest art museum, home to the Mona Lisa and thousands of works from antiquity to the 19th century.",
		City:        "Paris", Country: "France", Category: "museum",
		Tags:     []string{"art", "history", "indoor"},
		Latitude: 48.8606, Longitude: 2.3376, Minutes: 180,
	},
	{
		ID: "eiffel-tower", Name: "Eiffel Tower",
		Description: "Iron lattice tower on the Champ de Mars with observation decks over the city.",
		City:        "Paris", Country: "France", Category: "landmark",
		Tags:     []string{"views", "architecture", "iconic"},
		Latitude: 48.8584, Longitude: 2.2945, Minutes: 120,
	},
	{
		ID: "le-comptoir", Name: "Le Comptoir du Relais",
		Description: "Classic Saint-Germain bistro serving traditional French fare at tight tables.",
		City:        "Paris", Country: "France", Category: "food",
		Tags:     []string{"bistro", "french", "lunch"},
		Latitude: 48.8529, Longitude: 2.3388, Minutes: 90,
	},
	{
		ID: "jardin-du-luxembourg", Name: "Jardin du Luxembourg",
		Description: "Formal gardens with tree-lined promenades, fountains and the Luxembourg Palace.",
		City:        "Paris", Country: "France", Category: "park",
		Tags:     []string{"gardens", "walking", "outdoor"},
		Latitude: 48.8462, Longitude: 2.3372, Minutes: 60,
	},
	{
		ID: "senso-ji", Name: "Senso-ji Temple",
		Description: "Tokyo's oldest temple, approached through the Kaminarimon gate and the Nakamise shopping street.",
		City:        "Tokyo", Country: "Japan", Category: "temple",
		Tags:     []string{"history", "culture", "shrine"},
		Latitude: 35.7148, Longitude: 139.7967, Minutes: 90,
	},
	{
		ID: "tsukiji-market", Name: "Tsukiji Outer Market",
		Description: "Dense blocks of food stalls and counters famous for fresh sushi breakfasts.",
		City:        "Tokyo", Country: "Japan", Category: "food",
		Tags:     []string{"sushi", "market", "breakfast"},
		Latitude: 35.6654, Longitude: 139.7707, Minutes: 90,
	},
	{
		ID: "shinjuku-gyoen", Name: "Shinjuku Gyoen",
		Description: "Large landscape garden blending Japanese, French and English styles, popular in cherry blossom season.",
		City:        "Tokyo", Country: "Japan", Category: "park",
		Tags:     []string{"gardens", "sakura", "outdoor"},
		Latitude: 35.6852, Longitude: 139.7100, Minutes: 90,
	},
	{
		ID: "sagrada-familia", Name: "Sagrada Familia",
		Description: "Gaudi's unfinished basilica, the most visited monument in Spain.",
		City:        "Barcelona", Country: "Spain", Category: "landmark",
		Tags:     []string{"architecture", "gaudi", "iconic"},
		Latitude: 41.4036, Longitude: 2.1744, Minutes: 120,
	},
	{
		ID: "boqueria-market", Name: "Mercat de la Boqueria",
		Description: "Public market off La Rambla stacked with produce, jamon and tapas bars.",
		City:        "Barcelona", Country: "Spain", Category: "food",
		Tags:     []string{"market", "tapas", "lunch"},
		Latitude: 41.3817, Longitude: 2.1716, Minutes: 60,
	},
	{
		ID: "park-guell", Name: "Park Guell",
		Description: "Hillside park of mosaic terraces and winding paths designed by Gaudi.",
		City:        "Barcelona", Country: "Spain", Category: "park",
		Tags:     []string{"gaudi", "views", "outdoor"},
		Latitude: 41.4145, Longitude: 2.1527, Minutes: 90,
	},
}

func runSeed(cmd *cobra.Command, args []string) error {
	db := infra.InitPostgresql()
	defer infra.ClosePostgresql(db)

	repo := repositories.NewPoiEmbeddingRepository(db)
	ctx := context.Background()

	count, err := repo.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		log.Info().Int64("rows", count).Msg("Catalog already seeded, nothing to do")
		return nil
	}

	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return fmt.Errorf("OPENAI_API_KEY is required to embed the seed catalog")
	}
	embeddings := utils.NewOpenAIEmbeddingClient(apiKey)

	texts := make([]string, len(starterCatalog))
	for i, place := range starterCatalog {
		texts[i] = embeddingText(place)
	}

	vectors, err := embeddings.GetEmbeddings(ctx, texts)
	if err != nil {
		return fmt.Errorf("embed seed catalog: %w", err)
	}

	for i, place := range starterCatalog {
		row := &db_models.PoiEmbedding{
			PoiID:                place.ID,
			Name:                 place.Name,
			Description:          place.Description,
			City:                 place.City,
			Country:              place.Country,
			Category:             place.Category,
			Tags:                 pq.StringArray(place.Tags),
			Latitude:             place.Latitude,
			Longitude:            place.Longitude,
			VisitDurationMinutes: place.Minutes,
			Embedding:            vectors[i],
		}
		if err := repo.Create(ctx, row); err != nil {
			return fmt.Errorf("insert %s: %w", place.ID, err)
		}
	}

	log.Info().Int("rows", len(starterCatalog)).Msg("Catalog seeded")
	return nil
}

func embeddingText(place seedPlace) string {
	return strings.Join([]string{
		place.Name,
		place.Description,
		place.City + ", " + place.Country,
		place.Category,
		strings.Join(place.Tags, " "),
	}, ". ")
}
