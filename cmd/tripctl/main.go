package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"tripflow/internal/infra"
	"tripflow/internal/models/db_models"
)

var rootCmd = &cobra.Command{
	Use:   "tripctl",
	Short: "Tripflow maintenance commands",
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE:  runMigrate,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedCmd)
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Info().Msg("No .env file found (using environment variables)")
	}

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runMigrate(cmd *cobra.Command, args []string) error {
	db := infra.InitPostgresql()
	defer infra.ClosePostgresql(db)

	// The catalog table needs pgvector before AutoMigrate sees the
	// vector column type.
	if err := db.Exec("CREATE EXTENSION IF NOT EXISTS vector").Error; err != nil {
		return err
	}

	if err := db.AutoMigrate(
		&db_models.Account{},
		&db_models.Trip{},
		&db_models.TripDay{},
		&db_models.TripMember{},
		&db_models.Destination{},
		&db_models.POI{},
		&db_models.Accommodation{},
		&db_models.PoiEmbedding{},
	); err != nil {
		return err
	}

	log.Info().Msg("Migration completed")
	return nil
}
