package main

import (
	"context"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"go.uber.org/fx"
	"gorm.io/gorm"

	"tripflow/cmd/fx/accommodation_fx"
	"tripflow/cmd/fx/account_fx"
	"tripflow/cmd/fx/controllers_fx"
	"tripflow/cmd/fx/db_fx"
	"tripflow/cmd/fx/mail_fx"
	"tripflow/cmd/fx/matrix_fx"
	"tripflow/cmd/fx/memcache_fx"
	"tripflow/cmd/fx/poi_fx"
	"tripflow/cmd/fx/redis_fx"
	"tripflow/cmd/fx/schedule_fx"
	"tripflow/cmd/fx/suggest_fx"
	"tripflow/cmd/fx/trip_fx"
	"tripflow/cmd/fx/worker_fx"
	"tripflow/internal/api/controllers"
	"tripflow/internal/infra"
	"tripflow/internal/worker"
	"tripflow/pkg/metrics"
	"tripflow/pkg/middleware"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Info().Msg("No .env file found (using environment variables)")
	}

	if os.Getenv("APP_ENV") == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	app := fx.New(
		db_fx.Module,
		redis_fx.Module,
		memcache_fx.Module,
		mail_fx.Module,
		matrix_fx.Module,
		worker_fx.Module,

		account_fx.Module,
		trip_fx.Module,
		poi_fx.Module,
		accommodation_fx.Module,
		schedule_fx.Module,
		suggest_fx.Module,
		controllers_fx.Module,

		fx.Provide(provideRateLimiter),
		fx.Provide(ProvideRouter),
		fx.Invoke(StartServer),
		fx.Invoke(StartWorker),
		fx.Invoke(RegisterCleanup),
	)

	app.Run()
}

func provideRateLimiter() *middleware.RateLimiter {
	return middleware.NewRateLimiter(middleware.DefaultRateLimiterConfig())
}

func StartServer(lc fx.Lifecycle, engine *gin.Engine) {
	srv := &http.Server{
		Addr:    ":" + envOr("PORT", "8080"),
		Handler: engine,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Info().Str("addr", srv.Addr).Msg("Starting HTTP server")
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal().Err(err).Msg("Failed to start server")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info().Msg("Stopping HTTP server")
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

func StartWorker(lc fx.Lifecycle, processor worker.TaskProcessor, distributor worker.TaskDistributor) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Info().Msg("Starting task processor")
				if err := processor.Start(); err != nil {
					log.Fatal().Err(err).Msg("Failed to start task processor")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info().Msg("Stopping task processor")
			processor.Shutdown()
			return distributor.Close()
		},
	})
}

func RegisterCleanup(lc fx.Lifecycle, db *gorm.DB, redisClient *redis.Client, rl *middleware.RateLimiter) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			rl.Stop()
			infra.CloseRedis(redisClient)
			infra.ClosePostgresql(db)
			return nil
		},
	})
}

func ProvideRouter(
	rl *middleware.RateLimiter,
	accountController *controllers.AccountController,
	tripController *controllers.TripController,
	poiController *controllers.POIController,
	accommodationController *controllers.AccommodationController,
	scheduleController *controllers.ScheduleController,
	suggestController *controllers.SuggestController) *gin.Engine {

	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(middleware.TraceIDMiddleware())
	r.Use(middleware.CORSMiddleware(allowedOrigins()))
	r.Use(metrics.PrometheusMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", metrics.MetricsHandler())

	RegisterRoutes(r, rl,
		accountController, tripController, poiController,
		accommodationController, scheduleController, suggestController)

	return r
}

func RegisterRoutes(r *gin.Engine, rl *middleware.RateLimiter,
	accountController *controllers.AccountController,
	tripController *controllers.TripController,
	poiController *controllers.POIController,
	accommodationController *controllers.AccommodationController,
	scheduleController *controllers.ScheduleController,
	suggestController *controllers.SuggestController) {

	accounts := r.Group("/accounts", rl.Middleware())
	accounts.POST("/register", accountController.Register)
	accounts.POST("/login", accountController.Login)
	accounts.POST("/forgot-password", accountController.ForgotPassword)
	accounts.POST("/reset-password", accountController.ResetPassword)
	accounts.GET("/me", middleware.JWTAuthMiddleware(), accountController.GetProfile)

	// The limiter runs after auth here so members are throttled per
	// account, not per IP.
	trips := r.Group("/trips", middleware.JWTAuthMiddleware(), rl.Middleware())
	trips.POST("", tripController.CreateTrip)
	trips.GET("", tripController.ListTrips)
	trips.GET("/:tripId", tripController.GetTrip)
	trips.PUT("/:tripId", tripController.UpdateTrip)
	trips.DELETE("/:tripId", tripController.DeleteTrip)
	trips.POST("/:tripId/members", tripController.InviteMember)

	trips.POST("/:tripId/pois", poiController.CreatePOI)
	trips.GET("/:tripId/pois", poiController.ListPOIs)
	trips.GET("/:tripId/pois/:poiId", poiController.GetPOI)
	trips.PUT("/:tripId/pois/:poiId", poiController.UpdatePOI)
	trips.DELETE("/:tripId/pois/:poiId", poiController.DeletePOI)
	trips.POST("/:tripId/pois/:poiId/anchor", poiController.AnchorPOI)
	trips.DELETE("/:tripId/pois/:poiId/anchor", poiController.UnanchorPOI)

	trips.PUT("/:tripId/accommodations", accommodationController.UpsertAccommodation)
	trips.GET("/:tripId/accommodations", accommodationController.ListAccommodations)
	trips.DELETE("/:tripId/accommodations/:dayNumber", accommodationController.DeleteAccommodation)

	trips.POST("/:tripId/schedule", scheduleController.RunSchedule)
	trips.GET("/:tripId/schedule", scheduleController.GetScheduleState)

	trips.POST("/:tripId/suggestions", suggestController.SuggestForTrip)
}

func allowedOrigins() []string {
	raw := os.Getenv("CORS_ALLOWED_ORIGINS")
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
