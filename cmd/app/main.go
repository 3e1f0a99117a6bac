package main

import (
	"context"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/fx"

	"vibecheck/cmd/fx/account_fx"
	"vibecheck/cmd/fx/analytics_fx"
	"vibecheck/cmd/fx/db_fx"
	"vibecheck/cmd/fx/feed_fx"
	"vibecheck/cmd/fx/geocoding_fx"
	"vibecheck/cmd/fx/health_fx"
	"vibecheck/cmd/fx/locations_fx"
	"vibecheck/cmd/fx/redis_fx"
	"vibecheck/cmd/fx/vibe_fx"
	"vibecheck/internal/api/controllers"
	"vibecheck/pkg/middleware"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment configuration")
	}

	app := fx.New(
		db_fx.Module,
		redis_fx.Module,
		analytics_fx.Module,
		geocoding_fx.Module,
		vibe_fx.Module,
		feed_fx.Module,
		locations_fx.Module,
		account_fx.Module,
		health_fx.Module,

		fx.Provide(ProvideRouter),
		fx.Invoke(StartServer),
	)

	app.Run()
}

func StartServer(lc fx.Lifecycle, engine *gin.Engine) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			port := os.Getenv("PORT")
			if port == "" {
				port = "8080"
			}
			go func() {
				log.Printf("Starting HTTP server at :%s", port)
				if err := engine.Run(":" + port); err != nil {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Println("Stopping HTTP server")
			return nil
		},
	})
}

func ProvideRouter(
	locationsController *controllers.LocationsController,
	vibeController *controllers.VibeController,
	geocodingController *controllers.GeocodingController,
	feedController *controllers.FeedController,
	analyticsController *controllers.AnalyticsController,
	accountController *controllers.AccountController,
	healthController *controllers.HealthController,
	tokenValidator middleware.TokenValidator,
) *gin.Engine {

	r := gin.Default()
	r.Use(gin.Recovery())
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.TraceIDMiddleware())

	RegisterRoutes(r,
		locationsController,
		vibeController,
		geocodingController,
		feedController,
		analyticsController,
		accountController,
		healthController,
		tokenValidator)

	return r
}

func RegisterRoutes(r *gin.Engine,
	locationsController *controllers.LocationsController,
	vibeController *controllers.VibeController,
	geocodingController *controllers.GeocodingController,
	feedController *controllers.FeedController,
	analyticsController *controllers.AnalyticsController,
	accountController *controllers.AccountController,
	healthController *controllers.HealthController,
	tokenValidator middleware.TokenValidator) {

	api := r.Group("/api")

	api.GET("/health", healthController.Check)

	locations := api.Group("/locations")
	locations.GET("", locationsController.List)
	locations.GET("/feed", feedController.Stream)
	locations.GET("/leaderboard", locationsController.Leaderboard)
	locations.GET("/:id", locationsController.GetByID)
	locations.GET("/:id/similar", locationsController.Similar)
	locations.POST("", middleware.AuthMiddleware(tokenValidator), locationsController.Submit)

	api.POST("/analyze-vibe", vibeController.AnalyzeVibe)

	geocode := api.Group("/geocode")
	geocode.GET("/suggest", geocodingController.Suggest)
	geocode.GET("/resolve", geocodingController.Resolve)

	api.POST("/analytics/events", middleware.OptionalAuthMiddleware(tokenValidator), analyticsController.RecordEvent)

	accounts := api.Group("/accounts")
	accounts.POST("/register", accountController.Register)
	accounts.POST("/login", accountController.Login)
}
