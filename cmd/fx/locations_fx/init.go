package locations_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"vibecheck/internal/api/controllers"
	"vibecheck/internal/repositories"
	"vibecheck/internal/services"
)

var Module = fx.Provide(
	provideLocationRepo,
	provideLocationService,
	provideLocationsController)

func provideLocationRepo(db *gorm.DB) repositories.LocationRepository {
	return repositories.NewLocationRepository(db)
}

func provideLocationService(
	locationRepo repositories.LocationRepository,
	geocoder services.GeocodingServiceInterface,
	vibe services.VibeServiceInterface,
	analytics services.AnalyticsServiceInterface,
	feed services.FeedServiceInterface,
) services.LocationServiceInterface {
	return services.NewLocationService(locationRepo, geocoder, vibe, analytics, feed)
}

func provideLocationsController(locationService services.LocationServiceInterface) *controllers.LocationsController {
	return controllers.NewLocationsController(locationService)
}
