package geocoding_fx

import (
	"go.uber.org/fx"

	"vibecheck/internal/api/controllers"
	"vibecheck/internal/services"
)

var Module = fx.Provide(
	provideResolveCache,
	provideGeocoder,
	provideGeocodingController)

func provideResolveCache() services.ResolveCache {
	return services.NewInMemoryResolveCache()
}

func provideGeocoder(cache services.ResolveCache) services.GeocodingServiceInterface {
	return services.NewMapboxGeocoder(cache)
}

func provideGeocodingController(geocoder services.GeocodingServiceInterface) *controllers.GeocodingController {
	return controllers.NewGeocodingController(geocoder)
}
