package analytics_fx

import (
	"github.com/jmoiron/sqlx"
	"go.uber.org/fx"

	"vibecheck/internal/api/controllers"
	"vibecheck/internal/infra"
	"vibecheck/internal/repositories"
	"vibecheck/internal/services"
)

var Module = fx.Provide(
	provideAnalyticsDB,
	provideAnalyticsRepo,
	provideAnalyticsService,
	provideAnalyticsController)

func provideAnalyticsDB() *sqlx.DB {
	return infra.InitAnalyticsDB()
}

func provideAnalyticsRepo(db *sqlx.DB) repositories.AnalyticsRepository {
	if db == nil {
		return nil
	}
	return repositories.NewAnalyticsRepository(db)
}

func provideAnalyticsService(analyticsRepo repositories.AnalyticsRepository) services.AnalyticsServiceInterface {
	return services.NewAnalyticsService(analyticsRepo)
}

func provideAnalyticsController(analyticsService services.AnalyticsServiceInterface) *controllers.AnalyticsController {
	return controllers.NewAnalyticsController(analyticsService)
}
