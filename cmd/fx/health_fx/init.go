package health_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"vibecheck/cmd/fx/vibe_fx"
	"vibecheck/internal/api/controllers"
)

var Module = fx.Provide(
	provideHealthController)

func provideHealthController(db *gorm.DB, vibeConfig vibe_fx.Config) *controllers.HealthController {
	return controllers.NewHealthController(db, vibeConfig.Configured())
}
