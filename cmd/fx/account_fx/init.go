package account_fx

import (
	"log"
	"os"

	"go.uber.org/fx"
	"gorm.io/gorm"

	"vibecheck/internal/api/controllers"
	"vibecheck/internal/repositories"
	"vibecheck/internal/services"
	"vibecheck/pkg/middleware"
)

var Module = fx.Provide(
	provideAccountRepo,
	provideAccountService,
	provideAccountController,
	provideTokenValidator)

func provideAccountRepo(db *gorm.DB) repositories.AccountRepository {
	return repositories.NewAccountRepository(db)
}

func provideAccountService(accountRepo repositories.AccountRepository) services.AccountServiceInterface {
	return services.NewAccountService(accountRepo)
}

func provideAccountController(accountService services.AccountServiceInterface) *controllers.AccountController {
	return controllers.NewAccountController(accountService)
}

// provideTokenValidator wires the dev double only when explicitly requested,
// so it is never reachable in a normally configured deployment.
func provideTokenValidator() middleware.TokenValidator {
	if os.Getenv("AUTH_MODE") == "dev" {
		log.Println("AUTH_MODE=dev: accepting any bearer token with a fixed dev identity")
		return middleware.DevValidator{}
	}
	return middleware.JWTValidator{}
}
