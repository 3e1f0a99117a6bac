package redis_fx

import (
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"

	"vibecheck/internal/infra"
)

var Module = fx.Provide(
	provideRedis)

func provideRedis() *redis.Client {
	return infra.InitRedis()
}
