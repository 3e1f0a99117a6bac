package feed_fx

import (
	"context"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"

	"vibecheck/internal/api/controllers"
	"vibecheck/internal/repositories"
	"vibecheck/internal/services"
)

var Module = fx.Options(
	fx.Provide(
		provideFeedService,
		provideFeedController),
	fx.Invoke(startFeedLoop),
)

func provideFeedService(redisClient *redis.Client, locationRepo repositories.LocationRepository) services.FeedServiceInterface {
	return services.NewFeedService(redisClient, locationRepo)
}

func provideFeedController(feedService services.FeedServiceInterface) *controllers.FeedController {
	return controllers.NewFeedController(feedService)
}

func startFeedLoop(lc fx.Lifecycle, feedService services.FeedServiceInterface) {
	loopCtx, cancel := context.WithCancel(context.Background())
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go feedService.Run(loopCtx)
			return nil
		},
		OnStop: func(ctx context.Context) error {
			cancel()
			return nil
		},
	})
}
