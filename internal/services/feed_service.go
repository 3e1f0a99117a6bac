package services

import (
	"context"
	"log"
	"sync"

	"github.com/redis/go-redis/v9"

	"vibecheck/internal/models/response_models"
	"vibecheck/internal/repositories"
)

const locationsChannel = "locations:changed"

// ChangeNotifier is how writers announce that the location collection moved.
type ChangeNotifier interface {
	LocationChanged(ctx context.Context, id string)
}

// FeedServiceInterface pushes the full current record set to every subscriber
// whenever any writer (this process or another) touches the collection.
// Delivery is at-least-once per logical change and unordered across records.
type FeedServiceInterface interface {
	ChangeNotifier
	Subscribe() (<-chan []response_models.Location, func())
	Run(ctx context.Context)
}

type FeedService struct {
	redis        *redis.Client
	locationRepo repositories.LocationRepository

	mu          sync.Mutex
	subscribers map[int]chan []response_models.Location
	nextID      int
}

func NewFeedService(redisClient *redis.Client, locationRepo repositories.LocationRepository) FeedServiceInterface {
	return &FeedService{
		redis:        redisClient,
		locationRepo: locationRepo,
		subscribers:  make(map[int]chan []response_models.Location),
	}
}

// LocationChanged publishes the change so every process sees it. When Redis
// is unreachable the local subscribers are still served directly.
func (f *FeedService) LocationChanged(ctx context.Context, id string) {
	if f.redis != nil {
		if err := f.redis.Publish(ctx, locationsChannel, id).Err(); err == nil {
			return
		} else {
			log.Printf("Redis publish failed, falling back to local broadcast: %v", err)
		}
	}
	f.Broadcast(ctx)
}

// Run consumes cross-process change notifications until ctx is cancelled.
func (f *FeedService) Run(ctx context.Context) {
	if f.redis == nil {
		return
	}
	pubsub := f.redis.Subscribe(ctx, locationsChannel)
	defer pubsub.Close()

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case _, ok := <-ch:
			if !ok {
				return
			}
			f.Broadcast(ctx)
		}
	}
}

// Broadcast loads the current record set and fans it out. Every snapshot is
// the full set, so stale pending deliveries are superseded: when a
// subscriber's buffer is full the oldest queued snapshot is discarded to make
// room for this one. A live subscriber always ends up holding the newest set
// without ever stalling the hub.
func (f *FeedService) Broadcast(ctx context.Context) {
	locations, err := f.locationRepo.List(ctx)
	if err != nil {
		log.Printf("Feed snapshot load failed: %v", err)
		return
	}

	snapshot := make([]response_models.Location, 0, len(locations))
	for _, loc := range locations {
		snapshot = append(snapshot, toLocationResponse(&loc))
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	for _, sub := range f.subscribers {
		select {
		case sub <- snapshot:
			continue
		default:
		}
		select {
		case <-sub:
		default:
		}
		select {
		case sub <- snapshot:
		default:
		}
	}
}

func (f *FeedService) Subscribe() (<-chan []response_models.Location, func()) {
	f.mu.Lock()
	defer f.mu.Unlock()

	id := f.nextID
	f.nextID++
	ch := make(chan []response_models.Location, 4)
	f.subscribers[id] = ch

	unsubscribe := func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		if sub, ok := f.subscribers[id]; ok {
			delete(f.subscribers, id)
			close(sub)
		}
	}
	return ch, unsubscribe
}
