package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"os"
	"strings"
	"sync"
	"time"

	"vibecheck/internal/models/response_models"
)

type GeocodingServiceInterface interface {
	// Suggest returns ranked autocomplete candidates biased toward the home
	// region. Zero upstream results come back as an empty slice with a nil
	// error; transport failures return the empty slice plus the error so the
	// caller can report them, but either way there are no suggestions.
	Suggest(ctx context.Context, partial string) ([]response_models.Suggestion, error)

	// Resolve turns free text into coordinates. "Not found" and "upstream
	// unreachable" both come back as nil, nil: absence, not an error, so the
	// submission flow can fall back to manual suggestion picking.
	Resolve(ctx context.Context, address string) (*response_models.Coordinates, error)
}

// --------- In-memory TTL cache for resolved queries ---------

type resolveCacheEntry struct {
	Coords    *response_models.Coordinates
	ExpiresAt time.Time
}

type ResolveCache interface {
	Get(query string) (*response_models.Coordinates, bool)
	Set(query string, coords *response_models.Coordinates, ttl time.Duration)
}

type inMemoryResolveCache struct {
	mu    sync.RWMutex
	store map[string]resolveCacheEntry
}

func NewInMemoryResolveCache() ResolveCache {
	return &inMemoryResolveCache{store: make(map[string]resolveCacheEntry)}
}

func (c *inMemoryResolveCache) Get(query string) (*response_models.Coordinates, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	it, ok := c.store[query]
	if !ok || time.Now().After(it.ExpiresAt) {
		return nil, false
	}
	return it.Coords, true
}

func (c *inMemoryResolveCache) Set(query string, coords *response_models.Coordinates, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store[query] = resolveCacheEntry{Coords: coords, ExpiresAt: time.Now().Add(ttl)}
}

// -------------- Mapbox geocoding client ---------------

// Downtown Austin, TX. Suggestions and lookups are biased here.
const (
	austinLat = 30.2672
	austinLng = -97.7431
)

type MapboxGeocoder struct {
	HTTP         *http.Client
	AccessToken  string
	BaseURL      string
	Cache        ResolveCache
	DefaultTTL   time.Duration
	ProximityLat float64
	ProximityLng float64
}

func NewMapboxGeocoder(cache ResolveCache) *MapboxGeocoder {
	token := os.Getenv("MAPBOX_ACCESS_TOKEN")
	if token == "" {
		log.Println("MAPBOX_ACCESS_TOKEN is empty, geocoding will return no results")
	}
	return &MapboxGeocoder{
		HTTP:         &http.Client{Timeout: 15 * time.Second},
		AccessToken:  token,
		BaseURL:      "https://api.mapbox.com",
		Cache:        cache,
		DefaultTTL:   24 * time.Hour,
		ProximityLat: austinLat,
		ProximityLng: austinLng,
	}
}

type mapboxFeature struct {
	ID        string    `json:"id"`
	PlaceName string    `json:"place_name"`
	Center    []float64 `json:"center"` // lng, lat
}

func (g *MapboxGeocoder) forwardGeocode(ctx context.Context, query string, limit int) ([]mapboxFeature, error) {
	u, err := url.Parse(g.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("mapbox base url: %w", err)
	}
	u.Path = fmt.Sprintf("/geocoding/v5/mapbox.places/%s.json", url.PathEscape(query))

	q := url.Values{}
	q.Set("access_token", g.AccessToken)
	q.Set("autocomplete", "true")
	q.Set("country", "us")
	q.Set("proximity", fmt.Sprintf("%f,%f", g.ProximityLng, g.ProximityLat))
	q.Set("limit", fmt.Sprintf("%d", limit))
	u.RawQuery = q.Encode()

	req, _ := http.NewRequestWithContext(ctx, "GET", u.String(), nil)
	resp, err := g.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("mapbox geocoding http error: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return nil, fmt.Errorf("mapbox geocoding bad status: %s", resp.Status)
	}

	var payload struct {
		Features []mapboxFeature `json:"features"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("mapbox decode: %w", err)
	}
	return payload.Features, nil
}

func (g *MapboxGeocoder) Suggest(ctx context.Context, partial string) ([]response_models.Suggestion, error) {
	partial = strings.TrimSpace(partial)
	if partial == "" {
		return []response_models.Suggestion{}, nil
	}

	features, err := g.forwardGeocode(ctx, partial, 5)
	if err != nil {
		log.Printf("Autocomplete failed: %v", err)
		return []response_models.Suggestion{}, err
	}

	suggestions := make([]response_models.Suggestion, 0, len(features))
	for _, f := range features {
		suggestions = append(suggestions, response_models.Suggestion{
			Description: f.PlaceName,
			PlaceID:     f.ID,
		})
	}
	return suggestions, nil
}

func (g *MapboxGeocoder) Resolve(ctx context.Context, address string) (*response_models.Coordinates, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return nil, nil
	}

	cacheKey := strings.ToLower(address)
	if coords, ok := g.Cache.Get(cacheKey); ok {
		return coords, nil
	}

	features, err := g.forwardGeocode(ctx, address, 1)
	if err != nil {
		// Unreachable upstream is the same as "no match" to the pipeline.
		log.Printf("Geocode failed: %v", err)
		return nil, nil
	}
	if len(features) == 0 || len(features[0].Center) < 2 {
		return nil, nil
	}

	coords := &response_models.Coordinates{
		Lat: features[0].Center[1],
		Lng: features[0].Center[0],
	}
	g.Cache.Set(cacheKey, coords, g.DefaultTTL)
	return coords, nil
}
