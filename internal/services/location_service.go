package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"
	"unicode/utf8"

	"vibecheck/internal/models/db_models"
	"vibecheck/internal/models/request_models"
	"vibecheck/internal/models/response_models"
	"vibecheck/internal/repositories"
	"vibecheck/pkg/utils"
)

type LocationServiceInterface interface {
	Submit(ctx context.Context, req request_models.CreateLocationRequest, userID string) (response_models.SubmittedLocation, error)
	GetLocationByID(id string, ctx context.Context) (response_models.Location, error)
	ListLocations(ctx context.Context) ([]response_models.Location, error)
	Leaderboard(ctx context.Context, limit int) ([]response_models.Location, error)
	SimilarLocations(ctx context.Context, id string, limit int) ([]response_models.Location, error)
}

type LocationService struct {
	locationRepo repositories.LocationRepository
	geocoder     GeocodingServiceInterface
	vibe         VibeServiceInterface
	analytics    AnalyticsServiceInterface
	notifier     ChangeNotifier
}

func NewLocationService(
	locationRepo repositories.LocationRepository,
	geocoder GeocodingServiceInterface,
	vibe VibeServiceInterface,
	analytics AnalyticsServiceInterface,
	notifier ChangeNotifier,
) LocationServiceInterface {
	return &LocationService{
		locationRepo: locationRepo,
		geocoder:     geocoder,
		vibe:         vibe,
		analytics:    analytics,
		notifier:     notifier,
	}
}

// Submit runs a submission through the pipeline: validate, resolve
// coordinates, persist the draft record, then hand off enrichment without
// holding the caller. Only validation and the store write can fail the
// submission; everything after the create is best-effort.
func (s *LocationService) Submit(ctx context.Context, req request_models.CreateLocationRequest, userID string) (response_models.SubmittedLocation, error) {
	if err := validateSubmission(req); err != nil {
		return response_models.SubmittedLocation{}, err
	}

	coords, err := s.resolveCoordinates(ctx, req)
	if err != nil {
		return response_models.SubmittedLocation{}, err
	}

	photo := req.Photo
	photoDropped := false
	if photo != "" {
		if _, _, ok := utils.ParseImageDataURI(photo); !ok {
			log.Printf("Photo payload rejected, saving location without it: name=%q", req.Name)
			photo = ""
			photoDropped = true
		}
	}

	location := &db_models.Location{
		Name:        req.Name,
		Category:    req.Category,
		Description: req.Description,
		Lat:         coords.Lat,
		Lng:         coords.Lng,
		VibeScore:   db_models.DefaultVibeScore,
		Photo:       photo,
	}

	id, err := s.locationRepo.Create(ctx, location)
	if err != nil {
		log.Printf("Error creating location: %v", err)
		return response_models.SubmittedLocation{}, utils.ErrDatabaseError
	}

	if s.notifier != nil {
		s.notifier.LocationChanged(ctx, id.String())
	}

	// The record is durable; from here on nothing may block or fail the
	// caller. The annotation runs on a detached context so an abandoned
	// caller never cancels the eventual merge.
	go s.annotate(request_models.AnalyzeVibeRequest{
		ID:          id.String(),
		Name:        req.Name,
		Description: req.Description,
		PhotoURL:    photo,
	})

	if s.analytics != nil {
		go s.analytics.RecordEvent("location_created", id.String(), req.Name, userID, nil)
		go s.analytics.MirrorCreation(location)
	}

	return response_models.SubmittedLocation{
		Location:     toLocationResponse(location),
		PhotoDropped: photoDropped,
		AIQueued:     true,
	}, nil
}

func validateSubmission(req request_models.CreateLocationRequest) error {
	if strings.TrimSpace(req.Name) == "" {
		return fmt.Errorf("%w: name is required", utils.ErrInvalidSubmission)
	}
	if strings.TrimSpace(req.Description) == "" {
		return fmt.Errorf("%w: description is required", utils.ErrInvalidSubmission)
	}
	if utf8.RuneCountInString(req.Description) > db_models.MaxDescriptionLength {
		return fmt.Errorf("%w: description must be at most %d characters", utils.ErrInvalidSubmission, db_models.MaxDescriptionLength)
	}
	if !db_models.IsValidCategory(req.Category) {
		return fmt.Errorf("%w: unknown category %q", utils.ErrInvalidSubmission, req.Category)
	}
	return nil
}

// resolveCoordinates trusts coordinates the client already resolved (a picked
// suggestion must not be re-resolved to a different candidate); otherwise it
// geocodes the name, defaulting the query into the home city.
func (s *LocationService) resolveCoordinates(ctx context.Context, req request_models.CreateLocationRequest) (response_models.Coordinates, error) {
	if req.Lat != nil && req.Lng != nil {
		return response_models.Coordinates{Lat: *req.Lat, Lng: *req.Lng}, nil
	}

	query := req.Name
	if !strings.Contains(strings.ToLower(query), "austin") {
		query = query + ", Austin, TX"
	}

	coords, err := s.geocoder.Resolve(ctx, query)
	if err != nil {
		log.Printf("Error resolving location %q: %v", query, err)
		return response_models.Coordinates{}, utils.ErrLocationUnresolvable
	}
	if coords == nil {
		return response_models.Coordinates{}, utils.ErrLocationUnresolvable
	}
	return *coords, nil
}

func (s *LocationService) annotate(req request_models.AnalyzeVibeRequest) {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	if _, err := s.vibe.Analyze(ctx, req); err != nil {
		// Non-fatal: the record stays visible in its unprocessed state.
		log.Printf("Background vibe analysis failed: locationId=%s err=%v", req.ID, err)
	}
}

func (s *LocationService) GetLocationByID(id string, ctx context.Context) (response_models.Location, error) {
	location, err := s.locationRepo.GetByID(ctx, id)
	if err != nil {
		return response_models.Location{}, utils.ErrDatabaseError
	}
	if location == nil {
		return response_models.Location{}, utils.ErrLocationNotFound
	}
	return toLocationResponse(location), nil
}

func (s *LocationService) ListLocations(ctx context.Context) ([]response_models.Location, error) {
	locations, err := s.locationRepo.List(ctx)
	if err != nil {
		log.Printf("Error listing locations: %v", err)
		return nil, utils.ErrDatabaseError
	}
	return toLocationResponses(locations), nil
}

func (s *LocationService) Leaderboard(ctx context.Context, limit int) ([]response_models.Location, error) {
	locations, err := s.locationRepo.Leaderboard(ctx, limit)
	if err != nil {
		log.Printf("Error loading leaderboard: %v", err)
		return nil, utils.ErrDatabaseError
	}
	return toLocationResponses(locations), nil
}

func (s *LocationService) SimilarLocations(ctx context.Context, id string, limit int) ([]response_models.Location, error) {
	target, err := s.locationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if target == nil {
		return nil, utils.ErrLocationNotFound
	}

	locations, err := s.locationRepo.SimilarByEmbedding(ctx, id, limit)
	if err != nil {
		log.Printf("Error finding similar locations: %v", err)
		return nil, utils.ErrDatabaseError
	}
	return toLocationResponses(locations), nil
}

func toLocationResponse(location *db_models.Location) response_models.Location {
	hashtags := []string(location.Hashtags)
	if hashtags == nil {
		hashtags = []string{}
	}
	return response_models.Location{
		ID:            location.ID.String(),
		Name:          location.Name,
		Category:      location.Category,
		Description:   location.Description,
		Lat:           location.Lat,
		Lng:           location.Lng,
		VibeScore:     location.VibeScore,
		Photo:         location.Photo,
		AIVibeSummary: location.AIVibeSummary,
		Hashtags:      hashtags,
		AIProcessed:   location.AIProcessed,
		CreatedAt:     location.CreatedAt,
	}
}

func toLocationResponses(locations []db_models.Location) []response_models.Location {
	responses := make([]response_models.Location, 0, len(locations))
	for i := range locations {
		responses = append(responses, toLocationResponse(&locations[i]))
	}
	return responses
}
