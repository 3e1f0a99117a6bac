package services

import (
	"log"

	"vibecheck/internal/models/db_models"
	"vibecheck/internal/repositories"
)

// AnalyticsServiceInterface is a fire-and-forget side channel: nothing it
// does may propagate to or block the ingestion pipeline, so no method
// returns an error.
type AnalyticsServiceInterface interface {
	RecordEvent(eventType, locationID, locationName, userID string, metadata map[string]interface{})
	MirrorCreation(location *db_models.Location)
}

type AnalyticsService struct {
	analyticsRepo repositories.AnalyticsRepository
}

// NewAnalyticsService accepts a nil repository when the analytics store is
// not configured; events then go to the log only.
func NewAnalyticsService(analyticsRepo repositories.AnalyticsRepository) AnalyticsServiceInterface {
	return &AnalyticsService{analyticsRepo: analyticsRepo}
}

func (a *AnalyticsService) RecordEvent(eventType, locationID, locationName, userID string, metadata map[string]interface{}) {
	if userID == "" {
		userID = "anonymous"
	}
	if a.analyticsRepo == nil {
		log.Printf("Analytics event (log only): type=%s locationId=%s user=%s", eventType, locationID, userID)
		return
	}
	if err := a.analyticsRepo.InsertEvent(eventType, locationID, locationName, userID, metadata); err != nil {
		log.Printf("Failed to record analytics event %s: %v", eventType, err)
	}
}

func (a *AnalyticsService) MirrorCreation(location *db_models.Location) {
	if a.analyticsRepo == nil {
		return
	}
	if err := a.analyticsRepo.InsertSnapshot(location); err != nil {
		log.Printf("Failed to mirror location %s to analytics store: %v", location.ID, err)
	}
}
