package repositories

import (
	"encoding/json"
	"time"

	"github.com/jmoiron/sqlx"

	"vibecheck/internal/models/db_models"
)

type AnalyticsRepository interface {
	InsertSnapshot(location *db_models.Location) error
	InsertEvent(eventType, locationID, locationName, userID string, metadata map[string]interface{}) error
}

type analyticsRepository struct {
	db *sqlx.DB
}

func NewAnalyticsRepository(db *sqlx.DB) AnalyticsRepository {
	return &analyticsRepository{db: db}
}

func (r *analyticsRepository) InsertSnapshot(location *db_models.Location) error {
	hashtags, err := json.Marshal([]string(location.Hashtags))
	if err != nil {
		return err
	}

	stmt := `
INSERT INTO location_snapshots (id, name, category, description, vibe_score, lat, lng, ai_vibe_summary, hashtags, created_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9::jsonb,$10)`
	_, err = r.db.Exec(stmt,
		location.ID,
		location.Name,
		location.Category,
		location.Description,
		location.VibeScore,
		location.Lat,
		location.Lng,
		location.AIVibeSummary,
		string(hashtags),
		time.Unix(location.CreatedAt, 0).UTC(),
	)
	return err
}

func (r *analyticsRepository) InsertEvent(eventType, locationID, locationName, userID string, metadata map[string]interface{}) error {
	var metadataJSON interface{}
	if metadata != nil {
		b, err := json.Marshal(metadata)
		if err != nil {
			return err
		}
		metadataJSON = string(b)
	}

	stmt := `
INSERT INTO analytics_events (event_type, location_id, location_name, user_id, metadata, ts)
VALUES ($1,$2,$3,$4,$5::jsonb,$6)`
	_, err := r.db.Exec(stmt, eventType, locationID, locationName, userID, metadataJSON, time.Now().UTC())
	return err
}
