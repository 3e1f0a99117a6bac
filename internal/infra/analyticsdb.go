package infra

import (
	"log"
	"os"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// InitAnalyticsDB opens the analytics mirror. It is a best-effort side
// channel: a missing or unreachable database yields a nil handle and the
// service degrades to logging only.
func InitAnalyticsDB() *sqlx.DB {
	dsn := os.Getenv("ANALYTICS_POSTGRES_URL")
	if dsn == "" {
		dsn = os.Getenv("POSTGRES_URL")
	}
	if dsn == "" {
		log.Println("Analytics database not configured, events will only be logged")
		return nil
	}

	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		log.Printf("Analytics database unreachable, events will only be logged: %v", err)
		return nil
	}

	if err := runAnalyticsMigrations(db); err != nil {
		log.Printf("Analytics migrations failed: %v", err)
	}

	return db
}

func runAnalyticsMigrations(db *sqlx.DB) error {
	initSQL := `
CREATE TABLE IF NOT EXISTS location_snapshots(
  id UUID,
  name TEXT,
  category TEXT,
  description TEXT,
  vibe_score INTEGER,
  lat DOUBLE PRECISION,
  lng DOUBLE PRECISION,
  ai_vibe_summary TEXT,
  hashtags JSONB,
  created_at TIMESTAMP
);

CREATE TABLE IF NOT EXISTS analytics_events(
  event_type TEXT,
  location_id TEXT,
  location_name TEXT,
  user_id TEXT,
  metadata JSONB,
  ts TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_snapshots_created ON location_snapshots(created_at);
CREATE INDEX IF NOT EXISTS idx_events_type ON analytics_events(event_type);
`
	_, err := db.Exec(initSQL)
	return err
}
