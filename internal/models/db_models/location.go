package db_models

import (
	"github.com/lib/pq"
	"github.com/pgvector/pgvector-go"
)

// DefaultVibeScore is the provisional score a record carries until the
// annotation merge overwrites it.
const DefaultVibeScore = 8

const MaxDescriptionLength = 200

type Location struct {
	BaseModel
	Name          string `gorm:"not null"`
	Category      string
	Description   string
	Lat           float64
	Lng           float64
	VibeScore     int    `gorm:"default:8"`
	Photo         string `gorm:"type:text"`
	AIVibeSummary string
	Hashtags      pq.StringArray `gorm:"type:text[]"`
	AIProcessed   bool
	// Hash embedding of the vibe text, filled in at annotation time.
	Embedding *pgvector.Vector `gorm:"type:vector(1536)"`
}

var categories = []string{"Food", "Park", "Nightlife", "Shopping", "Music", "Art", "Outdoors"}

func Categories() []string {
	out := make([]string, len(categories))
	copy(out, categories)
	return out
}

func IsValidCategory(category string) bool {
	for _, c := range categories {
		if c == category {
			return true
		}
	}
	return false
}
