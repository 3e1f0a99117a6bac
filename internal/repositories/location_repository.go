package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"

	"vibecheck/internal/models/db_models"
)

type LocationRepository interface {
	Create(ctx context.Context, location *db_models.Location) (uuid.UUID, error)
	MergeAnnotation(ctx context.Context, id string, annotation AnnotationFields) error

	GetByID(ctx context.Context, id string) (*db_models.Location, error)
	List(ctx context.Context) ([]db_models.Location, error)
	Leaderboard(ctx context.Context, limit int) ([]db_models.Location, error)
	SimilarByEmbedding(ctx context.Context, id string, limit int) ([]db_models.Location, error)
}

// AnnotationFields is the one partial update the annotation flow is allowed
// to apply. Nothing else ever writes these columns.
type AnnotationFields struct {
	Summary   string
	Score     int
	Hashtags  []string
	Embedding *pgvector.Vector
}

type locationRepository struct {
	db *gorm.DB
}

func NewLocationRepository(db *gorm.DB) LocationRepository {
	return &locationRepository{db: db}
}

func (r *locationRepository) Create(ctx context.Context, location *db_models.Location) (uuid.UUID, error) {
	if err := r.db.WithContext(ctx).Create(location).Error; err != nil {
		return uuid.Nil, err
	}
	return location.ID, nil
}

func (r *locationRepository) MergeAnnotation(ctx context.Context, id string, annotation AnnotationFields) error {
	fields := map[string]interface{}{
		"ai_vibe_summary": annotation.Summary,
		"vibe_score":      annotation.Score,
		"hashtags":        pq.StringArray(annotation.Hashtags),
		"ai_processed":    true,
	}
	if annotation.Embedding != nil {
		fields["embedding"] = annotation.Embedding
	}

	result := r.db.WithContext(ctx).
		Model(&db_models.Location{}).
		Where("id = ?", id).
		Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ────────────────────────────────────────────────────────────────
// Read helpers follow the same pattern: default value + nil error
// when no rows are found.
// ────────────────────────────────────────────────────────────────

func (r *locationRepository) GetByID(ctx context.Context, id string) (*db_models.Location, error) {
	var location db_models.Location
	err := r.db.WithContext(ctx).First(&location, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &location, nil
}

func (r *locationRepository) List(ctx context.Context) ([]db_models.Location, error) {
	var locations []db_models.Location
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&locations).Error
	if err != nil {
		return nil, err
	}
	return locations, nil
}

func (r *locationRepository) Leaderboard(ctx context.Context, limit int) ([]db_models.Location, error) {
	var locations []db_models.Location
	err := r.db.WithContext(ctx).
		Order("vibe_score DESC, created_at ASC").
		Limit(limit).
		Find(&locations).Error
	if err != nil {
		return nil, err
	}
	return locations, nil
}

func (r *locationRepository) SimilarByEmbedding(ctx context.Context, id string, limit int) ([]db_models.Location, error) {
	target, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if target == nil || target.Embedding == nil {
		return []db_models.Location{}, nil
	}

	var results []db_models.Location
	query := `
        SELECT *
        FROM locations
        WHERE id != ? AND embedding IS NOT NULL AND deleted_at IS NULL
        ORDER BY embedding <=> ?  -- cosine distance, closer to 0 is better
        LIMIT ?
    `
	err = r.db.WithContext(ctx).Raw(query, id, target.Embedding.String(), limit).Scan(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}
