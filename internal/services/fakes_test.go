package services

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"vibecheck/internal/models/db_models"
	"vibecheck/internal/models/request_models"
	"vibecheck/internal/models/response_models"
	"vibecheck/internal/repositories"
)

// fakeLocationRepo is an in-memory stand-in for the Postgres repository with
// the same contract: nil, nil on missing reads, gorm.ErrRecordNotFound on a
// merge that matched nothing.
type fakeLocationRepo struct {
	mu        sync.Mutex
	locations map[string]db_models.Location

	createErr error
	mergeErr  error
	listErr   error
}

func newFakeLocationRepo() *fakeLocationRepo {
	return &fakeLocationRepo{locations: make(map[string]db_models.Location)}
}

func (r *fakeLocationRepo) Create(ctx context.Context, location *db_models.Location) (uuid.UUID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return uuid.Nil, r.createErr
	}
	if location.ID == uuid.Nil {
		location.ID = uuid.New()
	}
	location.CreatedAt = time.Now().Unix()
	r.locations[location.ID.String()] = *location
	return location.ID, nil
}

func (r *fakeLocationRepo) MergeAnnotation(ctx context.Context, id string, annotation repositories.AnnotationFields) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.mergeErr != nil {
		return r.mergeErr
	}
	location, ok := r.locations[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	location.AIVibeSummary = annotation.Summary
	location.VibeScore = annotation.Score
	location.Hashtags = pq.StringArray(annotation.Hashtags)
	location.AIProcessed = true
	location.Embedding = annotation.Embedding
	r.locations[id] = location
	return nil
}

func (r *fakeLocationRepo) GetByID(ctx context.Context, id string) (*db_models.Location, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	location, ok := r.locations[id]
	if !ok {
		return nil, nil
	}
	return &location, nil
}

func (r *fakeLocationRepo) List(ctx context.Context) ([]db_models.Location, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.listErr != nil {
		return nil, r.listErr
	}
	out := make([]db_models.Location, 0, len(r.locations))
	for _, location := range r.locations {
		out = append(out, location)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt > out[j].CreatedAt })
	return out, nil
}

func (r *fakeLocationRepo) Leaderboard(ctx context.Context, limit int) ([]db_models.Location, error) {
	out, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	sort.Slice(out, func(i, j int) bool { return out[i].VibeScore > out[j].VibeScore })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeLocationRepo) SimilarByEmbedding(ctx context.Context, id string, limit int) ([]db_models.Location, error) {
	out, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	filtered := make([]db_models.Location, 0, len(out))
	for _, location := range out {
		if location.ID.String() != id && location.Embedding != nil {
			filtered = append(filtered, location)
		}
	}
	if len(filtered) > limit {
		filtered = filtered[:limit]
	}
	return filtered, nil
}

// fakeVibeModel returns canned responses, one per call, in order. When
// respondFn is set it answers from the prompt instead, which keeps the
// mapping stable under concurrent calls.
type fakeVibeModel struct {
	mu        sync.Mutex
	responses []string
	respondFn func(prompt string) (string, error)
	err       error
	calls     int
}

func (m *fakeVibeModel) GenerateVibe(ctx context.Context, prompt, photoDataURI string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.err != nil {
		return "", m.err
	}
	if m.respondFn != nil {
		return m.respondFn(prompt)
	}
	if len(m.responses) == 0 {
		return "", errors.New("no canned response")
	}
	resp := m.responses[0]
	if len(m.responses) > 1 {
		m.responses = m.responses[1:]
	}
	return resp, nil
}

func (m *fakeVibeModel) Close() error { return nil }

// fakeGeocoder resolves from a fixed table. A nil table means "nothing
// resolves", just like a missing upstream.
type fakeGeocoder struct {
	coords  map[string]*response_models.Coordinates
	queries []string
}

func (g *fakeGeocoder) Suggest(ctx context.Context, partial string) ([]response_models.Suggestion, error) {
	return []response_models.Suggestion{}, nil
}

func (g *fakeGeocoder) Resolve(ctx context.Context, address string) (*response_models.Coordinates, error) {
	g.queries = append(g.queries, address)
	if g.coords == nil {
		return nil, nil
	}
	return g.coords[address], nil
}

// recordingNotifier collects change notifications.
type recordingNotifier struct {
	mu  sync.Mutex
	ids []string
}

func (n *recordingNotifier) LocationChanged(ctx context.Context, id string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.ids = append(n.ids, id)
}

func (n *recordingNotifier) changed() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]string, len(n.ids))
	copy(out, n.ids)
	return out
}

// syncVibeService wraps another vibe service and signals when a background
// analysis round-trip finishes, so tests can wait instead of sleeping.
type syncVibeService struct {
	inner VibeServiceInterface
	done  chan struct{}
}

func newSyncVibeService(inner VibeServiceInterface) *syncVibeService {
	return &syncVibeService{inner: inner, done: make(chan struct{}, 8)}
}

func (s *syncVibeService) Analyze(ctx context.Context, req request_models.AnalyzeVibeRequest) (response_models.VibeAnnotation, error) {
	annotation, err := s.inner.Analyze(ctx, req)
	s.done <- struct{}{}
	return annotation, err
}
