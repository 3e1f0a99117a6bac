package services

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vibecheck/internal/models/db_models"
	"vibecheck/internal/models/request_models"
	"vibecheck/pkg/utils"
)

func seedLocation(t *testing.T, repo *fakeLocationRepo, name string) *db_models.Location {
	t.Helper()
	location := &db_models.Location{
		Name:        name,
		Category:    "Food",
		Description: "tacos and neon",
		VibeScore:   db_models.DefaultVibeScore,
	}
	_, err := repo.Create(context.Background(), location)
	require.NoError(t, err)
	return location
}

func TestAnalyzeMergesAnnotation(t *testing.T) {
	repo := newFakeLocationRepo()
	location := seedLocation(t, repo, "Taco Shack")
	notifier := &recordingNotifier{}

	model := &fakeVibeModel{responses: []string{
		`{"vibeSummary": "Y'all, this place slaps.", "aiScore": 9, "hashtags": ["#tacos", "#atx", "#nightowl"]}`,
	}}
	svc := NewVibeService(model, repo, notifier)

	annotation, err := svc.Analyze(context.Background(), request_models.AnalyzeVibeRequest{
		ID:          location.ID.String(),
		Name:        location.Name,
		Description: location.Description,
	})
	require.NoError(t, err)
	assert.Equal(t, "Y'all, this place slaps.", annotation.VibeSummary)
	assert.Equal(t, 9, annotation.AIScore)
	assert.Equal(t, []string{"#tacos", "#atx", "#nightowl"}, annotation.Hashtags)

	stored, err := repo.GetByID(context.Background(), location.ID.String())
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.True(t, stored.AIProcessed)
	assert.Equal(t, 9, stored.VibeScore)
	assert.Equal(t, "Y'all, this place slaps.", stored.AIVibeSummary)
	assert.NotNil(t, stored.Embedding)

	assert.Equal(t, []string{location.ID.String()}, notifier.changed())
}

func TestAnalyzeStripsCodeFences(t *testing.T) {
	repo := newFakeLocationRepo()
	location := seedLocation(t, repo, "Mural Wall")

	model := &fakeVibeModel{responses: []string{
		"```json\n{\"vibeSummary\": \"Street art central.\", \"aiScore\": 7, \"hashtags\": [\"#art\"]}\n```",
	}}
	svc := NewVibeService(model, repo, nil)

	annotation, err := svc.Analyze(context.Background(), request_models.AnalyzeVibeRequest{
		ID:   location.ID.String(),
		Name: location.Name,
	})
	require.NoError(t, err)
	assert.Equal(t, "Street art central.", annotation.VibeSummary)
	assert.Equal(t, 7, annotation.AIScore)
}

func TestAnalyzeFallbackOnUnparseableOutput(t *testing.T) {
	repo := newFakeLocationRepo()
	location := seedLocation(t, repo, "Secret Garden")

	model := &fakeVibeModel{responses: []string{"sorry, I cannot produce JSON today"}}
	svc := NewVibeService(model, repo, nil)

	annotation, err := svc.Analyze(context.Background(), request_models.AnalyzeVibeRequest{
		ID:   location.ID.String(),
		Name: location.Name,
	})
	require.NoError(t, err)
	assert.Equal(t, fallbackVibeSummary, annotation.VibeSummary)
	assert.Equal(t, fallbackVibeScore, annotation.AIScore)
	assert.Equal(t, fallbackHashtags(), annotation.Hashtags)

	// The fallback is still merged so the record leaves the unprocessed state.
	stored, _ := repo.GetByID(context.Background(), location.ID.String())
	require.NotNil(t, stored)
	assert.True(t, stored.AIProcessed)
	assert.Equal(t, fallbackVibeSummary, stored.AIVibeSummary)
}

func TestAnalyzeModelFailureLeavesRecordUntouched(t *testing.T) {
	repo := newFakeLocationRepo()
	location := seedLocation(t, repo, "Pop-Up Stage")

	model := &fakeVibeModel{err: errors.New("quota exhausted")}
	svc := NewVibeService(model, repo, nil)

	_, err := svc.Analyze(context.Background(), request_models.AnalyzeVibeRequest{
		ID:   location.ID.String(),
		Name: location.Name,
	})
	require.ErrorIs(t, err, utils.ErrModelUnavailable)

	stored, _ := repo.GetByID(context.Background(), location.ID.String())
	require.NotNil(t, stored)
	assert.False(t, stored.AIProcessed)
	assert.Equal(t, db_models.DefaultVibeScore, stored.VibeScore)
	assert.Empty(t, stored.AIVibeSummary)
}

func TestAnalyzeRejectsIncompleteRequest(t *testing.T) {
	repo := newFakeLocationRepo()
	model := &fakeVibeModel{responses: []string{"{}"}}
	svc := NewVibeService(model, repo, nil)

	_, err := svc.Analyze(context.Background(), request_models.AnalyzeVibeRequest{Name: "no id"})
	assert.ErrorIs(t, err, utils.ErrInvalidAnnotation)

	_, err = svc.Analyze(context.Background(), request_models.AnalyzeVibeRequest{ID: "no name"})
	assert.ErrorIs(t, err, utils.ErrInvalidAnnotation)

	assert.Equal(t, 0, model.calls)
}

func TestAnalyzeMergeFailureStillReturnsAnnotation(t *testing.T) {
	repo := newFakeLocationRepo()
	location := seedLocation(t, repo, "Ghost Bar")
	repo.mergeErr = errors.New("connection reset")
	notifier := &recordingNotifier{}

	model := &fakeVibeModel{responses: []string{
		`{"vibeSummary": "Spooky but fun.", "aiScore": 6, "hashtags": ["#haunted"]}`,
	}}
	svc := NewVibeService(model, repo, notifier)

	annotation, err := svc.Analyze(context.Background(), request_models.AnalyzeVibeRequest{
		ID:   location.ID.String(),
		Name: location.Name,
	})
	require.NoError(t, err)
	assert.Equal(t, "Spooky but fun.", annotation.VibeSummary)
	assert.Empty(t, notifier.changed())
}

func TestAnalyzeIsIdempotent(t *testing.T) {
	repo := newFakeLocationRepo()
	location := seedLocation(t, repo, "Barton Springs")

	model := &fakeVibeModel{responses: []string{
		`{"vibeSummary": "Cold water, warm people.", "aiScore": 10, "hashtags": ["#swim", "#atx", "#chill"]}`,
	}}
	svc := NewVibeService(model, repo, nil)

	req := request_models.AnalyzeVibeRequest{ID: location.ID.String(), Name: location.Name}
	first, err := svc.Analyze(context.Background(), req)
	require.NoError(t, err)
	second, err := svc.Analyze(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	stored, _ := repo.GetByID(context.Background(), location.ID.String())
	require.NotNil(t, stored)
	assert.Equal(t, 10, stored.VibeScore)
	assert.Equal(t, "Cold water, warm people.", stored.AIVibeSummary)
}

func TestAnalyzeKeepsConcurrentAnnotationsSeparate(t *testing.T) {
	repo := newFakeLocationRepo()
	first := seedLocation(t, repo, "Vinyl Den")
	second := seedLocation(t, repo, "Dog Park")

	model := &fakeVibeModel{respondFn: func(prompt string) (string, error) {
		if strings.Contains(prompt, "Vinyl Den") {
			return `{"vibeSummary": "Crate digging heaven.", "aiScore": 8, "hashtags": ["#vinyl"]}`, nil
		}
		return `{"vibeSummary": "Zoomies guaranteed.", "aiScore": 7, "hashtags": ["#dogs"]}`, nil
	}}
	svc := NewVibeService(model, repo, nil)

	var wg sync.WaitGroup
	for _, location := range []*db_models.Location{first, second} {
		wg.Add(1)
		go func(loc *db_models.Location) {
			defer wg.Done()
			_, err := svc.Analyze(context.Background(), request_models.AnalyzeVibeRequest{
				ID:   loc.ID.String(),
				Name: loc.Name,
			})
			assert.NoError(t, err)
		}(location)
	}
	wg.Wait()

	storedFirst, _ := repo.GetByID(context.Background(), first.ID.String())
	storedSecond, _ := repo.GetByID(context.Background(), second.ID.String())
	assert.Equal(t, "Crate digging heaven.", storedFirst.AIVibeSummary)
	assert.Equal(t, 8, storedFirst.VibeScore)
	assert.Equal(t, "Zoomies guaranteed.", storedSecond.AIVibeSummary)
	assert.Equal(t, 7, storedSecond.VibeScore)
}

func TestParseVibeResponseEmptySummaryFallsBack(t *testing.T) {
	annotation := parseVibeResponse(`{"vibeSummary": "   ", "aiScore": 3, "hashtags": []}`)
	assert.Equal(t, fallbackVibeSummary, annotation.VibeSummary)
	assert.Equal(t, fallbackVibeScore, annotation.AIScore)
}
