package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"vibecheck/internal/models/request_models"
	"vibecheck/internal/models/response_models"
	"vibecheck/internal/repositories"
	"vibecheck/pkg/utils"
)

// Fallback annotation used when the model answered but the answer could not
// be parsed. A degraded-but-present result beats no result.
const fallbackVibeSummary = "The AI is feeling a bit weird today (Keep Austin Weird?), but this spot definitely has character!"
const fallbackVibeScore = 8

func fallbackHashtags() []string {
	return []string{"#austin", "#mystery", "#vibes"}
}

type VibeServiceInterface interface {
	Analyze(ctx context.Context, req request_models.AnalyzeVibeRequest) (response_models.VibeAnnotation, error)
}

type VibeService struct {
	model        utils.VibeModelClientInterface
	locationRepo repositories.LocationRepository
	notifier     ChangeNotifier
}

func NewVibeService(
	model utils.VibeModelClientInterface,
	locationRepo repositories.LocationRepository,
	notifier ChangeNotifier,
) VibeServiceInterface {
	return &VibeService{
		model:        model,
		locationRepo: locationRepo,
		notifier:     notifier,
	}
}

// Analyze runs the three failure-tolerant stages of annotation: model call
// (hard failure, record untouched), parse (soft failure, labeled fallback),
// and merge (logged, never hides the annotation from the caller).
func (v *VibeService) Analyze(ctx context.Context, req request_models.AnalyzeVibeRequest) (response_models.VibeAnnotation, error) {
	startTime := time.Now()

	if req.ID == "" || req.Name == "" {
		return response_models.VibeAnnotation{}, utils.ErrInvalidAnnotation
	}

	log.Printf("Vibe analysis started: locationId=%s name=%q hasPhoto=%v", req.ID, req.Name, req.PhotoURL != "")

	prompt := buildVibePrompt(req.Name, req.Description)

	raw, err := v.model.GenerateVibe(ctx, prompt, req.PhotoURL)
	if err != nil {
		log.Printf("Vibe model call failed: locationId=%s err=%v", req.ID, err)
		return response_models.VibeAnnotation{}, fmt.Errorf("%w: %v", utils.ErrModelUnavailable, err)
	}

	annotation := parseVibeResponse(raw)

	embedding := utils.TextToVector(annotation.VibeSummary + " " + req.Description)
	merge := repositories.AnnotationFields{
		Summary:   annotation.VibeSummary,
		Score:     annotation.AIScore,
		Hashtags:  annotation.Hashtags,
		Embedding: &embedding,
	}
	if err := v.locationRepo.MergeAnnotation(ctx, req.ID, merge); err != nil {
		// The caller still gets the annotation for immediate display.
		log.Printf("Annotation merge failed: locationId=%s err=%v", req.ID, err)
	} else if v.notifier != nil {
		v.notifier.LocationChanged(ctx, req.ID)
	}

	log.Printf("Vibe analysis completed: locationId=%s durationMs=%d aiScore=%d",
		req.ID, time.Since(startTime).Milliseconds(), annotation.AIScore)

	return annotation, nil
}

func buildVibePrompt(name, description string) string {
	return fmt.Sprintf(`Analyze this place in Austin, Texas called "%s".
Description provided: "%s".

Task:
1. Generate a witty, Austin-style "vibe summary" (2-3 sentences). Use local slang if appropriate (e.g., "y'all", "Keep Austin Weird", "tacos").
2. Rate the "Vibe Score" from 1-10 based on how cool/unique it seems. Be generous but realistic.
3. Suggest 3 hashtags relevant to this spot.

Output ONLY valid JSON format like this:
{
  "vibeSummary": "...",
  "aiScore": 8,
  "hashtags": ["#...", "#...", "#..."]
}`, name, description)
}

// parseVibeResponse strips code-fence markup and decodes the structured
// annotation; anything unparseable yields the fixed fallback.
func parseVibeResponse(raw string) response_models.VibeAnnotation {
	clean := utils.CleanJSONResponse(raw)

	var annotation response_models.VibeAnnotation
	if err := json.Unmarshal([]byte(clean), &annotation); err != nil || strings.TrimSpace(annotation.VibeSummary) == "" {
		log.Printf("Failed to parse vibe JSON, using fallback: %.200s", raw)
		return response_models.VibeAnnotation{
			VibeSummary: fallbackVibeSummary,
			AIScore:     fallbackVibeScore,
			Hashtags:    fallbackHashtags(),
		}
	}
	return annotation
}
