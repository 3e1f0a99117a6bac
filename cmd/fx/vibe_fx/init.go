package vibe_fx

import (
	"fmt"
	"log"
	"os"
	"strings"

	"go.uber.org/fx"

	"vibecheck/internal/api/controllers"
	"vibecheck/internal/repositories"
	"vibecheck/internal/services"
	"vibecheck/pkg/utils"
)

var Module = fx.Provide(
	provideVibeConfig,
	provideVibeModelClient,
	provideVibeService,
	provideVibeController)

// Config holds the generative model selection for the annotation flow.
type Config struct {
	Provider string
	APIKey   string
	Model    string
}

// Configured reports whether the annotation path has a usable API key; the
// health endpoint surfaces this as healthy/misconfigured.
func (c Config) Configured() bool {
	return c.APIKey != ""
}

func provideVibeConfig() Config {
	provider := getEnvWithDefault("VIBE_PROVIDER", "gemini")

	var apiKey, model string
	switch strings.ToLower(provider) {
	case "openai":
		apiKey = os.Getenv("OPENAI_API_KEY")
		model = getEnvWithDefault("OPENAI_MODEL", "gpt-4o-mini")
	case "gemini":
		apiKey = os.Getenv("GEMINI_API_KEY")
		model = getEnvWithDefault("GEMINI_MODEL", "gemini-1.5-flash")
	}

	if apiKey == "" {
		log.Printf("No API key configured for vibe provider %s, annotation requests will fail", provider)
	}

	return Config{
		Provider: provider,
		APIKey:   apiKey,
		Model:    model,
	}
}

func provideVibeModelClient(config Config) (utils.VibeModelClientInterface, error) {
	log.Printf("Initializing %s vibe model client with model: %s", config.Provider, config.Model)

	client, err := utils.NewVibeModelClient(config.Provider, config.APIKey, config.Model)
	if err != nil {
		return nil, fmt.Errorf("failed to create vibe model client: %w", err)
	}
	return client, nil
}

func provideVibeService(
	model utils.VibeModelClientInterface,
	locationRepo repositories.LocationRepository,
	feed services.FeedServiceInterface,
) services.VibeServiceInterface {
	return services.NewVibeService(model, locationRepo, feed)
}

func provideVibeController(vibeService services.VibeServiceInterface) *controllers.VibeController {
	return controllers.NewVibeController(vibeService)
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
