package utils

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiVibeClient implements VibeModelClientInterface using Google's Gemini models
type GeminiVibeClient struct {
	client *genai.Client
	model  string
}

func NewGeminiVibeClient(apiKey, model string) (VibeModelClientInterface, error) {
	if model == "" {
		model = "gemini-1.5-flash" // Free tier model
	}

	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiVibeClient{
		client: client,
		model:  model,
	}, nil
}

func (c *GeminiVibeClient) GenerateVibe(ctx context.Context, prompt string, photoDataURI string) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", fmt.Errorf("prompt cannot be empty")
	}

	m := c.client.GenerativeModel(c.model)
	m.SetTemperature(0.7)
	m.SetTopP(0.5)
	m.SetTopK(20)
	m.SetMaxOutputTokens(1024)

	parts := []genai.Part{genai.Text(prompt)}
	if mimeType, data, ok := ParseImageDataURI(photoDataURI); ok {
		format := strings.TrimPrefix(mimeType, "image/")
		parts = append(parts, genai.ImageData(format, data))
	}

	ctxWithTimeout, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	resp, err := m.GenerateContent(ctxWithTimeout, parts...)
	if err != nil {
		return "", fmt.Errorf("gemini API call failed: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no content generated by Gemini")
	}

	return fmt.Sprintf("%v", resp.Candidates[0].Content.Parts[0]), nil
}

func (c *GeminiVibeClient) Close() error {
	return c.client.Close()
}
