package utils

import (
	"context"
	"fmt"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIVibeClient implements VibeModelClientInterface via chat completions.
type OpenAIVibeClient struct {
	client *openai.Client
	model  string
}

func NewOpenAIVibeClient(apiKey, model string) VibeModelClientInterface {
	if model == "" {
		model = openai.GPT4oMini
	}
	return &OpenAIVibeClient{
		client: openai.NewClient(apiKey),
		model:  model,
	}
}

func (c *OpenAIVibeClient) GenerateVibe(ctx context.Context, prompt string, photoDataURI string) (string, error) {
	content := []openai.ChatMessagePart{
		{Type: openai.ChatMessagePartTypeText, Text: prompt},
	}
	if _, _, ok := ParseImageDataURI(photoDataURI); ok {
		content = append(content, openai.ChatMessagePart{
			Type:     openai.ChatMessagePartTypeImageURL,
			ImageURL: &openai.ChatMessageImageURL{URL: photoDataURI},
		})
	}

	ctxWithTimeout, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	resp, err := c.client.CreateChatCompletion(ctxWithTimeout, openai.ChatCompletionRequest{
		Model:       c.model,
		Temperature: 0.7,
		MaxTokens:   1024,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, MultiContent: content},
		},
	})
	if err != nil {
		return "", fmt.Errorf("openai API call failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no content generated by OpenAI")
	}

	return resp.Choices[0].Message.Content, nil
}

func (c *OpenAIVibeClient) Close() error {
	return nil
}
