package utils

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
)

// VibeModelClientInterface is the single outbound call of the annotation
// pipeline: one synchronous generation, raw text back, no streaming.
type VibeModelClientInterface interface {
	GenerateVibe(ctx context.Context, prompt string, photoDataURI string) (string, error)
	Close() error
}

// NewVibeModelClient Factory function to create either OpenAI or Gemini client based on config
func NewVibeModelClient(provider, apiKey, model string) (VibeModelClientInterface, error) {
	switch strings.ToLower(provider) {
	case "openai":
		return NewOpenAIVibeClient(apiKey, model), nil
	case "gemini":
		return NewGeminiVibeClient(apiKey, model)
	default:
		return nil, fmt.Errorf("unsupported provider: %s", provider)
	}
}

// ParseImageDataURI splits a data-URI image payload into its MIME type and
// decoded bytes. Anything that is not a well-formed data:image/... URI is
// rejected so the caller can fall back to text-only annotation.
func ParseImageDataURI(uri string) (mimeType string, data []byte, ok bool) {
	if !strings.HasPrefix(uri, "data:image/") {
		return "", nil, false
	}
	comma := strings.Index(uri, ",")
	if comma < 0 {
		return "", nil, false
	}
	meta := uri[len("data:"):comma] // e.g. image/jpeg;base64
	mimeType = meta
	if semi := strings.Index(meta, ";"); semi >= 0 {
		mimeType = meta[:semi]
	}
	decoded, err := base64.StdEncoding.DecodeString(uri[comma+1:])
	if err != nil {
		return "", nil, false
	}
	return mimeType, decoded, true
}

// CleanJSONResponse removes markdown code fences and extracts the JSON object
// from a model response that may carry prose around it.
func CleanJSONResponse(response string) string {
	response = strings.ReplaceAll(response, "```json", "")
	response = strings.ReplaceAll(response, "```JSON", "")
	response = strings.ReplaceAll(response, "```", "")
	response = strings.TrimSpace(response)

	objStart := strings.Index(response, "{")
	if objStart != -1 {
		if objEnd := findMatchingBrace(response, objStart); objEnd != -1 {
			response = response[objStart : objEnd+1]
		}
	}

	return strings.TrimSpace(response)
}

// findMatchingBrace finds the matching closing brace for an opening brace,
// skipping over string literals and escapes.
func findMatchingBrace(s string, start int) int {
	if start >= len(s) || s[start] != '{' {
		return -1
	}

	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(s); i++ {
		char := s[i]

		if escaped {
			escaped = false
			continue
		}

		if char == '\\' && inString {
			escaped = true
			continue
		}

		if char == '"' {
			inString = !inString
			continue
		}

		if inString {
			continue
		}

		switch char {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}

	return -1
}
