package utils

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/rs/zerolog/log"
	"google.golang.org/api/option"
)

// PlanGeneratorInterface produces structured JSON from a prompt. The
// suggestion service owns the prompt and the schema; this client only
// guarantees that what comes back parses as JSON.
type PlanGeneratorInterface interface {
	GenerateJSON(ctx context.Context, prompt string) (string, error)
	Close() error
}

type GeminiPlanClient struct {
	client *genai.Client
	model  string
}

func NewGeminiPlanClient(apiKey, model string) (PlanGeneratorInterface, error) {
	if model == "" {
		model = "gemini-1.5-flash"
	}
	client, err := genai.NewClient(context.Background(), option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &GeminiPlanClient{client: client, model: model}, nil
}

const geminiMaxAttempts = 2

func (c *GeminiPlanClient) GenerateJSON(ctx context.Context, prompt string) (string, error) {
	m := c.client.GenerativeModel(c.model)
	m.ResponseMIMEType = "application/json"
	m.SetTemperature(0.1)
	m.SetTopP(0.5)
	m.SetTopK(20)

	var lastErr error
	for attempt := 1; attempt <= geminiMaxAttempts; attempt++ {
		resp, err := m.GenerateContent(ctx, genai.Text(prompt))
		if err != nil {
			lastErr = fmt.Errorf("gemini: %w", err)
			continue
		}
		if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
			lastErr = fmt.Errorf("gemini returned no content")
			continue
		}

		content := cleanJSONResponse(fmt.Sprintf("%v", resp.Candidates[0].Content.Parts[0]))
		if json.Valid([]byte(content)) {
			return content, nil
		}
		lastErr = fmt.Errorf("gemini returned invalid JSON")
		log.Printf("Gemini attempt %d produced invalid JSON, retrying", attempt)
	}
	return "", lastErr
}

func (c *GeminiPlanClient) Close() error {
	return c.client.Close()
}

// cleanJSONResponse strips markdown fences and any chatter around the
// first JSON value. Even with a JSON response MIME type the model
// occasionally wraps its output.
func cleanJSONResponse(response string) string {
	response = strings.ReplaceAll(response, "```json", "")
	response = strings.ReplaceAll(response, "```JSON", "")
	response = strings.ReplaceAll(response, "```", "")
	response = strings.TrimSpace(response)

	objStart := strings.Index(response, "{")
	arrStart := strings.Index(response, "[")

	switch {
	case objStart != -1 && (arrStart == -1 || objStart < arrStart):
		if end := findMatchingDelimiter(response, objStart, '{', '}'); end != -1 {
			response = response[objStart : end+1]
		}
	case arrStart != -1:
		if end := findMatchingDelimiter(response, arrStart, '[', ']'); end != -1 {
			response = response[arrStart : end+1]
		}
	}
	return strings.TrimSpace(response)
}

// findMatchingDelimiter scans for the closing delimiter that balances
// the opener at start, skipping string literals and escapes.
func findMatchingDelimiter(s string, start int, open, close byte) int {
	if start >= len(s) || s[start] != open {
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
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}
