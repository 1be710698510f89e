package googleai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"outreach-server/internal/observability"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const defaultModel = "gemini-1.5-flash"

var ErrEmptyResponse = errors.New("gemini returned no text")

// ChatClient answers single-turn prompts with a Gemini model
type ChatClient struct {
	apiKey string
	model  string
	logger *observability.Logger
}

func NewChatClient(apiKey string, logger *observability.Logger) (*ChatClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("Google AI API key is required")
	}
	return &ChatClient{
		apiKey: apiKey,
		model:  defaultModel,
		logger: logger,
	}, nil
}

func (g *ChatClient) Name() string {
	return "gemini"
}

func (g *ChatClient) Complete(ctx context.Context, prompt string) (string, error) {
	ctx = observability.WithFields(ctx, observability.Field{Key: "chat_model", Value: g.model})

	c, err := genai.NewClient(ctx, option.WithAPIKey(g.apiKey))
	if err != nil {
		g.logger.Error(ctx, "failed to create Gemini client", err)
		return "", fmt.Errorf("failed to create Gemini client: %w", err)
	}
	defer c.Close()

	resp, err := c.GenerativeModel(g.model).GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		g.logger.Error(ctx, "failed to generate content", err)
		return "", fmt.Errorf("failed to generate content: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", ErrEmptyResponse
	}

	var out strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			out.WriteString(string(text))
		}
	}
	if out.Len() == 0 {
		return "", ErrEmptyResponse
	}
	return strings.TrimSpace(out.String()), nil
}
