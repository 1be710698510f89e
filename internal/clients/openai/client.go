package openai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"outreach-server/internal/observability"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

var ErrEmptyCompletion = errors.New("openai returned no choices")

// ChatClient answers single-turn prompts with a chat completion model
type ChatClient struct {
	client openai.Client
	model  openai.ChatModel
	logger *observability.Logger
}

func NewChatClient(apiKey string, logger *observability.Logger) (*ChatClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}
	client := openai.NewClient(option.WithAPIKey(apiKey))
	return &ChatClient{
		client: client,
		model:  openai.ChatModelGPT4o,
		logger: logger,
	}, nil
}

func (c *ChatClient) Name() string {
	return "openai"
}

// Complete sends prompt as a single user message and returns the first choice.
func (c *ChatClient) Complete(ctx context.Context, prompt string) (string, error) {
	ctx = observability.WithFields(ctx, observability.Field{Key: "chat_model", Value: c.model})

	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
		Model: c.model,
	})
	if err != nil {
		c.logger.Error(ctx, "failed to create chat completion", err)
		return "", fmt.Errorf("failed to create chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", ErrEmptyCompletion
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
