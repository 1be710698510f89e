package processor

//go:generate go run go.uber.org/mock/mockgen@latest -source=processor.go -destination=mocks_test.go -package=processor

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"outreach-server/internal/clients/googleai"
	"outreach-server/internal/clients/openai"
	"outreach-server/internal/observability"
)

const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

var (
	ErrEmptyPrompt     = errors.New("prompt is required")
	ErrNotConfigured   = errors.New("chat provider is not configured")
	ErrProviderFailed  = errors.New("chat provider failed")
	ErrUnknownProvider = errors.New("unknown chat provider")
)

// Provider answers a single prompt. Both the OpenAI and Gemini clients satisfy it.
type Provider interface {
	Name() string
	Complete(ctx context.Context, prompt string) (string, error)
}

type ChatProcessor struct {
	provider Provider
	logger   *observability.Logger
}

// New builds a chat processor. A nil provider makes every request fail with
// ErrNotConfigured.
func New(provider Provider, logger *observability.Logger) ChatProcessor {
	return ChatProcessor{provider: provider, logger: logger}
}

// NewProvider picks the client named by CHAT_PROVIDER. It returns a nil
// provider when the selected client has no API key.
func NewProvider(name, openAIKey, googleAIKey string, logger *observability.Logger) (Provider, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", ProviderOpenAI:
		if openAIKey == "" {
			return nil, nil
		}
		client, err := openai.NewChatClient(openAIKey, logger)
		if err != nil {
			return nil, err
		}
		return client, nil
	case ProviderGemini:
		if googleAIKey == "" {
			return nil, nil
		}
		client, err := googleai.NewChatClient(googleAIKey, logger)
		if err != nil {
			return nil, err
		}
		return client, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownProvider, name)
	}
}

// Chat forwards the prompt to the configured provider and returns its reply.
func (p *ChatProcessor) Chat(ctx context.Context, prompt string) (string, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "", ErrEmptyPrompt
	}
	if p.provider == nil {
		return "", ErrNotConfigured
	}
	ctx = observability.WithFields(ctx, observability.Field{Key: "chat_provider", Value: p.provider.Name()})

	reply, err := p.provider.Complete(ctx, prompt)
	if err != nil {
		p.logger.Error(ctx, "chat completion failed", err)
		return "", ErrProviderFailed
	}
	return reply, nil
}
