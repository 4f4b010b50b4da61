// Package llm abstracts the hosted chat-completion providers behind one
// interface so the chat engine doesn't care which vendor answers.
package llm

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/jepco-digital/support-bot/internal/config"
	"github.com/jepco-digital/support-bot/internal/model"
	"github.com/jepco-digital/support-bot/pkg/anthropic"
	"github.com/jepco-digital/support-bot/pkg/openai"
)

// Usage reports token consumption for one completion.
type Usage struct {
	InputTokens  int
	OutputTokens int
}

// Provider produces one assistant reply from a system prompt and a
// conversation window.
type Provider interface {
	// Name identifies the provider in logs.
	Name() string

	// Complete returns the assistant's reply text.
	Complete(ctx context.Context, system string, history []model.Message) (string, Usage, error)
}

// New builds the provider selected by cfg.LLM.Provider.
func New(cfg *config.Config) (Provider, error) {
	switch cfg.LLM.Provider {
	case "openai":
		client := openai.NewClient(cfg.OpenAI.Key,
			openai.WithBaseURL(cfg.OpenAI.BaseURL),
			openai.WithModel(cfg.OpenAI.Model),
		)
		return NewOpenAI(client, cfg.OpenAI), nil
	case "anthropic":
		return NewAnthropic(anthropic.NewClient(cfg.Anthropic.Key), cfg.Anthropic), nil
	default:
		return nil, eris.Errorf("llm: unknown provider %q", cfg.LLM.Provider)
	}
}
