package llm

import (
	"context"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/jepco-digital/support-bot/internal/config"
	"github.com/jepco-digital/support-bot/internal/model"
	"github.com/jepco-digital/support-bot/pkg/anthropic"
)

// Anthropic adapts the Messages API client to the Provider interface.
type Anthropic struct {
	client anthropic.Client
	cfg    config.AnthropicConfig
}

// NewAnthropic wraps an Anthropic client with the configured model settings.
func NewAnthropic(client anthropic.Client, cfg config.AnthropicConfig) *Anthropic {
	return &Anthropic{client: client, cfg: cfg}
}

func (p *Anthropic) Name() string { return "anthropic" }

func (p *Anthropic) Complete(ctx context.Context, system string, history []model.Message) (string, Usage, error) {
	messages := make([]anthropic.Message, 0, len(history))
	for _, m := range history {
		messages = append(messages, anthropic.Message{Role: string(m.Role), Content: m.Content})
	}

	resp, err := p.client.CreateMessage(ctx, anthropic.MessageRequest{
		Model:     p.cfg.Model,
		MaxTokens: p.cfg.MaxTokens,
		System:    system,
		Messages:  messages,
	})
	if err != nil {
		return "", Usage{}, eris.Wrap(classify(p.Name(), err), "llm: anthropic completion")
	}

	usage := Usage{
		InputTokens:  int(resp.Usage.InputTokens),
		OutputTokens: int(resp.Usage.OutputTokens),
	}
	return strings.TrimSpace(resp.Text), usage, nil
}
