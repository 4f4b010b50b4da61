package llm

import (
	"context"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/jepco-digital/support-bot/internal/config"
	"github.com/jepco-digital/support-bot/internal/model"
	"github.com/jepco-digital/support-bot/pkg/openai"
)

// OpenAI adapts the chat-completions client to the Provider interface.
type OpenAI struct {
	client openai.Client
	cfg    config.OpenAIConfig
}

// NewOpenAI wraps an OpenAI client with the configured sampling settings.
func NewOpenAI(client openai.Client, cfg config.OpenAIConfig) *OpenAI {
	return &OpenAI{client: client, cfg: cfg}
}

func (p *OpenAI) Name() string { return "openai" }

func (p *OpenAI) Complete(ctx context.Context, system string, history []model.Message) (string, Usage, error) {
	messages := make([]openai.Message, 0, len(history)+1)
	messages = append(messages, openai.Message{Role: "system", Content: system})
	for _, m := range history {
		messages = append(messages, openai.Message{Role: string(m.Role), Content: m.Content})
	}

	req := openai.ChatCompletionRequest{
		Model:    p.cfg.Model,
		Messages: messages,
	}
	if p.cfg.MaxTokens > 0 {
		maxTokens := p.cfg.MaxTokens
		req.MaxTokens = &maxTokens
	}
	temp := p.cfg.Temperature
	req.Temperature = &temp

	resp, err := p.client.ChatCompletion(ctx, req)
	if err != nil {
		return "", Usage{}, eris.Wrap(classify(p.Name(), err), "llm: openai completion")
	}

	usage := Usage{
		InputTokens:  resp.Usage.PromptTokens,
		OutputTokens: resp.Usage.CompletionTokens,
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), usage, nil
}
