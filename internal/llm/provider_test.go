package llm

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jepco-digital/support-bot/internal/config"
	"github.com/jepco-digital/support-bot/internal/model"
	"github.com/jepco-digital/support-bot/pkg/anthropic"
	"github.com/jepco-digital/support-bot/pkg/openai"
)

type fakeOpenAI struct {
	gotReq openai.ChatCompletionRequest
	resp   *openai.ChatCompletionResponse
	err    error
}

func (f *fakeOpenAI) ChatCompletion(_ context.Context, req openai.ChatCompletionRequest) (*openai.ChatCompletionResponse, error) {
	f.gotReq = req
	return f.resp, f.err
}

func TestOpenAIComplete(t *testing.T) {
	fake := &fakeOpenAI{
		resp: &openai.ChatCompletionResponse{
			Choices: []openai.Choice{{Message: openai.Message{Role: "assistant", Content: "  Pay at any JEPCO office.  "}}},
			Usage:   openai.Usage{PromptTokens: 100, CompletionTokens: 20},
		},
	}
	p := NewOpenAI(fake, config.OpenAIConfig{Model: "gpt-4o", MaxTokens: 500, Temperature: 0.7})

	history := []model.Message{
		{Role: model.RoleUser, Content: "how do I pay my bill?"},
	}
	text, usage, err := p.Complete(context.Background(), "you are a support rep", history)

	require.NoError(t, err)
	assert.Equal(t, "Pay at any JEPCO office.", text)
	assert.Equal(t, 100, usage.InputTokens)
	assert.Equal(t, 20, usage.OutputTokens)

	require.Len(t, fake.gotReq.Messages, 2)
	assert.Equal(t, "system", fake.gotReq.Messages[0].Role)
	assert.Equal(t, "you are a support rep", fake.gotReq.Messages[0].Content)
	assert.Equal(t, "user", fake.gotReq.Messages[1].Role)
	require.NotNil(t, fake.gotReq.MaxTokens)
	assert.Equal(t, 500, *fake.gotReq.MaxTokens)
	require.NotNil(t, fake.gotReq.Temperature)
	assert.InDelta(t, 0.7, *fake.gotReq.Temperature, 0.001)
}

type fakeAnthropic struct {
	gotReq anthropic.MessageRequest
	resp   *anthropic.MessageResponse
	err    error
}

func (f *fakeAnthropic) CreateMessage(_ context.Context, req anthropic.MessageRequest) (*anthropic.MessageResponse, error) {
	f.gotReq = req
	return f.resp, f.err
}

func TestAnthropicComplete(t *testing.T) {
	fake := &fakeAnthropic{
		resp: &anthropic.MessageResponse{
			Text:  "Call 116 for outages.",
			Usage: anthropic.TokenUsage{InputTokens: 80, OutputTokens: 15},
		},
	}
	p := NewAnthropic(fake, config.AnthropicConfig{Model: "claude-haiku-4-5-20251001", MaxTokens: 500})

	history := []model.Message{
		{Role: model.RoleUser, Content: "there is an outage"},
		{Role: model.RoleAssistant, Content: "which area?"},
		{Role: model.RoleUser, Content: "Amman"},
	}
	text, usage, err := p.Complete(context.Background(), "system prompt", history)

	require.NoError(t, err)
	assert.Equal(t, "Call 116 for outages.", text)
	assert.Equal(t, 80, usage.InputTokens)
	assert.Equal(t, 15, usage.OutputTokens)

	assert.Equal(t, "system prompt", fake.gotReq.System)
	require.Len(t, fake.gotReq.Messages, 3)
	assert.Equal(t, "assistant", fake.gotReq.Messages[1].Role)
	assert.Equal(t, int64(500), fake.gotReq.MaxTokens)
}

func TestNew(t *testing.T) {
	cfg := &config.Config{}
	cfg.LLM.Provider = "openai"
	cfg.OpenAI = config.OpenAIConfig{Key: "k", BaseURL: "https://api.openai.com/v1", Model: "gpt-4o"}
	p, err := New(cfg)
	require.NoError(t, err)
	assert.Equal(t, "openai", p.Name())

	cfg.LLM.Provider = "anthropic"
	cfg.Anthropic = config.AnthropicConfig{Key: "k", Model: "claude-haiku-4-5-20251001", MaxTokens: 500}
	p, err = New(cfg)
	require.NoError(t, err)
	assert.Equal(t, "anthropic", p.Name())

	cfg.LLM.Provider = "bard"
	_, err = New(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown provider")
}
