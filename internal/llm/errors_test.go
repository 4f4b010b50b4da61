package llm

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jepco-digital/support-bot/internal/config"
	"github.com/jepco-digital/support-bot/internal/resilience"
	"github.com/jepco-digital/support-bot/pkg/openai"
)

func TestClassify(t *testing.T) {
	assert.True(t, resilience.IsAuth(classify("openai", &openai.APIError{StatusCode: 401})))
	assert.True(t, resilience.IsAuth(classify("openai", &openai.APIError{StatusCode: 403})))

	assert.True(t, resilience.IsTransient(classify("openai", &openai.APIError{StatusCode: 429})))
	assert.True(t, resilience.RateLimited(classify("openai", &openai.APIError{StatusCode: 429})))
	assert.True(t, resilience.IsTransient(classify("openai", &openai.APIError{StatusCode: 500})))
	assert.True(t, resilience.IsTransient(classify("anthropic", &openai.APIError{StatusCode: 529})))

	got := classify("openai", &openai.APIError{StatusCode: 400, Message: "bad request"})
	assert.False(t, resilience.IsAuth(got))
	assert.False(t, resilience.IsTransient(got))

	plain := errors.New("connection closed")
	assert.Equal(t, plain, classify("openai", plain))
}

func TestCompleteClassifiesProviderFailures(t *testing.T) {
	fake := &fakeOpenAI{err: &openai.APIError{StatusCode: 401, Message: "invalid key"}}
	p := NewOpenAI(fake, config.OpenAIConfig{Model: "gpt-4o"})

	_, _, err := p.Complete(context.Background(), "system", nil)
	require.Error(t, err)
	assert.True(t, resilience.IsAuth(err))
	assert.False(t, resilience.IsTransient(err))

	fake.err = &openai.APIError{StatusCode: 429, Message: "rate limited"}
	_, _, err = p.Complete(context.Background(), "system", nil)
	require.Error(t, err)
	assert.True(t, resilience.RateLimited(err))
}
