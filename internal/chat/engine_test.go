package chat

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jepco-digital/support-bot/internal/config"
	"github.com/jepco-digital/support-bot/internal/llm"
	"github.com/jepco-digital/support-bot/internal/model"
	"github.com/jepco-digital/support-bot/internal/resilience"
	"github.com/jepco-digital/support-bot/internal/scraper"
	"github.com/jepco-digital/support-bot/internal/store"
)

type fakeProvider struct {
	reply      string
	err        error
	gotSystem  string
	gotHistory []model.Message
	calls      int
}

func (f *fakeProvider) Name() string { return "fake" }

func (f *fakeProvider) Complete(_ context.Context, system string, history []model.Message) (string, llm.Usage, error) {
	f.calls++
	f.gotSystem = system
	f.gotHistory = history
	if f.err != nil {
		return "", llm.Usage{}, f.err
	}
	return f.reply, llm.Usage{InputTokens: 100, OutputTokens: 20}, nil
}

func newTestEngine(t *testing.T, provider llm.Provider) (*Engine, store.Store) {
	t.Helper()

	st, err := store.NewSQLite(filepath.Join(t.TempDir(), "chat.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.Migrate(context.Background()))

	snap, err := scraper.FallbackSnapshot()
	require.NoError(t, err)

	eng := NewEngine(st, provider, snap, config.ChatConfig{HistoryWindow: 6})
	eng.policy = resilience.Policy{Attempts: 1}
	return eng, st
}

func TestStartSession(t *testing.T) {
	eng, st := newTestEngine(t, &fakeProvider{})

	sess, welcome, err := eng.StartSession(context.Background(), model.LanguageJordanian)
	require.NoError(t, err)
	assert.Equal(t, model.LanguageJordanian, sess.Language)
	assert.Equal(t, model.RoleAssistant, welcome.Role)
	assert.Contains(t, welcome.Content, "أهلاً وسهلاً")

	msgs, err := st.ListMessages(context.Background(), sess.ID)
	require.NoError(t, err)
	require.Len(t, msgs, 1)
}

func TestRespondEnglish(t *testing.T) {
	provider := &fakeProvider{reply: "You can pay online via eFAWATEERcom."}
	eng, st := newTestEngine(t, provider)

	sess, _, err := eng.StartSession(context.Background(), model.LanguageEnglish)
	require.NoError(t, err)

	userMsg, reply, err := eng.Respond(context.Background(), sess.ID, "How can I pay my electricity bill?", "")
	require.NoError(t, err)
	assert.Equal(t, model.RoleUser, userMsg.Role)
	assert.Equal(t, "How can I pay my electricity bill?", userMsg.Content)
	assert.Equal(t, model.RoleAssistant, reply.Role)
	assert.Equal(t, "You can pay online via eFAWATEERcom.", reply.Content)
	assert.Equal(t, model.LanguageEnglish, reply.Language)

	// System prompt carries persona, retrieved context, and instructions.
	assert.Contains(t, provider.gotSystem, "customer service representative for JEPCO")
	assert.Contains(t, provider.gotSystem, "JEPCO WEBSITE CONTEXT:")
	assert.Contains(t, provider.gotSystem, "Respond in English")

	// History ends with the customer's message.
	require.NotEmpty(t, provider.gotHistory)
	last := provider.gotHistory[len(provider.gotHistory)-1]
	assert.Equal(t, model.RoleUser, last.Role)
	assert.Equal(t, "How can I pay my electricity bill?", last.Content)

	// Welcome, user turn, assistant turn.
	msgs, err := st.ListMessages(context.Background(), sess.ID)
	require.NoError(t, err)
	assert.Len(t, msgs, 3)
}

func TestRespondSwitchesSessionLanguage(t *testing.T) {
	provider := &fakeProvider{reply: "رد"}
	eng, st := newTestEngine(t, provider)

	sess, _, err := eng.StartSession(context.Background(), model.LanguageEnglish)
	require.NoError(t, err)

	_, reply, err := eng.Respond(context.Background(), sess.ID, "بدي أدفع فاتورة الكهربا", "")
	require.NoError(t, err)
	assert.Equal(t, model.LanguageJordanian, reply.Language)
	assert.Contains(t, provider.gotSystem, "إنت موظف خدمة عملاء")

	updated, err := st.GetSession(context.Background(), sess.ID)
	require.NoError(t, err)
	assert.Equal(t, model.LanguageJordanian, updated.Language)
}

func TestRespondLanguageOverride(t *testing.T) {
	provider := &fakeProvider{reply: "reply"}
	eng, _ := newTestEngine(t, provider)

	sess, _, err := eng.StartSession(context.Background(), model.LanguageEnglish)
	require.NoError(t, err)

	// English text, pinned to a Jordanian reply.
	_, reply, err := eng.Respond(context.Background(), sess.ID, "how do I pay my bill", model.LanguageJordanian)
	require.NoError(t, err)
	assert.Equal(t, model.LanguageJordanian, reply.Language)
	assert.Contains(t, provider.gotSystem, "Respond in Jordanian Arabic dialect")
}

func TestRespondUnknownSession(t *testing.T) {
	eng, _ := newTestEngine(t, &fakeProvider{})

	_, _, err := eng.Respond(context.Background(), "missing", "hello", "")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestRespondWindowsHistory(t *testing.T) {
	provider := &fakeProvider{reply: "ok"}
	eng, _ := newTestEngine(t, provider)

	sess, _, err := eng.StartSession(context.Background(), model.LanguageEnglish)
	require.NoError(t, err)

	for i := 0; i < 8; i++ {
		_, _, err := eng.Respond(context.Background(), sess.ID, "what are your office hours today", "")
		require.NoError(t, err)
	}

	// Six prior messages plus the current turn.
	assert.Len(t, provider.gotHistory, 7)
}

func TestRespondProviderFailure(t *testing.T) {
	provider := &fakeProvider{err: errors.New("boom")}
	eng, _ := newTestEngine(t, provider)

	sess, _, err := eng.StartSession(context.Background(), model.LanguageEnglish)
	require.NoError(t, err)

	_, reply, err := eng.Respond(context.Background(), sess.ID, "hello there, is anyone around", "")
	require.NoError(t, err)
	assert.Contains(t, reply.Content, "technical difficulties")
	assert.NotContains(t, reply.Content, "boom")
}

func TestRespondAuthFailure(t *testing.T) {
	provider := &fakeProvider{err: resilience.Auth("openai", errors.New("bad key"))}
	eng, _ := newTestEngine(t, provider)

	sess, _, err := eng.StartSession(context.Background(), model.LanguageEnglish)
	require.NoError(t, err)

	_, reply, err := eng.Respond(context.Background(), sess.ID, "hello there, is anyone around", "")
	require.NoError(t, err)
	assert.Contains(t, reply.Content, "Authentication error")
	assert.Equal(t, 1, provider.calls, "auth failures must not be retried")
}

func TestRespondRateLimitRetries(t *testing.T) {
	provider := &fakeProvider{err: resilience.Transient(errors.New("too many requests"), 429)}
	eng, _ := newTestEngine(t, provider)
	eng.policy = resilience.Policy{Attempts: 2, BaseDelay: 1, MaxDelay: 1}

	sess, _, err := eng.StartSession(context.Background(), model.LanguageEnglish)
	require.NoError(t, err)

	_, reply, err := eng.Respond(context.Background(), sess.ID, "hello there, is anyone around", "")
	require.NoError(t, err)
	assert.Contains(t, reply.Content, "high demand")
	assert.Equal(t, 2, provider.calls)
}

func TestClearSession(t *testing.T) {
	provider := &fakeProvider{reply: "ok"}
	eng, st := newTestEngine(t, provider)

	sess, _, err := eng.StartSession(context.Background(), model.LanguageArabic)
	require.NoError(t, err)
	_, _, err = eng.Respond(context.Background(), sess.ID, "أرغب في تسديد فاتورتي عبر الإنترنت", "")
	require.NoError(t, err)

	welcome, err := eng.ClearSession(context.Background(), sess.ID)
	require.NoError(t, err)
	assert.Equal(t, model.RoleAssistant, welcome.Role)

	msgs, err := st.ListMessages(context.Background(), sess.ID)
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Contains(t, msgs[0].Content, "مرحباً")
}

func TestHistory(t *testing.T) {
	eng, _ := newTestEngine(t, &fakeProvider{reply: "ok"})

	sess, _, err := eng.StartSession(context.Background(), model.LanguageEnglish)
	require.NoError(t, err)

	msgs, err := eng.History(context.Background(), sess.ID)
	require.NoError(t, err)
	require.Len(t, msgs, 1)

	_, err = eng.History(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestBuildSystemPrompt(t *testing.T) {
	got := buildSystemPrompt(model.LanguageJordanian, "[Billing Information] pay online")

	assert.True(t, strings.Contains(got, "JEPCO WEBSITE CONTEXT:\n[Billing Information] pay online"))
	assert.Contains(t, got, "Use ONLY the information provided above")
	assert.Contains(t, got, "Respond in Jordanian Arabic dialect")
}
