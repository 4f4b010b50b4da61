// Package chat orchestrates a support conversation turn: language
// detection, context retrieval, the model call, and persistence.
package chat

import (
	"context"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/jepco-digital/support-bot/internal/config"
	"github.com/jepco-digital/support-bot/internal/knowledge"
	"github.com/jepco-digital/support-bot/internal/language"
	"github.com/jepco-digital/support-bot/internal/llm"
	"github.com/jepco-digital/support-bot/internal/model"
	"github.com/jepco-digital/support-bot/internal/resilience"
	"github.com/jepco-digital/support-bot/internal/store"
)

// ErrSessionNotFound is returned when a turn references an unknown session.
var ErrSessionNotFound = eris.New("chat: session not found")

// Engine answers customer questions grounded on the site snapshot.
type Engine struct {
	store    store.Store
	provider llm.Provider
	snapshot *model.Snapshot
	cfg      config.ChatConfig
	policy   resilience.Policy
}

// NewEngine builds an engine over a store, a model provider, and the
// snapshot the replies are grounded on.
func NewEngine(st store.Store, provider llm.Provider, snap *model.Snapshot, cfg config.ChatConfig) *Engine {
	return &Engine{
		store:    st,
		provider: provider,
		snapshot: snap,
		cfg:      cfg,
		policy:   resilience.DefaultPolicy(),
	}
}

// StartSession creates a session and records the localized greeting as the
// first assistant message.
func (e *Engine) StartSession(ctx context.Context, lang model.Language) (*model.Session, *model.Message, error) {
	sess, err := e.store.CreateSession(ctx, lang)
	if err != nil {
		return nil, nil, err
	}

	welcome, err := e.store.AppendMessage(ctx, model.Message{
		SessionID: sess.ID,
		Role:      model.RoleAssistant,
		Content:   language.WelcomeMessage(sess.Language),
		Language:  sess.Language,
	})
	if err != nil {
		return nil, nil, err
	}

	zap.L().Info("session started",
		zap.String("session_id", sess.ID),
		zap.String("language", string(sess.Language)),
	)
	return sess, welcome, nil
}

// Respond handles one customer turn: it detects the language, retrieves
// context, asks the model, and persists both sides of the exchange. A valid
// override pins the reply language instead of detecting it. Upstream
// failures come back as a localized apology message, not as an error.
func (e *Engine) Respond(ctx context.Context, sessionID, text string, override model.Language) (*model.Message, *model.Message, error) {
	sess, err := e.store.GetSession(ctx, sessionID)
	if err != nil {
		return nil, nil, err
	}
	if sess == nil {
		return nil, nil, ErrSessionNotFound
	}

	lang := override
	if !lang.Valid() {
		lang = language.Detect(text)
	}
	if lang != sess.Language {
		if err := e.store.UpdateSessionLanguage(ctx, sessionID, lang); err != nil {
			return nil, nil, err
		}
	}

	prior, err := e.store.ListMessages(ctx, sessionID)
	if err != nil {
		return nil, nil, err
	}

	userMsg, err := e.store.AppendMessage(ctx, model.Message{
		SessionID: sessionID,
		Role:      model.RoleUser,
		Content:   text,
		Language:  lang,
	})
	if err != nil {
		return nil, nil, err
	}

	history := append(model.Window(prior, e.cfg.HistoryWindow), *userMsg)
	system := buildSystemPrompt(lang, knowledge.Search(e.snapshot, text, lang))

	start := time.Now()
	var usage llm.Usage
	reply, err := resilience.DoVal(ctx, e.policy, "chat completion",
		func(ctx context.Context) (string, error) {
			out, u, err := e.provider.Complete(ctx, system, history)
			usage = u
			return out, err
		})
	if err != nil {
		reply = apologize(lang, err)
	} else {
		zap.L().Info("completion",
			zap.String("session_id", sessionID),
			zap.String("provider", e.provider.Name()),
			zap.String("language", string(lang)),
			zap.Int("input_tokens", usage.InputTokens),
			zap.Int("output_tokens", usage.OutputTokens),
			zap.Duration("elapsed", time.Since(start)),
		)
	}

	assistantMsg, err := e.store.AppendMessage(ctx, model.Message{
		SessionID: sessionID,
		Role:      model.RoleAssistant,
		Content:   reply,
		Language:  lang,
	})
	if err != nil {
		return nil, nil, err
	}
	return userMsg, assistantMsg, nil
}

// ClearSession wipes a session's messages and greets again in the session
// language.
func (e *Engine) ClearSession(ctx context.Context, sessionID string) (*model.Message, error) {
	sess, err := e.store.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return nil, ErrSessionNotFound
	}

	if err := e.store.ClearMessages(ctx, sessionID); err != nil {
		return nil, err
	}

	return e.store.AppendMessage(ctx, model.Message{
		SessionID: sessionID,
		Role:      model.RoleAssistant,
		Content:   language.WelcomeMessage(sess.Language),
		Language:  sess.Language,
	})
}

// History returns a session's messages, oldest first.
func (e *Engine) History(ctx context.Context, sessionID string) ([]model.Message, error) {
	sess, err := e.store.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return nil, ErrSessionNotFound
	}
	return e.store.ListMessages(ctx, sessionID)
}

// buildSystemPrompt combines the language persona with the retrieved site
// context and the grounding instructions.
func buildSystemPrompt(lang model.Language, contextBlock string) string {
	return language.SystemPrompt(lang) +
		"\n\nJEPCO WEBSITE CONTEXT:\n" + contextBlock +
		"\n\nInstructions:" +
		"\n- Use ONLY the information provided above from the JEPCO website" +
		"\n- If the information needed is not in the context, direct the customer to contact JEPCO at 116" +
		"\n- Respond in " + replyLanguage(lang)
}

func replyLanguage(lang model.Language) string {
	switch lang {
	case model.LanguageArabic:
		return "Formal Arabic (الفصحى)"
	case model.LanguageJordanian:
		return "Jordanian Arabic dialect (اللهجة الأردنية)"
	default:
		return "English"
	}
}

// apologize maps an upstream failure to the localized reply the customer
// sees. Credential problems and rate limits get specific wording; anything
// else stays generic.
func apologize(lang model.Language, err error) string {
	detail := ""
	switch {
	case resilience.IsAuth(err):
		detail = "Authentication error. Please check API key configuration."
	case resilience.RateLimited(err):
		detail = "Service temporarily unavailable due to high demand. Please try again shortly."
	}

	zap.L().Error("completion failed", zap.Error(err))
	return language.ErrorMessage(lang, detail)
}
