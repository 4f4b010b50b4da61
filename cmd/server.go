package main

import (
	_ "embed"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/jepco-digital/support-bot/internal/chat"
	"github.com/jepco-digital/support-bot/internal/model"
)

//go:embed web/index.html
var indexHTML []byte

// newRouter builds the chat API and the embedded web UI.
func newRouter(eng *chat.Engine, allowedOrigins []string) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestLogger)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
	}))

	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write(indexHTML)
	})

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api/sessions", func(r chi.Router) {
		r.Post("/", handleCreateSession(eng))
		r.Get("/{id}/messages", handleListMessages(eng))
		r.Post("/{id}/messages", handleSendMessage(eng))
		r.Delete("/{id}/messages", handleClearMessages(eng))
	})

	return r
}

func handleCreateSession(eng *chat.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Language string `json:"language"`
		}
		// An empty or malformed body means an English session.
		_ = json.NewDecoder(r.Body).Decode(&req)

		lang := model.Language(strings.ToLower(req.Language))
		if !lang.Valid() {
			lang = model.LanguageEnglish
		}

		sess, welcome, err := eng.StartSession(r.Context(), lang)
		if err != nil {
			serverError(w, "create session", err)
			return
		}

		writeJSON(w, http.StatusCreated, map[string]any{
			"session": sess,
			"welcome": welcome,
		})
	}
}

func handleListMessages(eng *chat.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		msgs, err := eng.History(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			if errors.Is(err, chat.ErrSessionNotFound) {
				writeJSON(w, http.StatusNotFound, map[string]string{"error": "session not found"})
				return
			}
			serverError(w, "list messages", err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"messages": msgs})
	}
}

func handleSendMessage(eng *chat.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Message  string `json:"message"`
			Language string `json:"language"` // optional reply-language pin
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
			return
		}
		if strings.TrimSpace(req.Message) == "" {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "message is required"})
			return
		}

		userMsg, reply, err := eng.Respond(r.Context(), chi.URLParam(r, "id"),
			req.Message, model.Language(strings.ToLower(req.Language)))
		if err != nil {
			if errors.Is(err, chat.ErrSessionNotFound) {
				writeJSON(w, http.StatusNotFound, map[string]string{"error": "session not found"})
				return
			}
			serverError(w, "respond", err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"message": userMsg,
			"reply":   reply,
			"rtl":     reply.Language.RTL(),
		})
	}
}

func handleClearMessages(eng *chat.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		welcome, err := eng.ClearSession(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			if errors.Is(err, chat.ErrSessionNotFound) {
				writeJSON(w, http.StatusNotFound, map[string]string{"error": "session not found"})
				return
			}
			serverError(w, "clear session", err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"welcome": welcome})
	}
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		zap.L().Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("elapsed", time.Since(start)),
		)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func serverError(w http.ResponseWriter, op string, err error) {
	zap.L().Error(op+" failed", zap.Error(err))
	writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
}
