// Package store persists chat sessions, messages, and the scraped site
// snapshot behind one interface with SQLite and Postgres backends.
package store

import (
	"context"
	"time"

	"github.com/jepco-digital/support-bot/internal/model"
)

// Store defines the persistence interface for the support bot.
type Store interface {
	// Sessions
	CreateSession(ctx context.Context, lang model.Language) (*model.Session, error)
	GetSession(ctx context.Context, sessionID string) (*model.Session, error)
	UpdateSessionLanguage(ctx context.Context, sessionID string, lang model.Language) error

	// Messages
	AppendMessage(ctx context.Context, msg model.Message) (*model.Message, error)
	ListMessages(ctx context.Context, sessionID string) ([]model.Message, error)
	ClearMessages(ctx context.Context, sessionID string) error

	// Snapshot cache
	GetCachedSnapshot(ctx context.Context) (*model.Snapshot, error)
	SetCachedSnapshot(ctx context.Context, snap *model.Snapshot, ttl time.Duration) error
	DeleteExpiredSnapshots(ctx context.Context) (int, error)

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}
