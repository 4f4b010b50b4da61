package main

import (
	"context"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/jepco-digital/support-bot/internal/chat"
	"github.com/jepco-digital/support-bot/internal/llm"
	"github.com/jepco-digital/support-bot/internal/model"
	"github.com/jepco-digital/support-bot/internal/scraper"
	"github.com/jepco-digital/support-bot/internal/store"
)

// env bundles the wired dependencies a chat command needs.
type env struct {
	Store    store.Store
	Engine   *chat.Engine
	Snapshot *model.Snapshot
}

func (e *env) Close() {
	if err := e.Store.Close(); err != nil {
		zap.L().Warn("store close failed", zap.Error(err))
	}
}

// initStore opens the configured backend and runs migrations.
func initStore(ctx context.Context) (store.Store, error) {
	var (
		st  store.Store
		err error
	)
	switch cfg.Store.Driver {
	case "sqlite":
		st, err = store.NewSQLite(cfg.Store.SQLitePath)
	case "postgres":
		st, err = store.NewPostgres(ctx, cfg.Store.DatabaseURL)
	default:
		return nil, eris.Errorf("cmd: unknown store.driver %q (want sqlite or postgres)", cfg.Store.Driver)
	}
	if err != nil {
		return nil, err
	}

	if err := st.Migrate(ctx); err != nil {
		_ = st.Close()
		return nil, err
	}
	return st, nil
}

// loadSnapshot returns the freshest usable knowledge snapshot: the cached
// scrape if one is still valid, otherwise the bundled fallback content.
func loadSnapshot(ctx context.Context, st store.Store) (*model.Snapshot, error) {
	snap, err := st.GetCachedSnapshot(ctx)
	if err != nil {
		return nil, err
	}
	if snap != nil {
		zap.L().Info("using cached snapshot",
			zap.Time("scraped_at", snap.Meta.ScrapedAt),
			zap.Int("sections", snap.Meta.SectionCount),
		)
		return snap, nil
	}

	snap, err = scraper.FallbackSnapshot()
	if err != nil {
		return nil, err
	}
	zap.L().Warn("no cached snapshot, using bundled fallback content",
		zap.Int("sections", snap.Meta.SectionCount),
	)
	return snap, nil
}

// initEngine wires store, snapshot, and model provider into a chat engine.
func initEngine(ctx context.Context) (*env, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	st, err := initStore(ctx)
	if err != nil {
		return nil, err
	}

	snap, err := loadSnapshot(ctx, st)
	if err != nil {
		_ = st.Close()
		return nil, err
	}

	provider, err := llm.New(cfg)
	if err != nil {
		_ = st.Close()
		return nil, err
	}
	zap.L().Info("provider ready", zap.String("provider", provider.Name()))

	return &env{
		Store:    st,
		Engine:   chat.NewEngine(st, provider, snap, cfg.Chat),
		Snapshot: snap,
	}, nil
}

func cacheTTL() time.Duration {
	return time.Duration(cfg.Scrape.CacheTTLHours) * time.Hour
}
