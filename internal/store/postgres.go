package store

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/jepco-digital/support-bot/internal/db"
	"github.com/jepco-digital/support-bot/internal/model"
)

// PostgresStore implements Store using pgxpool.
type PostgresStore struct {
	pool    db.Pool
	closeFn func()
}

// preparedStatements lists queries to prepare on each new connection for
// the hot path of a chat turn.
var preparedStatements = map[string]string{
	"insert_session":  `INSERT INTO sessions (id, language, created_at, updated_at) VALUES ($1, $2, $3, $4)`,
	"get_session":     `SELECT id, language, created_at, updated_at FROM sessions WHERE id = $1`,
	"insert_message":  `INSERT INTO messages (id, session_id, role, content, language, created_at) VALUES ($1, $2, $3, $4, $5, $6)`,
	"list_messages":   `SELECT id, session_id, role, content, language, created_at FROM messages WHERE session_id = $1 ORDER BY created_at ASC, id ASC`,
	"latest_snapshot": `SELECT snapshot FROM snapshot_cache WHERE expires_at > now() ORDER BY cached_at DESC LIMIT 1`,
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}

	pgxCfg.MaxConns = 10
	pgxCfg.MinConns = 2
	pgxCfg.MaxConnLifetime = 30 * time.Minute
	pgxCfg.MaxConnIdleTime = 5 * time.Minute

	pgxCfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		for name, sql := range preparedStatements {
			if _, err := conn.Prepare(ctx, name, sql); err != nil {
				return eris.Wrapf(err, "postgres: prepare %s", name)
			}
		}
		return nil
	}

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}
	return &PostgresStore{pool: pool, closeFn: pool.Close}, nil
}

// NewPostgresWithPool wraps an existing pool. Used by tests to inject a mock.
func NewPostgresWithPool(pool db.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS sessions (
	id         TEXT PRIMARY KEY,
	language   TEXT NOT NULL DEFAULT 'english',
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS messages (
	id         TEXT PRIMARY KEY,
	session_id TEXT NOT NULL REFERENCES sessions(id),
	role       TEXT NOT NULL,
	content    TEXT NOT NULL,
	language   TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS snapshot_cache (
	id         TEXT PRIMARY KEY,
	snapshot   JSONB NOT NULL,
	cached_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
	expires_at TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_messages_session_id ON messages(session_id, created_at);
CREATE INDEX IF NOT EXISTS idx_snapshot_cache_expires_at ON snapshot_cache(expires_at);
`

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Close() error {
	if s.closeFn != nil {
		s.closeFn()
	}
	return nil
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return eris.Wrap(s.pool.Ping(ctx), "postgres: ping")
}

func (s *PostgresStore) CreateSession(ctx context.Context, lang model.Language) (*model.Session, error) {
	if !lang.Valid() {
		lang = model.LanguageEnglish
	}
	id := uuid.New().String()
	now := time.Now().UTC()

	_, err := s.pool.Exec(ctx,
		`INSERT INTO sessions (id, language, created_at, updated_at) VALUES ($1, $2, $3, $4)`,
		id, string(lang), now, now,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: insert session")
	}

	return &model.Session{ID: id, Language: lang, CreatedAt: now, UpdatedAt: now}, nil
}

func (s *PostgresStore) GetSession(ctx context.Context, sessionID string) (*model.Session, error) {
	var sess model.Session
	err := s.pool.QueryRow(ctx,
		`SELECT id, language, created_at, updated_at FROM sessions WHERE id = $1`,
		sessionID,
	).Scan(&sess.ID, &sess.Language, &sess.CreatedAt, &sess.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, eris.Wrapf(err, "postgres: get session %s", sessionID)
	}
	return &sess, nil
}

func (s *PostgresStore) UpdateSessionLanguage(ctx context.Context, sessionID string, lang model.Language) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE sessions SET language = $1, updated_at = $2 WHERE id = $3`,
		string(lang), time.Now().UTC(), sessionID,
	)
	if err != nil {
		return eris.Wrapf(err, "postgres: update session language %s", sessionID)
	}
	if tag.RowsAffected() == 0 {
		return eris.Errorf("session not found: %s", sessionID)
	}
	return nil
}

func (s *PostgresStore) AppendMessage(ctx context.Context, msg model.Message) (*model.Message, error) {
	if msg.ID == "" {
		msg.ID = uuid.New().String()
	}
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now().UTC()
	}

	_, err := s.pool.Exec(ctx,
		`INSERT INTO messages (id, session_id, role, content, language, created_at) VALUES ($1, $2, $3, $4, $5, $6)`,
		msg.ID, msg.SessionID, string(msg.Role), msg.Content, string(msg.Language), msg.CreatedAt,
	)
	if err != nil {
		return nil, eris.Wrapf(err, "postgres: insert message for session %s", msg.SessionID)
	}

	_, err = s.pool.Exec(ctx,
		`UPDATE sessions SET updated_at = $1 WHERE id = $2`,
		msg.CreatedAt, msg.SessionID,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: touch session")
	}

	return &msg, nil
}

func (s *PostgresStore) ListMessages(ctx context.Context, sessionID string) ([]model.Message, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, session_id, role, content, language, created_at FROM messages
		 WHERE session_id = $1 ORDER BY created_at ASC, id ASC`,
		sessionID,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list messages")
	}
	defer rows.Close()

	var msgs []model.Message
	for rows.Next() {
		var m model.Message
		if err := rows.Scan(&m.ID, &m.SessionID, &m.Role, &m.Content, &m.Language, &m.CreatedAt); err != nil {
			return nil, eris.Wrap(err, "postgres: scan message")
		}
		msgs = append(msgs, m)
	}
	return msgs, eris.Wrap(rows.Err(), "postgres: list messages iterate")
}

func (s *PostgresStore) ClearMessages(ctx context.Context, sessionID string) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM messages WHERE session_id = $1`, sessionID)
	return eris.Wrapf(err, "postgres: clear messages %s", sessionID)
}

func (s *PostgresStore) GetCachedSnapshot(ctx context.Context) (*model.Snapshot, error) {
	var snapJSON []byte
	err := s.pool.QueryRow(ctx,
		`SELECT snapshot FROM snapshot_cache WHERE expires_at > now() ORDER BY cached_at DESC LIMIT 1`,
	).Scan(&snapJSON)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, eris.Wrap(err, "postgres: get cached snapshot")
	}

	var snap model.Snapshot
	if err := json.Unmarshal(snapJSON, &snap); err != nil {
		return nil, eris.Wrap(err, "postgres: unmarshal snapshot")
	}
	return &snap, nil
}

func (s *PostgresStore) SetCachedSnapshot(ctx context.Context, snap *model.Snapshot, ttl time.Duration) error {
	snapJSON, err := json.Marshal(snap)
	if err != nil {
		return eris.Wrap(err, "postgres: marshal snapshot")
	}

	now := time.Now().UTC()
	_, err = s.pool.Exec(ctx,
		`INSERT INTO snapshot_cache (id, snapshot, cached_at, expires_at) VALUES ($1, $2, $3, $4)`,
		uuid.New().String(), snapJSON, now, now.Add(ttl),
	)
	return eris.Wrap(err, "postgres: set cached snapshot")
}

func (s *PostgresStore) DeleteExpiredSnapshots(ctx context.Context) (int, error) {
	tag, err := s.pool.Exec(ctx,
		`DELETE FROM snapshot_cache WHERE expires_at <= now()`,
	)
	if err != nil {
		return 0, eris.Wrap(err, "postgres: delete expired snapshots")
	}
	return int(tag.RowsAffected()), nil
}
