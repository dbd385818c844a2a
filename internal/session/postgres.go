package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"
)

const createSessionsTable = `CREATE TABLE IF NOT EXISTS dashboard_sessions (
	key TEXT PRIMARY KEY,
	payload JSONB NOT NULL,
	saved_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// PostgresStore keeps sessions in the dashboard_sessions table.
type PostgresStore struct {
	db  *sql.DB
	ttl time.Duration
	now func() time.Time
}

// NewPostgresStore constructs a PostgresStore. Rows older than ttl are
// treated as absent; ttl <= 0 keeps them forever.
func NewPostgresStore(db *sql.DB, ttl time.Duration) *PostgresStore {
	return &PostgresStore{db: db, ttl: ttl, now: time.Now}
}

// Migrate creates the sessions table when missing.
func (p *PostgresStore) Migrate(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	_, err := p.db.ExecContext(ctx, createSessionsTable)
	return err
}

func (p *PostgresStore) Load(ctx context.Context, key string) (Session, error) {
	query := `SELECT payload, saved_at FROM dashboard_sessions WHERE key = $1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var (
		payload []byte
		savedAt time.Time
	)
	err := p.db.QueryRowContext(ctx, query, key).Scan(&payload, &savedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Session{}, ErrNoSession
	}
	if err != nil {
		return Session{}, err
	}
	if p.ttl > 0 && p.now().Sub(savedAt) > p.ttl {
		return Session{}, ErrNoSession
	}

	var s Session
	if err := json.Unmarshal(payload, &s); err != nil {
		return Session{}, err
	}
	return s, nil
}

func (p *PostgresStore) Save(ctx context.Context, key string, s Session) error {
	query := `INSERT INTO dashboard_sessions (key, payload, saved_at) VALUES ($1, $2, $3)
		ON CONFLICT (key) DO UPDATE SET payload = EXCLUDED.payload, saved_at = EXCLUDED.saved_at`
	data, err := json.Marshal(s)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	_, err = p.db.ExecContext(ctx, query, key, string(data), p.now().UTC())
	return err
}

func (p *PostgresStore) Clear(ctx context.Context, key string) error {
	query := `DELETE FROM dashboard_sessions WHERE key = $1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	_, err := p.db.ExecContext(ctx, query, key)
	return err
}
