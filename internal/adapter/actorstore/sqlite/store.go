package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"mergeverse/internal/app/ports"
)

// Store is the per-actor durable store: one row per key, two key families
// (state:<player> and session:<player>). A single write connection keeps the
// file consistent under the actors' concurrent goroutines.
type Store struct {
	db *sql.DB
}

var _ ports.ActorStateStore = (*Store)(nil)

func Open(path string) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("empty db path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			_ = db.Close()
			return nil, err
		}
	}

	schema := `CREATE TABLE IF NOT EXISTS actor_kv (
		key TEXT PRIMARY KEY,
		value BLOB NOT NULL
	);`
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func stateKey(playerID string) string   { return "state:" + playerID }
func sessionKey(playerID string) string { return "session:" + playerID }

func (s *Store) get(ctx context.Context, key string) ([]byte, bool, error) {
	var value []byte
	err := s.db.QueryRowContext(ctx, `SELECT value FROM actor_kv WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return value, true, nil
}

func (s *Store) put(ctx context.Context, key string, value []byte) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO actor_kv(key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value)
	return err
}

func (s *Store) GetState(ctx context.Context, playerID string) ([]byte, bool, error) {
	return s.get(ctx, stateKey(playerID))
}

func (s *Store) PutState(ctx context.Context, playerID string, data []byte) error {
	return s.put(ctx, stateKey(playerID), data)
}

func (s *Store) GetSessionIdentity(ctx context.Context, playerID string) (string, bool, error) {
	value, ok, err := s.get(ctx, sessionKey(playerID))
	if err != nil || !ok {
		return "", false, err
	}
	return string(value), true, nil
}

func (s *Store) PutSessionIdentity(ctx context.Context, playerID, identity string) error {
	return s.put(ctx, sessionKey(playerID), []byte(identity))
}

func (s *Store) ClearSessionIdentity(ctx context.Context, playerID string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM actor_kv WHERE key = ?`, sessionKey(playerID))
	return err
}
