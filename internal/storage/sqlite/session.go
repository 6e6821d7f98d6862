package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// SessionStore adapts SQLiteStorage to the session.Backend interface.
// Keys are scoped to Scope so several sessions can share one file.
type SessionStore struct {
	s     *SQLiteStorage
	scope string
}

// Session returns a session store whose keys are prefixed with scope.
func (s *SQLiteStorage) Session(scope string) *SessionStore {
	return &SessionStore{s: s, scope: scope}
}

func (ss *SessionStore) key(k string) string {
	if ss.scope == "" {
		return k
	}
	return ss.scope + ":" + k
}

// Get returns the value stored under key.
func (ss *SessionStore) Get(key string) (string, bool, error) {
	var value string
	err := ss.s.db.QueryRowContext(context.Background(),
		`SELECT value FROM session_kv WHERE key = ?`, ss.key(key)).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("sqlite storage: get session key: %w", err)
	}
	return value, true, nil
}

// Set stores value under key.
func (ss *SessionStore) Set(key, value string) error {
	_, err := ss.s.db.ExecContext(context.Background(), `
INSERT INTO session_kv (key, value, updated_at) VALUES (?, ?, ?)
ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		ss.key(key), value, utcNow())
	if err != nil {
		return fmt.Errorf("sqlite storage: set session key: %w", err)
	}
	return nil
}

// Remove deletes key. Removing a missing key is not an error.
func (ss *SessionStore) Remove(key string) error {
	if _, err := ss.s.db.ExecContext(context.Background(),
		`DELETE FROM session_kv WHERE key = ?`, ss.key(key)); err != nil {
		return fmt.Errorf("sqlite storage: remove session key: %w", err)
	}
	return nil
}

// Keys lists the keys of this scope in lexical order, without the prefix.
func (ss *SessionStore) Keys() ([]string, error) {
	query := `SELECT key FROM session_kv ORDER BY key`
	args := []any{}
	if ss.scope != "" {
		query = `SELECT substr(key, ?) FROM session_kv WHERE substr(key, 1, ?) = ? ORDER BY key`
		prefix := ss.scope + ":"
		args = append(args, len(prefix)+1, len(prefix), prefix)
	}

	rows, err := ss.s.db.QueryContext(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("sqlite storage: list session keys: %w", err)
	}
	defer rows.Close()

	keys := []string{}
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, fmt.Errorf("sqlite storage: scan session key: %w", err)
		}
		keys = append(keys, k)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite storage: list session keys: %w", err)
	}
	return keys, nil
}
