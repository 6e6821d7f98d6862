// Package storage selects and opens the persistence backends.
package storage

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/hallyupress/newsdesk/internal/colors"
	"github.com/hallyupress/newsdesk/internal/config"
	"github.com/hallyupress/newsdesk/internal/session"
	"github.com/hallyupress/newsdesk/internal/storage/sqlite"
)

const (
	// DatabaseFileName is the SQLite file inside the state directory.
	DatabaseFileName = "newsdesk.db"
	// DefaultSessionScope is the scope used by the CLI and the TUI.
	DefaultSessionScope = "default"
)

// DatabasePath returns the SQLite path under the configured state dir.
func DatabasePath() string {
	return filepath.Join(config.StateDir(), DatabaseFileName)
}

// OpenDatabase opens the SQLite database at DatabasePath.
func OpenDatabase() (*sqlite.SQLiteStorage, error) {
	return sqlite.NewSQLiteStorage(DatabasePath())
}

func noopClose() error { return nil }

// NewSessionBackendFromConfig creates the backend named by session_backend.
func NewSessionBackendFromConfig() (session.Backend, func() error) {
	backend := config.Get("session_backend", config.SessionBackendSQLite)
	return NewSessionBackend(backend, DefaultSessionScope)
}

// NewSessionBackend creates a session backend by name. It never fails:
// problems opening SQLite fall back to memory with a warning. The returned
// function releases the backend.
func NewSessionBackend(backend, scope string) (session.Backend, func() error) {
	switch strings.ToLower(strings.TrimSpace(backend)) {
	case config.SessionBackendMemory:
		return session.NewMemory(), noopClose
	case config.SessionBackendDisabled:
		return session.Disabled{}, noopClose
	case "", config.SessionBackendSQLite:
		db, err := OpenDatabase()
		if err != nil {
			colors.Warning(fmt.Sprintf("failed to initialize sqlite session backend, falling back to memory: %v", err))
			return session.NewMemory(), noopClose
		}
		return db.Session(scope), db.Close
	default:
		colors.Warning(fmt.Sprintf("unknown session backend '%s', falling back to memory", backend))
		return session.NewMemory(), noopClose
	}
}
