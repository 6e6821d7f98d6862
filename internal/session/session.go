// Package session provides AppSession, the typed session-scoped store used
// to remember scroll offsets and one-shot navigation flags.
//
// Storage faults never reach callers: a failed read is "not found" and a
// failed write is dropped, so a disabled store behaves like a first visit.
package session

import (
	"strconv"

	"github.com/hallyupress/newsdesk/internal/logging"
)

// AppSession wraps a Backend with typed accessors. It is created once at
// bootstrap and lives as long as the process.
type AppSession struct {
	backend Backend
	logger  logging.Logger
}

// New returns an AppSession over backend. A nil backend is treated as
// Disabled.
func New(backend Backend, logger logging.Logger) *AppSession {
	if backend == nil {
		backend = Disabled{}
	}
	if logger == nil {
		logger = logging.Nop()
	}
	return &AppSession{backend: backend, logger: logger.With("component", "session")}
}

func (s *AppSession) get(key string) (string, bool) {
	v, ok, err := s.backend.Get(key)
	if err != nil {
		s.logger.Debug("session read failed", "key", key, "error", err)
		return "", false
	}
	return v, ok
}

func (s *AppSession) set(key, value string) {
	if err := s.backend.Set(key, value); err != nil {
		s.logger.Debug("session write failed", "key", key, "error", err)
	}
}

func (s *AppSession) remove(key string) {
	if err := s.backend.Remove(key); err != nil {
		s.logger.Debug("session remove failed", "key", key, "error", err)
	}
}

// ScrollOffset returns the stored offset for pageKey. Malformed or negative
// values count as missing.
func (s *AppSession) ScrollOffset(pageKey string) (int, bool) {
	raw, ok := s.get(pageKey)
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// HasScrollOffset reports whether a valid record exists for pageKey.
func (s *AppSession) HasScrollOffset(pageKey string) bool {
	_, ok := s.ScrollOffset(pageKey)
	return ok
}

// SaveScrollOffset stores offset for pageKey. Negative offsets store 0.
func (s *AppSession) SaveScrollOffset(pageKey string, offset int) {
	s.set(pageKey, strconv.Itoa(max(offset, 0)))
}

// RemoveScrollOffset deletes the record for pageKey.
func (s *AppSession) RemoveScrollOffset(pageKey string) {
	s.remove(pageKey)
}

// BackFlag reports whether flag is set.
func (s *AppSession) BackFlag(flag BackFlag) bool {
	v, ok := s.get(string(flag))
	return ok && v == flagValue
}

// SetBackFlag sets flag.
func (s *AppSession) SetBackFlag(flag BackFlag) {
	s.set(string(flag), flagValue)
}

// ClearBackFlag removes flag.
func (s *AppSession) ClearBackFlag(flag BackFlag) {
	s.remove(string(flag))
}

// MarkLogoClicked records that the next navigation came from the logo.
func (s *AppSession) MarkLogoClicked() {
	s.set(logoClickedKey, flagValue)
}

// ConsumeLogoClicked reports and clears the logo flag.
func (s *AppSession) ConsumeLogoClicked() bool {
	v, ok := s.get(logoClickedKey)
	if !ok {
		return false
	}
	s.remove(logoClickedKey)
	return v == flagValue
}

// Keys lists stored keys when the backend can enumerate them.
func (s *AppSession) Keys() []string {
	lister, ok := s.backend.(Lister)
	if !ok {
		return nil
	}
	keys, err := lister.Keys()
	if err != nil {
		s.logger.Debug("session list failed", "error", err)
		return nil
	}
	return keys
}

// Entry is one stored key/value pair.
type Entry struct {
	Key   string
	Value string
}

// Entries lists every stored pair when the backend can enumerate keys.
func (s *AppSession) Entries() []Entry {
	keys := s.Keys()
	entries := make([]Entry, 0, len(keys))
	for _, k := range keys {
		if v, ok := s.get(k); ok {
			entries = append(entries, Entry{Key: k, Value: v})
		}
	}
	return entries
}

// Clear removes every enumerable key and returns how many were removed.
func (s *AppSession) Clear() int {
	entries := s.Entries()
	for _, e := range entries {
		s.remove(e.Key)
	}
	return len(entries)
}
