package session

import (
	"errors"
	"sort"
	"sync"
)

// ErrUnavailable is returned by the Disabled backend.
var ErrUnavailable = errors.New("session storage unavailable")

// Backend is a string key/value store scoped to one session.
type Backend interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Remove(key string) error
}

// Lister is implemented by backends that can enumerate their keys.
type Lister interface {
	Keys() ([]string, error)
}

// Memory is a Backend held in process memory.
type Memory struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemory returns an empty in-memory backend.
func NewMemory() *Memory {
	return &Memory{values: make(map[string]string)}
}

func (m *Memory) Get(key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *Memory) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

func (m *Memory) Remove(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}

func (m *Memory) Keys() ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	keys := make([]string, 0, len(m.values))
	for k := range m.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

// Disabled models storage that refuses every operation.
type Disabled struct{}

func (Disabled) Get(string) (string, bool, error) { return "", false, ErrUnavailable }
func (Disabled) Set(string, string) error         { return ErrUnavailable }
func (Disabled) Remove(string) error              { return ErrUnavailable }
