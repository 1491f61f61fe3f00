package storage

import (
	"io"
	"sync"

	"github.com/charmbracelet/log"
)

// Prefs adapts a Store to the session's integer key-value interface.
// Keys are namespaced by scope so several SSH users can share one database.
// Store failures are logged and reads fall back to the default.
type Prefs struct {
	store  *Store
	scope  string
	logger *log.Logger
}

// NewPrefs creates a preference view of store. An empty scope uses bare keys.
func NewPrefs(store *Store, scope string, logger *log.Logger) *Prefs {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Prefs{store: store, scope: scope, logger: logger}
}

func (p *Prefs) key(k string) string {
	if p.scope == "" {
		return k
	}
	return p.scope + "/" + k
}

// GetInt implements session.PersistentStore.
func (p *Prefs) GetInt(key string, def int) int {
	v, err := p.store.Int(p.key(key), def)
	if err != nil {
		p.logger.Warn("preference read failed", "key", key, "err", err)
		return def
	}
	return v
}

// SetInt implements session.PersistentStore.
func (p *Prefs) SetInt(key string, value int) {
	if err := p.store.SetInt(p.key(key), value); err != nil {
		p.logger.Warn("preference write failed", "key", key, "err", err)
		return
	}
	p.logger.Debug("preference saved", "key", p.key(key), "value", value)
}

// Reset removes every preference of this scope. Other scopes are kept.
func (p *Prefs) Reset() error {
	if p.scope == "" {
		return p.store.ClearUnscopedPrefs()
	}
	return p.store.ClearPrefs(p.scope + "/")
}

// MemoryPrefs is an in-memory preference store for tests and play without a
// database. It is safe for concurrent use.
type MemoryPrefs struct {
	mu     sync.Mutex
	values map[string]int
}

// NewMemoryPrefs creates an empty in-memory store.
func NewMemoryPrefs() *MemoryPrefs {
	return &MemoryPrefs{values: make(map[string]int)}
}

// GetInt implements session.PersistentStore.
func (m *MemoryPrefs) GetInt(key string, def int) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	if v, ok := m.values[key]; ok {
		return v
	}
	return def
}

// SetInt implements session.PersistentStore.
func (m *MemoryPrefs) SetInt(key string, value int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
}
