// Package session provides auth.SessionStore implementations.
package session

import (
	"context"
	"sync"

	"github.com/honeycarbs/jobzone/internal/domain"
	"github.com/honeycarbs/jobzone/internal/domain/auth"
)

// MemoryStore keeps the session for the life of the process
type MemoryStore struct {
	mu sync.RWMutex
	s  domain.AuthSession
	ok bool
}

var _ auth.SessionStore = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Get(context.Context) (domain.AuthSession, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.s, m.ok, nil
}

func (m *MemoryStore) Set(_ context.Context, s domain.AuthSession) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.s, m.ok = s, true
	return nil
}

func (m *MemoryStore) Clear(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.s, m.ok = domain.AuthSession{}, false
	return nil
}
