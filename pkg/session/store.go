package session

import (
	"context"
	"sync"

	"github.com/matst80/slask-catalog/pkg/types"
)

// Store keeps one FilterState per session id.
type Store interface {
	Load(ctx context.Context, id string) (types.FilterState, bool, error)
	Save(ctx context.Context, id string, state types.FilterState) error
}

type MemoryStore struct {
	mu     sync.RWMutex
	states map[string]types.FilterState
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		states: make(map[string]types.FilterState),
	}
}

func (m *MemoryStore) Load(_ context.Context, id string) (types.FilterState, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	state, ok := m.states[id]
	return state, ok, nil
}

func (m *MemoryStore) Save(_ context.Context, id string, state types.FilterState) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.states[id] = state
	return nil
}
