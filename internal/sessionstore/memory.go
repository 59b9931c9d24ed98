package sessionstore

import (
	"context"
	"sync"
)

// Memory keeps encoded records in process. Records are stored as bytes so
// callers never share state with the store.
type Memory struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewMemory() *Memory {
	return &Memory{data: make(map[string][]byte)}
}

func (m *Memory) Load(_ context.Context, id string) (*Record, error) {
	m.mu.RLock()
	b, ok := m.data[id]
	m.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	return decode(id, b)
}

func (m *Memory) Save(_ context.Context, rec *Record) error {
	b, err := encode(rec)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.data[rec.State.ID] = b
	m.mu.Unlock()
	return nil
}

func (m *Memory) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	delete(m.data, id)
	m.mu.Unlock()
	return nil
}
