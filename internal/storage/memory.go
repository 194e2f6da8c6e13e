package storage

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
)

// MemoryStore keeps blobs in process memory.
type MemoryStore struct {
	mu     sync.RWMutex
	blobs  map[string][]byte
	logger *slog.Logger
}

func NewMemoryStore(logger *slog.Logger) *MemoryStore {
	return &MemoryStore{
		blobs:  make(map[string][]byte),
		logger: logger,
	}
}

func (m *MemoryStore) Load(_ context.Context, key string) (json.RawMessage, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	raw, ok := m.blobs[key]
	if !ok {
		return EmptyList, nil
	}
	return sanitize(append([]byte(nil), raw...), key, m.logger), nil
}

func (m *MemoryStore) Save(_ context.Context, key string, value json.RawMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.blobs[key] = append([]byte(nil), value...)
	return nil
}

func (m *MemoryStore) Close() error {
	return nil
}
