package cache

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Memory is a Cache held in process memory.
type Memory struct {
	store *gocache.Cache
}

// NewMemory creates a Memory cache. Entries stored with a zero TTL use
// defaultTTL; expired entries are purged every cleanupInterval.
func NewMemory(defaultTTL, cleanupInterval time.Duration) *Memory {
	return &Memory{store: gocache.New(defaultTTL, cleanupInterval)}
}

func (m *Memory) Get(_ context.Context, key string) ([]byte, error) {
	v, ok := m.store.Get(key)
	if !ok {
		return nil, ErrMiss
	}
	data, ok := v.([]byte)
	if !ok {
		return nil, ErrMiss
	}
	return data, nil
}

func (m *Memory) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = gocache.DefaultExpiration
	}
	m.store.Set(key, value, ttl)
	return nil
}

// Len reports the number of stored entries, including expired ones not yet
// purged.
func (m *Memory) Len() int {
	return m.store.ItemCount()
}

func (m *Memory) Close() error {
	m.store.Flush()
	return nil
}
