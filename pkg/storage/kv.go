package storage

import (
	"context"
	"errors"
	"sync"
)

// ErrNoRecord is returned when a key has never been written.
var ErrNoRecord = errors.New("storage: no record")

//go:generate mockgen -source=kv.go -destination=kv_mock.go -package=storage KV

// KV is the persistence substrate: one key per collection, values are
// JSON-serialized arrays.
type KV interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string) error
}

type MemoryKV struct {
	mu   *sync.Mutex
	data map[string]string
}

func NewMemoryKV() *MemoryKV {
	return &MemoryKV{mu: &sync.Mutex{}, data: make(map[string]string)}
}

func (kv *MemoryKV) Get(ctx context.Context, key string) (string, error) {
	kv.mu.Lock()
	defer kv.mu.Unlock()
	val, ok := kv.data[key]
	if !ok {
		return "", ErrNoRecord
	}

	return val, nil
}

func (kv *MemoryKV) Set(ctx context.Context, key string, value string) error {
	kv.mu.Lock()
	defer kv.mu.Unlock()
	kv.data[key] = value
	return nil
}
