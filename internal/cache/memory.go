package cache

import (
	"context"
	"encoding"
	"sync"
	"time"
)

// Memory is a process-local Cache used in tests and single-instance runs.
type Memory struct {
	mu    sync.Mutex
	items map[string]memoryItem
	now   func() time.Time
}

type memoryItem struct {
	data      []byte
	expiresAt time.Time
}

func NewMemory() *Memory {
	return &Memory{items: make(map[string]memoryItem), now: time.Now}
}

func (m *Memory) Set(_ context.Context, key string, value interface{}, ttl time.Duration) error {
	var data []byte
	switch v := value.(type) {
	case string:
		data = []byte(v)
	case encoding.BinaryMarshaler:
		b, err := v.MarshalBinary()
		if err != nil {
			return err
		}
		data = b
	default:
		return ErrInvalidValue
	}
	if ttl == 0 {
		ttl = DefaultOptions().DefaultTTL
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[key] = memoryItem{data: data, expiresAt: m.now().Add(ttl)}
	return nil
}

func (m *Memory) Get(_ context.Context, key string, value interface{}) error {
	m.mu.Lock()
	item, ok := m.items[key]
	if ok && !m.now().Before(item.expiresAt) {
		delete(m.items, key)
		ok = false
	}
	m.mu.Unlock()
	if !ok {
		return ErrNotFound
	}

	switch v := value.(type) {
	case *string:
		*v = string(item.data)
	case encoding.BinaryUnmarshaler:
		return v.UnmarshalBinary(item.data)
	default:
		return ErrInvalidValue
	}
	return nil
}

func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.items, key)
	return nil
}

func (m *Memory) Close() error { return nil }
