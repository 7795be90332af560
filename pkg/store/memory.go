package store

import (
	"context"
	"sync"
	"time"
)

type entry struct {
	value     string
	counter   int64
	expiresAt time.Time // zero means no expiry
}

func (e *entry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && now.After(e.expiresAt)
}

// MemoryKV is the default single-process backend. Expired entries are dropped
// lazily on access and swept whenever the map grows past sweepThreshold.
type MemoryKV struct {
	mu             sync.Mutex
	entries        map[string]*entry
	sweepThreshold int
	nowFn          func() time.Time
}

func NewMemoryKV() *MemoryKV {
	return &MemoryKV{
		entries:        make(map[string]*entry),
		sweepThreshold: 4096,
		nowFn:          time.Now,
	}
}

func (m *MemoryKV) lookup(key string) (*entry, bool) {
	e, ok := m.entries[key]
	if !ok {
		return nil, false
	}
	if e.expired(m.nowFn()) {
		delete(m.entries, key)
		return nil, false
	}
	return e, true
}

func (m *MemoryKV) sweep() {
	if len(m.entries) < m.sweepThreshold {
		return
	}
	now := m.nowFn()
	for key, e := range m.entries {
		if e.expired(now) {
			delete(m.entries, key)
		}
	}
}

func (m *MemoryKV) Get(_ context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.lookup(key)
	if !ok {
		return "", ErrMiss
	}
	return e.value, nil
}

func (m *MemoryKV) Set(_ context.Context, key string, value string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.sweep()
	e := &entry{value: value}
	if ttl > 0 {
		e.expiresAt = m.nowFn().Add(ttl)
	}
	m.entries[key] = e
	return nil
}

func (m *MemoryKV) SetNX(_ context.Context, key string, value string, ttl time.Duration) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.lookup(key); ok {
		return false, nil
	}
	m.sweep()
	e := &entry{value: value}
	if ttl > 0 {
		e.expiresAt = m.nowFn().Add(ttl)
	}
	m.entries[key] = e
	return true, nil
}

func (m *MemoryKV) IncrWithTTL(_ context.Context, key string, ttl time.Duration) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.lookup(key)
	if !ok {
		m.sweep()
		e = &entry{}
		if ttl > 0 {
			e.expiresAt = m.nowFn().Add(ttl)
		}
		m.entries[key] = e
	}
	e.counter++
	return e.counter, nil
}

func (m *MemoryKV) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.entries, key)
	return nil
}
