package repository

import (
	"context"
	"sync"
	"time"
)

type memorySession struct {
	value     string
	expiresAt time.Time
}

// MemorySessionRepository is a process-local SessionRepository.
type MemorySessionRepository struct {
	mu   sync.Mutex
	data map[string]memorySession
	now  func() time.Time
}

func NewMemorySessionRepository() *MemorySessionRepository {
	return &MemorySessionRepository{
		data: make(map[string]memorySession),
		now:  time.Now,
	}
}

func (m *MemorySessionRepository) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.data[key]
	if !ok {
		return "", false, nil
	}
	if !s.expiresAt.IsZero() && !m.now().Before(s.expiresAt) {
		delete(m.data, key)
		return "", false, nil
	}
	return s.value, true, nil
}

// Set stores value under key. A zero ttl never expires.
func (m *MemorySessionRepository) Set(_ context.Context, key string, value string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := memorySession{value: value}
	if ttl > 0 {
		s.expiresAt = m.now().Add(ttl)
	}
	m.data[key] = s
	return nil
}

func (m *MemorySessionRepository) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.data, key)
	return nil
}
