package storage

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MockStorage is an in-memory Storage. It backs handler tests and runs the
// API without Redis (STORAGE=memory). Sessions never expire.
type MockStorage struct {
	mu        sync.RWMutex
	sessions  map[uuid.UUID]*Session
	pingError error
}

// Ensure MockStorage implements Storage interface
var _ Storage = (*MockStorage)(nil)

// NewMockStorage creates a new mock storage
func NewMockStorage() *MockStorage {
	return &MockStorage{
		sessions: make(map[uuid.UUID]*Session),
	}
}

// SetPingError configures the mock to fail on ping with the given error.
// A nil error restores healthy pings.
func (m *MockStorage) SetPingError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pingError = err
}

func (m *MockStorage) Ping(ctx context.Context) error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.pingError
}

func (m *MockStorage) Close() error {
	return nil
}

// Len reports how many sessions are stored.
func (m *MockStorage) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

func (m *MockStorage) SaveSession(ctx context.Context, s *Session) error {
	if s == nil {
		return errors.New("session cannot be nil")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	s.UpdatedAt = time.Now()
	m.sessions[s.ID] = copySession(s)
	return nil
}

func (m *MockStorage) LoadSession(ctx context.Context, id uuid.UUID) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, nil
	}
	return copySession(s), nil
}

// UpdateSession holds the write lock for the whole of fn, so updates to
// any session are serialised.
func (m *MockStorage) UpdateSession(ctx context.Context, id uuid.UUID, fn UpdateFunc) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored, ok := m.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	s := copySession(stored)
	if err := fn(s); err != nil {
		return nil, err
	}
	s.UpdatedAt = time.Now()
	m.sessions[id] = copySession(s)
	return s, nil
}

func (m *MockStorage) DeleteSession(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}

func copySession(s *Session) *Session {
	cp := *s
	cp.State = s.State.Clone()
	return &cp
}
