package storage

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/jwebster45206/pompeii/pkg/state"
)

// ErrNotFound is returned by UpdateSession when the session does not exist
// or has expired.
var ErrNotFound = errors.New("session not found")

// Session is one game: a single state root shared by both consoles.
type Session struct {
	ID        uuid.UUID          `json:"id"`
	State     state.SessionState `json:"state"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
}

// NewSession returns a session holding the initial game state.
func NewSession() *Session {
	now := time.Now()
	return &Session{
		ID:        uuid.New(),
		State:     state.InitialState(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// UpdateFunc mutates a session in place. Returning an error aborts the
// update and leaves the stored session untouched.
type UpdateFunc func(s *Session) error

// Storage defines the session persistence operations used by the API.
type Storage interface {
	// Health and lifecycle
	Ping(ctx context.Context) error
	Close() error

	SaveSession(ctx context.Context, s *Session) error
	// LoadSession returns nil, nil when the session does not exist.
	LoadSession(ctx context.Context, id uuid.UUID) (*Session, error)
	// UpdateSession applies fn to the stored session atomically and returns
	// the result. Concurrent updates to one session are serialised.
	UpdateSession(ctx context.Context, id uuid.UUID, fn UpdateFunc) (*Session, error)
	DeleteSession(ctx context.Context, id uuid.UUID) error
}
