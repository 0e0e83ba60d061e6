package session

import (
	"context"

	"github.com/google/uuid"
)

// Registry defines the session registry API.
// The registry is owned by whatever performs the login; operations treat it as read-only.
type Registry interface {
	// List retrieves all active (non-expired) sessions
	List(ctx context.Context) ([]*Session, error)

	// GetByEndpoint retrieves the active session bound to the given endpoint.
	// It returns nil if no such session exists.
	GetByEndpoint(ctx context.Context, endpoint string) (*Session, error)

	// Put stores a session, replacing any previous session bound to the same endpoint
	Put(ctx context.Context, session *Session) (uuid.UUID, error)

	// Remove removes the session bound to the given endpoint, if any
	Remove(ctx context.Context, endpoint string) error

	// RemoveExpired removes all sessions that are expired
	RemoveExpired(ctx context.Context) (int, error)
}
