package session

import (
	"time"

	"github.com/google/uuid"
)

// Session represents an authenticated API session bound to exactly one endpoint.
// Sessions are created by an external login step; this library only ever looks them up.
type Session struct {
	ID       uuid.UUID
	Endpoint string
	Token    string
	User     string
	Org      string
	Expires  int64
}

// IsExpired checks whether the session has passed its expiry timestamp.
// A zero expiry marks a session without a known lifetime; it never expires locally.
func (session *Session) IsExpired() bool {
	return session.Expires > 0 && session.Expires <= time.Now().Unix()
}
