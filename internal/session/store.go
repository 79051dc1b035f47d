// Package session is the trusted session-issuance facility: opaque session
// tokens mapped to user ids, with cookie transport. It knows nothing about
// roles or the user store; the session bridge re-checks the backing record
// on every request.
package session

import (
	"context"
	"time"
)

// Session represents an authenticated user session.
// It intentionally stores only identity pointers, not auth state.
type Session struct {
	ID        string    // unique opaque session identifier
	UserID    string    // subject: references users.id
	CreatedAt time.Time
	ExpiresAt time.Time // absolute expiry time
}

// Store defines how sessions are stored and retrieved.
// Get returns (nil, nil) when the session does not exist.
type Store interface {
	Create(ctx context.Context, s Session) error
	Get(ctx context.Context, id string) (*Session, error)
	Delete(ctx context.Context, id string) error
}
