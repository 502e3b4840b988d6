package session

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a token does not map to a live session, either
// because it never existed, was revoked, or expired.
var ErrNotFound = errors.New("session not found")

// Session is the server-side record behind an opaque cookie token. The token
// itself carries no information; only the store can resolve it.
type Session struct {
	Token     string
	AdminID   string
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Store persists admin sessions. Implementations must treat tokens as
// single-use ids: Create never overwrites, Revoke is idempotent.
type Store interface {
	Create(ctx context.Context, adminID string) (Session, error)
	Get(ctx context.Context, token string) (Session, error)
	Revoke(ctx context.Context, token string) error
}
