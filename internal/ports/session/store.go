package session

import (
	"context"
	"errors"
	"time"
)

// ErrSessionNotFound is returned for expired, revoked or unknown sessions.
var ErrSessionNotFound = errors.New("session not found")

// Session is the server-side record a token points at.
type Session struct {
	UserID string
	Kind   string
	Role   string
}

// SessionStore keeps session records keyed by the token's id.
type SessionStore interface {
	Save(ctx context.Context, id string, s Session, ttl time.Duration) error
	Get(ctx context.Context, id string) (*Session, error)
	Delete(ctx context.Context, id string) error
}

type LoginResponse struct {
	Token     string `json:"token"`
	ExpiresAt int64  `json:"expiresAt"`
	Kind      string `json:"kind"`
}
