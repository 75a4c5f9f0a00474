package auth

import (
	"errors"
	"time"
)

var (
	ErrInvalidToken = errors.New("invalid or expired token")
	ErrSessionGone  = errors.New("session not found")
)

// Session is one authenticated login. The access token expires quickly; the
// refresh token allows obtaining a new session without re-entering
// credentials.
type Session struct {
	Token            string
	RefreshToken     string
	UserID           string
	ExpiresAt        time.Time
	RefreshExpiresAt time.Time
	CreatedAt        time.Time
}
