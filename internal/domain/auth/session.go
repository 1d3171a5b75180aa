package auth

import (
	"context"
	"strings"
	"time"

	"dreamstay/internal/domain/shared/apperr"
	"dreamstay/internal/domain/user"
)

var ErrSessionNotFound = apperr.Authorization("session not found or expired")

type Token string

// Session binds an opaque bearer token to a user for its TTL.
type Session struct {
	Token     Token
	UserID    int64
	Role      user.Role
	CreatedAt time.Time
	ExpiresAt time.Time
}

type CreateSessionParams struct {
	Token  Token
	UserID int64
	Role   user.Role
	TTL    time.Duration
	Now    time.Time
}

func NewSession(params CreateSessionParams) (*Session, error) {
	if strings.TrimSpace(string(params.Token)) == "" {
		return nil, apperr.Validation("session token is required")
	}
	if params.UserID <= 0 {
		return nil, apperr.Validation("session user is required")
	}
	if params.TTL <= 0 {
		return nil, apperr.Validation("session ttl must be positive")
	}
	now := params.Now
	if now.IsZero() {
		now = time.Now()
	}
	now = now.UTC()
	return &Session{
		Token:     params.Token,
		UserID:    params.UserID,
		Role:      params.Role,
		CreatedAt: now,
		ExpiresAt: now.Add(params.TTL),
	}, nil
}

func (s *Session) Expired(at time.Time) bool {
	if at.IsZero() {
		at = time.Now()
	}
	return !s.ExpiresAt.After(at.UTC())
}

type SessionStore interface {
	Save(ctx context.Context, session *Session) error
	Get(ctx context.Context, token Token) (*Session, error)
	Delete(ctx context.Context, token Token) error
}
