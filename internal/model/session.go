package model

import (
	"time"

	"github.com/google/uuid"
)

// Session is the transient in-memory state of an authenticated identity.
// It is created on sign-in and discarded on sign-out; the chosen workspace
// role lives in the session selector, not here.
type Session struct {
	UserID uuid.UUID
	Email  string
	Token  string
}

// TokenManager issues and validates session access tokens.
type TokenManager interface {
	Generate(userID uuid.UUID) (string, error)
	Parse(token string) (TokenInfo, error)
}

// TokenInfo is the validated content of a session token.
type TokenInfo struct {
	UserID   uuid.UUID
	IssuedAt time.Time
}
