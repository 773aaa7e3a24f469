package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// AccountStore defines persistence operations for identity accounts.
type AccountStore interface {
	GetByEmail(ctx context.Context, email string) (Account, error)
	GetByID(ctx context.Context, id uuid.UUID) (Account, error)
	Create(ctx context.Context, account Account) (Account, error)
	UpdateProfileFields(ctx context.Context, id uuid.UUID, displayName, photoName string) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// Account represents a stored identity with credential material and the
// profile fields the identity provider keeps alongside it.
type Account struct {
	ID           uuid.UUID
	Email        string
	PasswordHash []byte
	DisplayName  string
	PhotoName    string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
