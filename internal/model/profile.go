package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Defaults used when synthesizing a profile for an identity that has no
// display name or photo reference yet.
const (
	DefaultDisplayName = "User"
	DefaultPhotoName   = "default_avatar.png"
)

// ProfileStore defines persistence operations for per-user profile records.
type ProfileStore interface {
	GetByUserID(ctx context.Context, userID uuid.UUID) (Profile, error)
	Create(ctx context.Context, profile Profile) (Profile, error)
	Update(ctx context.Context, profile Profile) error
	Delete(ctx context.Context, userID uuid.UUID) error
}

// Profile is the durable per-user profile record. PhotoName holds the
// original name of the uploaded photo file, not a binary reference.
type Profile struct {
	UserID      uuid.UUID
	DisplayName string
	Email       string
	PhotoName   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
