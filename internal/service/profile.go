package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/packhouse/backend/internal/logger"
	"github.com/packhouse/backend/internal/model"
)

// Profile reads and writes the per-user profile record, synchronizing it with
// identity state on first sight of a user.
type Profile struct {
	profiles model.ProfileStore
	accounts model.AccountStore
	logger   *logger.Logger
}

func NewProfile(profiles model.ProfileStore, accounts model.AccountStore, logger *logger.Logger) *Profile {
	return &Profile{
		profiles: profiles,
		accounts: accounts,
		logger:   logger,
	}
}

// FetchOrCreate returns the profile record for the user, synthesizing and
// persisting one from the identity's known fields when absent. First
// observation of any identity results in exactly one persisted record.
func (s *Profile) FetchOrCreate(ctx context.Context, userID uuid.UUID) (model.Profile, error) {
	profile, err := s.profiles.GetByUserID(ctx, userID)
	if err == nil {
		return profile, nil
	}
	if !errors.Is(err, model.ErrNotFound) {
		return model.Profile{}, fmt.Errorf("failed to get profile: %w", err)
	}

	account, err := s.accounts.GetByID(ctx, userID)
	if err != nil {
		return model.Profile{}, fmt.Errorf("failed to get account for profile synthesis: %w", err)
	}

	displayName := account.DisplayName
	if displayName == "" {
		displayName = model.DefaultDisplayName
	}
	photoName := account.PhotoName
	if photoName == "" {
		photoName = model.DefaultPhotoName
	}

	created, err := s.profiles.Create(ctx, model.Profile{
		UserID:      userID,
		DisplayName: displayName,
		Email:       account.Email,
		PhotoName:   photoName,
	})
	if err != nil {
		s.logger.Error("Profile service: failed to create profile record",
			"user_id", userID,
			"error", err.Error())
		return model.Profile{}, fmt.Errorf("failed to create profile: %w", err)
	}

	s.logger.Info("Profile service: profile synthesized", "user_id", userID)

	return created, nil
}
