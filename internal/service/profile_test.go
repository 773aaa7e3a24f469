package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/packhouse/backend/internal/model"
	"github.com/packhouse/backend/internal/testutil"
)

func TestProfile_FetchOrCreate(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("returns existing record", func(t *testing.T) {
		profiles := &MockProfileStore{}
		accounts := &MockAccountStore{}
		existing := model.Profile{UserID: userID, DisplayName: "Worker", Email: "w@packhouse.test", PhotoName: "w.png"}
		profiles.On("GetByUserID", mock.Anything, userID).Return(existing, nil)

		s := NewProfile(profiles, accounts, testutil.MakeNoopLogger())
		got, err := s.FetchOrCreate(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, existing, got)
		profiles.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("synthesizes from identity fields on first sight", func(t *testing.T) {
		profiles := &MockProfileStore{}
		accounts := &MockAccountStore{}
		profiles.On("GetByUserID", mock.Anything, userID).Return(model.Profile{}, model.ErrNotFound)
		accounts.On("GetByID", mock.Anything, userID).Return(model.Account{
			ID:          userID,
			Email:       "w@packhouse.test",
			DisplayName: "Worker",
			PhotoName:   "w.png",
		}, nil)
		synthesized := model.Profile{UserID: userID, DisplayName: "Worker", Email: "w@packhouse.test", PhotoName: "w.png"}
		profiles.On("Create", mock.Anything, synthesized).Return(synthesized, nil)

		s := NewProfile(profiles, accounts, testutil.MakeNoopLogger())
		got, err := s.FetchOrCreate(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, synthesized, got)
		profiles.AssertExpectations(t)
	})

	t.Run("applies defaults for absent fields", func(t *testing.T) {
		profiles := &MockProfileStore{}
		accounts := &MockAccountStore{}
		profiles.On("GetByUserID", mock.Anything, userID).Return(model.Profile{}, model.ErrNotFound)
		accounts.On("GetByID", mock.Anything, userID).Return(model.Account{
			ID:    userID,
			Email: "w@packhouse.test",
		}, nil)
		profiles.On("Create", mock.Anything, mock.MatchedBy(func(p model.Profile) bool {
			return p.DisplayName == model.DefaultDisplayName && p.PhotoName == model.DefaultPhotoName
		})).Return(model.Profile{UserID: userID}, nil)

		s := NewProfile(profiles, accounts, testutil.MakeNoopLogger())
		_, err := s.FetchOrCreate(ctx, userID)
		require.NoError(t, err)
		profiles.AssertExpectations(t)
	})

	t.Run("fetch failure is not a create", func(t *testing.T) {
		profiles := &MockProfileStore{}
		accounts := &MockAccountStore{}
		profiles.On("GetByUserID", mock.Anything, userID).Return(model.Profile{}, errors.New("timeout"))

		s := NewProfile(profiles, accounts, testutil.MakeNoopLogger())
		_, err := s.FetchOrCreate(ctx, userID)
		assert.Error(t, err)
		profiles.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}
