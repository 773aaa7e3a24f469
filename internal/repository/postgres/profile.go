package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/packhouse/backend/internal/model"
)

var _ model.ProfileStore = (*ProfileRepository)(nil)

type ProfileRepository struct {
	db *Connection
}

func NewProfileRepository(db *Connection) *ProfileRepository {
	return &ProfileRepository{
		db: db,
	}
}

func (r *ProfileRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (model.Profile, error) {
	var profile model.Profile
	query := `SELECT user_id, display_name, email, photo_name, created_at, updated_at
			  FROM profiles WHERE user_id = $1`

	err := r.db.QueryRow(ctx, query, userID).Scan(
		&profile.UserID, &profile.DisplayName, &profile.Email, &profile.PhotoName,
		&profile.CreatedAt, &profile.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Profile{}, model.ErrNotFound
		}
		return model.Profile{}, fmt.Errorf("failed to get profile by user id: %w", err)
	}

	return profile, nil
}

func (r *ProfileRepository) Create(ctx context.Context, profile model.Profile) (model.Profile, error) {
	query := `INSERT INTO profiles (user_id, display_name, email, photo_name)
			  VALUES ($1, $2, $3, $4)
			  RETURNING user_id, display_name, email, photo_name, created_at, updated_at`

	var savedProfile model.Profile
	err := r.db.QueryRow(ctx, query,
		profile.UserID, profile.DisplayName, profile.Email, profile.PhotoName,
	).Scan(
		&savedProfile.UserID, &savedProfile.DisplayName, &savedProfile.Email, &savedProfile.PhotoName,
		&savedProfile.CreatedAt, &savedProfile.UpdatedAt,
	)
	if err != nil {
		return model.Profile{}, fmt.Errorf("failed to create profile: %w", err)
	}

	return savedProfile, nil
}

func (r *ProfileRepository) Update(ctx context.Context, profile model.Profile) error {
	const query = `UPDATE profiles SET display_name = $2, email = $3, photo_name = $4, updated_at = NOW()
				   WHERE user_id = $1`
	cmd, err := r.db.Exec(ctx, query, profile.UserID, profile.DisplayName, profile.Email, profile.PhotoName)
	if err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *ProfileRepository) Delete(ctx context.Context, userID uuid.UUID) error {
	const query = `DELETE FROM profiles WHERE user_id = $1`
	cmd, err := r.db.Exec(ctx, query, userID)
	if err != nil {
		return fmt.Errorf("failed to delete profile: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}
