package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/packhouse/backend/internal/model"
)

var _ model.AccountStore = (*AccountRepository)(nil)

type AccountRepository struct {
	db *Connection
}

func NewAccountRepository(db *Connection) *AccountRepository {
	return &AccountRepository{
		db: db,
	}
}

func (r *AccountRepository) GetByEmail(ctx context.Context, email string) (model.Account, error) {
	var account model.Account
	query := `SELECT id, email, password_hash, display_name, photo_name, created_at, updated_at
			  FROM accounts WHERE email = $1`

	err := r.db.QueryRow(ctx, query, email).Scan(
		&account.ID, &account.Email, &account.PasswordHash, &account.DisplayName, &account.PhotoName,
		&account.CreatedAt, &account.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Account{}, model.ErrNotFound
		}
		return model.Account{}, fmt.Errorf("failed to get account by email: %w", err)
	}

	return account, nil
}

func (r *AccountRepository) GetByID(ctx context.Context, id uuid.UUID) (model.Account, error) {
	var account model.Account
	query := `SELECT id, email, password_hash, display_name, photo_name, created_at, updated_at
			  FROM accounts WHERE id = $1`

	err := r.db.QueryRow(ctx, query, id).Scan(
		&account.ID, &account.Email, &account.PasswordHash, &account.DisplayName, &account.PhotoName,
		&account.CreatedAt, &account.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Account{}, model.ErrNotFound
		}
		return model.Account{}, fmt.Errorf("failed to get account by id: %w", err)
	}

	return account, nil
}

func (r *AccountRepository) Create(ctx context.Context, account model.Account) (model.Account, error) {
	query := `INSERT INTO accounts (id, email, password_hash, display_name, photo_name)
			  VALUES ($1, $2, $3, $4, $5)
			  RETURNING id, email, password_hash, display_name, photo_name, created_at, updated_at`

	var savedAccount model.Account
	err := r.db.QueryRow(ctx, query,
		account.ID, account.Email, account.PasswordHash, account.DisplayName, account.PhotoName,
	).Scan(
		&savedAccount.ID, &savedAccount.Email, &savedAccount.PasswordHash,
		&savedAccount.DisplayName, &savedAccount.PhotoName, &savedAccount.CreatedAt, &savedAccount.UpdatedAt,
	)
	if err != nil {
		return model.Account{}, fmt.Errorf("failed to create account: %w", err)
	}

	return savedAccount, nil
}

func (r *AccountRepository) UpdateProfileFields(ctx context.Context, id uuid.UUID, displayName, photoName string) error {
	const query = `UPDATE accounts SET display_name = $2, photo_name = $3, updated_at = NOW() WHERE id = $1`
	cmd, err := r.db.Exec(ctx, query, id, displayName, photoName)
	if err != nil {
		return fmt.Errorf("failed to update account profile fields: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *AccountRepository) Delete(ctx context.Context, id uuid.UUID) error {
	const query = `DELETE FROM accounts WHERE id = $1`
	cmd, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete account: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}
