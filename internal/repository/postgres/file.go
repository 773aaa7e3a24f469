package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/packhouse/backend/internal/model"
)

var _ model.FileRecordStore = (*FileRepository)(nil)

type FileRepository struct {
	db *Connection
}

func NewFileRepository(db *Connection) *FileRepository {
	return &FileRepository{
		db: db,
	}
}

// Create inserts a metadata record. The id and the ordering timestamp are
// assigned by the database; the ordering timestamp stays internal.
func (r *FileRepository) Create(ctx context.Context, record model.FileRecord) (model.FileRecord, error) {
	query := `INSERT INTO user_files (user_id, name, size, content_type, url, storage_path, uploaded_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)
			  RETURNING id, user_id, name, size, content_type, url, storage_path, uploaded_at`

	var savedRecord model.FileRecord
	err := r.db.QueryRow(ctx, query,
		record.UserID, record.Name, record.Size, record.ContentType,
		record.URL, record.StoragePath, record.UploadedAt,
	).Scan(
		&savedRecord.ID, &savedRecord.UserID, &savedRecord.Name, &savedRecord.Size,
		&savedRecord.ContentType, &savedRecord.URL, &savedRecord.StoragePath, &savedRecord.UploadedAt,
	)
	if err != nil {
		return model.FileRecord{}, fmt.Errorf("failed to create file record: %w", err)
	}

	return savedRecord, nil
}

// GetByUserID returns the user's records ordered by creation, newest first.
func (r *FileRepository) GetByUserID(ctx context.Context, userID uuid.UUID) ([]model.FileRecord, error) {
	query := `SELECT id, user_id, name, size, content_type, url, storage_path, uploaded_at
			  FROM user_files
			  WHERE user_id = $1
			  ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get file records by user id: %w", err)
	}
	defer rows.Close()

	var records []model.FileRecord
	for rows.Next() {
		var record model.FileRecord
		err := rows.Scan(
			&record.ID, &record.UserID, &record.Name, &record.Size,
			&record.ContentType, &record.URL, &record.StoragePath, &record.UploadedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan file record: %w", err)
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}

func (r *FileRepository) Delete(ctx context.Context, id uuid.UUID, userID uuid.UUID) error {
	const query = `DELETE FROM user_files WHERE id = $1 AND user_id = $2`
	cmd, err := r.db.Exec(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete file record: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}
