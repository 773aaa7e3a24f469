package model

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// FileRecordStore defines persistence operations for file metadata records.
// Listing is ordered by the server-assigned creation timestamp, newest first;
// that timestamp is a sort key only and is not part of FileRecord.
type FileRecordStore interface {
	Create(ctx context.Context, record FileRecord) (FileRecord, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) ([]FileRecord, error)
	Delete(ctx context.Context, id uuid.UUID, userID uuid.UUID) error
}

// FileRecord describes one uploaded document. UploadedAt is the client clock
// at upload time; the record id is assigned by the database.
type FileRecord struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Name        string
	Size        int64
	ContentType string
	URL         string
	StoragePath string
	UploadedAt  time.Time
}

// ObjectPath builds the deterministic storage path for a user's file. Two
// uploads with the same name share the path and silently overwrite the object.
func ObjectPath(userID uuid.UUID, fileName string) string {
	return fmt.Sprintf("user_uploads/%s/%s", userID, fileName)
}
