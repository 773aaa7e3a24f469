package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/packhouse/backend/internal/logger"
	"github.com/packhouse/backend/internal/model"
)

// Files uploads document bytes to the object store, keeps per-file metadata
// records, lists them newest first, and deletes both sides on removal. Every
// multi-step operation is best-effort sequential with no rollback.
type Files struct {
	records model.FileRecordStore
	storage model.ObjectStore
	urlTTL  time.Duration
	logger  *logger.Logger
}

func NewFiles(records model.FileRecordStore, storage model.ObjectStore, urlTTL time.Duration, logger *logger.Logger) *Files {
	return &Files{
		records: records,
		storage: storage,
		urlTTL:  urlTTL,
		logger:  logger,
	}
}

// UploadParams contains the upload input. Name and ContentType come from the
// user's file picker and browser and are trusted as-is.
type UploadParams struct {
	UserID      uuid.UUID
	Name        string
	Size        int64
	ContentType string
	Content     io.Reader
}

// Upload writes the bytes at the deterministic storage path, requests a
// retrievable URL, and records metadata. An object-write or URL failure skips
// the metadata write; a metadata failure leaves the stored object orphaned.
func (s *Files) Upload(ctx context.Context, params UploadParams) (model.FileRecord, error) {
	path := model.ObjectPath(params.UserID, params.Name)

	if err := s.storage.Upload(ctx, path, params.Content, params.Size, params.ContentType); err != nil {
		s.logger.Error("Files service: failed to store object",
			"path", path,
			"error", err.Error())
		return model.FileRecord{}, fmt.Errorf("%w: %w", model.ErrUploadFailed, err)
	}

	url, err := s.storage.PresignedURL(ctx, path, s.urlTTL)
	if err != nil {
		s.logger.Error("Files service: failed to get object url",
			"path", path,
			"error", err.Error())
		return model.FileRecord{}, fmt.Errorf("%w: %w", model.ErrUploadFailed, err)
	}

	record, err := s.records.Create(ctx, model.FileRecord{
		UserID:      params.UserID,
		Name:        params.Name,
		Size:        params.Size,
		ContentType: params.ContentType,
		URL:         url,
		StoragePath: path,
		UploadedAt:  time.Now(),
	})
	if err != nil {
		// The object stays in storage with no record pointing at it.
		s.logger.Error("Files service: object stored but metadata write failed",
			"path", path,
			"error", err.Error())
		return model.FileRecord{}, fmt.Errorf("%w: %w", model.ErrMetadataWriteFailed, err)
	}

	s.logger.Info("Files service: uploaded",
		"user_id", params.UserID,
		"name", params.Name,
		"size", params.Size)

	return record, nil
}

// List returns the user's file records, most recently created first. An empty
// result is valid and distinct from a fetch error.
func (s *Files) List(ctx context.Context, userID uuid.UUID) ([]model.FileRecord, error) {
	records, err := s.records.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list file records: %w", err)
	}

	return records, nil
}

// Delete removes the object at the record's storage path, then the metadata
// record. Both steps are attempted regardless of the other's outcome and each
// tolerates an already-absent target; any real failure surfaces as a single
// delete error with no rollback of the side that succeeded.
func (s *Files) Delete(ctx context.Context, recordID uuid.UUID, storagePath string, userID uuid.UUID) error {
	objErr := s.storage.Delete(ctx, storagePath)
	if objErr != nil {
		s.logger.Error("Files service: failed to delete object",
			"path", storagePath,
			"error", objErr.Error())
	}

	metaErr := s.records.Delete(ctx, recordID, userID)
	if errors.Is(metaErr, model.ErrNotFound) {
		// Double-click or concurrent delete; the record is already gone.
		metaErr = nil
	}
	if metaErr != nil {
		s.logger.Error("Files service: failed to delete metadata record",
			"record_id", recordID,
			"error", metaErr.Error())
	}

	if objErr != nil {
		return fmt.Errorf("%w: %w", model.ErrDeleteFailed, objErr)
	}
	if metaErr != nil {
		return fmt.Errorf("%w: %w", model.ErrDeleteFailed, metaErr)
	}

	return nil
}
