// Package docview drives the document management screen: it orchestrates the
// file service in response to user actions and holds the rendered list.
package docview

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/packhouse/backend/internal/logger"
	"github.com/packhouse/backend/internal/model"
	"github.com/packhouse/backend/internal/service"
)

// State is the view's lifecycle state. Transitions are user- or
// lifecycle-triggered only; there is no background polling.
type State int

const (
	StateIdle State = iota
	StateLoading
	StateUploading
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateUploading:
		return "uploading"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// FileService is the slice of the files service the view consumes.
type FileService interface {
	Upload(ctx context.Context, params service.UploadParams) (model.FileRecord, error)
	List(ctx context.Context, userID uuid.UUID) ([]model.FileRecord, error)
	Delete(ctx context.Context, recordID uuid.UUID, storagePath string, userID uuid.UUID) error
}

// View holds the in-memory file list for one user. All mutation goes through
// the view's methods; a completion arriving after Unmount is dropped instead
// of cancelled, matching the rendering framework's stale-update guard.
type View struct {
	files  FileService
	userID uuid.UUID
	logger *logger.Logger

	mu      sync.Mutex
	state   State
	records []model.FileRecord
	mounted bool
}

func NewView(files FileService, userID uuid.UUID, logger *logger.Logger) *View {
	return &View{
		files:   files,
		userID:  userID,
		logger:  logger,
		state:   StateIdle,
		mounted: true,
	}
}

// Refresh re-fetches the full list. Called on mount, on the refresh action,
// and after every successful upload.
func (v *View) Refresh(ctx context.Context) error {
	v.setState(StateLoading)
	defer v.setState(StateIdle)

	records, err := v.files.List(ctx, v.userID)
	if err != nil {
		return err
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	if !v.mounted {
		v.logger.Debug("Document view: dropping stale list result")
		return nil
	}
	v.records = records

	return nil
}

// Upload stores the document and re-fetches the list on success, so the view
// never reconciles optimistic state with server state.
func (v *View) Upload(ctx context.Context, params service.UploadParams) error {
	params.UserID = v.userID

	v.setState(StateUploading)

	_, err := v.files.Upload(ctx, params)
	if err != nil {
		v.setState(StateIdle)
		return err
	}

	return v.Refresh(ctx)
}

// Delete removes the record's object and metadata and drops it from the
// in-memory list. A concurrent duplicate delete fails harmlessly against the
// already-absent record; the rest of the list stays intact either way.
func (v *View) Delete(ctx context.Context, record model.FileRecord) error {
	if err := v.files.Delete(ctx, record.ID, record.StoragePath, v.userID); err != nil {
		return err
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	if !v.mounted {
		return nil
	}
	kept := v.records[:0]
	for _, r := range v.records {
		if r.ID != record.ID {
			kept = append(kept, r)
		}
	}
	v.records = kept

	return nil
}

// Records returns a copy of the current list, newest first.
func (v *View) Records() []model.FileRecord {
	v.mu.Lock()
	defer v.mu.Unlock()
	out := make([]model.FileRecord, len(v.records))
	copy(out, v.records)
	return out
}

// State returns the current lifecycle state.
func (v *View) State() State {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.state
}

// Unmount marks the view gone; in-flight completions are silently dropped.
func (v *View) Unmount() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.mounted = false
}

func (v *View) setState(state State) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if !v.mounted {
		return
	}
	v.state = state
}
