package model

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned by stores when the requested record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidCredentials covers unknown email, wrong password, and malformed
	// credential input on sign-in.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrEmailAlreadyInUse is returned when registering with a taken email.
	ErrEmailAlreadyInUse = errors.New("email already in use")
	// ErrPasswordMismatch is returned when password confirmation does not match.
	ErrPasswordMismatch = errors.New("passwords do not match")
	// ErrRecentLoginRequired is returned when account deletion is attempted
	// with a session token older than the configured window.
	ErrRecentLoginRequired = errors.New("recent login required")

	// ErrUploadFailed means the object write or URL retrieval step failed;
	// no metadata record was written.
	ErrUploadFailed = errors.New("upload failed")
	// ErrMetadataWriteFailed means the object was stored but its metadata
	// record could not be written. The object is orphaned, not cleaned up.
	ErrMetadataWriteFailed = errors.New("metadata write failed")
	// ErrDeleteFailed means the object deletion or the metadata deletion step
	// failed. The surviving side is left as is.
	ErrDeleteFailed = errors.New("delete failed")
)

// ProviderError passes a backend failure through with its message intact.
type ProviderError struct {
	Op  string
	Err error
}

func NewProviderError(op string, err error) *ProviderError {
	return &ProviderError{Op: op, Err: err}
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider error: %s: %s", e.Op, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}
