package model

import (
	"context"
	"io"
	"time"
)

// ObjectStore abstracts the hosted object store: write-by-path, read-URL-by-path,
// delete-by-path. Delete of a missing object is not an error.
type ObjectStore interface {
	Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error
	PresignedURL(ctx context.Context, key string, expiry time.Duration) (string, error)
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}
