package catalog

import (
	"context"
	"time"
)

// ObjectStorageService abstracts the object store holding product images.
// Uploads happen client-side against presigned URLs; the service only
// hands out URLs and verifies that objects exist.
type ObjectStorageService interface {
	// GenerateUploadURL returns a presigned PUT URL for the given storage key
	GenerateUploadURL(ctx context.Context, storageKey, contentType string, expiresIn time.Duration) (string, time.Time, error)

	// GenerateDownloadURL returns a presigned GET URL for the given storage key
	GenerateDownloadURL(ctx context.Context, storageKey string, expiresIn time.Duration) (string, time.Time, error)

	// PublicURL returns the stable public URL for a stored object
	PublicURL(storageKey string) string

	// DeleteObject removes an object from storage
	DeleteObject(ctx context.Context, storageKey string) error

	// ObjectExists reports whether an object has been uploaded
	ObjectExists(ctx context.Context, storageKey string) (bool, error)
}
