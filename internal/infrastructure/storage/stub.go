// Package storage provides object storage implementations for product image uploads.
package storage

import (
	"context"
	"errors"
	"time"

	catalogapp "github.com/storefront/backend/internal/application/catalog"
)

var errEmptyStorageKey = errors.New("storage key is required")

// StubObjectStorage satisfies ObjectStorageService without any backing
// store. Presigned URLs point at a placeholder host and uploads are
// always reported as present, so the image upload-and-confirm flow can
// be exercised in development before S3 is configured.
type StubObjectStorage struct {
	BaseURL string
}

func NewStubObjectStorage() *StubObjectStorage {
	return &StubObjectStorage{BaseURL: "https://storage.example.com"}
}

var _ catalogapp.ObjectStorageService = (*StubObjectStorage)(nil)

func (s *StubObjectStorage) presign(action, storageKey string, expiresIn time.Duration) (string, time.Time, error) {
	if storageKey == "" {
		return "", time.Time{}, errEmptyStorageKey
	}
	expiresAt := time.Now().Add(expiresIn)
	url := s.BaseURL + "/" + action + "/" + storageKey + "?expires=" + expiresAt.Format(time.RFC3339)
	return url, expiresAt, nil
}

func (s *StubObjectStorage) GenerateUploadURL(_ context.Context, storageKey, _ string, expiresIn time.Duration) (string, time.Time, error) {
	return s.presign("upload", storageKey, expiresIn)
}

func (s *StubObjectStorage) GenerateDownloadURL(_ context.Context, storageKey string, expiresIn time.Duration) (string, time.Time, error) {
	return s.presign("download", storageKey, expiresIn)
}

// PublicURL returns a stable placeholder URL for a stored object.
func (s *StubObjectStorage) PublicURL(storageKey string) string {
	return s.BaseURL + "/" + storageKey
}

// DeleteObject validates the key and discards the request.
func (s *StubObjectStorage) DeleteObject(_ context.Context, storageKey string) error {
	if storageKey == "" {
		return errEmptyStorageKey
	}
	return nil
}

// ObjectExists reports every valid key as present so confirmation
// succeeds without a real upload.
func (s *StubObjectStorage) ObjectExists(_ context.Context, storageKey string) (bool, error) {
	if storageKey == "" {
		return false, errEmptyStorageKey
	}
	return true, nil
}
