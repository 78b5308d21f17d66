package storage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStubObjectStorage_PresignedURLs(t *testing.T) {
	s := NewStubObjectStorage()
	require.Equal(t, "https://storage.example.com", s.BaseURL)
	ctx := t.Context()

	t.Run("upload URL", func(t *testing.T) {
		url, expiresAt, err := s.GenerateUploadURL(ctx, "test/key/file.jpg", "image/jpeg", 15*time.Minute)
		require.NoError(t, err)
		assert.Contains(t, url, "https://storage.example.com/upload/test/key/file.jpg")
		assert.True(t, expiresAt.After(time.Now()))
	})

	t.Run("download URL", func(t *testing.T) {
		url, expiresAt, err := s.GenerateDownloadURL(ctx, "test/key/file.jpg", time.Hour)
		require.NoError(t, err)
		assert.Contains(t, url, "https://storage.example.com/download/test/key/file.jpg")
		assert.True(t, expiresAt.After(time.Now()))
	})

	t.Run("empty key rejected", func(t *testing.T) {
		_, _, err := s.GenerateUploadURL(ctx, "", "image/jpeg", 15*time.Minute)
		assert.ErrorContains(t, err, "storage key is required")

		_, _, err = s.GenerateDownloadURL(ctx, "", time.Hour)
		assert.ErrorContains(t, err, "storage key is required")
	})
}

func TestStubObjectStorage_PublicURL(t *testing.T) {
	s := NewStubObjectStorage()
	assert.Equal(t, "https://storage.example.com/products/abc/main.jpg", s.PublicURL("products/abc/main.jpg"))
}

func TestStubObjectStorage_DeleteObject(t *testing.T) {
	s := NewStubObjectStorage()
	ctx := t.Context()

	require.NoError(t, s.DeleteObject(ctx, "test/key/file.jpg"))
	assert.ErrorContains(t, s.DeleteObject(ctx, ""), "storage key is required")
}

func TestStubObjectStorage_ObjectExists(t *testing.T) {
	s := NewStubObjectStorage()
	ctx := t.Context()

	t.Run("valid keys always exist", func(t *testing.T) {
		exists, err := s.ObjectExists(ctx, "test/key/file.jpg")
		require.NoError(t, err)
		assert.True(t, exists)
	})

	t.Run("empty key rejected", func(t *testing.T) {
		exists, err := s.ObjectExists(ctx, "")
		assert.ErrorContains(t, err, "storage key is required")
		assert.False(t, exists)
	})
}
