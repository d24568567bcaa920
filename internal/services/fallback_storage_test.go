package services

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestLocalStorage(t *testing.T) {
	dir := t.TempDir()
	storage, err := NewLocalStorage(dir, "http://localhost:8080/uploads/", zap.NewNop())
	require.NoError(t, err)

	url, err := storage.Upload(t.Context(), "/a/b/file.txt", strings.NewReader("hello"), "text/plain", 5)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/uploads/a/b/file.txt", url)

	content, err := os.ReadFile(filepath.Join(dir, "a", "b", "file.txt"))
	require.NoError(t, err)
	assert.Equal(t, "hello", string(content))

	_, err = storage.Upload(t.Context(), "short.txt", strings.NewReader("hi"), "text/plain", 10)
	assert.ErrorContains(t, err, "size mismatch")

	require.NoError(t, storage.Delete(t.Context(), "a/b/file.txt"))
	require.NoError(t, storage.Delete(t.Context(), "a/b/file.txt"), "deleting twice is fine")
	_, err = os.Stat(filepath.Join(dir, "a"))
	assert.True(t, os.IsNotExist(err))
}

func TestFallbackStorage_Upload(t *testing.T) {
	t.Run("primary succeeds", func(t *testing.T) {
		primary := new(MockStorageService)
		fallback := new(MockStorageService)
		primary.On("Upload", mock.Anything, "k", mock.Anything, "image/png", int64(3)).Return("https://cdn/k", nil)

		url, err := NewFallbackStorage(primary, fallback, zap.NewNop()).Upload(t.Context(), "k", strings.NewReader("abc"), "image/png", 3)

		require.NoError(t, err)
		assert.Equal(t, "https://cdn/k", url)
		fallback.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("primary fails", func(t *testing.T) {
		primary := new(MockStorageService)
		primary.On("Upload", mock.Anything, "k", mock.Anything, "image/png", int64(3)).Return("", errors.New("timeout"))
		fallback, err := NewLocalStorage(t.TempDir(), "http://localhost/uploads", zap.NewNop())
		require.NoError(t, err)

		reader := strings.NewReader("abc")
		_, _ = reader.Seek(2, 0)
		url, err := NewFallbackStorage(primary, fallback, zap.NewNop()).Upload(t.Context(), "k", reader, "image/png", 3)

		require.NoError(t, err, "reader is rewound before the retry")
		assert.Equal(t, "http://localhost/uploads/k", url)
	})
}

func TestFallbackStorage_Delete(t *testing.T) {
	primary := new(MockStorageService)
	fallback := new(MockStorageService)
	primary.On("Delete", mock.Anything, "one").Return(errors.New("gone"))
	fallback.On("Delete", mock.Anything, "one").Return(nil)
	primary.On("Delete", mock.Anything, "two").Return(errors.New("gone"))
	fallback.On("Delete", mock.Anything, "two").Return(errors.New("gone too"))

	s := NewFallbackStorage(primary, fallback, zap.NewNop())

	assert.NoError(t, s.Delete(t.Context(), "one"))
	assert.Error(t, s.Delete(t.Context(), "two"))
}
