package services

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// LocalStorage keeps uploaded files on the local disk and serves them under baseURL
type LocalStorage struct {
	basePath string
	baseURL  string
	logger   *zap.Logger
}

// NewLocalStorage creates the base directory and returns a disk storage
func NewLocalStorage(basePath, baseURL string, logger *zap.Logger) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory %s: %w", basePath, err)
	}

	return &LocalStorage{
		basePath: filepath.Clean(basePath),
		baseURL:  strings.TrimSuffix(baseURL, "/"),
		logger:   logger,
	}, nil
}

// Upload writes reader to basePath/key
func (s *LocalStorage) Upload(ctx context.Context, key string, reader io.Reader, contentType string, size int64) (string, error) {
	key = normalizeKey(key)
	fullPath := filepath.Join(s.basePath, filepath.FromSlash(key))

	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return "", fmt.Errorf("failed to create directory for %s: %w", key, err)
	}

	file, err := os.Create(fullPath)
	if err != nil {
		return "", fmt.Errorf("failed to create file %s: %w", fullPath, err)
	}
	defer file.Close()

	written, err := io.Copy(file, reader)
	if err != nil {
		return "", fmt.Errorf("failed to write file %s: %w", fullPath, err)
	}
	if size >= 0 && written != size {
		return "", fmt.Errorf("size mismatch: expected %d bytes, wrote %d bytes", size, written)
	}

	s.logger.Debug("stored file locally", zap.String("key", key), zap.Int64("bytes", written))
	return s.GetURL(key), nil
}

// Delete removes the file and any directories left empty
func (s *LocalStorage) Delete(ctx context.Context, key string) error {
	fullPath := filepath.Join(s.basePath, filepath.FromSlash(normalizeKey(key)))

	if err := os.Remove(fullPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete file %s: %w", fullPath, err)
	}

	s.cleanupEmptyDirs(filepath.Dir(fullPath))
	return nil
}

// GetURL returns the public URL for a file
func (s *LocalStorage) GetURL(key string) string {
	return fmt.Sprintf("%s/%s", s.baseURL, normalizeKey(key))
}

// cleanupEmptyDirs removes empty directories up to the base path
func (s *LocalStorage) cleanupEmptyDirs(dir string) {
	if dir == s.basePath || !strings.HasPrefix(dir, s.basePath) {
		return
	}

	entries, err := os.ReadDir(dir)
	if err != nil || len(entries) > 0 {
		return
	}

	if err := os.Remove(dir); err == nil {
		s.cleanupEmptyDirs(filepath.Dir(dir))
	}
}

// FallbackStorage writes to primary and retries on fallback when primary fails
type FallbackStorage struct {
	primary  StorageService
	fallback StorageService
	logger   *zap.Logger
}

// NewFallbackStorage creates a storage service with fallback capability
func NewFallbackStorage(primary, fallback StorageService, logger *zap.Logger) *FallbackStorage {
	return &FallbackStorage{
		primary:  primary,
		fallback: fallback,
		logger:   logger,
	}
}

// Upload tries primary storage first. The reader must be seekable for the retry
func (s *FallbackStorage) Upload(ctx context.Context, key string, reader io.Reader, contentType string, size int64) (string, error) {
	url, err := s.primary.Upload(ctx, key, reader, contentType, size)
	if err == nil {
		return url, nil
	}

	s.logger.Warn("primary storage failed, using fallback", zap.String("key", key), zap.Error(err))

	seeker, ok := reader.(io.Seeker)
	if !ok {
		return "", fmt.Errorf("primary storage failed and cannot reset reader for fallback: %w", err)
	}
	if _, seekErr := seeker.Seek(0, io.SeekStart); seekErr != nil {
		return "", fmt.Errorf("failed to reset reader for fallback: %w", seekErr)
	}

	return s.fallback.Upload(ctx, key, reader, contentType, size)
}

// Delete removes the key from both storages and fails only if both fail
func (s *FallbackStorage) Delete(ctx context.Context, key string) error {
	primaryErr := s.primary.Delete(ctx, key)
	fallbackErr := s.fallback.Delete(ctx, key)

	if primaryErr != nil && fallbackErr != nil {
		return fmt.Errorf("both storages failed - primary: %v, fallback: %w", primaryErr, fallbackErr)
	}
	return nil
}

// GetURL returns URL from primary storage
func (s *FallbackStorage) GetURL(key string) string {
	return s.primary.GetURL(key)
}
