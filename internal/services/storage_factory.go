package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"ecommerce-platform/internal/config"
)

// StorageFactory builds the image storage stack from configuration
type StorageFactory struct {
	config *config.Config
	logger *zap.Logger
}

// NewStorageFactory creates a new storage factory
func NewStorageFactory(cfg *config.Config, logger *zap.Logger) *StorageFactory {
	return &StorageFactory{config: cfg, logger: logger}
}

// CreateStorageService returns R2 backed by local disk, or local disk alone when R2 is unusable
func (f *StorageFactory) CreateStorageService(ctx context.Context) (StorageService, error) {
	local, err := NewLocalStorage(f.config.Storage.UploadDir, f.config.Storage.PublicURL, f.logger)
	if err != nil {
		return nil, err
	}

	r2, err := NewR2Storage(ctx, f.config.R2, f.logger)
	if err != nil {
		f.logger.Warn("R2 storage unavailable, using local storage only", zap.Error(err))
		return local, nil
	}

	checkCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := r2.HealthCheck(checkCtx); err != nil {
		f.logger.Warn("R2 health check failed, using local storage only", zap.Error(err))
		return local, nil
	}

	f.logger.Info("R2 storage initialized", zap.String("bucket", f.config.R2.BucketName))
	return NewFallbackStorage(r2, local, f.logger), nil
}

// CreateImageService creates an image service on top of the configured storage
func (f *StorageFactory) CreateImageService(ctx context.Context) (*ImageService, error) {
	storage, err := f.CreateStorageService(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage service: %w", err)
	}
	return NewImageService(storage), nil
}

// ValidateR2Configuration reports the first missing R2 setting
func (f *StorageFactory) ValidateR2Configuration() error {
	cfg := f.config.R2

	switch {
	case cfg.AccountID == "" && cfg.Endpoint == "":
		return errors.New("R2_ACCOUNT_ID or R2_ENDPOINT is required")
	case cfg.AccessKeyID == "":
		return errors.New("R2_ACCESS_KEY_ID is required")
	case cfg.SecretAccessKey == "":
		return errors.New("R2_SECRET_ACCESS_KEY is required")
	case cfg.BucketName == "":
		return errors.New("R2_BUCKET_NAME is required")
	}
	return nil
}

// SetupR2Bucket creates the bucket and opens it to the client origins
func (f *StorageFactory) SetupR2Bucket(ctx context.Context) error {
	if err := f.ValidateR2Configuration(); err != nil {
		return err
	}

	r2, err := NewR2Storage(ctx, f.config.R2, f.logger)
	if err != nil {
		return fmt.Errorf("failed to create R2 storage: %w", err)
	}

	if err := r2.CreateBucket(ctx); err != nil {
		return fmt.Errorf("failed to create R2 bucket: %w", err)
	}
	if err := r2.SetBucketCORS(ctx, f.config.Server.ClientOrigins); err != nil {
		return fmt.Errorf("failed to set R2 bucket CORS: %w", err)
	}
	return nil
}
