package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"go.uber.org/zap"

	appconfig "ecommerce-platform/internal/config"
)

// R2Storage stores images in a Cloudflare R2 bucket through the S3 API
type R2Storage struct {
	client   *s3.Client
	uploader *manager.Uploader
	config   appconfig.R2Config
	logger   *zap.Logger
}

// NewR2Storage creates an R2 client for the configured account
func NewR2Storage(ctx context.Context, cfg appconfig.R2Config, logger *zap.Logger) (*R2Storage, error) {
	if cfg.AccessKeyID == "" || cfg.SecretAccessKey == "" {
		return nil, errors.New("R2 credentials not configured")
	}

	awsCfg, err := config.LoadDefaultConfig(ctx,
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			"",
		)),
		config.WithRegion(cfg.Region),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		} else {
			o.BaseEndpoint = aws.String(fmt.Sprintf("https://%s.r2.cloudflarestorage.com", cfg.AccountID))
		}
		o.UsePathStyle = true
	})

	return &R2Storage{
		client:   client,
		uploader: manager.NewUploader(client),
		config:   cfg,
		logger:   logger,
	}, nil
}

// Upload puts the object and returns its public URL
func (r *R2Storage) Upload(ctx context.Context, key string, reader io.Reader, contentType string, size int64) (string, error) {
	key = normalizeKey(key)

	input := &s3.PutObjectInput{
		Bucket:       aws.String(r.config.BucketName),
		Key:          aws.String(key),
		Body:         reader,
		ContentType:  aws.String(contentType),
		CacheControl: aws.String("public, max-age=31536000"),
	}
	if size >= 0 {
		input.ContentLength = aws.Int64(size)
	}

	result, err := r.uploader.Upload(ctx, input)
	if err != nil {
		return "", fmt.Errorf("failed to upload to R2: %w", err)
	}

	r.logger.Debug("uploaded object to R2", zap.String("key", key), zap.String("location", result.Location))
	return r.GetURL(key), nil
}

// Delete removes an object from the bucket
func (r *R2Storage) Delete(ctx context.Context, key string) error {
	_, err := r.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(r.config.BucketName),
		Key:    aws.String(normalizeKey(key)),
	})
	if err != nil {
		return fmt.Errorf("failed to delete from R2: %w", err)
	}
	return nil
}

// GetURL returns the public URL for an object
func (r *R2Storage) GetURL(key string) string {
	key = normalizeKey(key)
	if r.config.PublicURL != "" {
		return fmt.Sprintf("%s/%s", strings.TrimSuffix(r.config.PublicURL, "/"), key)
	}
	return fmt.Sprintf("https://pub-%s.r2.dev/%s", r.config.AccountID, key)
}

// CreateBucket creates the bucket, treating an existing one as success
func (r *R2Storage) CreateBucket(ctx context.Context) error {
	_, err := r.client.CreateBucket(ctx, &s3.CreateBucketInput{
		Bucket: aws.String(r.config.BucketName),
	})
	if err != nil {
		var bucketExists *types.BucketAlreadyExists
		var bucketOwnedByYou *types.BucketAlreadyOwnedByYou
		if errors.As(err, &bucketExists) || errors.As(err, &bucketOwnedByYou) {
			return nil
		}
		return fmt.Errorf("failed to create bucket: %w", err)
	}
	return nil
}

// SetBucketCORS allows the storefront origins to read images
func (r *R2Storage) SetBucketCORS(ctx context.Context, origins []string) error {
	_, err := r.client.PutBucketCors(ctx, &s3.PutBucketCorsInput{
		Bucket: aws.String(r.config.BucketName),
		CORSConfiguration: &types.CORSConfiguration{
			CORSRules: []types.CORSRule{
				{
					AllowedHeaders: []string{"*"},
					AllowedMethods: []string{"GET", "HEAD"},
					AllowedOrigins: origins,
					ExposeHeaders:  []string{"ETag"},
					MaxAgeSeconds:  aws.Int32(3000),
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to set bucket CORS: %w", err)
	}
	return nil
}

// HealthCheck verifies that the bucket is reachable
func (r *R2Storage) HealthCheck(ctx context.Context) error {
	_, err := r.client.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
		Bucket:  aws.String(r.config.BucketName),
		MaxKeys: aws.Int32(1),
	})
	if err != nil {
		return fmt.Errorf("R2 health check failed: %w", err)
	}
	return nil
}
