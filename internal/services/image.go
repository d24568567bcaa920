package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"

	"ecommerce-platform/internal/models"
)

// maxImageWidth bounds the stored width; narrower images are kept as is
const maxImageWidth = 1200

// ImageService validates, normalizes and stores uploaded images
type ImageService struct {
	storage StorageService
}

// NewImageService creates a new image service
func NewImageService(storage StorageService) *ImageService {
	return &ImageService{storage: storage}
}

// Upload stores file under folder and returns its URL and public id
func (s *ImageService) Upload(ctx context.Context, folder string, file ImageFile) (*UploadedImage, error) {
	if !file.IsImage() {
		return nil, models.BadRequest("Please upload an image")
	}
	if file.Size >= MaxImageSize {
		return nil, models.BadRequest("Please upload an image smaller than 1 MB")
	}

	data, err := io.ReadAll(io.LimitReader(file.Content, MaxImageSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read image data: %w", err)
	}
	if len(data) >= MaxImageSize {
		return nil, models.BadRequest("Please upload an image smaller than 1 MB")
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, models.BadRequest("Please upload an image")
	}

	if img.Bounds().Dx() > maxImageWidth {
		img = imaging.Resize(img, maxImageWidth, 0, imaging.Lanczos)
	}

	format, err := imaging.FormatFromFilename(file.Filename)
	if err != nil {
		format = imaging.JPEG
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, format, imaging.JPEGQuality(85)); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}

	key := path.Join(folder, uuid.NewString()+extensionFor(format))
	url, err := s.storage.Upload(ctx, key, bytes.NewReader(buf.Bytes()), contentTypeFor(format), int64(buf.Len()))
	if err != nil {
		return nil, fmt.Errorf("failed to upload image: %w", err)
	}

	return &UploadedImage{URL: url, PublicID: key}, nil
}

// Destroy deletes a stored image by its public id
func (s *ImageService) Destroy(ctx context.Context, publicID string) error {
	if publicID == "" {
		return nil
	}
	if err := s.storage.Delete(ctx, publicID); err != nil {
		return fmt.Errorf("failed to delete image %s: %w", publicID, err)
	}
	return nil
}

func extensionFor(format imaging.Format) string {
	if format == imaging.JPEG {
		return ".jpg"
	}
	return "." + strings.ToLower(format.String())
}

func contentTypeFor(format imaging.Format) string {
	switch format {
	case imaging.PNG:
		return "image/png"
	case imaging.GIF:
		return "image/gif"
	case imaging.BMP:
		return "image/bmp"
	case imaging.TIFF:
		return "image/tiff"
	default:
		return "image/jpeg"
	}
}
