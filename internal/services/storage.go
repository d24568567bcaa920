package services

import (
	"io"
	"strings"
)

// Image folders in the bucket
const (
	ProductImagesFolder = "e-commerce/product-images"
	ProfileImagesFolder = "e-commerce/profile-images"
)

// MaxImageSize is the exclusive upper bound on an uploaded image
const MaxImageSize = 1024 * 1024

// ImageFile is an image as received from a multipart form
type ImageFile struct {
	Filename    string
	ContentType string
	Size        int64
	Content     io.Reader
}

// IsImage returns true if the declared mimetype is an image type
func (f ImageFile) IsImage() bool {
	return strings.HasPrefix(f.ContentType, "image")
}

// UploadedImage identifies a stored image
type UploadedImage struct {
	URL      string `json:"src"`
	PublicID string `json:"publicId"`
}

func normalizeKey(key string) string {
	return strings.TrimPrefix(key, "/")
}
