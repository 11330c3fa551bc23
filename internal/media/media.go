package media

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported image format: only jpg, jpeg and png are allowed")
	ErrUploadsDisabled   = errors.New("image uploads are not configured")
	ErrTooLarge          = errors.New("image exceeds the maximum upload size")
)

var AllowedFormats = []string{"jpg", "jpeg", "png"}

// File is a single uploaded image as received from a multipart form.
type File struct {
	Filename string
	Size     int64
	Reader   io.Reader
}

// Uploader stores an image and returns a durable URL for it.
type Uploader interface {
	Upload(ctx context.Context, folder string, file File) (string, error)
}

// CheckFormat validates the file extension before any network call.
func CheckFormat(filename string) (string, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
	for _, allowed := range AllowedFormats {
		if ext == allowed {
			return ext, nil
		}
	}
	return "", fmt.Errorf("%w (got %q)", ErrUnsupportedFormat, filename)
}

func CheckSize(file File, maxBytes int64) error {
	if maxBytes > 0 && file.Size > maxBytes {
		return fmt.Errorf("%w: %d bytes, limit %d", ErrTooLarge, file.Size, maxBytes)
	}
	return nil
}

type disabled struct{}

// Disabled rejects every upload with ErrUploadsDisabled.
func Disabled() Uploader {
	return disabled{}
}

func (disabled) Upload(ctx context.Context, folder string, file File) (string, error) {
	if _, err := CheckFormat(file.Filename); err != nil {
		return "", err
	}
	return "", ErrUploadsDisabled
}
