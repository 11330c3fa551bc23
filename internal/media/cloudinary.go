package media

import (
	"context"
	"errors"
	"fmt"

	"github.com/JosephKS10/blog-backend/internal/config"
	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

type CloudinaryUploader struct {
	cld      *cloudinary.Cloudinary
	maxBytes int64
}

func NewCloudinaryUploader(cfg config.MediaConfig) (*CloudinaryUploader, error) {
	var (
		cld *cloudinary.Cloudinary
		err error
	)

	switch {
	case cfg.CloudinaryURL != "":
		cld, err = cloudinary.NewFromURL(cfg.CloudinaryURL)
	case cfg.Enabled():
		cld, err = cloudinary.NewFromParams(cfg.CloudName, cfg.APIKey, cfg.APISecret)
	default:
		return nil, ErrUploadsDisabled
	}
	if err != nil {
		return nil, fmt.Errorf("failed to configure cloudinary: %w", err)
	}

	cld.Config.URL.Secure = true

	return &CloudinaryUploader{cld: cld, maxBytes: cfg.MaxUploadBytes}, nil
}

func (u *CloudinaryUploader) Upload(ctx context.Context, folder string, file File) (string, error) {
	if _, err := CheckFormat(file.Filename); err != nil {
		return "", err
	}
	if err := CheckSize(file, u.maxBytes); err != nil {
		return "", err
	}

	resp, err := u.cld.Upload.Upload(ctx, file.Reader, uploader.UploadParams{
		Folder:         folder,
		AllowedFormats: api.CldAPIArray(AllowedFormats),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload image: %w", err)
	}
	if resp.Error.Message != "" {
		return "", fmt.Errorf("failed to upload image: %w", errors.New(resp.Error.Message))
	}

	return resp.SecureURL, nil
}
