package services

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/recyclerewards/backend/internal/models"
	"github.com/recyclerewards/backend/internal/storage"
	"go.uber.org/zap"
)

// ImageStore is the interface that wraps the image upload service
type ImageStore interface {
	// Method Upload stores an image and returns its public URL and asset id.
	//
	// "mediaType" parameter selects where the image is kept.
	// "reader" parameter is the image content.
	// "filename" parameter is the original file name, used for the extension.
	//
	// If the image is larger than allowed, models.ErrFileTooLarge will be returned.
	Upload(ctx context.Context, mediaType storage.MediaType, reader io.Reader, filename string) (string, string, error)
	// Method Delete removes an image by its asset id.
	Delete(ctx context.Context, assetID string) error
}

// ImageUpload is an optional image sent with a form
type ImageUpload struct {
	Reader   io.Reader
	Filename string
}

// uploadImage stores the image, mapping every failure except an oversized file to models.ErrUpstreamService
func uploadImage(ctx context.Context, images ImageStore, mediaType storage.MediaType, image *ImageUpload) (string, string, error) {
	url, assetID, err := images.Upload(ctx, mediaType, image.Reader, image.Filename)
	if err != nil {
		if errors.Is(err, models.ErrFileTooLarge) {
			return "", "", err
		}
		return "", "", fmt.Errorf("%w: %w", models.ErrUpstreamService, err)
	}
	return url, assetID, nil
}

// discardImage deletes an image that is no longer referenced; failures are only logged
func discardImage(ctx context.Context, images ImageStore, logger *zap.Logger, assetID string) {
	if assetID == "" {
		return
	}
	if err := images.Delete(ctx, assetID); err != nil {
		logger.Warn("failed to delete image", zap.String("assetId", assetID), zap.Error(err))
	}
}
