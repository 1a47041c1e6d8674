// Package storage keeps uploaded images on the local filesystem
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/recyclerewards/backend/internal/models"
)

// MaxImageSize is the largest accepted image in bytes
const MaxImageSize int64 = 2 << 20

// MediaType groups stored images into directories
type MediaType string

const (
	MediaTypeItem   MediaType = "item"
	MediaTypeAvatar MediaType = "avatar"
)

// Valid reports whether the media type is known
func (t MediaType) Valid() bool {
	switch t {
	case MediaTypeItem, MediaTypeAvatar:
		return true
	default:
		return false
	}
}

// localStorage stores images below basePath and builds public URLs from baseURL
type localStorage struct {
	basePath string
	baseURL  string
	maxSize  int64
}

// NewLocalStorage creates a new localStorage instance
func NewLocalStorage(basePath, baseURL string) *localStorage {
	return &localStorage{
		basePath: basePath,
		baseURL:  strings.TrimRight(baseURL, "/"),
		maxSize:  MaxImageSize,
	}
}

// generatePath returns the file path of an image, rejecting names that would escape the media directory
func (s *localStorage) generatePath(mediaType MediaType, filename string) (string, error) {
	if !mediaType.Valid() {
		return "", fmt.Errorf("unknown media type %q: %w", mediaType, models.ErrValidation)
	}
	if filename == "" || filename != filepath.Base(filename) || strings.HasPrefix(filename, ".") {
		return "", fmt.Errorf("invalid file name %q: %w", filename, models.ErrValidation)
	}
	return filepath.Join(s.basePath, string(mediaType), filename), nil
}

// Upload copies the image into storage under a generated name
// Returns the public URL and the asset id ("<mediaType>/<file>") used for deletion
func (s *localStorage) Upload(ctx context.Context, mediaType MediaType, reader io.Reader, filename string) (string, string, error) {
	if err := ctx.Err(); err != nil {
		return "", "", err
	}

	name := GenerateFileName(strings.ToLower(filepath.Ext(filename)))
	path, err := s.generatePath(mediaType, name)
	if err != nil {
		return "", "", err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", "", fmt.Errorf("failed to create media directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return "", "", fmt.Errorf("failed to create file: %w", err)
	}

	sizeWriter := NewSizeWriter()
	// One byte past the limit is enough to know the image is too large
	limited := io.LimitReader(reader, s.maxSize+1)
	_, copyErr := io.Copy(file, io.TeeReader(limited, sizeWriter))
	closeErr := file.Close()

	switch {
	case copyErr != nil:
		_ = os.Remove(path)
		return "", "", fmt.Errorf("failed to write file: %w", copyErr)
	case closeErr != nil:
		_ = os.Remove(path)
		return "", "", fmt.Errorf("failed to close file: %w", closeErr)
	case sizeWriter.Size() > s.maxSize:
		_ = os.Remove(path)
		return "", "", models.ErrFileTooLarge
	}

	url := fmt.Sprintf("%s/api/v1/media/%s/%s", s.baseURL, mediaType, name)
	return url, string(mediaType) + "/" + name, nil
}

// Delete removes the image identified by assetID
// Deleting an image that does not exist is not an error
func (s *localStorage) Delete(ctx context.Context, assetID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	mediaType, filename, ok := strings.Cut(assetID, "/")
	if !ok {
		return fmt.Errorf("invalid asset id %q: %w", assetID, models.ErrValidation)
	}
	path, err := s.generatePath(MediaType(mediaType), filename)
	if err != nil {
		return err
	}

	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

// OpenFile opens a stored image for serving with http.ServeContent
func (s *localStorage) OpenFile(mediaType MediaType, filename string) (*os.File, error) {
	path, err := s.generatePath(mediaType, filename)
	if err != nil {
		return nil, err
	}
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	return file, nil
}
