package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/recyclerewards/backend/internal/models"
	"github.com/recyclerewards/backend/internal/storage"
	"go.uber.org/zap"
)

// ProfileRepository is the interface that wraps methods for reading and updating a user profile
type ProfileRepository interface {
	// Method GetByID retrieves a user by ID.
	//
	// If user with such ID does not exist, an error wrapping models.ErrNotFound will be returned together with "nil" value.
	GetByID(ctx context.Context, id int) (*models.User, error)
	// Method UpdateProfile writes the editable profile fields of the user.
	//
	// If the new email belongs to another user, models.ErrEmailTaken will be returned.
	UpdateProfile(ctx context.Context, user *models.User) error
}

// profileService implements profile reading and editing
type profileService struct {
	userRepo ProfileRepository
	images   ImageStore
	logger   *zap.Logger
}

// NewProfileService creates a new profile service
func NewProfileService(userRepo ProfileRepository, images ImageStore, logger *zap.Logger) *profileService {
	return &profileService{
		userRepo: userRepo,
		images:   images,
		logger:   logger,
	}
}

// GetProfile returns the user with the given ID
func (s *profileService) GetProfile(ctx context.Context, userID int) (*models.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}

// UpdateProfile applies the non-empty fields of req and an optional new profile image.
// The previous image is deleted once the new one is saved.
func (s *profileService) UpdateProfile(ctx context.Context, userID int, req *models.UpdateProfileRequest, image *ImageUpload) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if fullName := strings.TrimSpace(req.FullName); fullName != "" {
		user.FullName = fullName
	}
	if strings.TrimSpace(req.Email) != "" {
		email, err := normalizeEmail(req.Email)
		if err != nil {
			return nil, err
		}
		user.Email = email
	}
	if phone := strings.TrimSpace(req.PhoneNumber); phone != "" {
		user.PhoneNumber = phone
	}
	if address := strings.TrimSpace(req.Address); address != "" {
		user.Address = address
	}
	if req.Password != "" {
		passwordHash, err := hashPassword(req.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = passwordHash
	}

	previousImageID := user.ImageID
	newImageID := ""
	if image != nil {
		url, assetID, err := uploadImage(ctx, s.images, storage.MediaTypeAvatar, image)
		if err != nil {
			return nil, err
		}
		user.ImageURL, user.ImageID = url, assetID
		newImageID = assetID
	}

	if err := s.userRepo.UpdateProfile(ctx, user); err != nil {
		discardImage(ctx, s.images, s.logger, newImageID)
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	if newImageID != "" {
		discardImage(ctx, s.images, s.logger, previousImageID)
	}

	return user, nil
}
