package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/recyclerewards/backend/internal/models"
)

// PickupRepository is the interface that wraps methods for PickupRequest table data access
type PickupRepository interface {
	// Method Create inserts a new pending pickup request. On success its ID and status are set.
	Create(ctx context.Context, pickup *models.PickupRequest) error
	// Method ListByUser returns the pickup requests of the user.
	ListByUser(ctx context.Context, userID int) ([]models.PickupRequest, error)
	// Method List returns all pickup requests, or only those in "status" when it is not empty.
	List(ctx context.Context, status models.PickupStatus) ([]models.PickupRequest, error)
	// Method UpdateStatus sets the status of a pickup request and returns it.
	//
	// If there is no such request, an error wrapping models.ErrNotFound will be returned together with "nil" value.
	UpdateStatus(ctx context.Context, id int, status models.PickupStatus) (*models.PickupRequest, error)
}

// pickupService implements scheduling of pickup requests
type pickupService struct {
	pickupRepo PickupRepository
	now        func() time.Time
}

// NewPickupService creates a new pickup service
func NewPickupService(pickupRepo PickupRepository) *pickupService {
	return &pickupService{
		pickupRepo: pickupRepo,
		now:        time.Now,
	}
}

// CreatePickup schedules a pickup for the user; the date must be in the future
func (s *pickupService) CreatePickup(ctx context.Context, userID int, req *models.CreatePickupRequest) (*models.PickupRequest, error) {
	address := strings.TrimSpace(req.Address)
	if address == "" || req.PickupDate.IsZero() {
		return nil, models.NewValidationError("Pickup date and address are required")
	}
	if !req.PickupDate.After(s.now()) {
		return nil, models.NewValidationError("Pickup date must be in the future")
	}

	pickup := &models.PickupRequest{
		UserID:     userID,
		PickupDate: req.PickupDate,
		Address:    address,
		Notes:      strings.TrimSpace(req.Notes),
	}
	if err := s.pickupRepo.Create(ctx, pickup); err != nil {
		return nil, fmt.Errorf("failed to create pickup request: %w", err)
	}

	return pickup, nil
}

// ListPickups returns the pickup requests of the user
func (s *pickupService) ListPickups(ctx context.Context, userID int) ([]models.PickupRequest, error) {
	return s.pickupRepo.ListByUser(ctx, userID)
}
