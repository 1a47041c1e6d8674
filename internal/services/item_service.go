package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/recyclerewards/backend/internal/models"
	"go.uber.org/zap"
)

// ItemRepository is the interface that wraps methods for RecycleItem table data access
type ItemRepository interface {
	// Method ListByUser returns all items of the user, newest first.
	ListByUser(ctx context.Context, userID int) ([]models.RecycleItem, error)
	// Method GetByIDAndUser retrieves an item only if it belongs to the user.
	//
	// If there is no such item, an error wrapping models.ErrNotFound will be returned together with "nil" value.
	GetByIDAndUser(ctx context.Context, id, userID int) (*models.RecycleItem, error)
	// Method History returns the user's items narrowed by "filter".
	History(ctx context.Context, userID int, filter models.ItemFilter) ([]models.RecycleItem, error)
	// Method Update writes the description and weight of an item owned by item.UserID.
	Update(ctx context.Context, item *models.RecycleItem) error
	// Method Delete removes an item owned by the user.
	//
	// If there is no such item, an error wrapping models.ErrNotFound will be returned.
	Delete(ctx context.Context, id, userID int) error
}

// itemService implements reading and editing of a user's own items
type itemService struct {
	itemRepo ItemRepository
	images   ImageStore
	logger   *zap.Logger
}

// NewItemService creates a new item service
func NewItemService(itemRepo ItemRepository, images ImageStore, logger *zap.Logger) *itemService {
	return &itemService{
		itemRepo: itemRepo,
		images:   images,
		logger:   logger,
	}
}

// ListItems returns all items of the user
func (s *itemService) ListItems(ctx context.Context, userID int) ([]models.RecycleItem, error) {
	return s.itemRepo.ListByUser(ctx, userID)
}

// GetItem returns an item owned by the user
func (s *itemService) GetItem(ctx context.Context, userID, itemID int) (*models.RecycleItem, error) {
	return s.itemRepo.GetByIDAndUser(ctx, itemID, userID)
}

// History returns the user's items within dateRange ("1", "7", "30", "365" or "all")
// and of itemType ("all" or empty for every type), with summary totals
func (s *itemService) History(ctx context.Context, userID int, dateRange, itemType string) (*models.ItemHistory, error) {
	days, err := parseDays(dateRange, 1, 7, 30, 365)
	if err != nil {
		return nil, err
	}

	filter := models.ItemFilter{Days: days}
	if itemType = strings.TrimSpace(itemType); itemType != "all" {
		filter.ItemType = itemType
	}

	items, err := s.itemRepo.History(ctx, userID, filter)
	if err != nil {
		return nil, err
	}

	history := &models.ItemHistory{Items: items}
	history.Summary.TotalItems = len(items)
	for _, item := range items {
		history.Summary.TotalWeight += item.Weight
	}
	history.Summary.CO2Saved = history.Summary.TotalWeight * models.CO2SavingsPerKg

	return history, nil
}

// UpdateItem changes the description and weight of an item owned by the user.
// Points already credited are not recalculated.
func (s *itemService) UpdateItem(ctx context.Context, userID, itemID int, req *models.UpdateItemRequest) (*models.RecycleItem, error) {
	item, err := s.itemRepo.GetByIDAndUser(ctx, itemID, userID)
	if err != nil {
		return nil, err
	}

	if description := strings.TrimSpace(req.Description); description != "" {
		item.Description = description
	}
	if req.Weight != nil {
		if *req.Weight <= 0 {
			return nil, models.NewValidationError("Item weight must be a positive number")
		}
		item.Weight = *req.Weight
	}

	if err := s.itemRepo.Update(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to update item: %w", err)
	}

	// Re-read so the response carries the timestamps set by the database
	return s.itemRepo.GetByIDAndUser(ctx, itemID, userID)
}

// DeleteItem removes an item owned by the user together with its image.
// Points earned by the item stay with the user.
func (s *itemService) DeleteItem(ctx context.Context, userID, itemID int) error {
	item, err := s.itemRepo.GetByIDAndUser(ctx, itemID, userID)
	if err != nil {
		return err
	}

	if err := s.itemRepo.Delete(ctx, itemID, userID); err != nil {
		return err
	}

	discardImage(ctx, s.images, s.logger, item.ImageID)
	return nil
}
