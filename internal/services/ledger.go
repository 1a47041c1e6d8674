package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/recyclerewards/backend/internal/models"
	"github.com/recyclerewards/backend/internal/storage"
	"go.uber.org/zap"
)

// ItemLedgerRepository is the interface that wraps the item insert that earns points
type ItemLedgerRepository interface {
	// Method CreateWithPoints inserts a pending item and credits "points" to its owner in one transaction.
	//
	// "item" parameter is the item to insert. On success its ID and status are set.
	// "points" parameter is the amount credited to item.UserID.
	//
	// Returns the owner's balance after the credit. Datastore failures wrap models.ErrTransactionFailure.
	CreateWithPoints(ctx context.Context, item *models.RecycleItem, points int) (int, error)
}

// RewardRepository is the interface that wraps methods for the reward catalog and redemptions
type RewardRepository interface {
	// Method List returns the reward catalog.
	List(ctx context.Context) ([]models.Reward, error)
	// Method Create adds a reward to the catalog. On success its ID is set.
	Create(ctx context.Context, reward *models.Reward) error
	// Method Redeem spends the reward cost from the user's balance in one transaction.
	//
	// "userID" parameter is the redeeming user.
	// "rewardID" parameter is the reward to redeem.
	//
	// Returns the redemption and the remaining balance. Fails with models.ErrRewardNotFound,
	// models.ErrInsufficientPoints (balance untouched) or models.ErrTransactionFailure.
	Redeem(ctx context.Context, userID, rewardID int) (*models.Redemption, int, error)
	// Method History returns the user's redemptions, newest first.
	History(ctx context.Context, userID int) ([]models.RedemptionHistoryItem, error)
}

// PointsRepository is the interface that wraps the balance lookup
type PointsRepository interface {
	// Method GetPoints returns the current balance of the user.
	GetPoints(ctx context.Context, userID int) (int, error)
}

// ledger credits points for submitted items and spends them on rewards
type ledger struct {
	itemRepo   ItemLedgerRepository
	rewardRepo RewardRepository
	pointsRepo PointsRepository
	images     ImageStore
	logger     *zap.Logger
}

// NewLedger creates a new points ledger
func NewLedger(itemRepo ItemLedgerRepository, rewardRepo RewardRepository, pointsRepo PointsRepository, images ImageStore, logger *zap.Logger) *ledger {
	return &ledger{
		itemRepo:   itemRepo,
		rewardRepo: rewardRepo,
		pointsRepo: pointsRepo,
		images:     images,
		logger:     logger,
	}
}

// SubmitItem records a new recycle item and credits the points its condition earns.
// The optional image is uploaded first and deleted again if the item cannot be saved.
// Returns the saved item, the points earned and the new balance.
func (l *ledger) SubmitItem(ctx context.Context, userID int, req *models.SubmitItemRequest, image *ImageUpload) (*models.RecycleItem, int, int, error) {
	itemType := strings.TrimSpace(req.ItemType)
	description := strings.TrimSpace(req.Description)
	condition := strings.TrimSpace(req.Condition)
	weightStr := strings.TrimSpace(req.Weight)
	if itemType == "" || description == "" || condition == "" || weightStr == "" {
		return nil, 0, 0, models.NewValidationError("All fields are required")
	}

	weight, err := strconv.ParseFloat(weightStr, 64)
	if err != nil || weight <= 0 {
		return nil, 0, 0, models.NewValidationError("Item weight must be a positive number")
	}

	item := &models.RecycleItem{
		UserID:      userID,
		ItemType:    itemType,
		Description: description,
		Condition:   models.ItemCondition(condition),
		Weight:      weight,
	}

	if image != nil {
		url, assetID, err := uploadImage(ctx, l.images, storage.MediaTypeItem, image)
		if err != nil {
			return nil, 0, 0, err
		}
		item.ImageURL, item.ImageID = url, assetID
	}

	earned := models.ScoreForCondition(item.Condition)
	total, err := l.itemRepo.CreateWithPoints(ctx, item, earned)
	if err != nil {
		discardImage(ctx, l.images, l.logger, item.ImageID)
		return nil, 0, 0, fmt.Errorf("failed to submit item: %w", err)
	}

	l.logger.Info("item submitted",
		zap.Int("userId", userID),
		zap.Int("itemId", item.ID),
		zap.Int("pointsEarned", earned),
	)
	return item, earned, total, nil
}

// Redeem spends points on a reward and returns the redemption and the remaining balance
func (l *ledger) Redeem(ctx context.Context, userID, rewardID int) (*models.Redemption, int, error) {
	if rewardID <= 0 {
		return nil, 0, models.NewValidationError("Reward ID is required")
	}

	redemption, remaining, err := l.rewardRepo.Redeem(ctx, userID, rewardID)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to redeem reward: %w", err)
	}

	l.logger.Info("reward redeemed",
		zap.Int("userId", userID),
		zap.Int("rewardId", rewardID),
		zap.Int("pointsSpent", redemption.PointsSpent),
	)
	return redemption, remaining, nil
}

// Balance returns the current points balance of the user
func (l *ledger) Balance(ctx context.Context, userID int) (int, error) {
	return l.pointsRepo.GetPoints(ctx, userID)
}

// History returns the user's redemptions
func (l *ledger) History(ctx context.Context, userID int) ([]models.RedemptionHistoryItem, error) {
	return l.rewardRepo.History(ctx, userID)
}

// Catalog returns all rewards
func (l *ledger) Catalog(ctx context.Context) ([]models.Reward, error) {
	return l.rewardRepo.List(ctx)
}

// CreateReward adds a reward to the catalog
func (l *ledger) CreateReward(ctx context.Context, req *models.CreateRewardRequest) (*models.Reward, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, models.NewValidationError("Reward name is required")
	}
	if req.Points <= 0 {
		return nil, models.NewValidationError("Reward points must be positive")
	}

	reward := &models.Reward{
		Name:        name,
		Description: strings.TrimSpace(req.Description),
		Points:      req.Points,
		ImageURL:    strings.TrimSpace(req.ImageURL),
	}
	if err := l.rewardRepo.Create(ctx, reward); err != nil {
		return nil, err
	}

	return reward, nil
}
