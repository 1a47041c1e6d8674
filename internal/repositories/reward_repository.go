package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/recyclerewards/backend/internal/models"
	"go.uber.org/zap"
)

// rewardRepository implements the reward catalog and the redemption ledger
type rewardRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewRewardRepository creates a new reward repository
func NewRewardRepository(db *sql.DB, logger *zap.Logger) *rewardRepository {
	return &rewardRepository{
		db:     db,
		logger: logger,
	}
}

// List returns the whole reward catalog ordered by cost
func (r *rewardRepository) List(ctx context.Context) ([]models.Reward, error) {
	query := `SELECT id, name, description, points, image_url FROM rewards ORDER BY points ASC, id ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query rewards: %w", err)
	}
	defer rows.Close()

	rewards := make([]models.Reward, 0)
	for rows.Next() {
		var reward models.Reward
		if err := rows.Scan(&reward.ID, &reward.Name, &reward.Description, &reward.Points, &reward.ImageURL); err != nil {
			return nil, fmt.Errorf("failed to scan reward: %w", err)
		}
		rewards = append(rewards, reward)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rewards: %w", err)
	}

	return rewards, nil
}

// Create inserts a new reward into the catalog
func (r *rewardRepository) Create(ctx context.Context, reward *models.Reward) error {
	query := `
		INSERT INTO rewards (name, description, points, image_url)
		VALUES (?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query, reward.Name, reward.Description, reward.Points, reward.ImageURL)
	if err != nil {
		r.logger.Error("failed to create reward", zap.Error(err))
		return fmt.Errorf("failed to create reward: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	reward.ID = int(id)
	return nil
}

// Redeem exchanges points for a reward in one transaction.
// The user row is locked with SELECT ... FOR UPDATE, so concurrent redemptions by the
// same user are serialized and the balance can never go below zero.
// Returns the recorded redemption and the remaining balance.
func (r *rewardRepository) Redeem(ctx context.Context, userID, rewardID int) (*models.Redemption, int, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, 0, txFailure("begin transaction", err)
	}
	defer tx.Rollback()

	var cost int
	err = tx.QueryRowContext(ctx, `SELECT points FROM rewards WHERE id = ?`, rewardID).Scan(&cost)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, 0, fmt.Errorf("reward %d: %w", rewardID, models.ErrRewardNotFound)
	}
	if err != nil {
		return nil, 0, txFailure("load reward", err)
	}

	var balance int
	err = tx.QueryRowContext(ctx, `SELECT points FROM users WHERE id = ? FOR UPDATE`, userID).Scan(&balance)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, 0, fmt.Errorf("user %d: %w", userID, models.ErrNotFound)
	}
	if err != nil {
		return nil, 0, txFailure("lock user points", err)
	}

	if balance < cost {
		return nil, 0, fmt.Errorf("balance %d, cost %d: %w", balance, cost, models.ErrInsufficientPoints)
	}

	if _, err := tx.ExecContext(ctx, `UPDATE users SET points = points - ? WHERE id = ?`, cost, userID); err != nil {
		r.logger.Error("failed to deduct points", zap.Error(err), zap.Int("user_id", userID))
		return nil, 0, txFailure("deduct points", err)
	}

	result, err := tx.ExecContext(ctx,
		`INSERT INTO redemptions (user_id, reward_id, points_spent) VALUES (?, ?, ?)`,
		userID, rewardID, cost,
	)
	if err != nil {
		r.logger.Error("failed to record redemption", zap.Error(err), zap.Int("user_id", userID))
		return nil, 0, txFailure("record redemption", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, 0, txFailure("get last insert id", err)
	}

	if err := tx.Commit(); err != nil {
		r.logger.Error("failed to commit redemption", zap.Error(err), zap.Int("user_id", userID))
		return nil, 0, txFailure("commit transaction", err)
	}

	redemption := &models.Redemption{
		ID:          int(id),
		UserID:      userID,
		RewardID:    rewardID,
		PointsSpent: cost,
		CreatedAt:   time.Now().UTC(),
	}
	return redemption, balance - cost, nil
}

// History returns the redemptions of a user joined with the redeemed rewards, newest first
func (r *rewardRepository) History(ctx context.Context, userID int) ([]models.RedemptionHistoryItem, error) {
	query := `
		SELECT rd.id, rd.reward_id, rw.name, rw.image_url, rd.points_spent, rd.created_at
		FROM redemptions rd
		JOIN rewards rw ON rd.reward_id = rw.id
		WHERE rd.user_id = ?
		ORDER BY rd.created_at DESC, rd.id DESC
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query redemption history: %w", err)
	}
	defer rows.Close()

	history := make([]models.RedemptionHistoryItem, 0)
	for rows.Next() {
		var h models.RedemptionHistoryItem
		if err := rows.Scan(&h.ID, &h.RewardID, &h.Name, &h.ImageURL, &h.PointsSpent, &h.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan redemption: %w", err)
		}
		history = append(history, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating redemptions: %w", err)
	}

	return history, nil
}
