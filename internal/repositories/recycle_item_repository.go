package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/recyclerewards/backend/internal/models"
	"go.uber.org/zap"
)

const itemColumns = `id, user_id, item_type, description, item_condition, weight, status, image_url, image_id, created_at, updated_at`

// recycleItemRepository implements recycle item data access
type recycleItemRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewRecycleItemRepository creates a new recycle item repository
func NewRecycleItemRepository(db *sql.DB, logger *zap.Logger) *recycleItemRepository {
	return &recycleItemRepository{
		db:     db,
		logger: logger,
	}
}

// scanItem reads a row selected with itemColumns
func scanItem(row interface{ Scan(dest ...any) error }) (*models.RecycleItem, error) {
	item := &models.RecycleItem{}
	err := row.Scan(
		&item.ID,
		&item.UserID,
		&item.ItemType,
		&item.Description,
		&item.Condition,
		&item.Weight,
		&item.Status,
		&item.ImageURL,
		&item.ImageID,
		&item.CreatedAt,
		&item.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return item, nil
}

// queryItems runs a query selecting itemColumns and collects the rows
func (r *recycleItemRepository) queryItems(ctx context.Context, query string, args ...any) ([]models.RecycleItem, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query recycle items: %w", err)
	}
	defer rows.Close()

	items := make([]models.RecycleItem, 0)
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan recycle item: %w", err)
		}
		items = append(items, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating recycle items: %w", err)
	}

	return items, nil
}

// CreateWithPoints inserts a pending item and credits points to its owner in one transaction.
// Returns the owner's balance after the credit.
func (r *recycleItemRepository) CreateWithPoints(ctx context.Context, item *models.RecycleItem, points int) (int, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, txFailure("begin transaction", err)
	}
	defer tx.Rollback()

	insertQuery := `
		INSERT INTO recycle_items (user_id, item_type, description, item_condition, weight, status, image_url, image_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	result, err := tx.ExecContext(ctx, insertQuery,
		item.UserID,
		item.ItemType,
		item.Description,
		item.Condition,
		item.Weight,
		models.ItemStatusPending,
		item.ImageURL,
		item.ImageID,
	)
	if err != nil {
		r.logger.Error("failed to insert recycle item", zap.Error(err), zap.Int("user_id", item.UserID))
		return 0, txFailure("insert recycle item", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, txFailure("get last insert id", err)
	}

	updateQuery := `UPDATE users SET points = points + ? WHERE id = ?`
	updateResult, err := tx.ExecContext(ctx, updateQuery, points, item.UserID)
	if err != nil {
		r.logger.Error("failed to credit points", zap.Error(err), zap.Int("user_id", item.UserID))
		return 0, txFailure("credit points", err)
	}
	rowsAffected, err := updateResult.RowsAffected()
	if err != nil {
		return 0, txFailure("get rows affected", err)
	}
	if rowsAffected == 0 {
		return 0, fmt.Errorf("user %d: %w", item.UserID, models.ErrNotFound)
	}

	var total int
	if err := tx.QueryRowContext(ctx, `SELECT points FROM users WHERE id = ?`, item.UserID).Scan(&total); err != nil {
		return 0, txFailure("read points balance", err)
	}

	if err := tx.Commit(); err != nil {
		r.logger.Error("failed to commit item submission", zap.Error(err), zap.Int("user_id", item.UserID))
		return 0, txFailure("commit transaction", err)
	}

	now := time.Now().UTC()
	item.ID = int(id)
	item.Status = models.ItemStatusPending
	item.CreatedAt, item.UpdatedAt = now, now
	return total, nil
}

// GetByID retrieves an item by ID
func (r *recycleItemRepository) GetByID(ctx context.Context, id int) (*models.RecycleItem, error) {
	query := `SELECT ` + itemColumns + ` FROM recycle_items WHERE id = ? LIMIT 1`

	item, err := scanItem(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("recycle item %d: %w", id, models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get recycle item: %w", err)
	}

	return item, nil
}

// GetByIDAndUser retrieves an item by ID only if it belongs to the given user
func (r *recycleItemRepository) GetByIDAndUser(ctx context.Context, id, userID int) (*models.RecycleItem, error) {
	query := `SELECT ` + itemColumns + ` FROM recycle_items WHERE id = ? AND user_id = ? LIMIT 1`

	item, err := scanItem(r.db.QueryRowContext(ctx, query, id, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("recycle item %d: %w", id, models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get recycle item: %w", err)
	}

	return item, nil
}

// ListByUser returns all items of a user, newest first
func (r *recycleItemRepository) ListByUser(ctx context.Context, userID int) ([]models.RecycleItem, error) {
	query := `SELECT ` + itemColumns + ` FROM recycle_items WHERE user_id = ? ORDER BY created_at DESC`
	return r.queryItems(ctx, query, userID)
}

// History returns a user's items narrowed by the filter, newest first
func (r *recycleItemRepository) History(ctx context.Context, userID int, filter models.ItemFilter) ([]models.RecycleItem, error) {
	var query strings.Builder
	query.WriteString(`SELECT ` + itemColumns + ` FROM recycle_items WHERE user_id = ?`)
	args := []any{userID}

	if filter.Days > 0 {
		query.WriteString(` AND created_at >= DATE_SUB(CURDATE(), INTERVAL ? DAY)`)
		args = append(args, filter.Days)
	}
	if filter.ItemType != "" {
		query.WriteString(` AND item_type = ?`)
		args = append(args, filter.ItemType)
	}
	query.WriteString(` ORDER BY created_at DESC`)

	return r.queryItems(ctx, query.String(), args...)
}

// Update writes the user-editable fields of an item owned by item.UserID
func (r *recycleItemRepository) Update(ctx context.Context, item *models.RecycleItem) error {
	query := `
		UPDATE recycle_items
		SET description = ?, weight = ?
		WHERE id = ? AND user_id = ?
	`

	if _, err := r.db.ExecContext(ctx, query, item.Description, item.Weight, item.ID, item.UserID); err != nil {
		r.logger.Error("failed to update recycle item", zap.Error(err), zap.Int("id", item.ID))
		return fmt.Errorf("failed to update recycle item: %w", err)
	}

	return nil
}

// Delete removes an item owned by the given user
func (r *recycleItemRepository) Delete(ctx context.Context, id, userID int) error {
	query := `DELETE FROM recycle_items WHERE id = ? AND user_id = ?`

	result, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		r.logger.Error("failed to delete recycle item", zap.Error(err), zap.Int("id", id))
		return fmt.Errorf("failed to delete recycle item: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("recycle item %d: %w", id, models.ErrNotFound)
	}

	return nil
}

// UpdateStatus sets the review status of an item and returns the updated item
func (r *recycleItemRepository) UpdateStatus(ctx context.Context, id int, status models.ItemStatus) (*models.RecycleItem, error) {
	query := `UPDATE recycle_items SET status = ? WHERE id = ?`

	if _, err := r.db.ExecContext(ctx, query, status, id); err != nil {
		r.logger.Error("failed to update recycle item status", zap.Error(err), zap.Int("id", id))
		return nil, fmt.Errorf("failed to update recycle item status: %w", err)
	}

	return r.GetByID(ctx, id)
}

// ListSubmissions returns a page of all users' items joined with their owners,
// together with the number of all matching items
func (r *recycleItemRepository) ListSubmissions(ctx context.Context, filter models.SubmissionFilter) ([]models.SubmissionListItem, int, error) {
	var where strings.Builder
	where.WriteString(` WHERE 1=1`)
	args := make([]any, 0, 4)

	if filter.Status != "" {
		where.WriteString(` AND r.status = ?`)
		args = append(args, filter.Status)
	}
	if filter.Days > 0 {
		where.WriteString(` AND r.created_at >= DATE_SUB(NOW(), INTERVAL ? DAY)`)
		args = append(args, filter.Days)
	}

	query := `
		SELECT r.id, r.user_id, r.item_type, r.description, r.item_condition, r.weight, r.status,
			r.image_url, r.image_id, r.created_at, r.updated_at, u.full_name, u.email
		FROM recycle_items r
		JOIN users u ON r.user_id = u.id` + where.String() + `
		ORDER BY r.created_at DESC
		LIMIT ? OFFSET ?`

	pageArgs := append(append([]any{}, args...), filter.Limit, pageOffset(filter.Page, filter.Limit))
	rows, err := r.db.QueryContext(ctx, query, pageArgs...)
	if err != nil {
		r.logger.Error("failed to query submissions", zap.Error(err))
		return nil, 0, fmt.Errorf("failed to query submissions: %w", err)
	}
	defer rows.Close()

	submissions := make([]models.SubmissionListItem, 0)
	for rows.Next() {
		var s models.SubmissionListItem
		if err := rows.Scan(
			&s.ID, &s.UserID, &s.ItemType, &s.Description, &s.Condition, &s.Weight, &s.Status,
			&s.ImageURL, &s.ImageID, &s.CreatedAt, &s.UpdatedAt, &s.FullName, &s.Email,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan submission: %w", err)
		}
		submissions = append(submissions, s)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating submissions: %w", err)
	}

	countQuery := `SELECT COUNT(*) FROM recycle_items r JOIN users u ON r.user_id = u.id` + where.String()
	var total int
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		r.logger.Error("failed to count submissions", zap.Error(err))
		return nil, 0, fmt.Errorf("failed to count submissions: %w", err)
	}

	return submissions, total, nil
}
