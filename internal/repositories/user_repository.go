package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/recyclerewards/backend/internal/models"
	"go.uber.org/zap"
)

const userColumns = `id, full_name, email, password_hash, role, points, phone_number, address, image_url, image_id, created_at`

// userRepository implements the credential store on top of the users table
type userRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *sql.DB, logger *zap.Logger) *userRepository {
	return &userRepository{
		db:     db,
		logger: logger,
	}
}

// scanUser reads a row selected with userColumns
func scanUser(row interface{ Scan(dest ...any) error }) (*models.User, error) {
	user := &models.User{}
	err := row.Scan(
		&user.ID,
		&user.FullName,
		&user.Email,
		&user.PasswordHash,
		&user.Role,
		&user.Points,
		&user.PhoneNumber,
		&user.Address,
		&user.ImageURL,
		&user.ImageID,
		&user.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// Create inserts a new user into the database
func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (full_name, email, password_hash, role)
		VALUES (?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query, user.FullName, user.Email, user.PasswordHash, user.Role)
	if err != nil {
		if isDuplicateEntry(err) {
			return models.ErrEmailTaken
		}
		r.logger.Error("failed to create user", zap.Error(err))
		return fmt.Errorf("failed to create user: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		r.logger.Error("failed to get last insert id", zap.Error(err))
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	user.ID = int(id)
	return nil
}

// GetByID retrieves a user by ID
func (r *userRepository) GetByID(ctx context.Context, id int) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = ? LIMIT 1`

	user, err := scanUser(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("user %d: %w", id, models.ErrNotFound)
	}
	if err != nil {
		r.logger.Error("failed to get user by id", zap.Error(err), zap.Int("id", id))
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}

	return user, nil
}

// GetByEmail retrieves a user by email
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = ? LIMIT 1`

	user, err := scanUser(r.db.QueryRowContext(ctx, query, email))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("user %s: %w", email, models.ErrNotFound)
	}
	if err != nil {
		r.logger.Error("failed to get user by email", zap.Error(err), zap.String("email", email))
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	return user, nil
}

// ExistsByEmail checks if a user exists with the given email
func (r *userRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE email = ?)`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, email).Scan(&exists); err != nil {
		r.logger.Error("failed to check email existence", zap.Error(err), zap.String("email", email))
		return false, fmt.Errorf("failed to check email existence: %w", err)
	}

	return exists, nil
}

// UpdateProfile writes the editable profile fields of a user.
// Points and role are never touched here.
func (r *userRepository) UpdateProfile(ctx context.Context, user *models.User) error {
	query := `
		UPDATE users
		SET full_name = ?, email = ?, password_hash = ?, phone_number = ?, address = ?, image_url = ?, image_id = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		user.FullName,
		user.Email,
		user.PasswordHash,
		user.PhoneNumber,
		user.Address,
		user.ImageURL,
		user.ImageID,
		user.ID,
	)
	if err != nil {
		if isDuplicateEntry(err) {
			return models.ErrEmailTaken
		}
		r.logger.Error("failed to update user", zap.Error(err), zap.Int("id", user.ID))
		return fmt.Errorf("failed to update user: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		// MySQL reports 0 for an unchanged row, so tell it apart from a missing one
		if _, err := r.GetByID(ctx, user.ID); err != nil {
			return err
		}
	}

	return nil
}

// GetPoints returns the current points balance of a user
func (r *userRepository) GetPoints(ctx context.Context, id int) (int, error) {
	query := `SELECT points FROM users WHERE id = ?`

	var points int
	err := r.db.QueryRowContext(ctx, query, id).Scan(&points)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("user %d: %w", id, models.ErrNotFound)
	}
	if err != nil {
		r.logger.Error("failed to get user points", zap.Error(err), zap.Int("id", id))
		return 0, fmt.Errorf("failed to get user points: %w", err)
	}

	return points, nil
}

// ListUsers returns a page of regular users whose name or email contains search,
// together with the number of all matching users
func (r *userRepository) ListUsers(ctx context.Context, search string, page, limit int) ([]models.UserListItem, int, error) {
	pattern := "%" + search + "%"

	query := `
		SELECT u.id, u.full_name, u.email, u.phone_number, u.points, u.created_at,
			(SELECT COUNT(*) FROM recycle_items WHERE user_id = u.id) AS recycle_item_count,
			(SELECT COUNT(*) FROM pickup_requests WHERE user_id = u.id) AS pickup_request_count
		FROM users u
		WHERE u.role = ? AND (u.full_name LIKE ? OR u.email LIKE ?)
		ORDER BY u.created_at DESC
		LIMIT ? OFFSET ?
	`

	rows, err := r.db.QueryContext(ctx, query, models.RoleUser, pattern, pattern, limit, pageOffset(page, limit))
	if err != nil {
		r.logger.Error("failed to query users", zap.Error(err))
		return nil, 0, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	users := make([]models.UserListItem, 0)
	for rows.Next() {
		var u models.UserListItem
		if err := rows.Scan(&u.ID, &u.FullName, &u.Email, &u.PhoneNumber, &u.Points, &u.CreatedAt, &u.RecycleItemCount, &u.PickupRequestCount); err != nil {
			return nil, 0, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating users: %w", err)
	}

	countQuery := `SELECT COUNT(*) FROM users WHERE role = ? AND (full_name LIKE ? OR email LIKE ?)`
	var total int
	if err := r.db.QueryRowContext(ctx, countQuery, models.RoleUser, pattern, pattern).Scan(&total); err != nil {
		r.logger.Error("failed to count users", zap.Error(err))
		return nil, 0, fmt.Errorf("failed to count users: %w", err)
	}

	return users, total, nil
}
