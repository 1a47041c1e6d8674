package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/recyclerewards/backend/internal/models"
)

const pickupColumns = `id, user_id, pickup_date, address, notes, status, created_at, updated_at`

// pickupRepository implements pickup request data access
type pickupRepository struct {
	db *sql.DB
}

// NewPickupRepository creates a new pickup repository
func NewPickupRepository(db *sql.DB) *pickupRepository {
	return &pickupRepository{
		db: db,
	}
}

func scanPickup(row interface{ Scan(dest ...any) error }) (*models.PickupRequest, error) {
	p := &models.PickupRequest{}
	if err := row.Scan(&p.ID, &p.UserID, &p.PickupDate, &p.Address, &p.Notes, &p.Status, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	return p, nil
}

func (r *pickupRepository) queryPickups(ctx context.Context, query string, args ...any) ([]models.PickupRequest, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query pickup requests: %w", err)
	}
	defer rows.Close()

	pickups := make([]models.PickupRequest, 0)
	for rows.Next() {
		p, err := scanPickup(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan pickup request: %w", err)
		}
		pickups = append(pickups, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating pickup requests: %w", err)
	}

	return pickups, nil
}

// Create inserts a new pending pickup request
func (r *pickupRepository) Create(ctx context.Context, pickup *models.PickupRequest) error {
	query := `
		INSERT INTO pickup_requests (user_id, pickup_date, address, notes, status)
		VALUES (?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query, pickup.UserID, pickup.PickupDate, pickup.Address, pickup.Notes, models.PickupStatusPending)
	if err != nil {
		return fmt.Errorf("failed to create pickup request: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	pickup.ID = int(id)
	pickup.Status = models.PickupStatusPending
	return nil
}

// GetByID retrieves a pickup request by ID
func (r *pickupRepository) GetByID(ctx context.Context, id int) (*models.PickupRequest, error) {
	query := `SELECT ` + pickupColumns + ` FROM pickup_requests WHERE id = ? LIMIT 1`

	p, err := scanPickup(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("pickup request %d: %w", id, models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get pickup request: %w", err)
	}

	return p, nil
}

// ListByUser returns the pickup requests of a user ordered by pickup date
func (r *pickupRepository) ListByUser(ctx context.Context, userID int) ([]models.PickupRequest, error) {
	query := `SELECT ` + pickupColumns + ` FROM pickup_requests WHERE user_id = ? ORDER BY pickup_date DESC`
	return r.queryPickups(ctx, query, userID)
}

// List returns all pickup requests, optionally narrowed to one status
func (r *pickupRepository) List(ctx context.Context, status models.PickupStatus) ([]models.PickupRequest, error) {
	if status == "" {
		query := `SELECT ` + pickupColumns + ` FROM pickup_requests ORDER BY pickup_date ASC`
		return r.queryPickups(ctx, query)
	}
	query := `SELECT ` + pickupColumns + ` FROM pickup_requests WHERE status = ? ORDER BY pickup_date ASC`
	return r.queryPickups(ctx, query, status)
}

// UpdateStatus sets the status of a pickup request and returns the updated request
func (r *pickupRepository) UpdateStatus(ctx context.Context, id int, status models.PickupStatus) (*models.PickupRequest, error) {
	query := `UPDATE pickup_requests SET status = ? WHERE id = ?`

	if _, err := r.db.ExecContext(ctx, query, status, id); err != nil {
		return nil, fmt.Errorf("failed to update pickup request status: %w", err)
	}

	return r.GetByID(ctx, id)
}

// NextPending returns the date of the earliest pending pickup of a user, or nil when there is none
func (r *pickupRepository) NextPending(ctx context.Context, userID int) (*time.Time, error) {
	query := `
		SELECT pickup_date
		FROM pickup_requests
		WHERE user_id = ? AND status = ?
		ORDER BY pickup_date ASC
		LIMIT 1
	`

	var date time.Time
	err := r.db.QueryRowContext(ctx, query, userID, models.PickupStatusPending).Scan(&date)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get next pickup: %w", err)
	}

	return &date, nil
}
