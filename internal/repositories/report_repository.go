package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/recyclerewards/backend/internal/models"
	"go.uber.org/zap"
)

// reportRepository runs the aggregate queries behind dashboards and reports
type reportRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewReportRepository creates a new report repository
func NewReportRepository(db *sql.DB, logger *zap.Logger) *reportRepository {
	return &reportRepository{
		db:     db,
		logger: logger,
	}
}

// UserDashboard collects the recycling aggregates of one user.
// Points, next pickup and the user itself are filled in by the caller.
func (r *reportRepository) UserDashboard(ctx context.Context, userID int) (*models.UserDashboard, error) {
	dashboard := &models.UserDashboard{}

	err := r.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(weight), 0) FROM recycle_items WHERE user_id = ?`, userID,
	).Scan(&dashboard.TotalRecycled)
	if err != nil {
		r.logger.Error("failed to sum recycled weight", zap.Error(err), zap.Int("user_id", userID))
		return nil, fmt.Errorf("failed to sum recycled weight: %w", err)
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT `+itemColumns+` FROM recycle_items WHERE user_id = ? ORDER BY created_at DESC LIMIT 5`, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent activity: %w", err)
	}
	dashboard.RecentActivity = make([]models.RecycleItem, 0)
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan recent activity: %w", err)
		}
		dashboard.RecentActivity = append(dashboard.RecentActivity, *item)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating recent activity: %w", err)
	}

	dashboard.RecyclingHistory, err = r.weightByPeriod(ctx, `
		SELECT DATE_FORMAT(created_at, '%Y-%m-%d') AS period, COUNT(*), COALESCE(SUM(weight), 0)
		FROM recycle_items
		WHERE user_id = ?
		GROUP BY period
		ORDER BY period DESC
		LIMIT 6
	`, userID)
	if err != nil {
		return nil, err
	}

	dashboard.RecyclingBreakdown, err = r.weightByType(ctx, `
		SELECT item_type, COUNT(*), COALESCE(SUM(weight), 0)
		FROM recycle_items
		WHERE user_id = ?
		GROUP BY item_type
		ORDER BY item_type
	`, userID)
	if err != nil {
		return nil, err
	}

	return dashboard, nil
}

// AdminDashboard collects the site-wide aggregates; trends start at since.
// The admin itself is filled in by the caller.
func (r *reportRepository) AdminDashboard(ctx context.Context, since time.Time) (*models.AdminDashboard, error) {
	dashboard := &models.AdminDashboard{}

	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM users WHERE role = ?`, models.RoleUser,
	).Scan(&dashboard.TotalUsers); err != nil {
		r.logger.Error("failed to count users", zap.Error(err))
		return nil, fmt.Errorf("failed to count users: %w", err)
	}

	if err := r.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(weight), 0) FROM recycle_items WHERE status = ?`, models.ItemStatusApproved,
	).Scan(&dashboard.TotalRecycled); err != nil {
		r.logger.Error("failed to sum recycled weight", zap.Error(err))
		return nil, fmt.Errorf("failed to sum recycled weight: %w", err)
	}

	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM pickup_requests WHERE status = ?`, models.PickupStatusPending,
	).Scan(&dashboard.PendingPickups); err != nil {
		r.logger.Error("failed to count pending pickups", zap.Error(err))
		return nil, fmt.Errorf("failed to count pending pickups: %w", err)
	}

	var err error
	dashboard.RecyclingTrends, err = r.weightByPeriod(ctx, `
		SELECT DATE_FORMAT(created_at, '%Y-%m-01') AS period, COUNT(*), COALESCE(SUM(weight), 0)
		FROM recycle_items
		WHERE status = ? AND created_at >= ?
		GROUP BY period
		ORDER BY period ASC
	`, models.ItemStatusApproved, since)
	if err != nil {
		return nil, err
	}

	dashboard.UserGrowthTrends, err = r.countByPeriod(ctx, `
		SELECT DATE_FORMAT(created_at, '%Y-%m-01') AS period, COUNT(*)
		FROM users
		WHERE role = ? AND created_at >= ?
		GROUP BY period
		ORDER BY period ASC
	`, models.RoleUser, since)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT r.created_at, r.item_type, r.weight, u.full_name
		FROM recycle_items r
		JOIN users u ON r.user_id = u.id
		ORDER BY r.created_at DESC
		LIMIT 5
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent activity: %w", err)
	}
	dashboard.RecentActivity = make([]models.ActivityItem, 0)
	for rows.Next() {
		var (
			createdAt time.Time
			itemType  string
			weight    float64
			fullName  string
		)
		if err := rows.Scan(&createdAt, &itemType, &weight, &fullName); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan recent activity: %w", err)
		}
		dashboard.RecentActivity = append(dashboard.RecentActivity, models.ActivityItem{
			Date:        createdAt,
			Description: fmt.Sprintf("%s recycled %.2f kg of %s", fullName, weight, itemType),
		})
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating recent activity: %w", err)
	}

	dashboard.RecyclingBreakdown, err = r.weightByType(ctx, `
		SELECT item_type, COUNT(*), COALESCE(SUM(weight), 0)
		FROM recycle_items
		WHERE status = ?
		GROUP BY item_type
		ORDER BY item_type
	`, models.ItemStatusApproved)
	if err != nil {
		return nil, err
	}

	return dashboard, nil
}

// RecyclingReport builds the admin report; user performance is paginated by page and limit
func (r *reportRepository) RecyclingReport(ctx context.Context, page, limit int) (*models.RecyclingReport, error) {
	report := &models.RecyclingReport{}

	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM recycle_items`).Scan(&report.TotalRecycleItems); err != nil {
		r.logger.Error("failed to count recycle items", zap.Error(err))
		return nil, fmt.Errorf("failed to count recycle items: %w", err)
	}

	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM recycle_items WHERE status = ?`, models.ItemStatusApproved,
	).Scan(&report.ApprovedRecycleItems); err != nil {
		r.logger.Error("failed to count approved recycle items", zap.Error(err))
		return nil, fmt.Errorf("failed to count approved recycle items: %w", err)
	}

	var approvedWeight float64
	if err := r.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(weight), 0) FROM recycle_items WHERE status = ?`, models.ItemStatusApproved,
	).Scan(&approvedWeight); err != nil {
		r.logger.Error("failed to sum approved weight", zap.Error(err))
		return nil, fmt.Errorf("failed to sum approved weight: %w", err)
	}
	report.EnvironmentalImpact = models.NewEnvironmentalImpact(approvedWeight)

	var err error
	report.RecycleItemsByType, err = r.weightByType(ctx, `
		SELECT item_type, COUNT(*), COALESCE(SUM(weight), 0)
		FROM recycle_items
		WHERE status = ?
		GROUP BY item_type
		ORDER BY item_type
	`, models.ItemStatusApproved)
	if err != nil {
		return nil, err
	}

	report.MonthlyRecyclingTrends, err = r.weightByPeriod(ctx, `
		SELECT DATE_FORMAT(created_at, '%Y-%m') AS period, COUNT(*), COALESCE(SUM(weight), 0)
		FROM recycle_items
		WHERE status = ?
		GROUP BY period
		ORDER BY period
		LIMIT 12
	`, models.ItemStatusApproved)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, `SELECT status, COUNT(*) FROM pickup_requests GROUP BY status ORDER BY status`)
	if err != nil {
		return nil, fmt.Errorf("failed to query pickup request stats: %w", err)
	}
	report.PickupRequestStats = make([]models.CountByStatus, 0)
	for rows.Next() {
		var c models.CountByStatus
		if err := rows.Scan(&c.Status, &c.Count); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan pickup request stats: %w", err)
		}
		report.PickupRequestStats = append(report.PickupRequestStats, c)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating pickup request stats: %w", err)
	}

	rows, err = r.db.QueryContext(ctx, `
		SELECT u.id, u.full_name, u.email, u.points, COUNT(r.id), COALESCE(SUM(r.weight), 0) AS total_weight
		FROM users u
		LEFT JOIN recycle_items r ON u.id = r.user_id AND r.status = ?
		WHERE u.role = ?
		GROUP BY u.id, u.full_name, u.email, u.points
		ORDER BY total_weight DESC, u.id ASC
		LIMIT ? OFFSET ?
	`, models.ItemStatusApproved, models.RoleUser, limit, pageOffset(page, limit))
	if err != nil {
		return nil, fmt.Errorf("failed to query user performance: %w", err)
	}
	report.UserPerformance = make([]models.UserPerformance, 0)
	for rows.Next() {
		var p models.UserPerformance
		if err := rows.Scan(&p.ID, &p.FullName, &p.Email, &p.Points, &p.TotalItems, &p.TotalWeight); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan user performance: %w", err)
		}
		report.UserPerformance = append(report.UserPerformance, p)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating user performance: %w", err)
	}

	var totalUsers int
	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM users WHERE role = ?`, models.RoleUser,
	).Scan(&totalUsers); err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}
	report.Pagination = models.NewPagination(page, limit, totalUsers)

	return report, nil
}

// weightByType runs a query returning (item_type, count, weight) rows
func (r *reportRepository) weightByType(ctx context.Context, query string, args ...any) ([]models.WeightByType, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query weight by type: %w", err)
	}
	defer rows.Close()

	result := make([]models.WeightByType, 0)
	for rows.Next() {
		var w models.WeightByType
		if err := rows.Scan(&w.ItemType, &w.Count, &w.TotalWeight); err != nil {
			return nil, fmt.Errorf("failed to scan weight by type: %w", err)
		}
		result = append(result, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating weight by type: %w", err)
	}

	return result, nil
}

// weightByPeriod runs a query returning (period, count, weight) rows
func (r *reportRepository) weightByPeriod(ctx context.Context, query string, args ...any) ([]models.WeightByPeriod, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query weight by period: %w", err)
	}
	defer rows.Close()

	result := make([]models.WeightByPeriod, 0)
	for rows.Next() {
		var w models.WeightByPeriod
		if err := rows.Scan(&w.Period, &w.ItemCount, &w.TotalWeight); err != nil {
			return nil, fmt.Errorf("failed to scan weight by period: %w", err)
		}
		result = append(result, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating weight by period: %w", err)
	}

	return result, nil
}

// countByPeriod runs a query returning (period, count) rows
func (r *reportRepository) countByPeriod(ctx context.Context, query string, args ...any) ([]models.CountByPeriod, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query count by period: %w", err)
	}
	defer rows.Close()

	result := make([]models.CountByPeriod, 0)
	for rows.Next() {
		var c models.CountByPeriod
		if err := rows.Scan(&c.Period, &c.Count); err != nil {
			return nil, fmt.Errorf("failed to scan count by period: %w", err)
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating count by period: %w", err)
	}

	return result, nil
}
