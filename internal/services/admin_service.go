package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/recyclerewards/backend/internal/models"
	"go.uber.org/zap"
)

// AdminUserRepository is the interface that wraps methods for user management
type AdminUserRepository interface {
	// Method GetByID retrieves a user by ID.
	//
	// If user with such ID does not exist, an error wrapping models.ErrNotFound will be returned together with "nil" value.
	GetByID(ctx context.Context, id int) (*models.User, error)
	// Method ListUsers returns a page of regular users matching "search" by name or email.
	//
	// Returns the page and the number of all matching users.
	ListUsers(ctx context.Context, search string, page, limit int) ([]models.UserListItem, int, error)
}

// SubmissionRepository is the interface that wraps methods for reviewing submitted items
type SubmissionRepository interface {
	// Method ListSubmissions returns a page of items of all users narrowed by "filter".
	//
	// Returns the page and the number of all matching items.
	ListSubmissions(ctx context.Context, filter models.SubmissionFilter) ([]models.SubmissionListItem, int, error)
	// Method UpdateStatus sets the review status of an item and returns it.
	//
	// If there is no such item, an error wrapping models.ErrNotFound will be returned together with "nil" value.
	UpdateStatus(ctx context.Context, id int, status models.ItemStatus) (*models.RecycleItem, error)
}

// adminService implements the administrator back office
type adminService struct {
	userRepo       AdminUserRepository
	submissionRepo SubmissionRepository
	pickupRepo     PickupRepository
	reportRepo     ReportRepository
	logger         *zap.Logger
	now            func() time.Time
}

// NewAdminService creates a new admin service
func NewAdminService(
	userRepo AdminUserRepository,
	submissionRepo SubmissionRepository,
	pickupRepo PickupRepository,
	reportRepo ReportRepository,
	logger *zap.Logger,
) *adminService {
	return &adminService{
		userRepo:       userRepo,
		submissionRepo: submissionRepo,
		pickupRepo:     pickupRepo,
		reportRepo:     reportRepo,
		logger:         logger,
		now:            time.Now,
	}
}

// trendMonths is how far back the admin dashboard trends reach
const trendMonths = 6

// Dashboard returns the site-wide dashboard for the given administrator
func (s *adminService) Dashboard(ctx context.Context, admin *models.User) (*models.AdminDashboard, error) {
	dashboard, err := s.reportRepo.AdminDashboard(ctx, s.now().AddDate(0, -trendMonths, 0))
	if err != nil {
		return nil, err
	}
	dashboard.Admin = admin
	return dashboard, nil
}

// ListUsers returns a page of regular users with pagination info
func (s *adminService) ListUsers(ctx context.Context, search string, page, limit int) ([]models.UserListItem, models.Pagination, error) {
	page, limit = normalizePage(page, limit)

	users, total, err := s.userRepo.ListUsers(ctx, strings.TrimSpace(search), page, limit)
	if err != nil {
		return nil, models.Pagination{}, err
	}

	return users, models.NewPagination(page, limit, total), nil
}

// GetUser returns a user by ID
func (s *adminService) GetUser(ctx context.Context, id int) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// ListSubmissions returns a page of submitted items.
// status is a review status or "all"; dateRange is "7", "30", "90" or "all".
func (s *adminService) ListSubmissions(ctx context.Context, status, dateRange string, page, limit int) ([]models.SubmissionListItem, models.Pagination, error) {
	page, limit = normalizePage(page, limit)

	filter := models.SubmissionFilter{Page: page, Limit: limit}
	if status != "" && !strings.EqualFold(status, "all") {
		filter.Status = models.ItemStatus(strings.ToUpper(status))
		if !filter.Status.Valid() {
			return nil, models.Pagination{}, models.NewValidationError("Invalid status")
		}
	}

	days, err := parseDays(dateRange, 7, 30, 90)
	if err != nil {
		return nil, models.Pagination{}, err
	}
	filter.Days = days

	submissions, total, err := s.submissionRepo.ListSubmissions(ctx, filter)
	if err != nil {
		return nil, models.Pagination{}, err
	}

	return submissions, models.NewPagination(page, limit, total), nil
}

// UpdateSubmissionStatus moves a submitted item to a new review status
func (s *adminService) UpdateSubmissionStatus(ctx context.Context, id int, status string) (*models.RecycleItem, error) {
	itemStatus := models.ItemStatus(strings.ToUpper(strings.TrimSpace(status)))
	if !itemStatus.Valid() {
		return nil, models.NewValidationError("Invalid status")
	}

	item, err := s.submissionRepo.UpdateStatus(ctx, id, itemStatus)
	if err != nil {
		return nil, fmt.Errorf("failed to update submission status: %w", err)
	}

	s.logger.Info("submission status updated", zap.Int("itemId", id), zap.String("status", string(itemStatus)))
	return item, nil
}

// ListPickups returns all pickup requests, optionally only those in status
func (s *adminService) ListPickups(ctx context.Context, status string) ([]models.PickupRequest, error) {
	var pickupStatus models.PickupStatus
	if status != "" && !strings.EqualFold(status, "all") {
		pickupStatus = models.PickupStatus(strings.ToUpper(status))
		if !pickupStatus.Valid() {
			return nil, models.NewValidationError("Invalid status")
		}
	}
	return s.pickupRepo.List(ctx, pickupStatus)
}

// UpdatePickupStatus moves a pickup request to a new status
func (s *adminService) UpdatePickupStatus(ctx context.Context, id int, status string) (*models.PickupRequest, error) {
	pickupStatus := models.PickupStatus(strings.ToUpper(strings.TrimSpace(status)))
	if !pickupStatus.Valid() {
		return nil, models.NewValidationError("Invalid status")
	}

	pickup, err := s.pickupRepo.UpdateStatus(ctx, id, pickupStatus)
	if err != nil {
		return nil, fmt.Errorf("failed to update pickup status: %w", err)
	}

	s.logger.Info("pickup status updated", zap.Int("pickupId", id), zap.String("status", string(pickupStatus)))
	return pickup, nil
}

// Report returns the recycling report with a page of user performance
func (s *adminService) Report(ctx context.Context, page, limit int) (*models.RecyclingReport, error) {
	page, limit = normalizePage(page, limit)
	return s.reportRepo.RecyclingReport(ctx, page, limit)
}
