package services

import (
	"context"
	"time"

	"github.com/recyclerewards/backend/internal/models"
)

// ReportRepository is the interface that wraps the aggregate queries behind dashboards and reports
type ReportRepository interface {
	// Method UserDashboard collects the recycling aggregates of one user.
	UserDashboard(ctx context.Context, userID int) (*models.UserDashboard, error)
	// Method AdminDashboard collects the site-wide aggregates with trends starting at "since".
	AdminDashboard(ctx context.Context, since time.Time) (*models.AdminDashboard, error)
	// Method RecyclingReport builds the admin report with a page of user performance.
	RecyclingReport(ctx context.Context, page, limit int) (*models.RecyclingReport, error)
}

// NextPickupRepository is the interface that wraps the next pickup lookup
type NextPickupRepository interface {
	// Method NextPending returns the earliest pending pickup date of the user, or "nil" when there is none.
	NextPending(ctx context.Context, userID int) (*time.Time, error)
}

// dashboardService assembles the user home page
type dashboardService struct {
	reportRepo ReportRepository
	pickupRepo NextPickupRepository
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(reportRepo ReportRepository, pickupRepo NextPickupRepository) *dashboardService {
	return &dashboardService{
		reportRepo: reportRepo,
		pickupRepo: pickupRepo,
	}
}

// UserDashboard returns the dashboard of the signed-in user
func (s *dashboardService) UserDashboard(ctx context.Context, user *models.User) (*models.UserDashboard, error) {
	dashboard, err := s.reportRepo.UserDashboard(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	nextPickup, err := s.pickupRepo.NextPending(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	dashboard.NextPickup = nextPickup
	dashboard.RewardPoints = user.Points
	dashboard.CO2Saved = dashboard.TotalRecycled * models.CO2SavingsPerKg
	dashboard.User = user
	return dashboard, nil
}
