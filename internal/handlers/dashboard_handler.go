package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/recyclerewards/backend/internal/models"
	"go.uber.org/zap"
)

// DashboardService is the interface that wraps the user dashboard
type DashboardService interface {
	// UserDashboard collects totals, next pickup, recent activity and breakdowns of "user".
	UserDashboard(ctx context.Context, user *models.User) (*models.UserDashboard, error)
}

// DashboardHandler handles the user home page
type DashboardHandler struct {
	BaseHandler
	dashboardService DashboardService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService DashboardService, logger *zap.Logger) *DashboardHandler {
	return &DashboardHandler{
		BaseHandler:      BaseHandler{Logger: logger},
		dashboardService: dashboardService,
	}
}

// RegisterRoutes registers the dashboard route
func (h *DashboardHandler) RegisterRoutes(r chi.Router) {
	r.Get("/dashboard", h.GetDashboard)
}

// GetDashboard handles GET /dashboard
// @Summary Get user dashboard
// @Description Total recycled weight, CO2 saved, reward points, next pickup, recent activity and recycling breakdowns
// @Tags dashboard
// @Produce json
// @Success 200 {object} models.UserDashboard
// @Failure 401 {object} map[string]string "Unauthorized or session expired"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /dashboard [get]
func (h *DashboardHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	user, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	dashboard, err := h.dashboardService.UserDashboard(r.Context(), user)
	if err != nil {
		h.RespondServiceError(w, r, err, "User not found")
		return
	}

	h.RespondJSON(w, http.StatusOK, dashboard)
}
