package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/recyclerewards/backend/internal/models"
	"go.uber.org/zap"
)

// AdminService is the interface that wraps methods for the administrator back office.
type AdminService interface {
	// Method Dashboard returns site-wide totals, six months of trends, recent activity and the breakdown by type.
	//
	// "admin" parameter is the signed-in administrator, returned with the dashboard.
	Dashboard(ctx context.Context, admin *models.User) (*models.AdminDashboard, error)
	// Method ListUsers returns a page of regular users matching "search" by name or email.
	//
	// "page" and "limit" are clamped to usable values.
	ListUsers(ctx context.Context, search string, page, limit int) ([]models.UserListItem, models.Pagination, error)
	// Method GetUser returns a user by ID.
	//
	// If user with such ID does not exist, an error wrapping models.ErrNotFound will be returned together with "nil" value.
	GetUser(ctx context.Context, id int) (*models.User, error)
	// Method ListSubmissions returns a page of submitted items of all users.
	//
	// "status" parameter is a review status or "all", "dateRange" is "7", "30", "90" or "all".
	//
	// If a filter is invalid, a models.ValidationError will be returned.
	ListSubmissions(ctx context.Context, status, dateRange string, page, limit int) ([]models.SubmissionListItem, models.Pagination, error)
	// Method UpdateSubmissionStatus moves a submitted item to PENDING, APPROVED or REJECTED.
	UpdateSubmissionStatus(ctx context.Context, id int, status string) (*models.RecycleItem, error)
	// Method ListPickups returns all pickup requests, optionally only those in "status".
	ListPickups(ctx context.Context, status string) ([]models.PickupRequest, error)
	// Method UpdatePickupStatus moves a pickup request to a new status.
	UpdatePickupStatus(ctx context.Context, id int, status string) (*models.PickupRequest, error)
	// Method Report returns the recycling report with a page of user performance.
	Report(ctx context.Context, page, limit int) (*models.RecyclingReport, error)
}

// RewardCreator is the part of the points ledger that manages the catalog
type RewardCreator interface {
	// Method CreateReward adds a reward to the catalog.
	//
	// If the name is empty or the cost is not positive, a models.ValidationError will be returned.
	CreateReward(ctx context.Context, req *models.CreateRewardRequest) (*models.Reward, error)
}

// AdminHandler handles admin-related HTTP requests
type AdminHandler struct {
	BaseHandler
	adminService AdminService
	rewards      RewardCreator
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(adminService AdminService, rewards RewardCreator, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{
		BaseHandler:  BaseHandler{Logger: logger},
		adminService: adminService,
		rewards:      rewards,
	}
}

// RegisterRoutes registers all admin handler routes
// Note: This assumes the router is scoped to /admin and already requires the ADMIN role
func (h *AdminHandler) RegisterRoutes(r chi.Router) {
	r.Get("/dashboard", h.Dashboard)
	r.Get("/users", h.ListUsers)
	r.Get("/users/{id}", h.GetUser)
	r.Get("/submissions", h.ListSubmissions)
	r.Patch("/submissions/{id}", h.UpdateSubmissionStatus)
	r.Get("/pickups", h.ListPickups)
	r.Patch("/pickups/{id}", h.UpdatePickupStatus)
	r.Get("/report", h.Report)
	r.Post("/rewards", h.CreateReward)
}

// Dashboard handles GET /admin/dashboard
// @Summary Admin dashboard
// @Tags admin
// @Produce json
// @Success 200 {object} models.AdminDashboard
// @Failure 401 {object} map[string]string "Unauthorized or session expired"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /admin/dashboard [get]
func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	admin, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	dashboard, err := h.adminService.Dashboard(r.Context(), admin)
	if err != nil {
		h.RespondServiceError(w, r, err, "User not found")
		return
	}

	h.RespondJSON(w, http.StatusOK, dashboard)
}

// ListUsers handles GET /admin/users
// @Summary List users
// @Description Paginated list of regular users with optional search by name or email
// @Tags admin
// @Produce json
// @Param page query int false "Page number (default: 1)"
// @Param limit query int false "Items per page (default: 10)"
// @Param search query string false "Search in full name or email"
// @Success 200 {object} map[string]any "Users and pagination"
// @Failure 401 {object} map[string]string "Unauthorized or session expired"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /admin/users [get]
func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, pagination, err := h.adminService.ListUsers(r.Context(),
		r.URL.Query().Get("search"),
		queryInt(r, "page", 1),
		queryInt(r, "limit", 10),
	)
	if err != nil {
		h.RespondServiceError(w, r, err, "User not found")
		return
	}

	h.RespondJSON(w, http.StatusOK, map[string]any{
		"users":      users,
		"pagination": pagination,
	})
}

// GetUser handles GET /admin/users/{id}
// @Summary Get user details
// @Tags admin
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} map[string]any "User"
// @Failure 400 {object} map[string]string "Invalid id"
// @Failure 404 {object} map[string]string "User not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /admin/users/{id} [get]
func (h *AdminHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, ok := h.idParam(w, r, "id")
	if !ok {
		return
	}

	user, err := h.adminService.GetUser(r.Context(), id)
	if err != nil {
		h.RespondServiceError(w, r, err, "User not found")
		return
	}

	h.RespondJSON(w, http.StatusOK, map[string]any{"user": user})
}

// ListSubmissions handles GET /admin/submissions
// @Summary List submissions
// @Tags admin
// @Produce json
// @Param status query string false "PENDING, APPROVED, REJECTED or all"
// @Param dateRange query string false "Days back" Enums(7, 30, 90, all)
// @Param page query int false "Page number (default: 1)"
// @Param limit query int false "Items per page (default: 10)"
// @Success 200 {object} map[string]any "Submissions and pagination"
// @Failure 400 {object} map[string]string "Invalid filter"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /admin/submissions [get]
func (h *AdminHandler) ListSubmissions(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	submissions, pagination, err := h.adminService.ListSubmissions(r.Context(),
		query.Get("status"),
		query.Get("dateRange"),
		queryInt(r, "page", 1),
		queryInt(r, "limit", 10),
	)
	if err != nil {
		h.RespondServiceError(w, r, err, "Submission not found")
		return
	}

	h.RespondJSON(w, http.StatusOK, map[string]any{
		"submissions": submissions,
		"pagination":  pagination,
	})
}

// UpdateSubmissionStatus handles PATCH /admin/submissions/{id}
// @Summary Review a submission
// @Tags admin
// @Accept json
// @Produce json
// @Param id path int true "Item ID"
// @Param request body models.UpdateStatusRequest true "New status"
// @Success 200 {object} map[string]any "Submission status updated successfully"
// @Failure 400 {object} map[string]string "Invalid status"
// @Failure 404 {object} map[string]string "Submission not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /admin/submissions/{id} [patch]
func (h *AdminHandler) UpdateSubmissionStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := h.idParam(w, r, "id")
	if !ok {
		return
	}

	var req models.UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	item, err := h.adminService.UpdateSubmissionStatus(r.Context(), id, req.Status)
	if err != nil {
		h.RespondServiceError(w, r, err, "Submission not found")
		return
	}

	h.RespondJSON(w, http.StatusOK, map[string]any{
		"message": "Submission status updated successfully",
		"item":    item,
	})
}

// ListPickups handles GET /admin/pickups
// @Summary List pickup requests
// @Tags admin
// @Produce json
// @Param status query string false "PENDING, SCHEDULED, COMPLETED, CANCELLED or all"
// @Success 200 {object} map[string]any "Pickup requests"
// @Failure 400 {object} map[string]string "Invalid status"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /admin/pickups [get]
func (h *AdminHandler) ListPickups(w http.ResponseWriter, r *http.Request) {
	pickups, err := h.adminService.ListPickups(r.Context(), r.URL.Query().Get("status"))
	if err != nil {
		h.RespondServiceError(w, r, err, "Pickup request not found")
		return
	}

	h.RespondJSON(w, http.StatusOK, map[string]any{"pickups": pickups})
}

// UpdatePickupStatus handles PATCH /admin/pickups/{id}
// @Summary Update a pickup request status
// @Tags admin
// @Accept json
// @Produce json
// @Param id path int true "Pickup request ID"
// @Param request body models.UpdateStatusRequest true "New status"
// @Success 200 {object} map[string]any "Pickup request status updated successfully"
// @Failure 400 {object} map[string]string "Invalid status"
// @Failure 404 {object} map[string]string "Pickup request not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /admin/pickups/{id} [patch]
func (h *AdminHandler) UpdatePickupStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := h.idParam(w, r, "id")
	if !ok {
		return
	}

	var req models.UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	pickup, err := h.adminService.UpdatePickupStatus(r.Context(), id, req.Status)
	if err != nil {
		h.RespondServiceError(w, r, err, "Pickup request not found")
		return
	}

	h.RespondJSON(w, http.StatusOK, map[string]any{
		"message": "Pickup request status updated successfully",
		"pickup":  pickup,
	})
}

// Report handles GET /admin/report
// @Summary Recycling report
// @Description Totals by type and month, pickup statistics, a page of user performance and the environmental impact of approved items
// @Tags admin
// @Produce json
// @Param page query int false "Page number (default: 1)"
// @Param limit query int false "Items per page (default: 10)"
// @Success 200 {object} models.RecyclingReport
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /admin/report [get]
func (h *AdminHandler) Report(w http.ResponseWriter, r *http.Request) {
	report, err := h.adminService.Report(r.Context(), queryInt(r, "page", 1), queryInt(r, "limit", 10))
	if err != nil {
		h.RespondServiceError(w, r, err, "Report not found")
		return
	}

	h.RespondJSON(w, http.StatusOK, report)
}

// CreateReward handles POST /admin/rewards
// @Summary Add a reward
// @Tags admin
// @Accept json
// @Produce json
// @Param request body models.CreateRewardRequest true "Reward"
// @Success 201 {object} map[string]any "Reward created successfully"
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /admin/rewards [post]
func (h *AdminHandler) CreateReward(w http.ResponseWriter, r *http.Request) {
	var req models.CreateRewardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	reward, err := h.rewards.CreateReward(r.Context(), &req)
	if err != nil {
		h.RespondServiceError(w, r, err, "Reward not found")
		return
	}

	h.RespondJSON(w, http.StatusCreated, map[string]any{
		"message": "Reward created successfully",
		"reward":  reward,
	})
}
