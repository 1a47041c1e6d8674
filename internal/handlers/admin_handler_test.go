package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/recyclerewards/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// mockAdminService is a mock implementation of AdminService
type mockAdminService struct {
	err        error
	listArgs   []any
	statusArgs []any
}

func (m *mockAdminService) Dashboard(ctx context.Context, admin *models.User) (*models.AdminDashboard, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &models.AdminDashboard{TotalUsers: 4, Admin: admin}, nil
}

func (m *mockAdminService) ListUsers(ctx context.Context, search string, page, limit int) ([]models.UserListItem, models.Pagination, error) {
	m.listArgs = []any{search, page, limit}
	return []models.UserListItem{{ID: 2}}, models.NewPagination(page, limit, 1), m.err
}

func (m *mockAdminService) GetUser(ctx context.Context, id int) (*models.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &models.User{ID: id}, nil
}

func (m *mockAdminService) ListSubmissions(ctx context.Context, status, dateRange string, page, limit int) ([]models.SubmissionListItem, models.Pagination, error) {
	m.listArgs = []any{status, dateRange, page, limit}
	return []models.SubmissionListItem{}, models.NewPagination(page, limit, 0), m.err
}

func (m *mockAdminService) UpdateSubmissionStatus(ctx context.Context, id int, status string) (*models.RecycleItem, error) {
	m.statusArgs = []any{id, status}
	if m.err != nil {
		return nil, m.err
	}
	return &models.RecycleItem{ID: id, Status: models.ItemStatus(status)}, nil
}

func (m *mockAdminService) ListPickups(ctx context.Context, status string) ([]models.PickupRequest, error) {
	m.listArgs = []any{status}
	return []models.PickupRequest{}, m.err
}

func (m *mockAdminService) UpdatePickupStatus(ctx context.Context, id int, status string) (*models.PickupRequest, error) {
	m.statusArgs = []any{id, status}
	if m.err != nil {
		return nil, m.err
	}
	return &models.PickupRequest{ID: id, Status: models.PickupStatus(status)}, nil
}

func (m *mockAdminService) Report(ctx context.Context, page, limit int) (*models.RecyclingReport, error) {
	m.listArgs = []any{page, limit}
	if m.err != nil {
		return nil, m.err
	}
	return &models.RecyclingReport{TotalRecycleItems: 3}, nil
}

// mockRewardCreator is a mock implementation of RewardCreator
type mockRewardCreator struct {
	err error
}

func (m *mockRewardCreator) CreateReward(ctx context.Context, req *models.CreateRewardRequest) (*models.Reward, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &models.Reward{ID: 1, Name: req.Name, Points: req.Points}, nil
}

func newAdminRouter(svc *mockAdminService, rewards *mockRewardCreator) http.Handler {
	h := NewAdminHandler(svc, rewards, zap.NewNop())
	return newTestRouter(&models.User{ID: 1, Role: models.RoleAdmin}, func(r chi.Router) { h.RegisterRoutes(r) })
}

func TestAdminHandler_Lists(t *testing.T) {
	tests := []struct {
		name         string
		path         string
		expectedArgs []any
	}{
		{name: "users", path: "/users?search=bob&page=2&limit=5", expectedArgs: []any{"bob", 2, 5}},
		{name: "users defaults", path: "/users", expectedArgs: []any{"", 1, 10}},
		{name: "submissions", path: "/submissions?status=PENDING&dateRange=7", expectedArgs: []any{"PENDING", "7", 1, 10}},
		{name: "pickups", path: "/pickups?status=SCHEDULED", expectedArgs: []any{"SCHEDULED"}},
		{name: "report", path: "/report?page=3", expectedArgs: []any{3, 10}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockAdminService{}
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			w := httptest.NewRecorder()

			newAdminRouter(svc, &mockRewardCreator{}).ServeHTTP(w, req)

			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, tt.expectedArgs, svc.listArgs)
		})
	}
}

func TestAdminHandler_Dashboard(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	w := httptest.NewRecorder()

	newAdminRouter(&mockAdminService{}, &mockRewardCreator{}).ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, float64(4), body["totalUsers"])
	assert.NotNil(t, body["adminInformation"])
}

func TestAdminHandler_UpdateStatus(t *testing.T) {
	tests := []struct {
		name            string
		path            string
		body            string
		err             error
		expectedStatus  int
		expectedMessage string
	}{
		{name: "submission", path: "/submissions/5", body: `{"status":"APPROVED"}`, expectedStatus: http.StatusOK, expectedMessage: "Submission status updated successfully"},
		{name: "submission missing", path: "/submissions/5", body: `{"status":"APPROVED"}`, err: models.ErrNotFound, expectedStatus: http.StatusNotFound, expectedMessage: "Submission not found"},
		{name: "submission invalid status", path: "/submissions/5", body: `{"status":"DONE"}`, err: models.NewValidationError("Invalid status"), expectedStatus: http.StatusBadRequest, expectedMessage: "Invalid status"},
		{name: "pickup", path: "/pickups/8", body: `{"status":"COMPLETED"}`, expectedStatus: http.StatusOK, expectedMessage: "Pickup request status updated successfully"},
		{name: "pickup missing", path: "/pickups/8", body: `{"status":"COMPLETED"}`, err: models.ErrNotFound, expectedStatus: http.StatusNotFound, expectedMessage: "Pickup request not found"},
		{name: "invalid id", path: "/pickups/zero", body: `{"status":"COMPLETED"}`, expectedStatus: http.StatusBadRequest, expectedMessage: "Invalid id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockAdminService{err: tt.err}
			req := httptest.NewRequest(http.MethodPatch, tt.path, stringsReader(tt.body))
			w := httptest.NewRecorder()

			newAdminRouter(svc, &mockRewardCreator{}).ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, tt.expectedMessage, decodeBody(t, w)["message"])
		})
	}
}

func TestAdminHandler_CreateReward(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/rewards", jsonBody(t, models.CreateRewardRequest{Name: "Mug", Points: 300}))
		w := httptest.NewRecorder()

		newAdminRouter(&mockAdminService{}, &mockRewardCreator{}).ServeHTTP(w, req)

		require.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, "Reward created successfully", decodeBody(t, w)["message"])
	})

	t.Run("validation error", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/rewards", jsonBody(t, models.CreateRewardRequest{Name: "Mug"}))
		w := httptest.NewRecorder()

		newAdminRouter(&mockAdminService{}, &mockRewardCreator{err: models.NewValidationError("Reward points must be positive")}).ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Reward points must be positive", decodeBody(t, w)["message"])
	})
}
