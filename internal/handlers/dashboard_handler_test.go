package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/recyclerewards/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

// mockDashboardService is a mock implementation of DashboardService
type mockDashboardService struct {
	dashboard *models.UserDashboard
	err       error
	user      *models.User
}

func (m *mockDashboardService) UserDashboard(ctx context.Context, user *models.User) (*models.UserDashboard, error) {
	m.user = user
	return m.dashboard, m.err
}

func TestDashboardHandler_GetDashboard(t *testing.T) {
	tests := []struct {
		name           string
		user           *models.User
		svc            *mockDashboardService
		expectedStatus int
		validate       func(*testing.T, map[string]any)
	}{
		{
			name: "success",
			user: &models.User{ID: 4, FullName: "Jane"},
			svc: &mockDashboardService{dashboard: &models.UserDashboard{
				TotalRecycled: 4,
				RewardPoints:  450,
				CO2Saved:      10,
				User:          &models.User{ID: 4, FullName: "Jane"},
			}},
			expectedStatus: http.StatusOK,
			validate: func(t *testing.T, body map[string]any) {
				assert.Equal(t, float64(4), body["totalRecycled"])
				assert.Equal(t, float64(450), body["rewardPoints"])
				assert.Equal(t, float64(10), body["co2Saved"])
				assert.Nil(t, body["nextPickup"])
				assert.Equal(t, "Jane", body["systemUser"].(map[string]any)["fullName"])
			},
		},
		{
			name:           "service error",
			user:           &models.User{ID: 4},
			svc:            &mockDashboardService{err: errors.New("db down")},
			expectedStatus: http.StatusInternalServerError,
			validate: func(t *testing.T, body map[string]any) {
				assert.Equal(t, "Internal server error", body["message"])
			},
		},
		{
			name:           "no session",
			svc:            &mockDashboardService{},
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewDashboardHandler(tt.svc, zap.NewNop())
			router := newTestRouter(tt.user, func(r chi.Router) { h.RegisterRoutes(r) })
			w := httptest.NewRecorder()

			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/dashboard", nil))

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.validate != nil {
				tt.validate(t, decodeBody(t, w))
			}
			if tt.user != nil {
				assert.Equal(t, tt.user.ID, tt.svc.user.ID)
			}
		})
	}
}
