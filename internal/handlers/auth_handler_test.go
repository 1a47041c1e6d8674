package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/recyclerewards/backend/internal/middleware"
	"github.com/recyclerewards/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// mockAuthService is a mock implementation of AuthService
type mockAuthService struct {
	user       *models.User
	token      string
	err        error
	signedOut  []string
	signoutErr error
}

func (m *mockAuthService) Signup(ctx context.Context, req *models.SignupRequest) (*models.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.user, nil
}

func (m *mockAuthService) Signin(ctx context.Context, req *models.SigninRequest) (*models.User, string, error) {
	if m.err != nil {
		return nil, "", m.err
	}
	return m.user, m.token, nil
}

func (m *mockAuthService) Signout(ctx context.Context, token string) error {
	if m.signoutErr != nil {
		return m.signoutErr
	}
	m.signedOut = append(m.signedOut, token)
	return nil
}

func newAuthRouter(svc *mockAuthService) http.Handler {
	h := NewAuthHandler(svc, zap.NewNop(), 24*time.Hour, true)
	return newTestRouter(nil, func(r chi.Router) { h.RegisterRoutes(r) })
}

func sessionCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range w.Result().Cookies() {
		if c.Name == middleware.SessionCookieName {
			return c
		}
	}
	t.Fatalf("cookie %q not set", middleware.SessionCookieName)
	return nil
}

func TestAuthHandler_Signup(t *testing.T) {
	tests := []struct {
		name            string
		body            string
		svcErr          error
		expectedStatus  int
		expectedMessage string
	}{
		{
			name:            "success",
			body:            `{"fullName":"Jane","email":"jane@example.com","password":"password123"}`,
			expectedStatus:  http.StatusCreated,
			expectedMessage: "User registered successfully",
		},
		{
			name:            "duplicate email",
			body:            `{"fullName":"Jane","email":"jane@example.com","password":"password123"}`,
			svcErr:          models.ErrEmailTaken,
			expectedStatus:  http.StatusBadRequest,
			expectedMessage: "User already exists",
		},
		{
			name:            "short password",
			body:            `{"fullName":"Jane","email":"jane@example.com","password":"short"}`,
			svcErr:          models.NewValidationError("Password must be at least 8 characters long"),
			expectedStatus:  http.StatusBadRequest,
			expectedMessage: "Password must be at least 8 characters long",
		},
		{
			name:            "malformed body",
			body:            `{`,
			expectedStatus:  http.StatusBadRequest,
			expectedMessage: "Invalid request body",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockAuthService{user: &models.User{ID: 1, Email: "jane@example.com", Role: models.RoleUser}, err: tt.svcErr}
			req := httptest.NewRequest(http.MethodPost, "/auth/signup", stringsReader(tt.body))
			w := httptest.NewRecorder()

			newAuthRouter(svc).ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, tt.expectedMessage, decodeBody(t, w)["message"])
		})
	}
}

func TestAuthHandler_Signin(t *testing.T) {
	t.Run("sets session cookie", func(t *testing.T) {
		svc := &mockAuthService{user: &models.User{ID: 1, Email: "jane@example.com", PasswordHash: "secret-hash"}, token: "tok-123"}
		req := httptest.NewRequest(http.MethodPost, "/auth/signin", stringsReader(`{"email":"jane@example.com","password":"password123"}`))
		w := httptest.NewRecorder()

		newAuthRouter(svc).ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		cookie := sessionCookie(t, w)
		assert.Equal(t, "tok-123", cookie.Value)
		assert.True(t, cookie.HttpOnly)
		assert.True(t, cookie.Secure)
		assert.Equal(t, "/", cookie.Path)
		assert.Equal(t, 86400, cookie.MaxAge)
		assert.Equal(t, http.SameSiteLaxMode, cookie.SameSite)
		assert.NotContains(t, w.Body.String(), "secret-hash")
	})

	t.Run("invalid credentials", func(t *testing.T) {
		svc := &mockAuthService{err: models.ErrInvalidCredentials}
		req := httptest.NewRequest(http.MethodPost, "/auth/signin", stringsReader(`{"email":"jane@example.com","password":"nope"}`))
		w := httptest.NewRecorder()

		newAuthRouter(svc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "Invalid credentials", decodeBody(t, w)["message"])
		assert.Empty(t, w.Result().Cookies())
	})
}

func TestAuthHandler_Signout(t *testing.T) {
	t.Run("clears session cookie", func(t *testing.T) {
		svc := &mockAuthService{}
		req := httptest.NewRequest(http.MethodPost, "/auth/signout", nil)
		req.AddCookie(&http.Cookie{Name: middleware.SessionCookieName, Value: "tok-123"})
		w := httptest.NewRecorder()

		newAuthRouter(svc).ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, []string{"tok-123"}, svc.signedOut)
		cookie := sessionCookie(t, w)
		assert.Empty(t, cookie.Value)
		assert.Equal(t, -1, cookie.MaxAge)
		assert.Equal(t, "Logout successful", decodeBody(t, w)["message"])
	})

	t.Run("no cookie", func(t *testing.T) {
		svc := &mockAuthService{}
		req := httptest.NewRequest(http.MethodPost, "/auth/signout", nil)
		w := httptest.NewRecorder()

		newAuthRouter(svc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "No active session", decodeBody(t, w)["message"])
		assert.Empty(t, svc.signedOut)
	})

	t.Run("storage error", func(t *testing.T) {
		svc := &mockAuthService{signoutErr: errors.New("db down")}
		req := httptest.NewRequest(http.MethodPost, "/auth/signout", nil)
		req.AddCookie(&http.Cookie{Name: middleware.SessionCookieName, Value: "tok-123"})
		w := httptest.NewRecorder()

		newAuthRouter(svc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}
