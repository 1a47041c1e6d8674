package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/recyclerewards/backend/internal/middleware"
	"github.com/recyclerewards/backend/internal/models"
	"go.uber.org/zap"
)

// AuthService is the interface that wraps methods for authentication business logic.
type AuthService interface {
	// Method Signup validates the request and creates a user with the USER role.
	//
	// "req" parameter contains full name, email and password.
	//
	// If the input is invalid a models.ValidationError is returned, if the email is registered models.ErrEmailTaken.
	Signup(ctx context.Context, req *models.SignupRequest) (*models.User, error)
	// Method Signin verifies the credentials and starts a session.
	//
	// "req" parameter contains email and password.
	//
	// Returns the user and the session token, or models.ErrInvalidCredentials.
	Signin(ctx context.Context, req *models.SigninRequest) (*models.User, string, error)
	// Method Signout destroys the session identified by "token".
	Signout(ctx context.Context, token string) error
}

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	BaseHandler
	authService  AuthService
	sessionTTL   time.Duration
	cookieSecure bool
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(
	authService AuthService,
	logger *zap.Logger,
	sessionTTL time.Duration,
	cookieSecure bool,
) *AuthHandler {
	return &AuthHandler{
		BaseHandler:  BaseHandler{Logger: logger},
		authService:  authService,
		sessionTTL:   sessionTTL,
		cookieSecure: cookieSecure,
	}
}

// RegisterRoutes registers all auth handler routes
// Note: This assumes the router is already scoped to /api/v1
func (h *AuthHandler) RegisterRoutes(r chi.Router) {
	r.Route("/auth", func(r chi.Router) {
		r.Post("/signup", h.Signup)
		r.Post("/signin", h.Signin)
		r.Post("/signout", h.Signout)
	})
}

// Signup handles POST /auth/signup
// @Summary Register a new user
// @Description Create an account with the USER role. The password must be at least 8 characters long.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.SignupRequest true "Signup request"
// @Success 201 {object} map[string]any "User registered successfully"
// @Failure 400 {object} map[string]string "Invalid input or user already exists"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /auth/signup [post]
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req models.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := h.authService.Signup(r.Context(), &req)
	if err != nil {
		h.RespondServiceError(w, r, err, "User not found")
		return
	}

	h.RespondJSON(w, http.StatusCreated, map[string]any{
		"message": "User registered successfully",
		"user":    user,
	})
}

// Signin handles POST /auth/signin
// @Summary Sign in
// @Description Verify email and password and start a session. The session token is returned in the HTTP-only "uid" cookie.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.SigninRequest true "Signin request"
// @Success 200 {object} map[string]any "Login successful"
// @Failure 400 {object} map[string]string "Invalid request body"
// @Failure 401 {object} map[string]string "Invalid credentials"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /auth/signin [post]
func (h *AuthHandler) Signin(w http.ResponseWriter, r *http.Request) {
	var req models.SigninRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, token, err := h.authService.Signin(r.Context(), &req)
	if err != nil {
		h.RespondServiceError(w, r, err, "Invalid credentials")
		return
	}

	h.setSessionCookie(w, token, int(h.sessionTTL.Seconds()))

	h.RespondJSON(w, http.StatusOK, map[string]any{
		"message": "Login successful",
		"user":    user,
	})
}

// Signout handles POST /auth/signout
// @Summary Sign out
// @Description Destroy the current session and clear the "uid" cookie
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]string "Logout successful"
// @Failure 401 {object} map[string]string "No active session"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /auth/signout [post]
func (h *AuthHandler) Signout(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(middleware.SessionCookieName)
	if err != nil || cookie.Value == "" {
		h.RespondError(w, http.StatusUnauthorized, "No active session")
		return
	}

	if err := h.authService.Signout(r.Context(), cookie.Value); err != nil {
		h.RespondServiceError(w, r, err, "No active session")
		return
	}

	h.setSessionCookie(w, "", -1)
	h.RespondJSON(w, http.StatusOK, map[string]string{"message": "Logout successful"})
}

// setSessionCookie writes the session cookie; a negative maxAge deletes it
func (h *AuthHandler) setSessionCookie(w http.ResponseWriter, token string, maxAge int) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}
