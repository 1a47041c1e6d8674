package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/recyclerewards/backend/internal/models"
	"github.com/recyclerewards/backend/internal/services"
	"go.uber.org/zap"
)

// ProfileService is the interface that wraps methods for profile business logic
type ProfileService interface {
	// GetProfile retrieves the user profile
	//
	// "userID" parameter is used to identify the user.
	//
	// If user with such ID does not exist, an error wrapping models.ErrNotFound will be returned together with "nil" value.
	GetProfile(ctx context.Context, userID int) (*models.User, error)
	// UpdateProfile applies the non-empty fields of "req" and an optional new profile image
	//
	// "userID" parameter is used to identify the user.
	// "req" parameter contains the profile fields to change.
	// "image" parameter is an optional new profile image, "nil" keeps the current one.
	//
	// If some error occurs during profile update, the error will be returned together with "nil" value.
	UpdateProfile(ctx context.Context, userID int, req *models.UpdateProfileRequest, image *services.ImageUpload) (*models.User, error)
}

// ProfileHandler handles profile HTTP requests
type ProfileHandler struct {
	BaseHandler
	profileService ProfileService
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(profileService ProfileService, logger *zap.Logger) *ProfileHandler {
	return &ProfileHandler{
		BaseHandler:    BaseHandler{Logger: logger},
		profileService: profileService,
	}
}

// RegisterRoutes registers all profile handler routes
// Note: This assumes the router already requires a session
func (h *ProfileHandler) RegisterRoutes(r chi.Router) {
	r.Get("/profile", h.GetProfile)
	r.Put("/profile", h.UpdateProfile)
}

// RegisterAdminRoutes registers the administrator profile route
// Note: This assumes the router is scoped to /admin and already requires the ADMIN role
func (h *ProfileHandler) RegisterAdminRoutes(r chi.Router) {
	r.Put("/profile", h.UpdateProfile)
}

// GetProfile handles GET /profile
// @Summary Get user profile
// @Description Get the profile of the signed-in user
// @Tags profile
// @Produce json
// @Success 200 {object} map[string]any "User profile"
// @Failure 401 {object} map[string]string "Unauthorized or session expired"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /profile [get]
func (h *ProfileHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	current, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	user, err := h.profileService.GetProfile(r.Context(), current.ID)
	if err != nil {
		h.RespondServiceError(w, r, err, "User not found")
		return
	}

	h.RespondJSON(w, http.StatusOK, map[string]any{"user": user})
}

// UpdateProfile handles PUT /profile and PUT /admin/profile
// @Summary Update user profile
// @Description Update profile fields of the signed-in user. Empty fields keep their value. The image must not exceed 2MB.
// @Tags profile
// @Accept multipart/form-data
// @Produce json
// @Param fullName formData string false "Full name"
// @Param email formData string false "Email"
// @Param phoneNumber formData string false "Phone number"
// @Param address formData string false "Address"
// @Param password formData string false "New password"
// @Param image formData file false "Profile image"
// @Success 200 {object} map[string]any "Profile updated successfully"
// @Failure 400 {object} map[string]string "Invalid input or file too large"
// @Failure 401 {object} map[string]string "Unauthorized or session expired"
// @Failure 500 {object} map[string]string "Internal server error or image upload failure"
// @Router /profile [put]
func (h *ProfileHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	current, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	image, closeImage, ok := h.parseImageForm(w, r, "image")
	if !ok {
		return
	}
	defer closeImage()

	req := &models.UpdateProfileRequest{
		FullName:    r.FormValue("fullName"),
		Email:       r.FormValue("email"),
		PhoneNumber: r.FormValue("phoneNumber"),
		Address:     r.FormValue("address"),
		Password:    r.FormValue("password"),
	}

	user, err := h.profileService.UpdateProfile(r.Context(), current.ID, req, image)
	if err != nil {
		h.RespondServiceError(w, r, err, "User not found")
		return
	}

	h.RespondJSON(w, http.StatusOK, map[string]any{
		"message": "Profile updated successfully",
		"user":    user,
	})
}
