package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/recyclerewards/backend/internal/models"
	"go.uber.org/zap"
)

// PickupService is the interface that wraps methods for a user's pickup requests
type PickupService interface {
	// CreatePickup schedules a pickup for the user.
	//
	// If the address is empty or the date is not in the future, a models.ValidationError will be returned.
	CreatePickup(ctx context.Context, userID int, req *models.CreatePickupRequest) (*models.PickupRequest, error)
	// ListPickups returns the pickup requests of the user.
	ListPickups(ctx context.Context, userID int) ([]models.PickupRequest, error)
}

// PickupHandler handles pickup request HTTP requests
type PickupHandler struct {
	BaseHandler
	pickupService PickupService
}

// NewPickupHandler creates a new pickup handler
func NewPickupHandler(pickupService PickupService, logger *zap.Logger) *PickupHandler {
	return &PickupHandler{
		BaseHandler:   BaseHandler{Logger: logger},
		pickupService: pickupService,
	}
}

// RegisterRoutes registers all pickup handler routes
// Note: This assumes the router already requires a session
func (h *PickupHandler) RegisterRoutes(r chi.Router) {
	r.Route("/pickups", func(r chi.Router) {
		r.Get("/", h.ListPickups)
		r.Post("/", h.CreatePickup)
	})
}

// ListPickups handles GET /pickups
// @Summary List own pickup requests
// @Tags pickups
// @Produce json
// @Success 200 {object} map[string]any "Pickup requests"
// @Failure 401 {object} map[string]string "Unauthorized or session expired"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /pickups [get]
func (h *PickupHandler) ListPickups(w http.ResponseWriter, r *http.Request) {
	user, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	pickups, err := h.pickupService.ListPickups(r.Context(), user.ID)
	if err != nil {
		h.RespondServiceError(w, r, err, "Pickup request not found")
		return
	}

	h.RespondJSON(w, http.StatusOK, map[string]any{"pickups": pickups})
}

// CreatePickup handles POST /pickups
// @Summary Request a pickup
// @Tags pickups
// @Accept json
// @Produce json
// @Param request body models.CreatePickupRequest true "Pickup date (RFC 3339) and address"
// @Success 201 {object} map[string]any "Pickup request created successfully"
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized or session expired"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /pickups [post]
func (h *PickupHandler) CreatePickup(w http.ResponseWriter, r *http.Request) {
	user, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	var req models.CreatePickupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	pickup, err := h.pickupService.CreatePickup(r.Context(), user.ID, &req)
	if err != nil {
		h.RespondServiceError(w, r, err, "Pickup request not found")
		return
	}

	h.RespondJSON(w, http.StatusCreated, map[string]any{
		"message": "Pickup request created successfully",
		"pickup":  pickup,
	})
}
