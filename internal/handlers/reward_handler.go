package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/recyclerewards/backend/internal/models"
	"go.uber.org/zap"
)

// RewardLedger is the part of the points ledger that spends points on rewards
type RewardLedger interface {
	// Method Redeem spends the reward cost from the user's balance in one transaction.
	//
	// Returns the redemption and the remaining balance. Fails with models.ErrRewardNotFound
	// or models.ErrInsufficientPoints, in which case the balance is unchanged.
	Redeem(ctx context.Context, userID, rewardID int) (*models.Redemption, int, error)
	// Method Balance returns the current points of the user.
	Balance(ctx context.Context, userID int) (int, error)
	// Method History returns the redemptions of the user.
	History(ctx context.Context, userID int) ([]models.RedemptionHistoryItem, error)
	// Method Catalog returns all rewards.
	Catalog(ctx context.Context) ([]models.Reward, error)
}

// RewardHandler handles reward catalog and redemption HTTP requests
type RewardHandler struct {
	BaseHandler
	ledger RewardLedger
}

// NewRewardHandler creates a new reward handler
func NewRewardHandler(ledger RewardLedger, logger *zap.Logger) *RewardHandler {
	return &RewardHandler{
		BaseHandler: BaseHandler{Logger: logger},
		ledger:      ledger,
	}
}

// RegisterRoutes registers all reward handler routes
// Note: This assumes the router already requires a session
func (h *RewardHandler) RegisterRoutes(r chi.Router) {
	r.Route("/rewards", func(r chi.Router) {
		r.Get("/", h.Catalog)
		r.Get("/points", h.Points)
		r.Get("/history", h.History)
		r.Post("/redeem", h.Redeem)
	})
}

// Catalog handles GET /rewards
// @Summary List rewards
// @Tags rewards
// @Produce json
// @Success 200 {object} map[string]any "Reward catalog"
// @Failure 401 {object} map[string]string "Unauthorized or session expired"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /rewards [get]
func (h *RewardHandler) Catalog(w http.ResponseWriter, r *http.Request) {
	rewards, err := h.ledger.Catalog(r.Context())
	if err != nil {
		h.RespondServiceError(w, r, err, "Reward not found")
		return
	}

	h.RespondJSON(w, http.StatusOK, map[string]any{"rewards": rewards})
}

// Points handles GET /rewards/points
// @Summary Get points balance
// @Tags rewards
// @Produce json
// @Success 200 {object} map[string]int "Current balance"
// @Failure 401 {object} map[string]string "Unauthorized or session expired"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /rewards/points [get]
func (h *RewardHandler) Points(w http.ResponseWriter, r *http.Request) {
	user, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	points, err := h.ledger.Balance(r.Context(), user.ID)
	if err != nil {
		h.RespondServiceError(w, r, err, "User not found")
		return
	}

	h.RespondJSON(w, http.StatusOK, map[string]int{"points": points})
}

// History handles GET /rewards/history
// @Summary Redemption history
// @Tags rewards
// @Produce json
// @Success 200 {object} map[string]any "Redemptions of the signed-in user"
// @Failure 401 {object} map[string]string "Unauthorized or session expired"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /rewards/history [get]
func (h *RewardHandler) History(w http.ResponseWriter, r *http.Request) {
	user, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	history, err := h.ledger.History(r.Context(), user.ID)
	if err != nil {
		h.RespondServiceError(w, r, err, "User not found")
		return
	}

	h.RespondJSON(w, http.StatusOK, map[string]any{"history": history})
}

// Redeem handles POST /rewards/redeem
// @Summary Redeem a reward
// @Description Spend points on a reward. The balance is checked and debited in one transaction.
// @Tags rewards
// @Accept json
// @Produce json
// @Param request body models.RedeemRequest true "Reward to redeem"
// @Success 200 {object} map[string]any "Remaining points"
// @Failure 400 {object} map[string]string "Invalid input or insufficient points"
// @Failure 401 {object} map[string]string "Unauthorized or session expired"
// @Failure 404 {object} map[string]string "Reward not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /rewards/redeem [post]
func (h *RewardHandler) Redeem(w http.ResponseWriter, r *http.Request) {
	user, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	var req models.RedeemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	redemption, remaining, err := h.ledger.Redeem(r.Context(), user.ID, req.RewardID)
	if err != nil {
		h.RespondServiceError(w, r, err, "User not found")
		return
	}

	h.RespondJSON(w, http.StatusOK, map[string]any{
		"message":    "Reward redeemed successfully",
		"points":     remaining,
		"redemption": redemption,
	})
}
