package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// SessionPurger is the part of the session manager that removes expired sessions
type SessionPurger interface {
	// Method PurgeExpired deletes every expired session and returns how many were removed.
	PurgeExpired(ctx context.Context) (int, error)
}

// SessionCleaningHandler handles session cleaning requests
type SessionCleaningHandler struct {
	BaseHandler
	purger SessionPurger
}

// NewSessionCleaningHandler creates a new session cleaning handler
func NewSessionCleaningHandler(purger SessionPurger, logger *zap.Logger) *SessionCleaningHandler {
	return &SessionCleaningHandler{
		BaseHandler: BaseHandler{Logger: logger},
		purger:      purger,
	}
}

// RegisterRoutes registers session cleaning handler routes
// Note: This assumes the router already checks the API key
func (h *SessionCleaningHandler) RegisterRoutes(r chi.Router) {
	r.Get("/sessions/clean", h.CleanSessions)
}

// CleanSessions handles GET /sessions/clean
// @Summary Clean expired sessions
// @Description Removes all sessions past their expiry time
// @Tags sessions
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} map[string]any "Session cleaning completed successfully"
// @Failure 401 {object} map[string]string "Invalid API key"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /sessions/clean [get]
func (h *SessionCleaningHandler) CleanSessions(w http.ResponseWriter, r *http.Request) {
	deletedCount, err := h.purger.PurgeExpired(r.Context())
	if err != nil {
		h.RespondServiceError(w, r, err, "Session not found")
		return
	}

	// 0 deleted rows is not an error
	h.Logger.Info("session cleaning completed successfully", zap.Int("deletedCount", deletedCount))
	h.RespondJSON(w, http.StatusOK, map[string]any{
		"message":      "Session cleaning completed successfully",
		"deletedCount": deletedCount,
	})
}
