// Package handlers implements the HTTP API on top of the services
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/recyclerewards/backend/internal/middleware"
	"github.com/recyclerewards/backend/internal/models"
	"go.uber.org/zap"
)

// BaseHandler provides common handler functionality
type BaseHandler struct {
	Logger *zap.Logger
}

// RespondJSON sends a JSON response
func (h *BaseHandler) RespondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.Logger.Error("failed to encode JSON response", zap.Error(err))
	}
}

// RespondError sends an error JSON response
func (h *BaseHandler) RespondError(w http.ResponseWriter, status int, message string) {
	h.RespondJSON(w, status, map[string]string{"message": message})
}

// RespondServiceError maps a service error to a status and a client-safe message.
// notFound is the message used for models.ErrNotFound.
func (h *BaseHandler) RespondServiceError(w http.ResponseWriter, r *http.Request, err error, notFound string) {
	status, message := errorStatus(err, notFound)
	if status >= http.StatusInternalServerError {
		h.Logger.Error("request failed",
			zap.String("request_id", middleware.GetRequestID(r.Context())),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
	} else {
		h.Logger.Debug("request rejected",
			zap.String("request_id", middleware.GetRequestID(r.Context())),
			zap.Int("status", status),
			zap.Error(err),
		)
	}
	h.RespondError(w, status, message)
}

// errorStatus chooses the HTTP status and message for err
func errorStatus(err error, notFound string) (int, string) {
	var validationErr *models.ValidationError
	switch {
	case errors.As(err, &validationErr):
		return http.StatusBadRequest, validationErr.Message
	case errors.Is(err, models.ErrValidation):
		return http.StatusBadRequest, "Invalid request"
	case errors.Is(err, models.ErrFileTooLarge):
		return http.StatusBadRequest, "File size exceeds 2MB"
	case errors.Is(err, models.ErrUpstreamService):
		return http.StatusInternalServerError, "Error uploading image"
	case errors.Is(err, models.ErrEmailTaken):
		return http.StatusBadRequest, "User already exists"
	case errors.Is(err, models.ErrInvalidCredentials):
		return http.StatusUnauthorized, "Invalid credentials"
	case errors.Is(err, models.ErrInsufficientPoints):
		return http.StatusBadRequest, "Insufficient points"
	case errors.Is(err, models.ErrRewardNotFound):
		return http.StatusNotFound, "Reward not found"
	case errors.Is(err, models.ErrNotFound):
		return http.StatusNotFound, notFound
	case errors.Is(err, models.ErrSessionNotFound), errors.Is(err, models.ErrSessionExpired):
		return http.StatusUnauthorized, "Session expired"
	case errors.Is(err, models.ErrUnauthorized):
		return http.StatusUnauthorized, "Unauthorized"
	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}

// currentUser returns the user stored by the session middleware, responding 401 when it is missing
func (h *BaseHandler) currentUser(w http.ResponseWriter, r *http.Request) (*models.User, bool) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		h.Logger.Error("user not found in context")
		h.RespondError(w, http.StatusUnauthorized, "Unauthorized")
		return nil, false
	}
	return user, true
}

// idParam parses a positive integer URL parameter, responding 400 when it is invalid
func (h *BaseHandler) idParam(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, name))
	if err != nil || id <= 0 {
		h.RespondError(w, http.StatusBadRequest, "Invalid "+name)
		return 0, false
	}
	return id, true
}

// queryInt reads an integer query parameter, returning def when it is absent or malformed
func queryInt(r *http.Request, name string, def int) int {
	value, err := strconv.Atoi(r.URL.Query().Get(name))
	if err != nil {
		return def
	}
	return value
}
