package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/recyclerewards/backend/internal/models"
	"go.uber.org/zap"
)

// SessionCookieName is the cookie carrying the opaque session token
const SessionCookieName = "uid"

// SessionResolver resolves a session token to the user owning it.
//
// Implementations return models.ErrSessionNotFound when the token is unknown or expired.
type SessionResolver interface {
	ResolveSession(ctx context.Context, token string) (*models.User, error)
}

// SessionMiddleware requires a valid session cookie and stores the resolved user in the request context
//
// A missing cookie is rejected as "Unauthorized", a cookie that does not resolve as "Session expired".
func SessionMiddleware(resolver SessionResolver, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(SessionCookieName)
			if err != nil || cookie.Value == "" {
				writeMessage(w, http.StatusUnauthorized, "Unauthorized")
				return
			}

			user, err := resolver.ResolveSession(r.Context(), cookie.Value)
			if errors.Is(err, models.ErrSessionNotFound) {
				writeMessage(w, http.StatusUnauthorized, "Session expired")
				return
			}
			if err != nil {
				logger.Error("failed to resolve session",
					zap.String("request_id", GetRequestID(r.Context())),
					zap.Error(err),
				)
				writeMessage(w, http.StatusInternalServerError, "internal server error")
				return
			}

			ctx := context.WithValue(r.Context(), userKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUser retrieves the authenticated user from context
func GetUser(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(userKey).(*models.User)
	return user, ok && user != nil
}

// WithUser returns a copy of ctx carrying the given user
func WithUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

// writeMessage writes a {"message": ...} JSON body with the given status
func writeMessage(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"message": message})
}
