package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/recyclerewards/backend/internal/models"
	"go.uber.org/zap"
)

// SessionRepository is the interface that wraps methods for Session table data access
type SessionRepository interface {
	// Method Create inserts a new session into the database.
	//
	// "session" parameter is used to create a new session.
	//
	// If some error occurs during session creation, the error will be returned.
	Create(ctx context.Context, session *models.Session) error
	// Method GetByToken retrieves a session by token string.
	//
	// "token" parameter is used to retrieve a session by token string.
	//
	// If session with such token does not exist, models.ErrSessionNotFound will be returned together with "nil" value.
	GetByToken(ctx context.Context, token string) (*models.Session, error)
	// Method DeleteByToken deletes a session by token string.
	//
	// "token" parameter is used to delete a session by token string.
	//
	// Deleting a missing session is not an error.
	DeleteByToken(ctx context.Context, token string) error
	// Method DeleteExpired deletes all sessions that expire at or before "now".
	//
	// Returns the number of deleted sessions.
	DeleteExpired(ctx context.Context, now time.Time) (int, error)
}

// SessionUserRepository is the interface that wraps the user lookup needed to resolve a session
type SessionUserRepository interface {
	// Method GetByID retrieves a user by ID.
	//
	// "id" parameter is used to retrieve a user by ID.
	//
	// If user with such ID does not exist, an error wrapping models.ErrNotFound will be returned together with "nil" value.
	GetByID(ctx context.Context, id int) (*models.User, error)
}

// sessionManager creates, resolves and destroys opaque session tokens
type sessionManager struct {
	sessionRepo SessionRepository
	userRepo    SessionUserRepository
	ttl         time.Duration
	logger      *zap.Logger
	now         func() time.Time
}

// NewSessionManager creates a new session manager issuing sessions that live for ttl
func NewSessionManager(sessionRepo SessionRepository, userRepo SessionUserRepository, ttl time.Duration, logger *zap.Logger) *sessionManager {
	return &sessionManager{
		sessionRepo: sessionRepo,
		userRepo:    userRepo,
		ttl:         ttl,
		logger:      logger,
		now:         time.Now,
	}
}

// CreateSession stores a new session for the user and returns its token
func (m *sessionManager) CreateSession(ctx context.Context, userID int) (string, error) {
	// uuid.NewRandom reads from crypto/rand
	token, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("failed to generate session token: %w", err)
	}

	session := &models.Session{
		Token:     token.String(),
		UserID:    userID,
		ExpiresAt: m.now().Add(m.ttl),
	}
	if err := m.sessionRepo.Create(ctx, session); err != nil {
		return "", fmt.Errorf("failed to save session: %w", err)
	}

	return session.Token, nil
}

// ResolveSession returns the current state of the user owning the token.
// An expired session is deleted and reported as models.ErrSessionNotFound,
// as is a session whose user no longer exists.
func (m *sessionManager) ResolveSession(ctx context.Context, token string) (*models.User, error) {
	if token == "" {
		return nil, models.ErrSessionNotFound
	}

	session, err := m.sessionRepo.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, models.ErrSessionNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	if session.Expired(m.now()) {
		if err := m.sessionRepo.DeleteByToken(ctx, token); err != nil {
			return nil, fmt.Errorf("failed to delete expired session: %w", err)
		}
		m.logger.Debug("expired session removed", zap.Int("userId", session.UserID))
		return nil, models.ErrSessionNotFound
	}

	user, err := m.userRepo.GetByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to get session user: %w", err)
	}

	return user, nil
}

// DestroySession deletes the session; destroying an unknown token succeeds
func (m *sessionManager) DestroySession(ctx context.Context, token string) error {
	if err := m.sessionRepo.DeleteByToken(ctx, token); err != nil {
		return fmt.Errorf("failed to destroy session: %w", err)
	}
	return nil
}

// PurgeExpired deletes every expired session and returns how many were removed
func (m *sessionManager) PurgeExpired(ctx context.Context) (int, error) {
	count, err := m.sessionRepo.DeleteExpired(ctx, m.now())
	if err != nil {
		return 0, fmt.Errorf("failed to purge expired sessions: %w", err)
	}
	return count, nil
}
