package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/recyclerewards/backend/internal/models"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// UserRepository is the interface that wraps methods for User table data access used by authentication
type UserRepository interface {
	// Method Create inserts a new user into the database.
	//
	// "user" parameter is used to create a new user. On success its ID is set.
	//
	// If the email is already registered, models.ErrEmailTaken will be returned.
	Create(ctx context.Context, user *models.User) error
	// Method GetByEmail retrieves a user by email.
	//
	// "email" parameter is used to retrieve a user by email.
	//
	// If user with such email does not exist, an error wrapping models.ErrNotFound will be returned together with "nil" value.
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	// Method ExistsByEmail checks if a user with such email exists.
	//
	// "email" parameter is used to check if a user with such email exists.
	//
	// If some error occurs during check, the error will be returned together with "false" value.
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// SessionStore is the part of the session manager used on sign-in and sign-out
type SessionStore interface {
	CreateSession(ctx context.Context, userID int) (string, error)
	DestroySession(ctx context.Context, token string) error
}

// authService implements sign-up, sign-in and sign-out
type authService struct {
	userRepo UserRepository
	sessions SessionStore
	logger   *zap.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo UserRepository, sessions SessionStore, logger *zap.Logger) *authService {
	return &authService{
		userRepo: userRepo,
		sessions: sessions,
		logger:   logger,
	}
}

// Signup creates a new account with the USER role
func (s *authService) Signup(ctx context.Context, req *models.SignupRequest) (*models.User, error) {
	fullName := strings.TrimSpace(req.FullName)
	if fullName == "" || strings.TrimSpace(req.Email) == "" || req.Password == "" {
		return nil, models.NewValidationError("All fields are required")
	}

	email, err := normalizeEmail(req.Email)
	if err != nil {
		return nil, err
	}

	exists, err := s.userRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return nil, models.ErrEmailTaken
	}

	passwordHash, err := hashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		FullName:     fullName,
		Email:        email,
		PasswordHash: passwordHash,
		Role:         models.RoleUser,
	}
	// A concurrent sign-up with the same email is still caught by the unique key
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("user signed up", zap.Int("userId", user.ID))
	return user, nil
}

// Signin verifies the credentials and starts a new session.
// Returns the user and the session token.
func (s *authService) Signin(ctx context.Context, req *models.SigninRequest) (*models.User, string, error) {
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		return nil, "", models.NewValidationError("Email and password are required")
	}

	user, err := s.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, "", models.ErrInvalidCredentials
		}
		return nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, "", models.ErrInvalidCredentials
	}

	token, err := s.sessions.CreateSession(ctx, user.ID)
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}

// Signout ends the session identified by token
func (s *authService) Signout(ctx context.Context, token string) error {
	return s.sessions.DestroySession(ctx, token)
}

// EnsureAdmin creates the administrator account when it does not exist yet.
// An empty email disables the bootstrap.
func (s *authService) EnsureAdmin(ctx context.Context, email, password string) error {
	if email == "" {
		return nil
	}

	normalized, err := normalizeEmail(email)
	if err != nil {
		return fmt.Errorf("invalid admin email: %w", err)
	}

	exists, err := s.userRepo.ExistsByEmail(ctx, normalized)
	if err != nil {
		return fmt.Errorf("failed to check admin email: %w", err)
	}
	if exists {
		return nil
	}

	passwordHash, err := hashPassword(password)
	if err != nil {
		return fmt.Errorf("invalid admin password: %w", err)
	}

	admin := &models.User{
		FullName:     "Administrator",
		Email:        normalized,
		PasswordHash: passwordHash,
		Role:         models.RoleAdmin,
	}
	if err := s.userRepo.Create(ctx, admin); err != nil {
		return fmt.Errorf("failed to create admin: %w", err)
	}

	s.logger.Info("administrator account created", zap.String("email", normalized))
	return nil
}
