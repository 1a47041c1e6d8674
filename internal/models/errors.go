package models

import "errors"

// Errors shared by repositories, services and handlers.
// Handlers map them to HTTP statuses with errors.Is.
var (
	ErrUnauthorized       = errors.New("unauthorized")
	ErrSessionExpired     = errors.New("session expired")
	ErrSessionNotFound    = errors.New("session not found")
	ErrValidation         = errors.New("validation error")
	ErrNotFound           = errors.New("not found")
	ErrRewardNotFound     = errors.New("reward not found")
	ErrInsufficientPoints = errors.New("insufficient points")
	ErrTransactionFailure = errors.New("transaction failed")
	ErrUpstreamService    = errors.New("upstream service error")
	ErrEmailTaken         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrFileTooLarge       = errors.New("file size exceeds 2MB")
)

// ValidationError carries a message that is safe to show to the client
type ValidationError struct {
	Message string
}

// NewValidationError creates a ValidationError with the given message
func NewValidationError(message string) error {
	return &ValidationError{Message: message}
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Is makes errors.Is(err, ErrValidation) match any ValidationError
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
