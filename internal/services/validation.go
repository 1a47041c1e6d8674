package services

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/recyclerewards/backend/internal/models"
	"golang.org/x/crypto/bcrypt"
)

// emailRegex validates email format
var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// Accepted password length in bytes; bcrypt refuses anything past 72
const (
	minPasswordLength = 8
	maxPasswordLength = 72
)

// normalizeEmail trims and lower-cases an email, validating its format
func normalizeEmail(email string) (string, error) {
	normalized := strings.ToLower(strings.TrimSpace(email))
	if !emailRegex.MatchString(normalized) {
		return "", models.NewValidationError("Invalid email format")
	}
	return normalized, nil
}

// hashPassword validates the password length and returns its bcrypt hash
func hashPassword(password string) (string, error) {
	if len(password) < minPasswordLength {
		return "", models.NewValidationError("Password must be at least 8 characters long")
	}
	if len(password) > maxPasswordLength {
		return "", models.NewValidationError("Password must be at most 72 bytes long")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// parseDays converts a date range query value into a number of days.
// Empty and "all" mean no limit (0); any other value must be one of allowed.
func parseDays(value string, allowed ...int) (int, error) {
	if value == "" || value == "all" {
		return 0, nil
	}
	days, err := strconv.Atoi(value)
	if err == nil {
		for _, a := range allowed {
			if days == a {
				return days, nil
			}
		}
	}
	return 0, models.NewValidationError("Invalid date range")
}

// Page size bounds for paginated admin lists
const (
	defaultPageLimit = 10
	maxPageLimit     = 100
)

// normalizePage clamps page and limit to usable values
func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	return page, limit
}
