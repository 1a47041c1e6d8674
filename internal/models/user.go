package models

import "time"

// Role represents the user's access level
type Role string

// Role constants
const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// Valid reports whether the role is one of the known roles
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleAdmin:
		return true
	default:
		return false
	}
}

// User represents a user in the system
type User struct {
	ID           int       `json:"id"`
	FullName     string    `json:"fullName"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Never serialize password hash
	Role         Role      `json:"role"`
	Points       int       `json:"points"`
	PhoneNumber  string    `json:"phoneNumber"`
	Address      string    `json:"address"`
	ImageURL     string    `json:"imageUrl"`
	ImageID      string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

// SignupRequest represents a request to create a new account
type SignupRequest struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SigninRequest represents a request to sign in
type SigninRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UpdateProfileRequest represents profile fields sent with PUT /profile.
// Empty fields keep the stored value.
type UpdateProfileRequest struct {
	FullName    string
	Email       string
	PhoneNumber string
	Address     string
	Password    string
}

// UserListItem represents a user row in the admin users list
type UserListItem struct {
	ID                 int       `json:"id"`
	FullName           string    `json:"fullName"`
	Email              string    `json:"email"`
	PhoneNumber        string    `json:"phoneNumber"`
	Points             int       `json:"points"`
	CreatedAt          time.Time `json:"createdAt"`
	RecycleItemCount   int       `json:"recycleItemCount"`
	PickupRequestCount int       `json:"pickupRequestCount"`
}
