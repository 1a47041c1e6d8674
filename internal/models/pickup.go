package models

import "time"

// PickupStatus represents the lifecycle state of a pickup request
type PickupStatus string

const (
	PickupStatusPending   PickupStatus = "PENDING"
	PickupStatusScheduled PickupStatus = "SCHEDULED"
	PickupStatusCompleted PickupStatus = "COMPLETED"
	PickupStatusCancelled PickupStatus = "CANCELLED"
)

// Valid reports whether the status is one of the known statuses
func (s PickupStatus) Valid() bool {
	switch s {
	case PickupStatusPending, PickupStatusScheduled, PickupStatusCompleted, PickupStatusCancelled:
		return true
	default:
		return false
	}
}

// PickupRequest represents a user-initiated request for physical item collection
type PickupRequest struct {
	ID         int          `json:"id"`
	UserID     int          `json:"userId"`
	PickupDate time.Time    `json:"pickupDate"`
	Address    string       `json:"address"`
	Notes      string       `json:"notes"`
	Status     PickupStatus `json:"status"`
	CreatedAt  time.Time    `json:"createdAt"`
	UpdatedAt  time.Time    `json:"updatedAt"`
}

// CreatePickupRequest represents a request to schedule a pickup
type CreatePickupRequest struct {
	PickupDate time.Time `json:"pickupDate"`
	Address    string    `json:"address"`
	Notes      string    `json:"notes"`
}

// UpdateStatusRequest is used by admins to move an item or a pickup to a new status
type UpdateStatusRequest struct {
	Status string `json:"status"`
}
