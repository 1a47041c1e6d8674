package models

import "time"

// ItemStatus represents the review status of a recycle item
type ItemStatus string

const (
	ItemStatusPending  ItemStatus = "PENDING"
	ItemStatusApproved ItemStatus = "APPROVED"
	ItemStatusRejected ItemStatus = "REJECTED"
)

// Valid reports whether the status is one of the known statuses
func (s ItemStatus) Valid() bool {
	switch s {
	case ItemStatusPending, ItemStatusApproved, ItemStatusRejected:
		return true
	default:
		return false
	}
}

// ItemCondition represents the condition a user declares for a submitted item
type ItemCondition string

const (
	ConditionNew     ItemCondition = "new"
	ConditionLikeNew ItemCondition = "likeNew"
	ConditionGood    ItemCondition = "good"
	ConditionFair    ItemCondition = "fair"
	ConditionPoor    ItemCondition = "poor"
)

// scoreTable maps item conditions to the points credited on submission
var scoreTable = map[ItemCondition]int{
	ConditionNew:     300,
	ConditionLikeNew: 150,
	ConditionGood:    100,
	ConditionFair:    50,
	ConditionPoor:    25,
}

// ScoreForCondition returns the points earned for an item in the given condition.
// Unknown conditions earn nothing.
func ScoreForCondition(condition ItemCondition) int {
	return scoreTable[condition]
}

// CO2 saved per kilogram of recycled material, used by dashboards and reports
const (
	CO2SavingsPerKg    = 2.5
	EnergySavingsPerKg = 0.5
	WaterSavingsPerKg  = 0.3
)

// RecycleItem represents an item submitted by a user for recycling
type RecycleItem struct {
	ID          int           `json:"id"`
	UserID      int           `json:"userId"`
	ItemType    string        `json:"itemType"`
	Description string        `json:"description"`
	Condition   ItemCondition `json:"condition"`
	Weight      float64       `json:"weight"`
	Status      ItemStatus    `json:"status"`
	ImageURL    string        `json:"imageUrl,omitempty"`
	ImageID     string        `json:"-"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
}

// SubmitItemRequest represents the form fields of a new item submission
type SubmitItemRequest struct {
	ItemType    string
	Description string
	Condition   string
	Weight      string
}

// UpdateItemRequest represents a request to update the user-editable fields of an item
type UpdateItemRequest struct {
	Description string   `json:"itemDescription"`
	Weight      *float64 `json:"itemWeight,omitempty"`
}

// SubmissionListItem represents a recycle item joined with its owner for admin review
type SubmissionListItem struct {
	RecycleItem
	FullName string `json:"fullName"`
	Email    string `json:"email"`
}

// ItemFilter narrows a user's item history
type ItemFilter struct {
	// Days limits the history to the last N days, 0 means no limit
	Days     int
	ItemType string
}

// SubmissionFilter narrows the admin submissions list
type SubmissionFilter struct {
	Status ItemStatus
	Days   int
	Page   int
	Limit  int
}
