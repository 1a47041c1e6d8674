package models

import "time"

// Reward represents a catalog entry that can be bought with points
type Reward struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Points      int    `json:"points"`
	ImageURL    string `json:"imageUrl"`
}

// Redemption records an exchange of points for a reward
type Redemption struct {
	ID          int       `json:"id"`
	UserID      int       `json:"userId"`
	RewardID    int       `json:"rewardId"`
	PointsSpent int       `json:"pointsSpent"`
	CreatedAt   time.Time `json:"createdAt"`
}

// RedemptionHistoryItem represents a redemption joined with its reward for display
type RedemptionHistoryItem struct {
	ID          int       `json:"id"`
	RewardID    int       `json:"rewardId"`
	Name        string    `json:"name"`
	ImageURL    string    `json:"imageUrl"`
	PointsSpent int       `json:"pointsSpent"`
	CreatedAt   time.Time `json:"createdAt"`
}

// RedeemRequest represents a request to redeem a reward
type RedeemRequest struct {
	RewardID int `json:"rewardId"`
}

// CreateRewardRequest represents a request to add a reward to the catalog
type CreateRewardRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Points      int    `json:"points"`
	ImageURL    string `json:"imageUrl"`
}
