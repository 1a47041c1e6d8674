package models

import "time"

// WeightByType aggregates recycled weight per item type
type WeightByType struct {
	ItemType    string  `json:"itemType"`
	Count       int     `json:"count,omitempty"`
	TotalWeight float64 `json:"totalWeight"`
}

// WeightByPeriod aggregates recycled weight per day or month
type WeightByPeriod struct {
	Period      string  `json:"period"`
	ItemCount   int     `json:"itemCount,omitempty"`
	TotalWeight float64 `json:"totalWeight"`
}

// CountByPeriod aggregates a number of records per month
type CountByPeriod struct {
	Period string `json:"period"`
	Count  int    `json:"count"`
}

// CountByStatus aggregates a number of records per status
type CountByStatus struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

// ActivityItem describes a recent submission on the admin dashboard
type ActivityItem struct {
	Date        time.Time `json:"date"`
	Description string    `json:"description"`
}

// UserDashboard is the data shown on the user home page
type UserDashboard struct {
	TotalRecycled      float64          `json:"totalRecycled"`
	RewardPoints       int              `json:"rewardPoints"`
	CO2Saved           float64          `json:"co2Saved"`
	NextPickup         *time.Time       `json:"nextPickup"`
	RecentActivity     []RecycleItem    `json:"recentActivity"`
	RecyclingHistory   []WeightByPeriod `json:"recyclingHistory"`
	RecyclingBreakdown []WeightByType   `json:"recyclingBreakdown"`
	User               *User            `json:"systemUser"`
}

// ItemHistory is a filtered list of a user's items with summary totals
type ItemHistory struct {
	Items   []RecycleItem      `json:"items"`
	Summary ItemHistorySummary `json:"summary"`
}

// ItemHistorySummary sums up an item history
type ItemHistorySummary struct {
	TotalItems  int     `json:"totalItems"`
	TotalWeight float64 `json:"totalWeight"`
	CO2Saved    float64 `json:"co2Saved"`
}

// AdminDashboard is the data shown on the admin home page
type AdminDashboard struct {
	TotalUsers         int              `json:"totalUsers"`
	TotalRecycled      float64          `json:"totalRecycled"`
	PendingPickups     int              `json:"pendingPickups"`
	RecyclingTrends    []WeightByPeriod `json:"recyclingTrends"`
	UserGrowthTrends   []CountByPeriod  `json:"userGrowthTrends"`
	RecentActivity     []ActivityItem   `json:"recentActivity"`
	RecyclingBreakdown []WeightByType   `json:"recyclingBreakdown"`
	Admin              *User            `json:"adminInformation"`
}

// UserPerformance aggregates approved recycling per user
type UserPerformance struct {
	ID          int     `json:"id"`
	FullName    string  `json:"fullName"`
	Email       string  `json:"email"`
	Points      int     `json:"points"`
	TotalItems  int     `json:"totalItems"`
	TotalWeight float64 `json:"totalWeight"`
}

// EnvironmentalImpact derives savings from the approved recycled weight
type EnvironmentalImpact struct {
	TotalWeight   float64 `json:"totalWeight"`
	CO2Savings    float64 `json:"CO2Savings"`
	EnergySavings float64 `json:"energySavings"`
	WaterSavings  float64 `json:"waterSavings"`
}

// NewEnvironmentalImpact computes savings for the given weight
func NewEnvironmentalImpact(weight float64) EnvironmentalImpact {
	return EnvironmentalImpact{
		TotalWeight:   weight,
		CO2Savings:    weight * CO2SavingsPerKg,
		EnergySavings: weight * EnergySavingsPerKg,
		WaterSavings:  weight * WaterSavingsPerKg,
	}
}

// RecyclingReport is the admin recycling report
type RecyclingReport struct {
	TotalRecycleItems      int                 `json:"totalRecycleItems"`
	ApprovedRecycleItems   int                 `json:"approvedRecycleItems"`
	RecycleItemsByType     []WeightByType      `json:"recycleItemsByType"`
	MonthlyRecyclingTrends []WeightByPeriod    `json:"monthlyRecyclingTrends"`
	PickupRequestStats     []CountByStatus     `json:"pickupRequestStats"`
	UserPerformance        []UserPerformance   `json:"userPerformance"`
	Pagination             Pagination          `json:"pagination"`
	EnvironmentalImpact    EnvironmentalImpact `json:"environmentalImpact"`
}

// Pagination describes a page of a list response
type Pagination struct {
	CurrentPage int `json:"currentPage"`
	TotalPages  int `json:"totalPages"`
	Total       int `json:"total"`
}

// NewPagination computes the page count for the given total
func NewPagination(page, limit, total int) Pagination {
	totalPages := 0
	if limit > 0 {
		totalPages = (total + limit - 1) / limit
	}
	return Pagination{CurrentPage: page, TotalPages: totalPages, Total: total}
}
