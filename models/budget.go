package models

import "time"

// ============================================================================
// BUDGET MODEL
// One row per user per category: a spending limit plus derived usage fields
// computed from the user's expense transactions.
// ============================================================================

type Budget struct {
	ID            string    `json:"id"`
	UserID        string    `json:"user_id"`
	CategoryName  string    `json:"category_name"`
	SpendingLimit float64   `json:"spending_limit"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	// Derived, never stored
	CurrentSpending  float64 `json:"current_spending"`
	Progress         float64 `json:"progress"` // 0-100, capped at 100
	OverLimit        bool    `json:"over_limit"`
	ApproachingLimit bool    `json:"approaching_limit"` // >= 80% and not over
}

type CreateBudgetRequest struct {
	CategoryName  string  `json:"category_name" binding:"required"`
	SpendingLimit float64 `json:"spending_limit" binding:"required,gt=0"`
}

type UpdateBudgetRequest struct {
	SpendingLimit float64 `json:"spending_limit" binding:"required,gt=0"`
}
