package models

import "time"

// ============================================================================
// TRANSACTION MODEL
// ============================================================================

const (
	TransactionTypeIncome  = "Income"
	TransactionTypeExpense = "Expense"
)

type Transaction struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Description string    `json:"description"`
	Amount      float64   `json:"amount"`
	Date        string    `json:"date"` // YYYY-MM-DD
	Type        string    `json:"type"` // Income | Expense
	Category    string    `json:"category"`
	// Pure AI suggestion kept alongside the user's accepted category
	AISuggestedCategory string    `json:"ai_suggested_category,omitempty"`
	AIConfidence        *float64  `json:"ai_confidence,omitempty"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

type CreateTransactionRequest struct {
	Description         string   `json:"description" binding:"required"`
	Amount              float64  `json:"amount" binding:"required,gt=0"`
	Date                string   `json:"date" binding:"required,datetime=2006-01-02"`
	Type                string   `json:"type" binding:"required,oneof=Income Expense"`
	Category            string   `json:"category" binding:"required"`
	AISuggestedCategory string   `json:"ai_suggested_category,omitempty"`
	AIConfidence        *float64 `json:"ai_confidence,omitempty"`
}

type UpdateTransactionRequest struct {
	Description string  `json:"description" binding:"required"`
	Amount      float64 `json:"amount" binding:"required,gt=0"`
	Date        string  `json:"date" binding:"required,datetime=2006-01-02"`
	Type        string  `json:"type" binding:"required,oneof=Income Expense"`
	Category    string  `json:"category" binding:"required"`
}
