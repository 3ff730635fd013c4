package services

import (
	"context"
	"database/sql"
	"time"

	"github.com/Coderanger08/FinGenie/models"

	"github.com/google/uuid"
)

type TransactionService struct {
	db *sql.DB
}

func NewTransactionService(db *sql.DB) *TransactionService {
	return &TransactionService{db: db}
}

// Create records a transaction for a user.
func (s *TransactionService) Create(ctx context.Context, userID string, req models.CreateTransactionRequest) (*models.Transaction, error) {
	tx := &models.Transaction{
		ID:                  uuid.New().String(),
		UserID:              userID,
		Description:         req.Description,
		Amount:              req.Amount,
		Date:                req.Date,
		Type:                req.Type,
		Category:            req.Category,
		AISuggestedCategory: req.AISuggestedCategory,
		AIConfidence:        req.AIConfidence,
		CreatedAt:           time.Now(),
		UpdatedAt:           time.Now(),
	}

	query := `
		INSERT INTO transactions (id, user_id, description, amount, date, type, category, ai_suggested_category, ai_confidence, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NULLIF($8, ''), $9, $10, $11)
	`
	_, err := s.db.ExecContext(ctx, query,
		tx.ID, tx.UserID, tx.Description, tx.Amount, tx.Date, tx.Type, tx.Category,
		tx.AISuggestedCategory, tx.AIConfidence, tx.CreatedAt, tx.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return tx, nil
}

// GetByID gets one transaction scoped to its owner.
func (s *TransactionService) GetByID(ctx context.Context, id, userID string) (*models.Transaction, error) {
	query := `
		SELECT id, user_id, description, amount, date::text, type, category,
		       COALESCE(ai_suggested_category, ''), ai_confidence, created_at, updated_at
		FROM transactions
		WHERE id = $1 AND user_id = $2
	`

	var tx models.Transaction
	err := s.db.QueryRowContext(ctx, query, id, userID).Scan(
		&tx.ID, &tx.UserID, &tx.Description, &tx.Amount, &tx.Date, &tx.Type, &tx.Category,
		&tx.AISuggestedCategory, &tx.AIConfidence, &tx.CreatedAt, &tx.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &tx, nil
}

// List returns the user's transactions, newest first.
func (s *TransactionService) List(ctx context.Context, userID string) ([]models.Transaction, error) {
	query := `
		SELECT id, user_id, description, amount, date::text, type, category,
		       COALESCE(ai_suggested_category, ''), ai_confidence, created_at, updated_at
		FROM transactions
		WHERE user_id = $1
		ORDER BY date DESC, created_at DESC
	`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	transactions := []models.Transaction{}
	for rows.Next() {
		var tx models.Transaction
		err := rows.Scan(
			&tx.ID, &tx.UserID, &tx.Description, &tx.Amount, &tx.Date, &tx.Type, &tx.Category,
			&tx.AISuggestedCategory, &tx.AIConfidence, &tx.CreatedAt, &tx.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, tx)
	}

	return transactions, rows.Err()
}

// Update replaces a transaction's editable fields.
func (s *TransactionService) Update(ctx context.Context, id, userID string, req models.UpdateTransactionRequest) error {
	query := `
		UPDATE transactions
		SET description = $1, amount = $2, date = $3, type = $4, category = $5, updated_at = $6
		WHERE id = $7 AND user_id = $8
	`
	result, err := s.db.ExecContext(ctx, query,
		req.Description, req.Amount, req.Date, req.Type, req.Category, time.Now(), id, userID,
	)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return sql.ErrNoRows
	}

	return nil
}

// Delete removes a transaction.
func (s *TransactionService) Delete(ctx context.Context, id, userID string) error {
	result, err := s.db.ExecContext(ctx,
		`DELETE FROM transactions WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return sql.ErrNoRows
	}

	return nil
}

// SpendingByCategory sums the user's expenses per category.
func (s *TransactionService) SpendingByCategory(ctx context.Context, userID string) (map[string]float64, error) {
	query := `
		SELECT category, SUM(amount)
		FROM transactions
		WHERE user_id = $1 AND type = 'Expense'
		GROUP BY category
	`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	spending := map[string]float64{}
	for rows.Next() {
		var category string
		var amount float64
		if err := rows.Scan(&category, &amount); err != nil {
			return nil, err
		}
		spending[category] = amount
	}

	return spending, rows.Err()
}

// Totals returns all-time income, expenses and net for a user.
func (s *TransactionService) Totals(ctx context.Context, userID string) (income, expenses float64, err error) {
	query := `
		SELECT
			COALESCE(SUM(amount) FILTER (WHERE type = 'Income'), 0),
			COALESCE(SUM(amount) FILTER (WHERE type = 'Expense'), 0)
		FROM transactions
		WHERE user_id = $1
	`
	err = s.db.QueryRowContext(ctx, query, userID).Scan(&income, &expenses)
	return income, expenses, err
}
