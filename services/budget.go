package services

import (
	"context"
	"database/sql"
	"time"

	"github.com/Coderanger08/FinGenie/models"

	"github.com/google/uuid"
)

type BudgetService struct {
	db           *sql.DB
	transactions *TransactionService
}

func NewBudgetService(db *sql.DB, transactions *TransactionService) *BudgetService {
	return &BudgetService{db: db, transactions: transactions}
}

// Create creates a category budget for a user.
func (s *BudgetService) Create(ctx context.Context, userID string, req models.CreateBudgetRequest) (*models.Budget, error) {
	budget := &models.Budget{
		ID:            uuid.New().String(),
		UserID:        userID,
		CategoryName:  req.CategoryName,
		SpendingLimit: req.SpendingLimit,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}

	query := `
		INSERT INTO budgets (id, user_id, category_name, spending_limit, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := s.db.ExecContext(ctx, query,
		budget.ID, budget.UserID, budget.CategoryName, budget.SpendingLimit,
		budget.CreatedAt, budget.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	spending, err := s.transactions.SpendingByCategory(ctx, userID)
	if err != nil {
		return nil, err
	}
	deriveUsage(budget, spending)

	return budget, nil
}

// List returns the user's budgets with usage derived from their expense
// transactions.
func (s *BudgetService) List(ctx context.Context, userID string) ([]models.Budget, error) {
	query := `
		SELECT id, user_id, category_name, spending_limit, created_at, updated_at
		FROM budgets
		WHERE user_id = $1
		ORDER BY category_name
	`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	budgets := []models.Budget{}
	for rows.Next() {
		var budget models.Budget
		err := rows.Scan(
			&budget.ID, &budget.UserID, &budget.CategoryName, &budget.SpendingLimit,
			&budget.CreatedAt, &budget.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		budgets = append(budgets, budget)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	spending, err := s.transactions.SpendingByCategory(ctx, userID)
	if err != nil {
		return nil, err
	}
	for i := range budgets {
		deriveUsage(&budgets[i], spending)
	}

	return budgets, nil
}

// Update changes a budget's spending limit.
func (s *BudgetService) Update(ctx context.Context, id, userID string, req models.UpdateBudgetRequest) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE budgets
		SET spending_limit = $1, updated_at = $2
		WHERE id = $3 AND user_id = $4
	`, req.SpendingLimit, time.Now(), id, userID)
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

// Delete removes a budget.
func (s *BudgetService) Delete(ctx context.Context, id, userID string) error {
	result, err := s.db.ExecContext(ctx,
		`DELETE FROM budgets WHERE id = $1 AND user_id = $2`, id, userID)
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

// deriveUsage fills the derived fields from per-category spending totals.
func deriveUsage(budget *models.Budget, spending map[string]float64) {
	budget.CurrentSpending = spending[budget.CategoryName]

	if budget.SpendingLimit > 0 {
		progress := budget.CurrentSpending / budget.SpendingLimit * 100
		if progress > 100 {
			progress = 100
		}
		budget.Progress = progress
		budget.OverLimit = budget.CurrentSpending > budget.SpendingLimit
		budget.ApproachingLimit = progress >= 80 && !budget.OverLimit
	}
}
