package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/Coderanger08/FinGenie/models"
	"github.com/Coderanger08/FinGenie/utils"
)

// ============================================================================
// FINANCIAL CONTEXT BUILDER
// Assembles the optional free-text context passed to the chat flow: recent
// transactions, top spending categories, and all-time totals.
// ============================================================================

type ContextBuilder struct {
	transactions *TransactionService
}

func NewContextBuilder(transactions *TransactionService) *ContextBuilder {
	return &ContextBuilder{transactions: transactions}
}

// Build renders the financial-context string for one user. Amounts are
// formatted in the user's preferred currency.
func (b *ContextBuilder) Build(ctx context.Context, userID, currency string) (string, error) {
	transactions, err := b.transactions.List(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("failed to load transactions: %w", err)
	}

	return RenderFinancialContext(transactions, currency), nil
}

// RenderFinancialContext is the pure formatting half of Build, split out so
// it can be driven directly from a transaction slice.
func RenderFinancialContext(transactions []models.Transaction, currency string) string {
	var b strings.Builder
	b.WriteString("User's Financial Context:\n")

	// Recent transactions (last 5)
	if len(transactions) > 0 {
		b.WriteString("\nRecent Transactions (last 5):\n")
		recent := transactions
		if len(recent) > 5 {
			recent = recent[:5]
		}
		for _, t := range recent {
			verb := "Spent"
			if t.Type == models.TransactionTypeIncome {
				verb = "Received"
			}
			fmt.Fprintf(&b, "- %s %s for %q (Category: %s) on %s\n",
				verb, utils.FormatCurrency(t.Amount, currency), t.Description, t.Category, t.Date)
		}
	} else {
		b.WriteString("\nNo transaction data available.\n")
	}

	// Top spending categories
	spendingByCategory := map[string]float64{}
	for _, t := range transactions {
		if t.Type == models.TransactionTypeExpense {
			spendingByCategory[t.Category] += t.Amount
		}
	}

	type categoryTotal struct {
		category string
		amount   float64
	}
	sorted := make([]categoryTotal, 0, len(spendingByCategory))
	for category, amount := range spendingByCategory {
		sorted = append(sorted, categoryTotal{category, amount})
	}
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].amount != sorted[j].amount {
			return sorted[i].amount > sorted[j].amount
		}
		return sorted[i].category < sorted[j].category
	})
	if len(sorted) > 3 {
		sorted = sorted[:3]
	}

	if len(sorted) > 0 {
		b.WriteString("\nTop Spending Categories:\n")
		for _, ct := range sorted {
			fmt.Fprintf(&b, "- %s: %s\n", ct.category, utils.FormatCurrency(ct.amount, currency))
		}
	}

	// Overall summary
	var totalIncome, totalExpenses float64
	for _, t := range transactions {
		switch t.Type {
		case models.TransactionTypeIncome:
			totalIncome += t.Amount
		case models.TransactionTypeExpense:
			totalExpenses += t.Amount
		}
	}
	fmt.Fprintf(&b, "\nOverall Summary (all time):\n- Total Income: %s\n- Total Expenses: %s\n- Net: %s\n",
		utils.FormatCurrency(totalIncome, currency),
		utils.FormatCurrency(totalExpenses, currency),
		utils.FormatCurrency(totalIncome-totalExpenses, currency),
	)

	return b.String()
}
