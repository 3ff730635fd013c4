package services

import (
	"testing"

	"github.com/Coderanger08/FinGenie/models"
)

func TestDeriveUsage(t *testing.T) {
	spending := map[string]float64{
		"Food": 400,
		"Rent": 1600,
	}

	cases := []struct {
		name            string
		category        string
		limit           float64
		wantSpending    float64
		wantProgress    float64
		wantOver        bool
		wantApproaching bool
	}{
		{"under limit", "Food", 1000, 400, 40, false, false},
		{"approaching", "Food", 500, 400, 80, false, true},
		{"at limit", "Food", 400, 400, 100, false, true},
		{"over limit", "Rent", 1500, 1600, 100, true, false},
		{"no spending", "Travel", 300, 0, 0, false, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			budget := models.Budget{CategoryName: tc.category, SpendingLimit: tc.limit}
			deriveUsage(&budget, spending)

			if budget.CurrentSpending != tc.wantSpending {
				t.Fatalf("CurrentSpending = %v, want %v", budget.CurrentSpending, tc.wantSpending)
			}
			if budget.Progress != tc.wantProgress {
				t.Fatalf("Progress = %v, want %v", budget.Progress, tc.wantProgress)
			}
			if budget.OverLimit != tc.wantOver {
				t.Fatalf("OverLimit = %v, want %v", budget.OverLimit, tc.wantOver)
			}
			if budget.ApproachingLimit != tc.wantApproaching {
				t.Fatalf("ApproachingLimit = %v, want %v", budget.ApproachingLimit, tc.wantApproaching)
			}
		})
	}
}
