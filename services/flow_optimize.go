package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/Coderanger08/FinGenie/models"
)

// ============================================================================
// BUDGET OPTIMIZATION FLOW
// The full planner: optimized spending, savings rate, investment suggestions,
// actionable steps, and optional warnings and per-goal analysis.
// ============================================================================

const optimizeSystemPrompt = `You are FinGenie, an expert AI Financial Optimizer. Your task is to analyze the user's financial situation and provide a comprehensive, actionable, and personalized budget optimization plan.

Key objectives for your plan:
1. Optimize Spending: analyze current spending habits and identify areas for reduction or reallocation. Provide an 'optimizedSpending' object with suggested amounts for each category. Be realistic. Use basic algebra to guide adjustments:
   TotalCurrentSpending = sum(currentSpending values)
   TargetTotalSpending = income * (1 - (recommendedSavingsRate / 100))
   SpendingAdjustmentNeeded = TotalCurrentSpending - TargetTotalSpending
   If SpendingAdjustmentNeeded > 0, distribute reductions across flexible categories; if < 0, the surplus can go to savings or goals.
2. Recommend Savings Rate: suggest a 'recommendedSavingsRate' (0-100) that is challenging yet achievable.
3. Provide Investment Suggestions: 2-4 asset classes tailored to the user's risk tolerance, each with a percentage allocation and brief rationale. Percentages should ideally sum to 100.
4. Outline Actionable Steps: 3-5 clear, practical 'actionableSteps'.
5. Analyze Goal Achievement: for each financial goal provide 'goalName', 'currentAllocation', 'recommendedAllocation', optionally 'timeToAchieveMonths', and 'notes'.
6. Add Warnings/Considerations: include 'warningsOrConsiderations' if the plan involves significant changes or risks.

General guidelines: personalize all recommendations, use clear language, keep a positive tone, and ensure recommendations are mathematically plausible (total optimized spending plus savings should not exceed income).

Respond ONLY with a JSON object (no markdown, no backticks) with this exact shape:
{
  "summary": "string",
  "optimizedSpending": {"CategoryName": 123.45},
  "recommendedSavingsRate": 20,
  "investmentSuggestions": [{"assetClass": "string", "percentage": 50, "rationale": "string"}],
  "actionableSteps": ["string"],
  "warningsOrConsiderations": ["string"],
  "goalAchievementAnalysis": [{"goalName": "string", "currentAllocation": 0, "recommendedAllocation": 100, "timeToAchieveMonths": 12, "notes": "string"}]
}
Do not use markdown like '*' or '-' for lists within string fields of the JSON. Use arrays of strings for lists like 'actionableSteps'.`

// formatAmountsBulleted renders a mapping as a newline-bulleted list in the
// mapping's insertion order.
func formatAmountsBulleted(amounts models.OrderedAmounts) string {
	var b strings.Builder
	for _, e := range amounts.Entries() {
		fmt.Fprintf(&b, "  - %s: %s\n", e.Key, formatAmount(e.Value))
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderOptimizePrompt(input models.OptimizeBudgetInput) string {
	var b strings.Builder

	b.WriteString("User's Financial Information:\n")
	fmt.Fprintf(&b, "- Monthly Income: %s\n", formatAmount(input.Income))
	fmt.Fprintf(&b, "- Current Monthly Spending:\n%s\n", formatAmountsBulleted(input.CurrentSpending))
	fmt.Fprintf(&b, "- Financial Goals:\n%s\n", formatAmountsBulleted(input.FinancialGoals))
	fmt.Fprintf(&b, "- Current Savings Rate: %s%%\n", formatAmount(input.CurrentSavingsRate))
	fmt.Fprintf(&b, "- Risk Tolerance: %s\n", input.RiskTolerance)
	if input.LifestyleEventsNotes != "" {
		fmt.Fprintf(&b, "- Lifestyle Events/Notes: %s\n", input.LifestyleEventsNotes)
	}
	b.WriteString("\nBased on this information, generate an optimized budget plan.")

	return b.String()
}

func optimizeFallback(input models.OptimizeBudgetInput) models.OptimizeBudgetOutput {
	analysis := make([]models.GoalAchievement, 0, input.FinancialGoals.Len())
	for _, goal := range input.FinancialGoals.Entries() {
		analysis = append(analysis, models.GoalAchievement{
			GoalName: goal.Key,
			Notes:    "Detailed analysis unavailable due to an error.",
		})
	}

	return models.OptimizeBudgetOutput{
		Summary:                "I'm sorry, I encountered an issue generating a full budget plan at this moment. Please check your inputs or try again. As a general tip, reviewing your non-essential spending is often a good first step to optimize your budget.",
		OptimizedSpending:      input.CurrentSpending,
		RecommendedSavingsRate: input.CurrentSavingsRate,
		InvestmentSuggestions:  []models.InvestmentAllocation{},
		ActionableSteps: []string{
			"Review your current spending categories for potential savings.",
			"Ensure your financial goals are specific and measurable.",
		},
		WarningsOrConsideration: []string{"The AI could not generate a detailed plan. This is a fallback response."},
		GoalAchievementAnalysis: analysis,
	}
}

var optimizeSpec = flowSpec[models.OptimizeBudgetInput, models.OptimizeBudgetOutput]{
	name:         "optimizeBudget",
	systemPrompt: optimizeSystemPrompt,
	render:       renderOptimizePrompt,
	fallback:     optimizeFallback,
}

// OptimizeBudget produces a full AI budget optimization plan.
//
// The relation income >= sum(optimizedSpending) + recommendedSavingsRate*income
// is instructed at the prompt level only; the output schema does not enforce
// it, matching the advisory nature of the recommendation.
func (inv *FlowInvoker) OptimizeBudget(ctx context.Context, input models.OptimizeBudgetInput) (FlowResult[models.OptimizeBudgetOutput], error) {
	return invokeFlow(ctx, inv, optimizeSpec, input)
}
