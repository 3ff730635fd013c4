package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/Coderanger08/FinGenie/models"
)

// ============================================================================
// BUDGET ADJUSTMENT FLOW
// Produces an adjusted spending plan, a recommended savings rate, an
// investment allocation, and a narrative summary.
// ============================================================================

const adjustSystemPrompt = `You are FinGenie, an expert AI Financial Guidor. Your mission is to help the user make sound financial decisions by creating a personalized and actionable budget plan.

Your plan must include:
1. Adjusted Spending Plan: specific, adjusted spending amounts for each relevant category. If a category from the input is not mentioned in your adjusted plan, assume its spending remains unchanged. For any category you suggest adjusting, explain why in the summary.
2. Recommended Savings Rate: state the new recommended savings rate (0-100) and justify it.
3. Investment Allocation Strategy: a diversified allocation (asset classes and percentages) with a rationale for each asset class, aligned with the user's risk tolerance and goals.
4. Comprehensive Summary: key aspects of the plan, actionable advice, and the trade-offs and benefits of the proposed adjustments. Maintain a supportive and guiding tone.

Respond ONLY with a JSON object (no markdown, no backticks) with this exact shape:
{
  "adjustedSpending": {"CategoryName": 123.45},
  "recommendedSavingsRate": 15,
  "investmentAllocation": [{"assetClass": "string", "percentage": 60, "rationale": "string"}],
  "summary": "string"
}
Do not use markdown like '*' or '-' for lists within string fields.`

const adjustPromptTemplate = `Analyze the user's financial information meticulously:
- Monthly Income: %s
- Current Spending Categories and Amounts: %s
- Financial Goals and Target Amounts: %s
- Current Savings Rate: %s%%
- Risk Tolerance: %s
- Lifestyle Events Notes: %s

Based on this, craft a comprehensive financial plan. Your recommendations should empower the user to make informed decisions.`

// formatAmount renders a float the shortest exact way so prompt text is
// reproducible.
func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// formatAmountsInline renders a mapping as "key: value; key: value" in the
// mapping's insertion order.
func formatAmountsInline(amounts models.OrderedAmounts) string {
	parts := make([]string, 0, amounts.Len())
	for _, e := range amounts.Entries() {
		parts = append(parts, fmt.Sprintf("%s: %s", e.Key, formatAmount(e.Value)))
	}
	return strings.Join(parts, "; ")
}

func renderAdjustPrompt(input models.AdjustBudgetInput) string {
	return fmt.Sprintf(adjustPromptTemplate,
		formatAmount(input.Income),
		formatAmountsInline(input.Spending),
		formatAmountsInline(input.Goals),
		formatAmount(input.SavingsRate),
		input.RiskTolerance,
		input.LifestyleEventsNotes,
	)
}

func adjustFallback(input models.AdjustBudgetInput) models.AdjustBudgetOutput {
	return models.AdjustBudgetOutput{
		AdjustedSpending:       input.Spending,
		RecommendedSavingsRate: input.SavingsRate,
		InvestmentAllocation:   []models.InvestmentAllocation{},
		Summary:                "I'm sorry, I couldn't generate a complete budget plan at this moment. Please check your inputs or try again later.",
	}
}

var adjustSpec = flowSpec[models.AdjustBudgetInput, models.AdjustBudgetOutput]{
	name:         "adjustBudget",
	systemPrompt: adjustSystemPrompt,
	render:       renderAdjustPrompt,
	fallback:     adjustFallback,
}

// AdjustBudget recommends budget adjustments for increased savings.
func (inv *FlowInvoker) AdjustBudget(ctx context.Context, input models.AdjustBudgetInput) (FlowResult[models.AdjustBudgetOutput], error) {
	return invokeFlow(ctx, inv, adjustSpec, input)
}
