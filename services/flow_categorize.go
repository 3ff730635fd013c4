package services

import (
	"context"
	"fmt"

	"github.com/Coderanger08/FinGenie/models"
)

// ============================================================================
// TRANSACTION CATEGORIZATION FLOW
// Free-text description in, up to three category suggestions with confidence
// scores out.
// ============================================================================

const categorizeSystemPrompt = `You are a financial advisor specializing in transaction categorization.

Given a transaction description, suggest up to 3 categories for the transaction, along with a confidence score between 0 and 1.

Respond ONLY with a JSON object (no markdown, no backticks) with a "suggestedCategories" field, which is an array of at most 3 objects. Each object must have a "category" field (string) and a "confidence" field (number between 0 and 1). The confidence score represents how confident you are in the category suggestion.`

func renderCategorizePrompt(input models.SuggestCategoriesInput) string {
	return fmt.Sprintf("Transaction Description: %s", input.TransactionDescription)
}

func categorizeFallback(_ models.SuggestCategoriesInput) models.SuggestCategoriesOutput {
	return models.SuggestCategoriesOutput{
		SuggestedCategories: []models.CategorySuggestion{
			{Category: "Uncategorized", Confidence: 0.1},
		},
	}
}

var categorizeSpec = flowSpec[models.SuggestCategoriesInput, models.SuggestCategoriesOutput]{
	name:         "suggestCategories",
	systemPrompt: categorizeSystemPrompt,
	render:       renderCategorizePrompt,
	fallback:     categorizeFallback,
}

// SuggestCategories suggests categories for a transaction description.
func (inv *FlowInvoker) SuggestCategories(ctx context.Context, input models.SuggestCategoriesInput) (FlowResult[models.SuggestCategoriesOutput], error) {
	return invokeFlow(ctx, inv, categorizeSpec, input)
}
