package services

import (
	"context"
	"database/sql"
	"strings"

	"github.com/Coderanger08/FinGenie/models"
	"github.com/Coderanger08/FinGenie/utils"
)

// ============================================================================
// CATEGORIZER SERVICE
// Resolves a transaction description to category suggestions in three tiers:
// static merchant rules, the category_mappings cache, then the AI flow.
// AI answers are cached asynchronously so repeat descriptions stay free.
// ============================================================================

type CategorizerService struct {
	db    *sql.DB
	flows *FlowInvoker
}

func NewCategorizerService(db *sql.DB, flows *FlowInvoker) *CategorizerService {
	return &CategorizerService{db: db, flows: flows}
}

// --- STATIC MERCHANT RULES (free tier) ---
var staticRules = map[string]string{
	// FOOD
	"starbucks": "Food", "mcdonald": "Food", "chipotle": "Food", "subway": "Food",
	"whole foods": "Food", "trader joe": "Food", "safeway": "Food", "kroger": "Food",
	"doordash": "Food", "uber eats": "Food", "grubhub": "Food", "instacart": "Food",

	// TRANSPORT
	"uber": "Transport", "lyft": "Transport", "shell": "Transport", "chevron": "Transport",
	"exxon": "Transport", "amtrak": "Transport", "delta": "Transport", "united airlines": "Transport",

	// ENTERTAINMENT
	"netflix": "Entertainment", "spotify": "Entertainment", "hulu": "Entertainment",
	"disney": "Entertainment", "hbo": "Entertainment", "steam": "Entertainment",
	"playstation": "Entertainment", "amc": "Entertainment",

	// UTILITIES
	"comcast": "Utilities", "xfinity": "Utilities", "verizon": "Utilities",
	"at&t": "Utilities", "t-mobile": "Utilities", "pg&e": "Utilities", "con edison": "Utilities",

	// SHOPPING
	"amazon": "Shopping", "target": "Shopping", "walmart": "Shopping", "costco": "Shopping",
	"best buy": "Shopping", "ikea": "Shopping", "etsy": "Shopping",

	// HEALTH
	"cvs": "Health", "walgreens": "Health", "kaiser": "Health",

	// RENT
	"rent": "Rent", "landlord": "Rent", "apartment": "Rent",
}

// Suggest resolves category suggestions for a transaction description.
// Static and cached hits never reach the model.
func (s *CategorizerService) Suggest(ctx context.Context, description string) ([]models.CategorySuggestion, bool, error) {
	normalized := strings.ToLower(strings.TrimSpace(description))
	if normalized == "" {
		return []models.CategorySuggestion{{Category: "Uncategorized", Confidence: 0.1}}, false, nil
	}

	// 1. Static rules
	if category, exists := staticRules[normalized]; exists {
		return []models.CategorySuggestion{{Category: category, Confidence: 0.95}}, false, nil
	}
	// Longest match wins so "uber eats" beats "uber"
	var matched string
	var matchedCategory string
	for key, category := range staticRules {
		if strings.Contains(normalized, key) && len(key) > len(matched) {
			matched, matchedCategory = key, category
		}
	}
	if matched != "" {
		return []models.CategorySuggestion{{Category: matchedCategory, Confidence: 0.9}}, false, nil
	}

	// 2. Cache
	var cached models.CategorySuggestion
	var confidence sql.NullFloat64
	err := s.db.QueryRowContext(ctx,
		"SELECT category, confidence FROM category_mappings WHERE normalized_label = $1",
		normalized).Scan(&cached.Category, &confidence)
	if err == nil {
		cached.Confidence = 0.8
		if confidence.Valid {
			cached.Confidence = confidence.Float64
		}
		return []models.CategorySuggestion{cached}, false, nil
	}

	// 3. AI flow
	result, err := s.flows.SuggestCategories(ctx, models.SuggestCategoriesInput{
		TransactionDescription: description,
	})
	if err != nil {
		return nil, false, err
	}

	// 4. Cache the top suggestion for next time. Fallback answers carry no
	// signal, so they are not cached.
	if !result.Fallback && len(result.Output.SuggestedCategories) > 0 {
		top := result.Output.SuggestedCategories[0]
		go func(label string, suggestion models.CategorySuggestion) {
			_, err := s.db.Exec(
				"INSERT INTO category_mappings (normalized_label, category, confidence, source) VALUES ($1, $2, $3, 'AI') ON CONFLICT (normalized_label) DO NOTHING",
				label, suggestion.Category, suggestion.Confidence,
			)
			if err != nil {
				utils.SafeWarn("[Categorizer] Failed to cache %s: %v", utils.MaskString(label), err)
			}
		}(normalized, top)
	}

	return result.Output.SuggestedCategories, result.Fallback, nil
}
