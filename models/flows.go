package models

// ============================================================================
// AI FLOW CONTRACTS
// Input and output shapes for the four model-backed flows. The `validate`
// tags are the schema: inputs are checked before any model call, outputs are
// checked after decoding the model's JSON. Field names in json tags are the
// exact keys the prompt templates instruct the model to produce.
// ============================================================================

const (
	RiskToleranceLow    = "low"
	RiskToleranceMedium = "medium"
	RiskToleranceHigh   = "high"
)

// ----------------------------------------------------------------------------
// Transaction categorization
// ----------------------------------------------------------------------------

type SuggestCategoriesInput struct {
	TransactionDescription string `json:"transactionDescription" validate:"required"`
}

type CategorySuggestion struct {
	Category   string  `json:"category" validate:"required"`
	Confidence float64 `json:"confidence" validate:"gte=0,lte=1"`
}

type SuggestCategoriesOutput struct {
	SuggestedCategories []CategorySuggestion `json:"suggestedCategories" validate:"required,min=1,max=3,dive"`
}

// ----------------------------------------------------------------------------
// Budget adjustment
// ----------------------------------------------------------------------------

type AdjustBudgetInput struct {
	Income               float64        `json:"income" validate:"gt=0"`
	Spending             OrderedAmounts `json:"spending"`
	Goals                OrderedAmounts `json:"goals"`
	SavingsRate          float64        `json:"savingsRate" validate:"gte=0,lte=100"`
	RiskTolerance        string         `json:"riskTolerance" validate:"required,oneof=low medium high"`
	LifestyleEventsNotes string         `json:"lifestyleEventsNotes"`
}

type InvestmentAllocation struct {
	AssetClass string  `json:"assetClass" validate:"required"`
	Percentage float64 `json:"percentage" validate:"gte=0,lte=100"`
	Rationale  string  `json:"rationale,omitempty"`
}

type AdjustBudgetOutput struct {
	AdjustedSpending       OrderedAmounts         `json:"adjustedSpending"`
	RecommendedSavingsRate float64                `json:"recommendedSavingsRate" validate:"gte=0,lte=100"`
	InvestmentAllocation   []InvestmentAllocation `json:"investmentAllocation" validate:"dive"`
	Summary                string                 `json:"summary" validate:"required"`
}

// ----------------------------------------------------------------------------
// Budget optimization
// ----------------------------------------------------------------------------

type OptimizeBudgetInput struct {
	Income               float64        `json:"income" validate:"gt=0"`
	CurrentSpending      OrderedAmounts `json:"currentSpending"`
	FinancialGoals       OrderedAmounts `json:"financialGoals"`
	CurrentSavingsRate   float64        `json:"currentSavingsRate" validate:"gte=0,lte=100"`
	RiskTolerance        string         `json:"riskTolerance" validate:"required,oneof=low medium high"`
	LifestyleEventsNotes string         `json:"lifestyleEventsNotes,omitempty"`
}

type GoalAchievement struct {
	GoalName              string   `json:"goalName" validate:"required"`
	CurrentAllocation     float64  `json:"currentAllocation"`
	RecommendedAllocation float64  `json:"recommendedAllocation"`
	TimeToAchieveMonths   *float64 `json:"timeToAchieveMonths,omitempty"`
	Notes                 string   `json:"notes,omitempty"`
}

type OptimizeBudgetOutput struct {
	Summary                 string                 `json:"summary" validate:"required"`
	OptimizedSpending       OrderedAmounts         `json:"optimizedSpending"`
	RecommendedSavingsRate  float64                `json:"recommendedSavingsRate" validate:"gte=0,lte=100"`
	InvestmentSuggestions   []InvestmentAllocation `json:"investmentSuggestions" validate:"dive"`
	ActionableSteps         []string               `json:"actionableSteps"`
	WarningsOrConsideration []string               `json:"warningsOrConsiderations,omitempty"`
	GoalAchievementAnalysis []GoalAchievement      `json:"goalAchievementAnalysis,omitempty" validate:"omitempty,dive"`
}

// ----------------------------------------------------------------------------
// Financial-advice chat
// ----------------------------------------------------------------------------

type ChatInput struct {
	Question         string `json:"question" validate:"required"`
	FinancialContext string `json:"financialContext,omitempty"`
}

type ChatOutput struct {
	Answer string       `json:"answer" validate:"required"`
	Chart  *ChartConfig `json:"chart,omitempty" validate:"omitempty"`
}
