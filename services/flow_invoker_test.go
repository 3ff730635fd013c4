package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/Coderanger08/FinGenie/models"
)

type mockModel struct {
	response   string
	err        error
	calls      int
	lastSystem string
	lastPrompt string
}

func (m *mockModel) Invoke(ctx context.Context, systemPrompt, prompt string) (string, error) {
	m.calls++
	m.lastSystem = systemPrompt
	m.lastPrompt = prompt
	return m.response, m.err
}

func newTestInvoker(model ModelClient) *FlowInvoker {
	return NewFlowInvoker(model)
}

func TestSuggestCategoriesSuccess(t *testing.T) {
	model := &mockModel{response: `{"suggestedCategories": [{"category": "Food", "confidence": 0.92}, {"category": "Entertainment", "confidence": 0.4}]}`}
	inv := newTestInvoker(model)

	result, err := inv.SuggestCategories(context.Background(), models.SuggestCategoriesInput{
		TransactionDescription: "Starbucks latte",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Fallback {
		t.Fatal("expected a real answer, got fallback")
	}
	if len(result.Output.SuggestedCategories) != 2 {
		t.Fatalf("expected 2 suggestions, got %d", len(result.Output.SuggestedCategories))
	}
	if got := result.Output.SuggestedCategories[0]; got.Category != "Food" || got.Confidence != 0.92 {
		t.Fatalf("unexpected top suggestion: %+v", got)
	}
	if model.calls != 1 {
		t.Fatalf("expected 1 model call, got %d", model.calls)
	}
	if !strings.Contains(model.lastPrompt, "Starbucks latte") {
		t.Fatalf("prompt does not carry the description: %q", model.lastPrompt)
	}
}

func TestSuggestCategoriesStripsMarkdownFences(t *testing.T) {
	model := &mockModel{response: "```json\n{\"suggestedCategories\": [{\"category\": \"Transport\", \"confidence\": 0.8}]}\n```"}
	inv := newTestInvoker(model)

	result, err := inv.SuggestCategories(context.Background(), models.SuggestCategoriesInput{
		TransactionDescription: "Uber ride downtown",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Fallback {
		t.Fatal("fenced JSON should still decode")
	}
	if result.Output.SuggestedCategories[0].Category != "Transport" {
		t.Fatalf("unexpected category: %+v", result.Output.SuggestedCategories[0])
	}
}

func TestSuggestCategoriesInvalidInput(t *testing.T) {
	model := &mockModel{response: `{"suggestedCategories": [{"category": "Food", "confidence": 0.9}]}`}
	inv := newTestInvoker(model)

	_, err := inv.SuggestCategories(context.Background(), models.SuggestCategoriesInput{})
	if err == nil {
		t.Fatal("expected an error for empty description")
	}

	var schemaErr *SchemaValidationError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("expected SchemaValidationError, got %T: %v", err, err)
	}
	if schemaErr.Field != "TransactionDescription" {
		t.Fatalf("unexpected field: %q", schemaErr.Field)
	}
	if model.calls != 0 {
		t.Fatalf("model must not be called for invalid input, got %d calls", model.calls)
	}
}

func TestSuggestCategoriesFallbackOnModelError(t *testing.T) {
	model := &mockModel{err: errors.New("model unavailable")}
	inv := newTestInvoker(model)

	result, err := inv.SuggestCategories(context.Background(), models.SuggestCategoriesInput{
		TransactionDescription: "grocery run",
	})
	if err != nil {
		t.Fatalf("model errors must not escape: %v", err)
	}
	if !result.Fallback {
		t.Fatal("expected fallback")
	}
	want := []models.CategorySuggestion{{Category: "Uncategorized", Confidence: 0.1}}
	if len(result.Output.SuggestedCategories) != 1 || result.Output.SuggestedCategories[0] != want[0] {
		t.Fatalf("unexpected fallback payload: %+v", result.Output.SuggestedCategories)
	}
}

func TestSuggestCategoriesFallbackOnBadOutput(t *testing.T) {
	cases := []struct {
		name     string
		response string
	}{
		{"not json", "Sure! Food is the most likely category."},
		{"empty array", `{"suggestedCategories": []}`},
		{"too many", `{"suggestedCategories": [{"category": "A", "confidence": 0.1}, {"category": "B", "confidence": 0.1}, {"category": "C", "confidence": 0.1}, {"category": "D", "confidence": 0.1}]}`},
		{"confidence above one", `{"suggestedCategories": [{"category": "Food", "confidence": 1.5}]}`},
		{"missing category", `{"suggestedCategories": [{"confidence": 0.5}]}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			model := &mockModel{response: tc.response}
			inv := newTestInvoker(model)

			result, err := inv.SuggestCategories(context.Background(), models.SuggestCategoriesInput{
				TransactionDescription: "dinner out",
			})
			if err != nil {
				t.Fatalf("bad model output must not escape: %v", err)
			}
			if !result.Fallback {
				t.Fatal("expected fallback")
			}
			if result.Output.SuggestedCategories[0].Category != "Uncategorized" {
				t.Fatalf("unexpected fallback payload: %+v", result.Output.SuggestedCategories)
			}
		})
	}
}

func validAdjustInput() models.AdjustBudgetInput {
	spending := models.NewOrderedAmounts(
		models.AmountEntry{Key: "Food", Value: 500},
		models.AmountEntry{Key: "Rent", Value: 1500},
	)
	goals := models.NewOrderedAmounts(
		models.AmountEntry{Key: "Emergency Fund", Value: 10000},
	)
	return models.AdjustBudgetInput{
		Income:        5000,
		Spending:      spending,
		Goals:         goals,
		SavingsRate:   10,
		RiskTolerance: "medium",
	}
}

func TestAdjustBudgetFallbackEchoesInput(t *testing.T) {
	model := &mockModel{err: errors.New("timeout")}
	inv := newTestInvoker(model)

	input := validAdjustInput()
	result, err := inv.AdjustBudget(context.Background(), input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Fallback {
		t.Fatal("expected fallback")
	}
	if result.Output.RecommendedSavingsRate != input.SavingsRate {
		t.Fatalf("fallback must echo the savings rate: got %v", result.Output.RecommendedSavingsRate)
	}
	if len(result.Output.InvestmentAllocation) != 0 {
		t.Fatalf("fallback allocation must be empty: %+v", result.Output.InvestmentAllocation)
	}
	if result.Output.Summary == "" {
		t.Fatal("fallback summary must not be empty")
	}

	gotEntries := result.Output.AdjustedSpending.Entries()
	wantEntries := input.Spending.Entries()
	if len(gotEntries) != len(wantEntries) {
		t.Fatalf("fallback spending entry count mismatch: %d vs %d", len(gotEntries), len(wantEntries))
	}
	for i := range wantEntries {
		if gotEntries[i] != wantEntries[i] {
			t.Fatalf("fallback spending entry %d mismatch: %+v vs %+v", i, gotEntries[i], wantEntries[i])
		}
	}
}

func TestAdjustBudgetRejectsBadRiskTolerance(t *testing.T) {
	model := &mockModel{}
	inv := newTestInvoker(model)

	input := validAdjustInput()
	input.RiskTolerance = "yolo"

	_, err := inv.AdjustBudget(context.Background(), input)
	var schemaErr *SchemaValidationError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("expected SchemaValidationError, got %v", err)
	}
	if schemaErr.Field != "RiskTolerance" {
		t.Fatalf("unexpected field: %q", schemaErr.Field)
	}
	if model.calls != 0 {
		t.Fatalf("model must not be called, got %d calls", model.calls)
	}
}

func TestAdjustPromptRenderingIsDeterministic(t *testing.T) {
	input := validAdjustInput()

	first := renderAdjustPrompt(input)
	second := renderAdjustPrompt(input)
	if first != second {
		t.Fatal("rendering the same input twice must produce identical prompts")
	}

	foodIdx := strings.Index(first, "Food: 500")
	rentIdx := strings.Index(first, "Rent: 1500")
	if foodIdx == -1 || rentIdx == -1 {
		t.Fatalf("prompt missing spending entries: %q", first)
	}
	if foodIdx > rentIdx {
		t.Fatal("spending entries must render in insertion order")
	}
	if !strings.Contains(first, "Food: 500; Rent: 1500") {
		t.Fatalf("spending must render inline with semicolons: %q", first)
	}
}

func validOptimizeInput() models.OptimizeBudgetInput {
	return models.OptimizeBudgetInput{
		Income: 6000,
		CurrentSpending: models.NewOrderedAmounts(
			models.AmountEntry{Key: "Rent", Value: 2000},
			models.AmountEntry{Key: "Food", Value: 600},
			models.AmountEntry{Key: "Transport", Value: 250.5},
		),
		FinancialGoals: models.NewOrderedAmounts(
			models.AmountEntry{Key: "House Deposit", Value: 40000},
			models.AmountEntry{Key: "Vacation", Value: 3000},
		),
		CurrentSavingsRate: 12,
		RiskTolerance:      "high",
	}
}

func TestOptimizeBudgetFallbackIsDeterministic(t *testing.T) {
	model := &mockModel{response: "not json at all"}
	inv := newTestInvoker(model)

	input := validOptimizeInput()
	first, err := inv.OptimizeBudget(context.Background(), input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := inv.OptimizeBudget(context.Background(), input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !first.Fallback || !second.Fallback {
		t.Fatal("expected fallbacks")
	}
	if first.Output.Summary != second.Output.Summary {
		t.Fatal("fallback summary must be deterministic")
	}

	// Spending and savings rate are echoed unchanged
	if got, want := first.Output.RecommendedSavingsRate, input.CurrentSavingsRate; got != want {
		t.Fatalf("savings rate: got %v, want %v", got, want)
	}
	gotSpending := first.Output.OptimizedSpending.Entries()
	wantSpending := input.CurrentSpending.Entries()
	for i := range wantSpending {
		if gotSpending[i] != wantSpending[i] {
			t.Fatalf("optimized spending entry %d: got %+v, want %+v", i, gotSpending[i], wantSpending[i])
		}
	}

	// One analysis row per goal, with the unavailable note
	if len(first.Output.GoalAchievementAnalysis) != 2 {
		t.Fatalf("expected 2 goal rows, got %d", len(first.Output.GoalAchievementAnalysis))
	}
	for _, goal := range first.Output.GoalAchievementAnalysis {
		if goal.Notes != "Detailed analysis unavailable due to an error." {
			t.Fatalf("unexpected goal note: %q", goal.Notes)
		}
	}
	if len(first.Output.ActionableSteps) == 0 {
		t.Fatal("fallback must include actionable steps")
	}
}

func TestOptimizeBudgetRejectsOutOfRangeSavingsRate(t *testing.T) {
	model := &mockModel{}
	inv := newTestInvoker(model)

	input := validOptimizeInput()
	input.CurrentSavingsRate = 150

	_, err := inv.OptimizeBudget(context.Background(), input)
	var schemaErr *SchemaValidationError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("expected SchemaValidationError, got %v", err)
	}
	if schemaErr.Field != "CurrentSavingsRate" {
		t.Fatalf("unexpected field: %q", schemaErr.Field)
	}
	if model.calls != 0 {
		t.Fatalf("model must not be called, got %d calls", model.calls)
	}
}

// The income >= spending + savings relation is advisory: the plan below
// overshoots the income and must still be accepted, since only the prompt
// instructs the model about it.
func TestOptimizeBudgetAcceptsOverspentPlan(t *testing.T) {
	model := &mockModel{response: `{
		"summary": "An aggressive plan.",
		"optimizedSpending": {"Rent": 4000, "Food": 3000},
		"recommendedSavingsRate": 50,
		"investmentSuggestions": [],
		"actionableSteps": ["Earn more."]
	}`}
	inv := newTestInvoker(model)

	input := validOptimizeInput()
	result, err := inv.OptimizeBudget(context.Background(), input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Fallback {
		t.Fatal("overspent but schema-valid plans are accepted as-is")
	}
	if result.Output.OptimizedSpending.Sum() != 7000 {
		t.Fatalf("unexpected spending total: %v", result.Output.OptimizedSpending.Sum())
	}
}

func TestOptimizePromptRendersBulletedAmounts(t *testing.T) {
	prompt := renderOptimizePrompt(validOptimizeInput())

	if !strings.Contains(prompt, "  - Rent: 2000\n  - Food: 600\n  - Transport: 250.5") {
		t.Fatalf("spending must render as ordered bullets: %q", prompt)
	}
	if !strings.Contains(prompt, "- Current Savings Rate: 12%") {
		t.Fatalf("prompt missing savings rate: %q", prompt)
	}
	if strings.Contains(prompt, "Lifestyle Events/Notes") {
		t.Fatalf("empty notes must be omitted: %q", prompt)
	}
}

func TestChatReturnsAnswerWithoutChart(t *testing.T) {
	model := &mockModel{response: `{"answer": "Pay off the higher-rate card first."}`}
	inv := newTestInvoker(model)

	result, err := inv.Chat(context.Background(), models.ChatInput{
		Question: "Which credit card should I pay off first?",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Fallback {
		t.Fatal("expected a real answer")
	}
	if result.Output.Chart != nil {
		t.Fatalf("chart should be absent: %+v", result.Output.Chart)
	}
	if result.Output.Answer == "" {
		t.Fatal("answer must not be empty")
	}
}

func TestChatAcceptsPieChart(t *testing.T) {
	model := &mockModel{response: `{
		"answer": "Here is your spending breakdown.",
		"chart": {"type": "pie", "title": "Spending Breakdown", "data": [{"name": "Food", "value": 500}, {"name": "Rent", "value": 1500}]}
	}`}
	inv := newTestInvoker(model)

	result, err := inv.Chat(context.Background(), models.ChatInput{
		Question:         "Show me my spending breakdown chart",
		FinancialContext: "Top Spending Categories:\n- Rent: $1500.00\n- Food: $500.00",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Fallback {
		t.Fatal("expected a real answer")
	}
	chart := result.Output.Chart
	if chart == nil {
		t.Fatal("expected a chart")
	}
	if chart.Type != "pie" || chart.Title != "Spending Breakdown" {
		t.Fatalf("unexpected chart header: %+v", chart)
	}
	if len(chart.Data) != 2 || chart.Data[0].Name != "Food" || chart.Data[0].Value != 500 {
		t.Fatalf("unexpected chart data: %+v", chart.Data)
	}
}

func TestChatFallsBackOnInvalidChartType(t *testing.T) {
	model := &mockModel{response: `{"answer": "ok", "chart": {"type": "scatter", "title": "Nope", "data": [{"name": "x", "value": 1}]}}`}
	inv := newTestInvoker(model)

	result, err := inv.Chat(context.Background(), models.ChatInput{Question: "chart please"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Fallback {
		t.Fatal("unsupported chart type must trigger fallback")
	}
	if result.Output.Chart != nil {
		t.Fatal("fallback must not carry a chart")
	}
}

func TestChatPromptIncludesContextOnlyWhenPresent(t *testing.T) {
	bare := renderChatPrompt(models.ChatInput{Question: "How do I start investing?"})
	if strings.Contains(bare, "Financial Context") {
		t.Fatalf("context section must be omitted: %q", bare)
	}

	withCtx := renderChatPrompt(models.ChatInput{
		Question:         "How do I start investing?",
		FinancialContext: "Total Income: $9000.00",
	})
	if !strings.Contains(withCtx, "Total Income: $9000.00") {
		t.Fatalf("context must be embedded: %q", withCtx)
	}
}

// Every fallback must itself satisfy its flow's output schema, so downstream
// code never needs a separate failure shape.
func TestFallbacksAreSchemaConformant(t *testing.T) {
	if err := validateSchema("suggestCategories", categorizeFallback(models.SuggestCategoriesInput{})); err != nil {
		t.Fatalf("categorize fallback violates its schema: %v", err)
	}
	if err := validateSchema("adjustBudget", adjustFallback(validAdjustInput())); err != nil {
		t.Fatalf("adjust fallback violates its schema: %v", err)
	}
	if err := validateSchema("optimizeBudget", optimizeFallback(validOptimizeInput())); err != nil {
		t.Fatalf("optimize fallback violates its schema: %v", err)
	}
	if err := validateSchema("chat", chatFallback(models.ChatInput{})); err != nil {
		t.Fatalf("chat fallback violates its schema: %v", err)
	}
}

func TestExtractJSON(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", `{"a": 1}`, `{"a": 1}`},
		{"fenced", "```json\n{\"a\": 1}\n```", `{"a": 1}`},
		{"bare fence", "```\n{\"a\": 1}\n```", `{"a": 1}`},
		{"prose prefix", `Here you go: {"a": 1}`, `{"a": 1}`},
		{"whitespace", "  \n{\"a\": 1}\n  ", `{"a": 1}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := extractJSON(tc.input); got != tc.want {
				t.Fatalf("extractJSON(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestFormatAmount(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{500, "500"},
		{1500, "1500"},
		{250.5, "250.5"},
		{0.1, "0.1"},
		{1234.56, "1234.56"},
	}
	for _, tc := range cases {
		if got := formatAmount(tc.in); got != tc.want {
			t.Fatalf("formatAmount(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
