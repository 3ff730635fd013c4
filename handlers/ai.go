package handlers

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Coderanger08/FinGenie/middleware"
	"github.com/Coderanger08/FinGenie/models"
	"github.com/Coderanger08/FinGenie/services"
	"github.com/Coderanger08/FinGenie/utils"
)

// AIHandler exposes the model-backed flows. Every endpoint returns a body in
// the flow's output shape; a flow that had to fall back reports fallback=true
// rather than failing the request. Only invalid input produces an error
// status.
type AIHandler struct {
	DB      *sql.DB
	Flows   *services.FlowInvoker
	Context *services.ContextBuilder
}

func (h *AIHandler) SuggestCategories(c *gin.Context) {
	var input models.SuggestCategoriesInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.Flows.SuggestCategories(c.Request.Context(), input)
	if err != nil {
		respondFlowError(c, err)
		return
	}

	utils.LogFlowInvocation("suggestCategories", middleware.GetUserID(c), result.Fallback)
	c.JSON(http.StatusOK, gin.H{
		"suggestedCategories": result.Output.SuggestedCategories,
		"fallback":            result.Fallback,
	})
}

func (h *AIHandler) AdjustBudget(c *gin.Context) {
	var input models.AdjustBudgetInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.Flows.AdjustBudget(c.Request.Context(), input)
	if err != nil {
		respondFlowError(c, err)
		return
	}

	utils.LogFlowInvocation("adjustBudget", middleware.GetUserID(c), result.Fallback)
	c.JSON(http.StatusOK, gin.H{
		"adjustedSpending":       result.Output.AdjustedSpending,
		"recommendedSavingsRate": result.Output.RecommendedSavingsRate,
		"investmentAllocation":   result.Output.InvestmentAllocation,
		"summary":                result.Output.Summary,
		"fallback":               result.Fallback,
	})
}

func (h *AIHandler) OptimizeBudget(c *gin.Context) {
	var input models.OptimizeBudgetInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.Flows.OptimizeBudget(c.Request.Context(), input)
	if err != nil {
		respondFlowError(c, err)
		return
	}

	utils.LogFlowInvocation("optimizeBudget", middleware.GetUserID(c), result.Fallback)
	c.JSON(http.StatusOK, gin.H{
		"summary":                  result.Output.Summary,
		"optimizedSpending":        result.Output.OptimizedSpending,
		"recommendedSavingsRate":   result.Output.RecommendedSavingsRate,
		"investmentSuggestions":    result.Output.InvestmentSuggestions,
		"actionableSteps":          result.Output.ActionableSteps,
		"warningsOrConsiderations": result.Output.WarningsOrConsideration,
		"goalAchievementAnalysis":  result.Output.GoalAchievementAnalysis,
		"fallback":                 result.Fallback,
	})
}

// Chat answers a one-off advisor question without touching history. When the
// caller supplies no financial context the user's own data is summarized
// server-side.
func (h *AIHandler) Chat(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var input models.ChatInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if input.FinancialContext == "" && userID != "" {
		if ctx, err := h.Context.Build(c.Request.Context(), userID, h.userCurrency(userID)); err == nil {
			input.FinancialContext = ctx
		}
	}

	result, err := h.Flows.Chat(c.Request.Context(), input)
	if err != nil {
		respondFlowError(c, err)
		return
	}

	utils.LogFlowInvocation("financialAdvisorChat", userID, result.Fallback)
	response := gin.H{
		"answer":   result.Output.Answer,
		"fallback": result.Fallback,
	}
	if result.Output.Chart != nil {
		response["chart"] = result.Output.Chart
	}
	c.JSON(http.StatusOK, response)
}

func respondFlowError(c *gin.Context, err error) {
	var schemaErr *services.SchemaValidationError
	if errors.As(err, &schemaErr) {
		c.JSON(http.StatusBadRequest, gin.H{"error": schemaErr.Error()})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": "AI request failed"})
}

func (h *AIHandler) userCurrency(userID string) string {
	var currency string
	err := h.DB.QueryRow("SELECT currency FROM users WHERE id = $1", userID).Scan(&currency)
	if err != nil || currency == "" {
		return utils.DefaultCurrency
	}
	return currency
}
