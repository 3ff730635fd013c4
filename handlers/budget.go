package handlers

import (
	"database/sql"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/lib/pq"

	"github.com/Coderanger08/FinGenie/middleware"
	"github.com/Coderanger08/FinGenie/models"
	"github.com/Coderanger08/FinGenie/services"
)

type BudgetHandler struct {
	Budgets *services.BudgetService
	WS      *WSHandler
}

func (h *BudgetHandler) Create(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var req models.CreateBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	budget, err := h.Budgets.Create(c.Request.Context(), userID, req)
	if err != nil {
		if isUniqueViolation(err) {
			c.JSON(http.StatusConflict, gin.H{"error": "Budget for this category already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create budget"})
		return
	}

	h.WS.BroadcastUpdate(userID, "budget_created")
	c.JSON(http.StatusCreated, budget)
}

func (h *BudgetHandler) List(c *gin.Context) {
	userID := middleware.GetUserID(c)

	budgets, err := h.Budgets.List(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list budgets"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"budgets": budgets})
}

func (h *BudgetHandler) Update(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var req models.UpdateBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := h.Budgets.Update(c.Request.Context(), c.Param("id"), userID, req)
	if err == sql.ErrNoRows {
		c.JSON(http.StatusNotFound, gin.H{"error": "Budget not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update budget"})
		return
	}

	h.WS.BroadcastUpdate(userID, "budget_updated")
	c.JSON(http.StatusOK, gin.H{"message": "Budget updated"})
}

func (h *BudgetHandler) Delete(c *gin.Context) {
	userID := middleware.GetUserID(c)

	err := h.Budgets.Delete(c.Request.Context(), c.Param("id"), userID)
	if err == sql.ErrNoRows {
		c.JSON(http.StatusNotFound, gin.H{"error": "Budget not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete budget"})
		return
	}

	h.WS.BroadcastUpdate(userID, "budget_deleted")
	c.JSON(http.StatusOK, gin.H{"message": "Budget deleted"})
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return strings.Contains(err.Error(), "duplicate key")
}
