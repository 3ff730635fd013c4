package handlers

import (
	"database/sql"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Coderanger08/FinGenie/middleware"
	"github.com/Coderanger08/FinGenie/models"
	"github.com/Coderanger08/FinGenie/services"
)

type TransactionHandler struct {
	Transactions *services.TransactionService
	Categorizer  *services.CategorizerService
	WS           *WSHandler
}

func (h *TransactionHandler) Create(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var req models.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	transaction, err := h.Transactions.Create(c.Request.Context(), userID, req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create transaction"})
		return
	}

	h.WS.BroadcastUpdate(userID, "transaction_created")
	c.JSON(http.StatusCreated, transaction)
}

func (h *TransactionHandler) List(c *gin.Context) {
	userID := middleware.GetUserID(c)

	transactions, err := h.Transactions.List(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list transactions"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"transactions": transactions})
}

func (h *TransactionHandler) Get(c *gin.Context) {
	userID := middleware.GetUserID(c)

	transaction, err := h.Transactions.GetByID(c.Request.Context(), c.Param("id"), userID)
	if err == sql.ErrNoRows {
		c.JSON(http.StatusNotFound, gin.H{"error": "Transaction not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load transaction"})
		return
	}

	c.JSON(http.StatusOK, transaction)
}

func (h *TransactionHandler) Update(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var req models.UpdateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := h.Transactions.Update(c.Request.Context(), c.Param("id"), userID, req)
	if err == sql.ErrNoRows {
		c.JSON(http.StatusNotFound, gin.H{"error": "Transaction not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update transaction"})
		return
	}

	h.WS.BroadcastUpdate(userID, "transaction_updated")
	c.JSON(http.StatusOK, gin.H{"message": "Transaction updated"})
}

func (h *TransactionHandler) Delete(c *gin.Context) {
	userID := middleware.GetUserID(c)

	err := h.Transactions.Delete(c.Request.Context(), c.Param("id"), userID)
	if err == sql.ErrNoRows {
		c.JSON(http.StatusNotFound, gin.H{"error": "Transaction not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete transaction"})
		return
	}

	h.WS.BroadcastUpdate(userID, "transaction_deleted")
	c.JSON(http.StatusOK, gin.H{"message": "Transaction deleted"})
}

// SuggestCategory runs the tiered categorizer (static rules, cache, AI)
// for a description the client is about to save.
func (h *TransactionHandler) SuggestCategory(c *gin.Context) {
	var req struct {
		Description string `json:"description" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	suggestions, fallback, err := h.Categorizer.Suggest(c.Request.Context(), req.Description)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to suggest categories"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"suggestedCategories": suggestions,
		"fallback":            fallback,
	})
}
