package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Coderanger08/FinGenie/middleware"
	"github.com/Coderanger08/FinGenie/models"
	"github.com/Coderanger08/FinGenie/services"
	"github.com/Coderanger08/FinGenie/utils"
)

// ChatHandler drives the persisted advisor conversation: each question and
// answer is stored, and the model sees a summary of the user's finances.
type ChatHandler struct {
	AI   *AIHandler
	Chat *services.ChatService
	WS   *WSHandler
}

func (h *ChatHandler) SendMessage(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var req models.SendChatMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	input := models.ChatInput{
		Question:         req.Question,
		FinancialContext: req.FinancialContext,
	}
	if input.FinancialContext == "" {
		if ctx, err := h.AI.Context.Build(c.Request.Context(), userID, h.AI.userCurrency(userID)); err == nil {
			input.FinancialContext = ctx
		}
	}

	if _, err := h.Chat.SaveMessage(c.Request.Context(), userID, models.ChatSenderUser, req.Question, nil); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save message"})
		return
	}

	result, err := h.AI.Flows.Chat(c.Request.Context(), input)
	if err != nil {
		respondFlowError(c, err)
		return
	}

	utils.LogFlowInvocation("financialAdvisorChat", userID, result.Fallback)

	aiMessage, err := h.Chat.SaveMessage(c.Request.Context(), userID, models.ChatSenderAI, result.Output.Answer, result.Output.Chart)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save reply"})
		return
	}

	h.WS.BroadcastUpdate(userID, "chat_message")

	c.JSON(http.StatusOK, models.ChatResponse{
		Message: *aiMessage,
		Answer:  result.Output.Answer,
		Chart:   result.Output.Chart,
	})
}

func (h *ChatHandler) GetHistory(c *gin.Context) {
	userID := middleware.GetUserID(c)

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit"})
			return
		}
		limit = parsed
	}

	messages, err := h.Chat.History(c.Request.Context(), userID, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load history"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"messages": messages})
}

func (h *ChatHandler) ClearHistory(c *gin.Context) {
	userID := middleware.GetUserID(c)

	if err := h.Chat.ClearHistory(c.Request.Context(), userID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear history"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "History cleared"})
}
