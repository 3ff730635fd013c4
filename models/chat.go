package models

import (
	"encoding/json"
	"time"
)

// ============================================================================
// CHAT HISTORY
// ============================================================================

const (
	ChatSenderUser = "user"
	ChatSenderAI   = "ai"
)

type ChatMessage struct {
	ID        string          `json:"id"`
	UserID    string          `json:"user_id"`
	Sender    string          `json:"sender"` // user | ai
	Text      string          `json:"text"`
	Chart     json.RawMessage `json:"chart,omitempty"` // serialized ChartConfig, AI messages only
	CreatedAt time.Time       `json:"created_at"`
}

type SendChatMessageRequest struct {
	Question string `json:"question" binding:"required"`
	// Optional caller-assembled context. When absent the server builds one
	// from the user's transactions.
	FinancialContext string `json:"financial_context,omitempty"`
}

type ChatResponse struct {
	Message ChatMessage  `json:"message"`
	Answer  string       `json:"answer"`
	Chart   *ChartConfig `json:"chart,omitempty"`
}
