package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Coderanger08/FinGenie/models"
	"github.com/Coderanger08/FinGenie/utils"
)

// ============================================================================
// CHAT HISTORY SERVICE
// Persists advisor conversation turns. Message text is encrypted at rest;
// chart payloads are stored as JSONB alongside the AI turn they belong to.
// ============================================================================

type ChatService struct {
	db *sql.DB
}

func NewChatService(db *sql.DB) *ChatService {
	return &ChatService{db: db}
}

// SaveMessage stores one conversation turn. chart may be nil for user turns
// and for AI turns without a visualization.
func (s *ChatService) SaveMessage(ctx context.Context, userID, sender, text string, chart *models.ChartConfig) (*models.ChatMessage, error) {
	encrypted, err := utils.Encrypt([]byte(text))
	if err != nil {
		return nil, fmt.Errorf("failed to encrypt chat message: %w", err)
	}

	var chartJSON []byte
	if chart != nil {
		chartJSON, err = json.Marshal(chart)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal chart: %w", err)
		}
	}

	msg := models.ChatMessage{
		ID:        uuid.New().String(),
		UserID:    userID,
		Sender:    sender,
		Text:      text,
		Chart:     chartJSON,
		CreatedAt: time.Now().UTC(),
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO chat_messages (id, user_id, sender, body, chart, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		msg.ID, msg.UserID, msg.Sender, encrypted, nullableJSON(chartJSON), msg.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to save chat message: %w", err)
	}

	return &msg, nil
}

// History returns the user's conversation oldest-first. A limit > 0 caps it
// to the most recent turns: rows are selected newest-first so the cap keeps
// the tail of the conversation, then re-sorted into reading order.
func (s *ChatService) History(ctx context.Context, userID string, limit int) ([]models.ChatMessage, error) {
	query := `
		SELECT id, user_id, sender, body, chart, created_at
		FROM chat_messages
		WHERE user_id = $1
		ORDER BY created_at DESC`
	args := []interface{}{userID}
	if limit > 0 {
		query += " LIMIT $2"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to load chat history: %w", err)
	}
	defer rows.Close()

	var messages []models.ChatMessage
	for rows.Next() {
		var msg models.ChatMessage
		var encrypted string
		var chart sql.NullString
		if err := rows.Scan(&msg.ID, &msg.UserID, &msg.Sender, &encrypted, &chart, &msg.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan chat message: %w", err)
		}
		plaintext, err := utils.Decrypt(encrypted)
		if err != nil {
			return nil, fmt.Errorf("failed to decrypt chat message %s: %w", utils.MaskID(msg.ID), err)
		}
		msg.Text = string(plaintext)
		if chart.Valid {
			msg.Chart = json.RawMessage(chart.String)
		}
		messages = append(messages, msg)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	oldestFirst(messages)
	return messages, nil
}

// oldestFirst flips a newest-first result set into reading order.
func oldestFirst(messages []models.ChatMessage) {
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
}

// ClearHistory deletes every stored turn for the user.
func (s *ChatService) ClearHistory(ctx context.Context, userID string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM chat_messages WHERE user_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("failed to clear chat history: %w", err)
	}
	return nil
}

func nullableJSON(b []byte) interface{} {
	if len(b) == 0 {
		return nil
	}
	return string(b)
}
