package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/Coderanger08/FinGenie/utils"
)

// ============================================================================
// CLAUDE CLIENT
// The one external boundary of the AI flow layer. Treated as opaque: the flow
// invoker only needs prompt text in, raw text out.
// ============================================================================

// ModelClient is the model-call boundary consumed by the flow invoker.
type ModelClient interface {
	Invoke(ctx context.Context, systemPrompt, prompt string) (string, error)
}

type ClaudeClient struct {
	apiKey     string
	model      string
	maxTokens  int
	httpClient *http.Client
}

type claudeMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type claudeRequest struct {
	Model     string          `json:"model"`
	MaxTokens int             `json:"max_tokens"`
	System    string          `json:"system,omitempty"`
	Messages  []claudeMessage `json:"messages"`
}

type claudeResponse struct {
	ID      string `json:"id"`
	Type    string `json:"type"`
	Role    string `json:"role"`
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Model      string `json:"model"`
	StopReason string `json:"stop_reason"`
	Usage      struct {
		InputTokens  int `json:"input_tokens"`
		OutputTokens int `json:"output_tokens"`
	} `json:"usage"`
}

func NewClaudeClient() *ClaudeClient {
	model := os.Getenv("CLAUDE_MODEL")
	if model == "" {
		model = "claude-3-5-sonnet-latest"
	}

	return &ClaudeClient{
		apiKey:    os.Getenv("ANTHROPIC_API_KEY"),
		model:     model,
		maxTokens: 4000,
		// Backstop only: the flow invoker's per-invocation context deadline
		// is shorter and is the one that governs.
		httpClient: &http.Client{Timeout: 2 * time.Minute},
	}
}

// Invoke sends one prompt and returns the model's raw text reply.
func (c *ClaudeClient) Invoke(ctx context.Context, systemPrompt, prompt string) (string, error) {
	if c.apiKey == "" {
		return "", fmt.Errorf("ANTHROPIC_API_KEY not set")
	}

	requestBody := claudeRequest{
		Model:     c.model,
		MaxTokens: c.maxTokens,
		System:    systemPrompt,
		Messages: []claudeMessage{
			{
				Role:    "user",
				Content: prompt,
			},
		},
	}

	return c.executeRequest(ctx, requestBody)
}

func (c *ClaudeClient) executeRequest(ctx context.Context, requestBody claudeRequest) (string, error) {
	jsonData, err := json.Marshal(requestBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx,
		"POST",
		"https://api.anthropic.com/v1/messages",
		bytes.NewBuffer(jsonData),
	)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("anthropic-version", "2023-06-01")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(body))
	}

	var claudeResp claudeResponse
	if err := json.Unmarshal(body, &claudeResp); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}

	if len(claudeResp.Content) == 0 {
		return "", fmt.Errorf("empty response from Claude")
	}

	utils.SafeDebug("[Claude] Model: %s | Tokens: In %d / Out %d | Cost: $%.5f",
		claudeResp.Model,
		claudeResp.Usage.InputTokens,
		claudeResp.Usage.OutputTokens,
		EstimateCost(claudeResp.Usage.InputTokens, claudeResp.Usage.OutputTokens),
	)

	return claudeResp.Content[0].Text, nil
}

// Pricing (approximate for Claude 3.5 Sonnet)
const (
	inputTokenPrice  = 0.000003 // $3 per million
	outputTokenPrice = 0.000015 // $15 per million
)

func EstimateCost(inputTokens, outputTokens int) float64 {
	return float64(inputTokens)*inputTokenPrice + float64(outputTokens)*outputTokenPrice
}
