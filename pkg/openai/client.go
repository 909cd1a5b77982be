// Package openai wraps the chat-completions endpoint of an OpenAI-compatible
// provider. The orchestration layer only ever needs the raw text content of
// the first choice; everything else about the wire format stays in here.
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	apperrors "github.com/WanderWise/wander-wise-backend/errors"
	"github.com/WanderWise/wander-wise-backend/logger"
)

// completionTemperature balances variety with consistency across runs.
const completionTemperature = 0.7

// ClientInterface defines the interface for completion client operations
type ClientInterface interface {
	CreateChatCompletion(ctx context.Context, prompt string, jsonMode bool) (string, error)
}

type Client struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatRequest struct {
	Model          string          `json:"model"`
	Messages       []chatMessage   `json:"messages"`
	Temperature    float64         `json:"temperature"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type chatChoice struct {
	Message chatMessage `json:"message"`
}

type chatResponse struct {
	Choices []chatChoice `json:"choices"`
}

// NewClient builds a completion client. The model name is injected once at
// construction time and never re-read from the environment.
func NewClient(apiKey, model, baseURL string, timeout time.Duration) *Client {
	return &Client{
		apiKey:  apiKey,
		model:   model,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Model returns the configured completion model identifier.
func (c *Client) Model() string {
	return c.model
}

// CreateChatCompletion sends a single user-role message with the given prompt
// and returns the trimmed text content of the first choice. When jsonMode is
// set the provider is asked for JSON-constrained output. Provider errors
// propagate unmodified; retry policy belongs to the caller.
func (c *Client) CreateChatCompletion(ctx context.Context, prompt string, jsonMode bool) (string, error) {
	log := logger.GetLogger()

	reqBody := chatRequest{
		Model:       c.model,
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
		Temperature: completionTemperature,
	}
	if jsonMode {
		reqBody.ResponseFormat = &responseFormat{Type: "json_object"}
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to encode completion request: %w", err)
	}

	endpoint := c.baseURL + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	log.Debugw("Executing completion request", "model", c.model, "json_mode", jsonMode, "prompt_length", len(prompt))
	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Errorw("Failed to execute completion request", "error", err)
		return "", fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		log.Warnw("Completion provider returned non-OK status", "statusCode", resp.StatusCode)
		return "", fmt.Errorf("completion provider returned status %d: %s", resp.StatusCode, string(body))
	}

	var chatResp chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		log.Errorw("Failed to decode completion response", "error", err)
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	if len(chatResp.Choices) == 0 {
		return "", apperrors.EmptyCompletion("model: " + c.model)
	}

	content := strings.TrimSpace(chatResp.Choices[0].Message.Content)
	if content == "" {
		return "", apperrors.EmptyCompletion("model: " + c.model)
	}

	log.Debugw("Completion response received", "content_length", len(content))
	return content, nil
}
