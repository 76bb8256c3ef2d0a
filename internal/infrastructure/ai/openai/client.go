// Package openai provides the chat completion client for the kitchen
// assistant. It speaks the OpenAI chat completions API and works against
// any OpenAI-compatible endpoint, including a local Ollama server.
package openai

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/xiuxiu06/leos-kitchen/internal/infrastructure/config"
	"github.com/xiuxiu06/leos-kitchen/internal/ports/outbound"
	"go.uber.org/zap"
)

// Client implements outbound.ChatCompletionService over SSE streaming.
type Client struct {
	baseURL     string
	apiKey      string
	model       string
	maxTokens   int
	temperature float64
	httpClient  *http.Client
	logger      *zap.Logger
}

// NewClient builds the client from the AI config. Without an API key it
// targets the local Ollama endpoint so the assistant works offline.
func NewClient(cfg config.AIConfig, logger *zap.Logger) *Client {
	baseURL := cfg.BaseURL
	model := cfg.OpenAIModel
	if cfg.OpenAIKey == "" {
		baseURL = cfg.OllamaURL
		model = cfg.OllamaModel
	}

	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 2 * time.Minute
	}

	logger = logger.Named("openai-client")
	logger.Info("Chat completion client initialized",
		zap.String("base_url", baseURL),
		zap.String("model", model),
		zap.Bool("local_fallback", cfg.OpenAIKey == ""),
	)

	return &Client{
		baseURL:     strings.TrimRight(baseURL, "/"),
		apiKey:      cfg.OpenAIKey,
		model:       model,
		maxTokens:   cfg.MaxTokens,
		temperature: cfg.Temperature,
		httpClient:  &http.Client{Timeout: timeout},
		logger:      logger,
	}
}

type chatRequest struct {
	Model       string                 `json:"model"`
	Messages    []outbound.ChatMessage `json:"messages"`
	MaxTokens   int                    `json:"max_tokens,omitempty"`
	Temperature float64                `json:"temperature,omitempty"`
	Stream      bool                   `json:"stream"`
}

type chatStreamChunk struct {
	Choices []struct {
		Delta struct {
			Content string `json:"content"`
		} `json:"delta"`
		FinishReason *string `json:"finish_reason"`
	} `json:"choices"`
}

// StreamChat posts the conversation and forwards each content delta to
// onDelta as the server emits it. The concatenated reply is returned once
// the stream finishes.
func (c *Client) StreamChat(ctx context.Context, messages []outbound.ChatMessage, onDelta func(string) error) (string, error) {
	payload := chatRequest{
		Model:       c.model,
		Messages:    messages,
		MaxTokens:   c.maxTokens,
		Temperature: c.temperature,
		Stream:      true,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "text/event-stream")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("completion request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("completion request returned status %d", resp.StatusCode)
	}

	var reply strings.Builder
	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, "data:") {
			continue
		}
		data := strings.TrimSpace(strings.TrimPrefix(line, "data:"))
		if data == "" || data == "[DONE]" {
			if data == "[DONE]" {
				break
			}
			continue
		}

		var chunk chatStreamChunk
		if err := json.Unmarshal([]byte(data), &chunk); err != nil {
			c.logger.Debug("Skipping malformed stream chunk", zap.Error(err))
			continue
		}
		for _, choice := range chunk.Choices {
			if choice.Delta.Content == "" {
				continue
			}
			reply.WriteString(choice.Delta.Content)
			if err := onDelta(choice.Delta.Content); err != nil {
				return reply.String(), err
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return reply.String(), fmt.Errorf("stream interrupted: %w", err)
	}

	return reply.String(), nil
}
