// Package azureopenai is a minimal REST client for the Azure OpenAI chat
// completions endpoint.
package azureopenai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Config holds the four credential slots required to reach a deployment.
type Config struct {
	APIKey     string
	Endpoint   string
	APIVersion string
	Deployment string
}

// Configured reports whether every slot is set. A partially configured
// client must be treated as absent.
func (c Config) Configured() bool {
	return c.APIKey != "" && c.Endpoint != "" && c.APIVersion != "" && c.Deployment != ""
}

// Message is a single role-tagged chat message.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Params bounds a chat completion request.
type Params struct {
	MaxTokens   int     `json:"max_tokens"`
	Temperature float64 `json:"temperature"`
	TopP        float64 `json:"top_p"`
}

// DefaultParams matches the settings used for question answering.
var DefaultParams = Params{MaxTokens: 800, Temperature: 0.7, TopP: 0.9}

// Client calls the Azure OpenAI REST API.
type Client struct {
	cfg        Config
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a chat completion client. The timeout bounds each
// request end to end.
func NewClient(cfg Config, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

type chatRequest struct {
	Messages []Message `json:"messages"`
	Params
}

type chatResponse struct {
	Choices []struct {
		Message Message `json:"message"`
	} `json:"choices"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// ChatCompletion sends the messages to the configured deployment and returns
// the generated text. Failures come back as *APIError where the service
// responded, or as transport errors otherwise.
func (c *Client) ChatCompletion(ctx context.Context, messages []Message, params Params) (string, error) {
	u := fmt.Sprintf("%s/openai/deployments/%s/chat/completions?api-version=%s",
		strings.TrimRight(c.cfg.Endpoint, "/"),
		url.PathEscape(c.cfg.Deployment),
		url.QueryEscape(c.cfg.APIVersion))

	body, err := json.Marshal(chatRequest{Messages: messages, Params: params})
	if err != nil {
		return "", fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("api-key", c.cfg.APIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("chat completion request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		apiErr := &APIError{
			Kind:    kindForStatus(resp.StatusCode),
			Status:  resp.StatusCode,
			Message: errorMessage(raw),
		}
		c.logger.Warn("chat completion failed",
			"status", resp.StatusCode,
			"kind", apiErr.Kind)
		return "", apiErr
	}

	var parsed chatResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", &APIError{Kind: KindQuality, Message: "response contained no choices"}
	}
	return parsed.Choices[0].Message.Content, nil
}

// Probe sends a one-word request to verify connectivity and credentials.
func (c *Client) Probe(ctx context.Context) error {
	_, err := c.ChatCompletion(ctx, []Message{{Role: "user", Content: "Hello"}}, Params{MaxTokens: 10, Temperature: 0.7, TopP: 0.9})
	return err
}

// SetBaseURL overrides the endpoint, used by tests against a local server.
func (c *Client) SetBaseURL(u string) {
	c.cfg.Endpoint = u
}

func errorMessage(raw []byte) string {
	var parsed chatResponse
	if err := json.Unmarshal(raw, &parsed); err == nil && parsed.Error != nil {
		return parsed.Error.Message
	}
	msg := string(raw)
	if len(msg) > 200 {
		msg = msg[:200]
	}
	return msg
}
