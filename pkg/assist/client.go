// Package assist talks to an OpenAI-compatible chat-completions API.
//
// The client serves two roles: generating the narrative project
// analysis, and proposing candidate floor layouts as the planner's
// external collaborator. Both are strictly optional; callers must
// degrade gracefully when no client is configured, and every model
// response is treated as untrusted input.
package assist

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/nirmanlabs/nirman/pkg/errors"
	"github.com/nirmanlabs/nirman/pkg/httputil"
)

// Defaults for the chat-completions client.
const (
	DefaultBaseURL = "https://api.openai.com/v1"
	DefaultModel   = "gpt-4o-mini"
	DefaultTimeout = 30 * time.Second

	// Sampling temperature for narrative output.
	temperature = 0.7
)

// Environment variables consulted by [ConfigFromEnv]. The prefixed pair
// takes precedence so gateway deployments can point the client at a
// proxy without touching the standard variable.
const (
	EnvBaseURL = "AI_INTEGRATIONS_OPENAI_BASE_URL"
	EnvAPIKey  = "AI_INTEGRATIONS_OPENAI_API_KEY"
	EnvAPIKey2 = "OPENAI_API_KEY"
)

// Config holds the connection settings for the assist client.
type Config struct {
	BaseURL string        `toml:"base_url"`
	APIKey  string        `toml:"api_key"`
	Model   string        `toml:"model"`
	Timeout time.Duration `toml:"timeout"`
}

// ConfigFromEnv builds a Config from the environment. The returned
// config may lack an API key; [New] rejects it in that case, which is
// how "assist disabled" is expressed.
func ConfigFromEnv() Config {
	cfg := Config{
		BaseURL: os.Getenv(EnvBaseURL),
		APIKey:  os.Getenv(EnvAPIKey),
	}
	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv(EnvAPIKey2)
	}
	return cfg
}

// Enabled reports whether the config carries enough to build a client.
func (c Config) Enabled() bool { return c.APIKey != "" }

// Client is a minimal OpenAI-compatible chat-completions client.
type Client struct {
	http    *http.Client
	baseURL string
	apiKey  string
	model   string
	logger  *log.Logger
}

// New creates a client. Missing optional fields get defaults; a missing
// API key is an INVALID_CONFIG error.
func New(cfg Config, logger *log.Logger) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "assist: missing API key")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Client{
		http:    &http.Client{Timeout: cfg.Timeout},
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
		logger:  logger,
	}, nil
}

// Model returns the configured model name.
func (c *Client) Model() string { return c.model }

// ============================================================================
// Chat completions wire types
// ============================================================================

type chatRequest struct {
	Model          string        `json:"model"`
	Messages       []chatMessage `json:"messages"`
	ResponseFormat *responseFmt  `json:"response_format,omitempty"`
	Temperature    float64       `json:"temperature"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFmt struct {
	Type string `json:"type"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// completeJSON sends one prompt, asks for a JSON object response, and
// decodes the model output into out. Transient HTTP failures are
// retried with backoff; a malformed model reply is an INVALID_INPUT
// error, not a retry.
func (c *Client) completeJSON(ctx context.Context, prompt string, out any) error {
	body, err := json.Marshal(chatRequest{
		Model:          c.model,
		Messages:       []chatMessage{{Role: "user", Content: prompt}},
		ResponseFormat: &responseFmt{Type: "json_object"},
		Temperature:    temperature,
	})
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "assist: encode request")
	}

	var content string
	err = httputil.RetryWithBackoff(ctx, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost,
			c.baseURL+"/chat/completions", bytes.NewReader(body))
		if err != nil {
			return err
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+c.apiKey)

		resp, err := c.http.Do(req)
		if err != nil {
			return &httputil.RetryableError{Err: errors.Wrap(errors.ErrCodeNetwork, err, "assist: request failed")}
		}
		defer resp.Body.Close()

		if err := checkStatus(resp.StatusCode); err != nil {
			return err
		}

		var parsed chatResponse
		if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
			return errors.Wrap(errors.ErrCodeNetwork, err, "assist: decode response")
		}
		if len(parsed.Choices) == 0 {
			return errors.New(errors.ErrCodeInvalidInput, "assist: response has no choices")
		}
		content = parsed.Choices[0].Message.Content
		return nil
	})
	if err != nil {
		return err
	}

	if err := json.Unmarshal([]byte(content), out); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "assist: model returned malformed JSON")
	}
	return nil
}

// checkStatus maps HTTP status codes onto retry behaviour: 5xx and 429
// are transient, everything else non-2xx fails immediately.
func checkStatus(code int) error {
	switch {
	case code >= 200 && code < 300:
		return nil
	case code >= 500 || code == http.StatusTooManyRequests:
		return &httputil.RetryableError{
			Err: errors.New(errors.ErrCodeNetwork, "assist: status %d", code),
		}
	default:
		return errors.New(errors.ErrCodeNetwork, "assist: status %d", code)
	}
}

// inr formats an amount for prompts: plain rupees with no grouping.
func inr(amount float64) string {
	return fmt.Sprintf("₹%.0f", amount)
}
