package decision

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"lifesim/pkg/constants"
)

// ClientConfig configures the chat-completion decision client.
type ClientConfig struct {
	BaseURL       string
	APIKey        string
	Model         string
	Timeout       time.Duration // per-attempt request timeout
	RetryInterval time.Duration // fixed backoff between attempts
	HTTPClient    *http.Client
}

// Client acquires decisions from an OpenAI-compatible chat completions
// endpoint. Every transient failure (network, timeout, malformed reply) is
// retried after a fixed backoff, forever; only context cancellation stops
// the loop.
type Client struct {
	logger        *zap.Logger
	baseURL       string
	apiKey        string
	model         string
	timeout       time.Duration
	retryInterval time.Duration
	httpClient    *http.Client
}

// NewClient builds a decision client, filling unset fields with defaults.
func NewClient(logger *zap.Logger, cfg ClientConfig) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	if strings.TrimSpace(cfg.BaseURL) == "" {
		cfg.BaseURL = constants.DefaultDecisionBaseURL
	}
	if strings.TrimSpace(cfg.Model) == "" {
		cfg.Model = constants.DefaultDecisionModel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = constants.DefaultDecisionTimeoutSeconds * time.Second
	}
	if cfg.RetryInterval <= 0 {
		cfg.RetryInterval = constants.DefaultRetryIntervalSeconds * time.Second
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = http.DefaultClient
	}
	return &Client{
		logger:        logger,
		baseURL:       cfg.BaseURL,
		apiKey:        cfg.APIKey,
		model:         cfg.Model,
		timeout:       cfg.Timeout,
		retryInterval: cfg.RetryInterval,
		httpClient:    cfg.HTTPClient,
	}
}

// Decide issues the decision prompt and retries unconditionally until a
// structurally valid decision is obtained or ctx is cancelled.
func (c *Client) Decide(ctx context.Context, req Request) (Decision, error) {
	prompt := buildPrompt(req)

	attempt := 0
	for {
		if ctx.Err() != nil {
			return Decision{}, ErrCancelled
		}

		dec, err := c.attempt(ctx, prompt)
		if err == nil {
			return dec, nil
		}
		if ctx.Err() != nil {
			return Decision{}, ErrCancelled
		}

		attempt++
		c.logger.Warn("decision attempt failed",
			zap.String("op", "decision.Client.Decide"),
			zap.Int("attempt", attempt),
			zap.Error(err),
		)

		select {
		case <-ctx.Done():
			return Decision{}, ErrCancelled
		case <-time.After(c.retryInterval):
		}
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

func (c *Client) attempt(ctx context.Context, prompt string) (Decision, error) {
	requestBody, err := json.Marshal(chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: prompt},
		},
		Temperature: 0.7,
		MaxTokens:   200,
	})
	if err != nil {
		return Decision{}, fmt.Errorf("marshal decision request: %w", err)
	}

	attemptCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(attemptCtx, http.MethodPost, c.baseURL, bytes.NewReader(requestBody))
	if err != nil {
		return Decision{}, fmt.Errorf("build decision request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	// Credential material is sent only as an Authorization header and is
	// never echoed in errors or log fields.
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	res, err := c.httpClient.Do(httpReq)
	if err != nil {
		return Decision{}, fmt.Errorf("decision request failed: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		body, readErr := io.ReadAll(io.LimitReader(res.Body, 4096))
		if readErr != nil {
			return Decision{}, fmt.Errorf("read decision error body: %w", readErr)
		}
		return Decision{}, fmt.Errorf("decision request status %d: %s", res.StatusCode, strings.TrimSpace(string(body)))
	}

	var payload struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		return Decision{}, fmt.Errorf("decode decision response: %w", err)
	}
	if len(payload.Choices) == 0 {
		return Decision{}, errors.New("decision response has no choices")
	}

	return ParseDecision(payload.Choices[0].Message.Content)
}
