package generative

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/niksmo/shop-assistant/internal/core/domain"
	"github.com/niksmo/shop-assistant/internal/core/port"
	"github.com/niksmo/shop-assistant/pkg/retry"
)

const (
	requestTimeout = 30 * time.Second
	maxAttempts    = 3
	retryDelay     = 500 * time.Millisecond
)

var ErrEmptyCompletion = errors.New("completion has no choices")

var _ port.Generator = (*Client)(nil)

// Client talks to an OpenAI-compatible chat-completions endpoint.
type Client struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
}

func New(baseURL, apiKey, model string) *Client {
	return &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		model:      model,
		httpClient: &http.Client{Timeout: requestTimeout},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

type statusError struct {
	code int
}

func (e statusError) Error() string {
	return fmt.Sprintf("unexpected status %d", e.code)
}

func retryable(err error) bool {
	var se statusError
	if errors.As(err, &se) {
		return se.code == http.StatusTooManyRequests || se.code >= http.StatusInternalServerError
	}
	return false
}

func (c *Client) Generate(
	ctx context.Context, prompt string, p domain.Profile, v domain.Variant,
) (domain.Reply, error) {
	const op = "generative.Client.Generate"

	cfg := retry.Config{
		MaxAttempts: maxAttempts,
		Backoff:     retry.ExponentialBackoff(retryDelay),
		ShouldRetry: retryable,
	}

	content, err := retry.DoWithResult(ctx, cfg, func() (string, error) {
		return c.complete(ctx, prompt, p, v)
	})
	if err != nil {
		return domain.Reply{}, fmt.Errorf("%s: %w", op, err)
	}

	reply := domain.Reply{Message: content}
	if p.Known() {
		reply.UserName = p.Name
	}
	return reply, nil
}

func (c *Client) complete(
	ctx context.Context, prompt string, p domain.Profile, v domain.Variant,
) (string, error) {
	payload, err := json.Marshal(chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt(p, v)},
			{Role: "user", Content: prompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(payload),
	)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("chat request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return "", statusError{code: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	var chatResp chatResponse
	if err := json.Unmarshal(body, &chatResp); err != nil {
		return "", fmt.Errorf("parse response: %w", err)
	}
	if len(chatResp.Choices) == 0 {
		return "", ErrEmptyCompletion
	}

	return chatResp.Choices[0].Message.Content, nil
}

func systemPrompt(p domain.Profile, v domain.Variant) string {
	store := "Angular"
	if v == domain.VariantReact {
		store = "React"
	}

	s := fmt.Sprintf(
		"Eres el asistente de compras de la tienda %s Store. "+
			"Responde en español, con mensajes cortos y amables, "+
			"y recomienda productos del catálogo cuando tenga sentido.",
		store,
	)
	if p.Known() {
		s += fmt.Sprintf(" El cliente se llama %s.", p.Name)
	}
	return s
}
