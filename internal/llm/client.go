// Package llm wraps the OpenAI-compatible completion API behind a small
// client interface with the error taxonomy the rest of the application
// expects.
package llm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// Error kinds surfaced by the completion client.
var (
	// ErrQuota indicates the API reported rate-limit or quota exhaustion
	ErrQuota = errors.New("llm: quota exhausted")

	// ErrEmptyResponse indicates the API returned no usable content
	ErrEmptyResponse = errors.New("llm: empty response")

	// ErrNetwork indicates a transport-level failure
	ErrNetwork = errors.New("llm: network error")
)

// Client is the completion interface used by the suggestion generator.
type Client interface {
	Complete(ctx context.Context, req Request) (string, error)
	Model() string
}

// Request describes one completion call.
type Request struct {
	SystemPrompt string
	UserPrompt   string
	MaxTokens    int
	Temperature  *float64 // nil = model default
}

// Config holds completion client configuration.
type Config struct {
	APIKey     string
	BaseURL    string // Optional: custom API endpoint
	Model      string
	MaxRetries uint // Bounded retry for network errors only; 0 disables
}

type client struct {
	openai     openai.Client
	model      string
	maxRetries uint
}

// New creates a completion client.
func New(cfg Config) (Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		// Retry policy lives in this package, not in the SDK
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	model := cfg.Model
	if model == "" {
		model = "gpt-4o-mini"
	}

	return &client{
		openai:     openai.NewClient(opts...),
		model:      model,
		maxRetries: cfg.MaxRetries,
	}, nil
}

func (c *client) Complete(ctx context.Context, req Request) (string, error) {
	attempts := c.maxRetries + 1

	return retry.DoWithData(func() (string, error) {
		return c.complete(ctx, req)
	},
		retry.Attempts(attempts),
		retry.Delay(time.Second),
		retry.Context(ctx),
		retry.LastErrorOnly(true),
		retry.RetryIf(func(err error) bool {
			return errors.Is(err, ErrNetwork)
		}),
		retry.OnRetry(func(n uint, err error) {
			slog.Warn("retrying completion call",
				slog.Uint64("attempt", uint64(n)+1),
				slog.String("error", err.Error()),
			)
		}),
	)
}

func (c *client) complete(ctx context.Context, req Request) (string, error) {
	maxTokens := req.MaxTokens
	if maxTokens == 0 {
		maxTokens = 1000
	}

	messages := []openai.ChatCompletionMessageParamUnion{
		openai.SystemMessage(req.SystemPrompt),
		openai.UserMessage(req.UserPrompt),
	}

	params := openai.ChatCompletionNewParams{
		Model:     c.model,
		Messages:  messages,
		MaxTokens: openai.Int(int64(maxTokens)),
	}
	if req.Temperature != nil {
		params.Temperature = openai.Float(*req.Temperature)
	}

	start := time.Now()
	resp, err := c.openai.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", classifyError(err)
	}

	slog.Debug("completion finished",
		slog.String("model", c.model),
		slog.Int64("duration_ms", time.Since(start).Milliseconds()),
		slog.Int64("prompt_tokens", resp.Usage.PromptTokens),
		slog.Int64("completion_tokens", resp.Usage.CompletionTokens),
	)

	if len(resp.Choices) == 0 {
		return "", ErrEmptyResponse
	}

	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if content == "" {
		return "", ErrEmptyResponse
	}

	return content, nil
}

func (c *client) Model() string {
	return c.model
}

// classifyError maps an API error onto the package error kinds.
func classifyError(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.StatusCode == http.StatusTooManyRequests:
			return fmt.Errorf("%w: %s", ErrQuota, err)
		case apiErr.Code == "insufficient_quota":
			return fmt.Errorf("%w: %s", ErrQuota, err)
		case apiErr.StatusCode >= 500:
			return fmt.Errorf("%w: %s", ErrNetwork, err)
		default:
			return fmt.Errorf("completion call: %w", err)
		}
	}

	// No API response at all means the transport failed
	return fmt.Errorf("%w: %s", ErrNetwork, err)
}

// Temp returns a pointer to a temperature value.
func Temp(t float64) *float64 {
	return &t
}
