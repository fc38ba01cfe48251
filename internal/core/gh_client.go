package core

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"net/http"
	"strings"
	"time"

	"github.com/google/go-github/v82/github"
	"golang.org/x/oauth2"
)

// NewGitHubClient creates a new authenticated GitHub client using the
// provided token. This is the standard way to create GitHub API clients
// throughout the codebase.
func NewGitHubClient(ctx context.Context, token string) *github.Client {
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	tc := oauth2.NewClient(ctx, ts)
	return github.NewClient(tc)
}

// RateLimitConfig controls retry behavior for GitHub API calls
type RateLimitConfig struct {
	MaxRetries        int
	InitialBackoff    time.Duration
	MaxBackoff        time.Duration
	BackoffMultiplier float64
}

// DefaultRateLimitConfig returns conservative retry defaults
func DefaultRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{
		MaxRetries:        3,
		InitialBackoff:    time.Second,
		MaxBackoff:        30 * time.Second,
		BackoffMultiplier: 2.0,
	}
}

// GitHub wraps the go-github client with rate-limit handling and the
// error taxonomy used by the rest of the application.
type GitHub struct {
	client         *github.Client
	rateCfg        RateLimitConfig
	includePrivate bool
	logger         *slog.Logger
}

// NewGitHub creates a GitHub client from a token.
func NewGitHub(token string, includePrivate bool) *GitHub {
	return &GitHub{
		client:         NewGitHubClient(context.Background(), token),
		rateCfg:        DefaultRateLimitConfig(),
		includePrivate: includePrivate,
		logger:         slog.Default(),
	}
}

// NewGitHubWithClient wraps an existing go-github client. Used by tests
// to point the client at a stub server.
func NewGitHubWithClient(client *github.Client, includePrivate bool) *GitHub {
	return &GitHub{
		client:         client,
		rateCfg:        DefaultRateLimitConfig(),
		includePrivate: includePrivate,
		logger:         slog.Default(),
	}
}

// calculateBackoff computes exponential backoff with jitter
func (g *GitHub) calculateBackoff(attempt int) time.Duration {
	backoff := float64(g.rateCfg.InitialBackoff) * math.Pow(g.rateCfg.BackoffMultiplier, float64(attempt))

	if backoff > float64(g.rateCfg.MaxBackoff) {
		backoff = float64(g.rateCfg.MaxBackoff)
	}

	// 10% jitter
	jitter := backoff * 0.1 * (rand.Float64()*2 - 1)
	backoff += jitter

	return time.Duration(backoff)
}

// isTransientError checks if an error is transient and retryable.
// Responses carrying a status code are judged by the code; transport
// errors by their message.
func isTransientError(err error) bool {
	if err == nil {
		return false
	}

	var errResp *github.ErrorResponse
	if errors.As(err, &errResp) && errResp.Response != nil {
		switch errResp.Response.StatusCode {
		case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
			return true
		default:
			return false
		}
	}

	errStr := strings.ToLower(err.Error())
	transientIndicators := []string{
		"timeout",
		"connection refused",
		"connection reset",
		"temporary failure",
		"network is unreachable",
		"no such host",
	}

	for _, indicator := range transientIndicators {
		if strings.Contains(errStr, indicator) {
			return true
		}
	}

	return false
}

// call runs fn with rate-limit waits and bounded transient retries.
// fn returns the API response so rate headers can be inspected.
func (g *GitHub) call(ctx context.Context, what string, fn func() (*github.Response, error)) error {
	var lastErr error

	for attempt := 0; attempt <= g.rateCfg.MaxRetries; attempt++ {
		resp, err := fn()
		if err == nil {
			return nil
		}

		lastErr = err

		var rateLimitErr *github.RateLimitError
		if errors.As(err, &rateLimitErr) {
			resetTime := rateLimitErr.Rate.Reset.Time
			waitDuration := time.Until(resetTime) + time.Second // add 1s buffer

			g.logger.Warn("rate limited by GitHub API",
				slog.String("operation", what),
				slog.Int("attempt", attempt+1),
				slog.Duration("wait_duration", waitDuration),
				slog.Time("reset_at", resetTime),
			)

			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(waitDuration):
				continue
			}
		}

		var abuseErr *github.AbuseRateLimitError
		if errors.As(err, &abuseErr) {
			retryAfter := abuseErr.GetRetryAfter()
			g.logger.Warn("abuse rate limit hit",
				slog.String("operation", what),
				slog.Int("attempt", attempt+1),
				slog.Duration("retry_after", retryAfter),
			)

			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(retryAfter):
				continue
			}
		}

		if isTransientError(err) {
			backoff := g.calculateBackoff(attempt)
			g.logger.Warn("transient error, retrying",
				slog.String("operation", what),
				slog.Int("attempt", attempt+1),
				slog.Duration("backoff", backoff),
				slog.String("error", err.Error()),
			)

			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
				continue
			}
		}

		return classifyGitHubError(what, err, resp)
	}

	return classifyGitHubError(what, lastErr, nil)
}

// classifyGitHubError maps an API error onto the package error kinds.
func classifyGitHubError(what string, err error, resp *github.Response) error {
	if err == nil {
		return nil
	}

	status := 0

	var errResp *github.ErrorResponse
	if errors.As(err, &errResp) && errResp.Response != nil {
		status = errResp.Response.StatusCode
	} else if resp != nil && resp.Response != nil {
		status = resp.StatusCode
	}

	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return fmt.Errorf("%s: %w: %s", what, ErrAuth, err)
	case status == http.StatusNotFound:
		return fmt.Errorf("%s: %w", what, ErrNotFound)
	case status >= 500:
		return fmt.Errorf("%s: %w: %s", what, ErrNetwork, err)
	case status == 0:
		// No HTTP response at all means the transport failed
		return fmt.Errorf("%s: %w: %s", what, ErrNetwork, err)
	default:
		return fmt.Errorf("%s: %w", what, err)
	}
}

// safeString dereferences a possibly-nil string pointer
func safeString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
