package llm

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
)

func completionJSON(content string) string {
	return fmt.Sprintf(`{
		"id": "chatcmpl-test",
		"object": "chat.completion",
		"model": "gpt-4o-mini",
		"choices": [
			{"index": 0, "finish_reason": "stop", "message": {"role": "assistant", "content": %q}}
		],
		"usage": {"prompt_tokens": 10, "completion_tokens": 5, "total_tokens": 15}
	}`, content)
}

func newTestClient(t *testing.T, handler http.HandlerFunc, maxRetries uint) Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := New(Config{
		APIKey:     "test-key",
		BaseURL:    server.URL,
		Model:      "gpt-4o-mini",
		MaxRetries: maxRetries,
	})
	require.NoError(t, err)

	return client
}

func TestCompleteReturnsContent(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, completionJSON("Add a README"))
	}, 0)

	text, err := client.Complete(context.Background(), Request{
		SystemPrompt: "advise",
		UserPrompt:   "repoA",
	})
	require.NoError(t, err)
	require.Equal(t, "Add a README", text)
}

func TestCompleteEmptyResponse(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{
			name: "no choices",
			body: `{"id":"x","object":"chat.completion","model":"m","choices":[],"usage":{"prompt_tokens":1,"completion_tokens":0,"total_tokens":1}}`,
		},
		{
			name: "blank content",
			body: completionJSON("   "),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				fmt.Fprint(w, tt.body)
			}, 0)

			_, err := client.Complete(context.Background(), Request{UserPrompt: "x"})
			require.ErrorIs(t, err, ErrEmptyResponse)
		})
	}
}

func TestCompleteQuotaError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		fmt.Fprint(w, `{"error":{"message":"rate limit exceeded","type":"requests","code":"rate_limit_exceeded"}}`)
	}, 2)

	_, err := client.Complete(context.Background(), Request{UserPrompt: "x"})

	// Quota errors are not retried
	require.ErrorIs(t, err, ErrQuota)
}

func TestCompleteRetriesNetworkErrors(t *testing.T) {
	var calls atomic.Int32

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, completionJSON("Add a README"))
	}, 1)

	text, err := client.Complete(context.Background(), Request{UserPrompt: "x"})
	require.NoError(t, err)
	require.Equal(t, "Add a README", text)
	require.Equal(t, int32(2), calls.Load())
}

func TestCompleteNetworkErrorExhaustsRetries(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}, 1)

	_, err := client.Complete(context.Background(), Request{UserPrompt: "x"})
	require.ErrorIs(t, err, ErrNetwork)
}

func TestNewRequiresAPIKey(t *testing.T) {
	_, err := New(Config{})
	require.Error(t, err)
}

func TestModel(t *testing.T) {
	client, err := New(Config{APIKey: "k", Model: "custom-model"})
	require.NoError(t, err)
	require.Equal(t, "custom-model", client.Model())

	client, err = New(Config{APIKey: "k"})
	require.NoError(t, err)
	require.Equal(t, "gpt-4o-mini", client.Model())
}
