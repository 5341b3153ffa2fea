package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnthropicClient_CompleteWithSystem(t *testing.T) {
	var gotReq anthropicRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/messages", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("x-api-key"))
		assert.Equal(t, "2023-06-01", r.Header.Get("anthropic-version"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))

		json.NewEncoder(w).Encode(map[string]any{
			"content": []map[string]string{
				{"type": "text", "text": `{"language": "go"}`},
			},
			"stop_reason": "end_turn",
		})
	}))
	defer srv.Close()

	cfg := DefaultAnthropicConfig("test-key")
	cfg.BaseURL = srv.URL
	client := NewAnthropicClientWithConfig(cfg)

	out, err := client.CompleteWithSystem(context.Background(), "be terse", "refactor this")
	require.NoError(t, err)
	assert.Equal(t, `{"language": "go"}`, out)

	assert.Equal(t, "be terse", gotReq.System)
	require.Len(t, gotReq.Messages, 1)
	assert.Equal(t, "user", gotReq.Messages[0].Role)
	assert.Equal(t, "refactor this", gotReq.Messages[0].Content)
	assert.InDelta(t, 0.1, gotReq.Temperature, 1e-9)
}

func TestAnthropicClient_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error": {"type": "rate_limit_error", "message": "slow down"}}`))
	}))
	defer srv.Close()

	cfg := DefaultAnthropicConfig("test-key")
	cfg.BaseURL = srv.URL
	client := NewAnthropicClientWithConfig(cfg)

	_, err := client.Complete(context.Background(), "hi")
	require.Error(t, err)

	var invErr *InvocationError
	require.ErrorAs(t, err, &invErr)
	assert.Equal(t, "anthropic", invErr.Provider)
	assert.Contains(t, err.Error(), "429")
}

func TestAnthropicClient_MissingKey(t *testing.T) {
	client := NewAnthropicClient("")
	_, err := client.Complete(context.Background(), "hi")

	var invErr *InvocationError
	require.ErrorAs(t, err, &invErr)
	assert.Contains(t, err.Error(), "API key not configured")
}

func TestOpenAIClient_CompleteWithSystem(t *testing.T) {
	var gotReq openAIRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))

		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"role": "assistant", "content": "done"}, "finish_reason": "stop"},
			},
		})
	}))
	defer srv.Close()

	cfg := DefaultOpenAIConfig("test-key")
	cfg.BaseURL = srv.URL
	client := NewOpenAIClientWithConfig(cfg)

	out, err := client.CompleteWithSystem(context.Background(), "system text", "user text")
	require.NoError(t, err)
	assert.Equal(t, "done", out)

	require.Len(t, gotReq.Messages, 2)
	assert.Equal(t, "system", gotReq.Messages[0].Role)
	assert.Equal(t, "user", gotReq.Messages[1].Role)
}

func TestOpenAIClient_OmitsSystemMessageWhenEmpty(t *testing.T) {
	var gotReq openAIRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"role": "assistant", "content": "ok"}},
			},
		})
	}))
	defer srv.Close()

	cfg := DefaultOpenAIConfig("test-key")
	cfg.BaseURL = srv.URL
	client := NewOpenAIClientWithConfig(cfg)

	_, err := client.Complete(context.Background(), "just user")
	require.NoError(t, err)
	require.Len(t, gotReq.Messages, 1)
	assert.Equal(t, "user", gotReq.Messages[0].Role)
}

func TestSetModel(t *testing.T) {
	client := NewAnthropicClient("k")
	client.SetModel("claude-opus-4-20250514")
	assert.Equal(t, "claude-opus-4-20250514", client.GetModel())
}
