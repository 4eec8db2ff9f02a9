package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/golos-labs/golos-cli/internal/core/ports/driven"
)

func TestLLMService_Chat(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req chatCompletionRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "test-model", req.Model)
		require.Len(t, req.Messages, 2)
		assert.Equal(t, "system", req.Messages[0].Role)
		assert.Equal(t, 256, req.MaxTokens)

		w.Write([]byte(`{"choices": [{"message": {"content": "{\"tool\": \"no_tool_available\"}"}}]}`))
	}))
	defer server.Close()

	service := NewLLMService(LLMConfig{
		APIKey:  "test-key",
		BaseURL: server.URL + "/v1",
		Model:   "test-model",
	})

	reply, err := service.Chat(context.Background(), []driven.ChatMessage{
		{Role: "system", Content: "map requests to tools"},
		{Role: "user", Content: "привет"},
	}, driven.ChatOptions{MaxTokens: 256, Temperature: 0.1})

	require.NoError(t, err)
	assert.Equal(t, `{"tool": "no_tool_available"}`, reply)
}

func TestLLMService_Chat_NoAuthHeaderWithoutKey(t *testing.T) {
	// Local endpoints run without credentials.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		w.Write([]byte(`{"choices": [{"message": {"content": "ok"}}]}`))
	}))
	defer server.Close()

	service := NewLLMService(LLMConfig{BaseURL: server.URL})

	reply, err := service.Chat(context.Background(), []driven.ChatMessage{
		{Role: "user", Content: "hi"},
	}, driven.ChatOptions{})

	require.NoError(t, err)
	assert.Equal(t, "ok", reply)
}

func TestLLMService_Chat_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error": {"message": "invalid api key", "type": "auth"}}`))
	}))
	defer server.Close()

	service := NewLLMService(LLMConfig{APIKey: "bad", BaseURL: server.URL})

	_, err := service.Chat(context.Background(), []driven.ChatMessage{
		{Role: "user", Content: "hi"},
	}, driven.ChatOptions{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid api key")
}

func TestLLMService_Chat_NoChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"choices": []}`))
	}))
	defer server.Close()

	service := NewLLMService(LLMConfig{BaseURL: server.URL})

	_, err := service.Chat(context.Background(), []driven.ChatMessage{
		{Role: "user", Content: "hi"},
	}, driven.ChatOptions{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no response choices")
}

func TestLLMService_Defaults(t *testing.T) {
	service := NewLLMService(LLMConfig{})

	assert.Equal(t, DefaultLLMModel, service.ModelName())
	assert.Equal(t, DefaultBaseURL, service.baseURL)
}

func TestLLMService_Ping(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/models", r.URL.Path)
		w.Write([]byte(`{"data": []}`))
	}))
	defer server.Close()

	service := NewLLMService(LLMConfig{BaseURL: server.URL})

	assert.NoError(t, service.Ping(context.Background()))
}

func TestLLMService_Ping_Failure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	service := NewLLMService(LLMConfig{BaseURL: server.URL})

	assert.Error(t, service.Ping(context.Background()))
}
