package llm

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrsingh-rishi/voice-companion/config"
)

func testEntry() *logrus.Entry {
	logger, _ := test.NewNullLogger()
	return logrus.NewEntry(logger)
}

type capturedRequest struct {
	Path       string
	APIVersion string
	APIKey     string
	Body       map[string]any
}

func newAzureServer(t *testing.T, status int, response string) (*httptest.Server, *capturedRequest) {
	t.Helper()
	captured := &capturedRequest{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured.Path = r.URL.Path
		captured.APIVersion = r.URL.Query().Get("api-version")
		captured.APIKey = r.Header.Get("api-key")
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &captured.Body)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, response)
	}))
	t.Cleanup(server.Close)
	return server, captured
}

func TestAzureOpenAIComplete(t *testing.T) {
	server, captured := newAzureServer(t, http.StatusOK, `{
		"id": "chatcmpl-1",
		"object": "chat.completion",
		"choices": [{"index": 0, "message": {"role": "assistant", "content": "Hi there."}, "finish_reason": "stop"}],
		"usage": {"prompt_tokens": 12, "completion_tokens": 3, "total_tokens": 15}
	}`)

	client, err := NewAzureOpenAIClient(config.OpenAIConfig{
		Endpoint:   server.URL,
		APIKey:     "secret",
		Deployment: "companion-gpt",
		APIVersion: "2024-02-01",
	}, testEntry())
	require.NoError(t, err)

	reply, err := client.Complete(context.Background(), Request{
		Messages: []Message{
			{Role: RoleSystem, Content: "be nice"},
			{Role: RoleUser, Content: "hello"},
		},
		MaxTokens:   100,
		Temperature: 0.7,
	})
	require.NoError(t, err)
	assert.Equal(t, "Hi there.", reply)

	assert.Equal(t, "/openai/deployments/companion-gpt/chat/completions", captured.Path)
	assert.Equal(t, "2024-02-01", captured.APIVersion)
	assert.Equal(t, "secret", captured.APIKey)
	assert.EqualValues(t, 100, captured.Body["max_tokens"])
	assert.InDelta(t, 0.7, captured.Body["temperature"], 0.0001)

	messages, ok := captured.Body["messages"].([]any)
	require.True(t, ok)
	require.Len(t, messages, 2)
	assert.Equal(t, "system", messages[0].(map[string]any)["role"])
	assert.Equal(t, "be nice", messages[0].(map[string]any)["content"])
	assert.Equal(t, "user", messages[1].(map[string]any)["role"])
	assert.Equal(t, "hello", messages[1].(map[string]any)["content"])
}

func TestAzureOpenAICompleteNoChoices(t *testing.T) {
	server, _ := newAzureServer(t, http.StatusOK, `{"id": "chatcmpl-2", "choices": []}`)

	client, err := NewAzureOpenAIClient(config.OpenAIConfig{
		Endpoint:   server.URL,
		APIKey:     "secret",
		Deployment: "companion-gpt",
	}, testEntry())
	require.NoError(t, err)

	_, err = client.Complete(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "hello"}}})
	assert.ErrorIs(t, err, ErrEmptyCompletion)
}

func TestAzureOpenAICompleteBlankContent(t *testing.T) {
	server, _ := newAzureServer(t, http.StatusOK, `{
		"id": "chatcmpl-3",
		"choices": [{"index": 0, "message": {"role": "assistant", "content": "  \n "}, "finish_reason": "stop"}]
	}`)

	client, err := NewAzureOpenAIClient(config.OpenAIConfig{
		Endpoint:   server.URL,
		APIKey:     "secret",
		Deployment: "companion-gpt",
	}, testEntry())
	require.NoError(t, err)

	_, err = client.Complete(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "hello"}}})
	assert.ErrorIs(t, err, ErrEmptyCompletion)
}

func TestAzureOpenAICompleteServiceError(t *testing.T) {
	server, _ := newAzureServer(t, http.StatusUnauthorized, `{"error": {"code": "401", "message": "Access denied"}}`)

	client, err := NewAzureOpenAIClient(config.OpenAIConfig{
		Endpoint:   server.URL,
		APIKey:     "wrong",
		Deployment: "companion-gpt",
	}, testEntry())
	require.NoError(t, err)

	_, err = client.Complete(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "hello"}}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "chat completion failed")
}

func TestNewAzureOpenAIClientRequiresCredentials(t *testing.T) {
	_, err := NewAzureOpenAIClient(config.OpenAIConfig{Endpoint: "https://example.openai.azure.com"}, testEntry())
	assert.Error(t, err)
}
