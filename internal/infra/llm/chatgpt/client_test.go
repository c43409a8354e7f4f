package chatgpt

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerateSendsPromptAndReadsUsage(t *testing.T) {
	var (
		path    string
		auth    string
		payload map[string]any
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		auth = r.Header.Get("Authorization")
		_ = json.NewDecoder(r.Body).Decode(&payload)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "chatcmpl-1",
			"object": "chat.completion",
			"choices": [{"index": 0, "message": {"role": "assistant", "content": "Bring a jacket."}, "finish_reason": "stop"}],
			"usage": {"prompt_tokens": 9, "completion_tokens": 4, "total_tokens": 13}
		}`))
	}))
	defer srv.Close()

	client, err := NewClient("sk-test", "", srv.URL+"/v1", 0.5)
	require.NoError(t, err)
	require.Equal(t, "gpt-4o-mini", client.ModelName())

	out, err := client.Generate(context.Background(), "Is it cold?")
	require.NoError(t, err)
	require.Equal(t, "Bring a jacket.", out.Text)
	require.Equal(t, 13, out.Usage.TotalTokens)

	require.Equal(t, "/v1/chat/completions", path)
	require.Equal(t, "Bearer sk-test", auth)
	require.Equal(t, "gpt-4o-mini", payload["model"])
	messages, ok := payload["messages"].([]any)
	require.True(t, ok)
	require.Len(t, messages, 1)
}

func TestGenerateWithoutChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"x","choices":[]}`))
	}))
	defer srv.Close()

	client, err := NewClient("sk-test", "gpt-test", srv.URL, 0)
	require.NoError(t, err)
	_, err = client.Generate(context.Background(), "hi")
	require.ErrorContains(t, err, "no choices")
}

func TestNewClientRequiresKey(t *testing.T) {
	_, err := NewClient("", "", "", 0)
	require.Error(t, err)
}
