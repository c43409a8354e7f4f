package claude

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerateConcatenatesTextBlocks(t *testing.T) {
	var (
		path string
		key  string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		key = r.Header.Get("X-Api-Key")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "msg_01",
			"type": "message",
			"role": "assistant",
			"model": "claude-test",
			"content": [{"type": "text", "text": "Sunny "}, {"type": "text", "text": "skies."}],
			"stop_reason": "end_turn",
			"usage": {"input_tokens": 7, "output_tokens": 2}
		}`))
	}))
	defer srv.Close()

	client, err := NewClient("ak-test", "claude-test", srv.URL, 0.2)
	require.NoError(t, err)

	out, err := client.Generate(context.Background(), "Weather?")
	require.NoError(t, err)
	require.Equal(t, "Sunny skies.", out.Text)
	require.Equal(t, 7, out.Usage.PromptTokens)
	require.Equal(t, 9, out.Usage.TotalTokens)
	require.Equal(t, "/v1/messages", path)
	require.Equal(t, "ak-test", key)
}

func TestNewClientRequiresKey(t *testing.T) {
	_, err := NewClient(" ", "", "", 0)
	require.Error(t, err)
}
