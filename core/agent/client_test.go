package agent

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Invoke(t *testing.T) {
	var got runRequest
	var gotKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/runs/wait", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		gotKey = r.Header.Get("X-Api-Key")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"messages":[{"role":"user","content":"q"},{"type":"ai","content":"found 3 reports"}]}`))
	}))
	defer srv.Close()

	client := NewClient(Config{URL: srv.URL + "/", APIKey: "k-1", Graph: "esg_search_agent", TimeoutSeconds: 5})
	state, err := client.Invoke(context.Background(), "3M India Ltd. 2023")
	require.NoError(t, err)

	assert.Equal(t, "k-1", gotKey)
	assert.Equal(t, "esg_search_agent", got.AssistantID)
	assert.Equal(t, []Message{{Role: "user", Content: "3M India Ltd. 2023"}}, got.Input.Messages)
	assert.Equal(t, "found 3 reports", LastMessage(state))
}

func TestClient_RemoteError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"detail":"assistant not found"}`, http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := NewClient(Config{URL: srv.URL, Graph: "missing", TimeoutSeconds: 5}).Invoke(context.Background(), "hi")

	var rerr *RemoteError
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, http.StatusNotFound, rerr.Status)
	assert.Contains(t, rerr.Body, "assistant not found")
}

func TestClient_NotConfigured(t *testing.T) {
	_, err := NewClient(Config{}).Invoke(context.Background(), "hi")
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestLastMessage(t *testing.T) {
	assert.Equal(t, "", LastMessage(map[string]any{}))
	assert.Equal(t, "ab", LastMessage(map[string]any{
		"messages": []any{
			map[string]any{"content": []any{
				map[string]any{"type": "text", "text": "a"},
				map[string]any{"type": "text", "text": "b"},
			}},
		},
	}))
}
