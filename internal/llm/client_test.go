package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Generate(t *testing.T) {
	var gotAuth string
	var gotReq chatRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		json.NewEncoder(w).Encode(chatResponse{
			Choices: []chatChoice{{Message: chatMessage{Role: "assistant", Content: "## Breakfast\n- Oats"}}},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", "test-model")
	text, err := client.Generate(context.Background(), "make me a plan")

	require.NoError(t, err)
	assert.Equal(t, "## Breakfast\n- Oats", text)
	assert.Equal(t, "Bearer test-key", gotAuth)
	assert.Equal(t, "test-model", gotReq.Model)
	require.Len(t, gotReq.Messages, 1)
	assert.Equal(t, "make me a plan", gotReq.Messages[0].Content)
}

func TestClient_Generate_ErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"quota exceeded"}`, http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", "test-model")
	_, err := client.Generate(context.Background(), "prompt")

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrGeneration))
}

func TestClient_Generate_EmptyChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(chatResponse{})
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", "test-model")
	_, err := client.Generate(context.Background(), "prompt")

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrGeneration))
}

func TestClient_Generate_NoAPIKey(t *testing.T) {
	client := NewClient("http://localhost:0", "", "test-model")
	_, err := client.Generate(context.Background(), "prompt")

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrGeneration))
}
