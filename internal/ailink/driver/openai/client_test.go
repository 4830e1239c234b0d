package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luminoshq/luminos/internal/ailink/driver"
)

func TestCompleteSuccess(t *testing.T) {
	var gotAuth string
	var gotBody chatCompletionRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		require.Equal(t, "/chat/completions", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		resp := chatCompletionResponse{
			Choices: []choice{{
				Message:      chatResponseMessage{Content: "answer text"},
				FinishReason: "stop",
			}},
			Usage: &usage{PromptTokens: 10, CompletionTokens: 4, TotalTokens: 14},
		}
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "sk-test")
	resp, err := client.Complete(context.Background(), &driver.Request{
		Model:    "gpt-4o-mini",
		Messages: []driver.Message{{Role: driver.RoleUser, Content: "hello"}},
	})
	require.NoError(t, err)

	assert.Equal(t, "Bearer sk-test", gotAuth)
	assert.Equal(t, "gpt-4o-mini", gotBody.Model)
	require.Len(t, gotBody.Messages, 1)
	assert.Equal(t, "hello", gotBody.Messages[0].Content)

	assert.Equal(t, "answer text", resp.Text)
	require.NotNil(t, resp.Usage)
	assert.Equal(t, 14, resp.Usage.TotalTokens)
}

func TestCompleteProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"invalid key"}}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "sk-bad")
	_, err := client.Complete(context.Background(), &driver.Request{
		Model:    "gpt-4o-mini",
		Messages: []driver.Message{{Role: driver.RoleUser, Content: "hello"}},
	})

	var perr *driver.ProviderError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "openai", perr.Provider)
	assert.Equal(t, http.StatusUnauthorized, perr.StatusCode)
	assert.False(t, driver.IsRateLimited(err))
}

func TestBuildChatRequestValidation(t *testing.T) {
	_, err := buildChatRequest(&driver.Request{Model: "gpt-4o-mini"})
	assert.ErrorContains(t, err, "message")

	_, err = buildChatRequest(&driver.Request{Messages: []driver.Message{{Role: driver.RoleUser, Content: "x"}}})
	assert.ErrorContains(t, err, "model")
}
