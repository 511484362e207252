package openaiclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_CreateChat(t *testing.T) {
	var gotReq ChatRequest
	var gotAuth, gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))

		_ = json.NewEncoder(w).Encode(&ChatCompletionResponse{
			ID: "chatcmpl-1",
			Choices: []ChatCompletionChoice{
				{
					Message:      ChatMessage{Role: "assistant", Content: "Hi!"},
					FinishReason: "stop",
				},
			},
		})
	}))
	defer srv.Close()

	client, err := New(ProviderOpenAI, "gpt-4o-mini", "sk-test", srv.URL, "", "", nil)
	require.NoError(t, err)

	resp, err := client.CreateChat(context.Background(), &ChatRequest{
		Messages: []*ChatMessage{
			{Role: "system", Content: "You are a helpful assistant."},
			{Role: "user", Content: "Hello"},
		},
		ToolChoice: "auto",
	})
	require.NoError(t, err)
	require.Len(t, resp.Choices, 1)
	assert.Equal(t, "Hi!", resp.Choices[0].Message.Content)

	assert.Equal(t, "/chat/completions", gotPath)
	assert.Equal(t, "Bearer sk-test", gotAuth)
	// model falls back to the client default
	assert.Equal(t, "gpt-4o-mini", gotReq.Model)
	assert.Equal(t, "auto", gotReq.ToolChoice)
	require.Len(t, gotReq.Messages, 2)
	assert.Equal(t, "user", gotReq.Messages[1].Role)
}

func Test_CreateChat_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("quota exceeded"))
	}))
	defer srv.Close()

	client, err := New(ProviderOpenAI, "gpt-4o-mini", "sk-test", srv.URL, "", "", nil)
	require.NoError(t, err)

	_, err = client.CreateChat(context.Background(), &ChatRequest{
		Messages: []*ChatMessage{{Role: "user", Content: "Hello"}},
	})
	require.Error(t, err)

	// status and body survive verbatim
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
	assert.Equal(t, "quota exceeded", apiErr.Body)
	assert.Contains(t, err.Error(), "500")
	assert.Contains(t, err.Error(), "quota exceeded")
}

func Test_CreateChat_StructuredError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"Incorrect API key provided","type":"invalid_request_error"}}`))
	}))
	defer srv.Close()

	client, err := New(ProviderOpenAI, "", "sk-bad", srv.URL, "", "", nil)
	require.NoError(t, err)

	_, err = client.CreateChat(context.Background(), &ChatRequest{
		Messages: []*ChatMessage{{Role: "user", Content: "Hello"}},
	})
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "Incorrect API key provided", apiErr.Message)
}

func Test_CreateChat_EmptyResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(&ChatCompletionResponse{})
	}))
	defer srv.Close()

	client, err := New(ProviderOpenAI, "gpt-4o-mini", "sk-test", srv.URL, "", "", nil)
	require.NoError(t, err)

	_, err = client.CreateChat(context.Background(), &ChatRequest{
		Messages: []*ChatMessage{{Role: "user", Content: "Hello"}},
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrEmptyResponse))
}

func Test_BuildURL(t *testing.T) {
	client, err := New(ProviderOpenAI, "gpt-4o-mini", "sk-test", "", "", "", nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultBaseURL+"/chat/completions", client.buildURL("/chat/completions", "gpt-4o-mini"))

	azure, err := New(ProviderAzure, "gpt-4o", "key", "https://example.openai.azure.com", "", "2023-05-15", nil)
	require.NoError(t, err)
	assert.Equal(t,
		"https://example.openai.azure.com/openai/deployments/gpt-4o/chat/completions?api-version=2023-05-15",
		azure.buildURL("/chat/completions", "gpt-4o"))
}

func Test_SetHeaders(t *testing.T) {
	client, err := New(ProviderOpenAI, "", "sk-test", "", "org-1", "", nil)
	require.NoError(t, err)
	req, _ := http.NewRequest(http.MethodPost, "http://localhost", nil)
	client.setHeaders(req)
	assert.Equal(t, "Bearer sk-test", req.Header.Get("Authorization"))
	assert.Equal(t, "org-1", req.Header.Get("OpenAI-Organization"))

	azureAD, err := New(ProviderAzureAD, "", "key", "", "", "2023-05-15", nil)
	require.NoError(t, err)
	req, _ = http.NewRequest(http.MethodPost, "http://localhost", nil)
	azureAD.setHeaders(req)
	assert.Equal(t, "key", req.Header.Get("api-key"))
	assert.Empty(t, req.Header.Get("Authorization"))
}
