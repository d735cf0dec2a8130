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

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New("test-key", "gpt4", WithBaseURL(srv.URL), WithHTTPClient(srv.Client()))
}

func TestComplete(t *testing.T) {
	var gotAuth, gotPath string
	var gotReq chatRequest

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		w.Write([]byte(`{"choices": [{"message": {"content": "  A curious topic.  "}}]}`))
	})

	out, err := c.Complete(context.Background(), "give me a topic")
	require.NoError(t, err)

	assert.Equal(t, "A curious topic.", out)
	assert.Equal(t, "Bearer test-key", gotAuth)
	assert.Equal(t, "/chat/completions", gotPath)
	assert.Equal(t, "gpt-4", gotReq.Model)
	require.Len(t, gotReq.Messages, 1)
	assert.Equal(t, "user", gotReq.Messages[0].Role)
	assert.Equal(t, "give me a topic", gotReq.Messages[0].Content)
}

func TestComplete_APIError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error": {"message": "rate limited"}}`))
	})

	_, err := c.Complete(context.Background(), "prompt")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate limited")
}

func TestComplete_NoChoices(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices": []}`))
	})

	_, err := c.Complete(context.Background(), "prompt")
	assert.Error(t, err)
}

func TestComplete_MalformedResponse(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>bad gateway</html>`))
	})

	_, err := c.Complete(context.Background(), "prompt")
	assert.Error(t, err)
}

func TestResolveModel(t *testing.T) {
	tests := []struct {
		alias string
		want  string
	}{
		{"gpt4", "gpt-4"},
		{"GPT4", "gpt-4"},
		{"gpt35_turbo", "gpt-3.5-turbo"},
		{"mixtral_8x7b", "mixtral-8x7b"},
		{"unknown", "gpt-3.5-turbo"},
		{"", "gpt-3.5-turbo"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ResolveModel(tt.alias), "alias %q", tt.alias)
	}
}

func TestCleanJSON(t *testing.T) {
	assert.Equal(t, `["a","b"]`, CleanJSON("```json\n[\"a\",\"b\"]\n```"))
	assert.Equal(t, `["a"]`, CleanJSON("```\n[\"a\"]\n```"))
	assert.Equal(t, `{"x":1}`, CleanJSON(`  {"x":1}  `))
}
