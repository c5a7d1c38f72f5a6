package generate

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chatServer fakes the chat completion endpoint, capturing the request
// and returning a fixed response content.
func chatServer(t *testing.T, content string, captured *openai.ChatCompletionRequest) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/v1/chat/completions", r.URL.Path)

		if captured != nil {
			require.NoError(t, json.NewDecoder(r.Body).Decode(captured))
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(openai.ChatCompletionResponse{
			Choices: []openai.ChatCompletionChoice{
				{Message: openai.ChatCompletionMessage{Role: openai.ChatMessageRoleAssistant, Content: content}},
			},
		})
	}))
}

func TestNew_RequiresAPIKey(t *testing.T) {
	_, err := New(Config{})
	assert.Error(t, err)

	_, err = New(Config{APIKey: "   "})
	assert.Error(t, err)
}

func TestNew_DefaultsModel(t *testing.T) {
	var captured openai.ChatCompletionRequest
	srv := chatServer(t, "x = 1\n", &captured)
	defer srv.Close()

	g, err := New(Config{APIKey: "test-key", BaseURL: srv.URL + "/v1"})
	require.NoError(t, err)

	_, err = g.Generate(context.Background(), "anything", []byte("x = 0\n"))
	require.NoError(t, err)
	assert.Equal(t, DefaultModel, captured.Model)
}

func TestGenerate_SendsRequestAndCurrentProgram(t *testing.T) {
	var captured openai.ChatCompletionRequest
	srv := chatServer(t, "def cube(x):\n    return x * x * x\n", &captured)
	defer srv.Close()

	g, err := New(Config{APIKey: "test-key", BaseURL: srv.URL + "/v1", Model: "gpt-4o-mini"})
	require.NoError(t, err)

	current := []byte("def sq(x):\n    return x * x\n")
	got, err := g.Generate(context.Background(), "add a cube helper", current)
	require.NoError(t, err)
	assert.Equal(t, "def cube(x):\n    return x * x * x\n", got)

	assert.Equal(t, "gpt-4o-mini", captured.Model)
	require.Len(t, captured.Messages, 2)
	assert.Equal(t, openai.ChatMessageRoleSystem, captured.Messages[0].Role)
	assert.Equal(t, openai.ChatMessageRoleUser, captured.Messages[1].Role)
	assert.Contains(t, captured.Messages[1].Content, "add a cube helper")
	assert.Contains(t, captured.Messages[1].Content, string(current))
}

func TestGenerate_SanitizesFencedResponse(t *testing.T) {
	srv := chatServer(t, "```starlark\nx = 1\n```", nil)
	defer srv.Close()

	g, err := New(Config{APIKey: "test-key", BaseURL: srv.URL + "/v1"})
	require.NoError(t, err)

	got, err := g.Generate(context.Background(), "req", []byte("x = 0\n"))
	require.NoError(t, err)
	assert.Equal(t, "x = 1\n", got)
}

func TestGenerate_NoChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(openai.ChatCompletionResponse{})
	}))
	defer srv.Close()

	g, err := New(Config{APIKey: "test-key", BaseURL: srv.URL + "/v1"})
	require.NoError(t, err)

	_, err = g.Generate(context.Background(), "req", []byte("x = 0\n"))
	assert.ErrorContains(t, err, "no choices")
}

func TestGenerate_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": {"message": "rate limited"}}`, http.StatusTooManyRequests)
	}))
	defer srv.Close()

	g, err := New(Config{APIKey: "test-key", BaseURL: srv.URL + "/v1"})
	require.NoError(t, err)

	_, err = g.Generate(context.Background(), "req", []byte("x = 0\n"))
	assert.Error(t, err)
}
