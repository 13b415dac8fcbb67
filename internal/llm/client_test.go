package llm

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/agentx-labs/setupassist/internal/config"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const toolCallResponse = `{
  "id": "chatcmpl-1",
  "object": "chat.completion",
  "created": 1700000000,
  "model": "gpt-3.5-turbo",
  "choices": [{
    "index": 0,
    "finish_reason": "tool_calls",
    "message": {
      "role": "assistant",
      "content": null,
      "tool_calls": [{
        "id": "call_1",
        "type": "function",
        "function": {"name": "create_directory", "arguments": "{\"project_name\":\"data_clean\"}"}
      }]
    }
  }],
  "usage": {"prompt_tokens": 120, "completion_tokens": 18, "total_tokens": 138}
}`

type capturedRequest struct {
	path string
	auth string
	body map[string]any
}

func chatServer(t *testing.T, tls bool, status int, body string) (*httptest.Server, *capturedRequest) {
	t.Helper()
	captured := &capturedRequest{}
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured.path = r.URL.Path
		captured.auth = r.Header.Get("Authorization")
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &captured.body)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	})

	var srv *httptest.Server
	if tls {
		srv = httptest.NewTLSServer(handler)
	} else {
		srv = httptest.NewServer(handler)
	}
	t.Cleanup(srv.Close)
	return srv, captured
}

func sampleRequest() Request {
	return Request{
		Messages: []Message{
			{Role: RoleSystem, Content: "You are a software development assistant."},
			{Role: RoleUser, Content: "Can you create a project called data_clean"},
		},
		Tools: []ToolDefinition{{
			Name:        "create_directory",
			Description: "Create a new project directory.",
			Parameters:  json.RawMessage(`{"type":"object","properties":{"project_name":{"type":"string"}},"required":["project_name"]}`),
		}},
	}
}

func assertToolCallResponse(t *testing.T, resp *Response) {
	t.Helper()
	assert.Equal(t, RoleAssistant, resp.Message.Role)
	assert.Equal(t, "tool_calls", resp.FinishReason)
	require.Len(t, resp.Message.ToolCalls, 1)
	assert.Equal(t, ToolCall{ID: "call_1", Name: "create_directory", Arguments: `{"project_name":"data_clean"}`}, resp.Message.ToolCalls[0])
	assert.Equal(t, TokenUsage{PromptTokens: 120, CompletionTokens: 18, TotalTokens: 138}, resp.Usage)
}

func TestOpenAIClient_Chat(t *testing.T) {
	srv, captured := chatServer(t, true, http.StatusOK, toolCallResponse)

	c, err := NewOpenAIClient(srv.URL+"/v1", "sk-test", "gpt-3.5-turbo", &Options{HTTPClient: srv.Client()})
	require.NoError(t, err)

	resp, err := c.Chat(context.Background(), sampleRequest())
	require.NoError(t, err)
	assertToolCallResponse(t, resp)

	assert.True(t, strings.HasSuffix(captured.path, "/chat/completions"), "path %q", captured.path)
	assert.Equal(t, "Bearer sk-test", captured.auth)
	assert.Equal(t, "gpt-3.5-turbo", captured.body["model"])
	assert.Len(t, captured.body["messages"], 2)
	assert.Len(t, captured.body["tools"], 1)

	// Usage accumulates across calls.
	_, err = c.Chat(context.Background(), sampleRequest())
	require.NoError(t, err)
	assert.Equal(t, 276, c.GetTokenUsage().TotalTokens)
}

func TestOpenAIClient_AuthError(t *testing.T) {
	srv, _ := chatServer(t, true, http.StatusUnauthorized,
		`{"error":{"message":"Incorrect API key provided","type":"invalid_request_error","code":"invalid_api_key"}}`)

	c, err := NewOpenAIClient(srv.URL+"/v1", "bad", "gpt-3.5-turbo", &Options{HTTPClient: srv.Client()})
	require.NoError(t, err)

	_, err = c.Chat(context.Background(), sampleRequest())
	var respErr *azcore.ResponseError
	require.True(t, errors.As(err, &respErr), "error %v", err)
	assert.Equal(t, http.StatusUnauthorized, respErr.StatusCode)
	assert.Equal(t, TokenUsage{}, c.GetTokenUsage())
}

func TestLangChainClient_Chat(t *testing.T) {
	srv, captured := chatServer(t, false, http.StatusOK, toolCallResponse)

	c := NewLangChainClient(srv.URL, "sk-test", "gpt-3.5-turbo", &Options{HTTPClient: srv.Client()})
	resp, err := c.Chat(context.Background(), sampleRequest())
	require.NoError(t, err)
	assertToolCallResponse(t, resp)

	assert.Equal(t, "/chat/completions", captured.path)
	assert.Equal(t, "Bearer sk-test", captured.auth)
	assert.Len(t, captured.body["tools"], 1)
	assert.Equal(t, 138, c.GetTokenUsage().TotalTokens)
}

func TestLangChainClient_MissingKeyFailsAtCallTime(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	c := NewLangChainClient("", "", "gpt-3.5-turbo", nil)
	_, err := c.Chat(context.Background(), sampleRequest())
	assert.Error(t, err)
}

func TestNew_Providers(t *testing.T) {
	base := config.LLMSettings{Model: "gpt-3.5-turbo", APIKey: "k", Endpoint: "https://example.test/v1"}

	for _, tt := range []struct {
		provider string
		want     any
	}{
		{config.ProviderOpenAI, &AzOpenAIClient{}},
		{config.ProviderAzure, &AzOpenAIClient{}},
		{config.ProviderLangChain, &LangChainClient{}},
	} {
		t.Run(tt.provider, func(t *testing.T) {
			s := base
			s.Provider = tt.provider
			c, err := New(s, zerolog.Nop())
			require.NoError(t, err)
			assert.IsType(t, tt.want, c)
		})
	}

	_, err := New(config.LLMSettings{Provider: "bedrock"}, zerolog.Nop())
	assert.Error(t, err)
}
