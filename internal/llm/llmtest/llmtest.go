// Package llmtest provides a scripted llm.Client for tests.
package llmtest

import (
	"context"
	"fmt"
	"sync"

	"github.com/agentx-labs/setupassist/internal/llm"
)

// Client replays canned responses in order and records every request.
type Client struct {
	mu        sync.Mutex
	responses []*llm.Response
	errs      []error
	Requests  []llm.Request
}

// New returns a Client that answers with responses in order.
func New(responses ...*llm.Response) *Client {
	return &Client{responses: responses}
}

// FailWith makes the next unanswered call return err.
func (c *Client) FailWith(err error) *Client {
	c.mu.Lock()
	defer c.mu.Unlock()
	for len(c.errs) < len(c.responses) {
		c.errs = append(c.errs, nil)
	}
	c.responses = append(c.responses, nil)
	c.errs = append(c.errs, err)
	return c
}

// Chat implements llm.Client.
func (c *Client) Chat(_ context.Context, req llm.Request) (*llm.Response, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := len(c.Requests)
	c.Requests = append(c.Requests, req)
	if i >= len(c.responses) {
		return nil, fmt.Errorf("llmtest: unexpected call %d", i+1)
	}
	if i < len(c.errs) && c.errs[i] != nil {
		return nil, c.errs[i]
	}
	return c.responses[i], nil
}

// Calls returns the number of Chat calls made.
func (c *Client) Calls() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.Requests)
}

// Text is an assistant reply with no tool calls.
func Text(content string) *llm.Response {
	return &llm.Response{
		Message:      llm.Message{Role: llm.RoleAssistant, Content: content},
		FinishReason: "stop",
	}
}

// ToolCalls is an assistant reply that requests the given calls.
func ToolCalls(calls ...llm.ToolCall) *llm.Response {
	return &llm.Response{
		Message:      llm.Message{Role: llm.RoleAssistant, ToolCalls: calls},
		FinishReason: "tool_calls",
	}
}
