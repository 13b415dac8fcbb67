package llm

import (
	"context"
	"encoding/json"
	"sync"
)

// Role is the author of a message.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleTool      Role = "tool"
)

// Message is one entry in a chat conversation.
type Message struct {
	Role    Role
	Content string
	// ToolCalls is set on assistant messages that request tool execution.
	ToolCalls []ToolCall
	// ToolCallID and Name are set on tool messages.
	ToolCallID string
	Name       string
}

// ToolCall is a function call requested by the model.
type ToolCall struct {
	ID        string
	Name      string
	Arguments string // raw JSON object
}

// ToolDefinition advertises a callable function to the model.
type ToolDefinition struct {
	Name        string
	Description string
	Parameters  json.RawMessage // JSON Schema
}

// Request is a single chat-completion call.
type Request struct {
	Messages []Message
	Tools    []ToolDefinition
}

// Response is the model's reply to a Request.
type Response struct {
	Message      Message
	FinishReason string
	Usage        TokenUsage
}

// Client sends chat-completion requests to a provider.
type Client interface {
	Chat(ctx context.Context, req Request) (*Response, error)
}

// TokenUsage counts tokens consumed by one or more calls.
type TokenUsage struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

// Add returns the element-wise sum of u and o.
func (u TokenUsage) Add(o TokenUsage) TokenUsage {
	return TokenUsage{
		PromptTokens:     u.PromptTokens + o.PromptTokens,
		CompletionTokens: u.CompletionTokens + o.CompletionTokens,
		TotalTokens:      u.TotalTokens + o.TotalTokens,
	}
}

// usageTracker is embedded by clients. Safe for concurrent use.
type usageTracker struct {
	mu    sync.Mutex
	usage TokenUsage
}

func (t *usageTracker) IncrementTokenUsage(u TokenUsage) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.usage = t.usage.Add(u)
}

// GetTokenUsage returns the usage accumulated since creation.
func (t *usageTracker) GetTokenUsage() TokenUsage {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.usage
}

// UsageReporter is implemented by clients that track token usage.
type UsageReporter interface {
	GetTokenUsage() TokenUsage
}
