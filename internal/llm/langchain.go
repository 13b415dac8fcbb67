package llm

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// LangChainClient talks to an OpenAI-compatible endpoint through langchaingo.
// The underlying model is built on the first call so a missing API key
// surfaces as a request error rather than at startup.
type LangChainClient struct {
	usageTracker
	opts    []openai.Option
	model   string
	timeout time.Duration
	log     zerolog.Logger

	initOnce sync.Once
	llm      llms.Model
	initErr  error
}

// NewLangChainClient creates a langchaingo-backed client. An empty endpoint
// uses langchaingo's default base URL.
func NewLangChainClient(endpoint, apiKey, model string, opts *Options) *LangChainClient {
	o := []openai.Option{openai.WithToken(apiKey), openai.WithModel(model)}
	if endpoint != "" {
		o = append(o, openai.WithBaseURL(endpoint))
	}
	c := &LangChainClient{model: model, log: zerolog.Nop()}
	if opts != nil {
		if opts.HTTPClient != nil {
			o = append(o, openai.WithHTTPClient(opts.HTTPClient))
		}
		c.timeout = opts.Timeout
		c.log = opts.Log
	}
	c.opts = o
	return c
}

func (c *LangChainClient) ensureModel() (llms.Model, error) {
	c.initOnce.Do(func() {
		c.llm, c.initErr = openai.New(c.opts...)
		if c.initErr != nil {
			c.initErr = fmt.Errorf("creating langchain client: %w", c.initErr)
		}
	})
	return c.llm, c.initErr
}

// Chat sends one chat-completion request.
func (c *LangChainClient) Chat(ctx context.Context, req Request) (*Response, error) {
	model, err := c.ensureModel()
	if err != nil {
		return nil, err
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	var callOpts []llms.CallOption
	if len(req.Tools) > 0 {
		tools := make([]llms.Tool, 0, len(req.Tools))
		for _, def := range req.Tools {
			tools = append(tools, llms.Tool{
				Type: "function",
				Function: &llms.FunctionDefinition{
					Name:        def.Name,
					Description: def.Description,
					Parameters:  def.Parameters,
				},
			})
		}
		callOpts = append(callOpts, llms.WithTools(tools))
	}

	c.log.Debug().Str("model", c.model).Int("messages", len(req.Messages)).Int("tools", len(req.Tools)).Msg("chat completion request")
	start := time.Now()

	resp, err := model.GenerateContent(ctx, toLangChainMessages(req.Messages), callOpts...)
	if err != nil {
		return nil, fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, errors.New("no completion received from LLM")
	}

	choice := resp.Choices[0]
	out := &Response{
		Message:      Message{Role: RoleAssistant, Content: choice.Content},
		FinishReason: choice.StopReason,
	}
	for _, tc := range choice.ToolCalls {
		if tc.FunctionCall == nil {
			continue
		}
		out.Message.ToolCalls = append(out.Message.ToolCalls, ToolCall{
			ID:        tc.ID,
			Name:      tc.FunctionCall.Name,
			Arguments: tc.FunctionCall.Arguments,
		})
	}
	out.Usage = TokenUsage{
		PromptTokens:     intFrom(choice.GenerationInfo["PromptTokens"]),
		CompletionTokens: intFrom(choice.GenerationInfo["CompletionTokens"]),
		TotalTokens:      intFrom(choice.GenerationInfo["TotalTokens"]),
	}
	c.IncrementTokenUsage(out.Usage)

	c.log.Debug().
		Str("finish_reason", out.FinishReason).
		Int("tool_calls", len(out.Message.ToolCalls)).
		Int("total_tokens", out.Usage.TotalTokens).
		Dur("elapsed", time.Since(start)).
		Msg("chat completion response")

	return out, nil
}

func toLangChainMessages(msgs []Message) []llms.MessageContent {
	out := make([]llms.MessageContent, 0, len(msgs))
	for _, m := range msgs {
		switch m.Role {
		case RoleSystem:
			out = append(out, llms.TextParts(llms.ChatMessageTypeSystem, m.Content))
		case RoleUser:
			out = append(out, llms.TextParts(llms.ChatMessageTypeHuman, m.Content))
		case RoleAssistant:
			mc := llms.MessageContent{Role: llms.ChatMessageTypeAI}
			if m.Content != "" {
				mc.Parts = append(mc.Parts, llms.TextContent{Text: m.Content})
			}
			for _, tc := range m.ToolCalls {
				mc.Parts = append(mc.Parts, llms.ToolCall{
					ID:   tc.ID,
					Type: "function",
					FunctionCall: &llms.FunctionCall{
						Name:      tc.Name,
						Arguments: tc.Arguments,
					},
				})
			}
			out = append(out, mc)
		case RoleTool:
			out = append(out, llms.MessageContent{
				Role: llms.ChatMessageTypeTool,
				Parts: []llms.ContentPart{llms.ToolCallResponse{
					ToolCallID: m.ToolCallID,
					Name:       m.Name,
					Content:    m.Content,
				}},
			})
		}
	}
	return out
}

func intFrom(v any) int {
	switch n := v.(type) {
	case int:
		return n
	case int32:
		return int(n)
	case int64:
		return int(n)
	case float64:
		return int(n)
	}
	return 0
}
