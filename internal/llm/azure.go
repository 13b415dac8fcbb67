package llm

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/ai/azopenai"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/rs/zerolog"
)

// AzOpenAIClient talks to OpenAI or Azure OpenAI through the azopenai SDK.
type AzOpenAIClient struct {
	usageTracker
	client       *azopenai.Client
	deploymentID string
	timeout      time.Duration
	log          zerolog.Logger
}

func azClientOptions(opts *Options) *azopenai.ClientOptions {
	if opts == nil || opts.HTTPClient == nil {
		return nil
	}
	return &azopenai.ClientOptions{
		ClientOptions: azcore.ClientOptions{Transport: opts.HTTPClient},
	}
}

// NewAzOpenAIClient creates a client for an Azure OpenAI resource. The
// deploymentID is used for all subsequent calls.
func NewAzOpenAIClient(endpoint, apiKey, deploymentID string, opts *Options) (*AzOpenAIClient, error) {
	keyCredential := azcore.NewKeyCredential(apiKey)
	client, err := azopenai.NewClientWithKeyCredential(endpoint, keyCredential, azClientOptions(opts))
	if err != nil {
		return nil, fmt.Errorf("creating Azure OpenAI client: %w", err)
	}
	return newAzClient(client, deploymentID, opts), nil
}

// NewOpenAIClient creates a client for the public OpenAI API (or any
// compatible endpoint). model is sent as the deployment name.
func NewOpenAIClient(endpoint, apiKey, model string, opts *Options) (*AzOpenAIClient, error) {
	keyCredential := azcore.NewKeyCredential(apiKey)
	client, err := azopenai.NewClientForOpenAI(endpoint, keyCredential, azClientOptions(opts))
	if err != nil {
		return nil, fmt.Errorf("creating OpenAI client: %w", err)
	}
	return newAzClient(client, model, opts), nil
}

func newAzClient(client *azopenai.Client, deploymentID string, opts *Options) *AzOpenAIClient {
	c := &AzOpenAIClient{client: client, deploymentID: deploymentID, log: zerolog.Nop()}
	if opts != nil {
		c.timeout = opts.Timeout
		c.log = opts.Log
	}
	return c
}

// Chat sends one chat-completion request.
func (c *AzOpenAIClient) Chat(ctx context.Context, req Request) (*Response, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	options := azopenai.ChatCompletionsOptions{
		DeploymentName: to.Ptr(c.deploymentID),
		Messages:       toAzureMessages(req.Messages),
	}
	for _, def := range req.Tools {
		options.Tools = append(options.Tools, &azopenai.ChatCompletionsFunctionToolDefinition{
			Type: to.Ptr("function"),
			Function: &azopenai.ChatCompletionsFunctionToolDefinitionFunction{
				Name:        to.Ptr(def.Name),
				Description: to.Ptr(def.Description),
				Parameters:  []byte(def.Parameters),
			},
		})
	}

	c.log.Debug().Str("model", c.deploymentID).Int("messages", len(req.Messages)).Int("tools", len(req.Tools)).Msg("chat completion request")
	start := time.Now()

	resp, err := c.client.GetChatCompletions(ctx, options, nil)
	if err != nil {
		return nil, fmt.Errorf("chat completion: %w", err)
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message == nil {
		return nil, errors.New("no completion received from LLM")
	}

	choice := resp.Choices[0]
	out := &Response{
		Message: Message{
			Role:    RoleAssistant,
			Content: deref(choice.Message.Content),
		},
	}
	if choice.FinishReason != nil {
		out.FinishReason = string(*choice.FinishReason)
	}
	for _, tc := range choice.Message.ToolCalls {
		fn, ok := tc.(*azopenai.ChatCompletionsFunctionToolCall)
		if !ok || fn.Function == nil {
			continue
		}
		out.Message.ToolCalls = append(out.Message.ToolCalls, ToolCall{
			ID:        deref(fn.ID),
			Name:      deref(fn.Function.Name),
			Arguments: deref(fn.Function.Arguments),
		})
	}
	if resp.Usage != nil {
		out.Usage = TokenUsage{
			PromptTokens:     int(deref(resp.Usage.PromptTokens)),
			CompletionTokens: int(deref(resp.Usage.CompletionTokens)),
			TotalTokens:      int(deref(resp.Usage.TotalTokens)),
		}
		c.IncrementTokenUsage(out.Usage)
	}

	c.log.Debug().
		Str("finish_reason", out.FinishReason).
		Int("tool_calls", len(out.Message.ToolCalls)).
		Int("prompt_tokens", out.Usage.PromptTokens).
		Int("completion_tokens", out.Usage.CompletionTokens).
		Dur("elapsed", time.Since(start)).
		Msg("chat completion response")

	return out, nil
}

func toAzureMessages(msgs []Message) []azopenai.ChatRequestMessageClassification {
	out := make([]azopenai.ChatRequestMessageClassification, 0, len(msgs))
	for _, m := range msgs {
		switch m.Role {
		case RoleSystem:
			out = append(out, &azopenai.ChatRequestSystemMessage{
				Content: azopenai.NewChatRequestSystemMessageContent(m.Content),
			})
		case RoleUser:
			out = append(out, &azopenai.ChatRequestUserMessage{
				Content: azopenai.NewChatRequestUserMessageContent(m.Content),
			})
		case RoleAssistant:
			msg := &azopenai.ChatRequestAssistantMessage{}
			if m.Content != "" {
				msg.Content = azopenai.NewChatRequestAssistantMessageContent(m.Content)
			}
			for _, tc := range m.ToolCalls {
				msg.ToolCalls = append(msg.ToolCalls, &azopenai.ChatCompletionsFunctionToolCall{
					ID:   to.Ptr(tc.ID),
					Type: to.Ptr("function"),
					Function: &azopenai.FunctionCall{
						Name:      to.Ptr(tc.Name),
						Arguments: to.Ptr(tc.Arguments),
					},
				})
			}
			out = append(out, msg)
		case RoleTool:
			out = append(out, &azopenai.ChatRequestToolMessage{
				Content:    azopenai.NewChatRequestToolMessageContent(m.Content),
				ToolCallID: to.Ptr(m.ToolCallID),
			})
		}
	}
	return out
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}
