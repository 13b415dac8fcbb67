package agent

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"github.com/agentx-labs/setupassist/internal/llm"
	"github.com/agentx-labs/setupassist/internal/tools"
	"github.com/rs/zerolog"
)

//go:embed prompt.md
var defaultPrompt string

var (
	// ErrMaxIterations is returned when the model keeps requesting tools
	// past the iteration limit.
	ErrMaxIterations = errors.New("agent exceeded maximum iterations")

	// ErrPromptTooLarge is returned when the conversation exceeds the
	// prompt token budget.
	ErrPromptTooLarge = errors.New("prompt exceeds token budget")
)

// Default limits.
const (
	DefaultMaxIterations   = 8
	DefaultMaxPromptTokens = 4096
)

// Executor runs one tool call.
type Executor interface {
	Execute(ctx context.Context, call tools.Call) (string, error)
}

// Options configure an Agent. Zero values fall back to the defaults.
type Options struct {
	SystemPrompt    string
	MaxIterations   int
	MaxPromptTokens int
	// Counter enables the prompt budget check when set.
	Counter llm.Counter
	Log     zerolog.Logger
}

// Agent is an LLM-driven tool caller.
type Agent struct {
	client          llm.Client
	exec            Executor
	defs            []llm.ToolDefinition
	systemPrompt    string
	maxIterations   int
	maxPromptTokens int
	count           llm.Counter
	log             zerolog.Logger
}

// New returns an Agent that advertises every tool in the capability set.
func New(client llm.Client, exec Executor, opts Options) (*Agent, error) {
	defs, err := tools.Definitions()
	if err != nil {
		return nil, fmt.Errorf("loading tool definitions: %w", err)
	}

	a := &Agent{
		client:          client,
		exec:            exec,
		systemPrompt:    opts.SystemPrompt,
		maxIterations:   opts.MaxIterations,
		maxPromptTokens: opts.MaxPromptTokens,
		count:           opts.Counter,
		log:             opts.Log,
	}
	if a.systemPrompt == "" {
		a.systemPrompt = defaultPrompt
	}
	if a.maxIterations <= 0 {
		a.maxIterations = DefaultMaxIterations
	}
	if a.maxPromptTokens <= 0 {
		a.maxPromptTokens = DefaultMaxPromptTokens
	}
	for _, d := range defs {
		a.defs = append(a.defs, llm.ToolDefinition{
			Name:        string(d.Kind),
			Description: d.Description,
			Parameters:  d.Parameters,
		})
	}
	return a, nil
}

// Run answers query, executing tool calls along the way, and returns the
// model's final text.
func (a *Agent) Run(ctx context.Context, query string) (string, error) {
	msgs := []llm.Message{
		{Role: llm.RoleSystem, Content: a.systemPrompt},
		{Role: llm.RoleUser, Content: query},
	}

	for i := 0; i < a.maxIterations; i++ {
		if err := a.checkBudget(msgs); err != nil {
			return "", err
		}

		resp, err := a.client.Chat(ctx, llm.Request{Messages: msgs, Tools: a.defs})
		if err != nil {
			return "", fmt.Errorf("running agent: %w", err)
		}
		msgs = append(msgs, resp.Message)

		if len(resp.Message.ToolCalls) == 0 {
			a.log.Debug().Int("iterations", i+1).Msg("agent finished")
			return strings.TrimSpace(resp.Message.Content), nil
		}

		for _, tc := range resp.Message.ToolCalls {
			out, err := a.exec.Execute(ctx, tools.Call{ID: tc.ID, Name: tc.Name, Arguments: tc.Arguments})
			if err != nil {
				a.log.Info().Err(err).Str("tool", tc.Name).Msg("tool call failed")
			}
			msgs = append(msgs, llm.Message{
				Role:       llm.RoleTool,
				ToolCallID: tc.ID,
				Name:       tc.Name,
				Content:    tools.Render(out, err),
			})
		}
	}

	return "", fmt.Errorf("%w (%d)", ErrMaxIterations, a.maxIterations)
}

func (a *Agent) checkBudget(msgs []llm.Message) error {
	if a.count == nil {
		return nil
	}
	n, err := llm.CountMessages(a.count, msgs)
	if err != nil {
		a.log.Warn().Err(err).Msg("token count unavailable, skipping prompt budget check")
		return nil
	}
	a.log.Debug().Int("prompt_tokens", n).Int("budget", a.maxPromptTokens).Msg("prompt size")
	if n > a.maxPromptTokens {
		return fmt.Errorf("%w: %d tokens, limit %d", ErrPromptTooLarge, n, a.maxPromptTokens)
	}
	return nil
}
