package cli

import (
	"fmt"

	"github.com/agentx-labs/setupassist/internal/agent"
	"github.com/agentx-labs/setupassist/internal/config"
	"github.com/agentx-labs/setupassist/internal/installer"
	"github.com/agentx-labs/setupassist/internal/intent"
	"github.com/agentx-labs/setupassist/internal/llm"
	"github.com/agentx-labs/setupassist/internal/tools"
	"github.com/agentx-labs/setupassist/internal/workflow"
	"github.com/spf13/cobra"
)

// components holds everything a conversational command needs.
type components struct {
	settings *config.Settings
	tools    *tools.Set
	client   llm.Client
	graph    *workflow.Graph
}

func loadSettings() (*config.Settings, error) {
	s, err := config.Current()
	if err != nil {
		return nil, fmt.Errorf("loading settings: %w", err)
	}
	return s, nil
}

// newToolSet wires the tool set. Package manager output goes to stderr so it
// never mixes with results or the MCP stream on stdout.
func newToolSet(cmd *cobra.Command, s *config.Settings) (*tools.Set, error) {
	inst, err := installer.New(s.Install.Manager)
	if err != nil {
		return nil, err
	}
	inst.Manifest = s.Install.Manifest
	inst.Timeout = s.Install.Timeout
	inst.Stdout = cmd.ErrOrStderr()
	inst.Stderr = cmd.ErrOrStderr()
	inst.Log = log

	return &tools.Set{Installer: inst, Log: log}, nil
}

func newComponents(cmd *cobra.Command) (*components, error) {
	s, err := loadSettings()
	if err != nil {
		return nil, err
	}
	set, err := newToolSet(cmd, s)
	if err != nil {
		return nil, err
	}

	client, err := llm.New(s.LLM, log)
	if err != nil {
		return nil, err
	}

	a, err := agent.New(client, set, agent.Options{
		MaxIterations:   s.LLM.MaxIterations,
		MaxPromptTokens: s.LLM.MaxPromptTokens,
		Counter:         llm.TiktokenCounter(s.LLM.Model),
		Log:             log,
	})
	if err != nil {
		return nil, err
	}

	mode, err := intent.ParseMatchMode(s.Classifier.Match)
	if err != nil {
		return nil, err
	}
	classifier, err := intent.New(nil, mode)
	if err != nil {
		return nil, err
	}

	return &components{
		settings: s,
		tools:    set,
		client:   client,
		graph:    workflow.New(classifier, a, log),
	}, nil
}

func (c *components) logUsage() {
	r, ok := c.client.(llm.UsageReporter)
	if !ok {
		return
	}
	u := r.GetTokenUsage()
	log.Debug().
		Int("prompt_tokens", u.PromptTokens).
		Int("completion_tokens", u.CompletionTokens).
		Int("total_tokens", u.TotalTokens).
		Msg("token usage")
}
