package workflow

import (
	"context"
	"fmt"
	"time"

	"github.com/agentx-labs/setupassist/internal/agent"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Node names, in execution order.
const (
	NodeProcessQuery  = "process_query"
	NodeExecuteAction = "execute_action"
)

// ActionGeneralResponse marks a turn answered from the canned table.
const ActionGeneralResponse = "general_response"

// State is the per-turn record threaded through the graph.
type State struct {
	ID     uuid.UUID
	Query  string
	Action string
	Result string
}

// Classifier answers small talk.
type Classifier interface {
	IsGeneral(query string) bool
	Reply(query string) string
}

// Runner handles project requests.
type Runner interface {
	Run(ctx context.Context, query string) (string, error)
}

type node struct {
	name string
	fn   func(ctx context.Context, s *State) error
}

// Graph is the START -> process_query -> execute_action -> END pipeline.
type Graph struct {
	classifier Classifier
	runner     Runner
	nodes      []node
	log        zerolog.Logger
}

// New builds the graph.
func New(classifier Classifier, runner Runner, log zerolog.Logger) *Graph {
	g := &Graph{classifier: classifier, runner: runner, log: log}
	g.nodes = []node{
		{NodeProcessQuery, g.processQuery},
		{NodeExecuteAction, g.executeAction},
	}
	return g
}

// Nodes returns the node names in execution order.
func (g *Graph) Nodes() []string {
	names := make([]string, len(g.nodes))
	for i, n := range g.nodes {
		names[i] = n.name
	}
	return names
}

// Invoke runs query through every node and returns the final state.
func (g *Graph) Invoke(ctx context.Context, query string) (State, error) {
	s := State{ID: uuid.New(), Query: query}
	log := g.log.With().Str("turn", s.ID.String()).Logger()

	for _, n := range g.nodes {
		start := time.Now()
		log.Debug().Str("node", n.name).Msg("entering node")
		if err := n.fn(ctx, &s); err != nil {
			return s, fmt.Errorf("%s: %w", n.name, err)
		}
		log.Debug().Str("node", n.name).Str("action", s.Action).Dur("elapsed", time.Since(start)).Msg("leaving node")
	}
	return s, nil
}

func (g *Graph) processQuery(ctx context.Context, s *State) error {
	if g.classifier.IsGeneral(s.Query) {
		s.Action = ActionGeneralResponse
		s.Result = g.classifier.Reply(s.Query)
		return nil
	}

	out, err := g.runner.Run(ctx, s.Query)
	if err != nil {
		return err
	}
	s.Action = agent.PostProcess(out)
	return nil
}

func (g *Graph) executeAction(_ context.Context, s *State) error {
	if s.Action != ActionGeneralResponse {
		s.Result = s.Action
	}
	return nil
}
