package workflow

import (
	"context"
	"errors"
	"testing"

	"github.com/agentx-labs/setupassist/internal/intent"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRunner struct {
	out     string
	err     error
	queries []string
}

func (f *fakeRunner) Run(_ context.Context, q string) (string, error) {
	f.queries = append(f.queries, q)
	return f.out, f.err
}

func newGraph(t *testing.T, r Runner) *Graph {
	t.Helper()
	c, err := intent.New(nil, intent.MatchWord)
	require.NoError(t, err)
	return New(c, r, zerolog.Nop())
}

func TestNodes(t *testing.T) {
	g := newGraph(t, &fakeRunner{})
	assert.Equal(t, []string{"process_query", "execute_action"}, g.Nodes())
}

func TestInvoke_GeneralResponse(t *testing.T) {
	r := &fakeRunner{}
	g := newGraph(t, r)

	s, err := g.Invoke(context.Background(), "help")
	require.NoError(t, err)
	assert.Equal(t, ActionGeneralResponse, s.Action)
	assert.Equal(t, "I can assist with setting up coding projects. Try asking: 'Create a Python project named MyApp'.", s.Result)
	assert.Empty(t, r.queries, "agent must not run for small talk")
}

func TestInvoke_AgentResultBecomesAction(t *testing.T) {
	r := &fakeRunner{out: "data_clean"}
	g := newGraph(t, r)

	s, err := g.Invoke(context.Background(), "Can you create a project called data_clean")
	require.NoError(t, err)
	assert.Equal(t, "data_clean", s.Action)
	assert.Equal(t, "data_clean", s.Result)
	assert.Equal(t, []string{"Can you create a project called data_clean"}, r.queries)
}

func TestInvoke_PostProcessesAgentOutput(t *testing.T) {
	g := newGraph(t, &fakeRunner{out: `Sure, I'll create project "demo_app" now.`})

	s, err := g.Invoke(context.Background(), "make demo_app")
	require.NoError(t, err)
	assert.Equal(t, "demo_app", s.Result)
}

func TestInvoke_FreshStatePerTurn(t *testing.T) {
	g := newGraph(t, &fakeRunner{out: "x"})

	a, err := g.Invoke(context.Background(), "build x")
	require.NoError(t, err)
	b, err := g.Invoke(context.Background(), "hello")
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, a.ID)
	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, "hello", b.Query)
	assert.Equal(t, ActionGeneralResponse, b.Action)
}

func TestInvoke_AgentError(t *testing.T) {
	boom := errors.New("provider unavailable")
	g := newGraph(t, &fakeRunner{err: boom})

	s, err := g.Invoke(context.Background(), "set up a rust project")
	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), NodeProcessQuery)
	assert.Empty(t, s.Result)
}
