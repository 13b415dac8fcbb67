package repl

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/agentx-labs/setupassist/internal/branding"
	"github.com/agentx-labs/setupassist/internal/workflow"
	"github.com/rs/zerolog"
)

// Console strings.
const (
	Prompt      = "Type something: "
	ExitKeyword = "exit"
	Farewell    = "Goodbye!"
)

// Pipeline runs one turn.
type Pipeline interface {
	Invoke(ctx context.Context, query string) (workflow.State, error)
}

// Session is one interactive conversation.
type Session struct {
	In       io.Reader
	Out      io.Writer
	Pipeline Pipeline
	Log      zerolog.Logger
}

type readResult struct {
	line string
	err  error
}

// Welcome returns the banner printed when a session starts.
func Welcome() string {
	return fmt.Sprintf("Welcome to %s! Type '%s' to quit.", branding.DisplayName(), ExitKeyword)
}

// Run loops until exit, end of input, or ctx is cancelled. A failed turn is
// printed and the loop continues.
func (s *Session) Run(ctx context.Context) error {
	reader := bufio.NewReader(s.In)
	next := func() <-chan readResult {
		ch := make(chan readResult, 1)
		go func() {
			line, err := reader.ReadString('\n')
			ch <- readResult{line, err}
		}()
		return ch
	}

	fmt.Fprintln(s.Out, Welcome())
	turns := 0

	for {
		fmt.Fprint(s.Out, Prompt)

		var r readResult
		select {
		case <-ctx.Done():
			fmt.Fprintln(s.Out)
			fmt.Fprintln(s.Out, Farewell)
			return nil
		case r = <-next():
		}

		if r.err != nil && !errors.Is(r.err, io.EOF) {
			return fmt.Errorf("reading input: %w", r.err)
		}

		query := strings.TrimSpace(r.line)
		if query == "" {
			if r.err != nil {
				fmt.Fprintln(s.Out)
				fmt.Fprintln(s.Out, Farewell)
				return nil
			}
			continue
		}
		if strings.EqualFold(query, ExitKeyword) {
			fmt.Fprintln(s.Out, Farewell)
			s.Log.Debug().Int("turns", turns).Msg("session ended")
			return nil
		}

		turns++
		state, err := s.Pipeline.Invoke(ctx, query)
		if err != nil {
			if ctx.Err() != nil {
				fmt.Fprintln(s.Out)
				fmt.Fprintln(s.Out, Farewell)
				return nil
			}
			s.Log.Debug().Err(err).Msg("turn failed")
			fmt.Fprintf(s.Out, "Error: %v\n", err)
			continue
		}
		fmt.Fprintln(s.Out, state.Result)
	}
}
