package cli

import (
	"os"
	"os/signal"

	"github.com/agentx-labs/setupassist/internal/repl"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(chatCmd)
}

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive session (default)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runChat(cmd)
	},
}

func runChat(cmd *cobra.Command) error {
	c, err := newComponents(cmd)
	if err != nil {
		return err
	}
	defer c.logUsage()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	s := &repl.Session{
		In:       cmd.InOrStdin(),
		Out:      cmd.OutOrStdout(),
		Pipeline: c.graph,
		Log:      log,
	}
	return s.Run(ctx)
}
