package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(askCmd)
}

var askCmd = &cobra.Command{
	Use:   "ask <query...>",
	Short: "Run a single request and print the result",
	Example: `  setupassist ask "create a project called data_clean"
  setupassist ask help`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newComponents(cmd)
		if err != nil {
			return err
		}
		defer c.logUsage()

		state, err := c.graph.Invoke(cmd.Context(), strings.Join(args, " "))
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), state.Result)
		return nil
	},
}
