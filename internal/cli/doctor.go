package cli

import (
	"fmt"

	"github.com/agentx-labs/setupassist/internal/doctor"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check credentials, package manager and workspace",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := loadSettings()
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		r := doctor.Run(cmd.Context(), w, s, doctor.Lookups{})
		fmt.Fprintln(w)
		if r.Healthy() {
			fmt.Fprintf(w, "All checks passed (%d ok, %d warnings).\n", r.OK, r.Warn)
			return nil
		}
		fmt.Fprintf(w, "%d missing, %d failed, %d warnings.\n", r.Miss, r.Fail, r.Warn)
		return nil
	},
}
