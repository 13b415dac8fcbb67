package cli

import (
	"fmt"

	"github.com/agentx-labs/setupassist/internal/config"
	"github.com/spf13/cobra"
)

func init() {
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configShowCmd)
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage user settings",
	Long:  `Read and write configuration stored at ~/.setupassist/config.yaml.`,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, value := args[0], args[1]
		if err := config.Set(key, value); err != nil {
			return fmt.Errorf("setting config key %q: %w", key, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s\n", key, config.RedactValue(key, value))
		return nil
	},
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a configuration value",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintln(cmd.OutOrStdout(), config.Get(args[0]))
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective settings with secrets redacted",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		w := cmd.OutOrStdout()
		resolved, err := config.Current()
		if err != nil {
			fmt.Fprintf(w, "warning: %v (showing raw values)\n", err)
		}

		for _, key := range config.KnownKeys() {
			value := config.Get(key)
			if resolved != nil {
				switch key {
				case config.KeyAPIKey:
					value = resolved.LLM.APIKey
				case config.KeyEndpoint:
					value = resolved.LLM.Endpoint
				}
			}
			if value == "" {
				value = "(unset)"
			} else {
				value = config.RedactValue(key, value)
			}
			fmt.Fprintf(w, "%-20s %s\n", key, value)
		}
		fmt.Fprintf(w, "%-20s %s\n", "config file", config.FilePath())
		return nil
	},
}
