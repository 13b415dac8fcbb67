package cli

import (
	"context"
	"fmt"

	"github.com/agentx-labs/setupassist/internal/branding"
	"github.com/agentx-labs/setupassist/internal/config"
	"github.com/agentx-labs/setupassist/internal/logger"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

var (
	envFile  string
	logLevel string
	provider string
	model    string

	// log is built in PersistentPreRunE.
	log = zerolog.Nop()
)

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&envFile, "env-file", config.DefaultEnvFile, "Path to the .env file holding credentials")
	pf.StringVar(&logLevel, "log-level", "", "Log level (trace, debug, info, warn, error)")
	pf.StringVar(&provider, "provider", "", "LLM provider (openai, azure, langchain)")
	pf.StringVar(&model, "model", "", "Model or deployment name")
}

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` turns natural-language requests into project scaffolding.
Greetings and help requests are answered directly; anything else goes to an
LLM agent that can create directories, write files and install dependencies.

Run without a subcommand to start an interactive session.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Load(envFile); err != nil {
			return err
		}

		flags := cmd.Flags()
		for key, name := range map[string]string{
			config.KeyProvider: "provider",
			config.KeyModel:    "model",
			config.KeyLogLevel: "log-level",
		} {
			if f := flags.Lookup(name); f != nil && f.Changed {
				viper.Set(key, f.Value.String())
			}
		}

		l, err := logger.New(cmd.ErrOrStderr(), logger.Options{
			Level:  config.Get(config.KeyLogLevel),
			Format: config.Get(config.KeyLogFormat),
		})
		if err != nil {
			return fmt.Errorf("configuring logging: %w", err)
		}
		log = l
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runChat(cmd)
	},
}

// Execute runs the root command with build info injected via ldflags.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date
	return rootCmd.ExecuteContext(context.Background())
}
