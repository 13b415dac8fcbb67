package cli

import (
	"github.com/agentx-labs/setupassist/internal/mcpserver"
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the tools over MCP on stdio",
	Long: `Expose create_directory, create_file and install_dependencies as Model
Context Protocol tools over stdin/stdout, for use by editors and other agents.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := loadSettings()
		if err != nil {
			return err
		}
		set, err := newToolSet(cmd, s)
		if err != nil {
			return err
		}

		srv, err := mcpserver.New(set, buildVersion, log)
		if err != nil {
			return err
		}
		log.Info().Str("version", buildVersion).Msg("serving MCP on stdio")
		return server.ServeStdio(srv)
	},
}
