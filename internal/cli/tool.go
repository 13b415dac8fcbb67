package cli

import (
	"encoding/json"
	"fmt"

	"github.com/agentx-labs/setupassist/internal/config"
	"github.com/agentx-labs/setupassist/internal/tools"
	"github.com/spf13/cobra"
)

var (
	fileContent     string
	installManager  string
	installManifest string
)

func init() {
	toolCreateFileCmd.Flags().StringVar(&fileContent, "content", "", "Initial file content")
	toolInstallCmd.Flags().StringVar(&installManager, "manager", "", "Package manager (pip, npm, go)")
	toolInstallCmd.Flags().StringVar(&installManifest, "manifest", "", "Manifest file name")

	toolCmd.AddCommand(toolCreateDirCmd)
	toolCmd.AddCommand(toolCreateFileCmd)
	toolCmd.AddCommand(toolInstallCmd)
	rootCmd.AddCommand(toolCmd)
}

var toolCmd = &cobra.Command{
	Use:   "tool",
	Short: "Invoke a tool directly, without the LLM",
}

var toolCreateDirCmd = &cobra.Command{
	Use:   "create-dir <project>",
	Short: "Create a project directory",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTool(cmd, tools.CreateDirectory, map[string]string{"project_name": args[0]}, nil)
	},
}

var toolCreateFileCmd = &cobra.Command{
	Use:   "create-file <project> <filename>",
	Short: "Create or overwrite a file inside a project",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTool(cmd, tools.CreateFile, map[string]string{
			"project_name": args[0],
			"filename":     args[1],
			"content":      fileContent,
		}, nil)
	},
}

var toolInstallCmd = &cobra.Command{
	Use:   "install",
	Short: "Install dependencies from the project manifest",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTool(cmd, tools.InstallDependencies, map[string]string{}, func(s *config.Settings) {
			if installManager != "" {
				s.Install.Manager = installManager
			}
			if installManifest != "" {
				s.Install.Manifest = installManifest
			}
		})
	},
}

func runTool(cmd *cobra.Command, kind tools.Kind, args map[string]string, adjust func(*config.Settings)) error {
	s, err := loadSettings()
	if err != nil {
		return err
	}
	if adjust != nil {
		adjust(s)
	}
	set, err := newToolSet(cmd, s)
	if err != nil {
		return err
	}

	raw, err := json.Marshal(args)
	if err != nil {
		return fmt.Errorf("encoding arguments: %w", err)
	}
	msg, err := set.Execute(cmd.Context(), tools.Call{ID: "cli", Name: string(kind), Arguments: string(raw)})
	if err != nil {
		return fmt.Errorf("%s: %w", kind, err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), msg)
	return nil
}
