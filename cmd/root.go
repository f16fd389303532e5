package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command for drivescout
var rootCmd = &cobra.Command{
	Use:   "drivescout",
	Short: "Read-only Google Drive tools for AI assistants over MCP",
	Long: `drivescout is a Model Context Protocol (MCP) server that gives AI
assistants read-only access to a user's Google Drive: searching files,
listing recent activity, browsing folders, and reading file content.

It needs a one-time interactive authorization (run 'drivescout auth');
afterwards the stored credential is refreshed automatically.`,
	SilenceUsage: true,
}

// version will be set by main
var version = "dev"

// SetVersion sets the version for the root command
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// Execute is the main entry point for the CLI application
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "drivescout version %s\n" .Version}}`)

	// If no subcommand is provided, run the serve command by default
	if len(os.Args) == 1 {
		os.Args = append(os.Args, "serve")
	}

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newAuthCmd())
}
