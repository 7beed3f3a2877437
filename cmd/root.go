package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command for the taskly-mcp application
var rootCmd = &cobra.Command{
	Use:   "taskly-mcp",
	Short: "Exposes a task-management backend as MCP tools",
	Long: `taskly-mcp is a thin intermediary over a task-management backend. It
exposes the backend's tasks, categories and sticky notes as callable tools,
verifies the caller's bearer token and reshapes backend JSON into a
mobile-friendly structure.

It can run as:
  - An MCP (Model Context Protocol) server over stdio (default)
  - An HTTP server exposing the same operations as routes`,
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
	rootCmd.SetVersionTemplate(`{{printf "taskly-mcp version %s\n" .Version}}`)

	// If no subcommand is provided, serve over stdio by default
	if len(os.Args) == 1 {
		os.Args = append(os.Args, "serve")
	}

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newCheckCmd())
	rootCmd.AddCommand(newVersionCmd())
}
