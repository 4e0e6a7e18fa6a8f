package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "workspace-mcp",
	Short: "MCP server for Google Workspace APIs",
	Long: `workspace-mcp exposes Google Workspace operations (Drive, Docs, Slides,
Sheets, Calendar, Contacts, Tasks) as Model Context Protocol tools for
AI assistants.

A single Google account authorizes the server; its token is cached on
disk and refreshed automatically. Run "workspace-mcp auth" once to
bootstrap the credentials, then "workspace-mcp serve" (the default
command) to start the server.`,
	SilenceUsage: true,
}

var version = "dev"

// SetVersion records the build version on the root command.
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// Execute runs the CLI. A bare invocation defaults to the serve
// subcommand so the binary can be used directly as an MCP server entry.
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "workspace-mcp version %s\n" .Version}}`)

	if len(os.Args) == 1 {
		os.Args = append(os.Args, "serve")
	}

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(
		newServeCmd(),
		newAuthCmd(),
		newVersionCmd(),
		newGenerateDocsCmd(),
	)
}
