package cmd

import (
	"github.com/refpin/refpin/pkg/version"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "refpin",
	Short: "Mock Pinterest search server for art reference practice, exposed over MCP",
	Long: "refpin serves deterministic mock Pinterest search results for drawing practice apps.\n\n" +
		"It exposes two MCP tools (search_pinterest, search_pinterest_diverse) over stdio or\n" +
		"streamable HTTP, plus a small REST API for tool discovery, tool invocation and\n" +
		"practice session tracking.",
	Version:       version.GetVersion(),
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command. It is the entrypoint of the CLI.
func Execute() error {
	return rootCmd.Execute()
}
