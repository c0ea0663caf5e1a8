package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/refpin/refpin/client"
	"github.com/spf13/cobra"
)

var clientServerCommand string

// registerServerCommandFlag adds the --server-command flag to commands that
// launch a refpin server subprocess to talk to.
func registerServerCommandFlag(cmd *cobra.Command) {
	cmd.Flags().StringVar(
		&clientServerCommand,
		"server-command",
		"",
		"command used to launch the refpin server subprocess (defaults to this binary)",
	)
}

// connectToServer launches a refpin server subprocess speaking MCP over
// stdio and returns a connected client. By default the current binary is
// re-executed with the `serve` subcommand.
func connectToServer(ctx context.Context) (*client.Client, error) {
	command := clientServerCommand
	args := []string{"serve"}
	if command == "" {
		self, err := os.Executable()
		if err != nil {
			return nil, fmt.Errorf("failed to determine current executable: %w", err)
		}
		command = self
	}

	c, err := client.Connect(ctx, &client.Config{
		Command: command,
		Args:    args,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to refpin server: %w", err)
	}
	return c, nil
}
