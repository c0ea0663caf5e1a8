package cmd

import (
	"encoding/json"
	"fmt"
	"slices"

	"github.com/spf13/cobra"
)

var toolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "List the tools exposed by the refpin server",
	Long: "Launches a refpin server subprocess, discovers its tools over MCP and prints\n" +
		"each tool's name, description and input parameters.",
	RunE: runListTools,
}

func init() {
	registerServerCommandFlag(toolsCmd)
	rootCmd.AddCommand(toolsCmd)
}

func runListTools(cmd *cobra.Command, args []string) error {
	c, err := connectToServer(cmd.Context())
	if err != nil {
		return err
	}
	defer func() {
		_ = c.Close()
	}()

	tools := c.Tools()
	if len(tools) == 0 {
		cmd.Println("The server does not expose any tools.")
		return nil
	}

	for i, t := range tools {
		cmd.Println(t.Name)
		cmd.Println(t.Description)

		if len(t.InputSchema.Properties) == 0 {
			cmd.Println("This tool does not require any input parameters.")
		} else {
			cmd.Println()
			cmd.Println("Input Parameters:")
			for name, schema := range t.InputSchema.Properties {
				requiredOrOptional := "optional"
				if slices.Contains(t.InputSchema.Required, name) {
					requiredOrOptional = "required"
				}

				fmt.Printf("* %s (%s)\n", name, requiredOrOptional)

				j, err := json.MarshalIndent(schema, "  ", "  ")
				if err != nil {
					// Simply print the raw object if we fail to marshal it
					cmd.Println(schema)
				} else {
					cmd.Println("  " + string(j))
				}
			}
		}

		if i < len(tools)-1 {
			cmd.Println()
		}
	}

	return nil
}
