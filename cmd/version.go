package cmd

import (
	"github.com/refpin/refpin/pkg/version"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the refpin version",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Println(version.GetVersion())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
