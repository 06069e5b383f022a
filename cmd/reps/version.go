// ABOUTME: Version command for the reps CLI.
// ABOUTME: The version string is set at build time via -ldflags.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the reps version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "reps %s\n", version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
