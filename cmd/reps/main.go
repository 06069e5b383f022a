// ABOUTME: Entry point for the reps CLI application.
// ABOUTME: Initializes and executes the root command.
package main

import (
	"os"
)

func main() {
	if err := Execute(); err != nil {
		printError(err)
		os.Exit(exitCode(err))
	}
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
