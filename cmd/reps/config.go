// ABOUTME: Config commands for inspecting and editing ~/.config/reps/config.toml.
// ABOUTME: Shows effective settings and stores the remote database location.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/harperreed/reps/internal/config"
	"github.com/spf13/cobra"
)

var remoteToken string

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		faint := color.New(color.Faint)

		row := func(key, value string) {
			if value == "" {
				value = "-"
			}
			faint.Fprintf(out, "%s ", padRight(key, 14))
			fmt.Fprintln(out, value)
		}

		row("config file", currentConfigPath())
		if cfg.IsRemote() {
			row("database", cfg.DatabaseURL)
			token := ""
			if cfg.DatabaseAuthToken != "" {
				token = "(set)"
			}
			row("auth token", token)
		} else {
			row("database", db.Path())
		}
		row("log level", cfg.Log.Level)
		row("log file", cfg.Log.File)
		row("metrics addr", cfg.GetMetricsAddr())
		sentry := ""
		if cfg.Sentry.DSN != "" {
			sentry = "enabled"
		}
		row("sentry", sentry)
		return nil
	},
}

var configRemoteCmd = &cobra.Command{
	Use:   "set-remote <libsql-url>",
	Short: "Use a remote libsql database",
	Long: `Store a remote libsql database (e.g. Turso) in the config file.

Pass an empty URL to go back to the local SQLite file. Use 'reps migrate'
first to copy existing data.`,
	Example: `  reps config set-remote libsql://reps-me.turso.io --token $TURSO_AUTH_TOKEN
  reps config set-remote ""`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := currentConfigPath()
		// Reload without env overrides so they don't get persisted.
		fileCfg, err := config.ReadFile(path)
		if err != nil {
			return err
		}
		fileCfg.DatabaseURL = args[0]
		fileCfg.DatabaseAuthToken = remoteToken
		if err := fileCfg.SaveFile(path); err != nil {
			return fmt.Errorf("failed to save config: %w", err)
		}
		if args[0] == "" {
			color.Green("✓ Using the local database")
		} else {
			color.Green("✓ Using %s", args[0])
		}
		return nil
	},
}

func currentConfigPath() string {
	if configPath != "" {
		return configPath
	}
	return config.GetConfigPath()
}

func init() {
	configRemoteCmd.Flags().StringVar(&remoteToken, "token", "", "auth token for the remote database")
	configCmd.AddCommand(configShowCmd, configRemoteCmd)
	rootCmd.AddCommand(configCmd)
}
