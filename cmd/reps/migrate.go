// ABOUTME: CLI command for copying the local database to a remote libsql database.
// ABOUTME: One-time move of all exercises, templates and workouts, e.g. to Turso.
package main

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/harperreed/reps/internal/config"
	"github.com/harperreed/reps/internal/storage"
	"github.com/spf13/cobra"
)

var (
	migrateTo    string
	migrateToken string
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Copy all data to another database",
	Long: `Copy all training data from the current database to another one.

The destination can be a libsql URL (libsql://name.turso.io) or a local
SQLite path. It must be empty; ids are preserved.

USAGE:

  reps migrate --to libsql://reps-me.turso.io --token $TURSO_AUTH_TOKEN
  reps migrate --to ~/backup/reps.db

AFTER MIGRATION:

  Point reps at the new database by setting database_url and
  database_auth_token in ~/.config/reps/config.toml.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if migrateTo == "" {
			return fmt.Errorf("--to is required")
		}

		dst, err := openDestination(migrateTo, migrateToken)
		if err != nil {
			return fmt.Errorf("failed to open destination: %w", err)
		}
		defer dst.Close()

		summary, err := storage.MigrateData(cmd.Context(), db, dst)
		if errors.Is(err, storage.ErrNotEmpty) {
			return fmt.Errorf("destination already has data; migrate only into an empty database")
		}
		if err != nil {
			return err
		}

		color.Green("✓ Migrated %d exercises, %d templates, %d workouts, %d sets",
			summary.Exercises, summary.Templates, summary.Workouts, summary.Sets)
		return nil
	},
}

func openDestination(target, token string) (*storage.DB, error) {
	if storage.IsRemoteURL(target) {
		return storage.OpenURL(target, token)
	}
	return storage.Open(config.ExpandPath(target))
}

func init() {
	migrateCmd.Flags().StringVar(&migrateTo, "to", "", "destination database URL or path")
	migrateCmd.Flags().StringVar(&migrateToken, "token", "", "auth token for a remote destination")
	rootCmd.AddCommand(migrateCmd)
}
