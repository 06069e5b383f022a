// ABOUTME: CLI commands for exporting and importing training data.
// ABOUTME: Supports JSON and YAML dumps and a Markdown log of one workout.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/harperreed/reps/internal/storage"
	"github.com/spf13/cobra"
)

var (
	exportOutput  string
	exportWorkout string
)

var exportCmd = &cobra.Command{
	Use:   "export <format>",
	Short: "Export training data",
	Long: `Export training data in various formats.

FORMATS:

  json       Full JSON export (suitable for backup/restore)
  yaml       YAML export (human-readable)
  markdown   One workout as a Markdown log (requires --workout)

EXAMPLES:

  reps export json                      # Export all data as JSON
  reps export json -o backup.json       # Save to file
  reps export yaml                      # Export as YAML
  reps export markdown --workout 12     # Share workout 12`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"json", "yaml", "markdown"},
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		format := args[0]

		var data []byte
		var err error

		switch format {
		case "json":
			data, err = db.ExportJSON(ctx)
		case "yaml":
			data, err = db.ExportYAML(ctx)
		case "markdown":
			if exportWorkout == "" {
				return fmt.Errorf("markdown export needs --workout <id>")
			}
			id, perr := parseID("workout id", exportWorkout)
			if perr != nil {
				return perr
			}
			var md string
			md, err = db.ExportMarkdown(ctx, id)
			if errors.Is(err, storage.ErrNotFound) {
				return fmt.Errorf("workout %d not found", id)
			}
			data = []byte(md)
		default:
			return fmt.Errorf("unknown format: %s (use json, yaml, or markdown)", format)
		}

		if err != nil {
			return fmt.Errorf("export failed: %w", err)
		}

		if exportOutput != "" {
			if err := os.WriteFile(exportOutput, data, 0600); err != nil {
				return fmt.Errorf("failed to write file: %w", err)
			}
			color.Green("✓ Exported to %s", exportOutput)
		} else {
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
		}

		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import training data from JSON",
	Long: `Import training data from a JSON backup file.

The backup restores exercises, templates and workouts with their ids, so
the target database must be empty.

EXAMPLES:

  reps import backup.json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		filename := args[0]

		data, err := os.ReadFile(filename)
		if err != nil {
			return fmt.Errorf("failed to read file: %w", err)
		}

		if err := db.ImportJSON(cmd.Context(), data); err != nil {
			return fmt.Errorf("import failed: %w", err)
		}

		color.Green("✓ Imported from %s", filename)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file (default: stdout)")
	exportCmd.Flags().StringVar(&exportWorkout, "workout", "", "workout id (markdown only)")

	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
}
