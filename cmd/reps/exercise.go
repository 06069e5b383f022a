// ABOUTME: Exercise catalog commands and catalog seeding.
// ABOUTME: Supports adding and listing exercises and inserting the starter data.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/harperreed/reps/internal/models"
	"github.com/spf13/cobra"
)

var exerciseCmd = &cobra.Command{
	Use:     "exercise",
	Aliases: []string{"ex"},
	Short:   "Manage the exercise catalog",
}

var exerciseAddCmd = &cobra.Command{
	Use:   "add <name> <duration|reps|reps_and_weight>",
	Short: "Add an exercise",
	Example: `  reps exercise add "Romanian Deadlift" reps_and_weight
  reps exercise add "Jump Rope" duration`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := svc.AddExercise(cmd.Context(), args[0], models.MeasuredIn(args[1]))
		if err != nil {
			return err
		}
		color.Green("✓ Added exercise %s (id %d)", args[0], id)
		return nil
	},
}

var exerciseListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List exercises",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		exercises, err := svc.ListExercises(cmd.Context())
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if len(exercises) == 0 {
			fmt.Fprintln(out, "No exercises yet. Run 'reps seed' or 'reps exercise add'.")
			return nil
		}

		faint := color.New(color.Faint)
		faint.Fprintf(out, "%s %s %s\n", padRight("ID", 6), padRight("NAME", 24), "MEASURED IN")
		for _, e := range exercises {
			fmt.Fprintf(out, "%s %s %s\n", padRight(fmt.Sprint(e.ID), 6), padRight(truncate(e.Name, 24), 24), e.MeasuredIn)
		}
		return nil
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert starter exercises and templates",
	Long: `Insert the starter exercise catalog and sample templates.

Entries that already exist are skipped, so seeding twice is harmless.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		exercises, err := svc.SeedExercises(cmd.Context())
		if err != nil {
			return err
		}
		templates, err := svc.SeedTemplates(cmd.Context())
		if err != nil {
			return err
		}
		if exercises == 0 && templates == 0 {
			color.Yellow("Nothing to seed, starter data already present")
			return nil
		}
		color.Green("✓ Seeded %d exercises and %d templates", exercises, templates)
		return nil
	},
}

func init() {
	exerciseCmd.AddCommand(exerciseAddCmd)
	exerciseCmd.AddCommand(exerciseListCmd)
	rootCmd.AddCommand(exerciseCmd)
	rootCmd.AddCommand(seedCmd)
}
