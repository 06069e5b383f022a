// ABOUTME: Workout commands: start from a template, list, show, finish and delete.
// ABOUTME: Nested group and set subcommands adjust a workout without touching its template.
package main

import (
	"fmt"
	"strconv"

	"github.com/fatih/color"
	"github.com/harperreed/reps/internal/reorder"
	"github.com/harperreed/reps/internal/training"
	"github.com/spf13/cobra"
)

var (
	workoutOffset   int
	workoutGroupCmd = &cobra.Command{Use: "group", Short: "Adjust a workout's set groups"}
	workoutSetCmd   = &cobra.Command{Use: "set", Short: "Adjust the sets of a workout set group"}
)

var workoutCmd = &cobra.Command{
	Use:     "workout",
	Aliases: []string{"w"},
	Short:   "Run and review workouts",
}

var workoutStartCmd = &cobra.Command{
	Use:   "start <template-id>",
	Short: "Start a workout from a template",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		templateID, err := parseID("template id", args[0])
		if err != nil {
			return err
		}
		id, err := svc.StartWorkout(cmd.Context(), templateID)
		if err != nil {
			return err
		}
		color.Green("✓ Started workout %d", id)
		return nil
	},
}

var workoutListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List workouts, newest first",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		workouts, err := svc.ListWorkouts(cmd.Context(), workoutOffset)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if len(workouts) == 0 {
			fmt.Fprintln(out, "No workouts found.")
			return nil
		}

		faint := color.New(color.Faint)
		faint.Fprintf(out, "%s %s %s %s\n", padRight("ID", 6), padRight("TEMPLATE", 20), padRight("STARTED", 17), "FINISHED")
		for _, w := range workouts {
			finished := "-"
			if w.FinishedAt != nil {
				finished = w.FinishedAt.Local().Format(timeFormat)
			}
			fmt.Fprintf(out, "%s %s %s %s\n",
				padRight(strconv.FormatInt(w.ID, 10), 6),
				padRight(truncate(w.TemplateName, 20), 20),
				padRight(w.StartedAt.Local().Format(timeFormat), 17),
				finished,
			)
		}
		if len(workouts) == training.PageSize {
			faint.Fprintf(out, "\nMore with --offset %d\n", workoutOffset+training.PageSize)
		}
		return nil
	},
}

var workoutShowCmd = &cobra.Command{
	Use:   "show <workout-id>",
	Short: "Show a workout with its sets",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID("workout id", args[0])
		if err != nil {
			return err
		}
		w, err := svc.GetWorkout(cmd.Context(), id)
		if err != nil {
			return err
		}
		if w == nil {
			return fmt.Errorf("workout %d not found", id)
		}
		printWorkout(cmd.OutOrStdout(), w)
		return nil
	},
}

var workoutCurrentCmd = &cobra.Command{
	Use:   "current",
	Short: "Show the most recent unfinished workout",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		w, err := svc.CurrentWorkout(cmd.Context())
		if err != nil {
			return err
		}
		if w == nil {
			fmt.Fprintln(cmd.OutOrStdout(), "No workout in progress.")
			return nil
		}
		printWorkout(cmd.OutOrStdout(), w)
		return nil
	},
}

var workoutFinishCmd = &cobra.Command{
	Use:   "finish <workout-id>",
	Short: "Mark a workout finished, or reopen a finished one",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID("workout id", args[0])
		if err != nil {
			return err
		}
		if err := svc.ToggleWorkoutComplete(cmd.Context(), id); err != nil {
			return err
		}
		w, err := svc.GetWorkout(cmd.Context(), id)
		if err != nil {
			return err
		}
		if w != nil && w.FinishedAt != nil {
			color.Green("✓ Finished workout %d", id)
		} else {
			color.Yellow("Reopened workout %d", id)
		}
		return nil
	},
}

var workoutDeleteCmd = &cobra.Command{
	Use:   "delete <workout-id>",
	Short: "Delete a workout and everything in it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID("workout id", args[0])
		if err != nil {
			return err
		}
		if err := svc.DeleteWorkout(cmd.Context(), id); err != nil {
			return err
		}
		color.Green("✓ Deleted workout %d", id)
		return nil
	},
}

var workoutGroupAddCmd = &cobra.Command{
	Use:   "add <workout-id> <exercise>",
	Short: "Append a set group for an exercise (id or name)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		workoutID, err := parseID("workout id", args[0])
		if err != nil {
			return err
		}
		exerciseID, err := resolveExercise(cmd.Context(), args[1])
		if err != nil {
			return err
		}
		id, err := svc.AddSetGroup(cmd.Context(), workoutID, exerciseID)
		if err != nil {
			return err
		}
		color.Green("✓ Added set group %d", id)
		return nil
	},
}

var workoutGroupRemoveCmd = &cobra.Command{
	Use:   "remove <workout-id> <group-id>",
	Short: "Remove a set group and its sets",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ids, err := parseIDs(args, "workout id", "group id")
		if err != nil {
			return err
		}
		if err := svc.RemoveSetGroup(cmd.Context(), ids[0], ids[1]); err != nil {
			return err
		}
		color.Green("✓ Removed set group %d", ids[1])
		return nil
	},
}

var workoutGroupMoveCmd = &cobra.Command{
	Use:   "move <workout-id> <group-id> <up|down>",
	Short: "Move a set group one position",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		ids, err := parseIDs(args, "workout id", "group id")
		if err != nil {
			return err
		}
		dir, err := reorder.ParseDirection(args[2])
		if err != nil {
			return err
		}
		if err := svc.MoveSetGroup(cmd.Context(), ids[0], ids[1], dir); err != nil {
			return err
		}
		color.Green("✓ Moved set group %d %s", ids[1], dir)
		return nil
	},
}

var workoutSetAddCmd = &cobra.Command{
	Use:   "add <workout-id> <group-id>",
	Short: "Append a working set to a set group",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ids, err := parseIDs(args, "workout id", "group id")
		if err != nil {
			return err
		}
		id, err := svc.AddSet(cmd.Context(), ids[0], ids[1])
		if err != nil {
			return err
		}
		color.Green("✓ Added set %d", id)
		return nil
	},
}

var workoutSetRemoveCmd = &cobra.Command{
	Use:   "remove <workout-id> <group-id> <set-id>",
	Short: "Remove a set from a set group",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		ids, err := parseIDs(args, "workout id", "group id", "set id")
		if err != nil {
			return err
		}
		if err := svc.RemoveSet(cmd.Context(), ids[0], ids[1], ids[2]); err != nil {
			return err
		}
		color.Green("✓ Removed set %d", ids[2])
		return nil
	},
}

var workoutSetMoveCmd = &cobra.Command{
	Use:   "move <workout-id> <group-id> <set-id> <up|down>",
	Short: "Move a set one position within its group",
	Args:  cobra.ExactArgs(4),
	RunE: func(cmd *cobra.Command, args []string) error {
		ids, err := parseIDs(args, "workout id", "group id", "set id")
		if err != nil {
			return err
		}
		dir, err := reorder.ParseDirection(args[3])
		if err != nil {
			return err
		}
		if err := svc.MoveSet(cmd.Context(), ids[0], ids[1], ids[2], dir); err != nil {
			return err
		}
		color.Green("✓ Moved set %d %s", ids[2], dir)
		return nil
	},
}

func init() {
	workoutListCmd.Flags().IntVar(&workoutOffset, "offset", 0, "Skip this many workouts")

	workoutGroupCmd.AddCommand(workoutGroupAddCmd, workoutGroupRemoveCmd, workoutGroupMoveCmd)
	workoutSetCmd.AddCommand(workoutSetAddCmd, workoutSetRemoveCmd, workoutSetMoveCmd)
	workoutCmd.AddCommand(
		workoutStartCmd,
		workoutListCmd,
		workoutShowCmd,
		workoutCurrentCmd,
		workoutFinishCmd,
		workoutDeleteCmd,
		workoutGroupCmd,
		workoutSetCmd,
	)
	rootCmd.AddCommand(workoutCmd)
}
