// ABOUTME: Set progress commands for a running workout.
// ABOUTME: "log" records metrics; "done" toggles completion, recording metrics on the way.
package main

import (
	"github.com/fatih/color"
	"github.com/harperreed/reps/internal/training"
	"github.com/spf13/cobra"
)

var (
	setReps     string
	setWeight   string
	setDuration string
)

var setCmd = &cobra.Command{
	Use:   "set",
	Short: "Log metrics and complete sets",
}

var setLogCmd = &cobra.Command{
	Use:   "log <workout-id> <set-id>",
	Short: "Record reps, weight or duration for a set",
	Long: `Record reps, weight or duration for a set.

Only the values the exercise is measured in are stored. Passing an empty
value (e.g. --weight "") clears it.`,
	Example: `  reps set log 3 12 --reps 8 --weight 62.5
  reps set log 3 20 --duration 45`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ids, err := parseIDs(args, "workout id", "set id")
		if err != nil {
			return err
		}
		if err := svc.UpdateSetMetrics(cmd.Context(), ids[0], ids[1], metricFlags()); err != nil {
			return err
		}
		color.Green("✓ Logged set %d", ids[1])
		return nil
	},
}

var setDoneCmd = &cobra.Command{
	Use:   "done <workout-id> <set-id>",
	Short: "Complete a set, or reopen a completed one",
	Long: `Complete a set, or reopen a completed one.

Completing requires the values the exercise is measured in, either passed
as flags or logged earlier. Reopening keeps the logged values.`,
	Example: `  reps set done 3 12 --reps 8 --weight 62.5
  reps set done 3 12`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ids, err := parseIDs(args, "workout id", "set id")
		if err != nil {
			return err
		}
		if err := svc.ToggleSetComplete(cmd.Context(), ids[0], ids[1], metricFlags()); err != nil {
			return err
		}
		color.Green("✓ Toggled set %d", ids[1])
		return nil
	},
}

func metricFlags() training.MetricInput {
	return training.MetricInput{
		Reps:     setReps,
		Weight:   setWeight,
		Duration: setDuration,
	}
}

func init() {
	for _, c := range []*cobra.Command{setLogCmd, setDoneCmd} {
		c.Flags().StringVarP(&setReps, "reps", "r", "", "Repetitions")
		c.Flags().StringVarP(&setWeight, "weight", "w", "", "Weight")
		c.Flags().StringVarP(&setDuration, "duration", "d", "", "Duration in seconds")
	}
	setCmd.AddCommand(setLogCmd, setDoneCmd)
	rootCmd.AddCommand(setCmd)
}
