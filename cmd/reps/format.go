// ABOUTME: Shared output helpers for the reps CLI.
// ABOUTME: ID parsing, error printing and the tree views of templates and workouts.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/harperreed/reps/internal/models"
	"github.com/harperreed/reps/internal/training"
)

const timeFormat = "2006-01-02 15:04"

// parseID parses a positive integer identifier argument.
func parseID(what, raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s %q: must be a positive integer", what, raw)
	}
	return id, nil
}

// parseIDs parses positional identifier arguments in order.
func parseIDs(args []string, names ...string) ([]int64, error) {
	ids := make([]int64, len(names))
	for i, name := range names {
		id, err := parseID(name, args[i])
		if err != nil {
			return nil, err
		}
		ids[i] = id
	}
	return ids, nil
}

func printError(err error) {
	red := color.New(color.FgRed)
	var terr *training.Error
	if errors.As(err, &terr) && terr.Kind == training.KindValidation && terr.Field != "" {
		red.Fprintf(os.Stderr, "✗ %s ", terr.Error())
		color.New(color.Faint).Fprintf(os.Stderr, "(%s)\n", terr.Field)
		return
	}
	red.Fprintf(os.Stderr, "✗ %s\n", err)
}

// exitCode maps validation failures to 2 and everything else to 1.
func exitCode(err error) int {
	if training.KindOf(err) == training.KindValidation {
		return 2
	}
	return 1
}

func padRight(s string, length int) string {
	if len(s) >= length {
		return s
	}
	return s + strings.Repeat(" ", length-len(s))
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}

func formatRest(seconds int) string {
	return (time.Duration(seconds) * time.Second).String()
}

// formatMetrics renders the values relevant to the exercise kind.
func formatMetrics(kind models.MeasuredIn, m models.Metrics) string {
	m = kind.Filter(m)
	var parts []string
	if m.Reps != nil {
		parts = append(parts, fmt.Sprintf("%d reps", *m.Reps))
	}
	if m.Weight != nil {
		parts = append(parts, strconv.FormatFloat(*m.Weight, 'f', -1, 64)+" kg")
	}
	if m.Duration != nil {
		parts = append(parts, formatRest(*m.Duration))
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, " × ")
}

func exerciseName(e *models.Exercise) (string, models.MeasuredIn) {
	if e == nil {
		return "?", ""
	}
	return e.Name, e.MeasuredIn
}

func groupFlags(rest int, superset bool) string {
	s := "rest " + formatRest(rest)
	if superset {
		s += ", superset"
	}
	return s
}

func printTemplate(w io.Writer, t *models.Template) {
	faint := color.New(color.Faint)

	fmt.Fprintf(w, "Template #%d  %s\n", t.ID, t.Name)
	if len(t.SetGroups) == 0 {
		faint.Fprintln(w, "  (no set groups)")
		return
	}
	for i, g := range t.SetGroups {
		name, _ := exerciseName(g.Exercise)
		fmt.Fprintf(w, "  %d. %s ", i+1, padRight(name, 20))
		faint.Fprintf(w, "group %d, %s\n", g.ID, groupFlags(g.RestDurationSeconds, g.IsSuperset))
		for _, set := range g.Sets {
			fmt.Fprintf(w, "       set %-5d %s\n", set.ID, set.Type)
		}
	}
}

func printWorkout(w io.Writer, wk *models.Workout) {
	faint := color.New(color.Faint)
	green := color.New(color.FgGreen)

	name := "?"
	if wk.Template != nil {
		name = wk.Template.Name
	}
	fmt.Fprintf(w, "Workout #%d  %s\n", wk.ID, name)
	fmt.Fprintf(w, "Started   %s\n", wk.StartedAt.Local().Format(timeFormat))
	if wk.FinishedAt != nil {
		fmt.Fprintf(w, "Finished  %s\n", wk.FinishedAt.Local().Format(timeFormat))
	} else {
		color.New(color.FgYellow).Fprintln(w, "In progress")
	}

	for i, g := range wk.SetGroups {
		exName, kind := exerciseName(g.Exercise)
		fmt.Fprintf(w, "\n  %d. %s ", i+1, padRight(exName, 20))
		faint.Fprintf(w, "group %d, %s\n", g.ID, groupFlags(g.RestDurationSeconds, g.IsSuperset))
		for _, set := range g.Sets {
			fmt.Fprintf(w, "       set %-5d %-8s %s", set.ID, set.Type, padRight(formatMetrics(kind, set.Metrics), 22))
			if set.Complete() {
				green.Fprint(w, " ✓")
			}
			fmt.Fprintln(w)
		}
	}
}
