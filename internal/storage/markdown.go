// ABOUTME: Markdown rendering of a workout for sharing or journaling.
// ABOUTME: One table per set-group listing target type, recorded metrics and completion.
package storage

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/harperreed/reps/internal/models"
)

// ExportMarkdown renders one workout as Markdown.
func (d *DB) ExportMarkdown(ctx context.Context, workoutID int64) (string, error) {
	w, err := d.GetWorkoutTree(ctx, workoutID)
	if err != nil {
		return "", err
	}
	return RenderWorkoutMarkdown(w), nil
}

// RenderWorkoutMarkdown formats a fully loaded workout.
func RenderWorkoutMarkdown(w *models.Workout) string {
	var sb strings.Builder

	name := "Workout"
	if w.Template != nil {
		name = w.Template.Name
	}
	sb.WriteString(fmt.Sprintf("# %s - %s\n\n", name, w.StartedAt.Local().Format("2006-01-02")))
	sb.WriteString(fmt.Sprintf("Started: %s\n", w.StartedAt.Local().Format("15:04")))
	if w.FinishedAt != nil {
		sb.WriteString(fmt.Sprintf("Finished: %s (%s)\n\n",
			w.FinishedAt.Local().Format("15:04"), w.FinishedAt.Sub(w.StartedAt).Round(time.Minute)))
	} else {
		sb.WriteString("Status: in progress\n\n")
	}

	for i, g := range w.SetGroups {
		exercise := fmt.Sprintf("exercise %d", g.ExerciseID)
		if g.Exercise != nil {
			exercise = g.Exercise.Name
		}
		sb.WriteString(fmt.Sprintf("## %d. %s\n\n", i+1, exercise))
		sb.WriteString(fmt.Sprintf("Rest: %ds", g.RestDurationSeconds))
		if g.IsSuperset {
			sb.WriteString(" (superset with next)")
		}
		sb.WriteString("\n\n")

		sb.WriteString("| Set | Type | Reps | Weight | Duration | Done |\n")
		sb.WriteString("|-----|------|------|--------|----------|------|\n")
		for j, s := range g.Sets {
			done := ""
			if s.Complete() {
				done = "x"
			}
			sb.WriteString(fmt.Sprintf("| %d | %s | %s | %s | %s | %s |\n",
				j+1, s.Type, optInt(s.Reps), optFloat(s.Weight), optDuration(s.Duration), done))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

func optInt(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

func optFloat(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func optDuration(v *int) string {
	if v == nil {
		return ""
	}
	return (time.Duration(*v) * time.Second).String()
}
