// ABOUTME: MCP tools for starting workouts and recording progress.
// ABOUTME: Covers workout structure edits, set metrics and completion toggles.
package mcp

import (
	"context"
	"errors"
	"fmt"

	"github.com/harperreed/reps/internal/reorder"
	"github.com/harperreed/reps/internal/storage"
	"github.com/harperreed/reps/internal/training"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerWorkoutTools() {
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "start_workout",
		Description: "Start a workout by copying a template's set-groups and sets",
	}, s.handleStartWorkout)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_workouts",
		Description: "List workouts, most recent first, 10 per page",
	}, s.handleListWorkouts)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_workout",
		Description: "Get a workout with its set-groups and sets",
	}, s.handleGetWorkout)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "current_workout",
		Description: "Get the most recently started workout that is not finished",
	}, s.handleCurrentWorkout)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "workout_markdown",
		Description: "Render a workout as a Markdown log",
	}, s.handleWorkoutMarkdown)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "delete_workout",
		Description: "Delete a workout and all its sets",
	}, s.handleDeleteWorkout)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "toggle_workout_complete",
		Description: "Finish a workout, or reopen a finished one",
	}, s.handleToggleWorkoutComplete)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "add_set_group",
		Description: "Append a set-group for an exercise to a workout",
	}, s.handleAddSetGroup)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "remove_set_group",
		Description: "Remove a set-group from a workout",
	}, s.handleRemoveSetGroup)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "move_set_group",
		Description: "Move a workout set-group one position up or down",
	}, s.handleMoveSetGroup)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "add_set",
		Description: "Append a working set to a workout set-group",
	}, s.handleAddSet)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "remove_set",
		Description: "Remove a set from a workout set-group",
	}, s.handleRemoveSet)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "move_set",
		Description: "Move a workout set one position up or down",
	}, s.handleMoveSet)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "update_set_metrics",
		Description: "Record reps, weight or duration for a set. Empty values clear the field.",
	}, s.handleUpdateSetMetrics)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "toggle_set_complete",
		Description: "Complete a set, optionally recording metrics, or mark a completed set incomplete",
	}, s.handleToggleSetComplete)
}

type workoutIDInput struct {
	WorkoutID int64 `json:"workout_id" jsonschema:"Workout ID"`
}

type workoutsOutput struct {
	Workouts []workoutRow `json:"workouts"`
}

type workoutRow struct {
	ID         int64  `json:"id"`
	Template   string `json:"template"`
	StartedAt  string `json:"started_at"`
	FinishedAt string `json:"finished_at,omitempty"`
}

type addSetGroupInput struct {
	WorkoutID  int64 `json:"workout_id" jsonschema:"Workout ID"`
	ExerciseID int64 `json:"exercise_id" jsonschema:"Exercise ID"`
}

type setGroupInput struct {
	WorkoutID  int64  `json:"workout_id" jsonschema:"Workout ID"`
	SetGroupID int64  `json:"set_group_id" jsonschema:"Set-group ID"`
	Direction  string `json:"direction,omitempty" jsonschema:"up or down, for moves"`
}

type setInput struct {
	WorkoutID  int64  `json:"workout_id" jsonschema:"Workout ID"`
	SetGroupID int64  `json:"set_group_id" jsonschema:"Set-group ID"`
	SetID      int64  `json:"set_id" jsonschema:"Set ID"`
	Direction  string `json:"direction,omitempty" jsonschema:"up or down, for moves"`
}

type setMetricsInput struct {
	WorkoutID int64  `json:"workout_id" jsonschema:"Workout ID"`
	SetID     int64  `json:"set_id" jsonschema:"Set ID"`
	Reps      string `json:"reps,omitempty" jsonschema:"Repetitions, a positive integer"`
	Weight    string `json:"weight,omitempty" jsonschema:"Weight, a positive number"`
	Duration  string `json:"duration,omitempty" jsonschema:"Duration in seconds, a positive integer"`
}

func (in setMetricsInput) metrics() training.MetricInput {
	return training.MetricInput{Reps: in.Reps, Weight: in.Weight, Duration: in.Duration}
}

type markdownOutput struct {
	Markdown string `json:"markdown"`
}

func (s *Server) handleStartWorkout(ctx context.Context, req *mcp.CallToolRequest, input templateIDInput) (*mcp.CallToolResult, idOutput, error) {
	id, err := s.svc.StartWorkout(ctx, input.TemplateID)
	if err != nil {
		return nil, idOutput{}, err
	}
	return nil, idOutput{ID: id, Message: fmt.Sprintf("Started workout %d", id)}, nil
}

func (s *Server) handleListWorkouts(ctx context.Context, req *mcp.CallToolRequest, input pageInput) (*mcp.CallToolResult, workoutsOutput, error) {
	workouts, err := s.svc.ListWorkouts(ctx, input.Offset)
	if err != nil {
		return nil, workoutsOutput{}, err
	}

	out := workoutsOutput{Workouts: []workoutRow{}}
	for _, w := range workouts {
		row := workoutRow{ID: w.ID, Template: w.TemplateName, StartedAt: w.StartedAt.Format(timeLayout)}
		if w.FinishedAt != nil {
			row.FinishedAt = w.FinishedAt.Format(timeLayout)
		}
		out.Workouts = append(out.Workouts, row)
	}
	return nil, out, nil
}

func (s *Server) handleGetWorkout(ctx context.Context, req *mcp.CallToolRequest, input workoutIDInput) (*mcp.CallToolResult, any, error) {
	w, err := s.svc.GetWorkout(ctx, input.WorkoutID)
	if err != nil {
		return nil, nil, err
	}
	if w == nil {
		return nil, nil, fmt.Errorf("workout not found: %d", input.WorkoutID)
	}
	return nil, w, nil
}

func (s *Server) handleCurrentWorkout(ctx context.Context, req *mcp.CallToolRequest, input struct{}) (*mcp.CallToolResult, any, error) {
	w, err := s.svc.CurrentWorkout(ctx)
	if err != nil {
		return nil, nil, err
	}
	if w == nil {
		return nil, map[string]any{"message": "No workout in progress."}, nil
	}
	return nil, w, nil
}

func (s *Server) handleWorkoutMarkdown(ctx context.Context, req *mcp.CallToolRequest, input workoutIDInput) (*mcp.CallToolResult, markdownOutput, error) {
	md, err := s.db.ExportMarkdown(ctx, input.WorkoutID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, markdownOutput{}, fmt.Errorf("workout not found: %d", input.WorkoutID)
	} else if err != nil {
		return nil, markdownOutput{}, fmt.Errorf("failed to render workout: %w", err)
	}
	return nil, markdownOutput{Markdown: md}, nil
}

func (s *Server) handleDeleteWorkout(ctx context.Context, req *mcp.CallToolRequest, input workoutIDInput) (*mcp.CallToolResult, simpleOutput, error) {
	if err := s.svc.DeleteWorkout(ctx, input.WorkoutID); err != nil {
		return nil, simpleOutput{}, err
	}
	return nil, simpleOutput{Message: fmt.Sprintf("Deleted workout: %d", input.WorkoutID)}, nil
}

func (s *Server) handleToggleWorkoutComplete(ctx context.Context, req *mcp.CallToolRequest, input workoutIDInput) (*mcp.CallToolResult, simpleOutput, error) {
	if err := s.svc.ToggleWorkoutComplete(ctx, input.WorkoutID); err != nil {
		return nil, simpleOutput{}, err
	}
	return nil, simpleOutput{Message: fmt.Sprintf("Toggled workout %d", input.WorkoutID)}, nil
}

func (s *Server) handleAddSetGroup(ctx context.Context, req *mcp.CallToolRequest, input addSetGroupInput) (*mcp.CallToolResult, idOutput, error) {
	id, err := s.svc.AddSetGroup(ctx, input.WorkoutID, input.ExerciseID)
	if err != nil {
		return nil, idOutput{}, err
	}
	return nil, idOutput{ID: id, Message: fmt.Sprintf("Added set-group %d", id)}, nil
}

func (s *Server) handleRemoveSetGroup(ctx context.Context, req *mcp.CallToolRequest, input setGroupInput) (*mcp.CallToolResult, simpleOutput, error) {
	if err := s.svc.RemoveSetGroup(ctx, input.WorkoutID, input.SetGroupID); err != nil {
		return nil, simpleOutput{}, err
	}
	return nil, simpleOutput{Message: fmt.Sprintf("Removed set-group %d", input.SetGroupID)}, nil
}

func (s *Server) handleMoveSetGroup(ctx context.Context, req *mcp.CallToolRequest, input setGroupInput) (*mcp.CallToolResult, simpleOutput, error) {
	dir, err := reorder.ParseDirection(input.Direction)
	if err != nil {
		return nil, simpleOutput{}, err
	}
	if err := s.svc.MoveSetGroup(ctx, input.WorkoutID, input.SetGroupID, dir); err != nil {
		return nil, simpleOutput{}, err
	}
	return nil, simpleOutput{Message: fmt.Sprintf("Moved set-group %d %s", input.SetGroupID, dir)}, nil
}

func (s *Server) handleAddSet(ctx context.Context, req *mcp.CallToolRequest, input setGroupInput) (*mcp.CallToolResult, idOutput, error) {
	id, err := s.svc.AddSet(ctx, input.WorkoutID, input.SetGroupID)
	if err != nil {
		return nil, idOutput{}, err
	}
	return nil, idOutput{ID: id, Message: fmt.Sprintf("Added set %d", id)}, nil
}

func (s *Server) handleRemoveSet(ctx context.Context, req *mcp.CallToolRequest, input setInput) (*mcp.CallToolResult, simpleOutput, error) {
	if err := s.svc.RemoveSet(ctx, input.WorkoutID, input.SetGroupID, input.SetID); err != nil {
		return nil, simpleOutput{}, err
	}
	return nil, simpleOutput{Message: fmt.Sprintf("Removed set %d", input.SetID)}, nil
}

func (s *Server) handleMoveSet(ctx context.Context, req *mcp.CallToolRequest, input setInput) (*mcp.CallToolResult, simpleOutput, error) {
	dir, err := reorder.ParseDirection(input.Direction)
	if err != nil {
		return nil, simpleOutput{}, err
	}
	if err := s.svc.MoveSet(ctx, input.WorkoutID, input.SetGroupID, input.SetID, dir); err != nil {
		return nil, simpleOutput{}, err
	}
	return nil, simpleOutput{Message: fmt.Sprintf("Moved set %d %s", input.SetID, dir)}, nil
}

func (s *Server) handleUpdateSetMetrics(ctx context.Context, req *mcp.CallToolRequest, input setMetricsInput) (*mcp.CallToolResult, simpleOutput, error) {
	if err := s.svc.UpdateSetMetrics(ctx, input.WorkoutID, input.SetID, input.metrics()); err != nil {
		return nil, simpleOutput{}, err
	}
	return nil, simpleOutput{Message: fmt.Sprintf("Updated set %d", input.SetID)}, nil
}

func (s *Server) handleToggleSetComplete(ctx context.Context, req *mcp.CallToolRequest, input setMetricsInput) (*mcp.CallToolResult, simpleOutput, error) {
	if err := s.svc.ToggleSetComplete(ctx, input.WorkoutID, input.SetID, input.metrics()); err != nil {
		return nil, simpleOutput{}, err
	}
	return nil, simpleOutput{Message: fmt.Sprintf("Toggled set %d", input.SetID)}, nil
}
