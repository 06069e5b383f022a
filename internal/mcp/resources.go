// ABOUTME: MCP resources for the reps workout tracker.
// ABOUTME: Provides reps://workouts/current, reps://templates, and reps://exercises.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/harperreed/reps/internal/storage"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const timeLayout = time.RFC3339

func (s *Server) registerResources() {
	// reps://workouts/current - the workout in progress, rendered as Markdown
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         "reps://workouts/current",
		Name:        "Current Workout",
		Description: "The most recently started unfinished workout with every set",
		MIMEType:    "text/markdown",
	}, s.handleCurrentWorkoutResource)

	// reps://templates - first page of templates
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         "reps://templates",
		Name:        "Templates",
		Description: "Template names and IDs sorted by name",
		MIMEType:    "application/json",
	}, s.handleTemplatesResource)

	// reps://exercises - the exercise catalog
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         "reps://exercises",
		Name:        "Exercises",
		Description: "Every exercise and how it is measured",
		MIMEType:    "application/json",
	}, s.handleExercisesResource)
}

// Resource handlers

func (s *Server) handleCurrentWorkoutResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	w, err := s.svc.CurrentWorkout(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current workout: %w", err)
	}

	text := "No workout in progress.\n"
	if w != nil {
		text = storage.RenderWorkoutMarkdown(w)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      "reps://workouts/current",
			MIMEType: "text/markdown",
			Text:     text,
		}},
	}, nil
}

func (s *Server) handleTemplatesResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	templates, err := s.svc.ListTemplates(ctx, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to list templates: %w", err)
	}
	return jsonResource("reps://templates", map[string]any{"templates": templates})
}

func (s *Server) handleExercisesResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	exercises, err := s.svc.ListExercises(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list exercises: %w", err)
	}
	return jsonResource("reps://exercises", map[string]any{"exercises": exercises})
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
