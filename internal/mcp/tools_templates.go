// ABOUTME: MCP tools for the exercise catalog and template authoring.
// ABOUTME: Each handler delegates to the training service and reports its failure message.
package mcp

import (
	"context"
	"fmt"

	"github.com/harperreed/reps/internal/models"
	"github.com/harperreed/reps/internal/reorder"
	"github.com/harperreed/reps/internal/training"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerTemplateTools() {
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_exercises",
		Description: "List every exercise with how it is measured",
	}, s.handleListExercises)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "add_exercise",
		Description: "Add an exercise measured in duration, reps or reps_and_weight",
	}, s.handleAddExercise)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_templates",
		Description: "List templates sorted by name, 10 per page",
	}, s.handleListTemplates)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_template",
		Description: "Get a template with its set-groups and target sets",
	}, s.handleGetTemplate)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "create_template",
		Description: "Create an empty template",
	}, s.handleCreateTemplate)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "rename_template",
		Description: "Rename a template",
	}, s.handleRenameTemplate)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "delete_template",
		Description: "Delete a template that no workout was started from",
	}, s.handleDeleteTemplate)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "add_template_set_group",
		Description: "Append a set-group for an exercise to a template",
	}, s.handleAddTemplateSetGroup)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "remove_template_set_group",
		Description: "Remove a set-group from a template",
	}, s.handleRemoveTemplateSetGroup)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "move_template_set_group",
		Description: "Move a template set-group one position up or down",
	}, s.handleMoveTemplateSetGroup)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "update_template_set_group",
		Description: "Change the rest duration or superset flag of a template set-group",
	}, s.handleUpdateTemplateSetGroup)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "add_template_set",
		Description: "Append a working set to a template set-group",
	}, s.handleAddTemplateSet)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "remove_template_set",
		Description: "Remove a set from a template set-group",
	}, s.handleRemoveTemplateSet)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "move_template_set",
		Description: "Move a template set one position up or down",
	}, s.handleMoveTemplateSet)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "set_template_set_type",
		Description: "Mark a template set as warmup or working",
	}, s.handleSetTemplateSetType)
}

// Tool input/output types

type simpleOutput struct {
	Message string `json:"message"`
}

type idOutput struct {
	ID      int64  `json:"id"`
	Message string `json:"message"`
}

type addExerciseInput struct {
	Name       string `json:"name" jsonschema:"Exercise name, unique ignoring case"`
	MeasuredIn string `json:"measured_in" jsonschema:"One of duration, reps, reps_and_weight"`
}

type pageInput struct {
	Offset int `json:"offset,omitempty" jsonschema:"Number of rows to skip"`
}

type templatesOutput struct {
	Templates []models.TemplateSummary `json:"templates"`
}

type templateIDInput struct {
	TemplateID int64 `json:"template_id" jsonschema:"Template ID"`
}

type createTemplateInput struct {
	Name string `json:"name" jsonschema:"Template name, at most 100 characters"`
}

type renameTemplateInput struct {
	TemplateID int64  `json:"template_id" jsonschema:"Template ID"`
	Name       string `json:"name" jsonschema:"New template name"`
}

type addTemplateSetGroupInput struct {
	TemplateID int64 `json:"template_id" jsonschema:"Template ID"`
	ExerciseID int64 `json:"exercise_id" jsonschema:"Exercise ID"`
}

type templateGroupInput struct {
	TemplateID int64  `json:"template_id" jsonschema:"Template ID"`
	SetGroupID int64  `json:"set_group_id" jsonschema:"Set-group ID"`
	Direction  string `json:"direction,omitempty" jsonschema:"up or down, for moves"`
}

type updateTemplateSetGroupInput struct {
	TemplateID          int64 `json:"template_id" jsonschema:"Template ID"`
	SetGroupID          int64 `json:"set_group_id" jsonschema:"Set-group ID"`
	RestDurationSeconds *int  `json:"rest_duration_seconds,omitempty" jsonschema:"Rest between sets in seconds"`
	IsSuperset          *bool `json:"is_superset,omitempty" jsonschema:"Whether the group is performed as a superset"`
}

type templateSetInput struct {
	TemplateID int64  `json:"template_id" jsonschema:"Template ID"`
	SetGroupID int64  `json:"set_group_id" jsonschema:"Set-group ID"`
	SetID      int64  `json:"set_id" jsonschema:"Set ID"`
	Direction  string `json:"direction,omitempty" jsonschema:"up or down, for moves"`
	Type       string `json:"type,omitempty" jsonschema:"warmup or working, for set_template_set_type"`
}

// Tool handlers

func (s *Server) handleListExercises(ctx context.Context, req *mcp.CallToolRequest, input struct{}) (*mcp.CallToolResult, any, error) {
	exercises, err := s.svc.ListExercises(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list exercises: %w", err)
	}
	if len(exercises) == 0 {
		return nil, map[string]any{"message": "No exercises found. Run `reps seed` to add the default catalog."}, nil
	}
	return nil, map[string]any{"exercises": exercises}, nil
}

func (s *Server) handleAddExercise(ctx context.Context, req *mcp.CallToolRequest, input addExerciseInput) (*mcp.CallToolResult, idOutput, error) {
	id, err := s.svc.AddExercise(ctx, input.Name, models.MeasuredIn(input.MeasuredIn))
	if err != nil {
		return nil, idOutput{}, err
	}
	return nil, idOutput{ID: id, Message: fmt.Sprintf("Added exercise %s (ID: %d)", input.Name, id)}, nil
}

func (s *Server) handleListTemplates(ctx context.Context, req *mcp.CallToolRequest, input pageInput) (*mcp.CallToolResult, templatesOutput, error) {
	templates, err := s.svc.ListTemplates(ctx, input.Offset)
	if err != nil {
		return nil, templatesOutput{}, err
	}
	return nil, templatesOutput{Templates: templates}, nil
}

func (s *Server) handleGetTemplate(ctx context.Context, req *mcp.CallToolRequest, input templateIDInput) (*mcp.CallToolResult, any, error) {
	t, err := s.svc.GetTemplate(ctx, input.TemplateID)
	if err != nil {
		return nil, nil, err
	}
	if t == nil {
		return nil, nil, fmt.Errorf("template not found: %d", input.TemplateID)
	}
	return nil, t, nil
}

func (s *Server) handleCreateTemplate(ctx context.Context, req *mcp.CallToolRequest, input createTemplateInput) (*mcp.CallToolResult, idOutput, error) {
	id, err := s.svc.CreateTemplate(ctx, input.Name)
	if err != nil {
		return nil, idOutput{}, err
	}
	return nil, idOutput{ID: id, Message: fmt.Sprintf("Created template %s (ID: %d)", input.Name, id)}, nil
}

func (s *Server) handleRenameTemplate(ctx context.Context, req *mcp.CallToolRequest, input renameTemplateInput) (*mcp.CallToolResult, simpleOutput, error) {
	if err := s.svc.RenameTemplate(ctx, input.TemplateID, input.Name); err != nil {
		return nil, simpleOutput{}, err
	}
	return nil, simpleOutput{Message: fmt.Sprintf("Renamed template %d to %s", input.TemplateID, input.Name)}, nil
}

func (s *Server) handleDeleteTemplate(ctx context.Context, req *mcp.CallToolRequest, input templateIDInput) (*mcp.CallToolResult, simpleOutput, error) {
	if err := s.svc.DeleteTemplate(ctx, input.TemplateID); err != nil {
		return nil, simpleOutput{}, err
	}
	return nil, simpleOutput{Message: fmt.Sprintf("Deleted template: %d", input.TemplateID)}, nil
}

func (s *Server) handleAddTemplateSetGroup(ctx context.Context, req *mcp.CallToolRequest, input addTemplateSetGroupInput) (*mcp.CallToolResult, idOutput, error) {
	id, err := s.svc.AddTemplateSetGroup(ctx, input.TemplateID, input.ExerciseID)
	if err != nil {
		return nil, idOutput{}, err
	}
	return nil, idOutput{ID: id, Message: fmt.Sprintf("Added set-group %d", id)}, nil
}

func (s *Server) handleRemoveTemplateSetGroup(ctx context.Context, req *mcp.CallToolRequest, input templateGroupInput) (*mcp.CallToolResult, simpleOutput, error) {
	if err := s.svc.RemoveTemplateSetGroup(ctx, input.TemplateID, input.SetGroupID); err != nil {
		return nil, simpleOutput{}, err
	}
	return nil, simpleOutput{Message: fmt.Sprintf("Removed set-group %d", input.SetGroupID)}, nil
}

func (s *Server) handleMoveTemplateSetGroup(ctx context.Context, req *mcp.CallToolRequest, input templateGroupInput) (*mcp.CallToolResult, simpleOutput, error) {
	dir, err := reorder.ParseDirection(input.Direction)
	if err != nil {
		return nil, simpleOutput{}, err
	}
	if err := s.svc.MoveTemplateSetGroup(ctx, input.TemplateID, input.SetGroupID, dir); err != nil {
		return nil, simpleOutput{}, err
	}
	return nil, simpleOutput{Message: fmt.Sprintf("Moved set-group %d %s", input.SetGroupID, dir)}, nil
}

func (s *Server) handleUpdateTemplateSetGroup(ctx context.Context, req *mcp.CallToolRequest, input updateTemplateSetGroupInput) (*mcp.CallToolResult, simpleOutput, error) {
	settings := training.GroupSettings{RestDurationSeconds: input.RestDurationSeconds, IsSuperset: input.IsSuperset}
	if err := s.svc.UpdateTemplateSetGroup(ctx, input.TemplateID, input.SetGroupID, settings); err != nil {
		return nil, simpleOutput{}, err
	}
	return nil, simpleOutput{Message: fmt.Sprintf("Updated set-group %d", input.SetGroupID)}, nil
}

func (s *Server) handleAddTemplateSet(ctx context.Context, req *mcp.CallToolRequest, input templateGroupInput) (*mcp.CallToolResult, idOutput, error) {
	id, err := s.svc.AddSetToTemplateGroup(ctx, input.TemplateID, input.SetGroupID)
	if err != nil {
		return nil, idOutput{}, err
	}
	return nil, idOutput{ID: id, Message: fmt.Sprintf("Added set %d", id)}, nil
}

func (s *Server) handleRemoveTemplateSet(ctx context.Context, req *mcp.CallToolRequest, input templateSetInput) (*mcp.CallToolResult, simpleOutput, error) {
	if err := s.svc.RemoveSetFromTemplateGroup(ctx, input.TemplateID, input.SetGroupID, input.SetID); err != nil {
		return nil, simpleOutput{}, err
	}
	return nil, simpleOutput{Message: fmt.Sprintf("Removed set %d", input.SetID)}, nil
}

func (s *Server) handleMoveTemplateSet(ctx context.Context, req *mcp.CallToolRequest, input templateSetInput) (*mcp.CallToolResult, simpleOutput, error) {
	dir, err := reorder.ParseDirection(input.Direction)
	if err != nil {
		return nil, simpleOutput{}, err
	}
	if err := s.svc.MoveTemplateSet(ctx, input.TemplateID, input.SetGroupID, input.SetID, dir); err != nil {
		return nil, simpleOutput{}, err
	}
	return nil, simpleOutput{Message: fmt.Sprintf("Moved set %d %s", input.SetID, dir)}, nil
}

func (s *Server) handleSetTemplateSetType(ctx context.Context, req *mcp.CallToolRequest, input templateSetInput) (*mcp.CallToolResult, simpleOutput, error) {
	if err := s.svc.SetTemplateSetType(ctx, input.TemplateID, input.SetGroupID, input.SetID, models.SetType(input.Type)); err != nil {
		return nil, simpleOutput{}, err
	}
	return nil, simpleOutput{Message: fmt.Sprintf("Set %d is now %s", input.SetID, input.Type)}, nil
}
