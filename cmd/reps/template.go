// ABOUTME: Template commands: list, show, create, rename, delete and import.
// ABOUTME: Nested group and set subcommands edit a template's structure.
package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/harperreed/reps/internal/models"
	"github.com/harperreed/reps/internal/reorder"
	"github.com/harperreed/reps/internal/training"
	"github.com/spf13/cobra"
)

var (
	templateOffset   int
	groupRest        int
	groupSuperset    bool
	templateGroupCmd = &cobra.Command{Use: "group", Short: "Edit a template's set groups"}
	templateSetCmd   = &cobra.Command{Use: "set", Short: "Edit the sets of a template set group"}
)

var templateCmd = &cobra.Command{
	Use:     "template",
	Aliases: []string{"tmpl"},
	Short:   "Manage workout templates",
}

var templateListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List templates by name",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		templates, err := svc.ListTemplates(cmd.Context(), templateOffset)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if len(templates) == 0 {
			fmt.Fprintln(out, "No templates found.")
			return nil
		}
		faint := color.New(color.Faint)
		faint.Fprintf(out, "%s %s\n", padRight("ID", 6), "NAME")
		for _, t := range templates {
			fmt.Fprintf(out, "%s %s\n", padRight(strconv.FormatInt(t.ID, 10), 6), t.Name)
		}
		if len(templates) == training.PageSize {
			faint.Fprintf(out, "\nMore with --offset %d\n", templateOffset+training.PageSize)
		}
		return nil
	},
}

var templateShowCmd = &cobra.Command{
	Use:   "show <template-id>",
	Short: "Show a template with its groups and sets",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID("template id", args[0])
		if err != nil {
			return err
		}
		t, err := svc.GetTemplate(cmd.Context(), id)
		if err != nil {
			return err
		}
		if t == nil {
			return fmt.Errorf("template %d not found", id)
		}
		printTemplate(cmd.OutOrStdout(), t)
		return nil
	},
}

var templateCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create an empty template",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := svc.CreateTemplate(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		color.Green("✓ Created template %s (id %d)", strings.TrimSpace(args[0]), id)
		return nil
	},
}

var templateRenameCmd = &cobra.Command{
	Use:   "rename <template-id> <name>",
	Short: "Rename a template",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID("template id", args[0])
		if err != nil {
			return err
		}
		if err := svc.RenameTemplate(cmd.Context(), id, args[1]); err != nil {
			return err
		}
		color.Green("✓ Renamed template %d", id)
		return nil
	},
}

var templateDeleteCmd = &cobra.Command{
	Use:   "delete <template-id>",
	Short: "Delete a template that has no workouts",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID("template id", args[0])
		if err != nil {
			return err
		}
		if err := svc.DeleteTemplate(cmd.Context(), id); err != nil {
			return err
		}
		color.Green("✓ Deleted template %d", id)
		return nil
	},
}

var templateImportCmd = &cobra.Command{
	Use:   "import <file.toml>",
	Short: "Create a template from a TOML file",
	Long: `Create a template, its set groups and sets from a TOML file:

  name = "Leg Day"

  [[group]]
  exercise = "Squat"
  rest_seconds = 180
  warmup_sets = 2
  working_sets = 3

Exercises are matched by name and must already exist.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read file: %w", err)
		}
		file, err := training.ParseTemplateFile(raw)
		if err != nil {
			return err
		}
		id, err := svc.ImportTemplate(cmd.Context(), file)
		if err != nil {
			return err
		}
		color.Green("✓ Imported template %s (id %d, %d groups)", file.Name, id, len(file.Groups))
		return nil
	},
}

var templateGroupAddCmd = &cobra.Command{
	Use:   "add <template-id> <exercise>",
	Short: "Append a set group for an exercise (id or name)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		templateID, err := parseID("template id", args[0])
		if err != nil {
			return err
		}
		exerciseID, err := resolveExercise(cmd.Context(), args[1])
		if err != nil {
			return err
		}
		id, err := svc.AddTemplateSetGroup(cmd.Context(), templateID, exerciseID)
		if err != nil {
			return err
		}
		color.Green("✓ Added set group %d", id)
		return nil
	},
}

var templateGroupRemoveCmd = &cobra.Command{
	Use:   "remove <template-id> <group-id>",
	Short: "Remove a set group and its sets",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ids, err := parseIDs(args, "template id", "group id")
		if err != nil {
			return err
		}
		if err := svc.RemoveTemplateSetGroup(cmd.Context(), ids[0], ids[1]); err != nil {
			return err
		}
		color.Green("✓ Removed set group %d", ids[1])
		return nil
	},
}

var templateGroupMoveCmd = &cobra.Command{
	Use:       "move <template-id> <group-id> <up|down>",
	Short:     "Move a set group one position",
	Args:      cobra.ExactArgs(3),
	ValidArgs: []string{"up", "down"},
	RunE: func(cmd *cobra.Command, args []string) error {
		ids, err := parseIDs(args, "template id", "group id")
		if err != nil {
			return err
		}
		dir, err := reorder.ParseDirection(args[2])
		if err != nil {
			return err
		}
		if err := svc.MoveTemplateSetGroup(cmd.Context(), ids[0], ids[1], dir); err != nil {
			return err
		}
		color.Green("✓ Moved set group %d %s", ids[1], dir)
		return nil
	},
}

var templateGroupUpdateCmd = &cobra.Command{
	Use:     "update <template-id> <group-id>",
	Short:   "Change rest duration or superset flag of a set group",
	Example: "  reps template group update 1 4 --rest 90 --superset",
	Args:    cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ids, err := parseIDs(args, "template id", "group id")
		if err != nil {
			return err
		}
		var settings training.GroupSettings
		if cmd.Flags().Changed("rest") {
			settings.RestDurationSeconds = &groupRest
		}
		if cmd.Flags().Changed("superset") {
			settings.IsSuperset = &groupSuperset
		}
		if settings.RestDurationSeconds == nil && settings.IsSuperset == nil {
			return fmt.Errorf("nothing to update: pass --rest and/or --superset")
		}
		if err := svc.UpdateTemplateSetGroup(cmd.Context(), ids[0], ids[1], settings); err != nil {
			return err
		}
		color.Green("✓ Updated set group %d", ids[1])
		return nil
	},
}

var templateSetAddCmd = &cobra.Command{
	Use:   "add <template-id> <group-id>",
	Short: "Append a working set to a set group",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ids, err := parseIDs(args, "template id", "group id")
		if err != nil {
			return err
		}
		id, err := svc.AddSetToTemplateGroup(cmd.Context(), ids[0], ids[1])
		if err != nil {
			return err
		}
		color.Green("✓ Added set %d", id)
		return nil
	},
}

var templateSetRemoveCmd = &cobra.Command{
	Use:   "remove <template-id> <group-id> <set-id>",
	Short: "Remove a set from a set group",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		ids, err := parseIDs(args, "template id", "group id", "set id")
		if err != nil {
			return err
		}
		if err := svc.RemoveSetFromTemplateGroup(cmd.Context(), ids[0], ids[1], ids[2]); err != nil {
			return err
		}
		color.Green("✓ Removed set %d", ids[2])
		return nil
	},
}

var templateSetMoveCmd = &cobra.Command{
	Use:   "move <template-id> <group-id> <set-id> <up|down>",
	Short: "Move a set one position within its group",
	Args:  cobra.ExactArgs(4),
	RunE: func(cmd *cobra.Command, args []string) error {
		ids, err := parseIDs(args, "template id", "group id", "set id")
		if err != nil {
			return err
		}
		dir, err := reorder.ParseDirection(args[3])
		if err != nil {
			return err
		}
		if err := svc.MoveTemplateSet(cmd.Context(), ids[0], ids[1], ids[2], dir); err != nil {
			return err
		}
		color.Green("✓ Moved set %d %s", ids[2], dir)
		return nil
	},
}

var templateSetTypeCmd = &cobra.Command{
	Use:   "type <template-id> <group-id> <set-id> <warmup|working>",
	Short: "Mark a set as warmup or working",
	Args:  cobra.ExactArgs(4),
	RunE: func(cmd *cobra.Command, args []string) error {
		ids, err := parseIDs(args, "template id", "group id", "set id")
		if err != nil {
			return err
		}
		if err := svc.SetTemplateSetType(cmd.Context(), ids[0], ids[1], ids[2], models.SetType(args[3])); err != nil {
			return err
		}
		color.Green("✓ Set %d is now %s", ids[2], args[3])
		return nil
	},
}

// resolveExercise accepts a catalog id or an exercise name (case-insensitive).
func resolveExercise(ctx context.Context, arg string) (int64, error) {
	if id, err := strconv.ParseInt(arg, 10, 64); err == nil {
		return id, nil
	}
	exercises, err := svc.ListExercises(ctx)
	if err != nil {
		return 0, err
	}
	for _, e := range exercises {
		if strings.EqualFold(e.Name, strings.TrimSpace(arg)) {
			return e.ID, nil
		}
	}
	return 0, fmt.Errorf("exercise %q not found", arg)
}

func init() {
	templateListCmd.Flags().IntVar(&templateOffset, "offset", 0, "Skip this many templates")
	templateGroupUpdateCmd.Flags().IntVar(&groupRest, "rest", models.DefaultRestDurationSeconds, "Rest duration in seconds")
	templateGroupUpdateCmd.Flags().BoolVar(&groupSuperset, "superset", false, "Run this group as a superset")

	templateGroupCmd.AddCommand(templateGroupAddCmd, templateGroupRemoveCmd, templateGroupMoveCmd, templateGroupUpdateCmd)
	templateSetCmd.AddCommand(templateSetAddCmd, templateSetRemoveCmd, templateSetMoveCmd, templateSetTypeCmd)
	templateCmd.AddCommand(
		templateListCmd,
		templateShowCmd,
		templateCreateCmd,
		templateRenameCmd,
		templateDeleteCmd,
		templateImportCmd,
		templateGroupCmd,
		templateSetCmd,
	)
	rootCmd.AddCommand(templateCmd)
}
