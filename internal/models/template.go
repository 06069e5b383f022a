// ABOUTME: Template, TemplateSetGroup and TemplateSet models for reusable programs.
// ABOUTME: Includes the TOML file shape used to import a template in one go.
package models

import "time"

// DefaultRestDurationSeconds is the rest period given to new set-groups.
const DefaultRestDurationSeconds = 150

// MaxNameLength bounds template and exercise names.
const MaxNameLength = 100

// SetType distinguishes warmup sets from working sets.
type SetType string

const (
	SetWarmup  SetType = "warmup"
	SetWorking SetType = "working"
)

// IsValidSetType checks if a string is a valid set type.
func IsValidSetType(s string) bool {
	return s == string(SetWarmup) || s == string(SetWorking)
}

// Template is a reusable, ordered list of set-groups.
type Template struct {
	ID        int64              `json:"id" yaml:"id"`
	Name      string             `json:"name" yaml:"name"`
	CreatedAt time.Time          `json:"created_at" yaml:"created_at"`
	SetGroups []TemplateSetGroup `json:"set_groups,omitempty" yaml:"set_groups,omitempty"` // Populated by nested fetch
}

// TemplateSummary is the listing row for templates.
type TemplateSummary struct {
	ID   int64  `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}

// TemplateSetGroup groups the target sets of one exercise within a template.
type TemplateSetGroup struct {
	ID                  int64         `json:"id" yaml:"id"`
	TemplateID          int64         `json:"template_id" yaml:"template_id"`
	ExerciseID          int64         `json:"exercise_id" yaml:"exercise_id"`
	Index               int           `json:"index" yaml:"index"`
	RestDurationSeconds int           `json:"rest_duration_seconds" yaml:"rest_duration_seconds"`
	IsSuperset          bool          `json:"is_superset" yaml:"is_superset"`
	Exercise            *Exercise     `json:"exercise,omitempty" yaml:"exercise,omitempty"`
	Sets                []TemplateSet `json:"sets,omitempty" yaml:"sets,omitempty"`
}

// TemplateSet is one target set.
type TemplateSet struct {
	ID                 int64   `json:"id" yaml:"id"`
	TemplateSetGroupID int64   `json:"template_set_group_id" yaml:"template_set_group_id"`
	TemplateID         int64   `json:"template_id" yaml:"template_id"`
	ExerciseID         int64   `json:"exercise_id" yaml:"exercise_id"`
	Index              int     `json:"index" yaml:"index"`
	Type               SetType `json:"type" yaml:"type"`
}

// TemplateFile is the TOML document accepted by template import.
//
//	name = "Push Day"
//
//	[[group]]
//	exercise = "Bench Press"
//	rest_seconds = 120
//	warmup_sets = 1
//	working_sets = 3
type TemplateFile struct {
	Name   string              `toml:"name"`
	Groups []TemplateFileGroup `toml:"group"`
}

// TemplateFileGroup is one [[group]] table of a TemplateFile.
type TemplateFileGroup struct {
	Exercise    string `toml:"exercise"`
	RestSeconds *int   `toml:"rest_seconds"`
	Superset    bool   `toml:"superset"`
	WarmupSets  int    `toml:"warmup_sets"`
	WorkingSets int    `toml:"working_sets"`
}

// DefaultTemplates are the sample programs inserted by seeding.
var DefaultTemplates = []TemplateFile{
	{Name: "Push Day", Groups: []TemplateFileGroup{
		{Exercise: "Bench Press", RestSeconds: intPtr(120), WarmupSets: 1, WorkingSets: 3},
		{Exercise: "Push-ups", RestSeconds: intPtr(90), WorkingSets: 3},
		{Exercise: "Plank", RestSeconds: intPtr(60), WorkingSets: 2},
	}},
	{Name: "Pull Day", Groups: []TemplateFileGroup{
		{Exercise: "Deadlift", RestSeconds: intPtr(180), WarmupSets: 2, WorkingSets: 3},
		{Exercise: "Pull-ups", RestSeconds: intPtr(90), WorkingSets: 3},
	}},
	{Name: "Leg Day", Groups: []TemplateFileGroup{
		{Exercise: "Squat", RestSeconds: intPtr(180), WarmupSets: 2, WorkingSets: 4},
		{Exercise: "Running", RestSeconds: intPtr(60), WorkingSets: 1},
	}},
	{Name: "Full Body", Groups: []TemplateFileGroup{
		{Exercise: "Squat", WorkingSets: 3, Superset: true},
		{Exercise: "Bench Press", WorkingSets: 3},
		{Exercise: "Pull-ups", WorkingSets: 3},
	}},
}

func intPtr(v int) *int { return &v }
