// ABOUTME: Workout, SetGroup and Set models for performed training sessions.
// ABOUTME: A workout is a snapshot of a template filled in with actual metrics.
package models

import "time"

// Workout is an instance of a template being performed.
type Workout struct {
	ID         int64            `json:"id" yaml:"id"`
	TemplateID int64            `json:"template_id" yaml:"template_id"`
	StartedAt  time.Time        `json:"started_at" yaml:"started_at"`
	FinishedAt *time.Time       `json:"finished_at,omitempty" yaml:"finished_at,omitempty"`
	Template   *TemplateSummary `json:"template,omitempty" yaml:"template,omitempty"`
	SetGroups  []SetGroup       `json:"set_groups,omitempty" yaml:"set_groups,omitempty"` // Populated by nested fetch
}

// InProgress reports whether the workout has not been finished.
func (w *Workout) InProgress() bool {
	return w.FinishedAt == nil
}

// WorkoutSummary is the listing row for workouts.
type WorkoutSummary struct {
	ID           int64      `json:"id" yaml:"id"`
	TemplateID   int64      `json:"template_id" yaml:"template_id"`
	TemplateName string     `json:"template_name" yaml:"template_name"`
	StartedAt    time.Time  `json:"started_at" yaml:"started_at"`
	FinishedAt   *time.Time `json:"finished_at,omitempty" yaml:"finished_at,omitempty"`
}

// SetGroup groups the performed sets of one exercise within a workout.
type SetGroup struct {
	ID                  int64     `json:"id" yaml:"id"`
	WorkoutID           int64     `json:"workout_id" yaml:"workout_id"`
	ExerciseID          int64     `json:"exercise_id" yaml:"exercise_id"`
	Index               int       `json:"index" yaml:"index"`
	RestDurationSeconds int       `json:"rest_duration_seconds" yaml:"rest_duration_seconds"`
	IsSuperset          bool      `json:"is_superset" yaml:"is_superset"`
	Exercise            *Exercise `json:"exercise,omitempty" yaml:"exercise,omitempty"`
	Sets                []Set     `json:"sets,omitempty" yaml:"sets,omitempty"`
}

// Set is one performed set. FinishedAt non-nil means complete.
type Set struct {
	ID         int64      `json:"id" yaml:"id"`
	SetGroupID int64      `json:"set_group_id" yaml:"set_group_id"`
	WorkoutID  int64      `json:"workout_id" yaml:"workout_id"`
	ExerciseID int64      `json:"exercise_id" yaml:"exercise_id"`
	Index      int        `json:"index" yaml:"index"`
	Type       SetType    `json:"type" yaml:"type"`
	Metrics    `yaml:",inline"`
	FinishedAt *time.Time `json:"finished_at,omitempty" yaml:"finished_at,omitempty"`
}

// Complete reports whether the set has been finished.
func (s *Set) Complete() bool {
	return s.FinishedAt != nil
}
