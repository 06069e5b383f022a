// ABOUTME: Exercise model and MeasuredIn enum for the exercise catalog.
// ABOUTME: Also defines the Metrics value and the per-kind filter and completion rules.
package models

import (
	"strings"
	"time"
)

// MeasuredIn is the kind of performance metric an exercise is tracked by.
type MeasuredIn string

const (
	MeasuredDuration      MeasuredIn = "duration"
	MeasuredReps          MeasuredIn = "reps"
	MeasuredRepsAndWeight MeasuredIn = "reps_and_weight"
)

// AllMeasuredIn returns every valid measurement kind.
var AllMeasuredIn = []MeasuredIn{MeasuredDuration, MeasuredReps, MeasuredRepsAndWeight}

// IsValidMeasuredIn checks if a string is a valid measurement kind.
func IsValidMeasuredIn(s string) bool {
	for _, m := range AllMeasuredIn {
		if string(m) == s {
			return true
		}
	}
	return false
}

// Exercise is a catalog entry referenced by set-groups and sets.
type Exercise struct {
	ID         int64      `json:"id" yaml:"id"`
	Name       string     `json:"name" yaml:"name"`
	MeasuredIn MeasuredIn `json:"measured_in" yaml:"measured_in"`
	CreatedAt  time.Time  `json:"created_at" yaml:"created_at"`
}

// NewExercise creates an Exercise with a trimmed name.
func NewExercise(name string, measuredIn MeasuredIn) *Exercise {
	return &Exercise{
		Name:       strings.TrimSpace(name),
		MeasuredIn: measuredIn,
		CreatedAt:  time.Now(),
	}
}

// Metrics holds the optional performance values of a set.
// A nil field means no value.
type Metrics struct {
	Reps     *int     `json:"reps,omitempty" yaml:"reps,omitempty"`
	Weight   *float64 `json:"weight,omitempty" yaml:"weight,omitempty"`
	Duration *int     `json:"duration,omitempty" yaml:"duration,omitempty"`
}

// Merge returns m with every non-nil field of override applied on top.
func (m Metrics) Merge(override Metrics) Metrics {
	if override.Reps != nil {
		m.Reps = override.Reps
	}
	if override.Weight != nil {
		m.Weight = override.Weight
	}
	if override.Duration != nil {
		m.Duration = override.Duration
	}
	return m
}

// Filter keeps only the fields that belong to the measurement kind.
func (k MeasuredIn) Filter(m Metrics) Metrics {
	switch k {
	case MeasuredDuration:
		return Metrics{Duration: m.Duration}
	case MeasuredReps:
		return Metrics{Reps: m.Reps}
	case MeasuredRepsAndWeight:
		return Metrics{Reps: m.Reps, Weight: m.Weight}
	default:
		return Metrics{}
	}
}

// Satisfied reports whether m carries every value the kind needs to complete a set.
func (k MeasuredIn) Satisfied(m Metrics) bool {
	switch k {
	case MeasuredDuration:
		return m.Duration != nil
	case MeasuredReps:
		return m.Reps != nil
	case MeasuredRepsAndWeight:
		return m.Reps != nil && m.Weight != nil
	default:
		return false
	}
}

// Requirement is the user-facing message for an unmet completion rule.
func (k MeasuredIn) Requirement() string {
	switch k {
	case MeasuredDuration:
		return "Duration is required to complete this set"
	case MeasuredReps:
		return "Reps are required to complete this set"
	default:
		return "Reps and weight are required to complete this set"
	}
}

// DefaultExercises is the starter catalog inserted by seeding.
var DefaultExercises = []Exercise{
	{Name: "Bench Press", MeasuredIn: MeasuredRepsAndWeight},
	{Name: "Squat", MeasuredIn: MeasuredRepsAndWeight},
	{Name: "Deadlift", MeasuredIn: MeasuredRepsAndWeight},
	{Name: "Pull-ups", MeasuredIn: MeasuredReps},
	{Name: "Push-ups", MeasuredIn: MeasuredReps},
	{Name: "Running", MeasuredIn: MeasuredDuration},
	{Name: "Plank", MeasuredIn: MeasuredDuration},
}
