// ABOUTME: Parsing of free-text set metrics into typed values.
// ABOUTME: Blank input means no value; anything else must be a positive number.
package training

import (
	"math"
	"strconv"
	"strings"

	"github.com/harperreed/reps/internal/models"
)

// MetricInput carries raw user input for a set's metrics.
type MetricInput struct {
	Reps     string `json:"reps,omitempty"`
	Weight   string `json:"weight,omitempty"`
	Duration string `json:"duration,omitempty"`
}

const (
	msgReps     = "Reps must be a positive integer"
	msgWeight   = "Weight must be a positive number"
	msgDuration = "Duration must be a positive integer in seconds"
)

// ParseMetrics validates every field, reporting the first failure in the
// order reps, weight, duration.
func ParseMetrics(in MetricInput) (models.Metrics, error) {
	var m models.Metrics
	var ok bool

	if m.Reps, ok = parsePositiveInt(in.Reps); !ok {
		return models.Metrics{}, invalid("reps", msgReps)
	}
	if m.Weight, ok = parsePositiveFloat(in.Weight); !ok {
		return models.Metrics{}, invalid("weight", msgWeight)
	}
	if m.Duration, ok = parsePositiveInt(in.Duration); !ok {
		return models.Metrics{}, invalid("duration", msgDuration)
	}
	return m, nil
}

func parsePositiveFloat(raw string) (*float64, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil, true
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return nil, false
	}
	return &v, true
}

// parsePositiveInt accepts integral numbers in any float notation, so "5.0"
// and "1e2" are valid.
func parsePositiveInt(raw string) (*int, bool) {
	f, ok := parsePositiveFloat(raw)
	if !ok {
		return nil, false
	}
	if f == nil {
		return nil, true
	}
	if *f != math.Trunc(*f) || *f > math.MaxInt32 {
		return nil, false
	}
	v := int(*f)
	return &v, true
}
