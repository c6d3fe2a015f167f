package flow

import (
	"errors"
	"fmt"
	"strings"
)

// Step is one node of a cohort flow: the participant count remaining at
// that stage plus optional labels and color overrides. The Color/ColorName
// pairs are aliases; when both are set, Color wins.
type Step struct {
	// Heading is the box title. Empty or whitespace-only headings fall
	// back to "Step <i+1>".
	Heading string `toml:"heading" json:"heading,omitempty"`

	// Description is optional body text rendered below the count line.
	Description string `toml:"description" json:"description,omitempty"`

	// Count is the number of participants remaining at this step. Counts
	// must be non-negative and non-increasing across the sequence.
	Count int `toml:"count" json:"count"`

	// ExclusionDescription labels the side box for the records dropped on
	// the transition into this step. Defaults to "Excluded".
	ExclusionDescription string `toml:"exclusion_description" json:"exclusion_description,omitempty"`

	Color              string `toml:"color" json:"color,omitempty"`
	ColorName          string `toml:"color_name" json:"color_name,omitempty"`
	ExclusionColor     string `toml:"exclusion_color" json:"exclusion_color,omitempty"`
	ExclusionColorName string `toml:"exclusion_color_name" json:"exclusion_color_name,omitempty"`
}

// ErrEmptyInput is returned when a step sequence has no elements.
var ErrEmptyInput = errors.New("at least one step is required")

// InvalidSequenceError reports a step whose count breaks the attrition
// invariant: either negative, or larger than the preceding step's count.
// Index identifies the offending step.
type InvalidSequenceError struct {
	Index int
	Count int
	Prev  int
}

func (e *InvalidSequenceError) Error() string {
	if e.Count < 0 {
		return fmt.Sprintf("step %d has a negative count (%d)", e.Index, e.Count)
	}
	return fmt.Sprintf("step %d has a higher count (%d) than the previous step (%d)", e.Index, e.Count, e.Prev)
}

// validate checks the sequence invariants before any drawing happens.
func validate(steps []Step) error {
	if len(steps) == 0 {
		return ErrEmptyInput
	}
	for i, s := range steps {
		if s.Count < 0 {
			return &InvalidSequenceError{Index: i, Count: s.Count}
		}
		if i > 0 && s.Count > steps[i-1].Count {
			return &InvalidSequenceError{Index: i, Count: s.Count, Prev: steps[i-1].Count}
		}
	}
	return nil
}

// heading returns the step's heading with the positional fallback applied.
func (s Step) heading(i int) string {
	if h := strings.TrimSpace(s.Heading); h != "" {
		return h
	}
	return fmt.Sprintf("Step %d", i+1)
}

// exclusionDescription returns the exclusion label with its default.
func (s Step) exclusionDescription() string {
	if d := strings.TrimSpace(s.ExclusionDescription); d != "" {
		return d
	}
	return "Excluded"
}

// mainColor returns the step's main-box color override, empty when unset.
func (s Step) mainColor() string {
	if s.Color != "" {
		return s.Color
	}
	return s.ColorName
}

// exclusionColor returns the exclusion-box color override, empty when unset.
func (s Step) exclusionColor() string {
	if s.ExclusionColor != "" {
		return s.ExclusionColor
	}
	return s.ExclusionColorName
}
