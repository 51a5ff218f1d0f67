package features

import (
	"fmt"
	"strconv"
)

// Kind is the input domain of a feature.
type Kind int

const (
	KindBinary      Kind = iota // 0/1 with a Yes/No label
	KindBoundedInt              // integer clamped to [Min, Max]
	KindCategorical             // integer code with a label per value
	KindScale                   // ordinal 1-5
)

// String returns the kind's wire name.
func (k Kind) String() string {
	switch k {
	case KindBinary:
		return "binary"
	case KindBoundedInt:
		return "bounded_int"
	case KindCategorical:
		return "categorical"
	case KindScale:
		return "scale"
	default:
		return "unknown"
	}
}

// MarshalText encodes the kind by name.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Direction records which end of a scale is the favourable one. The
// catalog does not assume a direction unless one is known.
type Direction int

const (
	DirectionUnspecified Direction = iota
	DirectionHigherIsBetter
	DirectionHigherIsWorse
)

// String returns the direction's config name.
func (d Direction) String() string {
	switch d {
	case DirectionHigherIsBetter:
		return "higher_is_better"
	case DirectionHigherIsWorse:
		return "higher_is_worse"
	default:
		return "unspecified"
	}
}

// MarshalText encodes the direction by name.
func (d Direction) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// ParseDirection parses a config direction name. The empty string means
// unspecified.
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "", "unspecified":
		return DirectionUnspecified, nil
	case "higher_is_better":
		return DirectionHigherIsBetter, nil
	case "higher_is_worse":
		return DirectionHigherIsWorse, nil
	default:
		return DirectionUnspecified, fmt.Errorf("unknown scale direction %q", s)
	}
}

// Section groups related fields on the form.
type Section string

const (
	SectionStudent   Section = "student"
	SectionParents   Section = "parents"
	SectionAcademics Section = "academics"
	SectionScales    Section = "scales"
	SectionOther     Section = "other"
)

// AllSections returns the sections in display order.
func AllSections() []Section {
	return []Section{
		SectionStudent,
		SectionParents,
		SectionAcademics,
		SectionScales,
		SectionOther,
	}
}

// Option is one selectable value of a categorical or binary feature.
type Option struct {
	Value int    `json:"value"`
	Label string `json:"label"`
}

// FeatureSpec describes how one model feature is asked for and which
// values it may take.
type FeatureSpec struct {
	Name      string    `json:"name"`
	Kind      Kind      `json:"kind"`
	Label     string    `json:"label"`
	Help      string    `json:"help,omitempty"`
	Section   Section   `json:"section"`
	Min       int       `json:"min"`
	Max       int       `json:"max"`
	Default   int       `json:"default"`
	Options   []Option  `json:"options,omitempty"`
	Direction Direction `json:"direction"`

	// Fallback is set when the name was not in the catalog and the spec is
	// the generic Yes/No question.
	Fallback bool `json:"fallback"`
}

// HasOptions reports whether the spec's values come from a fixed option list.
func (s FeatureSpec) HasOptions() bool {
	return s.Kind == KindBinary || s.Kind == KindCategorical
}

// Accepts reports whether v is inside the spec's domain.
func (s FeatureSpec) Accepts(v int) bool {
	if s.HasOptions() {
		return s.optionIndex(v) >= 0
	}
	return v >= s.Min && v <= s.Max
}

// Clamp maps v onto the spec's domain. Range kinds clamp to [Min, Max];
// option kinds snap to the nearest declared option.
func (s FeatureSpec) Clamp(v int) int {
	if v < s.Min {
		v = s.Min
	}
	if v > s.Max {
		v = s.Max
	}
	if !s.HasOptions() || s.optionIndex(v) >= 0 || len(s.Options) == 0 {
		return v
	}

	best := s.Options[0].Value
	for _, o := range s.Options[1:] {
		if abs(o.Value-v) < abs(best-v) {
			best = o.Value
		}
	}
	return best
}

// Step moves v by delta positions. Option kinds move through the option
// list in display order; range kinds move by delta and clamp.
func (s FeatureSpec) Step(v, delta int) int {
	if !s.HasOptions() {
		return s.Clamp(v + delta)
	}
	idx := s.optionIndex(s.Clamp(v)) + delta
	if idx < 0 {
		idx = 0
	}
	if idx >= len(s.Options) {
		idx = len(s.Options) - 1
	}
	return s.Options[idx].Value
}

// Describe returns the display text for v: the option label for option
// kinds, the number otherwise.
func (s FeatureSpec) Describe(v int) string {
	if i := s.optionIndex(v); i >= 0 {
		return s.Options[i].Label
	}
	return strconv.Itoa(v)
}

func (s FeatureSpec) optionIndex(v int) int {
	for i, o := range s.Options {
		if o.Value == v {
			return i
		}
	}
	return -1
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
