package form

import (
	"fmt"

	"github.com/abhisek/siaga/internal/features"
)

// Draft holds the raw values captured while the form is filled in. Every
// write is constrained to the field's declared domain.
type Draft struct {
	specs  []features.FeatureSpec
	index  map[string]int
	values map[string]int
}

// NewDraft creates a draft for specs, pre-filled with their defaults.
func NewDraft(specs []features.FeatureSpec) *Draft {
	d := &Draft{
		specs:  specs,
		index:  make(map[string]int, len(specs)),
		values: make(map[string]int, len(specs)),
	}
	for i, s := range specs {
		d.index[s.Name] = i
		d.values[s.Name] = s.Default
	}
	return d
}

// Specs returns the draft's fields in form order.
func (d *Draft) Specs() []features.FeatureSpec {
	return d.specs
}

// Spec returns the field spec for name.
func (d *Draft) Spec(name string) (features.FeatureSpec, bool) {
	i, ok := d.index[name]
	if !ok {
		return features.FeatureSpec{}, false
	}
	return d.specs[i], true
}

// Set stores v for name after clamping it to the field's domain. It
// returns the stored value and whether clamping changed it.
func (d *Draft) Set(name string, v int) (stored int, clamped bool, err error) {
	spec, ok := d.Spec(name)
	if !ok {
		return 0, false, fmt.Errorf("set %q: %w", name, ErrUnexpectedFeature)
	}
	stored = spec.Clamp(v)
	d.values[name] = stored
	return stored, stored != v, nil
}

// Step moves the value of name by delta positions within its domain.
func (d *Draft) Step(name string, delta int) int {
	spec, ok := d.Spec(name)
	if !ok {
		return 0
	}
	v := spec.Step(d.values[name], delta)
	d.values[name] = v
	return v
}

// Get returns the current value for name.
func (d *Draft) Get(name string) (int, bool) {
	v, ok := d.values[name]
	return v, ok
}

// Values returns a copy of the captured name-to-value mapping.
func (d *Draft) Values() map[string]int {
	out := make(map[string]int, len(d.values))
	for k, v := range d.values {
		out[k] = v
	}
	return out
}

// Reset restores every field to its default.
func (d *Draft) Reset() {
	for _, s := range d.specs {
		d.values[s.Name] = s.Default
	}
}
