package model

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

var (
	// ErrArtifactMissing means no model file exists at the configured path.
	ErrArtifactMissing = errors.New("model artifact missing")

	// ErrArtifactCorrupt means the model file exists but cannot be used.
	ErrArtifactCorrupt = errors.New("model artifact corrupt")
)

// ArtifactError reports a failure to load the artifact at Path. Kind is
// ErrArtifactMissing or ErrArtifactCorrupt.
type ArtifactError struct {
	Path string
	Kind error
	Err  error
}

func (e *ArtifactError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("load %s: %v", e.Path, e.Kind)
	}
	return fmt.Sprintf("load %s: %v: %v", e.Path, e.Kind, e.Err)
}

func (e *ArtifactError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// SchemaMismatchError is the panic value raised when a record does not
// line up with the model: its feature names differ from the declared list,
// or its vector length differs from the feature count.
type SchemaMismatchError struct {
	Expected  []string
	Got       []string
	VectorLen int
}

func (e *SchemaMismatchError) Error() string {
	if len(e.Expected) != len(e.Got) {
		return fmt.Sprintf("feature schema mismatch: model expects %d features, record has %d",
			len(e.Expected), len(e.Got))
	}
	for i := range e.Expected {
		if e.Expected[i] != e.Got[i] {
			return fmt.Sprintf("feature schema mismatch at position %d: model expects %q, record has %q",
				i, e.Expected[i], e.Got[i])
		}
	}
	if e.VectorLen != len(e.Expected) {
		return fmt.Sprintf("feature schema mismatch: model expects %d values, record vector has %d",
			len(e.Expected), e.VectorLen)
	}
	return "feature schema mismatch: " + strings.Join(e.Got, ",")
}

// checkSchema panics with *SchemaMismatchError unless rec's names equal
// expected and its vector holds exactly width values, with width equal to
// len(expected).
func checkSchema(expected []string, rec Record, width int) []float64 {
	got := rec.Names()
	vec := rec.Vector()
	if slices.Equal(expected, got) && len(vec) == len(expected) && width == len(expected) {
		return vec
	}
	panic(&SchemaMismatchError{Expected: expected, Got: got, VectorLen: len(vec)})
}
