package form

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrMissingFeatureValue means a declared feature was never captured.
	ErrMissingFeatureValue = errors.New("missing feature value")

	// ErrUnexpectedFeature means the captured values name a feature the
	// model does not declare.
	ErrUnexpectedFeature = errors.New("unexpected feature")

	// ErrValueOutOfDomain means a captured value lies outside its spec.
	ErrValueOutOfDomain = errors.New("value out of domain")
)

// AssemblyError reports which features failed to assemble and why.
type AssemblyError struct {
	Reason   error
	Features []string
}

func (e *AssemblyError) Error() string {
	return fmt.Sprintf("assemble input: %v: %s", e.Reason, strings.Join(e.Features, ", "))
}

func (e *AssemblyError) Unwrap() error { return e.Reason }

// Code returns a short machine-readable reason.
func (e *AssemblyError) Code() string {
	switch {
	case errors.Is(e.Reason, ErrMissingFeatureValue):
		return "missing_feature_value"
	case errors.Is(e.Reason, ErrUnexpectedFeature):
		return "unexpected_feature"
	case errors.Is(e.Reason, ErrValueOutOfDomain):
		return "value_out_of_domain"
	default:
		return "invalid_input"
	}
}
