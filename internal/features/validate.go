package features

import (
	"fmt"
	"strings"

	"github.com/abhisek/siaga/internal/i18n"
)

// Validate checks the seed catalog in every supported language.
func Validate() error {
	for _, tag := range i18n.Supported {
		specs := make([]FeatureSpec, 0, len(seedEntries))
		for _, e := range seedEntries {
			specs = append(specs, e.spec(tag))
		}
		if err := validateSpecs(specs); err != nil {
			return err
		}
	}
	return nil
}

// validateSpecs performs structural checks on a spec set.
// Returns a combined error describing all problems found, or nil if valid.
func validateSpecs(specs []FeatureSpec) error {
	var errs []string
	seen := make(map[string]bool, len(specs))

	for _, s := range specs {
		prefix := fmt.Sprintf("feature %q", s.Name)

		if s.Name == "" {
			errs = append(errs, "feature with empty name")
			continue
		}
		if seen[s.Name] {
			errs = append(errs, fmt.Sprintf("duplicate feature name: %q", s.Name))
		}
		seen[s.Name] = true

		if strings.TrimSpace(s.Label) == "" {
			errs = append(errs, prefix+": empty label")
		}
		if s.Min > s.Max {
			errs = append(errs, fmt.Sprintf("%s: min %d greater than max %d", prefix, s.Min, s.Max))
		}

		switch s.Kind {
		case KindScale:
			if s.Min != 1 || s.Max != 5 {
				errs = append(errs, fmt.Sprintf("%s: scale must span 1-5, got %d-%d", prefix, s.Min, s.Max))
			}
		case KindBinary:
			if len(s.Options) != 2 || !hasValues(s.Options, 0, 1) {
				errs = append(errs, prefix+": binary options must be exactly 0 and 1")
			}
		case KindCategorical:
			if len(s.Options) == 0 {
				errs = append(errs, prefix+": categorical feature has no options")
			}
		case KindBoundedInt:
			if len(s.Options) > 0 {
				errs = append(errs, prefix+": bounded integer must not declare options")
			}
		default:
			errs = append(errs, fmt.Sprintf("%s: unknown kind %d", prefix, s.Kind))
		}

		if s.Direction != DirectionUnspecified && s.Kind != KindScale {
			errs = append(errs, prefix+": direction only applies to scale features")
		}

		values := make(map[int]bool, len(s.Options))
		for _, o := range s.Options {
			if values[o.Value] {
				errs = append(errs, fmt.Sprintf("%s: duplicate option value %d", prefix, o.Value))
			}
			values[o.Value] = true
			if strings.TrimSpace(o.Label) == "" {
				errs = append(errs, fmt.Sprintf("%s: option %d has an empty label", prefix, o.Value))
			}
		}

		if !s.Accepts(s.Default) {
			errs = append(errs, fmt.Sprintf("%s: default %d outside its domain", prefix, s.Default))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("feature catalog validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}

func hasValues(opts []Option, values ...int) bool {
	for _, v := range values {
		found := false
		for _, o := range opts {
			if o.Value == v {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
