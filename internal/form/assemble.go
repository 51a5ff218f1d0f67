package form

import (
	"fmt"
	"sort"

	"github.com/abhisek/siaga/internal/features"
)

// Assemble reprojects raw onto the exact order of names.
//
// Keys in raw that are not in names fail with ErrUnexpectedFeature; names
// absent from raw fail with ErrMissingFeatureValue; values outside their
// spec's domain fail with ErrValueOutOfDomain. Checking unexpected keys
// first makes ErrMissingFeatureValue occur exactly when raw's keys are a
// strict subset of names.
func Assemble(raw map[string]int, names []string, catalog *features.Catalog) (InputRecord, error) {
	declared := make(map[string]bool, len(names))
	for _, n := range names {
		declared[n] = true
	}

	var unexpected []string
	for k := range raw {
		if !declared[k] {
			unexpected = append(unexpected, k)
		}
	}
	if len(unexpected) > 0 {
		sort.Strings(unexpected)
		return InputRecord{}, &AssemblyError{Reason: ErrUnexpectedFeature, Features: unexpected}
	}

	var missing []string
	for _, n := range names {
		if _, ok := raw[n]; !ok {
			missing = append(missing, n)
		}
	}
	if len(missing) > 0 {
		return InputRecord{}, &AssemblyError{Reason: ErrMissingFeatureValue, Features: missing}
	}

	rec := InputRecord{
		names:  make([]string, len(names)),
		values: make([]int, len(names)),
	}
	var invalid []string
	for i, n := range names {
		v := raw[n]
		if catalog != nil {
			if spec := catalog.Resolve(n); !spec.Accepts(v) {
				invalid = append(invalid, fmt.Sprintf("%s=%d", n, v))
			}
		}
		rec.names[i] = n
		rec.values[i] = v
	}
	if len(invalid) > 0 {
		return InputRecord{}, &AssemblyError{Reason: ErrValueOutOfDomain, Features: invalid}
	}
	return rec, nil
}
