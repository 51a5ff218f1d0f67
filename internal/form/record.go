package form

// InputRecord is the captured input reordered to the model's feature list.
// It is built by Assemble and never modified afterwards.
type InputRecord struct {
	names  []string
	values []int
}

// Len returns the number of features.
func (r InputRecord) Len() int {
	return len(r.names)
}

// Names returns the feature names in model order.
func (r InputRecord) Names() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

// Values returns the integer-coded values in model order.
func (r InputRecord) Values() []int {
	out := make([]int, len(r.values))
	copy(out, r.values)
	return out
}

// Vector returns the values as the classifier's feature vector.
func (r InputRecord) Vector() []float64 {
	out := make([]float64, len(r.values))
	for i, v := range r.values {
		out[i] = float64(v)
	}
	return out
}

// Get returns the value captured for name.
func (r InputRecord) Get(name string) (int, bool) {
	for i, n := range r.names {
		if n == name {
			return r.values[i], true
		}
	}
	return 0, false
}
