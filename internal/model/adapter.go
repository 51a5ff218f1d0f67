package model

import (
	"fmt"
)

// Record is an assembled input in model feature order.
type Record interface {
	Names() []string
	Vector() []float64
}

// PredictionResult is the outcome of one inference.
type PredictionResult struct {
	Label       int     `json:"label"`
	Probability float64 `json:"probability"`
	Threshold   float64 `json:"threshold"`
}

// AtRisk reports whether the positive (dropout) class was predicted.
func (r PredictionResult) AtRisk() bool {
	return r.Label == 1
}

// Percent formats the probability for display, e.g. "73.0%".
func (r PredictionResult) Percent() string {
	return FormatPercent(r.Probability)
}

// FormatPercent renders p in [0,1] as a percentage with one decimal.
func FormatPercent(p float64) string {
	return fmt.Sprintf("%.1f%%", p*100)
}

// Predictor scores assembled records.
type Predictor interface {
	Features() []string
	Threshold() float64
	Predict(rec Record) PredictionResult
}

// Adapter binds a loaded bundle to a decision threshold.
type Adapter struct {
	bundle    *Bundle
	threshold float64
}

// NewAdapter wraps b. A zero threshold uses the bundle's own.
func NewAdapter(b *Bundle, threshold float64) (*Adapter, error) {
	if b == nil {
		return nil, fmt.Errorf("new adapter: nil bundle")
	}
	if threshold == 0 {
		threshold = b.Threshold
	}
	if threshold <= 0 || threshold > 1 {
		return nil, fmt.Errorf("new adapter: threshold %v outside (0,1]", threshold)
	}
	return &Adapter{bundle: b, threshold: threshold}, nil
}

// Bundle returns the wrapped artifact.
func (a *Adapter) Bundle() *Bundle {
	return a.bundle
}

// Features returns the model's declared feature list.
func (a *Adapter) Features() []string {
	return a.bundle.FeatureNames()
}

// Threshold returns the probability at or above which Label is 1.
func (a *Adapter) Threshold() float64 {
	return a.threshold
}

// Predict scores rec. It panics with *SchemaMismatchError when rec's names
// differ from the model's feature list in length or order, or when its
// vector length differs from the feature count.
func (a *Adapter) Predict(rec Record) PredictionResult {
	vec := checkSchema(a.bundle.Features, rec, a.bundle.Classifier.NumFeatures())

	p := a.bundle.Classifier.PredictProbability(vec)
	switch {
	case p < 0:
		p = 0
	case p > 1:
		p = 1
	}

	label := 0
	if p >= a.threshold {
		label = 1
	}
	return PredictionResult{Label: label, Probability: p, Threshold: a.threshold}
}
