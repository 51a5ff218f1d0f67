package model

import (
	"encoding/json"
	"fmt"
	"math"
)

// Classifier type names as they appear in the artifact.
const (
	TypeDecisionTree       = "decision_tree"
	TypeRandomForest       = "random_forest"
	TypeLogisticRegression = "logistic_regression"
)

// Classifier is a trained binary classifier over a fixed-width vector.
type Classifier interface {
	// Type returns the artifact type name.
	Type() string

	// NumFeatures returns the vector width the classifier was built for.
	NumFeatures() int

	// PredictProbability returns the positive-class probability.
	PredictProbability(vec []float64) float64

	// Predict returns the class at the classifier's own 0.5 cut.
	Predict(vec []float64) int
}

// Node is one entry of a flattened decision tree. Split nodes send a
// vector left when vec[Feature] <= Threshold.
type Node struct {
	Feature   int     `json:"feature"`
	Threshold float64 `json:"threshold"`
	Left      int     `json:"left"`
	Right     int     `json:"right"`
	Leaf      bool    `json:"leaf,omitempty"`
	Value     float64 `json:"value"`
}

// DecisionTree is a single tree whose leaves hold positive-class
// probabilities. Node 0 is the root.
type DecisionTree struct {
	Nodes []Node `json:"nodes"`
	width int
}

// NewDecisionTree validates nodes against a vector of the given width.
func NewDecisionTree(nodes []Node, width int) (*DecisionTree, error) {
	t := &DecisionTree{Nodes: nodes, width: width}
	if err := t.validate(); err != nil {
		return nil, err
	}
	return t, nil
}

func (t *DecisionTree) Type() string     { return TypeDecisionTree }
func (t *DecisionTree) NumFeatures() int { return t.width }

func (t *DecisionTree) PredictProbability(vec []float64) float64 {
	i := 0
	for {
		n := t.Nodes[i]
		if n.Leaf {
			return n.Value
		}
		if vec[n.Feature] <= n.Threshold {
			i = n.Left
		} else {
			i = n.Right
		}
	}
}

func (t *DecisionTree) Predict(vec []float64) int {
	return cut(t.PredictProbability(vec))
}

func (t *DecisionTree) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type  string `json:"type"`
		Nodes []Node `json:"nodes"`
	}{TypeDecisionTree, t.Nodes})
}

// validate requires children to come after their parent, which rules out
// cycles and guarantees PredictProbability terminates.
func (t *DecisionTree) validate() error {
	if len(t.Nodes) == 0 {
		return fmt.Errorf("tree has no nodes")
	}
	for i, n := range t.Nodes {
		if n.Leaf {
			if n.Value < 0 || n.Value > 1 || math.IsNaN(n.Value) {
				return fmt.Errorf("node %d: leaf value %v outside [0,1]", i, n.Value)
			}
			continue
		}
		if n.Feature < 0 || n.Feature >= t.width {
			return fmt.Errorf("node %d: feature index %d outside [0,%d)", i, n.Feature, t.width)
		}
		if n.Left <= i || n.Left >= len(t.Nodes) {
			return fmt.Errorf("node %d: left child %d out of range", i, n.Left)
		}
		if n.Right <= i || n.Right >= len(t.Nodes) {
			return fmt.Errorf("node %d: right child %d out of range", i, n.Right)
		}
	}
	return nil
}

// RandomForest averages the probabilities of its trees.
type RandomForest struct {
	Trees []*DecisionTree
	width int
}

// NewRandomForest validates every tree against the given width.
func NewRandomForest(trees [][]Node, width int) (*RandomForest, error) {
	if len(trees) == 0 {
		return nil, fmt.Errorf("forest has no trees")
	}
	f := &RandomForest{Trees: make([]*DecisionTree, 0, len(trees)), width: width}
	for i, nodes := range trees {
		t, err := NewDecisionTree(nodes, width)
		if err != nil {
			return nil, fmt.Errorf("tree %d: %w", i, err)
		}
		f.Trees = append(f.Trees, t)
	}
	return f, nil
}

func (f *RandomForest) Type() string     { return TypeRandomForest }
func (f *RandomForest) NumFeatures() int { return f.width }

func (f *RandomForest) PredictProbability(vec []float64) float64 {
	var sum float64
	for _, t := range f.Trees {
		sum += t.PredictProbability(vec)
	}
	return sum / float64(len(f.Trees))
}

func (f *RandomForest) Predict(vec []float64) int {
	return cut(f.PredictProbability(vec))
}

func (f *RandomForest) MarshalJSON() ([]byte, error) {
	type tree struct {
		Nodes []Node `json:"nodes"`
	}
	trees := make([]tree, len(f.Trees))
	for i, t := range f.Trees {
		trees[i] = tree{Nodes: t.Nodes}
	}
	return json.Marshal(struct {
		Type  string `json:"type"`
		Trees []tree `json:"trees"`
	}{TypeRandomForest, trees})
}

// LogisticRegression is a linear model passed through the logistic function.
type LogisticRegression struct {
	Intercept    float64
	Coefficients []float64
}

// NewLogisticRegression checks that there is one coefficient per feature.
func NewLogisticRegression(intercept float64, coef []float64, width int) (*LogisticRegression, error) {
	if len(coef) != width {
		return nil, fmt.Errorf("got %d coefficients for %d features", len(coef), width)
	}
	for i, c := range coef {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return nil, fmt.Errorf("coefficient %d is not finite", i)
		}
	}
	return &LogisticRegression{Intercept: intercept, Coefficients: coef}, nil
}

func (l *LogisticRegression) Type() string     { return TypeLogisticRegression }
func (l *LogisticRegression) NumFeatures() int { return len(l.Coefficients) }

func (l *LogisticRegression) PredictProbability(vec []float64) float64 {
	z := l.Intercept
	for i, c := range l.Coefficients {
		z += c * vec[i]
	}
	return 1 / (1 + math.Exp(-z))
}

func (l *LogisticRegression) Predict(vec []float64) int {
	return cut(l.PredictProbability(vec))
}

func (l *LogisticRegression) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type         string    `json:"type"`
		Intercept    float64   `json:"intercept"`
		Coefficients []float64 `json:"coefficients"`
	}{TypeLogisticRegression, l.Intercept, l.Coefficients})
}

func cut(p float64) int {
	if p >= 0.5 {
		return 1
	}
	return 0
}

// decodeClassifier builds the classifier described by raw for a vector of
// the given width.
func decodeClassifier(raw json.RawMessage, width int) (Classifier, error) {
	var head struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(raw, &head); err != nil {
		return nil, err
	}

	switch head.Type {
	case TypeDecisionTree:
		var body struct {
			Nodes []Node `json:"nodes"`
		}
		if err := json.Unmarshal(raw, &body); err != nil {
			return nil, err
		}
		return NewDecisionTree(body.Nodes, width)

	case TypeRandomForest:
		var body struct {
			Trees []struct {
				Nodes []Node `json:"nodes"`
			} `json:"trees"`
		}
		if err := json.Unmarshal(raw, &body); err != nil {
			return nil, err
		}
		trees := make([][]Node, len(body.Trees))
		for i, t := range body.Trees {
			trees[i] = t.Nodes
		}
		return NewRandomForest(trees, width)

	case TypeLogisticRegression:
		var body struct {
			Intercept    float64   `json:"intercept"`
			Coefficients []float64 `json:"coefficients"`
		}
		if err := json.Unmarshal(raw, &body); err != nil {
			return nil, err
		}
		return NewLogisticRegression(body.Intercept, body.Coefficients, width)

	default:
		return nil, fmt.Errorf("unknown classifier type %q", head.Type)
	}
}
