package model

import (
	"fmt"
	"strconv"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
)

// CachedPredictor memoises predictions by feature vector.
type CachedPredictor struct {
	inner Predictor
	cache *lru.Cache[string, PredictionResult]
}

// NewCachedPredictor keeps up to size recent results from inner.
func NewCachedPredictor(inner Predictor, size int) (*CachedPredictor, error) {
	c, err := lru.New[string, PredictionResult](size)
	if err != nil {
		return nil, fmt.Errorf("new prediction cache: %w", err)
	}
	return &CachedPredictor{inner: inner, cache: c}, nil
}

func (c *CachedPredictor) Features() []string { return c.inner.Features() }
func (c *CachedPredictor) Threshold() float64 { return c.inner.Threshold() }

// Predict implements Predictor.
func (c *CachedPredictor) Predict(rec Record) PredictionResult {
	res, _ := c.PredictCached(rec)
	return res
}

// PredictCached returns the result for rec and whether it came from the
// cache.
func (c *CachedPredictor) PredictCached(rec Record) (PredictionResult, bool) {
	expected := c.inner.Features()
	vec := checkSchema(expected, rec, len(expected))

	key := vectorKey(vec)
	if res, ok := c.cache.Get(key); ok {
		return res, true
	}
	res := c.inner.Predict(rec)
	c.cache.Add(key, res)
	return res, false
}

// Len returns the number of cached results.
func (c *CachedPredictor) Len() int {
	return c.cache.Len()
}

func vectorKey(vec []float64) string {
	var b strings.Builder
	for i, v := range vec {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
	}
	return b.String()
}
