package prediction

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

var ErrFeatureCount = errors.New("feature vector length does not match model")

// Model is a pre-fitted predictive function over a fixed feature vector.
type Model interface {
	// Predict returns the point prediction for one row.
	Predict(features []float64) (float64, error)
}

// Classifier is a binary model that also reports the positive-class probability.
type Classifier interface {
	Model
	PredictProba(features []float64) (float64, error)
}

// LinearRegression computes intercept + coefficients·x.
type LinearRegression struct {
	Coefficients []float64
	Intercept    float64
}

func (m *LinearRegression) Predict(features []float64) (float64, error) {
	if len(features) != len(m.Coefficients) {
		return 0, fmt.Errorf("%w: got %d, want %d", ErrFeatureCount, len(features), len(m.Coefficients))
	}
	return m.Intercept + floats.Dot(m.Coefficients, features), nil
}

// LogisticRegression is a binary classifier; the positive class is predicted
// only when its probability exceeds Threshold.
type LogisticRegression struct {
	Coefficients []float64
	Intercept    float64
	Threshold    float64
}

func (m *LogisticRegression) PredictProba(features []float64) (float64, error) {
	if len(features) != len(m.Coefficients) {
		return 0, fmt.Errorf("%w: got %d, want %d", ErrFeatureCount, len(features), len(m.Coefficients))
	}
	z := m.Intercept + floats.Dot(m.Coefficients, features)
	return 1 / (1 + math.Exp(-z)), nil
}

// Predict returns the class label, 0 or 1, as a float.
func (m *LogisticRegression) Predict(features []float64) (float64, error) {
	p, err := m.PredictProba(features)
	if err != nil {
		return 0, err
	}
	if p > m.Threshold {
		return 1, nil
	}
	return 0, nil
}

var (
	_ Model      = (*LinearRegression)(nil)
	_ Classifier = (*LogisticRegression)(nil)
)
