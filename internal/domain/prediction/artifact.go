package prediction

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
)

const (
	KindLinearRegression   = "linear_regression"
	KindLogisticRegression = "logistic_regression"

	defaultThreshold = 0.5
)

var ErrInvalidArtifact = errors.New("invalid model artifact")

// Artifact is the document the offline training job writes for one slot.
type Artifact struct {
	Slot         Slot      `json:"slot"`
	Kind         string    `json:"kind"`
	Features     []string  `json:"features"`
	Coefficients []float64 `json:"coefficients"`
	Intercept    float64   `json:"intercept"`
	Threshold    *float64  `json:"threshold,omitempty"`
}

// kindFor is the only model kind each slot accepts.
func kindFor(slot Slot) string {
	if slot == SlotMaintenance {
		return KindLogisticRegression
	}
	return KindLinearRegression
}

// DecodeArtifact reads an artifact for slot and builds its model. The
// document must target slot, use the slot's model kind and declare exactly
// the slot schema in order.
func DecodeArtifact(slot Slot, r io.Reader) (Model, error) {
	var a Artifact
	dec := json.NewDecoder(r)
	if err := dec.Decode(&a); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidArtifact, err)
	}
	return a.Build(slot)
}

// Build validates the artifact against slot and returns the model.
func (a *Artifact) Build(slot Slot) (Model, error) {
	schema := SchemaFor(slot)
	if schema == nil {
		return nil, fmt.Errorf("%w: unknown slot %q", ErrInvalidArtifact, slot)
	}
	if a.Slot != slot {
		return nil, fmt.Errorf("%w: artifact is for slot %q, want %q", ErrInvalidArtifact, a.Slot, slot)
	}
	if want := kindFor(slot); a.Kind != want {
		return nil, fmt.Errorf("%w: kind %q, want %q", ErrInvalidArtifact, a.Kind, want)
	}
	if !schema.Equal(a.Features) {
		return nil, fmt.Errorf("%w: features %v do not match schema %v", ErrInvalidArtifact, a.Features, []string(schema))
	}
	if len(a.Coefficients) != len(schema) {
		return nil, fmt.Errorf("%w: %d coefficients for %d features", ErrInvalidArtifact, len(a.Coefficients), len(schema))
	}
	for _, c := range append([]float64{a.Intercept}, a.Coefficients...) {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return nil, fmt.Errorf("%w: non-finite parameter", ErrInvalidArtifact)
		}
	}
	coef := append([]float64(nil), a.Coefficients...)

	if a.Kind == KindLinearRegression {
		return &LinearRegression{Coefficients: coef, Intercept: a.Intercept}, nil
	}
	threshold := defaultThreshold
	if a.Threshold != nil {
		threshold = *a.Threshold
	}
	if threshold <= 0 || threshold >= 1 {
		return nil, fmt.Errorf("%w: threshold %v outside (0,1)", ErrInvalidArtifact, threshold)
	}
	return &LogisticRegression{Coefficients: coef, Intercept: a.Intercept, Threshold: threshold}, nil
}
