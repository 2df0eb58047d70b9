package application

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-predictive-analytics/internal/domain/entity"
	"github.com/oksasatya/go-predictive-analytics/internal/domain/prediction"
	"github.com/oksasatya/go-predictive-analytics/pkg/helpers"
)

// DefaultSalesAccuracy is the offline-measured quality reported with every sales prediction.
const DefaultSalesAccuracy = 87.50

type SalesPrediction struct {
	Prediction         float64 `json:"prediction"`
	AccuracyPercentage float64 `json:"accuracy_percentage"`
}

type MaintenancePrediction struct {
	Prediction  int     `json:"prediction"`
	Probability float64 `json:"probability"`
}

// PredictionService dispatches authenticated prediction requests to the
// loaded models. Each call is a pure read of the registry.
type PredictionService struct {
	Registry      *prediction.Registry
	SalesAccuracy float64
	Logger        *logrus.Logger
	Recorder      PredictionRecorder // optional
}

func NewPredictionService(reg *prediction.Registry, salesAccuracy float64, logger *logrus.Logger) *PredictionService {
	if logger == nil {
		logger = helpers.NewDiscardLogger()
	}
	return &PredictionService{Registry: reg, SalesAccuracy: salesAccuracy, Logger: logger}
}

// PredictSales runs the sales regressor on payload. Missing sales fields count as 0.
func (s *PredictionService) PredictSales(ctx context.Context, caller *entity.User, payload map[string]any) (*SalesPrediction, error) {
	y, _, err := s.run(ctx, caller, prediction.SlotSales, payload, false)
	if err != nil {
		return nil, err
	}
	return &SalesPrediction{Prediction: y, AccuracyPercentage: s.SalesAccuracy}, nil
}

// PredictMaintenance runs the failure classifier on payload and returns the
// label with the probability of failure.
func (s *PredictionService) PredictMaintenance(ctx context.Context, caller *entity.User, payload map[string]any) (*MaintenancePrediction, error) {
	label, p, err := s.run(ctx, caller, prediction.SlotMaintenance, payload, true)
	if err != nil {
		return nil, err
	}
	return &MaintenancePrediction{Prediction: int(label), Probability: p}, nil
}

// run gates on the caller, then on the slot, then shapes the payload.
func (s *PredictionService) run(_ context.Context, caller *entity.User, slot prediction.Slot, payload map[string]any, withProba bool) (float64, float64, error) {
	if caller == nil {
		s.observe(slot, "unauthenticated")
		return 0, 0, ErrUnauthenticated
	}
	model, ok := s.Registry.Get(slot)
	if !ok {
		s.observe(slot, "unavailable")
		return 0, 0, fmt.Errorf("%s %w", slot, ErrModelUnavailable)
	}

	schema := prediction.SchemaFor(slot)
	fields, err := prediction.FeaturesFromPayload(schema, payload)
	if err != nil {
		s.observe(slot, "invalid")
		return 0, 0, fmt.Errorf("%w: %w", ErrInvalidFeature, err)
	}
	vec := prediction.Normalize(schema, fields)

	y, err := model.Predict(vec)
	if err != nil {
		s.observe(slot, "error")
		return 0, 0, fmt.Errorf("%s prediction: %w", slot, err)
	}
	var p float64
	if withProba {
		clf, ok := model.(prediction.Classifier)
		if !ok {
			s.observe(slot, "error")
			return 0, 0, errors.New(string(slot) + " model does not report probabilities")
		}
		if p, err = clf.PredictProba(vec); err != nil {
			s.observe(slot, "error")
			return 0, 0, fmt.Errorf("%s probability: %w", slot, err)
		}
	}

	if !finite(y) || !finite(p) {
		s.observe(slot, "invalid")
		return 0, 0, fmt.Errorf("%s: %w", slot, ErrNonFiniteResult)
	}

	s.observe(slot, "ok")
	s.Logger.WithFields(logrus.Fields{"slot": slot, "user_id": caller.ID}).Debug("prediction served")
	return y, p, nil
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

func (s *PredictionService) observe(slot prediction.Slot, outcome string) {
	if s.Recorder != nil {
		s.Recorder.ObservePrediction(string(slot), outcome)
	}
}
