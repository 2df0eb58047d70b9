package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-predictive-analytics/internal/domain/entity"
	"github.com/oksasatya/go-predictive-analytics/internal/domain/prediction"
	"github.com/oksasatya/go-predictive-analytics/pkg/helpers"
)

type recordingModel struct {
	got []float64
	out float64
}

func (m *recordingModel) Predict(x []float64) (float64, error) {
	m.got = append([]float64(nil), x...)
	return m.out, nil
}

type outcomes map[string]int

func (o outcomes) ObservePrediction(slot, outcome string) { o[slot+"/"+outcome]++ }

var caller = &entity.User{ID: 1, Email: "u1@example.com"}

func TestPredictSales_NormalizesPartialPayload(t *testing.T) {
	model := &recordingModel{out: 1234.5}
	rec := outcomes{}
	svc := NewPredictionService(prediction.NewRegistry(map[prediction.Slot]prediction.Model{prediction.SlotSales: model}), DefaultSalesAccuracy, helpers.NewDiscardLogger())
	svc.Recorder = rec

	res, err := svc.PredictSales(context.Background(), caller, map[string]any{"Temperature": 70.0, "Customers": 120.0, "Unknown": "x"})
	require.NoError(t, err)

	assert.Equal(t, []float64{70, 120, 0, 0, 0, 0, 0, 0, 0, 0}, model.got)
	assert.Equal(t, 1234.5, res.Prediction)
	assert.Equal(t, 87.50, res.AccuracyPercentage)
	assert.Equal(t, 1, rec["sales/ok"])
}

func TestPredictSales_EmptySlot(t *testing.T) {
	rec := outcomes{}
	svc := NewPredictionService(prediction.NewRegistry(nil), DefaultSalesAccuracy, helpers.NewDiscardLogger())
	svc.Recorder = rec

	for _, payload := range []map[string]any{
		{"Temperature": 70.0, "Customers": 120.0},
		{"Temperature": "hot"},
		nil,
	} {
		_, err := svc.PredictSales(context.Background(), caller, payload)
		assert.ErrorIs(t, err, ErrModelUnavailable)
	}
	assert.Equal(t, 3, rec["sales/unavailable"])
}

func TestPredict_RequiresCaller(t *testing.T) {
	svc := NewPredictionService(prediction.NewRegistry(nil), DefaultSalesAccuracy, helpers.NewDiscardLogger())

	_, err := svc.PredictSales(context.Background(), nil, nil)
	assert.ErrorIs(t, err, ErrUnauthenticated)
	_, err = svc.PredictMaintenance(context.Background(), nil, nil)
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestPredictMaintenance(t *testing.T) {
	clf := &prediction.LogisticRegression{Coefficients: []float64{0, 0, 0, 0, 0, 1}, Intercept: -2, Threshold: 0.5}
	svc := NewPredictionService(prediction.NewRegistry(map[prediction.Slot]prediction.Model{prediction.SlotMaintenance: clf}), DefaultSalesAccuracy, helpers.NewDiscardLogger())

	res, err := svc.PredictMaintenance(context.Background(), caller, map[string]any{"Vibration": 6.0, "Sensor1": 0.2})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Prediction)
	assert.Greater(t, res.Probability, 0.9)

	res, err = svc.PredictMaintenance(context.Background(), caller, map[string]any{})
	require.NoError(t, err)
	assert.Equal(t, 0, res.Prediction)
	assert.Less(t, res.Probability, 0.5)

	_, err = svc.PredictMaintenance(context.Background(), caller, map[string]any{"Pressure": []any{1.0}})
	assert.ErrorIs(t, err, ErrInvalidFeature)
}

func TestPredictMaintenance_NonProbabilisticModel(t *testing.T) {
	svc := NewPredictionService(prediction.NewRegistry(map[prediction.Slot]prediction.Model{
		prediction.SlotMaintenance: &recordingModel{out: 1},
	}), DefaultSalesAccuracy, helpers.NewDiscardLogger())

	_, err := svc.PredictMaintenance(context.Background(), caller, nil)
	assert.Error(t, err)
}

func TestPredictSales_OverflowIsRejected(t *testing.T) {
	sales := &prediction.LinearRegression{Coefficients: []float64{1, 2, 0, 0, 0, 0, 0, 0, 0, 0}, Intercept: 10}
	rec := outcomes{}
	svc := NewPredictionService(prediction.NewRegistry(map[prediction.Slot]prediction.Model{prediction.SlotSales: sales}), DefaultSalesAccuracy, helpers.NewDiscardLogger())
	svc.Recorder = rec

	_, err := svc.PredictSales(context.Background(), caller, map[string]any{"Temperature": 1e308, "Customers": 1e308})
	assert.ErrorIs(t, err, ErrNonFiniteResult)
	assert.Equal(t, 1, rec["sales/invalid"])
	assert.Zero(t, rec["sales/ok"])
}

func TestNewPredictionService_NilLogger(t *testing.T) {
	svc := NewPredictionService(prediction.NewRegistry(map[prediction.Slot]prediction.Model{prediction.SlotSales: &recordingModel{out: 1}}), DefaultSalesAccuracy, nil)

	require.NotNil(t, svc.Logger)
	res, err := svc.PredictSales(context.Background(), caller, nil)
	require.NoError(t, err)
	assert.Equal(t, 1.0, res.Prediction)
}
