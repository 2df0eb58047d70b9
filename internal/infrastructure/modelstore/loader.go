package modelstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-predictive-analytics/internal/domain/prediction"
)

// Load tries every slot listed in files independently and returns the
// resulting registry. A slot whose artifact is missing or invalid is left
// empty and logged; Load itself never fails.
func Load(ctx context.Context, src Source, files map[prediction.Slot]string, logger *logrus.Logger) *prediction.Registry {
	models := make(map[prediction.Slot]prediction.Model, len(files))
	for _, slot := range prediction.Slots {
		name, ok := files[slot]
		if !ok || name == "" {
			continue
		}
		log := logger.WithFields(logrus.Fields{"slot": slot, "artifact": src.Location(name)})

		m, err := loadOne(ctx, src, slot, name)
		switch {
		case err == nil:
			models[slot] = m
			log.Info("model loaded")
		case errors.Is(err, ErrArtifactNotFound):
			log.Warn("model artifact not found; slot left empty")
		default:
			log.WithError(err).Error("model artifact could not be loaded; slot left empty")
		}
	}
	return prediction.NewRegistry(models)
}

func loadOne(ctx context.Context, src Source, slot prediction.Slot, name string) (prediction.Model, error) {
	rc, err := src.Open(ctx, name)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rc.Close() }()

	m, err := prediction.DecodeArtifact(slot, rc)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", name, err)
	}
	return m, nil
}
