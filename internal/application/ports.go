package application

import (
	"context"
	"time"

	"github.com/oksasatya/go-predictive-analytics/internal/domain/entity"
)

// TokenService issues and verifies bearer tokens. The signing algorithm,
// secret and lifetime stay behind this interface.
type TokenService interface {
	Issue(subject string) (token string, expiresAt time.Time, err error)
	Verify(token string) (subject string, err error)
}

// ProfileIndexer mirrors user profiles into a search index.
type ProfileIndexer interface {
	IndexUser(ctx context.Context, u *entity.User) error
}

// JobPublisher enqueues background jobs as JSON.
type JobPublisher interface {
	PublishJSON(ctx context.Context, body any) error
}

// PredictionRecorder counts prediction outcomes per slot.
type PredictionRecorder interface {
	ObservePrediction(slot, outcome string)
}
