package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-predictive-analytics/internal/domain/entity"
	"github.com/oksasatya/go-predictive-analytics/internal/infrastructure/memory"
	"github.com/oksasatya/go-predictive-analytics/pkg/helpers"
)

var t0 = time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

func clockAt(t time.Time) func() time.Time { return func() time.Time { return t } }

type brokenRepo struct{ memory.UserRepository }

func (*brokenRepo) GetByEmail(context.Context, string) (*entity.User, error) {
	return nil, errors.New("connection refused")
}

func TestResolve_BeforeAndAfterExpiry(t *testing.T) {
	ctx := context.Background()
	users := memory.NewUserRepository()
	require.NoError(t, users.Create(ctx, &entity.User{Email: "u1@example.com", Password: "h"}))

	issuer := helpers.NewJWTManager("secret", 30*time.Minute).WithClock(clockAt(t0))
	tok, exp, err := issuer.Issue("u1@example.com")
	require.NoError(t, err)

	before := NewSessionResolver(issuer.WithClock(clockAt(exp.Add(-time.Second))), users)
	u, err := before.Resolve(ctx, tok)
	require.NoError(t, err)
	assert.Equal(t, "u1@example.com", u.Email)

	at := NewSessionResolver(issuer.WithClock(clockAt(exp)), users)
	_, err = at.Resolve(ctx, tok)
	assert.ErrorIs(t, err, ErrUnauthenticated)

	after := NewSessionResolver(issuer.WithClock(clockAt(exp.Add(time.Minute))), users)
	_, err = after.Resolve(ctx, tok)
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestResolve_Rejections(t *testing.T) {
	ctx := context.Background()
	users := memory.NewUserRepository()
	require.NoError(t, users.Create(ctx, &entity.User{Email: "u1@example.com", Password: "h"}))
	tokens := helpers.NewJWTManager("secret", time.Hour)
	r := NewSessionResolver(tokens, users)

	_, err := r.Resolve(ctx, "")
	assert.ErrorIs(t, err, ErrUnauthenticated)

	_, err = r.Resolve(ctx, "garbage")
	assert.ErrorIs(t, err, ErrUnauthenticated)

	foreign, _, err := helpers.NewJWTManager("other-secret", time.Hour).Issue("u1@example.com")
	require.NoError(t, err)
	_, err = r.Resolve(ctx, foreign)
	assert.ErrorIs(t, err, ErrUnauthenticated)

	ghost, _, err := tokens.Issue("deleted@example.com")
	require.NoError(t, err)
	_, err = r.Resolve(ctx, ghost)
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestResolve_StoreFailureIsNotUnauthenticated(t *testing.T) {
	tokens := helpers.NewJWTManager("secret", time.Hour)
	tok, _, err := tokens.Issue("u1@example.com")
	require.NoError(t, err)

	_, err = NewSessionResolver(tokens, &brokenRepo{}).Resolve(context.Background(), tok)
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrUnauthenticated))
}
