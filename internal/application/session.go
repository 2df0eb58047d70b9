package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/oksasatya/go-predictive-analytics/internal/domain/entity"
	repo "github.com/oksasatya/go-predictive-analytics/internal/domain/repository"
)

// SessionResolver turns a bearer token into the user it was issued for.
type SessionResolver struct {
	Tokens TokenService
	Users  repo.UserRepository
}

func NewSessionResolver(tokens TokenService, users repo.UserRepository) *SessionResolver {
	return &SessionResolver{Tokens: tokens, Users: users}
}

// Resolve fails with ErrUnauthenticated when the token does not verify or
// its subject no longer matches a user. Store failures are returned wrapped.
func (r *SessionResolver) Resolve(ctx context.Context, token string) (*entity.User, error) {
	if token == "" {
		return nil, ErrUnauthenticated
	}
	email, err := r.Tokens.Verify(token)
	if err != nil {
		return nil, ErrUnauthenticated
	}
	u, err := r.Users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrUserNotFound) {
			return nil, ErrUnauthenticated
		}
		return nil, fmt.Errorf("resolve session: %w", err)
	}
	return u, nil
}
