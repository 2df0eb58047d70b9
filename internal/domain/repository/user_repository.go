package repository

import (
	"context"
	"errors"

	"github.com/oksasatya/go-predictive-analytics/internal/domain/entity"
)

var (
	ErrUserNotFound   = errors.New("user not found")
	ErrDuplicateEmail = errors.New("email already registered")
)

// UserRepository defines the interface for user-related storage operations.
// Create must enforce email uniqueness atomically and return ErrDuplicateEmail
// without storing anything when the email is taken.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	UpdateProfile(ctx context.Context, id int64, fullName, company string) (*entity.User, error)
}
