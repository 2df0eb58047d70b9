// Package memory provides an in-process UserRepository for local runs and tests.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/oksasatya/go-predictive-analytics/internal/domain/entity"
	"github.com/oksasatya/go-predictive-analytics/internal/domain/repository"
)

type UserRepository struct {
	mu      sync.RWMutex
	nextID  int64
	byEmail map[string]*entity.User
}

func NewUserRepository() *UserRepository {
	return &UserRepository{byEmail: make(map[string]*entity.User)}
}

// Create checks and inserts under one lock so two registrations of the same
// email cannot both succeed.
func (r *UserRepository) Create(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byEmail[u.Email]; ok {
		return repository.ErrDuplicateEmail
	}
	r.nextID++
	now := time.Now().UTC()
	u.ID = r.nextID
	u.CreatedAt = now
	u.UpdatedAt = now

	stored := *u
	r.byEmail[u.Email] = &stored
	return nil
}

func (r *UserRepository) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byEmail[email]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *UserRepository) UpdateProfile(_ context.Context, id int64, fullName, company string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.byEmail {
		if u.ID != id {
			continue
		}
		u.FullName = fullName
		u.Company = company
		u.UpdatedAt = time.Now().UTC()
		cp := *u
		return &cp, nil
	}
	return nil, repository.ErrUserNotFound
}

// Delete removes a user. Only tests and tooling use it; the API never deletes accounts.
func (r *UserRepository) Delete(email string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.byEmail, email)
}

var _ repository.UserRepository = (*UserRepository)(nil)
