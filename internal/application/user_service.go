package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-predictive-analytics/internal/domain/entity"
	repo "github.com/oksasatya/go-predictive-analytics/internal/domain/repository"
	"github.com/oksasatya/go-predictive-analytics/pkg/helpers"
	"github.com/oksasatya/go-predictive-analytics/pkg/mailer"
)

type UserService struct {
	Repo    repo.UserRepository
	Tokens  TokenService
	Logger  *logrus.Logger
	Indexer ProfileIndexer // optional
	Mail    JobPublisher   // optional; welcome email on registration
	AppName string
}

func NewUserService(repo repo.UserRepository, tokens TokenService, logger *logrus.Logger) *UserService {
	if logger == nil {
		logger = helpers.NewDiscardLogger()
	}
	return &UserService{Repo: repo, Tokens: tokens, Logger: logger}
}

type RegisterInput struct {
	Email    string
	Password string
	FullName string
	Company  string
}

// AccessToken is the result of a successful login.
type AccessToken struct {
	Token     string
	ExpiresAt time.Time
}

// Register hashes the password and creates the account. A taken email
// yields ErrDuplicateIdentity and leaves the existing record untouched.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*entity.User, error) {
	hash, err := helpers.HashPassword(in.Password)
	if err != nil {
		if errors.Is(err, helpers.ErrPasswordTooLong) {
			return nil, ErrPasswordTooLong
		}
		return nil, fmt.Errorf("hash password: %w", err)
	}
	u := &entity.User{
		Email:    in.Email,
		Password: hash,
		FullName: in.FullName,
		Company:  in.Company,
	}
	if err := s.Repo.Create(ctx, u); err != nil {
		if errors.Is(err, repo.ErrDuplicateEmail) {
			return nil, ErrDuplicateIdentity
		}
		return nil, err
	}
	s.Logger.WithField("user_id", u.ID).Info("user registered")

	s.index(ctx, u)
	if s.Mail != nil {
		if err := s.Mail.PublishJSON(ctx, mailer.WelcomeJob(s.AppName, u.Email, u.FullName)); err != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Warn("welcome email not enqueued")
		}
	}
	return u, nil
}

// Authenticate validates email/password and returns the user without issuing tokens.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*entity.User, error) {
	u, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrUserNotFound) {
			helpers.CompareDummy(password)
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !helpers.CompareHashAndPassword(u.Password, password) {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

// Login authenticates and issues a bearer token whose subject is the email.
func (s *UserService) Login(ctx context.Context, email, password string) (AccessToken, error) {
	u, err := s.Authenticate(ctx, email, password)
	if err != nil {
		return AccessToken{}, err
	}
	tok, exp, err := s.Tokens.Issue(u.Email)
	if err != nil {
		s.Logger.WithError(err).WithField("user_id", u.ID).Error("issue access token failed")
		return AccessToken{}, err
	}
	return AccessToken{Token: tok, ExpiresAt: exp}, nil
}

// UpdateProfile sets full name and company; email and password are not reachable from here.
func (s *UserService) UpdateProfile(ctx context.Context, u *entity.User, fullName, company string) (*entity.User, error) {
	updated, err := s.Repo.UpdateProfile(ctx, u.ID, fullName, company)
	if err != nil {
		if errors.Is(err, repo.ErrUserNotFound) {
			return nil, ErrUnauthenticated
		}
		return nil, err
	}
	s.index(ctx, updated)
	return updated, nil
}

func (s *UserService) index(ctx context.Context, u *entity.User) {
	if s.Indexer == nil {
		return
	}
	if err := s.Indexer.IndexUser(ctx, u); err != nil {
		s.Logger.WithError(err).WithField("user_id", u.ID).Warn("es index failed")
	}
}
