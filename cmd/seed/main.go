package main

import (
	"context"
	"errors"
	"log"

	"github.com/joho/godotenv"

	"github.com/oksasatya/go-predictive-analytics/config"
	"github.com/oksasatya/go-predictive-analytics/internal/application"
	"github.com/oksasatya/go-predictive-analytics/internal/container"
	"github.com/oksasatya/go-predictive-analytics/pkg/helpers"
)

const (
	demoEmail    = "admin@admintest.test"
	demoPassword = "test010101"
	demoName     = "Admin Test"
	demoCompany  = "Test Inc."
)

// seed creates the demo account. Running it twice reports the existing account.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName, cfg.Env)
	ctx := context.Background()

	users, closeUsers, err := container.OpenUserStore(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("open user store: %v", err)
	}
	defer closeUsers()

	svc := application.NewUserService(users, helpers.NewJWTManager(cfg.JWTSecret, cfg.AccessTTL), logger)
	u, err := svc.Register(ctx, application.RegisterInput{
		Email:    demoEmail,
		Password: demoPassword,
		FullName: demoName,
		Company:  demoCompany,
	})
	switch {
	case errors.Is(err, application.ErrDuplicateIdentity):
		logger.WithField("email", demoEmail).Info("demo user already exists")
	case err != nil:
		log.Fatalf("seed demo user: %v", err)
	default:
		logger.WithField("user_id", u.ID).WithField("email", u.Email).Info("demo user created")
	}
}
