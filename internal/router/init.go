package router

import (
	"net/http"

	"github.com/oksasatya/go-predictive-analytics/internal/application"
	"github.com/oksasatya/go-predictive-analytics/internal/container"
	"github.com/oksasatya/go-predictive-analytics/internal/infrastructure/search"
	handlers "github.com/oksasatya/go-predictive-analytics/internal/interface/http"
	"github.com/oksasatya/go-predictive-analytics/internal/interface/middleware"
	"github.com/oksasatya/go-predictive-analytics/internal/router/modules"
)

// Services are the application services built from a container.
type Services struct {
	Users       *application.UserService
	Sessions    *application.SessionResolver
	Predictions *application.PredictionService
}

// BuildServices wires application services to the container's backends.
// Optional collaborators are only set when their backend exists.
func BuildServices(c *container.Container) Services {
	users := application.NewUserService(c.Users, c.JWT, c.Logger)
	users.AppName = c.Config.AppName
	if idx := search.NewUserIndexer(c.ES, c.Config.ESUsersIndex); idx != nil {
		users.Indexer = idx
	}
	if c.Rabbit != nil {
		users.Mail = c.Rabbit
	}

	preds := application.NewPredictionService(c.Models, c.Config.SalesAccuracyPercentage, c.Logger)
	if c.Metrics != nil {
		preds.Recorder = c.Metrics
	}

	return Services{
		Users:       users,
		Sessions:    application.NewSessionResolver(c.JWT, c.Users),
		Predictions: preds,
	}
}

// InitModules builds handlers and registers every feature module. Call once at startup.
func InitModules(r *Registry, c *container.Container) {
	svc := BuildServices(c)
	cfg := c.Config

	guard := modules.Guard{
		Auth:            middleware.Auth(svc.Sessions, c.Logger),
		Redis:           c.Redis,
		Logger:          c.Logger,
		LoginPerMin:     cfg.RateLimitLogin,
		RegisterPerMin:  cfg.RateLimitRegister,
		ProtectedPerMin: cfg.RateLimitProtected,
	}

	var chat handlers.TextGenerator
	if c.TextGen != nil {
		chat = c.TextGen
	}
	var metricsHandler http.Handler
	if c.Metrics != nil {
		metricsHandler = c.Metrics.Handler()
	}

	r.Add(
		modules.NewSystemModule(handlers.NewSystemHandler(c.Models), metricsHandler, guard),
		modules.NewAuthModule(handlers.NewAuthHandler(svc.Users, c.Logger), guard),
		modules.NewUserModule(handlers.NewUserHandler(svc.Users, c.Logger), guard),
		modules.NewPredictionModule(handlers.NewPredictionHandler(svc.Predictions, c.Logger), guard),
		modules.NewChatModule(handlers.NewChatHandler(chat, c.Logger), guard),
	)
}
