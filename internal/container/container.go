// Package container builds the shared infrastructure once at startup and
// hands it to the router. Optional backends are nil when not configured.
package container

import (
	"context"
	"fmt"

	"cloud.google.com/go/storage"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-predictive-analytics/config"
	"github.com/oksasatya/go-predictive-analytics/internal/domain/prediction"
	"github.com/oksasatya/go-predictive-analytics/internal/domain/repository"
	"github.com/oksasatya/go-predictive-analytics/internal/infrastructure/memory"
	"github.com/oksasatya/go-predictive-analytics/internal/infrastructure/metrics"
	"github.com/oksasatya/go-predictive-analytics/internal/infrastructure/modelstore"
	pginfra "github.com/oksasatya/go-predictive-analytics/internal/infrastructure/postgres"
	"github.com/oksasatya/go-predictive-analytics/internal/infrastructure/textgen"
	"github.com/oksasatya/go-predictive-analytics/pkg/helpers"
)

type Container struct {
	Config *config.Config
	Logger *logrus.Logger

	Users   repository.UserRepository
	JWT     *helpers.JWTManager
	Models  *prediction.Registry
	Redis   *redis.Client
	GCS     *storage.Client
	ES      *elasticsearch.Client
	Rabbit  *helpers.RabbitPublisher
	TextGen *textgen.GeminiClient
	Metrics *metrics.Metrics

	closers []func()
}

// Build connects every configured backend and loads the model registry.
// Required backends (the user store) fail the build; optional ones are
// logged and left nil.
func Build(ctx context.Context, cfg *config.Config, logger *logrus.Logger) (*Container, error) {
	c := &Container{
		Config: cfg,
		Logger: logger,
		JWT:    helpers.NewJWTManager(cfg.JWTSecret, cfg.AccessTTL),
	}

	users, closeUsers, err := OpenUserStore(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	c.Users = users
	c.onClose(closeUsers)

	if c.Redis = helpers.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB); c.Redis != nil {
		c.onClose(func() { _ = c.Redis.Close() })
	}

	if cfg.MetricsEnabled {
		c.Metrics = metrics.New()
	}

	c.Models, err = c.loadModels(ctx)
	if err != nil {
		c.Close()
		return nil, err
	}

	es, err := helpers.NewESClient(ctx, cfg.ESAddrs(), cfg.ElasticsearchUser, cfg.ElasticsearchPass)
	if err != nil {
		logger.WithError(err).Warn("elasticsearch disabled")
	}
	c.ES = es

	if cfg.MailSendEnabled {
		pub, err := helpers.NewRabbitPublisher(cfg.RabbitMQURL, cfg.RabbitMQEmailQueue)
		if err != nil {
			logger.WithError(err).Warn("rabbitmq unavailable, welcome emails disabled")
		} else {
			c.Rabbit = pub
			c.onClose(pub.Close)
		}
	}

	if cfg.GeminiAPIKey != "" {
		gen, err := textgen.NewGeminiClient(ctx, cfg.GeminiBaseURL, cfg.GeminiAPIKey, cfg.GeminiModel, cfg.ChatTimeout)
		if err != nil {
			logger.WithError(err).Warn("text generation unavailable, /chat disabled")
		} else {
			c.TextGen = gen
		}
	} else {
		logger.Info("GEMINI_API_KEY not set, /chat disabled")
	}
	return c, nil
}

// OpenUserStore returns the credential store selected by USER_STORE plus
// a func releasing it. The postgres store is migrated before use.
func OpenUserStore(ctx context.Context, cfg *config.Config, logger *logrus.Logger) (repository.UserRepository, func(), error) {
	switch cfg.UserStore {
	case "memory":
		logger.Warn("using in-memory user store, accounts are lost on restart")
		return memory.NewUserRepository(), func() {}, nil
	case "postgres", "":
		pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), pginfra.PoolOptions{
			MaxConns:        cfg.DBMaxConns,
			MinConns:        cfg.DBMinConns,
			MaxConnLifetime: cfg.DBMaxConnLife,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("connect postgres: %w", err)
		}
		if err := pginfra.Migrate(cfg.PostgresDSN(), cfg.MigrationsDir, logger); err != nil {
			pool.Close()
			return nil, nil, err
		}
		return pginfra.NewUserRepository(pool), pool.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown USER_STORE %q", cfg.UserStore)
	}
}

func (c *Container) loadModels(ctx context.Context) (*prediction.Registry, error) {
	var src modelstore.Source = modelstore.DirSource{Dir: c.Config.ModelsDir}
	if c.Config.ModelsGCSBucket != "" {
		gcs, err := helpers.NewGCSClient(ctx, c.Config.GCSCredentialsJSON)
		if err != nil {
			return nil, fmt.Errorf("gcs client: %w", err)
		}
		c.GCS = gcs
		c.onClose(func() { _ = gcs.Close() })
		src = modelstore.GCSSource{Client: gcs, Bucket: c.Config.ModelsGCSBucket, Prefix: c.Config.ModelsGCSPrefix}
	}

	reg := modelstore.Load(ctx, src, map[prediction.Slot]string{
		prediction.SlotSales:       c.Config.ModelSalesFile,
		prediction.SlotMaintenance: c.Config.ModelMaintenanceFile,
	}, c.Logger)
	for slot, ok := range reg.Available() {
		c.Metrics.SetModelLoaded(string(slot), ok)
	}
	return reg, nil
}

func (c *Container) onClose(fn func()) { c.closers = append(c.closers, fn) }

// Close releases backends in reverse order of acquisition.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
	c.closers = nil
}
