package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-predictive-analytics/internal/interface/middleware"
)

// Guard carries the session gate and per-minute limits shared by modules.
// A nil Redis disables every limiter.
type Guard struct {
	Auth   gin.HandlerFunc
	Redis  *redis.Client
	Logger *logrus.Logger

	LoginPerMin     int
	RegisterPerMin  int
	ProtectedPerMin int
}

func (g Guard) limit(max int, key middleware.KeyFunc, allow middleware.AllowFunc) gin.HandlerFunc {
	return middleware.RateLimit(g.Redis, g.Logger, max, time.Minute, key, allow)
}

// protected opens a group behind the session gate, limited per account.
func (g Guard) protected(rg *gin.RouterGroup) *gin.RouterGroup {
	auth := rg.Group("/")
	auth.Use(g.Auth, g.limit(g.ProtectedPerMin, middleware.KeyByUserID(), nil))
	return auth
}
