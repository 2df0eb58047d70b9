package modules

import (
	"net/http"

	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/go-predictive-analytics/internal/interface/http"
	"github.com/oksasatya/go-predictive-analytics/internal/interface/middleware"
)

// SystemModule serves GET /, GET /healthz and, when Metrics is set, GET /metrics.
type SystemModule struct {
	Handler *handlers.SystemHandler
	Metrics http.Handler
	Guard   Guard
}

func NewSystemModule(h *handlers.SystemHandler, metrics http.Handler, g Guard) *SystemModule {
	return &SystemModule{Handler: h, Metrics: metrics, Guard: g}
}

func (m *SystemModule) Register(rg *gin.RouterGroup) {
	rg.GET("/", m.Handler.Root)
	rg.GET("/healthz", m.Handler.Health)
	if m.Metrics != nil {
		// scrapers on private networks are not limited
		rl := m.Guard.limit(m.Guard.ProtectedPerMin, middleware.KeyByIP(), middleware.AllowPrivateIP())
		rg.GET("/metrics", rl, gin.WrapH(m.Metrics))
	}
}
