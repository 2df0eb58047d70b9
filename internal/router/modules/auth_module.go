package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/go-predictive-analytics/internal/interface/http"
	"github.com/oksasatya/go-predictive-analytics/internal/interface/middleware"
)

// AuthModule: POST /token
type AuthModule struct {
	Handler *handlers.AuthHandler
	Guard   Guard
}

func NewAuthModule(h *handlers.AuthHandler, g Guard) *AuthModule {
	return &AuthModule{Handler: h, Guard: g}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	rg.POST("/token", m.Guard.limit(m.Guard.LoginPerMin, middleware.KeyByIP(), nil), m.Handler.Token)
}
