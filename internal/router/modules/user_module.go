package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/go-predictive-analytics/internal/interface/http"
	"github.com/oksasatya/go-predictive-analytics/internal/interface/middleware"
)

// UserModule wires account routes.
// Public: POST /users/
// Protected: GET /users/me/, PUT /users/me/
type UserModule struct {
	Handler *handlers.UserHandler
	Guard   Guard
}

func NewUserModule(h *handlers.UserHandler, g Guard) *UserModule {
	return &UserModule{Handler: h, Guard: g}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	rg.POST("/users/", m.Guard.limit(m.Guard.RegisterPerMin, middleware.KeyByIP(), nil), m.Handler.Register)

	auth := m.Guard.protected(rg)
	{
		auth.GET("/users/me/", m.Handler.Me)
		auth.PUT("/users/me/", m.Handler.UpdateMe)
	}
}
