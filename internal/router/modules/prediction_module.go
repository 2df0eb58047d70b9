package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/go-predictive-analytics/internal/interface/http"
)

type PredictionModule struct {
	Handler *handlers.PredictionHandler
	Guard   Guard
}

func NewPredictionModule(h *handlers.PredictionHandler, g Guard) *PredictionModule {
	return &PredictionModule{Handler: h, Guard: g}
}

func (m *PredictionModule) Register(rg *gin.RouterGroup) {
	auth := m.Guard.protected(rg)
	{
		auth.POST("/predict/sales", m.Handler.Sales)
		auth.POST("/predict/maintenance", m.Handler.Maintenance)
	}
}
