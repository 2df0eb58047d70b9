package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/go-predictive-analytics/internal/interface/http"
)

type ChatModule struct {
	Handler *handlers.ChatHandler
	Guard   Guard
}

func NewChatModule(h *handlers.ChatHandler, g Guard) *ChatModule {
	return &ChatModule{Handler: h, Guard: g}
}

func (m *ChatModule) Register(rg *gin.RouterGroup) {
	m.Guard.protected(rg).POST("/chat", m.Handler.Chat)
}
