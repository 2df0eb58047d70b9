package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-predictive-analytics/internal/domain/prediction"
	"github.com/oksasatya/go-predictive-analytics/pkg/response"
)

// SystemHandler serves the public landing and health endpoints.
type SystemHandler struct {
	Registry *prediction.Registry
}

func NewSystemHandler(reg *prediction.Registry) *SystemHandler {
	return &SystemHandler{Registry: reg}
}

func (h *SystemHandler) Root(c *gin.Context) {
	response.JSON(c, http.StatusOK, gin.H{"message": "Welcome to the Predictive Analytics API"})
}

// Health reports liveness plus which model slots are loaded. Empty slots do
// not make the service unhealthy.
func (h *SystemHandler) Health(c *gin.Context) {
	models := map[string]bool{}
	for slot, ok := range h.Registry.Available() {
		models[string(slot)] = ok
	}
	response.JSON(c, http.StatusOK, gin.H{"status": "ok", "models": models})
}
