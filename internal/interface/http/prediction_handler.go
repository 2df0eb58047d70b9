package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-predictive-analytics/internal/application"
	"github.com/oksasatya/go-predictive-analytics/internal/domain/entity"
	"github.com/oksasatya/go-predictive-analytics/internal/domain/prediction"
	"github.com/oksasatya/go-predictive-analytics/internal/interface/middleware"
	"github.com/oksasatya/go-predictive-analytics/pkg/response"
	"github.com/oksasatya/go-predictive-analytics/pkg/validation"
)

type PredictionHandler struct {
	Svc    *application.PredictionService
	Logger *logrus.Logger
}

func NewPredictionHandler(svc *application.PredictionService, logger *logrus.Logger) *PredictionHandler {
	return &PredictionHandler{Svc: svc, Logger: logger}
}

type predictFunc func(ctx context.Context, caller *entity.User, payload map[string]any) (any, error)

func (h *PredictionHandler) Sales(c *gin.Context) {
	h.serve(c, prediction.SlotSales, func(ctx context.Context, u *entity.User, p map[string]any) (any, error) {
		return h.Svc.PredictSales(ctx, u, p)
	})
}

func (h *PredictionHandler) Maintenance(c *gin.Context) {
	h.serve(c, prediction.SlotMaintenance, func(ctx context.Context, u *entity.User, p map[string]any) (any, error) {
		return h.Svc.PredictMaintenance(ctx, u, p)
	})
}

// serve decodes the body as a loose JSON object; an empty body is an empty
// payload. A body that is not an object only matters once the slot is known
// to be loaded, so an empty slot answers 503 whatever was sent.
func (h *PredictionHandler) serve(c *gin.Context, slot prediction.Slot, predict predictFunc) {
	payload := map[string]any{}
	if err := c.ShouldBindJSON(&payload); err != nil && !errors.Is(err, io.EOF) {
		if _, loaded := h.Svc.Registry.Get(slot); loaded {
			response.Error(c, http.StatusBadRequest, response.CodeInvalidPayload, "invalid payload", validation.ToDetails(err))
			return
		}
		payload = nil
	}

	res, err := predict(c.Request.Context(), middleware.CurrentUser(c), payload)
	if err != nil {
		writeAppError(c, h.Logger, err)
		return
	}
	response.JSON(c, http.StatusOK, res)
}
