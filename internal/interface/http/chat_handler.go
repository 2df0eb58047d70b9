package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-predictive-analytics/pkg/response"
	"github.com/oksasatya/go-predictive-analytics/pkg/validation"
)

// TextGenerator produces a reply for a free-form prompt.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

type ChatHandler struct {
	Gen    TextGenerator // nil when no API key is configured
	Logger *logrus.Logger
}

func NewChatHandler(gen TextGenerator, logger *logrus.Logger) *ChatHandler {
	return &ChatHandler{Gen: gen, Logger: logger}
}

type chatRequest struct {
	Prompt string `json:"prompt" binding:"required"`
}

type chatResponse struct {
	Response string `json:"response"`
}

func (h *ChatHandler) Chat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeInvalidPayload, "invalid payload", validation.ToDetails(err))
		return
	}
	if h.Gen == nil {
		response.Error(c, http.StatusServiceUnavailable, response.CodeServiceUnavailable, "chat is not configured", nil)
		return
	}

	text, err := h.Gen.Generate(c.Request.Context(), req.Prompt)
	if err != nil {
		h.Logger.WithError(err).WithField("request_id", c.GetString("request_id")).Warn("chat generation failed")
		response.Error(c, http.StatusBadGateway, response.CodeUpstreamFailure, "text generation failed", nil)
		return
	}
	response.JSON(c, http.StatusOK, chatResponse{Response: text})
}
