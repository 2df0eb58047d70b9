package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-predictive-analytics/internal/application"
	"github.com/oksasatya/go-predictive-analytics/pkg/response"
	"github.com/oksasatya/go-predictive-analytics/pkg/validation"
)

type AuthHandler struct {
	Users  *application.UserService
	Logger *logrus.Logger
}

func NewAuthHandler(users *application.UserService, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{Users: users, Logger: logger}
}

// tokenRequest follows the OAuth2 password grant: the username is the email.
type tokenRequest struct {
	Username string `form:"username" json:"username" binding:"required"`
	Password string `form:"password" json:"password" binding:"required"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Token exchanges credentials for a bearer token. Accepts form or JSON bodies.
func (h *AuthHandler) Token(c *gin.Context) {
	var req tokenRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeInvalidPayload, "invalid payload", validation.ToDetails(err))
		return
	}

	tok, err := h.Users.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		writeAppError(c, h.Logger, err)
		return
	}
	response.JSON(c, http.StatusOK, tokenResponse{AccessToken: tok.Token, TokenType: "bearer"})
}
