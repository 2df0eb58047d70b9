package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-predictive-analytics/internal/application"
	"github.com/oksasatya/go-predictive-analytics/internal/domain/entity"
	"github.com/oksasatya/go-predictive-analytics/internal/interface/middleware"
	"github.com/oksasatya/go-predictive-analytics/pkg/response"
	"github.com/oksasatya/go-predictive-analytics/pkg/validation"
)

type UserHandler struct {
	Users  *application.UserService
	Logger *logrus.Logger
}

func NewUserHandler(users *application.UserService, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Users: users, Logger: logger}
}

type registerRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	FullName string `json:"full_name"`
	Company  string `json:"company"`
}

// Both fields must be present; an explicit empty string is allowed.
type updateProfileRequest struct {
	FullName *string `json:"full_name" binding:"required"`
	Company  *string `json:"company" binding:"required"`
}

// userResponse is the public view of an account. The password hash never leaves the store.
type userResponse struct {
	ID       int64  `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Company  string `json:"company"`
}

func toUserResponse(u *entity.User) userResponse {
	return userResponse{ID: u.ID, Email: u.Email, FullName: u.FullName, Company: u.Company}
}

func (h *UserHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeInvalidPayload, "invalid payload", validation.ToDetails(err))
		return
	}

	u, err := h.Users.Register(c.Request.Context(), application.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		FullName: req.FullName,
		Company:  req.Company,
	})
	if err != nil {
		writeAppError(c, h.Logger, err)
		return
	}
	response.JSON(c, http.StatusOK, toUserResponse(u))
}

func (h *UserHandler) Me(c *gin.Context) {
	response.JSON(c, http.StatusOK, toUserResponse(middleware.CurrentUser(c)))
}

func (h *UserHandler) UpdateMe(c *gin.Context) {
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeInvalidPayload, "invalid payload", validation.ToDetails(err))
		return
	}

	u, err := h.Users.UpdateProfile(c.Request.Context(), middleware.CurrentUser(c), *req.FullName, *req.Company)
	if err != nil {
		writeAppError(c, h.Logger, err)
		return
	}
	response.JSON(c, http.StatusOK, toUserResponse(u))
}
