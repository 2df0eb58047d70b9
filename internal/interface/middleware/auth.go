package middleware

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-predictive-analytics/internal/application"
	"github.com/oksasatya/go-predictive-analytics/internal/domain/entity"
	"github.com/oksasatya/go-predictive-analytics/pkg/response"
)

const (
	CtxUserKey   = "user"
	CtxUserIDKey = "userID"
)

// SessionResolver maps a bearer token to the account it was issued for.
type SessionResolver interface {
	Resolve(ctx context.Context, token string) (*entity.User, error)
}

// Auth requires an "Authorization: Bearer <token>" header that resolves to
// an existing account. The account is stored under CtxUserKey.
func Auth(sessions SessionResolver, logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			response.Error(c, http.StatusUnauthorized, response.CodeUnauthenticated, "Not authenticated", nil)
			return
		}
		u, err := sessions.Resolve(c.Request.Context(), token)
		if err != nil {
			if errors.Is(err, application.ErrUnauthenticated) {
				response.Error(c, http.StatusUnauthorized, response.CodeUnauthenticated, "Could not validate credentials", nil)
				return
			}
			logger.WithError(err).WithField("request_id", c.GetString(CtxRequestIDKey)).Error("session lookup failed")
			response.Error(c, http.StatusInternalServerError, response.CodeInternal, "internal server error", nil)
			return
		}

		c.Set(CtxUserKey, u)
		c.Set(CtxUserIDKey, strconv.FormatInt(u.ID, 10))
		c.Next()
	}
}

// CurrentUser returns the account set by Auth, or nil.
func CurrentUser(c *gin.Context) *entity.User {
	v, ok := c.Get(CtxUserKey)
	if !ok {
		return nil
	}
	u, _ := v.(*entity.User)
	return u
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
