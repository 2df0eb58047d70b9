package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-predictive-analytics/internal/application"
	"github.com/oksasatya/go-predictive-analytics/internal/domain/prediction"
	"github.com/oksasatya/go-predictive-analytics/pkg/response"
)

// writeAppError maps application errors onto HTTP responses. Anything
// unrecognised is logged and reported as a bare 500.
func writeAppError(c *gin.Context, logger *logrus.Logger, err error) {
	switch {
	case errors.Is(err, application.ErrUnauthenticated):
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthenticated, "Could not validate credentials", nil)
	case errors.Is(err, application.ErrInvalidCredentials):
		response.Error(c, http.StatusUnauthorized, response.CodeInvalidCredentials, "Incorrect username or password", nil)
	case errors.Is(err, application.ErrDuplicateIdentity):
		response.Error(c, http.StatusBadRequest, response.CodeDuplicateIdentity, "Email already registered", nil)
	case errors.Is(err, application.ErrModelUnavailable):
		response.Error(c, http.StatusServiceUnavailable, response.CodeModelUnavailable, err.Error(), nil)
	case errors.Is(err, application.ErrInvalidFeature):
		details := map[string]string{"payload": err.Error()}
		var fe *prediction.InvalidFeatureError
		if errors.As(err, &fe) {
			details = map[string]string{fe.Field: "must be a number"}
		}
		response.Error(c, http.StatusBadRequest, response.CodeInvalidPayload, "invalid payload", details)
	case errors.Is(err, application.ErrNonFiniteResult):
		response.Error(c, http.StatusBadRequest, response.CodeInvalidPayload, "invalid payload",
			map[string]string{"payload": "feature values are out of range"})
	case errors.Is(err, application.ErrPasswordTooLong):
		response.Error(c, http.StatusBadRequest, response.CodeInvalidPayload, "invalid payload",
			map[string]string{"password": "must be at most 72 bytes"})
	default:
		logger.WithError(err).WithFields(logrus.Fields{
			"path":       c.FullPath(),
			"request_id": c.GetString("request_id"),
		}).Error("request failed")
		response.Error(c, http.StatusInternalServerError, response.CodeInternal, "internal server error", nil)
	}
}
