package response

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Stable error codes returned in ErrorBody.Code.
const (
	CodeUnauthenticated    = "unauthenticated"
	CodeInvalidCredentials = "invalid_credentials"
	CodeDuplicateIdentity  = "duplicate_identity"
	CodeModelUnavailable   = "model_unavailable"
	CodeServiceUnavailable = "service_unavailable"
	CodeUpstreamFailure    = "upstream_failure"
	CodeInvalidPayload     = "invalid_payload"
	CodeRateLimited        = "rate_limited"
	CodeInternal           = "internal"
)

// ErrorBody is the JSON shape of every failed request.
type ErrorBody struct {
	Status    int         `json:"status"`
	Code      string      `json:"code"`
	Detail    string      `json:"detail"`
	RequestID string      `json:"request_id,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	Errors    interface{} `json:"errors,omitempty"`
}

// JSON writes data as the response body. Success bodies carry the bare
// resource so clients see exactly the documented contract.
func JSON(ctx *gin.Context, status int, data interface{}) {
	if status == 0 {
		status = http.StatusOK
	}
	ctx.JSON(status, data)
}

// Error aborts the request chain and writes an ErrorBody.
func Error(ctx *gin.Context, status int, code, detail string, errs interface{}) ErrorBody {
	if status == 0 {
		status = http.StatusBadRequest
	}
	body := ErrorBody{
		Status:    status,
		Code:      code,
		Detail:    detail,
		RequestID: ctx.GetString("request_id"),
		Timestamp: time.Now().UTC(),
		Errors:    errs,
	}
	if status == http.StatusUnauthorized {
		ctx.Header("WWW-Authenticate", "Bearer")
	}
	ctx.AbortWithStatusJSON(status, body)
	return body
}
