package api

import (
	"errors"
	"net/http"

	"useradmin/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Transport-level error codes. Domain codes come from the service layer.
const (
	ErrCodeInvalidRequest = "ERR_INVALID_REQUEST"
	ErrCodeUnauthorized   = "UNAUTHENTICATED"
	ErrCodeTokenExpired   = "TOKEN_EXPIRED"
	ErrCodeTokenInvalid   = "TOKEN_INVALID"
	ErrCodeForbidden      = "FORBIDDEN"
	ErrCodeNotFound       = "ERR_NOT_FOUND"
	ErrCodeInternalError  = "ERR_INTERNAL_ERROR"
)

// APIError is the uniform error response body.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse writes a uniform error response.
func ErrorResponse(c *gin.Context, status int, code string, message string) {
	c.JSON(status, APIError{
		Code:    code,
		Message: message,
	})
}

// BadRequest writes a 400 response.
func BadRequest(c *gin.Context, code string, message string) {
	ErrorResponse(c, http.StatusBadRequest, code, message)
}

// Unauthorized writes a 401 response.
func Unauthorized(c *gin.Context, code string, message string) {
	ErrorResponse(c, http.StatusUnauthorized, code, message)
}

// Forbidden writes a 403 response.
func Forbidden(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusForbidden, ErrCodeForbidden, message)
}

// InternalError writes a 500 response.
func InternalError(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusInternalServerError, ErrCodeInternalError, message)
}

// InvalidPayload writes a 400 response for malformed request bodies.
func InvalidPayload(c *gin.Context) {
	ErrorResponse(c, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid request payload")
}

// RespondServiceError maps a service error to its HTTP status. Unrecognised
// errors are logged and surfaced as a generic 500 with no internal detail.
func RespondServiceError(c *gin.Context, err error, logMessage string) {
	var domainErr *service.DomainError
	if errors.As(err, &domainErr) {
		ErrorResponse(c, statusForCode(domainErr.Code), string(domainErr.Code), domainErr.Message)
		return
	}
	logrus.WithError(err).Error(logMessage)
	InternalError(c, "internal server error")
}

func statusForCode(code service.ErrorCode) int {
	switch code {
	case service.CodeEmailTaken:
		return http.StatusBadRequest
	case service.CodeInvalidCredentials:
		return http.StatusUnauthorized
	case service.CodeUserNotFound, service.CodeRoleNotFound:
		return http.StatusNotFound
	case service.CodeRoleNameTaken, service.CodeRoleInUse:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
