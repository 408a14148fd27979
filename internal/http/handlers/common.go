package handlers

import (
	"net/http"

	"smartride-backend/internal/config"
	"smartride-backend/internal/domain"
	"smartride-backend/internal/http/middleware"
	"smartride-backend/internal/metrics"

	"github.com/gin-gonic/gin"
)

var (
	jwtSecret  []byte
	appMetrics *metrics.Metrics
)

// Configure wires the handler package to runtime configuration. Called once
// from the router before any request is served.
func Configure(env config.Env, m *metrics.Metrics) {
	jwtSecret = []byte(env.JWTSecret)
	appMetrics = m
}

// Response is the uniform API envelope.
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

func RespondOK(c *gin.Context, status int, message string, data any) {
	c.JSON(status, Response{Success: true, Message: message, Data: data})
}

func RespondFail(c *gin.Context, status int, message string) {
	c.JSON(status, Response{Success: false, Message: message})
}

// RespondDomainError maps domain errors to HTTP responses. Internal detail
// never crosses the boundary.
func RespondDomainError(c *gin.Context, err error) {
	switch {
	case domain.IsValidation(err):
		RespondFail(c, http.StatusBadRequest, err.Error())
	case domain.IsNotFound(err):
		RespondFail(c, http.StatusNotFound, err.Error())
	case domain.IsConflict(err):
		RespondFail(c, http.StatusConflict, err.Error())
	case domain.IsForbidden(err):
		RespondFail(c, http.StatusForbidden, err.Error())
	default:
		RespondFail(c, http.StatusInternalServerError, "something went wrong")
	}
}

// BindJSONOrError ensures body is present and parsable.
func BindJSONOrError[T any](c *gin.Context, dst *T) bool {
	if c.Request.Body == nil {
		RespondFail(c, http.StatusBadRequest, "empty request body")
		return false
	}
	if err := c.ShouldBindJSON(dst); err != nil {
		RespondFail(c, http.StatusBadRequest, "invalid payload")
		return false
	}
	return true
}

func requestID(c *gin.Context) string {
	return middleware.GetRequestID(c)
}
