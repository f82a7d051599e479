package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/spendwise_client/internal/apperrors"
	"github.com/SscSPs/spendwise_client/internal/core/cache"
	"github.com/SscSPs/spendwise_client/internal/core/services"
	"github.com/SscSPs/spendwise_client/internal/dto"
	"github.com/SscSPs/spendwise_client/internal/middleware"
	"github.com/gin-gonic/gin"
)

// statusFor maps a service error to an HTTP status. The order matters: a committed mutation whose refresh
// failed matches ErrNetworkFailure but still succeeded.
func statusFor(err error) int {
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperrors.ErrInvalidCredentials),
		errors.Is(err, apperrors.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, apperrors.ErrInvalidCode),
		errors.Is(err, apperrors.ErrFactorMismatch):
		return http.StatusUnprocessableEntity
	case errors.Is(err, apperrors.ErrTokenExpired):
		return http.StatusGone
	case errors.Is(err, apperrors.ErrSuperseded):
		return http.StatusConflict
	case errors.Is(err, apperrors.ErrNetworkFailure):
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

// respondError writes err as an ErrorResponse. Unclassified errors are logged and replaced by fallback.
func respondError(c *gin.Context, err error, fallback string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	status := statusFor(err)

	msg := err.Error()
	switch {
	case status == http.StatusInternalServerError:
		logger.Error(fallback, slog.String("error", err.Error()))
		msg = fallback
	case status == http.StatusBadGateway:
		logger.Warn(fallback, slog.String("error", err.Error()))
		msg = "The service is unreachable right now. Please try again."
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		msg = apperrors.ErrInvalidCredentials.Error()
	default:
		logger.Info("Request rejected", slog.Int("status", status), slog.String("error", err.Error()))
	}
	c.JSON(status, dto.ErrorResponse{Error: msg, Retryable: apperrors.Retryable(err)})
}

// committed reports whether err is a mutation that succeeded remotely but left some queries stale.
func committed(c *gin.Context, err error) bool {
	var ce *services.CommittedError
	if !errors.As(err, &ce) {
		return false
	}
	middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Mutation committed, refresh failed", slog.String("error", err.Error()))
	c.Header("X-Refresh-Failed", "true")
	return true
}

// readResult unwraps a cached read. A failed refresh of a cached value still answers with the stale value.
func readResult[T any](c *gin.Context, res cache.Result[T], fallback string) (T, bool, bool) {
	if res.Err != nil && !res.Stale {
		respondError(c, res.Err, fallback)
		var zero T
		return zero, false, false
	}
	if res.Err != nil {
		middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Serving stale data", slog.String("error", res.Err.Error()))
	}
	return res.Data, res.Stale, true
}

// bindJSON binds the request body, answering 400 on failure.
func bindJSON(c *gin.Context, req any, op string) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Failed to bind JSON for "+op, slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return false
	}
	return true
}
