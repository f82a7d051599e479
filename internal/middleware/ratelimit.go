package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

// NewLoginLimiter builds an in-memory limiter from a formatted rate such as "5-M" (five per minute).
func NewLoginLimiter(formatted string) (*limiter.Limiter, error) {
	rate, err := limiter.NewRateFromFormatted(formatted)
	if err != nil {
		return nil, fmt.Errorf("invalid login rate limit %q: %w", formatted, err)
	}
	return limiter.New(memory.NewStore(), rate), nil
}

// RateLimit creates a Gin middleware that counts requests per client IP against limiterInstance.
// Every route sharing the middleware shares the budget.
func RateLimit(limiterInstance *limiter.Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())
		ip := c.ClientIP()

		lctx, err := limiterInstance.Get(c.Request.Context(), ip)
		if err != nil {
			logger.Error("Failed to get rate limit context", slog.String("ip", ip), slog.String("error", err.Error()))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error during rate limit check"})
			return
		}

		c.Header("X-RateLimit-Limit", strconv.FormatInt(lctx.Limit, 10))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(lctx.Remaining, 10))

		if lctx.Reached {
			retryAfter := time.Until(time.Unix(lctx.Reset, 0)).Round(time.Second)
			if retryAfter < time.Second {
				retryAfter = time.Second
			}
			logger.Warn("Rate limit exceeded", slog.String("ip", ip), slog.Int64("limit", lctx.Limit), slog.Duration("retry_after", retryAfter))
			c.Header("Retry-After", strconv.Itoa(int(retryAfter.Seconds())))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Too many attempts. Please try again later.", "retryable": true})
			return
		}

		c.Next()
	}
}
