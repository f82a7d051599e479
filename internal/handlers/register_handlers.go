package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/SscSPs/spendwise_client/cmd/docs"
	portssvc "github.com/SscSPs/spendwise_client/internal/core/ports/services"
	"github.com/SscSPs/spendwise_client/internal/middleware"
	"github.com/SscSPs/spendwise_client/internal/platform/config"
	"github.com/SscSPs/spendwise_client/internal/utils"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	posthog *utils.PosthogClientWrapper,
) error {
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.CORSAllowedOrigins,
			AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
			ExposeHeaders:    []string{"X-Request-ID", "X-Refresh-Failed", "X-RateLimit-Remaining"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	loginLimiter, err := middleware.NewLoginLimiter(cfg.LoginRateLimit)
	if err != nil {
		return fmt.Errorf("failed to build login rate limiter: %w", err)
	}

	v1 := r.Group("/api/v1", middleware.PosthogMiddleware(posthog))

	// Register public authentication routes
	registerAuthRoutes(v1, services.Auth, middleware.RateLimit(loginLimiter), posthog)

	// Everything else needs a completed login
	setupProtectedRoutes(v1, services)

	// Swagger routes (typically public or conditionally available)
	setupSwaggerRoutes(r, cfg)
	return nil
}

// setupProtectedRoutes delegates route registration to the specific handlers behind the session guard
func setupProtectedRoutes(v1 *gin.RouterGroup, services *portssvc.ServiceContainer) {
	protected := v1.Group("", middleware.RequireSession(services.Auth))

	registerTwoFactorRoutes(protected, services.TwoFactor)
	registerAccountRoutes(protected, services.Account)
	registerTransactionRoutes(protected, services.Transaction)
	registerDashboardRoutes(protected, services.Dashboard, services.Transaction)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	// Swagger setup
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
