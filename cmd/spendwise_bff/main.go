package main

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SscSPs/spendwise_client/internal/adapters/graphql"
	"github.com/SscSPs/spendwise_client/internal/adapters/memory"
	"github.com/SscSPs/spendwise_client/internal/core/cache"
	portsrepo "github.com/SscSPs/spendwise_client/internal/core/ports/repositories"
	"github.com/SscSPs/spendwise_client/internal/core/services"
	"github.com/SscSPs/spendwise_client/internal/handlers"
	"github.com/SscSPs/spendwise_client/internal/middleware"
	"github.com/SscSPs/spendwise_client/internal/platform/config"
	"github.com/SscSPs/spendwise_client/internal/utils"
	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

// @title SpendWise BFF API
// @version 1.0
// @description Backend-for-frontend of the SpendWise dashboard.

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: parseLevel(cfg.LogLevel)}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("Server stopped with error", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("Server stopped")
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	g, ctx := errgroup.WithContext(ctx)

	endpoint := cfg.RemoteAPIURL
	if cfg.DemoMode {
		demoEndpoint, serve, err := startDemoRemote(cfg, logger)
		if err != nil {
			return err
		}
		endpoint = demoEndpoint
		g.Go(func() error { return serve(ctx) })
	}

	store, err := cache.NewStore(cfg.CacheSize, cache.WithLogger(logger))
	if err != nil {
		return err
	}
	store.Init(ctx)
	defer store.Dispose()

	tokens := graphql.NewSessionTokenSource()
	client := graphql.NewClient(endpoint, tokens, graphql.WithTimeout(cfg.RemoteTimeout))

	container, err := services.NewServiceContainer(cfg, portsrepo.NewRemoteProvider(client), store)
	if err != nil {
		return err
	}
	tokens.Bind(container.Auth)

	posthog := utils.InitializePosthogClient(cfg.PosthogAPIKey, logger)
	defer posthog.Close()

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	// Global middleware (logging, recovery)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	if err := r.SetTrustedProxies(nil); err != nil {
		return err
	}
	if err := handlers.RegisterRoutes(r, cfg, container, posthog); err != nil {
		return err
	}

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: r, ReadHeaderTimeout: 10 * time.Second}
	g.Go(func() error {
		logger.Info("Server starting", slog.String("port", cfg.Port), slog.String("remote", endpoint), slog.Bool("demo", cfg.DemoMode))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		return shutdown(srv, logger)
	})

	return g.Wait()
}

// startDemoRemote serves the in-memory remote on a loopback port and returns its GraphQL endpoint.
func startDemoRemote(cfg *config.Config, logger *slog.Logger) (string, func(context.Context) error, error) {
	remote, err := memory.NewRemote(cfg.DemoJWTSecret, cfg.DemoJWTIssuer)
	if err != nil {
		return "", nil, err
	}
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return "", nil, err
	}

	demoLogger := logger.With(slog.String("component", "demo_remote"))
	srv := &http.Server{
		Handler:           graphql.NewServer(remote, cfg.DemoJWTSecret, demoLogger).Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	demoLogger.Info("Demo remote listening", slog.String("addr", listener.Addr().String()), slog.String("email", memory.DemoEmail))

	serve := func(ctx context.Context) error {
		go func() {
			<-ctx.Done()
			if err := shutdown(srv, demoLogger); err != nil {
				demoLogger.Error("Demo remote shutdown failed", slog.String("error", err.Error()))
			}
		}()
		if err := srv.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
	return "http://" + listener.Addr().String() + "/graphql", serve, nil
}

func shutdown(srv *http.Server, logger *slog.Logger) error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	logger.Info("Shutting down server")
	return srv.Shutdown(ctx)
}

func parseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}
