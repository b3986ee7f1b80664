package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ghugn/chem-class-git/config"
	"github.com/ghugn/chem-class-git/internal/adapters/schoolapi"
	"github.com/ghugn/chem-class-git/internal/observability/statsd"
	"github.com/ghugn/chem-class-git/internal/ports"
	"github.com/ghugn/chem-class-git/internal/service"
)

const shutdownWaitTimeout = 10 * time.Second

// ServiceContainer holds the wired application services.
type ServiceContainer struct {
	API      *schoolapi.Client
	Auth     *service.AuthService
	School   *service.SchoolService
	Sessions ports.SessionStore
	Metrics  statsd.Sink
}

// ServiceDeps holds the infrastructure the services are built on.
type ServiceDeps struct {
	Config *config.AppConfig
	// RedisClient is nil when sessions are kept in memory.
	RedisClient redis.UniversalClient
	Metrics     statsd.Sink
	Logger      *slog.Logger
}

// NewServices builds the API client, the session store and the services on top of them.
func NewServices(deps *ServiceDeps) (ServiceContainer, error) {
	if deps == nil || deps.Config == nil {
		return ServiceContainer{}, errors.New("service deps missing AppConfig")
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	sink := deps.Metrics
	if sink == nil {
		sink = statsd.Nop{}
	}

	api, err := NewSchoolAPI(deps.Config.API, sink, logger)
	if err != nil {
		return ServiceContainer{}, fmt.Errorf("create school api client: %w", err)
	}
	sessions, err := NewSessionStore(deps.Config.Session, deps.RedisClient)
	if err != nil {
		return ServiceContainer{}, fmt.Errorf("create session store: %w", err)
	}

	return ServiceContainer{
		API:      api,
		Auth:     service.NewAuthService(service.AuthServiceOptions{Accounts: api, Logger: logger}),
		School:   service.NewSchoolService(service.SchoolServiceOptions{API: api, Logger: logger}),
		Sessions: sessions,
		Metrics:  sink,
	}, nil
}

// ServiceOrchestrationConfig contains dependencies for running the web front end.
type ServiceOrchestrationConfig struct {
	Config   *config.AppConfig
	Services ServiceContainer
	Logger   *slog.Logger
}

// RunServicesWithShutdown starts the HTTP server and blocks until a shutdown signal
// is received or the server fails.
func RunServicesWithShutdown(ctx context.Context, cfg *ServiceOrchestrationConfig) error {
	if cfg == nil || cfg.Config == nil {
		return errors.New("service orchestration config missing AppConfig")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	errCh := make(chan error, 1)
	server, err := StartHTTPServer(&HTTPServerConfig{
		Config:   cfg.Config,
		Services: cfg.Services,
		Logger:   logger,
		Errors:   errCh,
	})
	if err != nil {
		return err
	}

	return waitForShutdown(ctx, shutdownConfig{
		errCh:      errCh,
		httpServer: server,
		logger:     logger,
	})
}

// shutdownConfig contains dependencies for graceful shutdown.
type shutdownConfig struct {
	errCh      <-chan error
	httpServer *http.Server
	logger     *slog.Logger
}

// waitForShutdown waits for a shutdown signal, a cancelled context or a server error.
func waitForShutdown(ctx context.Context, cfg shutdownConfig) error {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case <-quit:
		cfg.logger.Info("shutting down...")
		return gracefulStop(cfg)
	case <-ctx.Done():
		cfg.logger.Info("context cancelled, shutting down...")
		return gracefulStop(cfg)
	case err := <-cfg.errCh:
		cfg.logger.Error("service error", "error", err)
		if stopErr := gracefulStop(cfg); stopErr != nil {
			cfg.logger.Error("graceful stop failed", "error", stopErr)
		}
		return err
	}
}

// gracefulStop drains in-flight requests. It uses a fresh context because the
// caller's may already be cancelled.
func gracefulStop(cfg shutdownConfig) error {
	if cfg.httpServer == nil {
		return nil
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownWaitTimeout)
	defer cancel()
	return ShutdownHTTPServer(ShutdownConfig{
		Context: shutdownCtx,
		Server:  cfg.httpServer,
		Logger:  cfg.logger,
	})
}
