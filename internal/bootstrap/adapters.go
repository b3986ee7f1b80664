package bootstrap

import (
	"errors"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/ghugn/chem-class-git/config"
	"github.com/ghugn/chem-class-git/internal/adapters/memstore"
	redisstore "github.com/ghugn/chem-class-git/internal/adapters/redis"
	"github.com/ghugn/chem-class-git/internal/adapters/schoolapi"
	"github.com/ghugn/chem-class-git/internal/observability/statsd"
	"github.com/ghugn/chem-class-git/internal/ports"
)

// NewSessionStore returns the session backend selected by cfg. The redis backend
// needs a connected client.
//
//nolint:ireturn // the backend is chosen at runtime.
func NewSessionStore(cfg config.SessionConfig, client redis.UniversalClient) (ports.SessionStore, error) {
	switch cfg.Backend {
	case config.SessionBackendMemory:
		return memstore.New(cfg.TTL), nil
	case config.SessionBackendRedis, "":
		if client == nil {
			return nil, errors.New("redis session backend requires a redis client")
		}
		return redisstore.NewSessionStore(client, redisstore.SessionStoreOptions{
			Prefix: cfg.KeyPrefix,
			TTL:    cfg.TTL,
		}), nil
	default:
		return nil, errors.New("unknown session backend " + string(cfg.Backend))
	}
}

// NewMetricsSink builds the StatsD sink. Disabled or unreachable metrics degrade to
// a no-op sink so the app still starts.
//
//nolint:ireturn // callers only emit through the Sink interface.
func NewMetricsSink(cfg config.ObservabilityMetricsConfig, logger *slog.Logger) (statsd.Sink, func() error) {
	noop := func() error { return nil }
	if !cfg.IsEnabled() {
		return statsd.Nop{}, noop
	}
	client, err := statsd.NewClient(statsd.Config{
		Enabled: true,
		Address: cfg.StatsdAddress,
		Prefix:  cfg.Prefix,
		Logger:  logger,
	})
	if err != nil {
		logger.Error("failed to initialise statsd client", "error", err)
		return statsd.Nop{}, noop
	}
	logger.Info("metrics enabled", "statsd_address", cfg.StatsdAddress, "prefix", cfg.Prefix)
	return client, client.Close
}

// NewSchoolAPI builds the REST client for the school API.
func NewSchoolAPI(cfg config.APIConfig, sink statsd.Sink, logger *slog.Logger) (*schoolapi.Client, error) {
	return schoolapi.New(schoolapi.Options{
		BaseURL:          cfg.BaseURL,
		Timeout:          cfg.Timeout,
		ErrorMessagePath: cfg.ErrorMessagePath,
		Logger:           logger,
		Metrics:          sink,
	})
}
