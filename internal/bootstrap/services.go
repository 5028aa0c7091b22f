package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel/trace"

	"github.com/megabox/megabox-web/config"
	"github.com/megabox/megabox-web/internal/adapters/backend"
	"github.com/megabox/megabox-web/internal/adapters/memory"
	redisadapter "github.com/megabox/megabox-web/internal/adapters/redis"
	"github.com/megabox/megabox-web/internal/observability/statsd"
	"github.com/megabox/megabox-web/internal/observability/tracing"
	"github.com/megabox/megabox-web/internal/ports"
	"github.com/megabox/megabox-web/internal/service"
)

// CacheKeyPrefix namespaces query cache entries in Redis.
const CacheKeyPrefix = "megabox:query:"

// ServiceContainer holds the wired application services.
type ServiceContainer struct {
	Auth          *service.AuthService
	Account       *service.AccountService
	Files         *service.FilesService
	Earnings      *service.EarningsService
	Notifications *service.NotificationsService
	Owner         *service.OwnerService

	Cache *service.QueryCache
	// Claims makes one-shot tokens such as the OAuth callback single-use.
	Claims ports.IdempotencyStore
}

// ObservabilityContainer holds metrics and tracing.
type ObservabilityContainer struct {
	Metrics *statsd.Client
	Tracing *tracing.Provider
}

// Close flushes spans and closes the metrics socket.
func (o ObservabilityContainer) Close(ctx context.Context) error {
	var errs []error
	if o.Tracing != nil {
		if err := o.Tracing.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("shutdown tracing: %w", err))
		}
	}
	if o.Metrics != nil {
		if err := o.Metrics.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close statsd: %w", err))
		}
	}
	return errors.Join(errs...)
}

// BuildObservability sets up statsd and OpenTelemetry. A statsd dial failure only
// disables metrics; a tracing exporter failure is returned.
func BuildObservability(ctx context.Context, logger *slog.Logger, cfg *config.AppConfig) (ObservabilityContainer, error) {
	var out ObservabilityContainer

	if cfg.Observability.Metrics.IsEnabled() {
		client, err := statsd.NewClient(statsd.Config{
			Enabled: true,
			Address: cfg.Observability.Metrics.StatsdAddress,
			Prefix:  cfg.Observability.Metrics.Prefix,
			Logger:  logger,
		})
		if err != nil {
			logger.Error("failed to initialise statsd client", "error", err)
		} else {
			out.Metrics = client
		}
	}

	env := "production"
	if cfg.IsDev {
		env = "development"
	}
	tc := cfg.Observability.Tracing
	tp, err := tracing.Init(ctx, tracing.Config{
		Enabled:     tc.Enabled,
		Endpoint:    tc.Endpoint,
		ServiceName: tc.ServiceName,
		Environment: env,
		SampleRatio: tc.SampleRatio,
		Insecure:    tc.Insecure,
	})
	if err != nil {
		return out, fmt.Errorf("init tracing: %w", err)
	}
	out.Tracing = tp
	return out, nil
}

// ServiceDeps contains the infrastructure services are built on.
type ServiceDeps struct {
	Config        *config.AppConfig
	RedisClient   redis.UniversalClient
	Observability ObservabilityContainer
	Logger        *slog.Logger
}

// NewServices wires the backend client, cache and domain services.
func NewServices(deps ServiceDeps) (ServiceContainer, error) {
	cfg := deps.Config
	if cfg == nil {
		return ServiceContainer{}, errors.New("service deps missing config")
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	store, claims, err := buildStores(cfg.Cache, deps.RedisClient)
	if err != nil {
		return ServiceContainer{}, err
	}

	var sink statsd.Sink
	if deps.Observability.Metrics != nil {
		sink = deps.Observability.Metrics
	}
	var tracer trace.Tracer
	if deps.Observability.Tracing != nil {
		tracer = deps.Observability.Tracing.Tracer()
	}
	client, err := backend.NewClient(backend.Config{
		BaseURL:       cfg.Backend.BaseURL,
		Timeout:       cfg.Backend.Timeout,
		UploadTimeout: cfg.Backend.UploadTimeout,
		Metrics:       sink,
		Tracer:        tracer,
		Logger:        logger,
	})
	if err != nil {
		return ServiceContainer{}, fmt.Errorf("build backend client: %w", err)
	}

	cache := service.NewQueryCache(service.QueryCacheOptions{
		Store:     store,
		StaleTime: cfg.Cache.StaleTime,
		MaxAge:    cfg.Cache.MaxAge,
		Logger:    logger,
		Metrics:   sink,
	})

	auth, err := BuildAuthService(AuthDeps{
		Auth:    cfg.Auth,
		API:     client,
		Account: client,
		Cache:   cache,
		Logger:  logger,
	})
	if err != nil {
		return ServiceContainer{}, err
	}

	return ServiceContainer{
		Auth:    auth,
		Account: service.NewAccountService(client, cache),
		Files: service.NewFilesService(service.FilesServiceOptions{
			API:            client,
			Cache:          cache,
			MaxUploadBytes: cfg.Backend.UploadMaxBytes,
		}),
		Earnings: service.NewEarningsService(service.EarningsServiceOptions{
			API:            client,
			Cache:          cache,
			Idempotency:    claims,
			IdempotencyTTL: cfg.Cache.IdempotencyTTL,
			Logger:         logger,
		}),
		Notifications: service.NewNotificationsService(client, cache),
		Owner:         service.NewOwnerService(client, cache, logger),
		Cache:         cache,
		Claims:        claims,
	}, nil
}

// buildStores picks the cache and idempotency backends. Redis is required only for
// the ones configured to use it.
//
//nolint:ireturn // backends are selected by config.
func buildStores(cfg config.CacheConfig, client redis.UniversalClient) (ports.CacheStore, ports.IdempotencyStore, error) {
	var (
		store  ports.CacheStore
		claims ports.IdempotencyStore
	)

	switch cfg.Backend {
	case config.CacheBackendRedis:
		if client == nil {
			return nil, nil, errors.New("CACHE_BACKEND=redis requires a redis connection")
		}
		store = redisadapter.NewCacheStoreWithPrefix(client, CacheKeyPrefix)
	default:
		store = memory.NewLRU(memory.LRUConfig{Capacity: cfg.MemoryCapacity})
	}

	switch cfg.IdempotencyBackend {
	case config.CacheBackendRedis:
		if client == nil {
			return nil, nil, errors.New("IDEMPOTENCY_BACKEND=redis requires a redis connection")
		}
		claims = redisadapter.NewIdempotencyStore(client)
	default:
		claims = memory.NewClaims(nil)
	}

	return store, claims, nil
}
