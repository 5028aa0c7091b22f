package bootstrap

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/megabox/megabox-web/config"
	"github.com/megabox/megabox-web/internal/adapters/memory"
	redisadapter "github.com/megabox/megabox-web/internal/adapters/redis"
	"github.com/megabox/megabox-web/internal/testutil"
)

func TestNewServices_MemoryBackends(t *testing.T) {
	cfg := validConfig()

	svcs, err := NewServices(ServiceDeps{Config: &cfg, Logger: discardLogger()})
	require.NoError(t, err)

	assert.NotNil(t, svcs.Auth)
	assert.NotNil(t, svcs.Account)
	assert.NotNil(t, svcs.Files)
	assert.NotNil(t, svcs.Earnings)
	assert.NotNil(t, svcs.Notifications)
	assert.NotNil(t, svcs.Owner)
	assert.NotNil(t, svcs.Cache)
	assert.IsType(t, &memory.Claims{}, svcs.Claims)
	assert.Equal(t, cfg.Backend.UploadMaxBytes, svcs.Files.MaxUploadBytes())
	assert.False(t, svcs.Auth.OAuthEnabled())
}

func TestNewServices_Errors(t *testing.T) {
	_, err := NewServices(ServiceDeps{})
	require.Error(t, err)

	cfg := validConfig()
	cfg.Backend.BaseURL = "not a url"
	_, err = NewServices(ServiceDeps{Config: &cfg})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "backend client")
}

func TestBuildStores_RedisNeedsClient(t *testing.T) {
	_, _, err := buildStores(config.CacheConfig{Backend: config.CacheBackendRedis}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CACHE_BACKEND")

	_, _, err = buildStores(config.CacheConfig{IdempotencyBackend: config.CacheBackendRedis}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "IDEMPOTENCY_BACKEND")
}

func TestBuildStores_Redis(t *testing.T) {
	client := testutil.SetupTestRedis(t)
	defer client.Close()

	store, claims, err := buildStores(config.CacheConfig{
		Backend:            config.CacheBackendRedis,
		IdempotencyBackend: config.CacheBackendRedis,
	}, client)
	require.NoError(t, err)
	assert.IsType(t, &redisadapter.CacheStore{}, store)
	assert.IsType(t, &redisadapter.IdempotencyStore{}, claims)

	require.NoError(t, RedisHealthCheck(client)(context.Background()))
}

func TestBuildObservability_Disabled(t *testing.T) {
	cfg := validConfig()

	obs, err := BuildObservability(context.Background(), discardLogger(), &cfg)
	require.NoError(t, err)
	assert.Nil(t, obs.Metrics)
	require.NotNil(t, obs.Tracing)
	assert.NotNil(t, obs.Tracing.Tracer())
	assert.NoError(t, obs.Close(context.Background()))
}
