package main

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/megabox/megabox-web/config"
	"github.com/megabox/megabox-web/internal/bootstrap"
	"github.com/megabox/megabox-web/internal/testutil"
)

func newCommandContext(input string) (*commandContext, *bytes.Buffer) {
	var out bytes.Buffer
	return &commandContext{
		Ctx:    context.Background(),
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		Out:    &out,
		In:     strings.NewReader(input),
	}, &out
}

func TestPrintUsageListsCommands(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, printUsage(&out))
	for name := range commands() {
		assert.Contains(t, out.String(), name)
	}
}

func TestRunRoutes(t *testing.T) {
	ctx, out := newCommandContext("")

	require.NoError(t, runRoutes(ctx, []string{"--prefix", "/Promoter"}))

	text := out.String()
	assert.Contains(t, text, "METHOD")
	assert.Contains(t, text, "/Promoter/withdraw")
	assert.Contains(t, text, "Promoter")
	assert.NotContains(t, text, "/Owner")
}

func TestRunRoutes_GuardedOnly(t *testing.T) {
	ctx, out := newCommandContext("")

	require.NoError(t, runRoutes(ctx, []string{"--guarded"}))

	for _, line := range strings.Split(strings.TrimSpace(out.String()), "\n")[1:] {
		assert.Contains(t, line, "yes", line)
	}
}

func TestRunConfigCheck(t *testing.T) {
	ctx, out := newCommandContext("")
	ctx.Config = config.AppConfig{
		Backend: config.BackendConfig{BaseURL: "http://api.megabox.test"},
		HTTP:    config.HTTPConfig{BaseURL: "http://megabox.test"},
		Redis:   config.RedisConfig{Password: "hunter2"},
	}
	ctx.Config.Sanitize()

	require.NoError(t, runConfigCheck(ctx, nil))
	assert.Contains(t, out.String(), "configuration OK")
	assert.Contains(t, out.String(), "********")
	assert.NotContains(t, out.String(), "hunter2")

	ctx.Config.Backend.BaseURL = ""
	assert.Error(t, runConfigCheck(ctx, nil))
}

func TestConfirmAction(t *testing.T) {
	ctx, _ := newCommandContext("y\n")
	assert.NoError(t, confirmAction(ctx, false, "go?"))

	ctx, _ = newCommandContext("n\n")
	assert.Error(t, confirmAction(ctx, false, "go?"))

	ctx, _ = newCommandContext("")
	assert.Error(t, confirmAction(ctx, false, "go?"))
	assert.NoError(t, confirmAction(ctx, true, "go?"))
}

func TestParseCacheOptions(t *testing.T) {
	_, err := parseCacheOptions("cache-list", nil, false)
	require.Error(t, err)

	_, err = parseCacheOptions("cache-clear", []string{"--all", "--namespace", "public"}, true)
	require.Error(t, err)

	opts, err := parseCacheOptions("cache-clear", []string{"--namespace", " abc123 ", "--dry-run"}, true)
	require.NoError(t, err)
	assert.True(t, opts.DryRun)
	assert.Equal(t, bootstrap.CacheKeyPrefix+"abc123:*", opts.match())

	opts, err = parseCacheOptions("cache-list", []string{"--all"}, false)
	require.NoError(t, err)
	assert.Equal(t, 100, opts.Limit)
	assert.Equal(t, bootstrap.CacheKeyPrefix+"*", opts.match())
}

func TestSplitCacheKey(t *testing.T) {
	ns, q := splitCacheKey(bootstrap.CacheKeyPrefix + "abc123:files?page=2")
	assert.Equal(t, "abc123", ns)
	assert.Equal(t, "files?page=2", q)

	ns, q = splitCacheKey(bootstrap.CacheKeyPrefix + "orphan")
	assert.Equal(t, "orphan", ns)
	assert.Empty(t, q)
}

func TestCacheListAndClear(t *testing.T) {
	client := testutil.SetupTestRedis(t)
	defer client.Close()
	bg := context.Background()

	require.NoError(t, client.Set(bg, bootstrap.CacheKeyPrefix+"abc:earnings", "{}", time.Minute).Err())
	require.NoError(t, client.Set(bg, bootstrap.CacheKeyPrefix+"abc:files?page=1", "{}", time.Minute).Err())
	require.NoError(t, client.Set(bg, bootstrap.CacheKeyPrefix+"def:earnings", "{}", time.Minute).Err())

	keys, err := scanKeys(bg, client, bootstrap.CacheKeyPrefix+"abc:*", 0)
	require.NoError(t, err)
	assert.Len(t, keys, 2)

	ctx, out := newCommandContext("")
	require.NoError(t, renderCacheTable(ctx, client, keys))
	assert.Contains(t, out.String(), "files?page=1")
	assert.Contains(t, out.String(), "2 entries")

	n, err := client.Del(bg, keys...).Result()
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	left, err := scanKeys(bg, client, bootstrap.CacheKeyPrefix+"*", 0)
	require.NoError(t, err)
	assert.Equal(t, []string{bootstrap.CacheKeyPrefix + "def:earnings"}, left)
}
