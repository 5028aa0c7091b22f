package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/megabox/megabox-web/internal/bootstrap"
)

const scanBatchSize = 500

type cacheOptions struct {
	// Namespace is the token digest or "public"; empty with All means every entry.
	Namespace string
	All       bool
	Limit     int
	DryRun    bool
	Yes       bool
}

func parseCacheOptions(name string, args []string, destructive bool) (cacheOptions, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var opts cacheOptions
	fs.StringVar(&opts.Namespace, "namespace", "", "Token digest or \"public\" (required unless --all)")
	fs.BoolVar(&opts.All, "all", false, "Target every query cache entry")
	if destructive {
		fs.BoolVar(&opts.DryRun, "dry-run", false, "Print matching keys without deleting")
		fs.BoolVar(&opts.Yes, "yes", false, "Skip confirmation prompt")
	} else {
		fs.IntVar(&opts.Limit, "limit", 100, "Maximum entries to print")
	}

	if err := fs.Parse(args); err != nil {
		return cacheOptions{}, err
	}
	opts.Namespace = strings.TrimSpace(opts.Namespace)
	if opts.Namespace == "" && !opts.All {
		return cacheOptions{}, errors.New("--namespace or --all is required")
	}
	if opts.Namespace != "" && opts.All {
		return cacheOptions{}, errors.New("--namespace and --all are mutually exclusive")
	}
	return opts, nil
}

func (o cacheOptions) match() string {
	if o.All {
		return bootstrap.CacheKeyPrefix + "*"
	}
	return bootstrap.CacheKeyPrefix + o.Namespace + ":*"
}

func runCacheList(ctx *commandContext, args []string) error {
	opts, err := parseCacheOptions("cache-list", args, false)
	if err != nil {
		return err
	}
	client, err := connectRedis(ctx)
	if err != nil {
		return err
	}
	defer closeRedis(ctx, client)

	keys, err := scanKeys(ctx.Ctx, client, opts.match(), opts.Limit)
	if err != nil {
		return err
	}
	return renderCacheTable(ctx, client, keys)
}

func runCacheClear(ctx *commandContext, args []string) error {
	opts, err := parseCacheOptions("cache-clear", args, true)
	if err != nil {
		return err
	}
	client, err := connectRedis(ctx)
	if err != nil {
		return err
	}
	defer closeRedis(ctx, client)

	keys, err := scanKeys(ctx.Ctx, client, opts.match(), 0)
	if err != nil {
		return err
	}
	if len(keys) == 0 {
		return writeln(ctx.Out, "no matching cache entries")
	}
	if opts.DryRun {
		for _, k := range keys {
			if err := writeln(ctx.Out, k); err != nil {
				return err
			}
		}
		return writef(ctx.Out, "dry run: %d entries would be deleted\n", len(keys))
	}
	if err := confirmAction(ctx, opts.Yes, fmt.Sprintf("About to delete %d query cache entries.", len(keys))); err != nil {
		return err
	}

	deleted := 0
	for _, k := range keys {
		n, err := client.Del(ctx.Ctx, k).Result()
		if err != nil {
			return fmt.Errorf("delete %s: %w", k, err)
		}
		deleted += int(n)
	}
	return writef(ctx.Out, "deleted %d entries\n", deleted)
}

// scanKeys collects keys matching pattern; limit <= 0 means all. Cluster clients are
// scanned per master.
func scanKeys(ctx context.Context, client redis.UniversalClient, pattern string, limit int) ([]string, error) {
	var keys []string
	scan := func(ctx context.Context, c redis.Cmdable) error {
		iter := c.Scan(ctx, 0, pattern, scanBatchSize).Iterator()
		for iter.Next(ctx) {
			keys = append(keys, iter.Val())
		}
		return iter.Err()
	}

	var err error
	if cc, ok := client.(*redis.ClusterClient); ok {
		err = cc.ForEachMaster(ctx, func(ctx context.Context, node *redis.Client) error {
			return scan(ctx, node)
		})
	} else {
		err = scan(ctx, client)
	}
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", pattern, err)
	}

	sort.Strings(keys)
	if limit > 0 && len(keys) > limit {
		keys = keys[:limit]
	}
	return keys, nil
}

func renderCacheTable(ctx *commandContext, client redis.UniversalClient, keys []string) error {
	tw := tabwriter.NewWriter(ctx.Out, 0, 4, 2, ' ', 0)
	if err := writeln(tw, "NAMESPACE\tQUERY\tTTL"); err != nil {
		return fmt.Errorf("write cache header row: %w", err)
	}
	for _, k := range keys {
		ns, query := splitCacheKey(k)
		ttl, err := client.TTL(ctx.Ctx, k).Result()
		if err != nil {
			return fmt.Errorf("ttl %s: %w", k, err)
		}
		if err := writef(tw, "%s\t%s\t%s\n", ns, query, formatTTL(ttl)); err != nil {
			return fmt.Errorf("write cache row: %w", err)
		}
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	return writef(ctx.Out, "%d entries\n", len(keys))
}

func splitCacheKey(key string) (string, string) {
	rest := strings.TrimPrefix(key, bootstrap.CacheKeyPrefix)
	ns, query, ok := strings.Cut(rest, ":")
	if !ok {
		return rest, ""
	}
	return ns, query
}

func formatTTL(d time.Duration) string {
	if d < 0 {
		return "none"
	}
	return d.Round(time.Second).String()
}

//nolint:ireturn // returning redis.UniversalClient keeps sentinel/cluster support flexible.
func connectRedis(ctx *commandContext) (redis.UniversalClient, error) {
	client, err := bootstrap.ConnectRedis(ctx.Ctx, bootstrap.RedisConfig{Redis: ctx.Config.Redis, Logger: ctx.Logger})
	if err != nil {
		return nil, fmt.Errorf("connect redis: %w", err)
	}
	return client, nil
}

func closeRedis(ctx *commandContext, client redis.UniversalClient) {
	if err := client.Close(); err != nil {
		ctx.Logger.Error("close redis failed", "error", err)
	}
}
