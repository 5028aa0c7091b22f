package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/megabox/megabox-web/config"
	"github.com/megabox/megabox-web/internal/bootstrap"
)

func runConfigCheck(ctx *commandContext, _ []string) error {
	if err := bootstrap.ValidateConfig(&ctx.Config); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if err := printConfig(ctx, &ctx.Config); err != nil {
		return err
	}
	return writeln(ctx.Out, "configuration OK")
}

func printConfig(ctx *commandContext, cfg *config.AppConfig) error {
	rows := [][2]string{
		{"dev", fmt.Sprint(cfg.IsDev)},
		{"http.addr", cfg.HTTP.Addr},
		{"http.base_url", cfg.HTTP.BaseURL},
		{"http.cookie_domain", cfg.HTTP.CookieDomain},
		{"http.trusted_proxies", strings.Join(cfg.HTTP.TrustedProxies, ",")},
		{"backend.base_url", cfg.Backend.BaseURL},
		{"backend.timeout", cfg.Backend.Timeout.String()},
		{"backend.upload_timeout", cfg.Backend.UploadTimeout.String()},
		{"backend.oauth_start_url", cfg.Backend.OAuthStartURL},
		{"auth.oauth_mode", string(cfg.Auth.OAuthMode)},
		{"auth.oauth_client_secret", redact(cfg.Auth.OAuth.ClientSecret)},
		{"auth.session_cookie", cfg.Auth.Session.CookieName},
		{"auth.session_ttl", cfg.Auth.Session.TTL.String()},
		{"cache.backend", string(cfg.Cache.Backend)},
		{"cache.idempotency_backend", string(cfg.Cache.IdempotencyBackend)},
		{"redis.required", fmt.Sprint(cfg.RedisRequired())},
		{"redis.password", redact(cfg.Redis.Password)},
		{"i18n.default_locale", cfg.I18n.DefaultLocale},
		{"metrics.enabled", fmt.Sprint(cfg.Observability.Metrics.IsEnabled())},
		{"tracing.enabled", fmt.Sprint(cfg.Observability.Tracing.Enabled)},
	}

	tw := tabwriter.NewWriter(ctx.Out, 0, 4, 2, ' ', 0)
	for _, r := range rows {
		if err := writef(tw, "%s\t%s\n", r[0], r[1]); err != nil {
			return fmt.Errorf("write config row: %w", err)
		}
	}
	return tw.Flush()
}

func redact(secret string) string {
	if secret == "" {
		return "(unset)"
	}
	return "********"
}
