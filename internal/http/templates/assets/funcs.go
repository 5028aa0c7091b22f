package assets

import (
	"html/template"
	"log/slog"

	httpassets "github.com/megabox/megabox-web/internal/http/assets"
)

// Options configures asset-related template helpers.
type Options struct {
	Resolver    *httpassets.AssetResolver
	DevMode     bool
	CriticalCSS func() string
	Logger      *slog.Logger
}

// Funcs returns template helpers for asset resolution and critical CSS embedding.
func Funcs(opts Options) template.FuncMap {
	return template.FuncMap{
		"asset": func(logicalName string) string {
			if opts.DevMode {
				if err := opts.Resolver.ReloadIfChanged(); err != nil && opts.Logger != nil {
					opts.Logger.Warn("asset manifest reload failed", "error", err)
				}
			}
			return opts.Resolver.Resolve(logicalName)
		},
		"criticalCSS": func() template.CSS {
			if opts.CriticalCSS == nil {
				return ""
			}
			// #nosec G203 - loaded from our own embedded stylesheet
			return template.CSS(opts.CriticalCSS())
		},
	}
}
