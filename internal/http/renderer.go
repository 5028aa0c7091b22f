package httpx

import (
	"errors"
	"html/template"
	"io"
	"io/fs"
	"log/slog"
	"sync"

	httpassets "github.com/megabox/megabox-web/internal/http/assets"
	assetfuncs "github.com/megabox/megabox-web/internal/http/templates/assets"
	corefuncs "github.com/megabox/megabox-web/internal/http/templates/core"
)

// AssetResolver aliases the asset resolver so callers only import httpx.
type AssetResolver = httpassets.AssetResolver

const (
	criticalCSSPath     = "css/critical.css"
	fallbackCriticalCSS = ":root{--bg:#0f1115;--surface:#171a21;--text:#e8eaf0;--accent:#6c5ce7}"
)

// TemplateRenderer renders HTML templates for UI responses.
type TemplateRenderer struct {
	t             *template.Template
	resolver      *AssetResolver
	criticalCSSFS fs.FS
	devMode       bool
	logger        *slog.Logger

	cssOnce     sync.Once
	criticalCSS string
}

// TemplateRendererConfig holds configuration for creating a TemplateRenderer.
type TemplateRendererConfig struct {
	TemplateFS    fs.FS          // Filesystem containing templates (required)
	Resolver      *AssetResolver // Asset resolver for hashed filenames (optional)
	CriticalCSSFS fs.FS          // Filesystem containing css/critical.css (optional)
	DevMode       bool           // Re-read critical CSS and the manifest on each request
	Logger        *slog.Logger
}

// NewTemplateRenderer parses every template from cfg.TemplateFS.
func NewTemplateRenderer(cfg TemplateRendererConfig) (*TemplateRenderer, error) {
	if cfg.TemplateFS == nil {
		return nil, errors.New("TemplateFS is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	renderer := &TemplateRenderer{
		resolver:      cfg.Resolver,
		criticalCSSFS: cfg.CriticalCSSFS,
		devMode:       cfg.DevMode,
		logger:        logger,
	}

	var t *template.Template
	funcs := template.FuncMap{}
	mergeTemplateFuncs(funcs,
		corefuncs.Funcs(corefuncs.Deps{
			Template:           &t,
			ContentTemplateFor: ContentTemplateFor,
		}),
		assetfuncs.Funcs(assetfuncs.Options{
			Resolver:    renderer.resolver,
			DevMode:     renderer.devMode,
			CriticalCSS: renderer.getCriticalCSS,
			Logger:      logger,
		}),
	)

	var err error
	t, err = template.New("root").Funcs(funcs).ParseFS(cfg.TemplateFS,
		"*.tmpl",
		"pages/*.tmpl",
		"partials/*.tmpl",
	)
	if err != nil {
		logger.Error("template parsing failed", slog.Any("error", err), slog.String("phase", "initialization"))
		return nil, err
	}
	renderer.t = t
	return renderer, nil
}

// getCriticalCSS returns the inlined stylesheet, re-read from disk in dev mode.
func (r *TemplateRenderer) getCriticalCSS() string {
	if r.criticalCSSFS == nil {
		return ""
	}
	if r.devMode {
		return r.readCriticalCSS()
	}
	r.cssOnce.Do(func() { r.criticalCSS = r.readCriticalCSS() })
	return r.criticalCSS
}

func (r *TemplateRenderer) readCriticalCSS() string {
	b, err := fs.ReadFile(r.criticalCSSFS, criticalCSSPath)
	if err != nil {
		r.logger.Warn("critical css unavailable", slog.String("path", criticalCSSPath), slog.Any("error", err))
		return fallbackCriticalCSS
	}
	return string(b)
}

// Execute renders the named template into w.
func (r *TemplateRenderer) Execute(w io.Writer, name string, data any) error {
	if err := r.t.ExecuteTemplate(w, name, data); err != nil {
		r.logger.Error("template execution failed", slog.String("template", name), slog.Any("error", err))
		return err
	}
	return nil
}

// Has reports whether a template named name was parsed.
func (r *TemplateRenderer) Has(name string) bool {
	return r.t.Lookup(name) != nil
}

func mergeTemplateFuncs(dst template.FuncMap, sources ...template.FuncMap) {
	for _, src := range sources {
		for key, val := range src {
			dst[key] = val
		}
	}
}
