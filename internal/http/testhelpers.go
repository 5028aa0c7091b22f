package httpx

import (
	"os"
	"strings"
	"testing"

	"github.com/megabox/megabox-web/internal/i18n"
)

// RequireTemplateRenderer creates a TemplateRenderer for tests, skipping the test if templates are not available.
// This centralizes the common pattern of template guard checks in tests.
func RequireTemplateRenderer(t *testing.T) *TemplateRenderer {
	t.Helper()
	tr, err := NewTemplateRenderer(TemplateRendererConfig{
		TemplateFS:    os.DirFS(TemplatePathFromTest),
		CriticalCSSFS: os.DirFS(StaticPathFromTest),
	})
	if err != nil {
		t.Skipf("Templates not available, skipping: %v", err)
		return nil
	}
	return tr
}

// SkipIfNoTemplates checks if templates are available and skips the test if not.
func SkipIfNoTemplates(t *testing.T) {
	t.Helper()
	if _, err := os.Stat(TemplatePathFromTest); os.IsNotExist(err) {
		t.Skip("Templates not available, skipping integration test")
	}
}

// ContainsAll checks if a string contains all the given substrings.
func ContainsAll(s string, subs []string) bool {
	for _, sub := range subs {
		if !strings.Contains(s, sub) {
			return false
		}
	}
	return true
}

// RequireCatalog builds the built-in catalog with English as the default.
func RequireCatalog(t *testing.T) *i18n.Catalog {
	t.Helper()
	c, err := i18n.NewCatalog("en")
	if err != nil {
		t.Fatalf("build catalog: %v", err)
	}
	return c
}

// CreateUIHandlersForTest creates UIHandlers with templates, a catalog and a default
// session store. Services are left for the caller to set.
func CreateUIHandlersForTest(t *testing.T) *UIHandlers {
	t.Helper()
	tr := RequireTemplateRenderer(t)
	if tr == nil {
		return nil
	}
	return &UIHandlers{
		T:        tr,
		Sessions: NewCookieSessionStore(SessionStoreOptions{}),
		Catalog:  RequireCatalog(t),
	}
}
