// Package i18n resolves the display language of a request and translates UI strings.
// It is independent of authentication: anonymous pages and dashboards use the same catalog.
package i18n

import (
	"fmt"
	"net/http"
	"strings"

	"golang.org/x/text/language"
	xmessage "golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// CookieName holds the visitor's explicit language choice.
const CookieName = "lang"

// Locale describes one supported display language.
type Locale struct {
	Tag  language.Tag
	Code string
	Name string
	RTL  bool
}

// Dir returns the HTML text direction.
func (l Locale) Dir() string {
	if l.RTL {
		return "rtl"
	}
	return "ltr"
}

var (
	english = Locale{Tag: language.English, Code: "en", Name: "English"}
	arabic  = Locale{Tag: language.Arabic, Code: "ar", Name: "العربية", RTL: true}
)

// Catalog holds every translated string and matches requests to a supported locale.
type Catalog struct {
	locales  []Locale
	matcher  language.Matcher
	builder  *catalog.Builder
	known    map[string]map[string]struct{}
	fallback Locale
}

// NewCatalog builds the catalog. defaultCode selects the locale used when nothing matches;
// an unknown code falls back to English.
func NewCatalog(defaultCode string) (*Catalog, error) {
	locales := []Locale{english, arabic}
	for i, l := range locales {
		if strings.EqualFold(l.Code, strings.TrimSpace(defaultCode)) {
			locales[0], locales[i] = locales[i], locales[0]
			break
		}
	}

	tags := make([]language.Tag, len(locales))
	for i, l := range locales {
		tags[i] = l.Tag
	}

	c := &Catalog{
		locales:  locales,
		matcher:  language.NewMatcher(tags),
		builder:  catalog.NewBuilder(catalog.Fallback(english.Tag)),
		known:    make(map[string]map[string]struct{}, len(locales)),
		fallback: english,
	}
	for _, m := range messages {
		if err := c.add(english, m.key, m.en); err != nil {
			return nil, err
		}
		if m.ar == "" {
			continue
		}
		if err := c.add(arabic, m.key, m.ar); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func (c *Catalog) add(l Locale, key, msg string) error {
	if err := c.builder.SetString(l.Tag, key, msg); err != nil {
		return fmt.Errorf("add %s message %q: %w", l.Code, key, err)
	}
	if c.known[l.Code] == nil {
		c.known[l.Code] = make(map[string]struct{})
	}
	c.known[l.Code][key] = struct{}{}
	return nil
}

// Locales lists the supported locales, default first.
func (c *Catalog) Locales() []Locale {
	out := make([]Locale, len(c.locales))
	copy(out, c.locales)
	return out
}

// Supported reports whether code names a supported locale.
func (c *Catalog) Supported(code string) bool {
	for _, l := range c.locales {
		if l.Code == code {
			return true
		}
	}
	return false
}

// Match picks the best supported locale for the given preferences, in priority order.
// Each preference may be a bare code or a full Accept-Language value.
func (c *Catalog) Match(prefs ...string) Locale {
	_, idx := language.MatchStrings(c.matcher, prefs...)
	if idx < 0 || idx >= len(c.locales) {
		return c.locales[0]
	}
	return c.locales[idx]
}

// Resolve picks the locale for r: the lang cookie first, then Accept-Language.
func (c *Catalog) Resolve(r *http.Request) *Translator {
	var prefs []string
	if ck, err := r.Cookie(CookieName); err == nil && c.Supported(ck.Value) {
		prefs = append(prefs, ck.Value)
	}
	if accept := r.Header.Get("Accept-Language"); accept != "" {
		prefs = append(prefs, accept)
	}
	return c.Translator(c.Match(prefs...))
}

// Translator returns a translator bound to l.
func (c *Catalog) Translator(l Locale) *Translator {
	return &Translator{
		locale:   l,
		printer:  xmessage.NewPrinter(l.Tag, xmessage.Catalog(c.builder)),
		fallback: xmessage.NewPrinter(c.fallback.Tag, xmessage.Catalog(c.builder)),
		known:    c.known[l.Code],
		base:     c.known[c.fallback.Code],
	}
}

// Translator formats catalog strings for one locale.
type Translator struct {
	locale   Locale
	printer  *xmessage.Printer
	fallback *xmessage.Printer
	known    map[string]struct{}
	base     map[string]struct{}
}

// T translates key with optional fmt-style args. Unknown keys are returned unchanged.
func (t *Translator) T(key string, args ...any) string {
	if t == nil {
		return key
	}
	if _, ok := t.known[key]; ok {
		return t.printer.Sprintf(key, args...)
	}
	if _, ok := t.base[key]; ok {
		return t.fallback.Sprintf(key, args...)
	}
	return key
}

// Lang returns the BCP 47 code used in the html lang attribute.
func (t *Translator) Lang() string {
	if t == nil {
		return english.Code
	}
	return t.locale.Code
}

// Dir returns "rtl" or "ltr".
func (t *Translator) Dir() string {
	if t == nil {
		return english.Dir()
	}
	return t.locale.Dir()
}

// Locale returns the bound locale.
func (t *Translator) Locale() Locale {
	if t == nil {
		return english
	}
	return t.locale
}
