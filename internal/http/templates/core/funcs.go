package core

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"strconv"
	"strings"
	"time"

	"github.com/megabox/megabox-web/internal/domain/model"
	"github.com/megabox/megabox-web/internal/http/uiutil"
)

// Deps holds optional dependencies for constructing the core template func map.
type Deps struct {
	Template           **template.Template
	ContentTemplateFor func(string) string
	Now                func() time.Time
}

// Funcs returns helpers shared by every template.
func Funcs(deps Deps) template.FuncMap {
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	funcs := template.FuncMap{
		"friendlyTime": friendlyTime,
		"timeTag":      timeTag,
		"relTime": func(tr uiutil.Translator, ts any) string {
			t0, ok := toTime(ts)
			if !ok || tr == nil {
				return ""
			}
			return uiutil.FriendlyRelativeTime(tr, t0, now())
		},
		"formatNumber": formatNumberTemplate,
		"formatBytes":  uiutil.FormatBytes,
		"money":        money,
		"percentOf":    percentOf,
		"statusClass":  statusClass,
		"truncateText": TruncateText,
		"dict":         dict,
	}

	addRenderFuncs(funcs, deps)
	return funcs
}

func addRenderFuncs(funcs template.FuncMap, deps Deps) {
	funcs["renderSection"] = func(page string, data any) (template.HTML, error) {
		if deps.Template == nil || *deps.Template == nil {
			return "", errors.New("template not initialized")
		}
		var buf bytes.Buffer
		if err := (*deps.Template).ExecuteTemplate(&buf, deps.ContentTemplateFor(page), data); err != nil {
			return "", err
		}
		// #nosec G203 - produced by our own html/template set; values were escaped above
		return template.HTML(buf.String()), nil
	}
}

func toTime(ts any) (time.Time, bool) {
	switch v := ts.(type) {
	case time.Time:
		return v, !v.IsZero()
	case *time.Time:
		if v != nil && !v.IsZero() {
			return *v, true
		}
	}
	return time.Time{}, false
}

func friendlyTime(ts any) string {
	t0, ok := toTime(ts)
	if !ok {
		return ""
	}
	return uiutil.FormatFriendlyDateTime(t0)
}

func timeTag(ts any) template.HTML {
	t0, ok := toTime(ts)
	if !ok {
		return ""
	}
	friendly := t0.Local().Format("Jan 2, 2006 3:04 PM")
	dt := t0.UTC().Format(time.RFC3339)
	title := t0.Local().Format(time.RFC1123)
	// #nosec G203 - constructed from escaped values only
	return template.HTML(fmt.Sprintf(`<time datetime="%s" title="%s">%s</time>`,
		dt, template.HTMLEscapeString(title), template.HTMLEscapeString(friendly)))
}

// money formats an amount with its currency code, defaulting to USD.
func money(a model.Amount, currency ...string) string {
	cur := "USD"
	if len(currency) > 0 && strings.TrimSpace(currency[0]) != "" {
		cur = strings.ToUpper(strings.TrimSpace(currency[0]))
	}
	cents := a.Cents()
	neg := cents < 0
	if neg {
		cents = -cents
	}
	whole, _ := formatInt64(cents / 100)
	s := fmt.Sprintf("%s.%02d", withCommas(whole), cents%100)
	if neg {
		s = "-" + s
	}
	return s + " " + cur
}

// percentOf returns part/total as a whole percentage in [0, 100], for bar widths.
func percentOf(part, total int64) int {
	if total <= 0 || part <= 0 {
		return 0
	}
	p := int(part * 100 / total)
	if p > 100 {
		return 100
	}
	return p
}

// statusClass maps a withdrawal status or notification kind to a badge class.
func statusClass(status any) string {
	switch strings.ToLower(fmt.Sprint(status)) {
	case "approved", "success", "paid":
		return "badge-success"
	case "rejected", "error", "failed":
		return "badge-danger"
	case "pending", "warning":
		return "badge-warning"
	default:
		return "badge-info"
	}
}

// dict builds a map from alternating keys and values for sub-template calls.
func dict(pairs ...any) (map[string]any, error) {
	if len(pairs)%2 != 0 {
		return nil, errors.New("dict needs an even number of arguments")
	}
	m := make(map[string]any, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		k, ok := pairs[i].(string)
		if !ok {
			return nil, fmt.Errorf("dict key %v is not a string", pairs[i])
		}
		m[k] = pairs[i+1]
	}
	return m, nil
}

// formatNumberTemplate formats any integer with comma thousands separators.
func formatNumberTemplate(v any) string {
	var (
		s   string
		neg bool
	)
	switch x := v.(type) {
	case int:
		s, neg = formatInt64(int64(x))
	case int64:
		s, neg = formatInt64(x)
	case int32:
		s, neg = formatInt64(int64(x))
	case uint:
		s = strconv.FormatUint(uint64(x), 10)
	case uint64:
		s = strconv.FormatUint(x, 10)
	case uint32:
		s = strconv.FormatUint(uint64(x), 10)
	default:
		return fmt.Sprint(v)
	}
	s = withCommas(s)
	if neg {
		return "-" + s
	}
	return s
}

func formatInt64(x int64) (string, bool) {
	if x < 0 {
		return strconv.FormatUint(uint64(-x), 10), true
	}
	return strconv.FormatUint(uint64(x), 10), false
}

func withCommas(s string) string {
	if len(s) <= 3 {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + (len(s)-1)/3)
	prefix := len(s) % 3
	if prefix == 0 {
		prefix = 3
	}
	b.WriteString(s[:prefix])
	for i := prefix; i < len(s); i += 3 {
		b.WriteByte(',')
		b.WriteString(s[i : i+3])
	}
	return b.String()
}

// TruncateText truncates s to maxLen runes, adding an ellipsis when cut.
func TruncateText(s string, maxLen any) string {
	n, ok := toIntSafe(maxLen)
	if !ok || n <= 0 {
		return s
	}
	return uiutil.TruncateWithEllipsis(s, n)
}

func toIntSafe(v any) (int, bool) {
	switch val := v.(type) {
	case int:
		return val, true
	case int64:
		return int(val), true
	case float64:
		return int(val), true
	default:
		return 0, false
	}
}
