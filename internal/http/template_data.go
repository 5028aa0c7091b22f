package httpx

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/megabox/megabox-web/internal/http/ui/viewmodel"
)

// PaginationData describes one page of a list view.
type PaginationData struct {
	Page       int
	PageSize   int
	TotalCount int
	HasPrev    bool
	HasNext    bool
	ItemCount  int
	BasePath   string
}

// TemplateDataBuilder provides a fluent API for building template data maps.
type TemplateDataBuilder struct {
	data map[string]any
	r    *http.Request
}

// NewTemplateData creates a builder initialized with basePageData.
func NewTemplateData(r *http.Request, meta PageMeta) *TemplateDataBuilder {
	return &TemplateDataBuilder{
		data: basePageData(r, meta),
		r:    r,
	}
}

// WithPagination adds a viewmodel.Pagination under "Pagination".
func (b *TemplateDataBuilder) WithPagination(opts PaginationData) *TemplateDataBuilder {
	p := viewmodel.Pagination{
		Page:       opts.Page,
		PageSize:   opts.PageSize,
		HasPrev:    opts.HasPrev,
		HasNext:    opts.HasNext,
		TotalCount: opts.TotalCount,
	}
	if opts.ItemCount > 0 {
		p.StartIndex = (opts.Page-1)*opts.PageSize + 1
		p.EndIndex = p.StartIndex + opts.ItemCount - 1
	}
	if opts.HasPrev {
		p.PrevURL = buildPageURL(opts.BasePath, b.r.URL.Query(), opts.Page-1)
	}
	if opts.HasNext {
		p.NextURL = buildPageURL(opts.BasePath, b.r.URL.Query(), opts.Page+1)
	}
	b.data["Pagination"] = p
	return b
}

// WithError sets a general error message, translating catalog keys.
func (b *TemplateDataBuilder) WithError(msg string) *TemplateDataBuilder {
	if msg == "" {
		return b
	}
	b.data["Error"] = true
	b.data["ErrorMessage"] = TranslatorFromContext(b.r.Context()).T(msg)
	return b
}

// WithFieldErrors adds field-level validation errors.
func (b *TemplateDataBuilder) WithFieldErrors(errs map[string]string) *TemplateDataBuilder {
	if len(errs) > 0 {
		tr := TranslatorFromContext(b.r.Context())
		out := make(map[string]string, len(errs))
		for k, v := range errs {
			out[k] = tr.T(v)
		}
		b.data["Errors"] = out
	}
	return b
}

// WithSuccess sets a confirmation message shown above the form.
func (b *TemplateDataBuilder) WithSuccess(key string) *TemplateDataBuilder {
	b.data["SuccessMessage"] = TranslatorFromContext(b.r.Context()).T(key)
	return b
}

// WithForm echoes submitted values back into the form. Password fields never are.
func (b *TemplateDataBuilder) WithForm(values map[string]string) *TemplateDataBuilder {
	if values == nil {
		return b
	}
	b.data["Form"] = values
	return b
}

// With adds a custom field to the template data.
func (b *TemplateDataBuilder) With(key string, value any) *TemplateDataBuilder {
	b.data[key] = value
	return b
}

// Build returns the final template data map.
func (b *TemplateDataBuilder) Build() map[string]any {
	return b.data
}

// buildPageURL returns basePath with ?page= set, preserving other non-empty query params.
func buildPageURL(basePath string, q url.Values, page int) string {
	qq := make(url.Values, len(q))
	for k, v := range q {
		if strings.HasPrefix(k, "hx-") || strings.HasPrefix(k, "hx_") || len(v) == 0 {
			continue
		}
		tmp := make([]string, 0, len(v))
		for _, s := range v {
			if strings.TrimSpace(s) != "" {
				tmp = append(tmp, s)
			}
		}
		if len(tmp) > 0 {
			qq[k] = tmp
		}
	}
	qq.Set("page", strconv.Itoa(page))
	return basePath + "?" + qq.Encode()
}
