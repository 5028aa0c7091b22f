package httpx

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/megabox/megabox-web/internal/http/ui/viewmodel"
)

func arabicRequest(t *testing.T, target string) *http.Request {
	t.Helper()
	c := RequireCatalog(t)
	req := httptest.NewRequest(http.MethodGet, target, nil)
	return req.WithContext(SetTranslatorInContext(req.Context(), c.Translator(c.Match("ar"))))
}

func TestWithPagination(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/Promoter/files?page=2&sort=name&empty=&hx-target=x", nil)

	data := NewTemplateData(req, PageMeta{CurrentPage: PageFiles}).
		WithPagination(PaginationData{
			Page: 2, PageSize: 20, TotalCount: 45, HasPrev: true, HasNext: true, ItemCount: 20,
			BasePath: "/Promoter/files",
		}).Build()

	p, ok := data["Pagination"].(viewmodel.Pagination)
	require.True(t, ok)
	assert.Equal(t, 21, p.StartIndex)
	assert.Equal(t, 40, p.EndIndex)
	assert.Equal(t, 45, p.TotalCount)

	prev, err := url.Parse(p.PrevURL)
	require.NoError(t, err)
	assert.Equal(t, "/Promoter/files", prev.Path)
	assert.Equal(t, url.Values{"page": {"1"}, "sort": {"name"}}, prev.Query())

	next, err := url.Parse(p.NextURL)
	require.NoError(t, err)
	assert.Equal(t, "3", next.Query().Get("page"))
}

func TestWithPagination_EmptyPage(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/dashboard/files", nil)

	data := NewTemplateData(req, PageMeta{}).
		WithPagination(PaginationData{Page: 1, PageSize: 20, BasePath: "/dashboard/files"}).Build()

	p := data["Pagination"].(viewmodel.Pagination)
	assert.Zero(t, p.StartIndex)
	assert.Empty(t, p.PrevURL)
	assert.Empty(t, p.NextURL)
}

func TestTemplateData_TranslatesMessages(t *testing.T) {
	req := arabicRequest(t, "/")

	data := NewTemplateData(req, PageMeta{Title: "page.login"}).
		WithError("page.login").
		WithFieldErrors(map[string]string{"email": "page.login", "code": "Raw backend text."}).
		WithSuccess("page.login").
		Build()

	assert.Equal(t, "تسجيل الدخول", data["Title"])
	assert.Equal(t, true, data["Error"])
	assert.Equal(t, "تسجيل الدخول", data["ErrorMessage"])
	assert.Equal(t, "تسجيل الدخول", data["SuccessMessage"])
	assert.Equal(t, map[string]string{"email": "تسجيل الدخول", "code": "Raw backend text."}, data["Errors"])
}

func TestTemplateData_Defaults(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	data := NewTemplateData(req, PageMeta{CurrentPage: PageAbout}).
		WithError("").
		WithFieldErrors(nil).
		WithForm(nil).
		Build()

	assert.Equal(t, PageAbout, data["CurrentPage"])
	assert.Equal(t, false, data["IsAuthenticated"])
	assert.NotContains(t, data, "Error")
	assert.NotContains(t, data, "User")
	assert.Equal(t, map[string]string{}, data["Form"])
	assert.Equal(t, map[string]string{}, data["Errors"])
}
