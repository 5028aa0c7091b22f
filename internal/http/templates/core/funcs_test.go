package core

import (
	"html/template"
	"io/fs"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	megabox "github.com/megabox/megabox-web"
	"github.com/megabox/megabox-web/internal/domain/model"
)

func TestFuncs_EveryHelperIsUsedByATemplate(t *testing.T) {
	var sources strings.Builder
	err := fs.WalkDir(megabox.TemplateFS, "frontend/templates", func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() || !strings.HasSuffix(path, ".tmpl") {
			return err
		}
		b, err := fs.ReadFile(megabox.TemplateFS, path)
		if err != nil {
			return err
		}
		sources.Write(b)
		return nil
	})
	require.NoError(t, err)

	for name := range Funcs(Deps{}) {
		used := regexp.MustCompile(`\b` + name + `\b`).MatchString(sources.String())
		assert.True(t, used, "template func %q is registered but no template calls it", name)
	}
}

func TestMoney(t *testing.T) {
	assert.Equal(t, "1,234.50 USD", money(model.Amount(1234.5)))
	assert.Equal(t, "0.10 EGP", money(model.Amount(0.1), "egp"))
	assert.Equal(t, "-3.00 USD", money(model.Amount(-3)))
}

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "999", formatNumberTemplate(999))
	assert.Equal(t, "1,000", formatNumberTemplate(int64(1000)))
	assert.Equal(t, "-12,345,678", formatNumberTemplate(-12345678))
	assert.Equal(t, "x", formatNumberTemplate("x"))
}

func TestPercentOf(t *testing.T) {
	assert.Equal(t, 0, percentOf(5, 0))
	assert.Equal(t, 50, percentOf(5, 10))
	assert.Equal(t, 100, percentOf(20, 10))
}

func TestStatusClass(t *testing.T) {
	assert.Equal(t, "badge-success", statusClass(model.WithdrawalApproved))
	assert.Equal(t, "badge-danger", statusClass("rejected"))
	assert.Equal(t, "badge-warning", statusClass(model.WithdrawalPending))
	assert.Equal(t, "badge-info", statusClass("info"))
}

func TestDict(t *testing.T) {
	m, err := dict("a", 1, "b", "two")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"a": 1, "b": "two"}, m)

	_, err = dict("odd")
	require.Error(t, err)
	_, err = dict(1, 2)
	require.Error(t, err)
}

func TestTimeTag(t *testing.T) {
	ts := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	got := string(timeTag(ts))
	assert.Contains(t, got, `datetime="2026-01-02T03:04:05Z"`)
	assert.Equal(t, template.HTML(""), timeTag(time.Time{}))
	assert.Equal(t, template.HTML(""), timeTag((*time.Time)(nil)))
}

func TestRenderSection(t *testing.T) {
	var tmpl *template.Template
	funcs := Funcs(Deps{Template: &tmpl, ContentTemplateFor: func(p string) string { return p + "-content" }})
	tmpl = template.Must(template.New("root").Funcs(funcs).Parse(`{{define "files-content"}}<p>{{.}}</p>{{end}}`))

	render := funcs["renderSection"].(func(string, any) (template.HTML, error))
	out, err := render("files", "<b>")
	require.NoError(t, err)
	assert.Equal(t, template.HTML("<p>&lt;b&gt;</p>"), out)
}
