package httpx

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/megabox/megabox-web/internal/adapters/authroles"
	"github.com/megabox/megabox-web/internal/adapters/memory"
	domainauth "github.com/megabox/megabox-web/internal/domain/auth"
	"github.com/megabox/megabox-web/internal/mocks"
	"github.com/megabox/megabox-web/internal/service"
)

const (
	testCSRFToken = "test-csrf-token"
	testBaseURL   = "http://megabox.test"
)

// testEnv is the full router wired to gomock backend ports. Services run for real, so a
// missing EXPECT fails the test whenever a handler reaches the backend unexpectedly.
type testEnv struct {
	t        *testing.T
	auth     *mocks.MockAuthAPI
	account  *mocks.MockAccountAPI
	files    *mocks.MockFilesAPI
	earnings *mocks.MockEarningsAPI
	notifs   *mocks.MockNotificationsAPI
	admin    *mocks.MockAdminAPI
	provider *mocks.MockAuthProvider
	claims   *memory.Claims
	logger   *slog.Logger
	handler  http.Handler
}

func newTestEnv(t *testing.T, configure ...func(*testEnv, *RouterServices)) *testEnv {
	t.Helper()
	tr := RequireTemplateRenderer(t)
	ctrl := gomock.NewController(t)

	env := &testEnv{
		t:        t,
		auth:     mocks.NewMockAuthAPI(ctrl),
		account:  mocks.NewMockAccountAPI(ctrl),
		files:    mocks.NewMockFilesAPI(ctrl),
		earnings: mocks.NewMockEarningsAPI(ctrl),
		notifs:   mocks.NewMockNotificationsAPI(ctrl),
		admin:    mocks.NewMockAdminAPI(ctrl),
		provider: mocks.NewMockAuthProvider(ctrl),
		claims:   memory.NewClaims(nil),
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	logger := env.logger

	services := RouterServices{
		Auth: service.NewAuthService(service.AuthServiceOptions{
			API:     env.auth,
			Account: env.account,
			Claims:  authroles.NewJWTClaims(),
			Logger:  logger,
		}),
		Files: service.NewFilesService(service.FilesServiceOptions{API: env.files, MaxUploadBytes: 1 << 20}),
		Earnings: service.NewEarningsService(service.EarningsServiceOptions{
			API:         env.earnings,
			Idempotency: memory.NewClaims(nil),
			Logger:      logger,
		}),
		Notifications: service.NewNotificationsService(env.notifs, nil),
		Account:       service.NewAccountService(env.account, nil),
		Owner:         service.NewOwnerService(env.admin, nil, logger),
		Sessions:      NewCookieSessionStore(SessionStoreOptions{}),
		Catalog:       RequireCatalog(t),
		OAuth: OAuthOptions{
			Mode:        OAuthModeBackend,
			StartURL:    "https://api.megabox.test/auth/google",
			CallbackURL: testBaseURL + "/oauth/callback",
			Claims:      env.claims,
		},
		BaseURL:  testBaseURL,
		Logger:   logger,
		Renderer: tr,
	}
	for _, fn := range configure {
		fn(env, &services)
	}

	h, err := NewRouter(services)
	require.NoError(t, err)
	env.handler = h
	return env
}

// roleToken returns an unsigned-looking JWT whose role claim is role.
func roleToken(t *testing.T, role domainauth.Role) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  "user-1",
		"role": string(role),
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return tok
}

// signIn makes the backend accept a token for an identity with role and returns it.
func (e *testEnv) signIn(role domainauth.Role, activePlan bool) string {
	e.t.Helper()
	token := roleToken(e.t, role)
	e.account.EXPECT().UserInfo(gomock.Any(), token).Return(domainauth.Identity{
		ID:                 "user-1",
		Role:               role,
		Email:              "sam@example.com",
		Username:           "sam",
		DownloadPlanActive: activePlan,
	}, nil).AnyTimes()
	return token
}

type reqOption func(*http.Request)

func withToken(token string) reqOption {
	return func(r *http.Request) {
		r.AddCookie(&http.Cookie{Name: DefaultSessionCookieName, Value: token})
	}
}

func asHTMX() reqOption {
	return func(r *http.Request) { r.Header.Set("Hx-Request", "true") }
}

func withHeader(key, value string) reqOption {
	return func(r *http.Request) { r.Header.Set(key, value) }
}

func withCookie(c *http.Cookie) reqOption {
	return func(r *http.Request) { r.AddCookie(c) }
}

// get performs a browser GET.
func (e *testEnv) get(target string, opts ...reqOption) *httptest.ResponseRecorder {
	e.t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	req.Header.Set("Accept", "text/html")
	for _, o := range opts {
		o(req)
	}
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	return rec
}

// post submits a urlencoded form carrying a valid CSRF token.
func (e *testEnv) post(target string, form url.Values, opts ...reqOption) *httptest.ResponseRecorder {
	e.t.Helper()
	if form == nil {
		form = url.Values{}
	}
	form.Set(DefaultCSRFCookieName, testCSRFToken)
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "text/html")
	req.AddCookie(&http.Cookie{Name: DefaultCSRFCookieName, Value: testCSRFToken})
	for _, o := range opts {
		o(req)
	}
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	return rec
}

// serve runs an arbitrary request through the router.
func (e *testEnv) serve(req *http.Request) *httptest.ResponseRecorder {
	e.t.Helper()
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	return rec
}

// responseCookie returns the Set-Cookie named name, or nil.
func responseCookie(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	res := rec.Result()
	defer res.Body.Close()
	for _, c := range res.Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}
