package backend

import (
	"context"
	"encoding/json"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/megabox/megabox-web/internal/domain/auth"
	"github.com/megabox/megabox-web/internal/domain/model"
	apperrors "github.com/megabox/megabox-web/internal/errors"
	"github.com/megabox/megabox-web/internal/observability/statsd"
	"github.com/megabox/megabox-web/internal/ports"
)

func newTestClient(t *testing.T, h http.HandlerFunc) (*Client, *statsd.Recorder) {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	rec := &statsd.Recorder{}
	c, err := NewClient(Config{BaseURL: srv.URL + "/api/", Timeout: 2 * time.Second, Metrics: rec})
	require.NoError(t, err)
	return c, rec
}

func TestNewClient_Validation(t *testing.T) {
	_, err := NewClient(Config{})
	require.Error(t, err)

	_, err = NewClient(Config{BaseURL: "not a url"})
	require.Error(t, err)

	c, err := NewClient(Config{BaseURL: "http://localhost:5000/api/"})
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:5000/api/files?page=2", c.endpointURL("/files", map[string][]string{"page": {"2"}}))
	assert.Equal(t, defaultTimeout, c.timeout)
	assert.Equal(t, defaultUploadTimeout, c.uploadTimeout)
}

func TestLogin_TokenEnvelopes(t *testing.T) {
	bodies := map[string]string{
		"top-level token":   `{"token":"t1"}`,
		"data envelope":     `{"data":{"token":"t1"}}`,
		"accessToken":       `{"accessToken":"t1"}`,
		"nested user token": `{"data":{"user":{"token":"t1"}}}`,
		"snake case":        `{"access_token":"t1","token":null}`,
	}
	for name, body := range bodies {
		t.Run(name, func(t *testing.T) {
			c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodPost, r.Method)
				assert.Equal(t, "/api/auth/login", r.URL.Path)
				assert.Empty(t, r.Header.Get("Authorization"))

				var in map[string]string
				require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
				assert.Equal(t, "a@b.co", in["email"])
				assert.Equal(t, "secret123", in["password"])
				_, _ = io.WriteString(w, body)
			})

			tok, err := c.Login(context.Background(), "a@b.co", "secret123")
			require.NoError(t, err)
			assert.Equal(t, "t1", tok)
		})
	}
}

func TestLogin_MissingTokenIsError(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `{"message":"ok"}`)
	})
	_, err := c.Login(context.Background(), "a@b.co", "secret123")
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeUnavailable, apperrors.GetCode(err))
}

func TestErrorMessageExtraction(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantMsg  string
		wantCode apperrors.ErrorCode
	}{
		{"message field", 400, `{"message":"Invalid credentials"}`, "Invalid credentials", apperrors.ErrCodeUpstream},
		{"error string", 401, `{"error":"Token expired"}`, "Token expired", apperrors.ErrCodeUnauthorized},
		{"validator array", 422, `{"errors":[{"msg":"Email is taken"}]}`, "Email is taken", apperrors.ErrCodeUpstream},
		{"nested error", 409, `{"error":{"message":"Duplicate"}}`, "Duplicate", apperrors.ErrCodeConflict},
		{"not json", 500, `<html>oops</html>`, defaultMessage(500), apperrors.ErrCodeUnavailable},
		{"plan required", 402, `{}`, defaultMessage(402), apperrors.ErrCodePaymentRequired},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			})
			err := c.ForgotPassword(context.Background(), "a@b.co")
			require.Error(t, err)
			assert.Equal(t, tt.wantCode, apperrors.GetCode(err))
			assert.Equal(t, tt.wantMsg, apperrors.UserMessage(err))
		})
	}
}

func TestUserInfo_BearerAndRole(t *testing.T) {
	c, rec := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok-1", r.Header.Get("Authorization"))
		assert.Equal(t, "/api/user/info", r.URL.Path)
		_, _ = io.WriteString(w, `{"data":{"user":{"_id":"u1","role":"promoter","email":"p@x.io","username":"pp","plans":{"download":true}}}}`)
	})

	id, err := c.UserInfo(context.Background(), "tok-1")
	require.NoError(t, err)
	assert.Equal(t, "u1", id.ID)
	assert.Equal(t, domainauth.RolePromoter, id.Role)
	assert.True(t, id.DownloadPlanActive)
	assert.False(t, id.WatchPlanActive)

	counts := rec.Named("backend.request.count")
	require.Len(t, counts, 1)
	assert.Equal(t, "user.info", counts[0].Tags["endpoint"])
	assert.Equal(t, "2xx", counts[0].Tags["status"])
}

func TestListFiles_PagingDefaults(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "1", r.URL.Query().Get("page"))
		assert.Equal(t, "20", r.URL.Query().Get("limit"))
		_, _ = io.WriteString(w, `{"items":[{"id":"f1","name":"a.mp4"},{"id":"f2","name":"b.pdf"}]}`)
	})

	list, err := c.ListFiles(context.Background(), "tok", model.FileListOptions{})
	require.NoError(t, err)
	assert.Len(t, list.Items, 2)
	assert.Equal(t, 1, list.Page)
	assert.Equal(t, model.DefaultFilePageSize, list.PageSize)
	assert.Equal(t, 2, list.Total)
	assert.False(t, list.HasNext())
}

func TestUploadFile_StreamsMultipart(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		mediaType, params, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
		require.NoError(t, err)
		assert.Equal(t, "multipart/form-data", mediaType)

		mr := multipart.NewReader(r.Body, params["boundary"])
		part, err := mr.NextPart()
		require.NoError(t, err)
		assert.Equal(t, "file", part.FormName())
		assert.Equal(t, "notes.txt", part.FileName())
		data, _ := io.ReadAll(part)
		assert.Equal(t, "hello", string(data))

		_, _ = io.WriteString(w, `{"data":{"file":{"id":"f9","name":"notes.txt","size":5}}}`)
	})

	f, err := c.UploadFile(context.Background(), "tok", model.UploadInput{
		Filename:    "notes.txt",
		ContentType: "text/plain",
		Body:        strings.NewReader("hello"),
	})
	require.NoError(t, err)
	assert.Equal(t, "f9", f.ID)
	assert.Equal(t, int64(5), f.Size)
}

// slowReader yields one byte per delay.
type slowReader struct {
	data  []byte
	delay time.Duration
}

func (r *slowReader) Read(p []byte) (int, error) {
	if len(r.data) == 0 {
		return 0, io.EOF
	}
	time.Sleep(r.delay)
	p[0] = r.data[0]
	r.data = r.data[1:]
	return 1, nil
}

func newUploadServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.Copy(io.Discard, r.Body)
		_, _ = io.WriteString(w, `{"file":{"id":"big","name":"big.bin"}}`)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestUploadFile_OutlastsRequestTimeout(t *testing.T) {
	srv := newUploadServer(t)
	c, err := NewClient(Config{BaseURL: srv.URL, Timeout: 100 * time.Millisecond, UploadTimeout: 10 * time.Second})
	require.NoError(t, err)

	f, err := c.UploadFile(context.Background(), "tok", model.UploadInput{
		Filename: "big.bin",
		Body:     &slowReader{data: []byte("abcdef"), delay: 60 * time.Millisecond},
	})
	require.NoError(t, err)
	assert.Equal(t, "big", f.ID)
}

func TestUploadFile_UploadTimeoutStillApplies(t *testing.T) {
	srv := newUploadServer(t)
	c, err := NewClient(Config{BaseURL: srv.URL, Timeout: 5 * time.Second, UploadTimeout: 100 * time.Millisecond})
	require.NoError(t, err)

	_, err = c.UploadFile(context.Background(), "tok", model.UploadInput{
		Filename: "big.bin",
		Body:     &slowReader{data: []byte("abcdefghij"), delay: 60 * time.Millisecond},
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsTimeout(err))
}

func TestUploadFile_RequiresBody(t *testing.T) {
	c, _ := newTestClient(t, func(http.ResponseWriter, *http.Request) {
		t.Fatal("backend must not be called")
	})
	_, err := c.UploadFile(context.Background(), "tok", model.UploadInput{Filename: "x"})
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}

func TestRequestWithdrawal_SendsIdempotencyKey(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "key-1", r.Header.Get(IdempotencyHeader))
		var in model.WithdrawalRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		assert.Equal(t, model.PaymentPayPal, in.PaymentMethod)
		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `{"withdrawal":{"id":"w1","amount":25,"status":"pending"}}`)
	})

	out, err := c.RequestWithdrawal(context.Background(), "tok", model.WithdrawalRequest{
		Amount:        25,
		PaymentMethod: model.PaymentPayPal,
		ContactNumber: "+201000000000",
		PayeeDetails:  map[string]string{"paypalEmail": "p@x.io"},
	}, "key-1")
	require.NoError(t, err)
	assert.Equal(t, "w1", out.ID)
	assert.True(t, out.IsPending())
}

func TestNotifications_EmptyList(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `{"data":[]}`)
	})
	n, err := c.Notifications(context.Background(), "tok")
	require.NoError(t, err)
	assert.Empty(t, n)
	assert.Equal(t, 0, n.UnreadCount())
}

func TestDecideWithdrawal_Paths(t *testing.T) {
	var paths []string
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.Method+" "+r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	})
	require.NoError(t, c.DecideWithdrawal(context.Background(), "tok", "w 1", true, ""))
	require.NoError(t, c.DecideWithdrawal(context.Background(), "tok", "w2", false, "missing details"))
	assert.Equal(t, []string{
		"POST /api/admin/withdrawals/w 1/approve",
		"POST /api/admin/withdrawals/w2/reject",
	}, paths)
}

func TestTimeoutBecomesTimeoutError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(time.Second):
		}
	}))
	defer srv.Close()

	c, err := NewClient(Config{BaseURL: srv.URL, Timeout: 50 * time.Millisecond})
	require.NoError(t, err)

	_, err = c.Earnings(context.Background(), "tok")
	require.Error(t, err)
	assert.True(t, apperrors.IsTimeout(err))
}

func TestDecodePayload_FirstNonNullSelector(t *testing.T) {
	var out []model.Plan
	body := []byte(`{"data":{"plans":[],"items":[{"id":"x"}]}}`)
	require.NoError(t, decodePayload(body, []string{"plans", "items"}, &out))
	assert.Empty(t, out)

	body = []byte(`{"items":[{"id":"x"}]}`)
	require.NoError(t, decodePayload(body, []string{"plans", "items"}, &out))
	require.Len(t, out, 1)
	assert.Equal(t, "x", out[0].ID)
}

func TestClientSatisfiesPorts(t *testing.T) {
	var _ ports.AuthAPI = (*Client)(nil)
	var _ ports.AdminAPI = (*Client)(nil)
}
