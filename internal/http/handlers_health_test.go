package httpx

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHealthHandler(t *testing.T) {
	ok := func(context.Context) error { return nil }
	down := func(context.Context) error { return errors.New("connection refused") }

	tests := []struct {
		name     string
		handler  *HealthHandler
		method   string
		wantCode int
		wantBody string
	}{
		{"liveness only", &HealthHandler{}, http.MethodGet, http.StatusOK, `{"status":"ok"}`},
		{"nil handler", nil, http.MethodGet, http.StatusOK, `{"status":"ok"}`},
		{"all healthy", &HealthHandler{Checks: map[string]HealthCheck{"redis": ok}}, http.MethodGet, http.StatusOK, `{"status":"ok"}`},
		{
			"one failing",
			&HealthHandler{Checks: map[string]HealthCheck{"redis": down, "backend": ok}},
			http.MethodGet,
			http.StatusServiceUnavailable,
			`{"status":"degraded","failed":{"redis":"connection refused"}}`,
		},
		{"head has no body", &HealthHandler{Checks: map[string]HealthCheck{"redis": down}}, http.MethodHead, http.StatusServiceUnavailable, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			tt.handler.ServeHTTP(rec, httptest.NewRequest(tt.method, "/healthz", nil))

			assert.Equal(t, tt.wantCode, rec.Code)
			if tt.wantBody == "" {
				assert.Empty(t, rec.Body.String())
				return
			}
			assert.JSONEq(t, tt.wantBody, rec.Body.String())
		})
	}
}

func TestHealthHandler_ChecksHonourDeadline(t *testing.T) {
	h := &HealthHandler{Checks: map[string]HealthCheck{
		"slow": func(ctx context.Context) error {
			_, ok := ctx.Deadline()
			assert.True(t, ok, "checks run under a timeout")
			return nil
		},
	}}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}
