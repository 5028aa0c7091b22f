// Package backend is the REST client for the MegaBox API. Each method issues exactly one
// request; non-2xx responses become *errors.AppError and 2xx bodies are decoded from JSON.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	jmespath "github.com/jmespath-community/go-jmespath"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/oauth2"

	apperrors "github.com/megabox/megabox-web/internal/errors"
	obserrors "github.com/megabox/megabox-web/internal/observability/errors"
	"github.com/megabox/megabox-web/internal/observability/statsd"
	"github.com/megabox/megabox-web/internal/ports"
)

const (
	defaultTimeout       = 15 * time.Second
	defaultUploadTimeout = time.Hour
	maxResponseSize      = 8 << 20
	tracerName           = "github.com/megabox/megabox-web/internal/adapters/backend"
)

// errorMessagePaths are tried in order against an error body.
var errorMessagePaths = []string{
	"message",
	"error.message",
	"errors[0].msg",
	"errors[0].message",
	"error",
	"data.message",
}

var _ ports.BackendAPI = (*Client)(nil)

// Config configures the API client.
type Config struct {
	BaseURL       string
	Timeout       time.Duration
	// UploadTimeout replaces Timeout for streamed uploads.
	UploadTimeout time.Duration
	HTTPClient    *http.Client
	Metrics       statsd.Sink
	Tracer        trace.Tracer
	Logger        *slog.Logger
}

// Client talks to the REST backend.
type Client struct {
	baseURL       *url.URL
	timeout       time.Duration
	uploadTimeout time.Duration
	base          *http.Client
	metrics       statsd.Sink
	tracer        trace.Tracer
	logger        *slog.Logger
}

// NewClient validates cfg and builds a Client.
func NewClient(cfg Config) (*Client, error) {
	raw := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if raw == "" {
		return nil, errors.New("backend base url is required")
	}
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid backend base url %q", cfg.BaseURL)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	uploadTimeout := cfg.UploadTimeout
	if uploadTimeout <= 0 {
		uploadTimeout = defaultUploadTimeout
	}
	hc := cfg.HTTPClient
	if hc == nil {
		hc = &http.Client{}
	}
	tracer := cfg.Tracer
	if tracer == nil {
		tracer = otel.Tracer(tracerName)
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		baseURL:       u,
		timeout:       timeout,
		uploadTimeout: uploadTimeout,
		base:          hc,
		metrics:       cfg.Metrics,
		tracer:        tracer,
		logger:        logger,
	}, nil
}

// call describes one backend request.
type call struct {
	endpoint    string
	method      string
	path        string
	token       string
	query       url.Values
	body        any
	rawBody     io.Reader
	contentType string
	header      http.Header
	selectors   []string
	out         any
	// timeout overrides the client timeout when set.
	timeout     time.Duration
}

func (c *Client) httpClient(token string) *http.Client {
	if token == "" {
		return c.base
	}
	transport := c.base.Transport
	if transport == nil {
		transport = http.DefaultTransport
	}
	return &http.Client{
		Transport: &oauth2.Transport{
			Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token, TokenType: "Bearer"}),
			Base:   transport,
		},
		CheckRedirect: c.base.CheckRedirect,
		Jar:           c.base.Jar,
	}
}

func (c *Client) endpointURL(path string, query url.Values) string {
	u := c.baseURL.JoinPath(path)
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return u.String()
}

func (c *Client) do(ctx context.Context, cl call) (err error) {
	timeout := c.timeout
	if cl.timeout > 0 {
		timeout = cl.timeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ctx, span := c.tracer.Start(ctx, "backend "+cl.endpoint, trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()
	span.SetAttributes(
		attribute.String("http.request.method", cl.method),
		attribute.String("megabox.endpoint", cl.endpoint),
	)

	start := time.Now()
	status := 0
	defer func() {
		c.record(cl.endpoint, status, time.Since(start), err)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, apperrors.UserMessage(err))
		}
	}()

	req, err := c.newRequest(ctx, cl)
	if err != nil {
		return err
	}
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	resp, err := c.httpClient(cl.token).Do(req)
	if err != nil {
		return apperrors.FromTransport(err)
	}
	defer resp.Body.Close()

	status = resp.StatusCode
	span.SetAttributes(attribute.Int("http.response.status_code", status))

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return apperrors.FromTransport(err)
	}

	if status < 200 || status >= 300 {
		appErr := apperrors.Upstream(status, errorMessage(status, body))
		c.logger.DebugContext(ctx, "backend rejected request",
			"endpoint", cl.endpoint, "status", status, "message", appErr.Message)
		return appErr
	}

	if cl.out == nil || len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	if err := decodePayload(body, cl.selectors, cl.out); err != nil {
		return apperrors.Wrapf(err, apperrors.ErrCodeUnavailable, "Unexpected response from the server.")
	}
	return nil
}

func (c *Client) newRequest(ctx context.Context, cl call) (*http.Request, error) {
	var body io.Reader
	contentType := cl.contentType
	switch {
	case cl.rawBody != nil:
		body = cl.rawBody
	case cl.body != nil:
		buf, err := json.Marshal(cl.body)
		if err != nil {
			return nil, apperrors.Wrap(err, apperrors.ErrCodeInternal, "encode request body")
		}
		body = bytes.NewReader(buf)
		contentType = "application/json"
	}

	req, err := http.NewRequestWithContext(ctx, cl.method, c.endpointURL(cl.path, cl.query), body)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInternal, "build backend request")
	}
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	for k, vs := range cl.header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	return req, nil
}

func (c *Client) record(endpoint string, status int, d time.Duration, err error) {
	if c.metrics == nil {
		return
	}
	tags := map[string]string{"endpoint": endpoint, "status": statusClass(status)}
	if status == 0 && err != nil {
		tags["error"] = obserrors.Classify(err)
	}
	c.metrics.Timing("backend.request", d, tags)
	c.metrics.Count("backend.request.count", 1, tags)
}

func statusClass(status int) string {
	if status == 0 {
		return "error"
	}
	return strconv.Itoa(status/100) + "xx"
}

// decodePayload unwraps the optional {"data": ...} envelope, then picks the first
// selector that yields a non-null value and decodes it into out.
func decodePayload(body []byte, selectors []string, out any) error {
	var doc any
	if err := json.Unmarshal(body, &doc); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	payload, err := firstMatch(doc, "data", "@")
	if err != nil {
		return err
	}
	if len(selectors) > 0 {
		picked, err := firstMatch(payload, append(selectors, "@")...)
		if err != nil {
			return err
		}
		payload = picked
	}

	buf, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("re-encode payload: %w", err)
	}
	if err := json.Unmarshal(buf, out); err != nil {
		return fmt.Errorf("decode payload: %w", err)
	}
	return nil
}

func firstMatch(doc any, exprs ...string) (any, error) {
	for _, expr := range exprs {
		v, err := jmespath.Search(expr, doc)
		if err != nil {
			return nil, fmt.Errorf("evaluate %q: %w", expr, err)
		}
		if v != nil {
			return v, nil
		}
	}
	return nil, nil
}

// errorMessage extracts a human-readable message from an error body.
func errorMessage(status int, body []byte) string {
	var doc any
	if err := json.Unmarshal(body, &doc); err == nil {
		for _, expr := range errorMessagePaths {
			v, err := jmespath.Search(expr, doc)
			if err != nil {
				continue
			}
			if s, ok := v.(string); ok && strings.TrimSpace(s) != "" {
				return strings.TrimSpace(s)
			}
		}
	}
	return defaultMessage(status)
}

func defaultMessage(status int) string {
	switch {
	case status == http.StatusUnauthorized:
		return "Your session has expired. Please sign in again."
	case status == http.StatusForbidden:
		return "You do not have access to this resource."
	case status == http.StatusNotFound:
		return "Not found."
	case status == http.StatusTooManyRequests:
		return "Too many requests. Please slow down."
	case status >= 500:
		return "The service is temporarily unavailable. Please try again later."
	default:
		return "The request could not be completed."
	}
}
