// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package api is the HTTP client of the workout backend.
//
// It owns the base URL and default headers, attaches the bearer token once
// the session has one, and reports failures as either *AppError (the backend
// answered with a structured error message) or *TransportError (timeouts,
// connection problems, unexpected or malformed responses) so callers can
// present them differently.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"gymlog/cli/internal/logging"
)

const tracerName = "gymlog/cli/internal/api"

// maxErrorBody caps how much of an error response is read.
const maxErrorBody = 64 << 10

// Options configures a Client.
type Options struct {
	// BaseURL is the backend origin, e.g. "http://localhost:3333".
	BaseURL string
	// Timeout bounds each request. Zero means 10 seconds.
	Timeout time.Duration
	// Token returns the current bearer token; "" sends no Authorization header.
	Token func() string
	// HTTPClient overrides the underlying client (Timeout is then ignored).
	HTTPClient *http.Client
	// UserAgent defaults to "gymlog-cli".
	UserAgent string
	Logger    logging.Logger
}

// Client calls the workout backend over REST.
type Client struct {
	baseURL   string
	endpoints Endpoints
	http      *http.Client
	token     func() string
	userAgent string
	log       logging.Logger
	tracer    trace.Tracer
}

// New creates a Client from opts.
func New(opts Options) *Client {
	hc := opts.HTTPClient
	if hc == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		hc = &http.Client{Timeout: timeout}
	}
	token := opts.Token
	if token == nil {
		token = func() string { return "" }
	}
	ua := opts.UserAgent
	if ua == "" {
		ua = "gymlog-cli"
	}
	log := opts.Logger
	if log == nil {
		log = logging.Discard()
	}
	return &Client{
		baseURL:   strings.TrimRight(opts.BaseURL, "/"),
		endpoints: DefaultEndpoints(),
		http:      hc,
		token:     token,
		userAgent: ua,
		log:       log.With("component", "api"),
		tracer:    otel.Tracer(tracerName),
	}
}

// BaseURL returns the backend origin without a trailing slash.
func (c *Client) BaseURL() string { return c.baseURL }

// request describes one call. body is JSON-encoded unless raw is set.
type request struct {
	op          string
	method      string
	path        string
	body        any
	raw         io.Reader
	contentType string
	out         any
}

// do executes r and decodes a 2xx JSON body into r.out when it is non-nil.
func (c *Client) do(ctx context.Context, r request) error {
	ctx, span := c.tracer.Start(ctx, r.op, trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.method", r.method),
			attribute.String("http.route", r.path),
		))
	defer span.End()

	err := c.roundTrip(ctx, span, r)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}

func (c *Client) roundTrip(ctx context.Context, span trace.Span, r request) error {
	var body io.Reader
	contentType := r.contentType
	switch {
	case r.raw != nil:
		body = r.raw
	case r.body != nil:
		b, err := json.Marshal(r.body)
		if err != nil {
			return &TransportError{Op: r.op, Err: fmt.Errorf("encode request: %w", err)}
		}
		body = bytes.NewReader(b)
		contentType = "application/json"
	}

	req, err := http.NewRequestWithContext(ctx, r.method, c.baseURL+r.path, body)
	if err != nil {
		return &TransportError{Op: r.op, Err: err}
	}
	c.setStandardHeaders(req)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	started := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Debug(ctx, "request failed", "op", r.op, "error", err)
		return &TransportError{Op: r.op, Err: err}
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))
	c.log.Debug(ctx, "request done", "op", r.op, "method", r.method, "path", r.path,
		"status", resp.StatusCode, "elapsed", time.Since(started).String(),
		"request_id", req.Header.Get("X-Request-ID"))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(r.op, resp)
	}
	if r.out == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(r.out); err != nil {
		if errors.Is(err, io.EOF) {
			return &TransportError{Op: r.op, StatusCode: resp.StatusCode, Err: errors.New("empty response body")}
		}
		return &TransportError{Op: r.op, StatusCode: resp.StatusCode, Err: fmt.Errorf("malformed response: %w", err)}
	}
	return nil
}

// setStandardHeaders applies the headers every request carries.
func (c *Client) setStandardHeaders(req *http.Request) {
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-ID", uuid.NewString())
	if token := strings.TrimSpace(c.token()); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}
