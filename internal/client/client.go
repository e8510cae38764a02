// Package client talks to the mock REST backend on behalf of the web app.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"resto-app/internal/logger"
	"resto-app/internal/metrics"
	"resto-app/internal/state"

	"github.com/sony/gobreaker/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
)

const (
	maxResponseBytes = 4 << 20

	breakerFailures = 5
	breakerTimeout  = 15 * time.Second
)

type response struct {
	status int
	body   []byte
}

type Client struct {
	baseURL string
	http    *http.Client
	breaker *gobreaker.CircuitBreaker[response]

	requests metrics.Counter
	failures metrics.Counter
	rejected metrics.Counter
}

// Stats is a snapshot of the traffic sent to the backend.
type Stats struct {
	Requests uint64 `json:"requests"`
	Failures uint64 `json:"failures"`
	Rejected uint64 `json:"rejected"`
	Breaker  string `json:"breaker"`
}

func (c *Client) Stats() Stats {
	return Stats{
		Requests: c.requests.Load(),
		Failures: c.failures.Load(),
		Rejected: c.rejected.Load(),
		Breaker:  c.breaker.State().String(),
	}
}

type Option func(*Client)

// WithHTTPClient replaces the instrumented default http client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

func New(baseURL string, timeout time.Duration, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
	for _, opt := range opts {
		opt(c)
	}

	c.breaker = gobreaker.NewCircuitBreaker[response](gobreaker.Settings{
		Name:    "backend",
		Timeout: breakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= breakerFailures
		},
		// A status error means the backend answered, so it is healthy.
		IsSuccessful: func(err error) bool {
			var se *StatusError
			return err == nil || errors.As(err, &se)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.L().Warn("circuit breaker state changed",
				zap.String("name", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	})
	return c
}

// do sends in as JSON (when non-nil) and decodes the 2xx body into out
// (when non-nil).
func (c *Client) do(ctx context.Context, method, path string, query url.Values, in, out any) error {
	var payload []byte
	if in != nil {
		var err error
		if payload, err = json.Marshal(in); err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
	}

	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	c.requests.Inc()
	timer := metrics.StartTimer()

	res, err := c.breaker.Execute(func() (response, error) {
		return c.send(ctx, method, target, payload)
	})
	if err != nil {
		var se *StatusError
		if errors.As(err, &se) {
			return err
		}
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			c.rejected.Inc()
			return fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
		c.failures.Inc()
		logger.FromCtx(ctx).Warn("backend request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Duration("duration", timer.Duration()),
			zap.Error(err),
		)
		return err
	}

	logger.FromCtx(ctx).Debug("backend request",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", res.status),
		zap.Duration("duration", timer.Duration()),
	)

	if out == nil || len(res.body) == 0 {
		return nil
	}
	if err := json.Unmarshal(res.body, out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

func (c *Client) send(ctx context.Context, method, target string, payload []byte) (response, error) {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return response{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if rid := logger.RequestIDFrom(ctx); rid != "" {
		req.Header.Set(logger.RequestIDHeader, rid)
	}
	if clientID, ok := state.ClientIDFrom(ctx); ok {
		req.Header.Set(state.ClientIDHeader, clientID)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return response{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return response{}, fmt.Errorf("%w: read body: %v", ErrUnavailable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return response{}, newStatusError(resp.StatusCode, data)
	}
	return response{status: resp.StatusCode, body: data}, nil
}
