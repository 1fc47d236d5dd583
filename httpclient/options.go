// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package httpclient

import (
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const defaultTimeout = 30 * time.Second

// Option configures a Client or an AsyncClient
type Option func(*options)

type options struct {
	httpClient  *http.Client
	logger      *zap.Logger
	metrics     *Metrics
	limiter     *rate.Limiter
	headers     http.Header
	queryParams url.Values
}

// WithHTTPClient sets the underlying HTTP client
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) { o.httpClient = c }
}

// WithLogger sets the logger. Clients log nothing by default.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithMetrics records every call in m
func WithMetrics(m *Metrics) Option {
	return func(o *options) { o.metrics = m }
}

// WithLimiter makes every call wait on l before it is dispatched.
func WithLimiter(l *rate.Limiter) Option {
	return func(o *options) { o.limiter = l }
}

// WithHeader adds a header sent with every call.
func WithHeader(key, value string) Option {
	return func(o *options) { o.headers.Add(key, value) }
}

// WithQueryParam adds a query parameter to every request URL.
func WithQueryParam(key, value string) Option {
	return func(o *options) { o.queryParams.Add(key, value) }
}

func newOptions(opts []Option) *options {
	o := &options{
		headers:     make(http.Header),
		queryParams: make(url.Values),
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.httpClient == nil {
		o.httpClient = &http.Client{Timeout: defaultTimeout}
	}
	if o.logger == nil {
		o.logger = zap.NewNop()
	}
	return o
}
