// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package httpclient

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// ClientBuilder configures the HTTP transport of a blocking Client.
type ClientBuilder struct {
	noDelay        bool
	gzip           bool
	connectTimeout time.Duration
	headers        http.Header
	limit          rate.Limit
	burst          int
	opts           []Option
}

func NewClientBuilder() *ClientBuilder {
	return &ClientBuilder{headers: make(http.Header)}
}

// TCPNoDelay disables Nagle's algorithm on every connection.
func (b *ClientBuilder) TCPNoDelay() *ClientBuilder {
	b.noDelay = true
	return b
}

// DefaultHeaders adds headers sent with every call.
func (b *ClientBuilder) DefaultHeaders(h http.Header) *ClientBuilder {
	for key, values := range h {
		for _, v := range values {
			b.headers.Add(key, v)
		}
	}
	return b
}

// Gzip toggles transparent gzip decompression of responses.
func (b *ClientBuilder) Gzip(enabled bool) *ClientBuilder {
	b.gzip = enabled
	return b
}

// ConnectTimeout bounds the time spent establishing a connection.
func (b *ClientBuilder) ConnectTimeout(d time.Duration) *ClientBuilder {
	b.connectTimeout = d
	return b
}

func (b *ClientBuilder) Logger(l *zap.Logger) *ClientBuilder {
	b.opts = append(b.opts, WithLogger(l))
	return b
}

func (b *ClientBuilder) Metrics(m *Metrics) *ClientBuilder {
	b.opts = append(b.opts, WithMetrics(m))
	return b
}

// RateLimit allows limit calls per second with bursts of up to burst calls.
func (b *ClientBuilder) RateLimit(limit rate.Limit, burst int) *ClientBuilder {
	b.limit = limit
	b.burst = burst
	return b
}

// Build returns the configured client.
func (b *ClientBuilder) Build() (*Client, error) {
	if b.connectTimeout < 0 {
		return nil, fmt.Errorf("negative connect timeout %s", b.connectTimeout)
	}
	if b.limit != 0 && b.burst <= 0 {
		return nil, errors.New("rate limit needs a positive burst")
	}

	dialer := &net.Dialer{Timeout: b.connectTimeout}
	noDelay := b.noDelay
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.DisableCompression = !b.gzip
	transport.DialContext = func(ctx context.Context, network, addr string) (net.Conn, error) {
		conn, err := dialer.DialContext(ctx, network, addr)
		if err != nil {
			return nil, err
		}
		if tcp, ok := conn.(*net.TCPConn); ok && noDelay {
			if err := tcp.SetNoDelay(true); err != nil {
				_ = conn.Close()
				return nil, err
			}
		}
		return conn, nil
	}

	opts := []Option{WithHTTPClient(&http.Client{Timeout: defaultTimeout, Transport: transport})}
	for key, values := range b.headers {
		for _, v := range values {
			opts = append(opts, WithHeader(key, v))
		}
	}
	if b.limit != 0 {
		opts = append(opts, WithLimiter(rate.NewLimiter(b.limit, b.burst)))
	}
	opts = append(opts, b.opts...)
	return NewClient(opts...), nil
}
