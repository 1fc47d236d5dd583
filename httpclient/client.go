// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package httpclient

import (
	"context"
	"net/http"

	"github.com/luxfi/jsonrpc"
)

// Client sends JSON-RPC calls over HTTP and blocks until each one is
// answered. It is safe for concurrent use.
type Client struct {
	core core
}

// NewClient returns a blocking client.
func NewClient(opts ...Option) *Client {
	return &Client{core: newCore(opts)}
}

// Request starts a call to url with the given HTTP verb.
func (c *Client) Request(verb, url string) *RequestBuilder {
	return &RequestBuilder{target: c.core.target(verb, url)}
}

// Post starts a POST call to url.
func (c *Client) Post(url string) *RequestBuilder {
	return c.Request(http.MethodPost, url)
}

// RequestBuilder is one configured endpoint of a Client.
type RequestBuilder struct {
	target target
}

// Header adds a header to calls made through rb.
func (rb *RequestBuilder) Header(key, value string) *RequestBuilder {
	rb.target.header.Add(key, value)
	return rb
}

// Send issues req with the given common part and returns its decoded output.
//
// Encoding failures of the request are returned before anything is sent.
// A non-2xx status, or any failure to reach the peer, is a Transport error.
// A body that is not a response object is an Encoding error. Otherwise the
// result is that of jsonrpc.ParseSingleResponse.
func Send[O any](ctx context.Context, rb *RequestBuilder, req jsonrpc.Request[O], common jsonrpc.CommonPart) (O, error) {
	return send(ctx, rb.target, req, common)
}

// Notify issues req as a notification and checks only the HTTP status.
func Notify[O any](ctx context.Context, rb *RequestBuilder, req jsonrpc.Request[O]) error {
	return notify(ctx, rb.target, req)
}
