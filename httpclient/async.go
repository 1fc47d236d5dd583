// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package httpclient

import (
	"context"
	"net/http"
	"sync"

	"github.com/luxfi/jsonrpc"
)

// AsyncClient is the non-blocking variant of Client. Its calls are deferred
// computations that do nothing until they are driven.
type AsyncClient struct {
	core core
}

func NewAsyncClient(opts ...Option) *AsyncClient {
	return &AsyncClient{core: newCore(opts)}
}

// Request starts a call to url with the given HTTP verb.
func (c *AsyncClient) Request(verb, url string) *AsyncRequestBuilder {
	return &AsyncRequestBuilder{target: c.core.target(verb, url)}
}

// Post starts a POST call to url.
func (c *AsyncClient) Post(url string) *AsyncRequestBuilder {
	return c.Request(http.MethodPost, url)
}

// AsyncRequestBuilder is one configured endpoint of an AsyncClient.
type AsyncRequestBuilder struct {
	target target
}

// Header adds a header to calls made through rb.
func (rb *AsyncRequestBuilder) Header(key, value string) *AsyncRequestBuilder {
	rb.target.header.Add(key, value)
	return rb
}

// SendAsync prepares req. No request is encoded or sent until the returned
// future is awaited or started; the steps and errors then match Send.
func SendAsync[O any](rb *AsyncRequestBuilder, req jsonrpc.Request[O], common jsonrpc.CommonPart) *Future[O] {
	t := rb.target
	return &Future[O]{
		run: func(ctx context.Context) (O, error) {
			return send(ctx, t, req, common)
		},
		done: make(chan struct{}),
	}
}

// Future is a deferred call. It runs at most once, however many times it
// is awaited or started.
type Future[O any] struct {
	run  func(context.Context) (O, error)
	once sync.Once
	done chan struct{}
	out  O
	err  error
}

func (f *Future[O]) resolve(ctx context.Context) {
	f.out, f.err = f.run(ctx)
	close(f.done)
}

// Await runs the call in the calling goroutine and returns its result. If
// the call is already running, Await waits for it.
func (f *Future[O]) Await(ctx context.Context) (O, error) {
	f.once.Do(func() { f.resolve(ctx) })
	return f.out, f.err
}

// Start runs the call on a new goroutine. Done is closed once it finishes.
func (f *Future[O]) Start(ctx context.Context) {
	go f.once.Do(func() { f.resolve(ctx) })
}

// Done is closed when the call has finished.
func (f *Future[O]) Done() <-chan struct{} {
	return f.done
}
