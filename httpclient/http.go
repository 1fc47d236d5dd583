// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package httpclient

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/luxfi/jsonrpc"
)

const contentType = "application/json"

// StatusError is the cause of the Transport error returned when the peer
// answers with a non-2xx status. The body of such a response is not parsed.
type StatusError struct {
	Code   int
	Status string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("received status code: %d", e.Code)
}

// CleanlyCloseBody drains and closes an HTTP response body to prevent
// HTTP/2 GOAWAY errors caused by closing bodies with unread data.
// See: https://github.com/golang/go/issues/46071
func CleanlyCloseBody(body io.ReadCloser) error {
	if body == nil {
		return nil
	}
	_, _ = io.Copy(io.Discard, body)
	return body.Close()
}

// core is the state shared by the blocking and non-blocking clients.
type core struct {
	*options
}

func newCore(opts []Option) core {
	return core{options: newOptions(opts)}
}

// target is one configured endpoint: the verb, the URL and the per-call
// headers collected by a request builder.
type target struct {
	core   *core
	verb   string
	url    string
	header http.Header
}

func (c *core) target(verb, rawURL string) target {
	return target{core: c, verb: verb, url: rawURL, header: make(http.Header)}
}

// exchange posts body to the target and returns the response body of a 2xx
// answer. Every failure is a Transport error.
func (t target) exchange(ctx context.Context, method string, body []byte) ([]byte, error) {
	c := t.core
	uri, err := url.Parse(t.url)
	if err != nil {
		return nil, jsonrpc.Transport(fmt.Errorf("invalid url: %w", err))
	}
	if len(c.queryParams) > 0 {
		query := uri.Query()
		for key, values := range c.queryParams {
			for _, v := range values {
				query.Add(key, v)
			}
		}
		uri.RawQuery = query.Encode()
	}

	request, err := http.NewRequestWithContext(ctx, t.verb, uri.String(), bytes.NewReader(body))
	if err != nil {
		return nil, jsonrpc.Transport(fmt.Errorf("failed to create request: %w", err))
	}
	for key, values := range c.headers {
		request.Header[key] = append([]string(nil), values...)
	}
	for key, values := range t.header {
		request.Header[key] = append(request.Header[key], values...)
	}
	request.Header.Set("Content-Type", contentType)
	request.Header.Set("Accept", contentType)

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, jsonrpc.Transport(fmt.Errorf("rate limiter: %w", err))
		}
	}

	c.logger.Debug("sending request",
		zap.String("method", method),
		zap.String("url", uri.Redacted()),
	)
	resp, err := c.httpClient.Do(request)
	if err != nil {
		return nil, jsonrpc.Transport(fmt.Errorf("failed to issue request: %w", err))
	}
	defer CleanlyCloseBody(resp.Body)

	// Return an error for any non successful status code
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Warn("unexpected status",
			zap.String("method", method),
			zap.Int("status", resp.StatusCode),
		)
		return nil, jsonrpc.Transport(&StatusError{Code: resp.StatusCode, Status: resp.Status})
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, jsonrpc.Transport(fmt.Errorf("failed to read response: %w", err))
	}
	return data, nil
}

// send runs one call end to end: envelope, HTTP exchange, response parsing.
func send[O any](ctx context.Context, t target, req jsonrpc.Request[O], common jsonrpc.CommonPart) (out O, err error) {
	method := req.Method()
	start := time.Now()
	defer func() {
		t.core.metrics.observe(method, err, time.Since(start))
	}()

	body, err := jsonrpc.EncodeRequest(req, common)
	if err != nil {
		return out, err
	}

	data, err := t.exchange(ctx, method, body)
	if err != nil {
		return out, err
	}
	if common.IsNotification() && len(bytes.TrimSpace(data)) == 0 {
		return out, jsonrpc.None()
	}

	resp, err := jsonrpc.DecodeResponse(data)
	if err != nil {
		return out, jsonrpc.Encoding("failed to decode a response", err)
	}
	return jsonrpc.ParseSingleResponse(req, resp)
}

// notify sends req as a notification. Only the HTTP status is checked.
func notify[O any](ctx context.Context, t target, req jsonrpc.Request[O]) (err error) {
	method := req.Method()
	start := time.Now()
	defer func() {
		t.core.metrics.observe(method, err, time.Since(start))
	}()

	body, err := jsonrpc.EncodeRequest(req, jsonrpc.Notify())
	if err != nil {
		return err
	}
	_, err = t.exchange(ctx, method, body)
	return err
}
