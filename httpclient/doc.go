// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package httpclient sends JSON-RPC 2.0 calls over HTTP.
//
// Client blocks the calling goroutine for the whole call:
//
//	client := httpclient.NewClient()
//	sum, err := httpclient.Send(ctx, client.Post(url), add(1, 2), jsonrpc.DefaultCommonPart())
//
// AsyncClient returns a Future that performs no I/O until it is awaited or
// started. Both speak only single calls; batch responses are rejected.
package httpclient
