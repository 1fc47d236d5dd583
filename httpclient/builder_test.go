// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package httpclient

import (
	"compress/gzip"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luxfi/jsonrpc"
)

func TestClientBuilder(t *testing.T) {
	peer := newMockPeer(t, http.StatusOK, `{"jsonrpc":"2.0","id":1,"result":"pong"}`)

	client, err := NewClientBuilder().
		TCPNoDelay().
		ConnectTimeout(time.Second).
		DefaultHeaders(http.Header{"X-Api-Key": {"secret"}}).
		Build()
	require.NoError(t, err)

	out, err := Send(context.Background(), client.Post(peer.URL), pingRequest{}, jsonrpc.Num(1))
	require.NoError(t, err)
	assert.Equal(t, "pong", out)

	seen := peer.seen()
	require.Len(t, seen, 1)
	assert.Equal(t, "secret", seen[0].Header.Get("X-Api-Key"))
	assert.Empty(t, seen[0].Header.Get("Accept-Encoding"))
}

func TestClientBuilderGzip(t *testing.T) {
	acceptEncoding := make(chan string, 1)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		acceptEncoding <- r.Header.Get("Accept-Encoding")
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Content-Encoding", "gzip")
		zw := gzip.NewWriter(w)
		_, _ = zw.Write([]byte(`{"jsonrpc":"2.0","id":1,"result":"pong"}`))
		_ = zw.Close()
	}))
	defer server.Close()

	client, err := NewClientBuilder().Gzip(true).Build()
	require.NoError(t, err)

	out, err := Send(context.Background(), client.Post(server.URL), pingRequest{}, jsonrpc.Num(1))
	require.NoError(t, err)
	assert.Equal(t, "pong", out)
	assert.Equal(t, "gzip", <-acceptEncoding)
}

func TestClientBuilderRejects(t *testing.T) {
	_, err := NewClientBuilder().ConnectTimeout(-time.Second).Build()
	assert.Error(t, err)

	_, err = NewClientBuilder().RateLimit(10, 0).Build()
	assert.Error(t, err)
}
