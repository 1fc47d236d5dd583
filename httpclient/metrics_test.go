// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package httpclient

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/luxfi/jsonrpc"
)

func TestMetrics(t *testing.T) {
	ok := newMockPeer(t, http.StatusOK, `{"jsonrpc":"2.0","id":1,"result":5}`)
	down := newMockPeer(t, http.StatusBadGateway, "")

	reg := prometheus.NewRegistry()
	metrics := NewMetrics(reg)
	client := NewClient(WithMetrics(metrics))

	for i := 0; i < 2; i++ {
		_, err := Send(context.Background(), client.Post(ok.URL), addRequest{2, 3}, jsonrpc.Num(1))
		require.NoError(t, err)
	}
	_, err := Send(context.Background(), client.Post(down.URL), addRequest{2, 3}, jsonrpc.Num(1))
	require.Error(t, err)
	_, err = Send(context.Background(), client.Post(ok.URL), badRequest{}, jsonrpc.Num(1))
	require.Error(t, err)

	assert.Equal(t, 2.0, testutil.ToFloat64(metrics.requests.WithLabelValues("add", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.requests.WithLabelValues("add", "transport")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.requests.WithLabelValues("bad", "encoding")))
	assert.Equal(t, 2, testutil.CollectAndCount(metrics.duration))

	count, err := testutil.GatherAndCount(reg, "jsonrpc_client_requests_total")
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestOutcome(t *testing.T) {
	tests := map[string]error{
		"ok":          nil,
		"option_none": jsonrpc.None(),
		"custom":      jsonrpc.ErrBatchResponse,
		"protocol":    jsonrpc.Protocol(nil),
		"encoding":    jsonrpc.Encoding("x", nil),
		"transport":   jsonrpc.Transport(errors.New("down")),
		"unknown":     errors.New("other"),
	}
	for expect, err := range tests {
		assert.Equal(t, expect, outcome(err), expect)
	}
}

func TestNilMetrics(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() { m.observe("add", nil, 0) })
}

func TestLogging(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	ok := newMockPeer(t, http.StatusOK, `{"jsonrpc":"2.0","id":1,"result":5}`)
	down := newMockPeer(t, http.StatusTeapot, "")

	client := NewClient(WithLogger(zap.New(core)))
	_, err := Send(context.Background(), client.Post(ok.URL), addRequest{2, 3}, jsonrpc.Num(1))
	require.NoError(t, err)
	_, err = Send(context.Background(), client.Post(down.URL), addRequest{2, 3}, jsonrpc.Num(1))
	require.Error(t, err)

	sent := logs.FilterMessage("sending request").All()
	require.Len(t, sent, 2)
	assert.Equal(t, "add", sent[0].ContextMap()["method"])

	warned := logs.FilterMessage("unexpected status").All()
	require.Len(t, warned, 1)
	assert.Equal(t, zapcore.WarnLevel, warned[0].Level)
	assert.Equal(t, int64(http.StatusTeapot), warned[0].ContextMap()["status"])
}
