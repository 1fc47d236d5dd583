// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package httpclient

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/luxfi/jsonrpc"
)

// Outcome labels
const (
	OutcomeOK = "ok"
	// OutcomeUnknown covers errors that are not a *jsonrpc.Error.
	OutcomeUnknown = "unknown"
)

// Metrics counts calls by method and outcome and observes their latency.
type Metrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewMetrics creates the client metrics and registers them with reg. A nil
// reg creates unregistered collectors.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		requests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "jsonrpc",
			Subsystem: "client",
			Name:      "requests_total",
			Help:      "Number of JSON-RPC calls by method and outcome.",
		}, []string{"method", "outcome"}),
		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "jsonrpc",
			Subsystem: "client",
			Name:      "request_duration_seconds",
			Help:      "Latency of JSON-RPC calls.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method"}),
	}
}

func (m *Metrics) observe(method string, err error, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(method, outcome(err)).Inc()
	m.duration.WithLabelValues(method).Observe(elapsed.Seconds())
}

// outcome is the label of a call result: "ok" or the snake-cased error kind.
func outcome(err error) string {
	if err == nil {
		return OutcomeOK
	}
	var rpcErr *jsonrpc.Error
	if !errors.As(err, &rpcErr) {
		return OutcomeUnknown
	}
	switch rpcErr.Kind {
	case jsonrpc.KindOptionNone:
		return "option_none"
	case jsonrpc.KindCustom:
		return "custom"
	case jsonrpc.KindProtocol:
		return "protocol"
	case jsonrpc.KindEncoding:
		return "encoding"
	case jsonrpc.KindTransport:
		return "transport"
	default:
		return OutcomeUnknown
	}
}
