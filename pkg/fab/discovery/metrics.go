/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package discovery

import (
	"github.com/go-kit/kit/metrics"
	"github.com/go-kit/kit/metrics/discard"
	kitprometheus "github.com/go-kit/kit/metrics/prometheus"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics is the instrumentation sink of a discovery session.
type Metrics struct {
	// QueriesSent counts discovery queries submitted, including re-sends.
	QueriesSent metrics.Counter

	// QueryFailures counts queries that exhausted their targets or whose
	// response could not be processed.
	QueryFailures metrics.Counter

	// QueryDuration observes the duration of successful queries, in
	// seconds.
	QueryDuration metrics.Histogram

	// CacheHits counts results served from the session cache.
	CacheHits metrics.Counter
}

// NewNoOpMetrics returns a sink that discards all observations. It is the
// default for sessions constructed without WithMetrics.
func NewNoOpMetrics() *Metrics {
	return &Metrics{
		QueriesSent:   discard.NewCounter(),
		QueryFailures: discard.NewCounter(),
		QueryDuration: discard.NewHistogram(),
		CacheHits:     discard.NewCounter(),
	}
}

// NewPrometheusMetrics returns a sink registered with the given
// registerer under the given namespace.
func NewPrometheusMetrics(namespace string, registerer prometheus.Registerer) *Metrics {
	queriesSent := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "discovery",
		Name:      "queries_sent_total",
		Help:      "Number of discovery queries submitted, including re-sends.",
	}, nil)

	queryFailures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "discovery",
		Name:      "query_failures_total",
		Help:      "Number of discovery queries that failed.",
	}, nil)

	queryDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "discovery",
		Name:      "query_duration_seconds",
		Help:      "Duration of successful discovery queries.",
	}, nil)

	cacheHits := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "discovery",
		Name:      "cache_hits_total",
		Help:      "Number of results served from the session cache.",
	}, nil)

	registerer.MustRegister(queriesSent, queryFailures, queryDuration, cacheHits)

	return &Metrics{
		QueriesSent:   kitprometheus.NewCounter(queriesSent),
		QueryFailures: kitprometheus.NewCounter(queryFailures),
		QueryDuration: kitprometheus.NewHistogram(queryDuration),
		CacheHits:     kitprometheus.NewCounter(cacheHits),
	}
}
