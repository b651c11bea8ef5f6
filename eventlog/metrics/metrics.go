// metrics.go: scrape-based counterpart to the exact latency histogram
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

// Package metrics exposes Prometheus counters and a histogram mirroring
// the consumer pipeline's in-process validator counters and latency
// samples. It is additive observability, not a replacement for the exact
// order-statistic histogram in package eventlog: a bucketed Prometheus
// histogram interpolates between buckets and cannot reproduce an exact
// percentile the way that histogram's distinct-value walk can.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Collector bundles the consumer pipeline's scrape-facing metrics.
type Collector struct {
	EventsProcessed  prometheus.Counter
	TradesValidated  prometheus.Counter
	ValidationErrors prometheus.Counter
	RingDepth        prometheus.Gauge
	LatencySeconds   prometheus.Histogram
}

// NewCollector constructs a Collector and registers it against reg. A nil
// reg registers against the default Prometheus registry.
func NewCollector(reg prometheus.Registerer) *Collector {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	c := &Collector{
		EventsProcessed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "event_processor",
			Name:      "events_processed_total",
			Help:      "Total number of event-log frames decoded by the consumer.",
		}),
		TradesValidated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "event_processor",
			Name:      "trades_validated_total",
			Help:      "Total number of TRADE_CREATED frames that passed validation.",
		}),
		ValidationErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "event_processor",
			Name:      "validation_errors_total",
			Help:      "Total number of frames that failed semantic validation.",
		}),
		RingDepth: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "event_processor",
			Name:      "ring_depth",
			Help:      "Approximate number of decoded frames currently queued in the SPSC ring.",
		}),
		LatencySeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "event_processor",
			Name:      "event_latency_seconds",
			Help:      "End-to-end latency from frame append to validation, in seconds.",
			Buckets:   prometheus.ExponentialBuckets(50e-6, 2, 16), // 50us .. ~1.6s
		}),
	}

	reg.MustRegister(c.EventsProcessed, c.TradesValidated, c.ValidationErrors, c.RingDepth, c.LatencySeconds)
	return c
}

// ObserveLatencyNs records a nanosecond latency sample on the histogram.
func (c *Collector) ObserveLatencyNs(ns int64) {
	c.LatencySeconds.Observe(float64(ns) / 1e9)
}
