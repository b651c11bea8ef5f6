// consumer.go: ring-to-validator consumer goroutine (C8)
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package main

import (
	"runtime"
	"sync/atomic"

	"github.com/tradeflow/eventlog"
	"github.com/tradeflow/eventlog/metrics"
	"go.uber.org/zap"
)

// runConsumer owns validator and histogram: it pops decoded frames from
// ring, records each frame's end-to-end latency (the shared monotonic
// clock at pop time minus the frame's TimestampNs), validates it, and
// every reportEvery events emits a histogram summary and resets it. It
// continues until the ring is observed empty AND shutdown has been
// requested, draining whatever the producer queued before exiting.
func runConsumer(
	ring *eventlog.Ring[eventlog.Frame],
	validator *eventlog.Validator,
	histogram *eventlog.Histogram,
	collector *metrics.Collector,
	reportEvery uint64,
	shuttingDown *atomic.Bool,
	logger *zap.Logger,
) {
	var sinceReport uint64

	for {
		frame, ok := ring.TryPop()
		if !ok {
			if shuttingDown.Load() {
				return
			}
			runtime.Gosched()
			continue
		}

		latencyNs := eventlog.MonotonicNanos() - frame.TimestampNs
		validationErr := validator.Validate(frame)
		if validationErr != nil {
			logger.Debug("validation error", zap.Uint64("sequence_num", frame.SequenceNum), zap.Error(validationErr))
		}
		histogram.Record(latencyNs)
		if collector != nil {
			collector.ObserveLatencyNs(latencyNs)
			collector.EventsProcessed.Inc()
			switch {
			case validationErr != nil:
				collector.ValidationErrors.Inc()
			case frame.EventType == eventlog.TradeCreated:
				collector.TradesValidated.Inc()
				collector.RingDepth.Set(float64(ring.Size()))
			}
		}

		sinceReport++
		if sinceReport >= reportEvery {
			logger.Info("latency summary", zap.String("summary", histogram.Summary()))
			histogram.Clear()
			sinceReport = 0
		}
	}
}
