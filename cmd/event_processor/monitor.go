// monitor.go: periodic progress reporter goroutine (C8)
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package main

import (
	"sync/atomic"
	"time"

	"github.com/tradeflow/eventlog"
	"github.com/tradeflow/eventlog/metrics"
	"go.uber.org/zap"
)

// runMonitor wakes every interval and logs cumulative totals plus the
// rate observed since its previous tick, then refreshes the ring-depth
// scrape gauge from the same reading. It takes one extra reading after
// shutdown is observed so the final partial interval is still reported,
// then returns.
func runMonitor(
	ring *eventlog.Ring[eventlog.Frame],
	validator *eventlog.Validator,
	collector *metrics.Collector,
	interval time.Duration,
	shuttingDown *atomic.Bool,
	logger *zap.Logger,
) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	var (
		lastProcessed uint64
		lastTick      = time.Now()
	)

	for {
		<-ticker.C

		now := time.Now()
		elapsed := now.Sub(lastTick).Seconds()
		lastTick = now

		processed := validator.EventsProcessed()
		validated := validator.TradesValidated()
		errs := validator.ValidationErrors()
		depth := ring.Size()

		var rate float64
		if elapsed > 0 {
			rate = float64(processed-lastProcessed) / elapsed
		}
		lastProcessed = processed

		logger.Info("consumer progress",
			zap.Uint64("events_processed", processed),
			zap.Uint64("trades_validated", validated),
			zap.Uint64("validation_errors", errs),
			zap.Uint64("ring_depth", depth),
			zap.Float64("events_per_sec", rate),
		)

		if collector != nil {
			collector.RingDepth.Set(float64(depth))
		}

		if shuttingDown.Load() {
			return
		}
	}
}
