// producer.go: reader-to-ring producer goroutine (C8)
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package main

import (
	"runtime"
	"sync/atomic"
	"time"

	"github.com/tradeflow/eventlog"
	"go.uber.org/zap"
)

const tailerWaitTimeout = 100 * time.Millisecond

// runProducer owns reader and tailer: it reads frames in append order and
// pushes them into ring, spinning with a cooperative yield while the ring
// is full, until shutdown is requested. When the reader has caught up to
// EOF it remaps the file (in case it grew during the read) and, failing
// that, blocks on the tailer before retrying. A non-nil return means the
// producer stopped itself (corruption or I/O failure) rather than being
// asked to; it has already set *shuttingDown so the other two goroutines
// unwind too.
func runProducer(reader *eventlog.Reader, tailer *eventlog.Tailer, ring *eventlog.Ring[eventlog.Frame], shuttingDown *atomic.Bool, logger *zap.Logger) error {
	for !shuttingDown.Load() {
		frame, ok, err := reader.ReadNext()
		if err != nil {
			logger.Error("corrupted frame encountered, producer stopping", zap.Error(err))
			shuttingDown.Store(true)
			return err
		}

		if ok {
			pushWithBackpressure(ring, frame, shuttingDown)
			continue
		}

		if grew, err := reader.RemapIfGrown(); err != nil {
			logger.Error("remap failed, producer stopping", zap.Error(err))
			shuttingDown.Store(true)
			return err
		} else if grew {
			continue
		}

		if tailer.WaitForModification(tailerWaitTimeout) {
			if _, err := reader.RemapIfGrown(); err != nil {
				logger.Error("remap after wake failed, producer stopping", zap.Error(err))
				shuttingDown.Store(true)
				return err
			}
		}
	}
	return nil
}

// pushWithBackpressure retries TryPush until it succeeds or shutdown is
// requested, yielding the goroutine between attempts rather than busy
// spinning the OS thread.
func pushWithBackpressure(ring *eventlog.Ring[eventlog.Frame], frame eventlog.Frame, shuttingDown *atomic.Bool) {
	for !ring.TryPush(frame) {
		if shuttingDown.Load() {
			return
		}
		runtime.Gosched()
	}
}
