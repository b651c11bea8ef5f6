// tailer.go: block-until-modified notification with polling fallback (C4)
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package eventlog

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

const (
	pollMinInterval = 10 * time.Millisecond
	pollMaxInterval = 100 * time.Millisecond
)

// Tailer suspends the caller until a log file has likely grown. It
// prefers a native notification primitive (inotify/kqueue/etc. via
// fsnotify) and falls back to a bounded-backoff poll when no native
// watcher could be initialized.
type Tailer struct {
	path   string
	logger *zap.Logger

	watcher *fsnotify.Watcher // nil if running in polling mode

	lastSize int64
	backoff  *backoff.ExponentialBackOff
}

// NewTailer initializes a Tailer watching path. If a native
// file-modification primitive is available, it watches path's parent
// directory (so the watch survives the file not yet existing) and
// filters for events on path itself. Otherwise it falls back to polling
// from a 10ms interval.
func NewTailer(path string, logger *zap.Logger) (*Tailer, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	t := &Tailer{
		path:   path,
		logger: logger,
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		logger.Warn("native file-modification notification unavailable, falling back to polling", zap.Error(err))
		t.initPolling()
		return t, nil
	}

	dir := filepath.Dir(path)
	if err := watcher.Add(dir); err != nil {
		_ = watcher.Close()
		logger.Warn("failed to watch log directory, falling back to polling", zap.String("dir", dir), zap.Error(err))
		t.initPolling()
		return t, nil
	}

	t.watcher = watcher
	return t, nil
}

func (t *Tailer) initPolling() {
	if info, err := os.Stat(t.path); err == nil {
		t.lastSize = info.Size()
	}
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = pollMinInterval
	bo.MaxInterval = pollMaxInterval
	bo.Multiplier = 2
	bo.RandomizationFactor = 0 // the spec's back-off is deterministic, not jittered
	bo.MaxElapsedTime = 0     // never give up; WaitForModification's own timeout bounds the loop
	t.backoff = bo
}

// WaitForModification blocks until the log file has likely grown or
// timeout elapses, returning true in the former case. A timeout of 0
// (or less) blocks indefinitely, in both native and polling mode.
func (t *Tailer) WaitForModification(timeout time.Duration) bool {
	if t.watcher != nil {
		return t.waitNative(timeout)
	}
	return t.waitPolling(timeout)
}

func (t *Tailer) waitNative(timeout time.Duration) bool {
	var deadline <-chan time.Time
	if timeout > 0 {
		timer := time.NewTimer(timeout)
		defer timer.Stop()
		deadline = timer.C
	}

	for {
		select {
		case event, ok := <-t.watcher.Events:
			if !ok {
				return false
			}
			if filepath.Clean(event.Name) != filepath.Clean(t.path) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			// Drain any further pending notifications without blocking,
			// so a burst of writes collapses into a single wake-up.
			t.drainPending()
			return true
		case err, ok := <-t.watcher.Errors:
			if !ok {
				return false
			}
			t.logger.Debug("fsnotify watcher error", zap.Error(err))
		case <-deadline:
			return false
		}
	}
}

func (t *Tailer) drainPending() {
	for {
		select {
		case <-t.watcher.Events:
		default:
			return
		}
	}
}

func (t *Tailer) waitPolling(timeout time.Duration) bool {
	deadline := time.Now().Add(timeout)
	unbounded := timeout <= 0

	for unbounded || time.Now().Before(deadline) {
		info, err := os.Stat(t.path)
		if err == nil && info.Size() > t.lastSize {
			t.lastSize = info.Size()
			t.backoff.Reset()
			return true
		}

		wait, err := t.backoff.NextBackOff()
		if err != nil {
			// ExponentialBackOff configured with MaxElapsedTime=0 never
			// reports permanent failure; this is unreachable in practice.
			wait = pollMaxInterval
		}
		time.Sleep(wait)
	}
	return false
}

// Close releases the native watcher, if any.
func (t *Tailer) Close() error {
	if t.watcher == nil {
		return nil
	}
	if err := t.watcher.Close(); err != nil {
		return fmt.Errorf("%w: %v", ErrIoError, err)
	}
	return nil
}
