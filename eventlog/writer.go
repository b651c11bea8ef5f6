// writer.go: append-only log writer (C2)
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package eventlog

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/agilira/go-timecache"
	"go.uber.org/zap"
)

// Writer owns the append side of an event log: it assigns strictly
// increasing sequence numbers, serializes frames, and appends them to the
// file under a single critical section so concurrent Append calls from
// multiple goroutines never interleave their bytes.
//
// A Writer is constructed once per process and closed at shutdown; the
// underlying file persists across restarts.
type Writer struct {
	file *os.File

	seq atomic.Uint64

	// appendMu serializes the combined "assign sequence + serialize +
	// write" critical section, mirroring the teacher's writeSync
	// lazy-init-then-write discipline in rotation.go/lethe.go.
	appendMu sync.Mutex

	logger    *zap.Logger
	timeCache *timecache.TimeCache

	closeOnce sync.Once
}

// WriterOption configures NewWriter.
type WriterOption func(*writerOptions)

type writerOptions struct {
	logger        *zap.Logger
	startSequence *uint64
}

// WithLogger attaches a zap logger for diagnostic output. Without one, a
// no-op logger is used.
func WithLogger(logger *zap.Logger) WriterOption {
	return func(o *writerOptions) { o.logger = logger }
}

// WithStartSequence makes the first frame appended by the new Writer
// carry sequence number n (the in-memory counter is set to n-1) instead
// of scanning the existing file's tail for the last sequence number. Use it
// when the caller is asserting that this process owns a fresh logical
// session against a (possibly shared) file and should not inherit
// sequence numbers already present.
func WithStartSequence(n uint64) WriterOption {
	return func(o *writerOptions) { o.startSequence = &n }
}

// NewWriter opens path for append, creating it (and its parent directory)
// if necessary. If the file is empty, the 16-byte file header is written
// first. If the file is non-empty, NewWriter resumes the sequence counter
// by scanning the tail of the existing log for its last complete frame,
// unless WithStartSequence overrides that scan.
func NewWriter(path string, opts ...WriterOption) (*Writer, error) {
	o := writerOptions{}
	for _, opt := range opts {
		opt(&o)
	}
	logger := o.logger
	if logger == nil {
		logger = zap.NewNop()
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, fmt.Errorf("%w: create log directory %q: %v", ErrIoError, dir, err)
		}
	}

	file, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0644)
	if err != nil {
		return nil, fmt.Errorf("%w: open log file %q: %v", ErrIoError, path, err)
	}

	info, err := file.Stat()
	if err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("%w: stat log file %q: %v", ErrIoError, path, err)
	}

	w := &Writer{
		file:      file,
		logger:    logger,
		timeCache: timecache.NewWithResolution(time.Millisecond),
	}

	if info.Size() == 0 {
		if _, err := file.Write(SerializeFileHeader()); err != nil {
			_ = file.Close()
			return nil, fmt.Errorf("%w: write file header: %v", ErrIoError, err)
		}
	}

	switch {
	case o.startSequence != nil:
		w.seq.Store(*o.startSequence - 1)
	case info.Size() > HeaderSize:
		last, err := scanLastSequence(path)
		if err != nil {
			_ = file.Close()
			return nil, err
		}
		w.seq.Store(last)
	}

	// Append-mode handle for the hot path: O_APPEND guarantees the
	// kernel assigns each Write() call its own atomically-advanced file
	// offset, which combined with appendMu (serializing concurrent
	// goroutines within this process) guarantees each frame lands at its
	// own offset with its bytes contiguous, never interleaved with
	// another writer's.
	if err := file.Close(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIoError, err)
	}
	appendFile, err := os.OpenFile(path, os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("%w: reopen log file %q for append: %v", ErrIoError, path, err)
	}
	w.file = appendFile

	logger.Info("event log writer opened",
		zap.String("path", path),
		zap.Uint64("resume_sequence", w.seq.Load()+1),
		zap.Time("opened_at", w.timeCache.CachedTime()),
	)
	return w, nil
}

// scanLastSequence opens path read-only and walks frames to find the
// highest sequence number present, tolerating a torn tail exactly as
// Reader.ReadNext does.
func scanLastSequence(path string) (uint64, error) {
	r, err := NewReader(path)
	if err != nil {
		return 0, fmt.Errorf("%w: scan existing log for sequence recovery: %v", ErrIoError, err)
	}
	defer r.Close()

	var last uint64
	for {
		frame, ok, err := r.ReadNext()
		if err != nil {
			return 0, fmt.Errorf("%w: corrupted frame while recovering sequence: %v", ErrCorruptedFrame, err)
		}
		if !ok {
			break
		}
		last = frame.SequenceNum
	}
	return last, nil
}

// Append serializes event_type and payload into a frame, assigns it the
// next sequence number, stamps it with the shared monotonic clock, and
// appends it to the log file. Concurrent callers are serialized so the
// resulting bytes never interleave.
func (w *Writer) Append(eventType EventType, payload []byte) (Frame, error) {
	w.appendMu.Lock()
	defer w.appendMu.Unlock()

	seq := w.seq.Add(1)
	ts := monotonicNanos()

	buf := Serialize(seq, ts, eventType, payload)

	if _, err := w.file.Write(buf); err != nil {
		// The sequence counter is not rolled back: a gap in sequence
		// numbers is preferred over ever reusing one (see DESIGN.md).
		w.logger.Warn("append failed", zap.Uint64("sequence_num", seq), zap.Error(err))
		return Frame{}, fmt.Errorf("%w: append frame %d: %v", ErrIoError, seq, err)
	}

	return Frame{
		SequenceNum: seq,
		TimestampNs: ts,
		EventType:   eventType,
		PayloadLen:  uint32(len(payload)),
		Payload:     payload,
	}, nil
}

// AppendTrade is a convenience wrapper that canonically encodes t and
// appends it as a TRADE_CREATED event.
func (w *Writer) AppendTrade(t Trade) (Frame, error) {
	return w.Append(TradeCreated, EncodeTradeCreated(t))
}

// Close closes the underlying file handle; it does not fsync. Close is
// idempotent.
func (w *Writer) Close() error {
	var err error
	w.closeOnce.Do(func() {
		w.logger.Info("event log writer closing",
			zap.Uint64("last_sequence", w.seq.Load()),
			zap.Time("closed_at", w.timeCache.CachedTime()),
		)
		err = w.file.Close()
	})
	return err
}
