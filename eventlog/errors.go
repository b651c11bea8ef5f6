// errors.go: error taxonomy for the event log pipeline
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package eventlog

import "errors"

// Sentinel errors identifying the taxonomy described by the pipeline's
// error-handling design. Use errors.Is against these when a caller needs
// to distinguish failure classes; wrapped errors carry additional context
// via fmt.Errorf("...: %w", ...).
var (
	// ErrIoError wraps open/stat/read/write/mmap failures.
	ErrIoError = errors.New("eventlog: io error")

	// ErrBadHeader indicates the file header's magic or version is wrong.
	ErrBadHeader = errors.New("eventlog: bad file header")

	// ErrInsufficientData indicates a bounded buffer did not contain a
	// complete frame when the caller asserted it should.
	ErrInsufficientData = errors.New("eventlog: insufficient data for frame")

	// ErrCorruptedFrame indicates a CRC mismatch on a frame whose full
	// byte range is present.
	ErrCorruptedFrame = errors.New("eventlog: corrupted frame (crc mismatch)")

	// ErrNoCurrentFile indicates an append was attempted before the
	// writer successfully opened its log file.
	ErrNoCurrentFile = errors.New("eventlog: no current file")
)
