// clock.go: shared monotonic clock domain for writer and consumer
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package eventlog

// MonotonicNanos returns the current reading of the host's monotonic
// clock, in nanoseconds. Both the writer (stamping Frame.TimestampNs)
// and the consumer (computing end-to-end latency as "now minus
// TimestampNs") must call this same function: it is the single shared
// clock domain the two processes agree on. Unlike time.Now().UnixNano(), this
// value is immune to wall-clock adjustments; unlike a process-local
// monotonic anchor (e.g. time.Since of a package-load-time timestamp),
// it is comparable across the two separate OS processes that make up
// this pipeline, because the underlying host clock (CLOCK_MONOTONIC on
// POSIX) is a single kernel-wide counter, not one scoped per process.
func MonotonicNanos() int64 {
	return monotonicNanos()
}

// monotonicNanos is implemented per-platform in clock_unix.go/clock_other.go.
