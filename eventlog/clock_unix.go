//go:build unix

// clock_unix.go: CLOCK_MONOTONIC reading for the shared clock domain
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package eventlog

import "golang.org/x/sys/unix"

// monotonicNanos reads CLOCK_MONOTONIC directly rather than deriving an
// elapsed duration from a package-load-time anchor (time.Since of a
// var set at init). The two processes in this pipeline never share an
// init time, so a process-local anchor would put writer and consumer on
// different scales; CLOCK_MONOTONIC is a single counter the kernel
// exposes identically to every process on the host.
func monotonicNanos() int64 {
	var ts unix.Timespec
	if err := unix.ClockGettime(unix.CLOCK_MONOTONIC, &ts); err != nil {
		// CLOCK_MONOTONIC is mandatory on every unix target we build for;
		// a failure here means something is badly wrong with the host.
		panic("eventlog: clock_gettime(CLOCK_MONOTONIC) failed: " + err.Error())
	}
	return ts.Nano()
}
