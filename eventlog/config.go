// config.go: small parsing/validation helpers shared by the CLI
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package eventlog

import (
	"fmt"
	"math/bits"
)

// IsPowerOfTwo reports whether n is a power of two greater than zero,
// the constraint the SPSC ring's mask-based indexing places on its
// capacity.
func IsPowerOfTwo(n uint64) bool {
	return n > 0 && n&(n-1) == 0
}

// NextPowerOfTwo returns the smallest power of two greater than or equal
// to n, following the same doubling idiom as the teacher's own
// nextPow2 helper (buffer.go), generalized from byte-buffer sizing to
// ring capacity sizing.
func NextPowerOfTwo(n uint64) uint64 {
	if n <= 1 {
		return 1
	}
	return 1 << (64 - bits.LeadingZeros64(n-1))
}

// ValidateRingCapacity returns an error unless n is a power of two
// greater than zero, as NewRing itself requires. Exposed so callers
// parsing a capacity from configuration can fail fast with a clear
// message before constructing the ring.
func ValidateRingCapacity(n uint64) error {
	if !IsPowerOfTwo(n) {
		return fmt.Errorf("eventlog: ring capacity must be a power of two, got %d (try %d)", n, NextPowerOfTwo(n))
	}
	return nil
}
