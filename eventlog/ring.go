// ring.go: lock-free single-producer/single-consumer ring buffer (C5)
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package eventlog

import (
	"fmt"
	"sync/atomic"
)

// paddedCounter pads an atomic.Uint64 out to its own 64-byte cache line, preventing false sharing between the
// producer-owned tail index and the consumer-owned head index. Go gives
// no per-field alignment directive, so explicit trailing byte padding is
// the fallback for expressing cache-line isolation directly.
type paddedCounter struct {
	v   atomic.Uint64
	_   [cacheLineSize - 8]byte
}

const cacheLineSize = 64

// Ring is a lock-free, wait-free, bounded SPSC queue. Exactly one
// goroutine may call TryPush; exactly one (different) goroutine may call
// TryPop. Violating that contract is undefined behavior, as with the
// original design's lock-free SPSC ring.
type Ring[T any] struct {
	_      [cacheLineSize]byte
	head   paddedCounter // consumer-owned read index
	tail   paddedCounter // producer-owned write index
	mask   uint64
	buffer []T
}

// NewRing creates a ring of the given capacity, which must be a power of
// two and greater than zero. Usable capacity is size-1: one slot is
// reserved so the full and empty states never collapse to the same
// head==tail condition.
func NewRing[T any](size uint64) (*Ring[T], error) {
	if size == 0 || size&(size-1) != 0 {
		return nil, fmt.Errorf("eventlog: ring size must be a power of two, got %d", size)
	}
	return &Ring[T]{
		mask:   size - 1,
		buffer: make([]T, size),
	}, nil
}

// TryPush attempts to enqueue item. It returns false without blocking if
// the ring is full. Must only be called by the single producer goroutine.
func (r *Ring[T]) TryPush(item T) bool {
	tail := r.tail.v.Load() // relaxed: only the producer writes tail
	next := (tail + 1) & r.mask

	head := r.head.v.Load() // acquire: pairs with the consumer's release store
	if next == head {
		return false // full
	}

	r.buffer[tail] = item
	r.tail.v.Store(next) // release: publishes the item write above
	return true
}

// TryPop attempts to dequeue the oldest item. It returns false without
// blocking if the ring is empty. Must only be called by the single
// consumer goroutine.
func (r *Ring[T]) TryPop() (item T, ok bool) {
	head := r.head.v.Load() // relaxed: only the consumer writes head

	tail := r.tail.v.Load() // acquire: pairs with the producer's release store
	if head == tail {
		return item, false // empty
	}

	item = r.buffer[head]
	var zero T
	r.buffer[head] = zero // help GC release references promptly
	r.head.v.Store((head + 1) & r.mask) // release: publishes the read above
	return item, true
}

// Empty reports whether the ring is observed empty. Advisory only: by
// the time the caller acts on the result, either index may have moved.
func (r *Ring[T]) Empty() bool {
	return r.head.v.Load() == r.tail.v.Load()
}

// Size returns the approximate number of queued items. Advisory only,
// same caveat as Empty.
func (r *Ring[T]) Size() uint64 {
	tail := r.tail.v.Load()
	head := r.head.v.Load()
	return (tail - head) & r.mask
}

// Capacity returns the exact usable capacity of the ring (size-1).
func (r *Ring[T]) Capacity() uint64 {
	return r.mask
}
