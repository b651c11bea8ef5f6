package eventlog

import (
	"sync"
	"testing"
)

func TestNewRingRejectsNonPowerOfTwo(t *testing.T) {
	if _, err := NewRing[int](3); err == nil {
		t.Fatal("expected error for non-power-of-two size")
	}
	if _, err := NewRing[int](0); err == nil {
		t.Fatal("expected error for zero size")
	}
}

func TestRingPushPopOrder(t *testing.T) {
	r, err := NewRing[int](8)
	if err != nil {
		t.Fatalf("NewRing: %v", err)
	}

	if !r.Empty() {
		t.Fatal("new ring should be empty")
	}

	for i := 0; i < 7; i++ {
		if !r.TryPush(i) {
			t.Fatalf("TryPush(%d) failed, ring should have room", i)
		}
	}
	// Capacity is size-1: the 8th push into an 8-slot ring must fail.
	if r.TryPush(7) {
		t.Fatal("TryPush succeeded on a full ring")
	}

	for i := 0; i < 7; i++ {
		item, ok := r.TryPop()
		if !ok {
			t.Fatalf("TryPop failed at index %d", i)
		}
		if item != i {
			t.Fatalf("TryPop returned %d, want %d (FIFO order)", item, i)
		}
	}

	if _, ok := r.TryPop(); ok {
		t.Fatal("TryPop succeeded on an empty ring")
	}
}

func TestRingCapacity(t *testing.T) {
	r, err := NewRing[int](1024)
	if err != nil {
		t.Fatalf("NewRing: %v", err)
	}
	if r.Capacity() != 1023 {
		t.Fatalf("Capacity() = %d, want 1023", r.Capacity())
	}
}

// TestRingSPSCStress pushes and pops a million sequential integers
// concurrently from one producer and one consumer goroutine, verifying
// every value arrives exactly once and in order.
func TestRingSPSCStress(t *testing.T) {
	const n = 1_000_000
	r, err := NewRing[int](1024)
	if err != nil {
		t.Fatalf("NewRing: %v", err)
	}

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		for i := 0; i < n; i++ {
			for !r.TryPush(i) {
				// ring momentarily full, retry
			}
		}
	}()

	var mismatches int
	go func() {
		defer wg.Done()
		for i := 0; i < n; i++ {
			var (
				item int
				ok   bool
			)
			for !ok {
				item, ok = r.TryPop()
			}
			if item != i {
				mismatches++
			}
		}
	}()

	wg.Wait()
	if mismatches != 0 {
		t.Fatalf("%d values arrived out of order or corrupted", mismatches)
	}
}
