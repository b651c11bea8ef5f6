package eventlog

import "testing"

func TestMonotonicNanosIsNonDecreasing(t *testing.T) {
	a := MonotonicNanos()
	b := MonotonicNanos()
	if b < a {
		t.Fatalf("MonotonicNanos went backwards: %d then %d", a, b)
	}
}
