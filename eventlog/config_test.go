package eventlog

import "testing"

func TestIsPowerOfTwo(t *testing.T) {
	cases := map[uint64]bool{
		0: false, 1: true, 2: true, 3: false, 4: true,
		1023: false, 1024: true, 1 << 20: true,
	}
	for n, want := range cases {
		if got := IsPowerOfTwo(n); got != want {
			t.Errorf("IsPowerOfTwo(%d) = %v, want %v", n, got, want)
		}
	}
}

func TestNextPowerOfTwo(t *testing.T) {
	cases := map[uint64]uint64{
		0: 1, 1: 1, 2: 2, 3: 4, 5: 8, 1024: 1024, 1025: 2048,
	}
	for n, want := range cases {
		if got := NextPowerOfTwo(n); got != want {
			t.Errorf("NextPowerOfTwo(%d) = %d, want %d", n, got, want)
		}
	}
}

func TestValidateRingCapacity(t *testing.T) {
	if err := ValidateRingCapacity(4096); err != nil {
		t.Fatalf("ValidateRingCapacity(4096): %v", err)
	}
	if err := ValidateRingCapacity(4095); err == nil {
		t.Fatal("expected error for non-power-of-two capacity")
	}
}
