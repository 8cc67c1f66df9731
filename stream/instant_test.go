package stream

import (
	"math"
	"testing"
	"time"
)

func TestInstantFromNanos_Normalizes(t *testing.T) {
	tests := []struct {
		nanos       int64
		wantSeconds int64
		wantNanos   uint32
	}{
		{0, 0, 0},
		{999_999_999, 0, 999_999_999},
		{1_000_000_000, 1, 0},
		{1_500_000_000, 1, 500_000_000},
		{-500_000_000, -1, 500_000_000},
	}

	for _, tt := range tests {
		got := InstantFromNanos(tt.nanos)
		if got.Seconds != tt.wantSeconds || got.Nanos != tt.wantNanos {
			t.Errorf("InstantFromNanos(%d) = {%d, %d}, want {%d, %d}",
				tt.nanos, got.Seconds, got.Nanos, tt.wantSeconds, tt.wantNanos)
		}
		// P9: 0 <= Nanos < 1e9 for every produced Instant.
		if got.Nanos >= nanosPerSecond {
			t.Errorf("InstantFromNanos(%d).Nanos = %d, want < 1e9", tt.nanos, got.Nanos)
		}
	}
}

func TestInstant_Add(t *testing.T) {
	base := Instant{Seconds: 10, Nanos: 500_000_000}

	got, ok := base.Add(600 * time.Millisecond)
	if !ok {
		t.Fatal("Add(600ms) overflowed unexpectedly")
	}
	if got.Seconds != 11 || got.Nanos != 100_000_000 {
		t.Errorf("Add(600ms) = {%d, %d}, want {11, 100000000}", got.Seconds, got.Nanos)
	}
}

func TestInstant_Sub(t *testing.T) {
	base := Instant{Seconds: 10, Nanos: 200_000_000}

	got, ok := base.Sub(300 * time.Millisecond)
	if !ok {
		t.Fatal("Sub(300ms) overflowed unexpectedly")
	}
	if got.Seconds != 9 || got.Nanos != 900_000_000 {
		t.Errorf("Sub(300ms) = {%d, %d}, want {9, 900000000}", got.Seconds, got.Nanos)
	}
}

func TestInstant_Add_OverflowReturnsFalse(t *testing.T) {
	base := Instant{Seconds: math.MaxInt64, Nanos: 0}

	_, ok := base.Add(time.Second)
	if ok {
		t.Error("Add(1s) at Seconds=MaxInt64 did not report overflow")
	}
}

func TestInstant_Sub_UnderflowReturnsFalse(t *testing.T) {
	base := Instant{Seconds: math.MinInt64, Nanos: 0}

	_, ok := base.Sub(time.Second)
	if ok {
		t.Error("Sub(1s) at Seconds=MinInt64 did not report underflow")
	}
}

func TestInstant_Compare(t *testing.T) {
	a := Instant{Seconds: 1, Nanos: 0}
	b := Instant{Seconds: 1, Nanos: 500}
	c := Instant{Seconds: 2, Nanos: 0}

	if a.Compare(b) != -1 {
		t.Errorf("a.Compare(b) = %d, want -1", a.Compare(b))
	}
	if b.Compare(a) != 1 {
		t.Errorf("b.Compare(a) = %d, want 1", b.Compare(a))
	}
	if a.Compare(a) != 0 {
		t.Errorf("a.Compare(a) = %d, want 0", a.Compare(a))
	}
	if b.Compare(c) != -1 {
		t.Errorf("b.Compare(c) = %d, want -1", b.Compare(c))
	}
}

// P1: timestamp monotonicity across consecutive callbacks.
func TestInstant_MonotonicSequence(t *testing.T) {
	var prev Instant
	frameDuration := 1024 * time.Second / 44100

	for i := 0; i < 20; i++ {
		next, ok := prev.Add(frameDuration)
		if !ok {
			t.Fatalf("callback %d: Add overflowed", i)
		}
		if next.Compare(prev) < 0 {
			t.Fatalf("callback %d: timestamp went backwards", i)
		}
		prev = next
	}
}
