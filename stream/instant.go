package stream

import "time"

const nanosPerSecond = 1_000_000_000

// Instant is a point on one stream's monotonic clock, stored as
// (seconds, nanos) and always normalized so 0 <= Nanos < 1e9 (P9). The
// clock has no defined zero across streams and is only monotonic for
// the lifetime of the one stream that produced it.
type Instant struct {
	Seconds int64
	Nanos   uint32
}

func normalize(seconds int64, nanos int64) Instant {
	for nanos < 0 {
		nanos += nanosPerSecond
		seconds--
	}
	for nanos >= nanosPerSecond {
		nanos -= nanosPerSecond
		seconds++
	}
	return Instant{Seconds: seconds, Nanos: uint32(nanos)}
}

// InstantFromNanos builds an Instant from a total nanosecond count,
// normalizing the result.
func InstantFromNanos(totalNanos int64) Instant {
	seconds := totalNanos / nanosPerSecond
	nanos := totalNanos % nanosPerSecond
	return normalize(seconds, nanos)
}

// Add returns i+d, normalized. The second return value is false if the
// result cannot be represented (the seconds component overflows int64),
// matching the spec's "None on overflow beyond representation".
func (i Instant) Add(d time.Duration) (Instant, bool) {
	return addNanos(i, d.Nanoseconds())
}

// Sub returns i-d, normalized, with the same overflow signaling as Add.
func (i Instant) Sub(d time.Duration) (Instant, bool) {
	return addNanos(i, -d.Nanoseconds())
}

func addNanos(i Instant, deltaNanos int64) (Instant, bool) {
	deltaSeconds := deltaNanos / nanosPerSecond
	deltaRem := deltaNanos % nanosPerSecond

	nanos := int64(i.Nanos) + deltaRem
	switch {
	case nanos < 0:
		nanos += nanosPerSecond
		deltaSeconds--
	case nanos >= nanosPerSecond:
		nanos -= nanosPerSecond
		deltaSeconds++
	}

	seconds, ok := addInt64(i.Seconds, deltaSeconds)
	if !ok {
		return Instant{}, false
	}
	return Instant{Seconds: seconds, Nanos: uint32(nanos)}, true
}

func addInt64(a, b int64) (int64, bool) {
	sum := a + b
	if (b > 0 && sum < a) || (b < 0 && sum > a) {
		return 0, false
	}
	return sum, true
}

// Compare returns -1, 0, or 1 as i is before, equal to, or after other.
func (i Instant) Compare(other Instant) int {
	switch {
	case i.Seconds < other.Seconds:
		return -1
	case i.Seconds > other.Seconds:
		return 1
	case i.Nanos < other.Nanos:
		return -1
	case i.Nanos > other.Nanos:
		return 1
	default:
		return 0
	}
}

// InputTimestamp pairs the instant a callback was invoked with the
// instant the first sample of its buffer was captured by the ADC.
// Capture is always <= Callback (P2).
type InputTimestamp struct {
	Callback Instant
	Capture  Instant
}

// OutputTimestamp pairs the instant a callback was invoked with the
// instant the first sample of its buffer will emerge from the DAC.
// Callback is always <= Playback (P3).
type OutputTimestamp struct {
	Callback Instant
	Playback Instant
}

// DuplexTimestamp is the duplex counterpart: Capture <= Callback <=
// Playback, all three instants drawn from one shared-hardware-clock
// tick.
type DuplexTimestamp struct {
	Callback Instant
	Capture  Instant
	Playback Instant
}
