package runtime

import (
	"time"

	"github.com/go-aurio/aurio/stream"
)

// callbackInstant returns "now" on the stream's clock: the backend's
// hardware clock when one is available, else elapsed wall time since
// the stream was built (spec §9's documented fallback).
func (e *Engine) callbackInstant() stream.Instant {
	if pos, ok := e.backend.ClockPosition(e.handle); ok {
		return sampleClockInstant(pos.SamplePosition, e.sampleRate)
	}
	return stream.InstantFromNanos(time.Since(e.createdAt).Nanoseconds())
}

func sampleClockInstant(samplePosition uint64, sr stream.SampleRate) stream.Instant {
	return stream.InstantFromNanos(framesToDuration(uint32(samplePosition), sr).Nanoseconds())
}

func framesToDuration(frames uint32, sr stream.SampleRate) time.Duration {
	if sr == 0 {
		return 0
	}
	return time.Duration(float64(frames) / float64(sr) * float64(time.Second))
}

// playbackInstant computes the instant the first sample of a just-
// filled output buffer will reach the DAC: callback instant plus the
// time it takes the backend to drain framesGranted frames (P3: always
// >= callback).
func (e *Engine) playbackInstant(callback stream.Instant, framesGranted uint32) stream.Instant {
	lead := framesToDuration(framesGranted, e.sampleRate)
	if instant, ok := callback.Add(lead); ok {
		return instant
	}
	return callback
}

// captureInstant computes the instant the first sample of a just-
// delivered input buffer was captured by the ADC: callback instant
// minus the time it took to accumulate framesGranted frames (P2: always
// <= callback).
func (e *Engine) captureInstant(callback stream.Instant, framesGranted uint32) stream.Instant {
	lag := framesToDuration(framesGranted, e.sampleRate)
	if instant, ok := callback.Sub(lag); ok {
		return instant
	}
	return callback
}
