package aurio

import (
	"github.com/go-aurio/aurio/sample"
	"github.com/go-aurio/aurio/stream"
)

// TypedInputCallback is the statically typed counterpart of
// InputCallback: buf is already cast to the concrete scalar type T,
// which spec §4.4 calls "the typed callback path": the build call
// supplies T's format tag, and the runtime rejects the build if the
// negotiated format disagrees instead of making every callback check.
type TypedInputCallback[T sample.Sample] func(buf []T, ts stream.InputTimestamp)

// TypedOutputCallback is the typed counterpart of OutputCallback.
type TypedOutputCallback[T sample.Sample] func(buf []T, ts stream.OutputTimestamp)

// TypedDuplexCallback is the typed counterpart of DuplexCallback.
type TypedDuplexCallback[T sample.Sample] func(in, out []T, ts stream.DuplexTimestamp)

// BuildInputStream is the typed entry point: it asks the caller for T's
// SampleFormat tag at compile time (via sample.FormatOf) and builds
// against the raw path underneath, converting every buffer with
// sample.AsSlice before invoking cb.
func BuildInputStream[T sample.Sample](d Device, cfg stream.Config, cb TypedInputCallback[T], errCb ErrorCallback, timeout Timeout) (Stream, error) {
	format := sample.FormatOf[T]()
	wrapped := func(buf sample.Data, ts stream.InputTimestamp) {
		typed, ok := sample.AsSlice[T](buf)
		if !ok {
			// The runtime guarantees P7 (Data's format tag always
			// matches what was negotiated at build time), so this
			// branch is unreachable in practice; treat it as a fatal
			// backend inconsistency rather than silently skipping data.
			errCb(stream.StreamBackendSpecific("sample format mismatch between negotiated stream and delivered buffer"))
			return
		}
		cb(typed, ts)
	}
	return d.BuildInputStreamRaw(cfg, format, wrapped, errCb, timeout)
}

// BuildOutputStream is the typed entry point for output streams.
func BuildOutputStream[T sample.Sample](d Device, cfg stream.Config, cb TypedOutputCallback[T], errCb ErrorCallback, timeout Timeout) (Stream, error) {
	format := sample.FormatOf[T]()
	wrapped := func(buf sample.Data, ts stream.OutputTimestamp) {
		typed, ok := sample.AsSlice[T](buf)
		if !ok {
			errCb(stream.StreamBackendSpecific("sample format mismatch between negotiated stream and delivered buffer"))
			return
		}
		cb(typed, ts)
	}
	return d.BuildOutputStreamRaw(cfg, format, wrapped, errCb, timeout)
}

// BuildDuplexStream is the typed entry point for duplex streams.
func BuildDuplexStream[T sample.Sample](d Device, inCfg, outCfg stream.Config, cb TypedDuplexCallback[T], errCb ErrorCallback, timeout Timeout) (Stream, error) {
	format := sample.FormatOf[T]()
	wrapped := func(in, out sample.Data, ts stream.DuplexTimestamp) {
		typedIn, ok := sample.AsSlice[T](in)
		if !ok {
			errCb(stream.StreamBackendSpecific("sample format mismatch on duplex input buffer"))
			return
		}
		typedOut, ok := sample.AsSlice[T](out)
		if !ok {
			errCb(stream.StreamBackendSpecific("sample format mismatch on duplex output buffer"))
			return
		}
		cb(typedIn, typedOut, ts)
	}
	return d.BuildDuplexStreamRaw(inCfg, outCfg, format, wrapped, errCb, timeout)
}
