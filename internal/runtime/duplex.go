package runtime

import (
	"unsafe"

	"github.com/go-aurio/aurio/sample"
	"github.com/go-aurio/aurio/stream"
)

// tickDuplex implements one iteration of spec §4.3.3's duplex pipeline:
// both buffers are claimed from the same hardware tick, so the three
// timestamps (Capture <= Callback <= Playback) share one clock reading.
// Input and output channel counts may differ (spec's asymmetric-channel
// case); each buffer is sliced with its own channel count.
func (e *Engine) tickDuplex(frames uint32) bool {
	inPtr, inGranted, err := e.backend.GetInputBuffer(e.handle, frames)
	if err != nil {
		e.terminate(stream.StreamBackendSpecific(errString(err)))
		return false
	}
	outPtr, outGranted, err := e.backend.GetOutputBuffer(e.handle, frames)
	if err != nil {
		e.terminate(stream.StreamBackendSpecific(errString(err)))
		return false
	}
	if inGranted == 0 && outGranted == 0 {
		return true
	}

	if outGranted > 0 {
		outFrameBytes := int(e.outChannels) * e.format.SampleSize()
		clear(unsafe.Slice((*byte)(outPtr), int(outGranted)*outFrameBytes))
	}

	callback := e.callbackInstant()
	ts := stream.DuplexTimestamp{
		Callback: callback,
		Capture:  e.captureInstant(callback, inGranted),
		Playback: e.playbackInstant(callback, outGranted),
	}

	in := sample.NewData(inPtr, int(inGranted)*int(e.inChannels), e.format)
	out := sample.NewData(outPtr, int(outGranted)*int(e.outChannels), e.format)

	if !e.guardCallback(func() { e.duplexCb(in, out, ts) }) {
		return false
	}

	used := outGranted
	if inGranted > used {
		used = inGranted
	}
	if err := e.backend.ReleaseBuffer(e.handle, used); err != nil {
		e.terminate(stream.StreamBackendSpecific(errString(err)))
		return false
	}
	return true
}
