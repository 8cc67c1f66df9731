package runtime

import (
	"unsafe"

	"github.com/go-aurio/aurio/sample"
	"github.com/go-aurio/aurio/stream"
)

// tickOutput implements one iteration of spec §4.3.1's output pipeline:
// claim a buffer, silence it so an under-filling callback still emits
// silence rather than stale memory, compute timestamps, invoke the
// callback under panic containment, and release.
func (e *Engine) tickOutput(frames uint32) bool {
	ptr, granted, err := e.backend.GetOutputBuffer(e.handle, frames)
	if err != nil {
		e.terminate(stream.StreamBackendSpecific(errString(err)))
		return false
	}
	if granted == 0 {
		return true
	}

	frameBytes := int(e.outChannels) * e.format.SampleSize()
	clear(unsafe.Slice((*byte)(ptr), int(granted)*frameBytes))

	callback := e.callbackInstant()
	ts := stream.OutputTimestamp{
		Callback: callback,
		Playback: e.playbackInstant(callback, granted),
	}
	data := sample.NewData(ptr, int(granted)*int(e.outChannels), e.format)

	if !e.guardCallback(func() { e.outputCb(data, ts) }) {
		return false
	}

	if err := e.backend.ReleaseBuffer(e.handle, granted); err != nil {
		e.terminate(stream.StreamBackendSpecific(errString(err)))
		return false
	}
	return true
}
