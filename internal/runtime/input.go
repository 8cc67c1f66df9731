package runtime

import (
	"github.com/go-aurio/aurio/sample"
	"github.com/go-aurio/aurio/stream"
)

// tickInput implements one iteration of spec §4.3.2's input pipeline:
// claim the filled buffer, compute timestamps, invoke the callback
// under panic containment, and release.
func (e *Engine) tickInput(frames uint32) bool {
	ptr, granted, err := e.backend.GetInputBuffer(e.handle, frames)
	if err != nil {
		e.terminate(stream.StreamBackendSpecific(errString(err)))
		return false
	}
	if granted == 0 {
		return true
	}

	callback := e.callbackInstant()
	ts := stream.InputTimestamp{
		Callback: callback,
		Capture:  e.captureInstant(callback, granted),
	}
	data := sample.NewData(ptr, int(granted)*int(e.inChannels), e.format)

	if !e.guardCallback(func() { e.inputCb(data, ts) }) {
		return false
	}

	if err := e.backend.ReleaseBuffer(e.handle, granted); err != nil {
		e.terminate(stream.StreamBackendSpecific(errString(err)))
		return false
	}
	return true
}
