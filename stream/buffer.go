package stream

// BufferSize selects how many frames the backend delivers per
// callback: either the backend's own default, or a fixed frame count
// the caller demands (and which the backend must honor for every
// callback, or reject at build time — see P4 in the testable
// properties).
type BufferSize interface {
	isBufferSize()
}

// BufferSizeDefault lets the backend pick whatever period size it
// considers optimal.
type BufferSizeDefault struct{}

func (BufferSizeDefault) isBufferSize() {}

// BufferSizeFixed demands exactly Frames frames per callback for the
// life of the stream.
type BufferSizeFixed struct {
	Frames uint32
}

func (BufferSizeFixed) isBufferSize() {}

// SupportedBufferSize is what a device declares it can do, as opposed
// to what a caller asks for with BufferSize.
type SupportedBufferSize interface {
	isSupportedBufferSize()
}

// BufferSizeRange declares the device accepts any fixed buffer size in
// [Min, Max] frames.
type BufferSizeRange struct {
	Min, Max uint32
}

func (BufferSizeRange) isSupportedBufferSize() {}

// UnknownBufferSize means the device does not report a usable range;
// callers should request BufferSizeDefault.
type UnknownBufferSize struct{}

func (UnknownBufferSize) isSupportedBufferSize() {}

// Contains reports whether frames falls within a BufferSizeRange, or is
// trivially accepted by an UnknownBufferSize (which imposes no
// constraint the core can check).
func Contains(s SupportedBufferSize, frames uint32) bool {
	switch v := s.(type) {
	case BufferSizeRange:
		return frames >= v.Min && frames <= v.Max
	case UnknownBufferSize:
		return true
	default:
		return false
	}
}
