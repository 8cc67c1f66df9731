package sample

import "unsafe"

// Data is a type-erased view over a contiguous frame buffer: a pointer
// to the first byte, an element count in samples (not bytes), and the
// SampleFormat tag the runtime negotiated at build time. The pointer is
// only valid for ptr[0 : len*format.SampleSize()) bytes and only for
// the duration of the callback that received this Data — the
// underlying memory belongs to the backend, never to the caller.
//
// The Data values that callbacks receive are built by internal/runtime
// from backend-owned memory; a Data must not be kept past the callback
// that was handed it.
type Data struct {
	ptr    unsafe.Pointer
	length int
	format Format
}

// NewData wraps an existing buffer as a Data view. internal/runtime
// calls it to wrap the buffers a backend grants; it takes an
// unsafe.Pointer instead of a slice because backends hand the runtime
// raw native memory, not a Go-allocated slice.
func NewData(ptr unsafe.Pointer, length int, format Format) Data {
	return Data{ptr: ptr, length: length, format: format}
}

// Len returns the number of samples (not bytes, not frames) the view
// covers.
func (d Data) Len() int {
	return d.length
}

// SampleFormat returns the tag the runtime negotiated when this stream
// was built.
func (d Data) SampleFormat() Format {
	return d.format
}

// AsSlice casts the view to a []T. It returns (nil, false) without
// touching the pointer when T's format tag does not match d's runtime
// format. A view with a nil pointer or zero length is never
// dereferenced: it yields an empty slice and true when the format
// matches, and (nil, false) otherwise.
func AsSlice[T Sample](d Data) ([]T, bool) {
	if d.ptr == nil || d.length == 0 {
		if d.format == FormatOf[T]() {
			return []T{}, true
		}
		return nil, false
	}
	if FormatOf[T]() != d.format {
		return nil, false
	}
	return unsafe.Slice((*T)(d.ptr), d.length), true
}
