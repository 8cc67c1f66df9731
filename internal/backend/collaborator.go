// Package backend defines the seam between the aurio core and a
// native audio subsystem: the minimal set of operations spec §6.2
// requires from any backend collaborator. internal/runtime drives any
// Collaborator identically; hosts/malgo, hosts/portaudio, and
// internal/backend/fake are its three implementations.
package backend

import (
	"unsafe"

	"github.com/go-aurio/aurio/sample"
	"github.com/go-aurio/aurio/stream"
)

// Direction selects which way a device or stream moves audio.
type Direction uint8

const (
	Input Direction = iota
	Output
	Duplex
)

// DeviceHandle opaquely identifies one backend device across the
// lifetime of one Collaborator.
type DeviceHandle any

// DeviceContext is an opened device: whatever state the backend needs
// to query configs and open streams against it.
type DeviceContext any

// StreamHandle opaquely identifies one open backend stream.
type StreamHandle any

// WaitKind classifies the result of StreamWait.
type WaitKind uint8

const (
	// Ready means frames are available; Frames gives the count.
	Ready WaitKind = iota
	// Shutdown means the backend is tearing the stream down (the
	// caller asked to stop, or the device disappeared and the backend
	// has already begun unwinding).
	Shutdown
	// Err means the wait itself failed; see WaitResult.Err.
	Err
)

// WaitResult is the answer to one StreamWait call.
type WaitResult struct {
	Kind   WaitKind
	Frames uint32
	Err    error
}

// ClockPosition is a backend-reported hardware clock reading, used to
// compute accurate playback/capture instants instead of falling back
// to frame-count arithmetic (spec §9's preferred path).
type ClockPosition struct {
	SamplePosition uint64
	QPCNanos       int64
}

// Collaborator is the full set of operations spec §6.2 requires from a
// native backend. A backend that cannot support one of these (no
// stable device id, no hardware clock) returns the documented sentinel
// for that method and the runtime adapts (falling back to
// frame-arithmetic timestamps, an ephemeral id, and so on).
type Collaborator interface {
	EnumerateDevices(dir Direction) ([]DeviceHandle, error)
	OpenDevice(h DeviceHandle) (DeviceContext, error)
	QuerySupported(ctx DeviceContext, dir Direction) ([]stream.SupportedConfigRange, error)

	OpenStream(ctx DeviceContext, dir Direction, cfg stream.Config, format sample.Format) (StreamHandle, error)
	StreamStart(h StreamHandle) error
	StreamStop(h StreamHandle) error
	StreamClose(h StreamHandle) error

	StreamWait(h StreamHandle) WaitResult

	GetInputBuffer(h StreamHandle, frames uint32) (ptr unsafe.Pointer, granted uint32, err error)
	GetOutputBuffer(h StreamHandle, frames uint32) (ptr unsafe.Pointer, granted uint32, err error)
	ReleaseBuffer(h StreamHandle, framesUsed uint32) error

	// ClockPosition returns the current hardware clock reading, or
	// ok=false if this backend/stream does not expose one.
	ClockPosition(h StreamHandle) (pos ClockPosition, ok bool)
}
