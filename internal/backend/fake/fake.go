// Package fake implements backend.Collaborator entirely in Go, with no
// dependency on real audio hardware. internal/runtime's tests drive it
// to exercise the seed scenarios and boundary cases from spec §8
// deterministically: the test calls Tick to simulate one backend
// wakeup instead of waiting on a real device clock.
package fake

import (
	"fmt"
	"sync"
	"sync/atomic"
	"unsafe"

	"github.com/go-aurio/aurio/internal/backend"
	"github.com/go-aurio/aurio/sample"
	"github.com/go-aurio/aurio/stream"
)

// DeviceSpec describes one fake device's capabilities.
type DeviceSpec struct {
	Name    string
	Inputs  []stream.SupportedConfigRange
	Outputs []stream.SupportedConfigRange
	// HasClock, if true, makes ClockPosition report a sample-accurate
	// reading instead of the sentinel "no clock" response.
	HasClock bool
}

// Backend is an in-process backend.Collaborator for tests.
type Backend struct {
	mu      sync.Mutex
	devices []DeviceSpec
}

// New builds a fake Backend with the given devices.
func New(devices ...DeviceSpec) *Backend {
	return &Backend{devices: devices}
}

var _ backend.Collaborator = (*Backend)(nil)

type deviceHandle struct {
	index int
}

type deviceContext struct {
	spec DeviceSpec
}

// ErrStreamIDOverflow is returned by OpenStream each time the fake's
// 8-bit stream id wraps to zero, exercising spec's retained
// StreamIdOverflow kind (documented as unreachable on real backends);
// it wraps stream.ErrBuildStreamIDOverflow.
var ErrStreamIDOverflow = fmt.Errorf("fake: stream id counter overflowed: %w", stream.ErrBuildStreamIDOverflow)

var streamIDCounter atomic.Uint32

func (b *Backend) EnumerateDevices(dir backend.Direction) ([]backend.DeviceHandle, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	var out []backend.DeviceHandle
	for i, d := range b.devices {
		switch dir {
		case backend.Input:
			if len(d.Inputs) > 0 {
				out = append(out, deviceHandle{index: i})
			}
		case backend.Output:
			if len(d.Outputs) > 0 {
				out = append(out, deviceHandle{index: i})
			}
		default:
			out = append(out, deviceHandle{index: i})
		}
	}
	return out, nil
}

func (b *Backend) OpenDevice(h backend.DeviceHandle) (backend.DeviceContext, error) {
	dh := h.(deviceHandle)
	b.mu.Lock()
	defer b.mu.Unlock()
	return deviceContext{spec: b.devices[dh.index]}, nil
}

func (b *Backend) QuerySupported(ctx backend.DeviceContext, dir backend.Direction) ([]stream.SupportedConfigRange, error) {
	dc := ctx.(deviceContext)
	if dir == backend.Input {
		return dc.spec.Inputs, nil
	}
	return dc.spec.Outputs, nil
}

// Stream is the concrete, test-controlled stream state. Tests type-
// assert the backend.StreamHandle returned by OpenStream back to
// *Stream to call Tick/Fail/SetInput/OutputBytes.
type Stream struct {
	id         uint32
	dir        backend.Direction
	cfg        stream.Config
	format     sample.Format
	hasClock   bool
	frameBytes int // bytes per frame = channels * sample size

	mu      sync.Mutex
	inBuf   []byte
	outBuf  []byte
	samples uint64 // running sample-clock position, advanced by Tick

	waitCh  chan backend.WaitResult
	started atomic.Bool
	closed  atomic.Bool
}

func (b *Backend) OpenStream(ctx backend.DeviceContext, dir backend.Direction, cfg stream.Config, format sample.Format) (backend.StreamHandle, error) {
	dc := ctx.(deviceContext)

	ranges, err := b.QuerySupported(ctx, dir)
	if err != nil {
		return nil, err
	}
	if err := stream.ValidateBuildConfig(cfg, format, ranges); err != nil {
		return nil, err
	}

	id := uint8(streamIDCounter.Add(1))
	if id == 0 {
		return nil, ErrStreamIDOverflow
	}

	frames := fixedFramesOr(cfg.BufferSize, 512)
	frameBytes := int(cfg.Channels) * format.SampleSize()

	s := &Stream{
		id:         uint32(id),
		dir:        dir,
		cfg:        cfg,
		format:     format,
		hasClock:   dc.spec.HasClock,
		frameBytes: frameBytes,
		inBuf:      make([]byte, int(frames)*frameBytes),
		outBuf:     make([]byte, int(frames)*frameBytes),
		waitCh:     make(chan backend.WaitResult),
	}
	return s, nil
}

func fixedFramesOr(bs stream.BufferSize, fallback uint32) uint32 {
	if fixed, ok := bs.(stream.BufferSizeFixed); ok {
		return fixed.Frames
	}
	return fallback
}

func (b *Backend) StreamStart(h backend.StreamHandle) error {
	h.(*Stream).started.Store(true)
	return nil
}

func (b *Backend) StreamStop(h backend.StreamHandle) error {
	h.(*Stream).started.Store(false)
	return nil
}

func (b *Backend) StreamClose(h backend.StreamHandle) error {
	s := h.(*Stream)
	if s.closed.CompareAndSwap(false, true) {
		close(s.waitCh)
	}
	return nil
}

func (b *Backend) StreamWait(h backend.StreamHandle) backend.WaitResult {
	s := h.(*Stream)
	res, ok := <-s.waitCh
	if !ok {
		return backend.WaitResult{Kind: backend.Shutdown}
	}
	return res
}

func (b *Backend) GetInputBuffer(h backend.StreamHandle, frames uint32) (unsafe.Pointer, uint32, error) {
	s := h.(*Stream)
	s.mu.Lock()
	defer s.mu.Unlock()
	granted := uint32(len(s.inBuf) / s.frameBytes)
	if granted > frames {
		granted = frames
	}
	if granted == 0 {
		return nil, 0, nil
	}
	return unsafe.Pointer(&s.inBuf[0]), granted, nil
}

func (b *Backend) GetOutputBuffer(h backend.StreamHandle, frames uint32) (unsafe.Pointer, uint32, error) {
	s := h.(*Stream)
	s.mu.Lock()
	defer s.mu.Unlock()
	granted := uint32(len(s.outBuf) / s.frameBytes)
	if granted > frames {
		granted = frames
	}
	if granted == 0 {
		return nil, 0, nil
	}
	return unsafe.Pointer(&s.outBuf[0]), granted, nil
}

func (b *Backend) ReleaseBuffer(h backend.StreamHandle, framesUsed uint32) error {
	s := h.(*Stream)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.samples += uint64(framesUsed)
	return nil
}

func (b *Backend) ClockPosition(h backend.StreamHandle) (backend.ClockPosition, bool) {
	s := h.(*Stream)
	if !s.hasClock {
		return backend.ClockPosition{}, false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return backend.ClockPosition{SamplePosition: s.samples}, true
}

// Tick simulates one backend wakeup delivering frames frames. It blocks
// until internal/runtime's audio goroutine consumes the wakeup, mirroring
// a real backend's synchronous wait/signal handshake.
func (s *Stream) Tick(frames uint32) {
	s.waitCh <- backend.WaitResult{Kind: backend.Ready, Frames: frames}
}

// Fail simulates a fatal backend error arriving at the next wakeup.
func (s *Stream) Fail(err error) {
	s.waitCh <- backend.WaitResult{Kind: backend.Err, Err: err}
}

// SetInput overwrites the stream's input buffer with raw bytes, letting
// a test script exactly what the next Tick's input buffer contains.
func (s *Stream) SetInput(data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := copy(s.inBuf, data)
	for i := n; i < len(s.inBuf); i++ {
		s.inBuf[i] = 0
	}
}

// OutputBytes returns a copy of the stream's current output buffer, for
// a test to assert on what the runtime's user callback wrote.
func (s *Stream) OutputBytes() []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]byte, len(s.outBuf))
	copy(out, s.outBuf)
	return out
}
