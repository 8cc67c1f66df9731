// Package portaudio adapts github.com/gordonklaus/portaudio into an
// internal/backend.Collaborator and wraps it as an aurio.Host/
// aurio.Device pair, registered under aurio.Asio — PortAudio's own
// backend selection varies the most by platform of every binding in
// this module, but ASIO is the one HostID in spec §6.1's set that
// names "whatever low-latency driver stack the platform exposes
// through a single uniform API", which is exactly PortAudio's role
// here.
package portaudio

import (
	"sync"
	"unsafe"

	nativepa "github.com/gordonklaus/portaudio"

	"github.com/go-aurio/aurio"
	"github.com/go-aurio/aurio/internal/backend"
	"github.com/go-aurio/aurio/sample"
	"github.com/go-aurio/aurio/stream"
)

func init() {
	aurio.RegisterHost(aurio.Asio, func() (aurio.Host, error) {
		return &Host{}, nil
	})
}

// Backend owns the process-wide PortAudio initialization; gordonklaus/
// portaudio requires Initialize/Terminate to bracket all use of the
// library, so Backend reference-counts them.
type Backend struct {
	mu       sync.Mutex
	refcount int
}

var _ backend.Collaborator = (*Backend)(nil)

func (b *Backend) acquire() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.refcount == 0 {
		if err := nativepa.Initialize(); err != nil {
			return err
		}
	}
	b.refcount++
	return nil
}

func (b *Backend) release() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.refcount--
	if b.refcount <= 0 {
		_ = nativepa.Terminate()
		b.refcount = 0
	}
}

type deviceHandle struct {
	info *nativepa.DeviceInfo
	dir  backend.Direction
}

type deviceContext struct {
	info *nativepa.DeviceInfo
	dir  backend.Direction
}

func (b *Backend) EnumerateDevices(dir backend.Direction) ([]backend.DeviceHandle, error) {
	if err := b.acquire(); err != nil {
		return nil, stream.DevicesError(err.Error())
	}
	defer b.release()

	devices, err := nativepa.Devices()
	if err != nil {
		return nil, stream.DevicesError(err.Error())
	}

	var out []backend.DeviceHandle
	for _, info := range devices {
		if (dir == backend.Input || dir == backend.Duplex) && info.MaxInputChannels > 0 {
			out = append(out, deviceHandle{info: info, dir: backend.Input})
		}
		if (dir == backend.Output || dir == backend.Duplex) && info.MaxOutputChannels > 0 {
			out = append(out, deviceHandle{info: info, dir: backend.Output})
		}
	}
	return out, nil
}

func (b *Backend) OpenDevice(h backend.DeviceHandle) (backend.DeviceContext, error) {
	dh := h.(deviceHandle)
	return deviceContext{info: dh.info, dir: dh.dir}, nil
}

// QuerySupported reports one config range derived from the device's
// reported default sample rate and channel counts — PortAudio's Go
// binding does not enumerate a list of discrete supported rates, only
// a single DefaultSampleRate per device.
func (b *Backend) QuerySupported(ctx backend.DeviceContext, dir backend.Direction) ([]stream.SupportedConfigRange, error) {
	dc := ctx.(deviceContext)
	channels := dc.info.MaxInputChannels
	if dir == backend.Output {
		channels = dc.info.MaxOutputChannels
	}
	if channels == 0 {
		return nil, nil
	}
	rate := stream.SampleRate(dc.info.DefaultSampleRate)
	return []stream.SupportedConfigRange{
		{
			Channels:      stream.ChannelCount(channels),
			MinSampleRate: rate,
			MaxSampleRate: rate,
			BufferSize:    stream.UnknownBufferSize{},
			SampleFormat:  sample.F32,
		},
	}, nil
}

func framesPerBuffer(bs stream.BufferSize) int {
	if fixed, ok := bs.(stream.BufferSizeFixed); ok {
		return int(fixed.Frames)
	}
	return nativepa.FramesPerBufferUnspecified
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
	if err := b.acquire(); err != nil {
		return nil, stream.BuildStreamBackendSpecific(err.Error())
	}

	s := newStream(dir, b)

	var params nativepa.StreamParameters
	switch dir {
	case backend.Input:
		params = nativepa.LowLatencyParameters(dc.info, nil)
		params.Input.Channels = int(cfg.Channels)
	case backend.Output:
		params = nativepa.LowLatencyParameters(nil, dc.info)
		params.Output.Channels = int(cfg.Channels)
	case backend.Duplex:
		params = nativepa.LowLatencyParameters(dc.info, dc.info)
		params.Input.Channels = int(cfg.Channels)
		params.Output.Channels = int(cfg.Channels)
	}
	params.SampleRate = float64(cfg.SampleRate)
	params.FramesPerBuffer = framesPerBuffer(cfg.BufferSize)

	var (
		paStream *nativepa.Stream
		err      error
	)
	switch dir {
	case backend.Input:
		paStream, err = nativepa.OpenStream(params, s.onInput)
	case backend.Output:
		paStream, err = nativepa.OpenStream(params, s.onOutput)
	case backend.Duplex:
		paStream, err = nativepa.OpenStream(params, s.onDuplex)
	}
	if err != nil {
		b.release()
		return nil, stream.BuildStreamBackendSpecific(err.Error())
	}
	s.paStream = paStream
	return s, nil
}

func (b *Backend) StreamStart(h backend.StreamHandle) error {
	if err := h.(*Stream).paStream.Start(); err != nil {
		return stream.PlayStreamBackendSpecific(err.Error())
	}
	return nil
}

func (b *Backend) StreamStop(h backend.StreamHandle) error {
	s := h.(*Stream)
	s.signalShutdown()
	if err := s.paStream.Stop(); err != nil {
		return stream.PauseStreamBackendSpecific(err.Error())
	}
	return nil
}

func (b *Backend) StreamClose(h backend.StreamHandle) error {
	s := h.(*Stream)
	s.signalShutdown()
	err := s.paStream.Close()
	b.release()
	if err != nil {
		return stream.StreamBackendSpecific(err.Error())
	}
	return nil
}

func (b *Backend) StreamWait(h backend.StreamHandle) backend.WaitResult {
	return h.(*Stream).wait()
}

func (b *Backend) GetInputBuffer(h backend.StreamHandle, frames uint32) (unsafe.Pointer, uint32, error) {
	return h.(*Stream).inputBuffer(frames)
}

func (b *Backend) GetOutputBuffer(h backend.StreamHandle, frames uint32) (unsafe.Pointer, uint32, error) {
	return h.(*Stream).outputBuffer(frames)
}

func (b *Backend) ReleaseBuffer(h backend.StreamHandle, framesUsed uint32) error {
	h.(*Stream).releaseBuffer()
	return nil
}

// ClockPosition: the Go PortAudio binding exposes stream.Time() (an
// output-latency-adjusted timestamp) but not a raw hardware sample
// position comparable across input and output; we leave this backend
// on internal/runtime's wall-clock fallback rather than approximate one.
func (b *Backend) ClockPosition(h backend.StreamHandle) (backend.ClockPosition, bool) {
	return backend.ClockPosition{}, false
}
