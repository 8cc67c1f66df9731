// Package malgo adapts github.com/gen2brain/malgo (a miniaudio
// binding) into an internal/backend.Collaborator, and wraps that as an
// aurio.Host/aurio.Device pair. malgo picks whichever native subsystem
// miniaudio selects on the running platform (WASAPI, CoreAudio, ALSA,
// ...); this package registers under the HostID matching that choice
// rather than inventing a "miniaudio" HostID the rest of spec §6.1
// never names.
package malgo

import (
	"fmt"
	"runtime"
	"sync"
	"unsafe"

	nativemalgo "github.com/gen2brain/malgo"
	"github.com/google/uuid"

	"github.com/go-aurio/aurio"
	"github.com/go-aurio/aurio/internal/backend"
	"github.com/go-aurio/aurio/sample"
	"github.com/go-aurio/aurio/stream"
)

func init() {
	aurio.RegisterHost(hostID(), func() (aurio.Host, error) {
		return newHost()
	})
}

// hostID maps the platform this binary is built for to the HostID
// miniaudio's own backend selection would report, per spec §6.1's
// table.
func hostID() aurio.HostID {
	switch runtime.GOOS {
	case "windows":
		return aurio.Wasapi
	case "darwin", "ios":
		return aurio.CoreAudio
	case "linux":
		return aurio.Alsa
	default:
		return aurio.Alsa
	}
}

// Backend owns one process-wide malgo context and implements
// backend.Collaborator against it.
type Backend struct {
	mu  sync.Mutex
	ctx *nativemalgo.AllocatedContext

	fallbackMu  sync.Mutex
	fallbackIDs map[string]string
}

var _ backend.Collaborator = (*Backend)(nil)

func newBackend() (*Backend, error) {
	ctx, err := nativemalgo.InitContext(nil, nativemalgo.ContextConfig{}, nil)
	if err != nil {
		return nil, fmt.Errorf("malgo: init context: %w", err)
	}
	return &Backend{ctx: ctx, fallbackIDs: make(map[string]string)}, nil
}

// opaqueID returns a stable-for-the-process opaque string for a
// device. miniaudio usually reports a real native id, which we encode
// directly; when it doesn't (a zero-value id, which the Go binding
// hands back for some virtual/default devices), we mint one with
// google/uuid and cache it under the device's (direction, name) key so
// repeated enumerations return the same fallback id, per spec.md §3's
// "best-effort stable across reboots" — reboots aren't achievable for
// a fallback with no native backing, so the process lifetime is what
// we can promise.
func (b *Backend) opaqueID(info nativemalgo.DeviceInfo, dir backend.Direction) string {
	var zero nativemalgo.DeviceID
	if info.ID != zero {
		return fmt.Sprintf("%x", info.ID)
	}

	key := fmt.Sprintf("%d:%s", dir, info.Name())
	b.fallbackMu.Lock()
	defer b.fallbackMu.Unlock()
	if id, ok := b.fallbackIDs[key]; ok {
		return id
	}
	id := uuid.New().String()
	b.fallbackIDs[key] = id
	return id
}

type deviceHandle struct {
	info nativemalgo.DeviceInfo
	dir  backend.Direction
}

type deviceContext struct {
	info nativemalgo.DeviceInfo
	dir  backend.Direction
}

func (b *Backend) EnumerateDevices(dir backend.Direction) ([]backend.DeviceHandle, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	kinds := []nativemalgo.DeviceType{nativemalgo.Capture, nativemalgo.Playback}
	if dir == backend.Input {
		kinds = []nativemalgo.DeviceType{nativemalgo.Capture}
	} else if dir == backend.Output {
		kinds = []nativemalgo.DeviceType{nativemalgo.Playback}
	}

	var out []backend.DeviceHandle
	for _, kind := range kinds {
		infos, err := b.ctx.Devices(kind)
		if err != nil {
			return nil, stream.DevicesError(err.Error())
		}
		d := backend.Input
		if kind == nativemalgo.Playback {
			d = backend.Output
		}
		for _, info := range infos {
			out = append(out, deviceHandle{info: info, dir: d})
		}
	}
	return out, nil
}

func (b *Backend) OpenDevice(h backend.DeviceHandle) (backend.DeviceContext, error) {
	dh := h.(deviceHandle)
	return deviceContext{info: dh.info, dir: dh.dir}, nil
}

// QuerySupported reports one best-effort config range per device. malgo
// does not expose miniaudio's native-format enumeration through its Go
// binding, so — exactly as the capture pipeline this package is
// grounded on always requested — we declare the one configuration we
// actually ask miniaudio to convert into: F32, a typical consumer rate
// band, and the driver's free choice of period size.
func (b *Backend) QuerySupported(ctx backend.DeviceContext, dir backend.Direction) ([]stream.SupportedConfigRange, error) {
	if _, ok := ctx.(deviceContext); !ok {
		return nil, stream.ErrSupportedConfigsInvalidArgument
	}
	channels := stream.ChannelCount(2)
	if dir == backend.Input {
		channels = 1
	}
	return []stream.SupportedConfigRange{
		{
			Channels:      channels,
			MinSampleRate: 8000,
			MaxSampleRate: 192000,
			BufferSize:    stream.BufferSizeRange{Min: 64, Max: 8192},
			SampleFormat:  sample.F32,
		},
	}, nil
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

	s := newStream(dir)

	deviceConfig := nativemalgo.DeviceConfig{
		SampleRate: uint32(cfg.SampleRate),
	}
	if frames, ok := cfg.BufferSize.(stream.BufferSizeFixed); ok {
		deviceConfig.PeriodSizeInFrames = frames.Frames
	}

	switch dir {
	case backend.Input:
		deviceConfig.DeviceType = nativemalgo.Capture
		deviceConfig.Capture = nativemalgo.SubConfig{
			Format:   nativemalgo.FormatF32,
			Channels: uint32(cfg.Channels),
			DeviceID: dc.info.ID.Pointer(),
		}
	case backend.Output:
		deviceConfig.DeviceType = nativemalgo.Playback
		deviceConfig.Playback = nativemalgo.SubConfig{
			Format:   nativemalgo.FormatF32,
			Channels: uint32(cfg.Channels),
			DeviceID: dc.info.ID.Pointer(),
		}
	case backend.Duplex:
		deviceConfig.DeviceType = nativemalgo.Duplex
		deviceConfig.Capture = nativemalgo.SubConfig{Format: nativemalgo.FormatF32, Channels: uint32(cfg.Channels)}
		deviceConfig.Playback = nativemalgo.SubConfig{Format: nativemalgo.FormatF32, Channels: uint32(cfg.Channels), DeviceID: dc.info.ID.Pointer()}
	}

	device, err := nativemalgo.InitDevice(b.ctx.Context, deviceConfig, nativemalgo.DeviceCallbacks{Data: s.onData})
	if err != nil {
		return nil, stream.BuildStreamBackendSpecific(err.Error())
	}
	s.device = device
	return s, nil
}

func (b *Backend) StreamStart(h backend.StreamHandle) error {
	s := h.(*Stream)
	if err := s.device.Start(); err != nil {
		return stream.PlayStreamBackendSpecific(err.Error())
	}
	return nil
}

func (b *Backend) StreamStop(h backend.StreamHandle) error {
	s := h.(*Stream)
	s.signalShutdown()
	if err := s.device.Stop(); err != nil {
		return stream.PauseStreamBackendSpecific(err.Error())
	}
	return nil
}

func (b *Backend) StreamClose(h backend.StreamHandle) error {
	s := h.(*Stream)
	s.signalShutdown()
	s.device.Uninit()
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
	h.(*Stream).release()
	return nil
}

// ClockPosition: miniaudio's Go binding does not expose a hardware
// clock reading, so internal/runtime always falls back to its wall-
// clock timestamp derivation for this backend.
func (b *Backend) ClockPosition(h backend.StreamHandle) (backend.ClockPosition, bool) {
	return backend.ClockPosition{}, false
}
