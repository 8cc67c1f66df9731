package malgo

import (
	"iter"

	"github.com/go-aurio/aurio"
	"github.com/go-aurio/aurio/internal/backend"
	"github.com/go-aurio/aurio/internal/runtime"
	"github.com/go-aurio/aurio/sample"
	"github.com/go-aurio/aurio/stream"
)

// Host lazily owns one malgo context, shared by every Device it hands
// out; the context is only initialized (and the native library only
// touched) the first time a caller asks for it. Once initialized it is
// kept for the Host's lifetime: releasing the last Device or Stream
// does not tear it down.
type Host struct {
	backend *Backend
}

func newHost() (aurio.Host, error) {
	// A native context is relatively expensive and touches real audio
	// APIs, so IsAvailable()/Devices() initialize it lazily rather than
	// at RegisterHost time (spec §6.1: a host package's mere import
	// must not have side effects beyond registration).
	return &Host{}, nil
}

func (h *Host) ensureBackend() (*Backend, error) {
	if h.backend != nil {
		return h.backend, nil
	}
	b, err := newBackend()
	if err != nil {
		return nil, err
	}
	h.backend = b
	return b, nil
}

func (h *Host) ID() aurio.HostID { return hostID() }

func (h *Host) IsAvailable() bool {
	_, err := h.ensureBackend()
	return err == nil
}

func (h *Host) Devices() ([]aurio.Device, error) {
	b, err := h.ensureBackend()
	if err != nil {
		return nil, stream.DevicesError(err.Error())
	}
	handles, err := b.EnumerateDevices(backend.Duplex)
	if err != nil {
		return nil, err
	}
	out := make([]aurio.Device, 0, len(handles))
	for _, raw := range handles {
		dh := raw.(deviceHandle)
		out = append(out, &device{backend: b, handle: dh})
	}
	return out, nil
}

func (h *Host) DeviceByID(id aurio.DeviceID) (aurio.Device, bool) {
	devices, err := h.Devices()
	if err != nil {
		return nil, false
	}
	for _, d := range devices {
		did, err := d.ID()
		if err == nil && did == id {
			return d, true
		}
	}
	return nil, false
}

func (h *Host) DefaultInputDevice() (aurio.Device, bool) {
	devices, err := h.Devices()
	if err != nil {
		return nil, false
	}
	for _, d := range devices {
		if d.SupportsInput() {
			return d, true
		}
	}
	return nil, false
}

func (h *Host) DefaultOutputDevice() (aurio.Device, bool) {
	devices, err := h.Devices()
	if err != nil {
		return nil, false
	}
	for _, d := range devices {
		if d.SupportsOutput() {
			return d, true
		}
	}
	return nil, false
}

// device adapts one malgo.DeviceInfo into aurio.Device, building
// internal/runtime Engines on top of the shared Backend.
type device struct {
	backend *Backend
	handle  deviceHandle
}

var _ aurio.Device = (*device)(nil)

func (d *device) Description() (aurio.Description, error) {
	dirTag := aurio.DirectionOutput
	if d.handle.dir == backend.Input {
		dirTag = aurio.DirectionInput
	}
	return aurio.NewDescription(d.handle.info.Name()).
		WithDirection(dirTag).
		Build(), nil
}

func (d *device) ID() (aurio.DeviceID, error) {
	return aurio.DeviceID{Host: hostID(), Opaque: d.backend.opaqueID(d.handle.info, d.handle.dir)}, nil
}

func (d *device) SupportsInput() bool  { return d.handle.dir == backend.Input }
func (d *device) SupportsOutput() bool { return d.handle.dir == backend.Output }

func (d *device) openContext() (backend.DeviceContext, error) {
	return d.backend.OpenDevice(d.handle)
}

func (d *device) SupportedInputConfigs() (iter.Seq[stream.SupportedConfigRange], error) {
	return d.supportedConfigs(backend.Input)
}

func (d *device) SupportedOutputConfigs() (iter.Seq[stream.SupportedConfigRange], error) {
	return d.supportedConfigs(backend.Output)
}

func (d *device) supportedConfigs(dir backend.Direction) (iter.Seq[stream.SupportedConfigRange], error) {
	ctx, err := d.openContext()
	if err != nil {
		return nil, stream.SupportedConfigsBackendSpecific(err.Error())
	}
	ranges, err := d.backend.QuerySupported(ctx, dir)
	if err != nil {
		return nil, err
	}
	return func(yield func(stream.SupportedConfigRange) bool) {
		for _, r := range ranges {
			if !yield(r) {
				return
			}
		}
	}, nil
}

func (d *device) DefaultInputConfig() (stream.SupportedConfig, error) {
	return d.defaultConfig(backend.Input)
}

func (d *device) DefaultOutputConfig() (stream.SupportedConfig, error) {
	return d.defaultConfig(backend.Output)
}

func (d *device) defaultConfig(dir backend.Direction) (stream.SupportedConfig, error) {
	ctx, err := d.openContext()
	if err != nil {
		return stream.SupportedConfig{}, stream.DefaultConfigBackendSpecific(err.Error())
	}
	ranges, err := d.backend.QuerySupported(ctx, dir)
	if err != nil || len(ranges) == 0 {
		return stream.SupportedConfig{}, stream.ErrDefaultConfigStreamTypeNotSupported
	}
	best, _ := aurio.BestConfig(ranges)
	return best, nil
}

func (d *device) BuildInputStreamRaw(cfg stream.Config, format sample.Format, dataCb aurio.InputCallback, errCb aurio.ErrorCallback, timeout aurio.Timeout) (aurio.Stream, error) {
	ctx, err := d.openContext()
	if err != nil {
		return nil, stream.BuildStreamBackendSpecific(err.Error())
	}
	h, err := d.backend.OpenStream(ctx, backend.Input, cfg, format)
	if err != nil {
		return nil, err
	}
	var errCbFn func(error)
	if errCb != nil {
		errCbFn = errCb
	}
	return runtime.NewInput(d.backend, h, cfg.SampleRate, uint16(cfg.Channels), format, dataCb, errCbFn, timeout), nil
}

func (d *device) BuildOutputStreamRaw(cfg stream.Config, format sample.Format, dataCb aurio.OutputCallback, errCb aurio.ErrorCallback, timeout aurio.Timeout) (aurio.Stream, error) {
	ctx, err := d.openContext()
	if err != nil {
		return nil, stream.BuildStreamBackendSpecific(err.Error())
	}
	h, err := d.backend.OpenStream(ctx, backend.Output, cfg, format)
	if err != nil {
		return nil, err
	}
	var errCbFn func(error)
	if errCb != nil {
		errCbFn = errCb
	}
	return runtime.NewOutput(d.backend, h, cfg.SampleRate, uint16(cfg.Channels), format, dataCb, errCbFn, timeout), nil
}

func (d *device) BuildDuplexStreamRaw(inCfg, outCfg stream.Config, format sample.Format, dataCb aurio.DuplexCallback, errCb aurio.ErrorCallback, timeout aurio.Timeout) (aurio.Stream, error) {
	// NewDuplexConfig panic-checks both directions' zero-value
	// invariants identically to a symmetric single-direction build.
	// The malgo device runs capture and playback at one sample rate,
	// and OpenStream forwards a single channel count to both sides, so
	// an asymmetric request or a mismatched rate can't be honored here.
	_ = stream.NewDuplexConfig(inCfg.Channels, outCfg.Channels, outCfg.SampleRate, outCfg.BufferSize)
	if inCfg.SampleRate != outCfg.SampleRate || inCfg.Channels != outCfg.Channels {
		return nil, stream.ErrBuildStreamConfigNotSupported
	}

	ctx, err := d.openContext()
	if err != nil {
		return nil, stream.BuildStreamBackendSpecific(err.Error())
	}
	h, err := d.backend.OpenStream(ctx, backend.Duplex, outCfg, format)
	if err != nil {
		return nil, err
	}
	var errCbFn func(error)
	if errCb != nil {
		errCbFn = errCb
	}
	return runtime.NewDuplex(d.backend, h, outCfg.SampleRate, uint16(inCfg.Channels), uint16(outCfg.Channels), format, dataCb, errCbFn, timeout), nil
}
