package portaudio

import (
	"iter"

	"github.com/go-aurio/aurio"
	"github.com/go-aurio/aurio/internal/backend"
	"github.com/go-aurio/aurio/internal/runtime"
	"github.com/go-aurio/aurio/sample"
	"github.com/go-aurio/aurio/stream"
)

// Host lazily reference-counts PortAudio's global Initialize/Terminate
// pair: each open Stream holds a reference until it is closed, and
// enumeration and IsAvailable hold one only for the call. Devices hold
// no reference of their own.
type Host struct {
	backend Backend
}

func (h *Host) ID() aurio.HostID { return aurio.Asio }

func (h *Host) IsAvailable() bool {
	if err := h.backend.acquire(); err != nil {
		return false
	}
	h.backend.release()
	return true
}

func (h *Host) Devices() ([]aurio.Device, error) {
	handles, err := h.backend.EnumerateDevices(backend.Duplex)
	if err != nil {
		return nil, err
	}
	out := make([]aurio.Device, 0, len(handles))
	for _, raw := range handles {
		dh := raw.(deviceHandle)
		out = append(out, &device{backend: &h.backend, handle: dh})
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
	return aurio.NewDescription(d.handle.info.Name).
		WithDirection(dirTag).
		Build(), nil
}

func (d *device) ID() (aurio.DeviceID, error) {
	return aurio.DeviceID{Host: aurio.Asio, Opaque: d.handle.info.Name}, nil
}

func (d *device) SupportsInput() bool  { return d.handle.dir == backend.Input }
func (d *device) SupportsOutput() bool { return d.handle.dir == backend.Output }

func (d *device) SupportedInputConfigs() (iter.Seq[stream.SupportedConfigRange], error) {
	return d.supportedConfigs(backend.Input)
}

func (d *device) SupportedOutputConfigs() (iter.Seq[stream.SupportedConfigRange], error) {
	return d.supportedConfigs(backend.Output)
}

func (d *device) supportedConfigs(dir backend.Direction) (iter.Seq[stream.SupportedConfigRange], error) {
	ctx := deviceContext{info: d.handle.info, dir: dir}
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
	ranges, err := d.supportedConfigsSlice(dir)
	if err != nil || len(ranges) == 0 {
		return stream.SupportedConfig{}, stream.ErrDefaultConfigStreamTypeNotSupported
	}
	best, _ := aurio.BestConfig(ranges)
	return best, nil
}

func (d *device) supportedConfigsSlice(dir backend.Direction) ([]stream.SupportedConfigRange, error) {
	ctx := deviceContext{info: d.handle.info, dir: dir}
	return d.backend.QuerySupported(ctx, dir)
}

func (d *device) BuildInputStreamRaw(cfg stream.Config, format sample.Format, dataCb aurio.InputCallback, errCb aurio.ErrorCallback, timeout aurio.Timeout) (aurio.Stream, error) {
	ctx := deviceContext{info: d.handle.info, dir: backend.Input}
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
	ctx := deviceContext{info: d.handle.info, dir: backend.Output}
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
	// PortAudio's LowLatencyParameters shares one SampleRate across
	// input and output, so a mismatched rate can't be honored; an
	// asymmetric channel count is rejected too since OpenStream below
	// only forwards outCfg's channel count to both directions.
	_ = stream.NewDuplexConfig(inCfg.Channels, outCfg.Channels, outCfg.SampleRate, outCfg.BufferSize)
	if inCfg.SampleRate != outCfg.SampleRate || inCfg.Channels != outCfg.Channels {
		return nil, stream.ErrBuildStreamConfigNotSupported
	}

	ctx := deviceContext{info: d.handle.info, dir: backend.Duplex}
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
