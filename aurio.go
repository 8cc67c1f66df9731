// Package aurio is a cross-platform, low-latency audio I/O library: a
// uniform abstraction over the native audio subsystems of the host
// operating system (WASAPI, CoreAudio, ALSA/PulseAudio, Web Audio, and
// the rest of spec §6.1's HostID set). Application code enumerates
// hosts and devices, negotiates a stream configuration, and drives or
// consumes PCM through a realtime callback, independent of which
// backend answers underneath.
//
// aurio never resamples, mixes, decodes files, or interprets MIDI — it
// delivers raw PCM frames and timing; all semantic audio work is the
// caller's (spec §1, Non-goals).
package aurio

import (
	"fmt"
	"iter"
	"time"

	"github.com/go-aurio/aurio/sample"
	"github.com/go-aurio/aurio/stream"
)

// Timeout bounds how long the built stream's Close waits for its audio
// goroutine to exit before returning anyway. Zero or a negative value
// selects a 2-second default.
type Timeout = time.Duration

// HostID names one audio subsystem. Which values are actually
// registered depends on the platform this binary runs on and which
// host packages were imported for side effects (each hosts/* package
// registers itself in its init()).
type HostID uint8

const (
	Asio HostID = iota
	CoreAudio
	Emscripten
	Jack
	Oboe
	Aaudio
	Null
	Wasapi
	Alsa
	Pulse
	PipeWire
	WebAudio
	WebAudioWorklet
	ScreenCaptureKit
)

// AllHosts is spec §6.1's ALL_HOSTS: the compile-time list of every
// HostID the library knows the name of, independent of which of them
// this build actually links or which are available on this machine.
// Use AvailableHosts for the runtime-registered subset.
var AllHosts = []HostID{
	Asio, CoreAudio, Emscripten, Jack, Oboe, Aaudio, Null,
	Wasapi, Alsa, Pulse, PipeWire, WebAudio, WebAudioWorklet,
	ScreenCaptureKit,
}

func (h HostID) String() string {
	switch h {
	case Asio:
		return "ASIO"
	case CoreAudio:
		return "CoreAudio"
	case Emscripten:
		return "Emscripten"
	case Jack:
		return "JACK"
	case Oboe:
		return "Oboe"
	case Aaudio:
		return "AAudio"
	case Null:
		return "Null"
	case Wasapi:
		return "WASAPI"
	case Alsa:
		return "ALSA"
	case Pulse:
		return "PulseAudio"
	case PipeWire:
		return "PipeWire"
	case WebAudio:
		return "WebAudio"
	case WebAudioWorklet:
		return "WebAudioWorklet"
	case ScreenCaptureKit:
		return "ScreenCaptureKit"
	default:
		return fmt.Sprintf("HostID(%d)", uint8(h))
	}
}

// DeviceID identifies a device within a host, stable for the device's
// lifetime within one process and best-effort stable across reboots.
type DeviceID struct {
	Host   HostID
	Opaque string
}

// DeviceType classifies the physical role of a device. The set is
// append-only: new variants may be added in future releases without
// breaking callers that switch over a subset and keep a default arm.
type DeviceType uint8

const (
	DeviceTypeUnknown DeviceType = iota
	DeviceTypeSpeaker
	DeviceTypeMicrophone
	DeviceTypeHeadset
	DeviceTypeHeadphones
	DeviceTypeLineIn
	DeviceTypeLineOut
)

// InterfaceType classifies the physical transport a device is attached
// through. Append-only, like DeviceType.
type InterfaceType uint8

const (
	InterfaceTypeUnknown InterfaceType = iota
	InterfaceTypeBuiltIn
	InterfaceTypeUSB
	InterfaceTypeBluetooth
	InterfaceTypeHDMI
	InterfaceTypeDisplayPort
	InterfaceTypeVirtual
)

// Direction classifies which way audio flows through a device.
type Direction uint8

const (
	DirectionUnknown Direction = iota
	DirectionInput
	DirectionOutput
	DirectionDuplex
)

// Description is structured metadata about a device. Producers build
// one with NewDescription(...).With...(...).Build(); the struct itself
// is never constructed directly outside this package so new fields can
// be added without breaking existing call sites (spec §3: "append-only,
// non-exhaustive tag sets").
type Description struct {
	name          string
	manufacturer  string
	hasMfr        bool
	driver        string
	hasDriver     bool
	deviceType    DeviceType
	interfaceType InterfaceType
	direction     Direction
	address       string
	hasAddress    bool
	extendedLines []string
}

// Name is always present.
func (d Description) Name() string { return d.name }

// Manufacturer returns the device manufacturer, if known.
func (d Description) Manufacturer() (string, bool) { return d.manufacturer, d.hasMfr }

// Driver returns the driver name backing this device, if known.
func (d Description) Driver() (string, bool) { return d.driver, d.hasDriver }

// DeviceType classifies the device's physical role.
func (d Description) DeviceType() DeviceType { return d.deviceType }

// InterfaceType classifies the device's physical transport.
func (d Description) InterfaceType() InterfaceType { return d.interfaceType }

// Direction reports which way audio flows through this device.
func (d Description) Direction() Direction { return d.direction }

// Address returns a backend-specific address string (e.g. a Bluetooth
// MAC or a network endpoint), if this device has one.
func (d Description) Address() (string, bool) { return d.address, d.hasAddress }

// ExtendedLines returns free-form backend-supplied metadata lines not
// otherwise modeled by this struct.
func (d Description) ExtendedLines() []string { return d.extendedLines }

// DescriptionBuilder constructs a Description. Zero value is not
// usable; start from NewDescription.
type DescriptionBuilder struct {
	d Description
}

// NewDescription starts building a Description for a device with the
// given (always-present) name.
func NewDescription(name string) *DescriptionBuilder {
	return &DescriptionBuilder{d: Description{name: name}}
}

func (b *DescriptionBuilder) WithManufacturer(m string) *DescriptionBuilder {
	b.d.manufacturer, b.d.hasMfr = m, true
	return b
}

func (b *DescriptionBuilder) WithDriver(driver string) *DescriptionBuilder {
	b.d.driver, b.d.hasDriver = driver, true
	return b
}

func (b *DescriptionBuilder) WithDeviceType(t DeviceType) *DescriptionBuilder {
	b.d.deviceType = t
	return b
}

func (b *DescriptionBuilder) WithInterfaceType(t InterfaceType) *DescriptionBuilder {
	b.d.interfaceType = t
	return b
}

func (b *DescriptionBuilder) WithDirection(dir Direction) *DescriptionBuilder {
	b.d.direction = dir
	return b
}

func (b *DescriptionBuilder) WithAddress(addr string) *DescriptionBuilder {
	b.d.address, b.d.hasAddress = addr, true
	return b
}

func (b *DescriptionBuilder) WithExtendedLine(line string) *DescriptionBuilder {
	b.d.extendedLines = append(b.d.extendedLines, line)
	return b
}

func (b *DescriptionBuilder) Build() Description {
	return b.d
}

// InputCallback is the realtime data callback for an input stream: buf
// is a read-only view of the captured frames, valid only for the
// duration of this call.
type InputCallback func(buf sample.Data, ts stream.InputTimestamp)

// OutputCallback is the realtime data callback for an output stream:
// buf is a writable view the callback must fill before returning. Any
// frames left untouched are delivered as silence.
type OutputCallback func(buf sample.Data, ts stream.OutputTimestamp)

// DuplexCallback is the realtime data callback for a duplex stream: in
// and out are drawn from the same backend tick and share a hardware
// clock, though their lengths may differ for asymmetric channel
// counts.
type DuplexCallback func(in, out sample.Data, ts stream.DuplexTimestamp)

// ErrorCallback reports a runtime failure after a stream reached the
// Playing state. Following this call the stream is terminal — the
// caller is expected to Close it and rebuild against a (possibly new)
// device.
type ErrorCallback func(err error)

// Stream is the runtime instantiation of one audio pipeline. Holding it
// keeps its audio thread running; Close is Go's stand-in for the
// spec's "Drop": it signals the audio thread to exit, joins it with a
// bounded wait, and releases backend resources best-effort.
type Stream interface {
	// Play starts or resumes the data callback. Idempotent: calling it
	// on an already-playing stream returns nil.
	Play() error
	// Pause suspends the data callback without releasing backend
	// resources. Idempotent. The error callback may still fire while
	// paused.
	Pause() error
	// Close signals the audio thread to exit and joins it with a
	// bounded wait. No data or error callback is invoked after Close
	// returns.
	Close() error
}

// Device represents one physical or virtual PCM endpoint.
type Device interface {
	Description() (Description, error)
	ID() (DeviceID, error)
	SupportsInput() bool
	SupportsOutput() bool

	SupportedInputConfigs() (iter.Seq[stream.SupportedConfigRange], error)
	SupportedOutputConfigs() (iter.Seq[stream.SupportedConfigRange], error)

	DefaultInputConfig() (stream.SupportedConfig, error)
	DefaultOutputConfig() (stream.SupportedConfig, error)

	BuildInputStreamRaw(cfg stream.Config, format sample.Format, dataCb InputCallback, errCb ErrorCallback, timeout Timeout) (Stream, error)
	BuildOutputStreamRaw(cfg stream.Config, format sample.Format, dataCb OutputCallback, errCb ErrorCallback, timeout Timeout) (Stream, error)
	BuildDuplexStreamRaw(inCfg, outCfg stream.Config, format sample.Format, dataCb DuplexCallback, errCb ErrorCallback, timeout Timeout) (Stream, error)
}

// Host represents one audio subsystem available on the machine. A Host
// may hold process-wide state (threads, a connection to an audio
// server); that state is constructed lazily and torn down when the
// last device or stream borrowed from it is released.
type Host interface {
	ID() HostID
	IsAvailable() bool
	Devices() ([]Device, error)
	DeviceByID(id DeviceID) (Device, bool)
	DefaultInputDevice() (Device, bool)
	DefaultOutputDevice() (Device, bool)
}

// InputDevices filters h.Devices() down to devices that support input.
func InputDevices(h Host) ([]Device, error) {
	all, err := h.Devices()
	if err != nil {
		return nil, err
	}
	var in []Device
	for _, d := range all {
		if d.SupportsInput() {
			in = append(in, d)
		}
	}
	return in, nil
}

// OutputDevices filters h.Devices() down to devices that support
// output.
func OutputDevices(h Host) ([]Device, error) {
	all, err := h.Devices()
	if err != nil {
		return nil, err
	}
	var out []Device
	for _, d := range all {
		if d.SupportsOutput() {
			out = append(out, d)
		}
	}
	return out, nil
}
