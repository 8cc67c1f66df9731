package stream

import "errors"

// backendSpecific is the shared implementation behind every
// *.BackendSpecific error kind in spec §4.5: a catch-all that carries
// human text from the native backend. Callers may string-match it for
// diagnostics but should prefer errors.Is against the package's
// sentinels for control flow.
type backendSpecific struct {
	kind        string
	description string
}

func (e *backendSpecific) Error() string {
	return e.kind + ": " + e.description
}

// Devices enumeration errors.
var ErrDevicesBackendSpecific = errors.New("devices: backend specific error")

// DevicesError reports that enumeration failed. It is never returned
// merely because zero devices exist (spec §4.1).
func DevicesError(description string) error {
	return &backendSpecific{kind: "devices", description: description}
}

// Device name / description errors.
var ErrDeviceName = errors.New("device: could not read device name")

// DeviceNameError wraps a backend-specific failure to read a device's
// human-readable name.
func DeviceNameError(description string) error {
	return &backendSpecific{kind: "device name", description: description}
}

// Device id errors.
var ErrUnsupportedPlatform = errors.New("device id: backend has no stable id on this platform")

// SupportedConfigsError kinds.
var (
	ErrSupportedConfigsDeviceNotAvailable = errors.New("supported configs: device not available")
	ErrSupportedConfigsInvalidArgument    = errors.New("supported configs: invalid argument")
)

// SupportedConfigsBackendSpecific wraps a backend failure while
// enumerating supported configs.
func SupportedConfigsBackendSpecific(description string) error {
	return &backendSpecific{kind: "supported configs", description: description}
}

// DefaultConfigError kinds.
var (
	ErrDefaultConfigStreamTypeNotSupported = errors.New("default config: stream type not supported by this device")
)

// DefaultConfigBackendSpecific wraps a backend failure while
// negotiating a default config.
func DefaultConfigBackendSpecific(description string) error {
	return &backendSpecific{kind: "default config", description: description}
}

// BuildStreamError kinds.
var (
	ErrBuildDeviceNotAvailable       = errors.New("build stream: device not available")
	ErrBuildStreamConfigNotSupported = errors.New("build stream: requested config not supported")
	ErrBuildInvalidArgument          = errors.New("build stream: invalid argument")
	ErrBuildStreamIDOverflow         = errors.New("build stream: stream id counter overflowed")
)

// BuildStreamBackendSpecific wraps a backend failure while building a
// stream.
func BuildStreamBackendSpecific(description string) error {
	return &backendSpecific{kind: "build stream", description: description}
}

// PlayStreamError / PauseStreamError kinds.
var (
	ErrPlayDeviceNotAvailable  = errors.New("play stream: device not available")
	ErrPauseDeviceNotAvailable = errors.New("pause stream: device not available")
)

// PlayStreamBackendSpecific wraps a backend failure while transitioning
// to playing.
func PlayStreamBackendSpecific(description string) error {
	return &backendSpecific{kind: "play stream", description: description}
}

// PauseStreamBackendSpecific wraps a backend failure while
// transitioning to paused.
func PauseStreamBackendSpecific(description string) error {
	return &backendSpecific{kind: "pause stream", description: description}
}

// StreamError kinds, delivered to a running stream's error callback.
var ErrStreamDeviceNotAvailable = errors.New("stream: device not available")

// StreamBackendSpecific wraps a mid-stream backend failure (including a
// recovered callback panic) delivered to error_callback.
func StreamBackendSpecific(description string) error {
	return &backendSpecific{kind: "stream", description: description}
}
