// Package null implements a host with zero devices, always available.
// It exists so a binary that wants a working DefaultHost() without
// linking any native audio library can import just this package, and
// so internal/runtime's callers have a deterministic fallback when no
// native backend is available on the current machine (spec §6.1's
// NullDevice case).
package null

import (
	"iter"

	"github.com/go-aurio/aurio"
	"github.com/go-aurio/aurio/sample"
	"github.com/go-aurio/aurio/stream"
)

func init() {
	aurio.RegisterHost(aurio.Null, func() (aurio.Host, error) {
		return Host{}, nil
	})
}

// Host is the zero-device, always-available null backend.
type Host struct{}

func (Host) ID() aurio.HostID { return aurio.Null }
func (Host) IsAvailable() bool { return true }
func (Host) Devices() ([]aurio.Device, error) { return nil, nil }
func (Host) DeviceByID(aurio.DeviceID) (aurio.Device, bool) { return nil, false }
func (Host) DefaultInputDevice() (aurio.Device, bool) { return nil, false }
func (Host) DefaultOutputDevice() (aurio.Device, bool) { return nil, false }

// device would be the Device implementation if the null host ever
// exposed a virtual device; spec §6.1 calls for zero devices, so it is
// unused today and kept only as a type-check that aurio.Device's shape
// is satisfiable with no backend behind it at all.
type device struct{}

var _ aurio.Device = device{}

func (device) Description() (aurio.Description, error) {
	return aurio.NewDescription("Null").Build(), nil
}
func (device) ID() (aurio.DeviceID, error) { return aurio.DeviceID{Host: aurio.Null, Opaque: "null"}, nil }
func (device) SupportsInput() bool  { return false }
func (device) SupportsOutput() bool { return false }
func (device) SupportedInputConfigs() (iter.Seq[stream.SupportedConfigRange], error) {
	return func(func(stream.SupportedConfigRange) bool) {}, nil
}
func (device) SupportedOutputConfigs() (iter.Seq[stream.SupportedConfigRange], error) {
	return func(func(stream.SupportedConfigRange) bool) {}, nil
}
func (device) DefaultInputConfig() (stream.SupportedConfig, error) {
	return stream.SupportedConfig{}, stream.SupportedConfigsBackendSpecific("null host has no devices")
}
func (device) DefaultOutputConfig() (stream.SupportedConfig, error) {
	return stream.SupportedConfig{}, stream.SupportedConfigsBackendSpecific("null host has no devices")
}
func (device) BuildInputStreamRaw(stream.Config, sample.Format, aurio.InputCallback, aurio.ErrorCallback, aurio.Timeout) (aurio.Stream, error) {
	return nil, stream.BuildStreamBackendSpecific("null host has no devices")
}
func (device) BuildOutputStreamRaw(stream.Config, sample.Format, aurio.OutputCallback, aurio.ErrorCallback, aurio.Timeout) (aurio.Stream, error) {
	return nil, stream.BuildStreamBackendSpecific("null host has no devices")
}
func (device) BuildDuplexStreamRaw(stream.Config, stream.Config, sample.Format, aurio.DuplexCallback, aurio.ErrorCallback, aurio.Timeout) (aurio.Stream, error) {
	return nil, stream.BuildStreamBackendSpecific("null host has no devices")
}
