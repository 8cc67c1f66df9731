package stream

import (
	"errors"
	"strings"
	"testing"
)

func TestSentinelErrors_AreDistinguishableWithErrorsIs(t *testing.T) {
	wrapped := errors.New("wrapping: " + ErrBuildStreamConfigNotSupported.Error())
	if errors.Is(wrapped, ErrBuildStreamConfigNotSupported) {
		t.Error("a freshly constructed error unexpectedly matched the sentinel via errors.Is")
	}

	if !errors.Is(ErrBuildStreamConfigNotSupported, ErrBuildStreamConfigNotSupported) {
		t.Error("sentinel does not match itself via errors.Is")
	}
}

func TestBackendSpecificConstructors_CarryDescription(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		description string
	}{
		{"devices", DevicesError("enumeration failed"), "enumeration failed"},
		{"device name", DeviceNameError("no name"), "no name"},
		{"supported configs", SupportedConfigsBackendSpecific("nope"), "nope"},
		{"default config", DefaultConfigBackendSpecific("nope"), "nope"},
		{"build stream", BuildStreamBackendSpecific("nope"), "nope"},
		{"play stream", PlayStreamBackendSpecific("nope"), "nope"},
		{"pause stream", PauseStreamBackendSpecific("nope"), "nope"},
		{"stream", StreamBackendSpecific("device unplugged"), "device unplugged"},
	}

	for _, tt := range tests {
		if !strings.Contains(tt.err.Error(), tt.description) {
			t.Errorf("%s backend-specific error %q does not carry description %q", tt.name, tt.err.Error(), tt.description)
		}
	}
}
