package stream

import "testing"

func TestNewDuplexConfig_Accepts(t *testing.T) {
	cfg := NewDuplexConfig(1, 2, 48000, BufferSizeFixed{Frames: 256})
	if cfg.InputChannels != 1 || cfg.OutputChannels != 2 {
		t.Errorf("NewDuplexConfig channels = (%d, %d), want (1, 2)", cfg.InputChannels, cfg.OutputChannels)
	}
	if cfg.SampleRate != 48000 {
		t.Errorf("NewDuplexConfig SampleRate = %d, want 48000", cfg.SampleRate)
	}
}

func TestNewDuplexConfig_PanicsOnZeroInputChannels(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("NewDuplexConfig(0 input channels) did not panic")
		}
	}()
	NewDuplexConfig(0, 2, 48000, BufferSizeFixed{Frames: 256})
}

func TestNewDuplexConfig_PanicsOnZeroOutputChannels(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("NewDuplexConfig(0 output channels) did not panic")
		}
	}()
	NewDuplexConfig(2, 0, 48000, BufferSizeFixed{Frames: 256})
}

func TestNewDuplexConfig_PanicsOnZeroSampleRate(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("NewDuplexConfig(SampleRate 0) did not panic")
		}
	}()
	NewDuplexConfig(2, 2, 0, BufferSizeFixed{Frames: 256})
}

func TestNewDuplexConfig_PanicsOnFixedZeroBufferSize(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("NewDuplexConfig(BufferSize Fixed(0)) did not panic")
		}
	}()
	NewDuplexConfig(2, 2, 48000, BufferSizeFixed{Frames: 0})
}

func TestSymmetricDuplexConfig(t *testing.T) {
	cfg := SymmetricDuplexConfig(2, 48000, BufferSizeDefault{})
	if cfg.InputChannels != 2 || cfg.OutputChannels != 2 {
		t.Errorf("SymmetricDuplexConfig channels = (%d, %d), want (2, 2)", cfg.InputChannels, cfg.OutputChannels)
	}
}

func TestDuplexConfig_ToInputOutputConfig(t *testing.T) {
	cfg := NewDuplexConfig(1, 2, 48000, BufferSizeFixed{Frames: 256})

	in := cfg.ToInputConfig()
	if in.Channels != 1 || in.SampleRate != 48000 {
		t.Errorf("ToInputConfig() = %+v, want Channels=1 SampleRate=48000", in)
	}

	out := cfg.ToOutputConfig()
	if out.Channels != 2 || out.SampleRate != 48000 {
		t.Errorf("ToOutputConfig() = %+v, want Channels=2 SampleRate=48000", out)
	}
}
