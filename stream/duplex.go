package stream

// DuplexConfig is the validated configuration for a duplex stream.
// Unlike independent input/output streams, a duplex stream shares one
// device context and one hardware clock (spec §4.3.3), so it carries a
// single SampleRate and BufferSize even though InputChannels and
// OutputChannels may differ — the "asymmetric channel counts" case
// spec §4.3.3 and §9 describe.
type DuplexConfig struct {
	InputChannels  ChannelCount
	OutputChannels ChannelCount
	SampleRate     SampleRate
	BufferSize     BufferSize
}

// NewDuplexConfig validates and builds a DuplexConfig. It panics if
// InputChannels or OutputChannels is zero, SampleRate is zero, or
// BufferSize is BufferSizeFixed{0} — the boundary cases spec §8
// requires build_*_stream to reject, applied identically to both
// directions of a duplex stream. These are programming errors, not
// runtime conditions a caller should recover from, the same precedent
// WithSampleRate sets for panicking on misuse within this package.
func NewDuplexConfig(inputChannels, outputChannels ChannelCount, sampleRate SampleRate, bufferSize BufferSize) DuplexConfig {
	if inputChannels == 0 {
		panic("stream: duplex input channels must be greater than 0")
	}
	if outputChannels == 0 {
		panic("stream: duplex output channels must be greater than 0")
	}
	if sampleRate == 0 {
		panic("stream: duplex sample rate must be greater than 0")
	}
	if fixed, ok := bufferSize.(BufferSizeFixed); ok && fixed.Frames == 0 {
		panic("stream: duplex buffer size cannot be Fixed(0)")
	}
	return DuplexConfig{
		InputChannels:  inputChannels,
		OutputChannels: outputChannels,
		SampleRate:     sampleRate,
		BufferSize:     bufferSize,
	}
}

// SymmetricDuplexConfig builds a DuplexConfig with the same channel
// count on both directions, the common case spec §4.3.3 calls "a
// common shortcut."
func SymmetricDuplexConfig(channels ChannelCount, sampleRate SampleRate, bufferSize BufferSize) DuplexConfig {
	return NewDuplexConfig(channels, channels, sampleRate, bufferSize)
}

// ToInputConfig returns the Config a duplex build should present to
// the backend's input side.
func (c DuplexConfig) ToInputConfig() Config {
	return Config{Channels: c.InputChannels, SampleRate: c.SampleRate, BufferSize: c.BufferSize}
}

// ToOutputConfig returns the Config a duplex build should present to
// the backend's output side.
func (c DuplexConfig) ToOutputConfig() Config {
	return Config{Channels: c.OutputChannels, SampleRate: c.SampleRate, BufferSize: c.BufferSize}
}
