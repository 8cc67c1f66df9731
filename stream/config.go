package stream

import (
	"fmt"

	"github.com/go-aurio/aurio/sample"
)

// Config is the minimal tuple required to build a stream: the caller's
// request, before the sample format has been negotiated.
type Config struct {
	Channels   ChannelCount
	SampleRate SampleRate
	BufferSize BufferSize
}

// SupportedConfig is a Config plus the sample format that was actually
// negotiated — the result of a successful build, or of narrowing a
// SupportedConfigRange down to one concrete choice.
type SupportedConfig struct {
	Config
	SampleFormat sample.Format
}

// SupportedConfigRange is what a device declares it can do: a span of
// sample rates rather than one fixed value, plus the supported buffer
// range and the sample format this particular range applies to. A
// device yields a sequence of these from SupportedInputConfigs /
// SupportedOutputConfigs; clients narrow one down to a SupportedConfig
// with WithSampleRate or WithMaxSampleRate.
type SupportedConfigRange struct {
	Channels      ChannelCount
	MinSampleRate SampleRate
	MaxSampleRate SampleRate
	BufferSize    SupportedBufferSize
	SampleFormat  sample.Format
}

// WithSampleRate narrows r to a concrete SupportedConfig at the given
// rate. It panics if sr falls outside [MinSampleRate, MaxSampleRate] —
// narrowing to a rate the device never declared support for is a
// programming error, not a runtime condition a caller should recover
// from (mirrors the spec's "panics if outside range").
func (r SupportedConfigRange) WithSampleRate(sr SampleRate) SupportedConfig {
	if sr < r.MinSampleRate || sr > r.MaxSampleRate {
		panic(fmt.Sprintf("stream: sample rate %d outside supported range [%d, %d]", sr, r.MinSampleRate, r.MaxSampleRate))
	}
	return SupportedConfig{
		Config: Config{
			Channels:   r.Channels,
			SampleRate: sr,
			BufferSize: defaultBufferSizeFor(r.BufferSize),
		},
		SampleFormat: r.SampleFormat,
	}
}

// WithMaxSampleRate narrows r to a concrete SupportedConfig at its
// highest declared sample rate.
func (r SupportedConfigRange) WithMaxSampleRate() SupportedConfig {
	return r.WithSampleRate(r.MaxSampleRate)
}

// Includes reports whether cfg could have been produced by narrowing r
// — the basis for P10 (any config accepted at build time must appear
// in some range the device enumerates).
func (r SupportedConfigRange) Includes(cfg SupportedConfig) bool {
	if cfg.SampleFormat != r.SampleFormat {
		return false
	}
	if cfg.Channels != r.Channels {
		return false
	}
	if cfg.SampleRate < r.MinSampleRate || cfg.SampleRate > r.MaxSampleRate {
		return false
	}
	if fixed, ok := cfg.BufferSize.(BufferSizeFixed); ok {
		return Contains(r.BufferSize, fixed.Frames)
	}
	return true
}

func defaultBufferSizeFor(s SupportedBufferSize) BufferSize {
	return BufferSizeDefault{}
}

// ValidateBuildConfig is the shared implementation behind spec §4.2
// step 1 ("validate the config against the device's supported
// configs; on mismatch, fail with StreamConfigNotSupported"): it
// rejects the zero-value boundary cases spec §8 calls out (SampleRate
// 0, Channels 0, BufferSize Fixed(0)) unconditionally, then requires
// cfg+format to be Included in at least one of ranges — the device's
// own declared SupportedConfigRanges — which is P10's inclusion
// invariant. Every Build*StreamRaw path funnels through this via its
// backend.Collaborator.OpenStream call.
func ValidateBuildConfig(cfg Config, format sample.Format, ranges []SupportedConfigRange) error {
	if cfg.SampleRate == 0 || cfg.Channels == 0 {
		return ErrBuildStreamConfigNotSupported
	}
	if fixed, ok := cfg.BufferSize.(BufferSizeFixed); ok && fixed.Frames == 0 {
		return ErrBuildStreamConfigNotSupported
	}
	candidate := SupportedConfig{Config: cfg, SampleFormat: format}
	for _, r := range ranges {
		if r.Includes(candidate) {
			return nil
		}
	}
	return ErrBuildStreamConfigNotSupported
}
