// Package stream defines the stream configuration and timing types
// that are independent of any particular Host: sample rates, buffer
// sizes, negotiated configs, and the monotonic clock model the audio
// runtime reports timestamps on.
package stream

// SampleRate is frames per second, per channel.
type SampleRate uint32

// ChannelCount is the number of interleaved channels in one frame.
type ChannelCount uint16
