package aurioctl

import (
	"fmt"
	"math"
	"time"

	"github.com/go-aurio/aurio"
	"github.com/go-aurio/aurio/internal/config"
	"github.com/go-aurio/aurio/stream"
	"github.com/spf13/cobra"
)

var toneCmd = &cobra.Command{
	Use:   "tone",
	Short: "Play a sine tone on an output device",
	RunE:  runTone,
}

func init() {
	toneCmd.Flags().Float64P("freq", "f", 0, "tone frequency in Hz (overrides config)")
	toneCmd.Flags().Float64P("seconds", "s", 0, "tone duration in seconds (overrides config)")
}

func runTone(cmd *cobra.Command, _ []string) error {
	settings, err := config.Get()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if f, _ := cmd.Flags().GetFloat64("freq"); f > 0 {
		settings.ToneFrequency = f
	}
	if s, _ := cmd.Flags().GetFloat64("seconds"); s > 0 {
		settings.Seconds = s
	}

	h, err := resolveHost(settings.Host)
	if err != nil {
		return err
	}

	d, err := selectOutputDevice(h, settings.DeviceIndex)
	if err != nil {
		return err
	}

	bufferSize := stream.BufferSize(stream.BufferSizeDefault{})
	if settings.BufferSize > 0 {
		bufferSize = stream.BufferSizeFixed{Frames: uint32(settings.BufferSize)}
	}

	cfg := stream.Config{
		Channels:   stream.ChannelCount(settings.Channels),
		SampleRate: stream.SampleRate(settings.SampleRate),
		BufferSize: bufferSize,
	}

	osc := newOscillator(settings.ToneFrequency, settings.SampleRate, settings.Channels)

	done := make(chan error, 1)
	s, err := aurio.BuildOutputStream(d, cfg, osc.fill, func(err error) {
		select {
		case done <- err:
		default:
		}
	}, 0)
	if err != nil {
		return fmt.Errorf("build output stream: %w", err)
	}
	defer func() {
		if err := s.Close(); err != nil && settings.Debug {
			fmt.Printf("close stream: %v\n", err)
		}
	}()

	if err := s.Play(); err != nil {
		return fmt.Errorf("play: %w", err)
	}

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("stream error: %w", err)
		}
	case <-time.After(time.Duration(settings.Seconds * float64(time.Second))):
	}
	return nil
}

func selectOutputDevice(h aurio.Host, index int) (aurio.Device, error) {
	if index < 0 {
		d, ok := h.DefaultOutputDevice()
		if !ok {
			return nil, fmt.Errorf("%s: no default output device", h.ID())
		}
		return d, nil
	}
	devices, err := aurio.OutputDevices(h)
	if err != nil {
		return nil, fmt.Errorf("enumerate output devices: %w", err)
	}
	if index >= len(devices) {
		return nil, fmt.Errorf("device index %d out of range (%d output devices)", index, len(devices))
	}
	return devices[index], nil
}

// oscillator generates a sine wave across one or more interleaved
// channels, carrying its phase across successive callback invocations.
type oscillator struct {
	phaseInc float64
	phase    float64
	channels int
}

func newOscillator(freqHz, sampleRate float64, channels int) *oscillator {
	return &oscillator{
		phaseInc: 2 * math.Pi * freqHz / sampleRate,
		channels: channels,
	}
}

func (o *oscillator) fill(buf []float32, _ stream.OutputTimestamp) {
	frames := len(buf) / o.channels
	for i := 0; i < frames; i++ {
		v := float32(math.Sin(o.phase))
		for c := 0; c < o.channels; c++ {
			buf[i*o.channels+c] = v
		}
		o.phase += o.phaseInc
		if o.phase > 2*math.Pi {
			o.phase -= 2 * math.Pi
		}
	}
}
