package aurioctl

import (
	"math"
	"testing"

	"github.com/go-aurio/aurio/stream"
)

func TestOscillator_FillProducesBoundedSamples(t *testing.T) {
	osc := newOscillator(440, 48000, 2)
	buf := make([]float32, 2*64)
	osc.fill(buf, stream.OutputTimestamp{})

	for i, v := range buf {
		if v < -1.0001 || v > 1.0001 {
			t.Fatalf("buf[%d] = %v, want value in [-1, 1]", i, v)
		}
	}
}

func TestOscillator_FillDuplicatesAcrossChannels(t *testing.T) {
	osc := newOscillator(440, 48000, 2)
	buf := make([]float32, 2*8)
	osc.fill(buf, stream.OutputTimestamp{})

	for i := 0; i < 8; i++ {
		if buf[i*2] != buf[i*2+1] {
			t.Errorf("frame %d: channel 0 = %v, channel 1 = %v, want equal", i, buf[i*2], buf[i*2+1])
		}
	}
}

func TestOscillator_PhaseCarriesAcrossFillCalls(t *testing.T) {
	osc := newOscillator(1000, 48000, 1)
	first := make([]float32, 16)
	osc.fill(first, stream.OutputTimestamp{})
	phaseAfterFirst := osc.phase

	second := make([]float32, 16)
	osc.fill(second, stream.OutputTimestamp{})

	if phaseAfterFirst == 0 {
		t.Fatal("phase did not advance after first fill")
	}
	if osc.phase == phaseAfterFirst {
		t.Error("phase did not advance after second fill")
	}
}

func TestOscillator_PhaseWrapsWithinTwoPi(t *testing.T) {
	osc := newOscillator(12000, 48000, 1)
	buf := make([]float32, 4096)
	osc.fill(buf, stream.OutputTimestamp{})

	if osc.phase < 0 || osc.phase > 2*math.Pi {
		t.Errorf("phase = %v, want within [0, 2*pi]", osc.phase)
	}
}
