package aurio

import (
	"github.com/go-aurio/aurio/sample"
	"github.com/go-aurio/aurio/stream"
)

// preferredRateLow/High bound the "nearer 44100-48000" zone the
// ranking heuristic in spec §4.2 favors.
const (
	preferredRateLow  = 44100
	preferredRateHigh = 48000
)

// formatRank orders sample formats by preference: F32 first, then I16,
// then everything else, all at equal (lowest) priority.
func formatRank(f sample.Format) int {
	switch f {
	case sample.F32:
		return 0
	case sample.I16:
		return 1
	default:
		return 2
	}
}

// rateDistance measures how far sr is from the preferred
// [44100, 48000] band; zero inside the band.
func rateDistance(sr stream.SampleRate) uint32 {
	switch {
	case uint32(sr) < preferredRateLow:
		return preferredRateLow - uint32(sr)
	case uint32(sr) > preferredRateHigh:
		return uint32(sr) - preferredRateHigh
	default:
		return 0
	}
}

// bufferLatencyBias ranks a SupportedBufferSize by how much latency its
// widest possible fixed buffer could add — narrower known ranges are
// preferred, and an unknown range is treated as worst-case (the
// backend could hand back anything).
func bufferLatencyBias(b stream.SupportedBufferSize) uint64 {
	switch v := b.(type) {
	case stream.BufferSizeRange:
		return uint64(v.Max)
	default:
		return ^uint64(0)
	}
}

// RankConfigs orders candidates by spec §4.2's default-selection
// heuristic: sample format (F32 > I16 > other), then sample rate
// nearest [44100, 48000] (using the range's max, the rate a
// WithMaxSampleRate() pick would land on), then narrower buffer ranges,
// with ties broken by the candidates' original (declaration) order.
// The result is a new slice; candidates is left untouched.
func RankConfigs(candidates []stream.SupportedConfigRange) []stream.SupportedConfigRange {
	ranked := make([]stream.SupportedConfigRange, len(candidates))
	copy(ranked, candidates)

	// A stable insertion sort keeps the declaration-order tie-break
	// exact and needs no extra bookkeeping for a list this small (a
	// device rarely reports more than a handful of ranges).
	for i := 1; i < len(ranked); i++ {
		j := i
		for j > 0 && less(ranked[j], ranked[j-1]) {
			ranked[j], ranked[j-1] = ranked[j-1], ranked[j]
			j--
		}
	}
	return ranked
}

func less(a, b stream.SupportedConfigRange) bool {
	if fa, fb := formatRank(a.SampleFormat), formatRank(b.SampleFormat); fa != fb {
		return fa < fb
	}
	if da, db := rateDistance(a.MaxSampleRate), rateDistance(b.MaxSampleRate); da != db {
		return da < db
	}
	return bufferLatencyBias(a.BufferSize) < bufferLatencyBias(b.BufferSize)
}

// BestConfig returns the top-ranked candidate, narrowed to its maximum
// sample rate, or ok=false if candidates is empty.
func BestConfig(candidates []stream.SupportedConfigRange) (stream.SupportedConfig, bool) {
	if len(candidates) == 0 {
		return stream.SupportedConfig{}, false
	}
	ranked := RankConfigs(candidates)
	return ranked[0].WithMaxSampleRate(), true
}
