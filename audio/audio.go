// Package audio holds RawAudio, the core's only audio input type (spec §3,
// §6): mono 16 kHz float32 PCM, silence-trimmed and peak-normalized by the
// caller before it ever reaches this module.
package audio

import (
	"math"

	"github.com/cwbudde/speechalign/alignerr"
)

// RequiredSampleRate is the only sample rate the core accepts. Any
// resampling happens upstream, outside the core (spec §1, §6).
const RequiredSampleRate = 16000

// RawAudio is a mono signal: an ordered sequence of float32 samples in
// [-1, 1] at RequiredSampleRate.
type RawAudio struct {
	Samples    []float32
	SampleRate int
}

// Duration returns the signal duration in seconds.
func (a RawAudio) Duration() float64 {
	if a.SampleRate <= 0 {
		return 0
	}
	return float64(len(a.Samples)) / float64(a.SampleRate)
}

// New validates samples against the §6 input contract and returns a
// RawAudio, or an InvalidAudio error.
func New(samples []float32, sampleRate int) (RawAudio, error) {
	if sampleRate != RequiredSampleRate {
		return RawAudio{}, alignerr.New(alignerr.InvalidAudio,
			"sample rate %d: only %d Hz mono is accepted", sampleRate, RequiredSampleRate)
	}
	if len(samples) == 0 {
		return RawAudio{}, alignerr.New(alignerr.InvalidAudio, "audio is empty")
	}
	var peak float32
	for i, s := range samples {
		f := float64(s)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return RawAudio{}, alignerr.New(alignerr.InvalidAudio, "sample %d is NaN or Inf", i)
		}
		if a := float32(math.Abs(f)); a > peak {
			peak = a
		}
	}
	if peak > 1.0001 {
		return RawAudio{}, alignerr.New(alignerr.InvalidAudio, "peak amplitude %.4f exceeds 1.0", peak)
	}
	return RawAudio{Samples: samples, SampleRate: sampleRate}, nil
}
