package audioio

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/cwbudde/speechalign/audio"
)

func TestWriteAndLoadRoundTripsAt16kHz(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tone.wav")

	const sr = audio.RequiredSampleRate
	samples := make([]float32, sr) // 1 second
	for i := range samples {
		samples[i] = float32(0.4 * math.Sin(2*math.Pi*330*float64(i)/sr))
	}
	if err := WriteMono(path, samples, sr); err != nil {
		t.Fatalf("unexpected write error: %v", err)
	}

	a, err := LoadRawAudio(path)
	if err != nil {
		t.Fatalf("unexpected load error: %v", err)
	}
	if a.SampleRate != sr {
		t.Fatalf("expected sample rate %d, got %d", sr, a.SampleRate)
	}
	if len(a.Samples) < sr-10 || len(a.Samples) > sr+10 {
		t.Fatalf("expected roughly %d samples, got %d", sr, len(a.Samples))
	}
}

func TestResampleIfNeededIsNoopAtSameRate(t *testing.T) {
	in := []float64{0.1, 0.2, 0.3}
	out, err := ResampleIfNeeded(in, 16000, 16000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != len(in) {
		t.Fatalf("expected same length, got %d", len(out))
	}
}

func TestResampleIfNeededChangesLength(t *testing.T) {
	in := make([]float64, 48000)
	for i := range in {
		in[i] = math.Sin(2 * math.Pi * 440 * float64(i) / 48000)
	}
	out, err := ResampleIfNeeded(in, 48000, 16000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out == nil || len(out) == 0 {
		t.Fatalf("expected non-empty resampled output")
	}
	// Downsampling by 3x should produce roughly a third of the samples.
	ratio := float64(len(out)) / float64(len(in))
	if ratio < 0.2 || ratio > 0.5 {
		t.Fatalf("expected resampled length ratio near 1/3, got %v", ratio)
	}
}
