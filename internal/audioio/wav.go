// Package audioio provides WAV read/write and resampling helpers for
// tests and the align-bench demo host. It is deliberately outside the
// core: the core only ever accepts pre-decoded, pre-resampled mono
// 16 kHz float32 PCM (spec §6), and nothing in alignerr, mfcc, distance,
// timeline, dtwengine, match, project, or align imports this package.
package audioio

import (
	"fmt"
	"os"
	"path/filepath"

	dspresample "github.com/cwbudde/algo-dsp/dsp/resample"
	"github.com/cwbudde/wav"
	goaudio "github.com/go-audio/audio"

	"github.com/cwbudde/speechalign/audio"
)

// ReadMono decodes a WAV file to a mono float64 signal, down-mixing any
// extra channels by averaging (`internal/fitcommon/wav.go`'s ReadWAVMono).
func ReadMono(path string) ([]float64, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, err
	}
	defer f.Close()
	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return nil, 0, fmt.Errorf("audioio: invalid wav file: %s", path)
	}
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, 0, err
	}
	if buf == nil || buf.Format == nil || buf.Format.NumChannels < 1 {
		return nil, 0, fmt.Errorf("audioio: invalid wav buffer: %s", path)
	}
	ch := buf.Format.NumChannels
	frames := len(buf.Data) / ch
	out := make([]float64, frames)
	for i := 0; i < frames; i++ {
		var sum float64
		for c := 0; c < ch; c++ {
			sum += float64(buf.Data[i*ch+c])
		}
		out[i] = sum / float64(ch)
	}
	return out, buf.Format.SampleRate, nil
}

// ResampleIfNeeded converts a mono signal to toRate using the best-quality
// resampler, a no-op when the rates already match
// (`internal/fitcommon/wav.go`'s ResampleIfNeeded).
func ResampleIfNeeded(in []float64, fromRate, toRate int) ([]float64, error) {
	if fromRate == toRate {
		return in, nil
	}
	r, err := dspresample.NewForRates(
		float64(fromRate),
		float64(toRate),
		dspresample.WithQuality(dspresample.QualityBest),
	)
	if err != nil {
		return nil, err
	}
	return r.Process(in), nil
}

// LoadRawAudio reads a WAV file, down-mixes to mono, resamples to the
// core's required sample rate, and validates it into an audio.RawAudio —
// the one place outside the core where audio.RequiredSampleRate and a
// file-system path meet.
func LoadRawAudio(path string) (audio.RawAudio, error) {
	samples64, sr, err := ReadMono(path)
	if err != nil {
		return audio.RawAudio{}, err
	}
	samples64, err = ResampleIfNeeded(samples64, sr, audio.RequiredSampleRate)
	if err != nil {
		return audio.RawAudio{}, err
	}
	samples32 := make([]float32, len(samples64))
	for i, s := range samples64 {
		samples32[i] = float32(s)
	}
	return audio.New(samples32, audio.RequiredSampleRate)
}

// WriteMono writes a mono float32 signal as a 16-bit PCM WAV file
// (`internal/fitcommon/wav.go`'s WriteMonoWAV).
func WriteMono(path string, data []float32, sampleRate int) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := wav.NewEncoder(f, sampleRate, 16, 1, 1)
	defer enc.Close()

	buf := &goaudio.Float32Buffer{
		Format: &goaudio.Format{
			SampleRate:  sampleRate,
			NumChannels: 1,
		},
		Data:           data,
		SourceBitDepth: 16,
	}
	return enc.Write(buf)
}
