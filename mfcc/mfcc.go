// Package mfcc implements the core's feature extractor (spec §4.1): frame,
// window, spectrum, mel filterbank, log compression, DCT-II and optional
// liftering over a mono 16 kHz signal.
package mfcc

import (
	"errors"
	"math/cmplx"
	"sync"

	algofft "github.com/cwbudde/algo-fft"

	"github.com/cwbudde/speechalign/alignerr"
	"github.com/cwbudde/speechalign/audio"
)

// fftPlan wraps the fast/safe real-FFT fallback pattern used throughout
// the teacher's analysis package (analysis/distance.go's spectralFFTPlan):
// prefer the fast plan, and only fall back to the safe plan when the fast
// path reports algofft.ErrNotImplemented for this transform length.
type fftPlan struct {
	mu   sync.Mutex
	fast *algofft.FastPlanReal64
	safe *algofft.PlanRealT[float64, complex128]
}

var planCache sync.Map // map[int]*fftPlan

func getFFTPlan(n int) (*fftPlan, error) {
	if v, ok := planCache.Load(n); ok {
		return v.(*fftPlan), nil
	}
	p := &fftPlan{}
	fast, err := algofft.NewFastPlanReal64(n)
	if err == nil {
		p.fast = fast
	} else if !errors.Is(err, algofft.ErrNotImplemented) {
		return nil, err
	}
	safe, err := algofft.NewPlanReal64(n)
	if err != nil {
		if p.fast == nil {
			return nil, err
		}
	} else {
		p.safe = safe
	}
	actual, _ := planCache.LoadOrStore(n, p)
	return actual.(*fftPlan), nil
}

func (p *fftPlan) forward(dst []complex128, src []float64) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.fast != nil {
		p.fast.Forward(dst, src)
		return nil
	}
	if p.safe != nil {
		return p.safe.Forward(dst, src)
	}
	return errors.New("mfcc: no usable FFT plan")
}

// magnitudeSpectrum returns |FFT(frame)| for bins 0..fftOrder/2 (spec
// §4.1 step 4).
func magnitudeSpectrum(frame []float32, fftOrder int) ([]float32, error) {
	plan, err := getFFTPlan(fftOrder)
	if err != nil {
		return nil, err
	}
	src := make([]float64, fftOrder)
	for i, v := range frame {
		src[i] = float64(v)
	}
	dst := make([]complex128, fftOrder/2+1)
	if err := plan.forward(dst, src); err != nil {
		return nil, err
	}
	mags := make([]float32, len(dst))
	for i, c := range dst {
		mags[i] = float32(cmplx.Abs(c))
	}
	return mags, nil
}

// Extract runs the full pipeline of spec §4.1 over a mono 16 kHz signal
// and returns the resulting FrameSequence, or InvalidConfig/InvalidAudio.
func Extract(a audio.RawAudio, cfg Config) (*FrameSequence, error) {
	if a.SampleRate != audio.RequiredSampleRate {
		return nil, alignerr.New(alignerr.InvalidAudio, "sample rate %d != %d", a.SampleRate, audio.RequiredSampleRate)
	}
	if err := cfg.Validate(a.SampleRate); err != nil {
		return nil, err
	}
	if len(a.Samples) == 0 {
		return nil, alignerr.New(alignerr.InvalidAudio, "audio is empty")
	}

	emphasized := preemphasis(a.Samples, float32(cfg.Preemphasis))

	hop := int(roundHalfAwayFromZero(cfg.HopDuration * float64(a.SampleRate)))
	windowLen := int(roundHalfAwayFromZero(cfg.WindowDuration * float64(a.SampleRate)))
	if hop <= 0 || windowLen <= 0 {
		return nil, alignerr.New(alignerr.InvalidConfig, "derived hop/window length must be positive")
	}

	frames := frameSamples(emphasized, windowLen, hop)
	window := hannWindow(windowLen)
	nBins := cfg.FFTOrder/2 + 1
	filters := melFilterbank(cfg.FilterBankCount, nBins, a.SampleRate, cfg.LowFreqHz, cfg.HighFreqHz)

	seq := &FrameSequence{
		HopDuration:    cfg.HopDuration,
		WindowDuration: cfg.WindowDuration,
		Frames:         make([][]float32, 0, len(frames)),
	}
	for _, raw := range frames {
		padded := applyWindowPadded(raw, window, cfg.FFTOrder)
		mags, err := magnitudeSpectrum(padded, cfg.FFTOrder)
		if err != nil {
			return nil, err
		}
		logEnergies := applyFilterbank(mags, filters)
		coeffs := dctII(logEnergies, cfg.CepstralCount)
		lifter(coeffs, cfg.Liftering)
		seq.Frames = append(seq.Frames, coeffs)
	}
	if len(seq.Frames) == 0 {
		return nil, alignerr.New(alignerr.EmptyInput, "no frames produced")
	}
	return seq, nil
}
