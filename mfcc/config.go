package mfcc

import (
	"github.com/cwbudde/speechalign/alignerr"
)

// Config configures the MFCC feature extractor (spec §4.1).
type Config struct {
	WindowDuration  float64 // seconds
	HopDuration     float64 // seconds
	FFTOrder        int
	FilterBankCount int
	CepstralCount   int
	LowFreqHz       float64
	HighFreqHz      float64
	Preemphasis     float64
	Liftering       float64
}

// DefaultConfig returns the spec's default values, equivalent to the
// "high" granularity preset.
func DefaultConfig() Config {
	return Config{
		WindowDuration:  0.025,
		HopDuration:     0.010,
		FFTOrder:        512,
		FilterBankCount: 40,
		CepstralCount:   13,
		LowFreqHz:       0,
		HighFreqHz:      8000,
		Preemphasis:     0.97,
		Liftering:       22,
	}
}

// Granularity is one of the preset MFCC bundles from spec §4.1, trading
// frequency/time resolution for cost.
type Granularity int

const (
	GranularityHigh Granularity = iota
	GranularityMedium
	GranularityLow
	GranularityXXLow
)

func (g Granularity) String() string {
	switch g {
	case GranularityHigh:
		return "high"
	case GranularityMedium:
		return "medium"
	case GranularityLow:
		return "low"
	case GranularityXXLow:
		return "xx-low"
	default:
		return "unknown"
	}
}

// ParseGranularity parses the string forms accepted by configuration
// (spec §6: "high" | "medium" | "low" | "xx-low").
func ParseGranularity(s string) (Granularity, error) {
	switch s {
	case "high":
		return GranularityHigh, nil
	case "medium":
		return GranularityMedium, nil
	case "low":
		return GranularityLow, nil
	case "xx-low":
		return GranularityXXLow, nil
	default:
		return 0, alignerr.New(alignerr.InvalidConfig, "unknown granularity %q", s)
	}
}

// ConfigForGranularity returns the MFCC window/hop/FFT bundle for a preset,
// with the remaining fields taken from DefaultConfig.
func ConfigForGranularity(g Granularity) Config {
	cfg := DefaultConfig()
	switch g {
	case GranularityHigh:
		cfg.WindowDuration, cfg.HopDuration, cfg.FFTOrder = 0.025, 0.010, 512
	case GranularityMedium:
		cfg.WindowDuration, cfg.HopDuration, cfg.FFTOrder = 0.050, 0.025, 1024
	case GranularityLow:
		cfg.WindowDuration, cfg.HopDuration, cfg.FFTOrder = 0.100, 0.050, 2048
	case GranularityXXLow:
		cfg.WindowDuration, cfg.HopDuration, cfg.FFTOrder = 0.200, 0.100, 4096
	}
	return cfg
}

// Validate checks the §4.1 failure conditions: fftOrder must be a power of
// two and must not be smaller than the window length at the given sample
// rate.
func (c Config) Validate(sampleRate int) error {
	if c.FFTOrder <= 0 || c.FFTOrder&(c.FFTOrder-1) != 0 {
		return alignerr.New(alignerr.InvalidConfig, "fftOrder %d is not a power of two", c.FFTOrder)
	}
	windowLen := int(roundHalfAwayFromZero(c.WindowDuration * float64(sampleRate)))
	if c.FFTOrder < windowLen {
		return alignerr.New(alignerr.InvalidConfig,
			"fftOrder %d is smaller than window length %d samples", c.FFTOrder, windowLen)
	}
	if c.FilterBankCount <= 0 {
		return alignerr.New(alignerr.InvalidConfig, "filterBankCount must be positive, got %d", c.FilterBankCount)
	}
	if c.CepstralCount <= 0 || c.CepstralCount > c.FilterBankCount {
		return alignerr.New(alignerr.InvalidConfig,
			"cepstralCount %d must be in (0, filterBankCount=%d]", c.CepstralCount, c.FilterBankCount)
	}
	if c.HighFreqHz <= c.LowFreqHz {
		return alignerr.New(alignerr.InvalidConfig, "highFreqHz %.1f must exceed lowFreqHz %.1f", c.HighFreqHz, c.LowFreqHz)
	}
	if c.WindowDuration <= 0 || c.HopDuration <= 0 {
		return alignerr.New(alignerr.InvalidConfig, "windowDuration and hopDuration must be positive")
	}
	return nil
}

func roundHalfAwayFromZero(x float64) float64 {
	if x >= 0 {
		return float64(int64(x + 0.5))
	}
	return float64(int64(x - 0.5))
}
