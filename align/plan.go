package align

import (
	"math"
	"strconv"
	"strings"

	"github.com/cwbudde/speechalign/alignerr"
	"github.com/cwbudde/speechalign/mfcc"
)

// Pass is one granularity/band-width step of a multi-pass alignment plan.
type Pass struct {
	Granularity mfcc.Granularity
	// BandWidth is the Sakoe-Chiba band width, in reference frames, for
	// this pass.
	BandWidth int
}

// DefaultCoarseWindow and DefaultFineWindow are the default pass window
// durations in seconds (spec §4.5: "60 s for the single-pass or coarse
// pass; 15 s for the refining pass").
const (
	DefaultCoarseWindow = 60.0
	DefaultFineWindow   = 15.0
)

// DefaultGranularities derives the granularity sequence for an audio
// duration T (spec §4.5 "Pass planning"):
//
//	T < 60s          -> one pass at high
//	60s <= T < 300s  -> one pass at medium
//	300s <= T < 1800s -> one pass at low
//	T >= 1800s       -> two passes: xx-low then low
func DefaultGranularities(durationSeconds float64) []mfcc.Granularity {
	switch {
	case durationSeconds < 60:
		return []mfcc.Granularity{mfcc.GranularityHigh}
	case durationSeconds < 300:
		return []mfcc.Granularity{mfcc.GranularityMedium}
	case durationSeconds < 1800:
		return []mfcc.Granularity{mfcc.GranularityLow}
	default:
		return []mfcc.Granularity{mfcc.GranularityXXLow, mfcc.GranularityLow}
	}
}

// PlanPasses turns a granularity sequence (either DefaultGranularities'
// output, or an explicit override from Config.Granularity) into concrete
// Pass values, resolving window durations to band widths (spec §4.5).
func PlanPasses(durationSeconds float64, granularities []mfcc.Granularity, windowDurations []string) ([]Pass, error) {
	if len(granularities) == 0 {
		granularities = DefaultGranularities(durationSeconds)
	}
	if windowDurations != nil && len(windowDurations) != len(granularities) {
		return nil, alignerr.New(alignerr.InvalidConfig,
			"windowDuration list has %d entries, expected %d for this pass count", len(windowDurations), len(granularities))
	}

	passes := make([]Pass, len(granularities))
	for i, g := range granularities {
		defaultWindow := DefaultCoarseWindow
		if len(granularities) == 2 && i == 1 {
			defaultWindow = DefaultFineWindow
		}
		windowSeconds := defaultWindow
		if windowDurations != nil {
			resolved, err := ResolveWindowDuration(windowDurations[i], durationSeconds)
			if err != nil {
				return nil, err
			}
			windowSeconds = resolved
		}
		cfg := mfcc.ConfigForGranularity(g)
		frames := int(math.Ceil(windowSeconds / cfg.HopDuration))
		if frames < 1 {
			frames = 1
		}
		passes[i] = Pass{Granularity: g, BandWidth: frames}
	}
	return passes, nil
}

// ResolveWindowDuration parses a window duration spec, either a plain
// number of seconds or a percentage string like "20%", resolved as
// ceil(percent * T) and clamped to T (spec §4.5).
func ResolveWindowDuration(spec string, totalDuration float64) (float64, error) {
	spec = strings.TrimSpace(spec)
	if strings.HasSuffix(spec, "%") {
		pct, err := strconv.ParseFloat(strings.TrimSuffix(spec, "%"), 64)
		if err != nil || pct <= 0 || pct > 100 {
			return 0, alignerr.New(alignerr.InvalidConfig, "invalid percentage window duration %q", spec)
		}
		seconds := math.Ceil(pct / 100.0 * totalDuration)
		if seconds > totalDuration {
			seconds = totalDuration
		}
		return seconds, nil
	}
	seconds, err := strconv.ParseFloat(spec, 64)
	if err != nil || seconds <= 0 {
		return 0, alignerr.New(alignerr.InvalidConfig, "invalid window duration %q", spec)
	}
	if seconds > totalDuration {
		seconds = totalDuration
	}
	return seconds, nil
}
