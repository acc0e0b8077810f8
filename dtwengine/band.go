// Package dtwengine implements the core's DTW engine (spec §4.3): banded
// Sakoe-Chiba DTW, multi-pass refinement, path recovery and anchored
// sub-alignment.
package dtwengine

import (
	"github.com/cwbudde/speechalign/alignerr"
	"github.com/cwbudde/speechalign/timeline"
)

// Band is a per-source-frame closed interval over reference frame
// indices (spec §3 CostBand).
type Band struct {
	Lo []int
	Hi []int
}

// NSource returns the number of source frames the band covers.
func (b Band) NSource() int { return len(b.Lo) }

// Width returns the maximum row width (hi_i - lo_i + 1) across the band.
func (b Band) Width() int {
	w := 0
	for i := range b.Lo {
		if rw := b.Hi[i] - b.Lo[i] + 1; rw > w {
			w = rw
		}
	}
	return w
}

// Contains reports whether (i, j) lies within the band.
func (b Band) Contains(i, j int) bool {
	if i < 0 || i >= len(b.Lo) {
		return false
	}
	return j >= b.Lo[i] && j <= b.Hi[i]
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// NewUniformBand constructs the single-pass, diagonal-centred Sakoe-Chiba
// band of spec §4.3:
//
//	lo_i = max(0, round(i*Nr/Ns) - W/2)
//	hi_i = min(Nr-1, lo_i + W - 1)
//
// A window narrower than |Ns - Nr| is rejected upfront as BandInfeasible,
// with |Ns - Nr| as the suggested minimum width.
// The constructed band is additionally checked for gaps between
// consecutive rows (possible when Nr significantly exceeds Ns), which
// would make the corridor impassable even though no single row is empty.
func NewUniformBand(nSource, nRef, width int) (Band, error) {
	if nSource <= 0 || nRef <= 0 {
		return Band{}, alignerr.New(alignerr.EmptyInput, "cannot band an empty sequence (nSource=%d, nRef=%d)", nSource, nRef)
	}
	if width < 1 {
		return Band{}, alignerr.New(alignerr.InvalidConfig, "band width must be >= 1, got %d", width)
	}
	mismatch := absInt(nSource - nRef)
	if width < mismatch {
		return Band{}, alignerr.NewBandInfeasible(mismatch,
			"window width %d cannot bridge a %d-frame length mismatch (Ns=%d, Nr=%d)", width, mismatch, nSource, nRef)
	}

	lo := make([]int, nSource)
	hi := make([]int, nSource)
	for i := 0; i < nSource; i++ {
		center := roundHalfAwayFromZero(float64(i) * float64(nRef) / float64(nSource))
		l := center - width/2
		if l < 0 {
			l = 0
		}
		h := l + width - 1
		if h > nRef-1 {
			h = nRef - 1
		}
		lo[i] = l
		hi[i] = h
	}
	b := Band{Lo: lo, Hi: hi}
	if err := checkContinuity(b, width); err != nil {
		return Band{}, err
	}
	return b, nil
}

// checkContinuity verifies that consecutive rows' intervals do not leave
// a gap a monotone path could not cross (lo_i must not exceed hi_{i-1}+1).
func checkContinuity(b Band, width int) error {
	for i := 1; i < len(b.Lo); i++ {
		if b.Lo[i] > b.Hi[i-1]+1 {
			gap := b.Lo[i] - b.Hi[i-1] - 1
			return alignerr.NewBandInfeasible(width+gap,
				"band has a gap of %d reference frames between source rows %d and %d", gap, i-1, i)
		}
	}
	return nil
}

func roundHalfAwayFromZero(x float64) int {
	if x >= 0 {
		return int(x + 0.5)
	}
	return int(x - 0.5)
}

// ProjectPath scales a coarse-pass path's coordinates by the ratio of hop
// durations between the coarse and fine grids (spec §4.3 multi-pass
// refinement: "project its path into the finer grid by scaling both
// coordinates by the ratio of hop durations").
func ProjectPath(coarse timeline.Path, sourceRatio, refRatio float64) timeline.Path {
	out := make(timeline.Path, len(coarse))
	for i, p := range coarse {
		out[i] = timeline.Pair{
			SourceFrame: int(float64(p.SourceFrame) * sourceRatio),
			RefFrame:    int(float64(p.RefFrame) * refRatio),
		}
	}
	return out
}

// NewBandAroundPath centres a narrower band of the given width around a
// projected path on the fine grid (spec §4.3: "centre a narrower band of
// W_fine frames around the projected path"). The projected path need not
// have one entry per fine source frame; centers are interpolated between
// the nearest projected points and then enforced non-decreasing.
func NewBandAroundPath(projected timeline.Path, nSourceFine, nRefFine, width int) (Band, error) {
	if nSourceFine <= 0 || nRefFine <= 0 {
		return Band{}, alignerr.New(alignerr.EmptyInput, "cannot band an empty sequence")
	}
	if width < 1 {
		return Band{}, alignerr.New(alignerr.InvalidConfig, "band width must be >= 1, got %d", width)
	}
	if len(projected) == 0 {
		return Band{}, alignerr.New(alignerr.EmptyInput, "projected path is empty")
	}

	centers := centerLine(projected, nSourceFine, nRefFine)

	lo := make([]int, nSourceFine)
	hi := make([]int, nSourceFine)
	prevLo := 0
	for i := 0; i < nSourceFine; i++ {
		l := centers[i] - width/2
		if l < prevLo {
			l = prevLo
		}
		if l < 0 {
			l = 0
		}
		h := l + width - 1
		if h > nRefFine-1 {
			h = nRefFine - 1
			l = h - width + 1
			if l < 0 {
				l = 0
			}
		}
		lo[i] = l
		hi[i] = h
		prevLo = l
	}
	lo[0] = 0
	if hi[0] < 0 {
		hi[0] = 0
	}
	hi[nSourceFine-1] = nRefFine - 1
	if lo[nSourceFine-1] > hi[nSourceFine-1] {
		lo[nSourceFine-1] = hi[nSourceFine-1]
	}

	b := Band{Lo: lo, Hi: hi}
	if err := checkContinuity(b, width); err != nil {
		return Band{}, err
	}
	return b, nil
}

// centerLine interpolates the projected path onto every source frame
// index 0..nSourceFine-1, clamping to the valid reference range.
func centerLine(projected timeline.Path, nSourceFine, nRefFine int) []int {
	centers := make([]int, nSourceFine)
	pi := 0
	for i := 0; i < nSourceFine; i++ {
		for pi < len(projected)-1 && projected[pi+1].SourceFrame <= i {
			pi++
		}
		c := projected[pi].RefFrame
		if pi+1 < len(projected) && projected[pi+1].SourceFrame != projected[pi].SourceFrame {
			// linear interpolation between bracketing points
			p0, p1 := projected[pi], projected[pi+1]
			if i >= p0.SourceFrame && i <= p1.SourceFrame {
				span := p1.SourceFrame - p0.SourceFrame
				frac := float64(i-p0.SourceFrame) / float64(span)
				c = p0.RefFrame + int(frac*float64(p1.RefFrame-p0.RefFrame)+0.5)
			}
		}
		if c < 0 {
			c = 0
		}
		if c > nRefFine-1 {
			c = nRefFine - 1
		}
		centers[i] = c
	}
	return centers
}

// Area returns the total number of cells covered by the band, used by
// callers to assert that successive passes reduce or maintain coverage
// (spec §4.3: "Each pass must reduce or maintain band area").
func Area(b Band) int {
	total := 0
	for i := range b.Lo {
		total += b.Hi[i] - b.Lo[i] + 1
	}
	return total
}
