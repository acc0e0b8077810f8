package dtwengine

import (
	"github.com/cwbudde/speechalign/alignerr"
	"github.com/cwbudde/speechalign/distance"
	"github.com/cwbudde/speechalign/timeline"
)

// Interval is a half-open [Start, End) frame range on one side (source or
// reference) of an anchored sub-alignment.
type Interval struct {
	Start int
	End   int
}

// Len returns End - Start.
func (iv Interval) Len() int { return iv.End - iv.Start }

// Anchor pairs one source-time interval (supplied by an external
// recognizer) with the matching reference-timeline span (spec §4.3
// "Anchored sub-alignment").
type Anchor struct {
	Source Interval
	Ref    Interval
}

// AlignAnchored runs one banded DTW per anchor, slicing source/ref MFCCs
// to each anchor's interval, then concatenates the resulting sub-paths
// with the appropriate frame offsets re-added (spec §4.3, §4.5 step 3-4).
// Anchors must be supplied in non-overlapping, increasing source order.
func AlignAnchored(source, ref [][]float32, anchors []Anchor, width int, dist distance.Func, cancel CancelFunc) (timeline.Path, error) {
	if len(anchors) == 0 {
		return nil, alignerr.New(alignerr.ReferenceMismatch, "no anchors supplied for anchored alignment")
	}

	full := make(timeline.Path, 0, len(source)+len(ref))
	for idx, a := range anchors {
		if idx > 0 && (a.Source.Start < anchors[idx-1].Source.End || a.Ref.Start < anchors[idx-1].Ref.End) {
			return nil, alignerr.New(alignerr.ReferenceMismatch, "anchor %d overlaps or precedes anchor %d", idx, idx-1)
		}
		if a.Source.Len() <= 0 || a.Ref.Len() <= 0 {
			return nil, alignerr.New(alignerr.ReferenceMismatch, "anchor %d has an empty source or reference span", idx)
		}
		if a.Source.End > len(source) || a.Ref.End > len(ref) {
			return nil, alignerr.New(alignerr.ReferenceMismatch, "anchor %d exceeds sequence bounds", idx)
		}

		srcSlice := source[a.Source.Start:a.Source.End]
		refSlice := ref[a.Ref.Start:a.Ref.End]

		band, err := NewUniformBand(len(srcSlice), len(refSlice), width)
		if err != nil {
			return nil, err
		}
		sub, err := Align(srcSlice, refSlice, band, dist, cancel, DefaultCancelEveryRows)
		if err != nil {
			return nil, err
		}
		full = append(full, sub.Offset(a.Source.Start, a.Ref.Start)...)
	}
	return full, nil
}
