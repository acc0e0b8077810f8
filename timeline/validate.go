package timeline

import (
	"github.com/cwbudde/speechalign/alignerr"
)

// Kind distinguishes the only two entry types accepted from tagged
// timeline input (spec §9 Open Questions). Other tags such as "sentence",
// sometimes seen in heterogeneous upstream timeline formats, are rejected
// rather than silently passed through.
type Kind string

const (
	KindWord  Kind = "word"
	KindPhone Kind = "phone"
)

// ParseKind validates a raw type tag against the authoritative set.
func ParseKind(raw string) (Kind, error) {
	switch Kind(raw) {
	case KindWord:
		return KindWord, nil
	case KindPhone:
		return KindPhone, nil
	default:
		return "", alignerr.New(alignerr.ReferenceMismatch, "unsupported timeline entry kind %q (only word/phone accepted)", raw)
	}
}

// ValidatePath checks the WarpingPath invariants of spec §3/§8: weakly
// monotone in both coordinates, and spanning (0,0) to (nSource-1,
// nRef-1).
func ValidatePath(p Path, nSource, nRef int) error {
	if len(p) == 0 {
		return alignerr.New(alignerr.EmptyInput, "warping path is empty")
	}
	if p[0].SourceFrame != 0 || p[0].RefFrame != 0 {
		return alignerr.New(alignerr.ReferenceMismatch, "warping path does not start at (0,0): got (%d,%d)", p[0].SourceFrame, p[0].RefFrame)
	}
	last := p[len(p)-1]
	if last.SourceFrame != nSource-1 || last.RefFrame != nRef-1 {
		return alignerr.New(alignerr.ReferenceMismatch,
			"warping path does not end at (%d,%d): got (%d,%d)", nSource-1, nRef-1, last.SourceFrame, last.RefFrame)
	}
	for i := 1; i < len(p); i++ {
		if p[i].SourceFrame < p[i-1].SourceFrame || p[i].RefFrame < p[i-1].RefFrame {
			return alignerr.New(alignerr.ReferenceMismatch, "warping path is not monotone at index %d", i)
		}
	}
	return nil
}

// ValidateWordTimeline checks that entries are pairwise non-overlapping
// and sorted by StartTime, and that each word's phones lie within the
// word's own interval and are themselves sorted and non-overlapping
// (spec §3 invariants).
func ValidateWordTimeline(words []WordEntry) error {
	prevEnd := -1.0
	for i, w := range words {
		if w.EndTime < w.StartTime {
			return alignerr.New(alignerr.ReferenceMismatch, "word %d (%q) has end before start", i, w.Text)
		}
		if float64(i) > 0 && w.StartTime < prevEnd {
			return alignerr.New(alignerr.ReferenceMismatch, "word %d (%q) overlaps previous entry", i, w.Text)
		}
		prevEnd = w.EndTime
		if err := validatePhones(w); err != nil {
			return err
		}
	}
	return nil
}

func validatePhones(w WordEntry) error {
	prevEnd := -1.0
	for i, ph := range w.Phones {
		if ph.EndTime < ph.StartTime {
			return alignerr.New(alignerr.ReferenceMismatch, "phone %d (%q) in word %q has end before start", i, ph.Symbol, w.Text)
		}
		if i > 0 && ph.StartTime < prevEnd {
			return alignerr.New(alignerr.ReferenceMismatch, "phone %d (%q) in word %q overlaps previous phone", i, ph.Symbol, w.Text)
		}
		const eps = 1e-6
		if ph.StartTime < w.StartTime-eps || ph.EndTime > w.EndTime+eps {
			return alignerr.New(alignerr.ReferenceMismatch, "phone %q lies outside parent word %q interval", ph.Symbol, w.Text)
		}
		prevEnd = ph.EndTime
	}
	return nil
}
