// Package project implements the core's reference timeline projector
// (spec §4.4): converts a WarpingPath plus a ReferenceTimeline into an
// output word (and optionally phone) timeline in source time.
package project

import (
	"math"

	"github.com/cwbudde/speechalign/alignerr"
	"github.com/cwbudde/speechalign/timeline"
)

// PhoneMethod selects how phone boundaries are derived from the word
// projection (spec §4.4 "Phone alignment method").
type PhoneMethod int

const (
	// PhoneMethodDTW projects each phone entry directly via the same
	// projection rule as words.
	PhoneMethodDTW PhoneMethod = iota
	// PhoneMethodInterpolation projects only word endpoints and
	// linearly interpolates phone boundaries inside the word in
	// proportion to their original reference durations.
	PhoneMethodInterpolation
)

// Config bundles the frame geometry needed to convert between seconds and
// frame indices on each side of the path.
type Config struct {
	SourceHop      float64
	ReferenceHop   float64
	SourceDuration float64
	Method         PhoneMethod
}

// frameSpan converts a reference-time interval to source-time span via
// the path (spec §4.4 steps 1-4).
func frameSpan(path timeline.Path, startSec, endSec float64, cfg Config) (float64, float64, error) {
	if cfg.ReferenceHop <= 0 {
		return 0, 0, alignerr.New(alignerr.InvalidConfig, "reference hop must be positive")
	}
	js := int(math.Floor(startSec / cfg.ReferenceHop))
	je := int(math.Ceil(endSec / cfg.ReferenceHop))

	first, ok := path.FirstAtOrAfterRef(js)
	if !ok {
		return 0, 0, alignerr.New(alignerr.ReferenceMismatch, "no path point with refFrame >= %d", js)
	}
	last, ok := path.LastAtOrBeforeRef(je)
	if !ok {
		last = first
	}
	iS := first.SourceFrame
	iE := last.SourceFrame
	if iE < iS {
		iE = iS
	}

	start := float64(iS) * cfg.SourceHop
	end := float64(iE+1) * cfg.SourceHop
	if start < 0 {
		start = 0
	}
	if end > cfg.SourceDuration {
		end = cfg.SourceDuration
	}
	return start, end, nil
}

// ProjectWords projects every reference word entry into source time
// (spec §4.4). The returned timeline satisfies the non-overlapping,
// monotone invariant: any zero-length entry produced by projection is
// expanded by at most one hop where room allows (spec §4.4 "Invariant to
// enforce").
func ProjectWords(path timeline.Path, ref timeline.Reference, cfg Config) ([]timeline.WordEntry, error) {
	out := make([]timeline.WordEntry, 0, len(ref.Words))
	prevEnd := 0.0
	for idx, w := range ref.Words {
		start, end, err := frameSpan(path, w.StartTime, w.EndTime, cfg)
		if err != nil {
			return nil, err
		}
		start, end = enforceMonotone(start, end, prevEnd, cfg.SourceHop, cfg.SourceDuration)
		prevEnd = end

		entry := timeline.WordEntry{Text: w.Text, StartTime: start, EndTime: end}
		phones, err := projectPhones(path, w, start, end, cfg)
		if err != nil {
			return nil, alignerr.New(alignerr.ReferenceMismatch, "word %d (%q): %v", idx, w.Text, err)
		}
		entry.Phones = phones
		out = append(out, entry)
	}
	return out, nil
}

// enforceMonotone clamps start/end so consecutive entries never overlap
// or go backward, and expands a collapsed (zero-length) entry by one hop
// where the following budget allows it.
func enforceMonotone(start, end, prevEnd, hop, sourceDuration float64) (float64, float64) {
	if start < prevEnd {
		start = prevEnd
	}
	if end < start {
		end = start
	}
	if end == start && end+hop <= sourceDuration {
		end += hop
	}
	return start, end
}

// projectPhones derives phone boundaries for one word, dispatching on
// cfg.Method (spec §4.4 "Phone alignment method").
func projectPhones(path timeline.Path, w timeline.WordEntry, wordStart, wordEnd float64, cfg Config) ([]timeline.PhoneEntry, error) {
	if len(w.Phones) == 0 {
		return nil, nil
	}
	switch cfg.Method {
	case PhoneMethodInterpolation:
		return interpolatePhones(w, wordStart, wordEnd), nil
	default:
		out := make([]timeline.PhoneEntry, 0, len(w.Phones))
		prevEnd := wordStart
		for _, ph := range w.Phones {
			start, end, err := frameSpan(path, ph.StartTime, ph.EndTime, cfg)
			if err != nil {
				return nil, err
			}
			start, end = enforceMonotone(start, end, prevEnd, cfg.SourceHop, wordEnd)
			prevEnd = end
			out = append(out, timeline.PhoneEntry{Symbol: ph.Symbol, StartTime: start, EndTime: end})
		}
		return out, nil
	}
}

// interpolatePhones projects only the word's endpoints and distributes
// phone boundaries inside [wordStart, wordEnd] in proportion to the
// phones' original reference durations (spec §4.4 PhoneMethodInterpolation,
// §8 scenario 6).
func interpolatePhones(w timeline.WordEntry, wordStart, wordEnd float64) []timeline.PhoneEntry {
	totalRef := 0.0
	for _, ph := range w.Phones {
		totalRef += ph.Duration()
	}
	out := make([]timeline.PhoneEntry, len(w.Phones))
	if totalRef <= 0 {
		// Degenerate reference durations: split the word evenly.
		n := float64(len(w.Phones))
		span := wordEnd - wordStart
		cursor := wordStart
		for i, ph := range w.Phones {
			next := wordStart + span*float64(i+1)/n
			out[i] = timeline.PhoneEntry{Symbol: ph.Symbol, StartTime: cursor, EndTime: next}
			cursor = next
		}
		return out
	}
	span := wordEnd - wordStart
	cursor := wordStart
	for i, ph := range w.Phones {
		share := ph.Duration() / totalRef * span
		end := cursor + share
		if i == len(w.Phones)-1 {
			end = wordEnd
		}
		out[i] = timeline.PhoneEntry{Symbol: ph.Symbol, StartTime: cursor, EndTime: end}
		cursor = end
	}
	return out
}
