package timeline

// Pair is one (sourceFrame, refFrame) cell of a WarpingPath.
type Pair struct {
	SourceFrame int
	RefFrame    int
}

// Path is a monotone non-decreasing sequence of frame-index pairs from
// (0, 0) to (N_s-1, N_r-1) (spec §3 WarpingPath).
type Path []Pair

// SourceEnd returns the source-frame coordinate of the final pair, or -1
// for an empty path.
func (p Path) SourceEnd() int {
	if len(p) == 0 {
		return -1
	}
	return p[len(p)-1].SourceFrame
}

// RefEnd returns the reference-frame coordinate of the final pair, or -1
// for an empty path.
func (p Path) RefEnd() int {
	if len(p) == 0 {
		return -1
	}
	return p[len(p)-1].RefFrame
}

// FirstAtOrAfterRef returns the first pair whose RefFrame >= j, and true,
// or the zero Pair and false if none exists (spec §4.4 step 2).
func (p Path) FirstAtOrAfterRef(j int) (Pair, bool) {
	for _, pair := range p {
		if pair.RefFrame >= j {
			return pair, true
		}
	}
	return Pair{}, false
}

// LastAtOrBeforeRef returns the last pair whose RefFrame <= j, and true,
// or the zero Pair and false if none exists (spec §4.4 step 3).
func (p Path) LastAtOrBeforeRef(j int) (Pair, bool) {
	found := false
	var best Pair
	for _, pair := range p {
		if pair.RefFrame <= j {
			best = pair
			found = true
		} else {
			break
		}
	}
	return best, found
}

// Offset returns a copy of p with both coordinates shifted by
// (sourceOffset, refOffset), used to re-add time offsets after anchored
// sub-alignment (spec §4.3 "Anchored sub-alignment").
func (p Path) Offset(sourceOffset, refOffset int) Path {
	out := make(Path, len(p))
	for i, pair := range p {
		out[i] = Pair{SourceFrame: pair.SourceFrame + sourceOffset, RefFrame: pair.RefFrame + refOffset}
	}
	return out
}
