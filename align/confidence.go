package align

import (
	"github.com/cwbudde/algo-approx"

	"github.com/cwbudde/speechalign/distance"
	"github.com/cwbudde/speechalign/timeline"
)

// confidenceDecayRate controls how quickly confidence falls off as the
// average per-frame distance along the path grows, mirroring the decay
// constant piano.go applies to its amplitude envelope.
const confidenceDecayRate = 1.5

// Confidence scores an alignment path by its mean per-frame distance
// cost, mapped through a negative exponential so a perfect (zero-cost)
// path scores 1.0 and cost asymptotically drives the score toward 0
// (spec §3 AlignmentResult.confidence, optional).
func Confidence(path timeline.Path, source, ref [][]float32, dist distance.Func) float64 {
	if len(path) == 0 {
		return 0
	}
	var total float32
	for _, p := range path {
		if p.SourceFrame < 0 || p.SourceFrame >= len(source) || p.RefFrame < 0 || p.RefFrame >= len(ref) {
			continue
		}
		total += dist(source[p.SourceFrame], ref[p.RefFrame])
	}
	mean := total / float32(len(path))
	score := approx.FastExp(-confidenceDecayRate * mean)
	if score < 0 {
		score = 0
	}
	if score > 1 {
		score = 1
	}
	return float64(score)
}
