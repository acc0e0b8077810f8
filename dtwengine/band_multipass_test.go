package dtwengine

import (
	"testing"

	"github.com/cwbudde/speechalign/distance"
)

// Toy 4 (spec §8): two-pass refinement — after the coarse pass, the fine
// pass's band must be centred on the coarse path, and for at least 90% of
// frames the fine band width must equal the configured fine width.
func TestMultiPassRefinementNarrowsAroundCoarsePath(t *testing.T) {
	nSourceCoarse, nRefCoarse := 60, 58
	source := make([][]float32, nSourceCoarse)
	ref := make([][]float32, nRefCoarse)
	for i := range source {
		source[i] = vec(float32(i) * 0.31)
	}
	for j := range ref {
		ref[j] = vec(float32(j) * 0.32)
	}
	coarseBand, err := NewUniformBand(nSourceCoarse, nRefCoarse, 10)
	if err != nil {
		t.Fatalf("unexpected coarse band error: %v", err)
	}
	coarsePath, err := Align(source, ref, coarseBand, distance.EuclideanDistance, nil, 0)
	if err != nil {
		t.Fatalf("unexpected coarse align error: %v", err)
	}

	// Project onto a 4x finer grid (hop ratio 4:1) and narrow to width 5.
	const ratio = 4.0
	nSourceFine, nRefFine := nSourceCoarse*4, nRefCoarse*4
	projected := ProjectPath(coarsePath, ratio, ratio)
	const fineWidth = 5
	fineBand, err := NewBandAroundPath(projected, nSourceFine, nRefFine, fineWidth)
	if err != nil {
		t.Fatalf("unexpected fine band error: %v", err)
	}

	if fineBand.NSource() != nSourceFine {
		t.Fatalf("expected %d rows, got %d", nSourceFine, fineBand.NSource())
	}
	exact := 0
	for i := 0; i < fineBand.NSource(); i++ {
		if fineBand.Hi[i]-fineBand.Lo[i]+1 == fineWidth {
			exact++
		}
	}
	frac := float64(exact) / float64(fineBand.NSource())
	if frac < 0.90 {
		t.Fatalf("expected >=90%% of rows at exact fine width %d, got %.2f%%", fineWidth, frac*100)
	}

	if fineBand.Lo[0] != 0 {
		t.Fatalf("expected fine band lo_0 == 0, got %d", fineBand.Lo[0])
	}
	if fineBand.Hi[fineBand.NSource()-1] != nRefFine-1 {
		t.Fatalf("expected fine band hi_(n-1) == nRefFine-1, got %d", fineBand.Hi[fineBand.NSource()-1])
	}
}

func TestAreaReducedByNarrowerPass(t *testing.T) {
	coarse, err := NewUniformBand(100, 95, 20)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	fine, err := NewUniformBand(100, 95, 8)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if Area(fine) >= Area(coarse) {
		t.Fatalf("expected narrower band to cover less area: fine=%d coarse=%d", Area(fine), Area(coarse))
	}
}
