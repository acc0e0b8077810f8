package dtwengine

import (
	"testing"

	"github.com/cwbudde/speechalign/alignerr"
	"github.com/cwbudde/speechalign/distance"
	"github.com/cwbudde/speechalign/timeline"
)

func vec(v float32) []float32 { return []float32{v} }

// Toy 1 (spec §8): identical sequences hug the diagonal exactly.
func TestAlignToy1IdenticalSequences(t *testing.T) {
	source := [][]float32{vec(1), vec(2), vec(3)}
	ref := [][]float32{vec(1), vec(2), vec(3)}
	band, err := NewUniformBand(len(source), len(ref), 3)
	if err != nil {
		t.Fatalf("unexpected band error: %v", err)
	}
	path, err := Align(source, ref, band, distance.EuclideanDistance, nil, 0)
	if err != nil {
		t.Fatalf("unexpected align error: %v", err)
	}
	want := timeline.Path{{0, 0}, {1, 1}, {2, 2}}
	assertPathEqual(t, path, want)
}

// Toy 2 (spec §8): stretch case, one "up" move on v1 and one on v3.
func TestAlignToy2Stretch(t *testing.T) {
	source := [][]float32{vec(1), vec(1), vec(2), vec(3), vec(3)}
	ref := [][]float32{vec(1), vec(2), vec(3)}
	band, err := NewUniformBand(len(source), len(ref), len(ref))
	if err != nil {
		t.Fatalf("unexpected band error: %v", err)
	}
	path, err := Align(source, ref, band, distance.EuclideanDistance, nil, 0)
	if err != nil {
		t.Fatalf("unexpected align error: %v", err)
	}
	if err := timeline.ValidatePath(path, len(source), len(ref)); err != nil {
		t.Fatalf("invalid path: %v", err)
	}
	// Two source frames map to ref frame 0 (v1), and two source frames
	// map to ref frame 2 (v3).
	countFor := func(refFrame int) int {
		n := 0
		for _, p := range path {
			if p.RefFrame == refFrame {
				n++
			}
		}
		return n
	}
	if countFor(0) != 2 {
		t.Errorf("expected 2 source frames mapped to ref frame 0, got %d", countFor(0))
	}
	if countFor(2) != 2 {
		t.Errorf("expected 2 source frames mapped to ref frame 2, got %d", countFor(2))
	}
}

// Toy 3 (spec §8): band too narrow for the length mismatch.
func TestAlignToy3BandInfeasible(t *testing.T) {
	_, err := NewUniformBand(1000, 100, 5)
	var e *alignerr.Error
	if err == nil {
		t.Fatalf("expected BandInfeasible error")
	}
	if !alignerr.Of(err, alignerr.BandInfeasible) {
		t.Fatalf("expected BandInfeasible, got %v", err)
	}
	if asError(err, &e); e.SuggestedWidth < 900 {
		t.Fatalf("expected suggested width >= 900, got %d", e.SuggestedWidth)
	}
}

func asError(err error, target **alignerr.Error) {
	if e, ok := err.(*alignerr.Error); ok {
		*target = e
	}
}

func TestBandContainment(t *testing.T) {
	band, err := NewUniformBand(50, 60, 12)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if band.Lo[0] != 0 {
		t.Fatalf("expected lo_0 == 0, got %d", band.Lo[0])
	}
	if band.Hi[49] != 59 {
		t.Fatalf("expected hi_(n-1) == nRef-1, got %d", band.Hi[49])
	}
	for i := 1; i < band.NSource(); i++ {
		if band.Lo[i] < band.Lo[i-1] {
			t.Fatalf("lo not non-decreasing at %d", i)
		}
		if band.Hi[i] < band.Hi[i-1] {
			t.Fatalf("hi not non-decreasing at %d", i)
		}
	}
}

func TestAlignEmptyInput(t *testing.T) {
	_, err := NewUniformBand(0, 5, 3)
	if !alignerr.Of(err, alignerr.EmptyInput) {
		t.Fatalf("expected EmptyInput, got %v", err)
	}
}

func TestAlignPathStaysWithinBand(t *testing.T) {
	source := make([][]float32, 20)
	ref := make([][]float32, 18)
	for i := range source {
		source[i] = vec(float32(i) * 0.37)
	}
	for j := range ref {
		ref[j] = vec(float32(j) * 0.4)
	}
	band, err := NewUniformBand(len(source), len(ref), 5)
	if err != nil {
		t.Fatalf("unexpected band error: %v", err)
	}
	path, err := Align(source, ref, band, distance.EuclideanDistance, nil, 0)
	if err != nil {
		t.Fatalf("unexpected align error: %v", err)
	}
	for _, p := range path {
		if !band.Contains(p.SourceFrame, p.RefFrame) {
			t.Fatalf("path point (%d,%d) outside band", p.SourceFrame, p.RefFrame)
		}
	}
	if err := timeline.ValidatePath(path, len(source), len(ref)); err != nil {
		t.Fatalf("invalid path: %v", err)
	}
}

func TestAlignCancellation(t *testing.T) {
	source := make([][]float32, 1000)
	ref := make([][]float32, 1000)
	for i := range source {
		source[i] = vec(float32(i))
		ref[i] = vec(float32(i))
	}
	band, err := NewUniformBand(len(source), len(ref), 5)
	if err != nil {
		t.Fatalf("unexpected band error: %v", err)
	}
	_, err = Align(source, ref, band, distance.EuclideanDistance, func() bool { return true }, 1)
	if !alignerr.Of(err, alignerr.Cancelled) {
		t.Fatalf("expected Cancelled, got %v", err)
	}
}

func assertPathEqual(t *testing.T, got, want timeline.Path) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("path length mismatch: got %d want %d (%v vs %v)", len(got), len(want), got, want)
	}
	for i := range got {
		if got[i] != want[i] {
			t.Fatalf("path mismatch at %d: got %v want %v", i, got[i], want[i])
		}
	}
}
