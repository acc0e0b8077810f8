package mfcc

import "testing"

func TestFrameSamplesSlicesOverlappingWindows(t *testing.T) {
	signal := []float32{0, 1, 2, 3, 4, 5, 6}
	frames := frameSamples(signal, 4, 2)
	want := [][]float32{
		{0, 1, 2, 3},
		{2, 3, 4, 5},
		{4, 5, 6, 0},
	}
	if len(frames) != len(want) {
		t.Fatalf("expected %d frames, got %d", len(want), len(frames))
	}
	for i := range want {
		if !equalFrames(frames[i], want[i]) {
			t.Fatalf("frame %d: expected %v, got %v", i, want[i], frames[i])
		}
	}
}

func TestFrameSamplesZeroPadsFinalFrame(t *testing.T) {
	signal := []float32{1, 2, 3}
	frames := frameSamples(signal, 4, 4)
	if len(frames) != 1 {
		t.Fatalf("expected 1 frame, got %d", len(frames))
	}
	want := []float32{1, 2, 3, 0}
	if !equalFrames(frames[0], want) {
		t.Fatalf("expected %v, got %v", want, frames[0])
	}
}

func TestRingFramerSnapshotReflectsPushOrder(t *testing.T) {
	r := newRingFramer(3)
	for _, s := range []float32{1, 2, 3, 4} {
		r.push(s)
	}
	want := []float32{2, 3, 4}
	if !equalFrames(r.snapshot(), want) {
		t.Fatalf("expected %v, got %v", want, r.snapshot())
	}
}

func TestRingFramerZeroFillsBeforeFirstFill(t *testing.T) {
	r := newRingFramer(4)
	r.push(9)
	want := []float32{0, 0, 0, 9}
	if !equalFrames(r.snapshot(), want) {
		t.Fatalf("expected %v, got %v", want, r.snapshot())
	}
}

func equalFrames(a, b []float32) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
