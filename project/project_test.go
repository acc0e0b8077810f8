package project

import (
	"testing"

	"github.com/cwbudde/speechalign/timeline"
)

// diagonalPath builds an identity path (source frame i paired with
// reference frame i).
func diagonalPath(n int) timeline.Path {
	p := make(timeline.Path, n)
	for i := range p {
		p[i] = timeline.Pair{SourceFrame: i, RefFrame: i}
	}
	return p
}

// A synthetic path that advances two source frames per reference frame
// (10 ms hops on both sides): a reference word at [0, 0.03] covers
// reference frames 0..3, whose last path pair is source frame 6, so it
// projects to source frames 0..6 (source time [0, 0.07]).
func TestProjectWordsScalesAcrossHopRatio(t *testing.T) {
	path := make(timeline.Path, 26)
	for i := range path {
		path[i] = timeline.Pair{SourceFrame: i * 2, RefFrame: i}
	}
	ref := timeline.Reference{
		Words: []timeline.WordEntry{
			{Text: "hi", StartTime: 0, EndTime: 0.03},
		},
		Duration: 0.25,
	}
	cfg := Config{SourceHop: 0.01, ReferenceHop: 0.01, SourceDuration: 1.0, Method: PhoneMethodDTW}
	out, err := ProjectWords(path, ref, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("expected 1 word, got %d", len(out))
	}
	if out[0].StartTime != 0 {
		t.Fatalf("expected start 0, got %v", out[0].StartTime)
	}
	if out[0].EndTime <= out[0].StartTime {
		t.Fatalf("expected non-degenerate span, got %+v", out[0])
	}
}

// Phone-interpolation scenario (spec §8): a reference word with 4 phones
// of durations [0.05, 0.05, 0.10, 0.10] projected to source span
// [1.0, 1.6] must place boundaries at 1.0, 1.1, 1.2, 1.4, 1.6.
func TestInterpolatePhonesDistributesProportionally(t *testing.T) {
	word := timeline.WordEntry{
		Text:      "word",
		StartTime: 0,
		EndTime:   0.3,
		Phones: []timeline.PhoneEntry{
			{Symbol: "a", StartTime: 0.00, EndTime: 0.05},
			{Symbol: "b", StartTime: 0.05, EndTime: 0.10},
			{Symbol: "c", StartTime: 0.10, EndTime: 0.20},
			{Symbol: "d", StartTime: 0.20, EndTime: 0.30},
		},
	}
	phones := interpolatePhones(word, 1.0, 1.6)
	if len(phones) != 4 {
		t.Fatalf("expected 4 phones, got %d", len(phones))
	}
	want := [][2]float64{{1.0, 1.1}, {1.1, 1.2}, {1.2, 1.4}, {1.4, 1.6}}
	for i, w := range want {
		const eps = 1e-9
		if abs(phones[i].StartTime-w[0]) > eps || abs(phones[i].EndTime-w[1]) > eps {
			t.Fatalf("phone %d: got [%v,%v], want [%v,%v]", i, phones[i].StartTime, phones[i].EndTime, w[0], w[1])
		}
	}
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

func TestProjectWordsEnforcesMonotoneNonOverlap(t *testing.T) {
	path := diagonalPath(20)
	ref := timeline.Reference{
		Words: []timeline.WordEntry{
			{Text: "a", StartTime: 0.00, EndTime: 0.05},
			{Text: "b", StartTime: 0.05, EndTime: 0.05}, // collapsed reference entry
			{Text: "c", StartTime: 0.05, EndTime: 0.10},
		},
		Duration: 0.20,
	}
	cfg := Config{SourceHop: 0.01, ReferenceHop: 0.01, SourceDuration: 0.20, Method: PhoneMethodDTW}
	out, err := ProjectWords(path, ref, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 1; i < len(out); i++ {
		if out[i].StartTime < out[i-1].EndTime {
			t.Fatalf("entries overlap at %d: prev end %v, start %v", i, out[i-1].EndTime, out[i].StartTime)
		}
	}
}

func TestProjectWordsRejectsNonPositiveReferenceHop(t *testing.T) {
	path := diagonalPath(5)
	ref := timeline.Reference{Words: []timeline.WordEntry{{Text: "x", StartTime: 0, EndTime: 0.01}}, Duration: 0.05}
	cfg := Config{SourceHop: 0.01, ReferenceHop: 0, SourceDuration: 0.05}
	if _, err := ProjectWords(path, ref, cfg); err == nil {
		t.Fatalf("expected error for zero reference hop")
	}
}
