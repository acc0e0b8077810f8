package match

import "testing"

func TestNormalizeStripsPunctuationAndCase(t *testing.T) {
	if got := Normalize("Hello,"); got != "hello" {
		t.Fatalf("got %q", got)
	}
	if got := Normalize("WORLD!"); got != "world" {
		t.Fatalf("got %q", got)
	}
}

func TestAlignIdenticalSequences(t *testing.T) {
	rec := []string{"hello", "world"}
	ref := []string{"hello", "world"}
	matches := Align(rec, ref)
	if len(matches) != 2 {
		t.Fatalf("expected 2 matches, got %d: %v", len(matches), matches)
	}
	runs := Runs(matches)
	if len(runs) != 1 {
		t.Fatalf("expected a single contiguous run, got %d", len(runs))
	}
	if runs[0].RecStart != 0 || runs[0].RecEnd != 2 || runs[0].RefStart != 0 || runs[0].RefEnd != 2 {
		t.Fatalf("unexpected run: %+v", runs[0])
	}
}

func TestAlignHandlesSubstitutionAndInsertion(t *testing.T) {
	// Recognizer hears an extra filler word and mis-hears "world" as "word".
	rec := []string{"um", "hello", "word"}
	ref := []string{"hello", "world"}
	matches := Align(rec, ref)
	found := false
	for _, m := range matches {
		if m.RecIndex == 1 && m.RefIndex == 0 {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected hello(1)->hello(0) match, got %v", matches)
	}
}

func TestAlignReorderedWordsOnlyMatchInOrder(t *testing.T) {
	// Recognizer word order differs from reference order: only one
	// monotone correspondence is possible (Levenshtein alignment is
	// order-preserving, unlike substring search).
	rec := []string{"world", "hello"}
	ref := []string{"hello", "world"}
	matches := Align(rec, ref)
	for i := 1; i < len(matches); i++ {
		if matches[i].RecIndex <= matches[i-1].RecIndex || matches[i].RefIndex <= matches[i-1].RefIndex {
			t.Fatalf("matches must be strictly increasing in both indices: %v", matches)
		}
	}
}

func TestRunsSplitsNonContiguousMatches(t *testing.T) {
	matches := []Pair{{0, 0}, {1, 1}, {3, 4}}
	runs := Runs(matches)
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d: %v", len(runs), runs)
	}
}

func TestRequireNonEmpty(t *testing.T) {
	if err := RequireNonEmpty(nil); err == nil {
		t.Fatalf("expected error for empty runs")
	}
	if err := RequireNonEmpty([]Run{{0, 1, 0, 1}}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
