// Package match resolves the assisted-mode orchestrator's word matching
// step (spec §4.5 step 2, §9 Open Questions): a Levenshtein-style
// alignment over normalized tokens between the recognizer's word sequence
// and the reference timeline's word sequence, rather than best-effort
// substring search.
package match

import (
	"strings"
	"unicode"

	"github.com/cwbudde/speechalign/alignerr"
)

// Normalize lowercases text and strips characters that are neither
// letters nor digits, so that punctuation and casing differences between
// the recognizer and the reference transcript don't block a match.
func Normalize(text string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(text) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// op identifies one edit-distance traceback move.
type op uint8

const (
	opMatch op = iota
	opSubstitute
	opInsert // consume a recognizer word with no reference counterpart
	opDelete // consume a reference word with no recognizer counterpart
)

// Pair is one matched (recognizer word index, reference word index) pair.
type Pair struct {
	RecIndex int
	RefIndex int
}

// Align computes a Levenshtein edit-distance alignment between the
// recognizer's normalized word sequence and the reference's normalized
// word sequence (spec §4.5 step 2) and returns the exact-match pairs
// found along the optimal traceback, in increasing index order.
func Align(recognizerWords, referenceWords []string) []Pair {
	n, m := len(recognizerWords), len(referenceWords)
	if n == 0 || m == 0 {
		return nil
	}
	recNorm := make([]string, n)
	refNorm := make([]string, m)
	for i, w := range recognizerWords {
		recNorm[i] = Normalize(w)
	}
	for j, w := range referenceWords {
		refNorm[j] = Normalize(w)
	}

	// cost[i][j]: edit distance between recNorm[:i] and refNorm[:j].
	cost := make([][]int, n+1)
	trace := make([][]op, n+1)
	for i := range cost {
		cost[i] = make([]int, m+1)
		trace[i] = make([]op, m+1)
	}
	for i := 1; i <= n; i++ {
		cost[i][0] = i
		trace[i][0] = opInsert
	}
	for j := 1; j <= m; j++ {
		cost[0][j] = j
		trace[0][j] = opDelete
	}
	for i := 1; i <= n; i++ {
		for j := 1; j <= m; j++ {
			subCost := 1
			o := opSubstitute
			if recNorm[i-1] == refNorm[j-1] {
				subCost = 0
				o = opMatch
			}
			best := cost[i-1][j-1] + subCost
			bestOp := o
			if v := cost[i-1][j] + 1; v < best {
				best, bestOp = v, opInsert
			}
			if v := cost[i][j-1] + 1; v < best {
				best, bestOp = v, opDelete
			}
			cost[i][j] = best
			trace[i][j] = bestOp
		}
	}

	var matches []Pair
	i, j := n, m
	for i > 0 || j > 0 {
		switch {
		case i > 0 && j > 0 && (trace[i][j] == opMatch || trace[i][j] == opSubstitute):
			if trace[i][j] == opMatch {
				matches = append(matches, Pair{RecIndex: i - 1, RefIndex: j - 1})
			}
			i--
			j--
		case i > 0 && (j == 0 || trace[i][j] == opInsert):
			i--
		default:
			j--
		}
	}
	// matches were collected back-to-front
	for l, r := 0, len(matches)-1; l < r; l, r = l+1, r-1 {
		matches[l], matches[r] = matches[r], matches[l]
	}
	return matches
}

// Run is a maximal contiguous stretch of matches where both the
// recognizer index and the reference index advance by exactly one
// between consecutive matches — i.e. an uninterrupted correspondence
// that can become a single anchor interval (spec §4.5 step 2: "producing
// a set of corresponding reference spans").
type Run struct {
	RecStart, RecEnd int // half-open, recognizer word indices
	RefStart, RefEnd int // half-open, reference word indices
}

// Runs groups Align's match pairs into maximal contiguous runs.
func Runs(matches []Pair) []Run {
	var runs []Run
	for _, p := range matches {
		if len(runs) > 0 {
			last := &runs[len(runs)-1]
			if p.RecIndex == last.RecEnd && p.RefIndex == last.RefEnd {
				last.RecEnd++
				last.RefEnd++
				continue
			}
		}
		runs = append(runs, Run{RecStart: p.RecIndex, RecEnd: p.RecIndex + 1, RefStart: p.RefIndex, RefEnd: p.RefIndex + 1})
	}
	return runs
}

// RequireNonEmpty returns ReferenceMismatch if no runs were found, which
// means the recognizer output could not be matched against the reference
// words at all (spec §7 ReferenceMismatch).
func RequireNonEmpty(runs []Run) error {
	if len(runs) == 0 {
		return alignerr.New(alignerr.ReferenceMismatch, "recognition timeline could not be matched against reference words")
	}
	return nil
}
