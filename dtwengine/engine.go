package dtwengine

import (
	"math"

	"github.com/cwbudde/speechalign/alignerr"
	"github.com/cwbudde/speechalign/distance"
	"github.com/cwbudde/speechalign/timeline"
)

// move records which of the three predecessor cells a traceback entry
// points to. In principle two bits suffice per cell (spec §4.3 "A single
// traceback matrix of 2-bit entries per cell suffices"); we store one
// byte per cell for clarity, which is the usual trade a Go implementation
// makes unless profiling shows the 4x memory matters for a given corpus.
type move uint8

const (
	moveDiag move = iota
	moveUp
	moveLeft
)

// CancelFunc is polled at pass boundaries and every CancelEveryRows rows
// of the cost matrix (spec §5). It should return true to request
// cancellation.
type CancelFunc func() bool

// DefaultCancelEveryRows is the spec's minimum polling granularity (§5:
// "every K rows of the cost matrix (K >= 256 by default)").
const DefaultCancelEveryRows = 256

const inf32 = float32(math.Inf(1))

// Align computes the minimum-cost monotone alignment path between source
// and ref under the given band and distance function (spec §4.3). cancel
// may be nil; cancelEveryRows <= 0 defaults to DefaultCancelEveryRows.
func Align(source, ref [][]float32, band Band, dist distance.Func, cancel CancelFunc, cancelEveryRows int) (timeline.Path, error) {
	nS := len(source)
	nR := len(ref)
	if nS == 0 || nR == 0 {
		return nil, alignerr.New(alignerr.EmptyInput, "source and reference sequences must be non-empty (nSource=%d, nRef=%d)", nS, nR)
	}
	if band.NSource() != nS {
		return nil, alignerr.New(alignerr.ReferenceMismatch, "band covers %d source frames, sequence has %d", band.NSource(), nS)
	}
	if cancelEveryRows <= 0 {
		cancelEveryRows = DefaultCancelEveryRows
	}

	traceback := make([][]move, nS)
	var prev []float32
	prevLo, prevHi := 0, -1

	for i := 0; i < nS; i++ {
		if cancel != nil && i%cancelEveryRows == 0 && cancel() {
			return nil, alignerr.New(alignerr.Cancelled, "alignment cancelled at source row %d of %d", i, nS)
		}

		lo, hi := band.Lo[i], band.Hi[i]
		row := make([]float32, hi-lo+1)
		tb := make([]move, hi-lo+1)

		for j := lo; j <= hi; j++ {
			idx := j - lo
			if i == 0 {
				if j == 0 {
					row[idx] = dist(source[0], ref[0])
				} else {
					row[idx] = inf32
				}
				tb[idx] = moveDiag
				continue
			}

			cost := dist(source[i], ref[j])
			diag, up, left := inf32, inf32, inf32
			if j-1 >= prevLo && j-1 <= prevHi {
				diag = prev[j-1-prevLo]
			}
			if j >= prevLo && j <= prevHi {
				up = prev[j-prevLo]
			}
			if j-1 >= lo {
				left = row[j-1-lo]
			}

			// Tie-breaking order, top to bottom: diagonal, up, left
			// (spec §4.3) — only a strictly smaller candidate displaces
			// the current best, so ties resolve toward the earlier move
			// in that order.
			best, bestMove := diag, moveDiag
			if up < best {
				best, bestMove = up, moveUp
			}
			if left < best {
				best, bestMove = left, moveLeft
			}
			row[idx] = best + cost
			tb[idx] = bestMove
		}

		traceback[i] = tb
		prev, prevLo, prevHi = row, lo, hi
	}

	terminal := prev[nR-1-prevLo]
	if math.IsInf(float64(terminal), 1) {
		return nil, alignerr.NewBandInfeasible(nS+nR, "no finite-cost path reaches the terminal cell within the given band")
	}

	return recoverPath(traceback, band, nS, nR)
}

// recoverPath follows predecessor pointers from (Ns-1, Nr-1) back to
// (0, 0) and emits the result in forward order (spec §4.3 "Path recovery").
func recoverPath(traceback [][]move, band Band, nS, nR int) (timeline.Path, error) {
	path := make(timeline.Path, 0, nS+nR)
	i, j := nS-1, nR-1
	maxSteps := nS + nR + 4
	for steps := 0; ; steps++ {
		path = append(path, timeline.Pair{SourceFrame: i, RefFrame: j})
		if i == 0 && j == 0 {
			break
		}
		if steps > maxSteps {
			return nil, alignerr.New(alignerr.ReferenceMismatch, "traceback failed to terminate at (0,0)")
		}
		lo := band.Lo[i]
		if j < lo || j > band.Hi[i] {
			return nil, alignerr.New(alignerr.ReferenceMismatch, "traceback left the band at (%d,%d)", i, j)
		}
		switch traceback[i][j-lo] {
		case moveDiag:
			i--
			j--
		case moveUp:
			i--
		case moveLeft:
			j--
		}
	}
	// reverse into forward order
	for l, r := 0, len(path)-1; l < r; l, r = l+1, r-1 {
		path[l], path[r] = path[r], path[l]
	}
	return path, nil
}
