// Package distance implements the core's distance kernel (spec §4.2): a
// pure per-frame cost function over two MFCC (or embedding) vectors of
// equal length.
package distance

import (
	"math"

	vecmath "github.com/cwbudde/algo-vecmath"
)

// Metric selects which pairwise cost function the DTW engine uses.
type Metric int

const (
	// Euclidean is the default metric for MFCC vectors.
	Euclidean Metric = iota
	// Cosine is used when the caller supplies embedding vectors.
	Cosine
)

// Func is the capability parameter the DTW engine takes: a monomorphized
// distance function rather than a dynamically dispatched interface (spec
// §9 "Dynamic dispatch on distance function").
type Func func(a, b []float32) float32

// For returns the Func implementing the requested metric.
func For(m Metric) Func {
	if m == Cosine {
		return CosineDistance
	}
	return EuclideanDistance
}

// EuclideanDistance computes sqrt(sum_k (a_k - b_k)^2) (spec §4.2). The
// sum-of-squares reduction is delegated to algo-vecmath's dot product:
// sum((a-b) . (a-b)) is exactly the squared Euclidean distance.
func EuclideanDistance(a, b []float32) float32 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	diff := make([]float64, n)
	for i := 0; i < n; i++ {
		diff[i] = float64(a[i]) - float64(b[i])
	}
	sumSq := vecmath.Dot(diff, diff)
	return float32(math.Sqrt(sumSq))
}

// CosineDistance computes 1 - cos(a, b), clamped to [0, 2] (spec §4.2).
func CosineDistance(a, b []float32) float32 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	fa := make([]float64, n)
	fb := make([]float64, n)
	for i := 0; i < n; i++ {
		fa[i] = float64(a[i])
		fb[i] = float64(b[i])
	}
	dot := vecmath.Dot(fa, fb)
	normA := math.Sqrt(vecmath.Dot(fa, fa))
	normB := math.Sqrt(vecmath.Dot(fb, fb))
	if normA == 0 || normB == 0 {
		return 1.0
	}
	cos := dot / (normA * normB)
	d := 1 - cos
	if d < 0 {
		d = 0
	}
	if d > 2 {
		d = 2
	}
	return float32(d)
}
