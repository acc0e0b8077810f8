package mfcc

import "math"

// hannWindow returns a Hann window of the given length (spec §4.1 step 3).
func hannWindow(length int) []float32 {
	w := make([]float32, length)
	if length == 1 {
		w[0] = 1
		return w
	}
	denom := float64(length - 1)
	for i := 0; i < length; i++ {
		w[i] = float32(0.5 * (1 - math.Cos(2*math.Pi*float64(i)/denom)))
	}
	return w
}

// applyWindowPadded multiplies frame by window (window shorter than or
// equal to len(frame)) and zero-pads the remainder up to fftOrder.
func applyWindowPadded(frame []float32, window []float32, fftOrder int) []float32 {
	out := make([]float32, fftOrder)
	n := len(frame)
	if len(window) < n {
		n = len(window)
	}
	for i := 0; i < n; i++ {
		out[i] = frame[i] * window[i]
	}
	return out
}
