package mfcc

import "math"

// dctII computes the first cepstralCount coefficients of the DCT-II of
// logEnergies (spec §4.1 step 7).
func dctII(logEnergies []float32, cepstralCount int) []float32 {
	n := len(logEnergies)
	out := make([]float32, cepstralCount)
	for k := 0; k < cepstralCount; k++ {
		var sum float64
		for i := 0; i < n; i++ {
			sum += float64(logEnergies[i]) * math.Cos(math.Pi*float64(k)*(float64(i)+0.5)/float64(n))
		}
		out[k] = float32(sum)
	}
	return out
}

// lifter applies sinusoidal liftering in place: c_k *= 1 + (L/2)*sin(pi*k/L)
// (spec §4.1 step 8). A liftering coefficient of 0 disables it.
func lifter(coeffs []float32, l float64) {
	if l <= 0 {
		return
	}
	for k := range coeffs {
		factor := 1 + (l/2)*math.Sin(math.Pi*float64(k)/l)
		coeffs[k] = float32(float64(coeffs[k]) * factor)
	}
}
