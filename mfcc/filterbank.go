package mfcc

import "math"

// hzToMel and melToHz follow the standard (O'Shaughnessy / HTK) mel scale,
// the same formulas used in the reference corpus's mel-filterbank
// extractors (other_examples whisper_mel.go: hzToMel/melToHz).
func hzToMel(hz float64) float64 {
	return 2595 * math.Log10(1+hz/700)
}

func melToHz(mel float64) float64 {
	return 700 * (math.Pow(10, mel/2595) - 1)
}

// melFilterbank builds filterBankCount triangular filters equally spaced
// on the mel scale between lowFreqHz and highFreqHz, each one a row of
// weights over nBins FFT magnitude bins (spec §4.1 step 5).
func melFilterbank(filterBankCount, nBins, sampleRate int, lowFreqHz, highFreqHz float64) [][]float32 {
	lowMel := hzToMel(lowFreqHz)
	highMel := hzToMel(highFreqHz)

	points := make([]float64, filterBankCount+2)
	for i := range points {
		points[i] = lowMel + (highMel-lowMel)*float64(i)/float64(filterBankCount+1)
	}
	hzPoints := make([]float64, len(points))
	for i, m := range points {
		hzPoints[i] = melToHz(m)
	}

	binFreq := make([]float64, nBins)
	for k := 0; k < nBins; k++ {
		binFreq[k] = float64(k) * float64(sampleRate) / float64(2*(nBins-1))
	}

	filters := make([][]float32, filterBankCount)
	for m := 0; m < filterBankCount; m++ {
		left, center, right := hzPoints[m], hzPoints[m+1], hzPoints[m+2]
		row := make([]float32, nBins)
		for k, f := range binFreq {
			var v float64
			switch {
			case f >= left && f <= center && center > left:
				v = (f - left) / (center - left)
			case f > center && f <= right && right > center:
				v = (right - f) / (right - center)
			}
			row[k] = float32(v)
		}
		filters[m] = row
	}
	return filters
}

// applyFilterbank sums weighted magnitudes per filter (spec §4.1 step 5),
// then applies the log-compression floor from step 6.
const logFloorEpsilon = 1e-10

func applyFilterbank(magnitudes []float32, filters [][]float32) []float32 {
	energies := make([]float32, len(filters))
	for m, row := range filters {
		var sum float64
		for k, w := range row {
			if w == 0 || k >= len(magnitudes) {
				continue
			}
			sum += float64(w) * float64(magnitudes[k])
		}
		if sum < logFloorEpsilon {
			sum = logFloorEpsilon
		}
		energies[m] = float32(math.Log(sum))
	}
	return energies
}
