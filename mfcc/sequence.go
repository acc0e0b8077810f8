package mfcc

// FrameSequence is an ordered sequence of fixed-length MFCC vectors (spec
// §3 MfccFrameSequence). It carries its frame hop so that a frame index i
// maps deterministically to a centre time i*HopDuration.
type FrameSequence struct {
	Frames      [][]float32
	HopDuration float64 // seconds
	WindowDuration float64 // seconds
}

// Len returns the number of frames.
func (s *FrameSequence) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Frames)
}

// Dim returns the per-frame vector length, or 0 for an empty sequence.
func (s *FrameSequence) Dim() int {
	if s.Len() == 0 {
		return 0
	}
	return len(s.Frames[0])
}

// TimeForFrame returns the centre time of frame i, in seconds.
func (s *FrameSequence) TimeForFrame(i int) float64 {
	return float64(i) * s.HopDuration
}

// FrameIndexFloor returns floor(t / hop), clamped to the sequence length.
func (s *FrameSequence) FrameIndexFloor(t float64) int {
	if s.HopDuration <= 0 {
		return 0
	}
	idx := int(t / s.HopDuration)
	if idx < 0 {
		idx = 0
	}
	if s.Len() > 0 && idx >= s.Len() {
		idx = s.Len() - 1
	}
	return idx
}

// FrameIndexCeil returns ceil(t / hop), clamped to the sequence length.
func (s *FrameSequence) FrameIndexCeil(t float64) int {
	if s.HopDuration <= 0 {
		return 0
	}
	idx := int(t / s.HopDuration)
	if float64(idx)*s.HopDuration < t {
		idx++
	}
	if idx < 0 {
		idx = 0
	}
	if s.Len() > 0 && idx >= s.Len() {
		idx = s.Len() - 1
	}
	return idx
}
