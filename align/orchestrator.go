// Package align implements the core's Alignment Orchestrator (spec
// §4.5): configuration, pass planning, the three public alignment
// operations, and confidence scoring, composing C1-C4 in strict
// sequential order (spec §5 "feature extraction -> each DTW pass ->
// projection").
package align

import (
	"github.com/cwbudde/speechalign/alignerr"
	"github.com/cwbudde/speechalign/audio"
	"github.com/cwbudde/speechalign/distance"
	"github.com/cwbudde/speechalign/dtwengine"
	"github.com/cwbudde/speechalign/match"
	"github.com/cwbudde/speechalign/mfcc"
	"github.com/cwbudde/speechalign/project"
	"github.com/cwbudde/speechalign/timeline"
)

// anchorBandWidth is the fixed Sakoe-Chiba band width used for each
// recognition-anchored sub-alignment (spec §4.5 step 3); anchors are
// already tightly scoped by the recognizer, so a narrow band suffices.
const anchorBandWidth = 20

func checkReferenceDuration(referenceAudio audio.RawAudio, ref timeline.Reference) error {
	const tolerance = 0.5 // seconds of slack for silence-trim rounding
	if d := referenceAudio.Duration(); d < ref.Duration-tolerance || d > ref.Duration+tolerance {
		return alignerr.New(alignerr.ReferenceMismatch,
			"reference audio duration %.3fs inconsistent with reference timeline duration %.3fs", d, ref.Duration)
	}
	return nil
}

// extractPassFeatures extracts MFCCs for both sides of the alignment for
// one pass, overriding the granularity-derived window/hop/FFT bundle with
// any explicit cfg.MFCC fields.
func extractPassFeatures(sourceAudio, referenceAudio audio.RawAudio, g mfcc.Granularity, override mfcc.Config, defaulted mfcc.Config) (*mfcc.FrameSequence, *mfcc.FrameSequence, error) {
	cfg := mfcc.ConfigForGranularity(g)
	if override.WindowDuration != defaulted.WindowDuration {
		cfg.WindowDuration = override.WindowDuration
	}
	if override.HopDuration != defaulted.HopDuration {
		cfg.HopDuration = override.HopDuration
	}
	if override.FFTOrder != defaulted.FFTOrder {
		cfg.FFTOrder = override.FFTOrder
	}
	src, err := mfcc.Extract(sourceAudio, cfg)
	if err != nil {
		return nil, nil, err
	}
	ref, err := mfcc.Extract(referenceAudio, cfg)
	if err != nil {
		return nil, nil, err
	}
	return src, ref, nil
}

// runPasses executes the multi-pass DTW refinement of spec §4.3/§4.5:
// each pass re-extracts MFCCs at its own granularity, and every pass
// after the first narrows its band around the previous pass's path
// (spec §5 "Suspension points... between passes").
func runPasses(sourceAudio, referenceAudio audio.RawAudio, cfg Config, passes []Pass, cancel CancelFunc) (timeline.Path, *mfcc.FrameSequence, *mfcc.FrameSequence, error) {
	defaultMFCC := mfcc.DefaultConfig()
	var (
		path    timeline.Path
		srcSeq  *mfcc.FrameSequence
		refSeq  *mfcc.FrameSequence
		prevHop float64
	)
	dist := distance.For(distance.Euclidean)

	for i, pass := range passes {
		if cancel != nil && cancel() {
			return nil, nil, nil, alignerr.New(alignerr.Cancelled, "alignment cancelled before pass %d", i)
		}
		var err error
		srcSeq, refSeq, err = extractPassFeatures(sourceAudio, referenceAudio, pass.Granularity, cfg.MFCC, defaultMFCC)
		if err != nil {
			return nil, nil, nil, err
		}

		var band dtwengine.Band
		if i == 0 {
			band, err = dtwengine.NewUniformBand(srcSeq.Len(), refSeq.Len(), pass.BandWidth)
		} else {
			ratioSrc := prevHop / srcSeq.HopDuration
			ratioRef := prevHop / refSeq.HopDuration
			projected := dtwengine.ProjectPath(path, ratioSrc, ratioRef)
			band, err = dtwengine.NewBandAroundPath(projected, srcSeq.Len(), refSeq.Len(), pass.BandWidth)
		}
		if err != nil {
			return nil, nil, nil, err
		}

		path, err = dtwengine.Align(srcSeq.Frames, refSeq.Frames, band, dist, cancel, cfg.CancelEveryRows)
		if err != nil {
			return nil, nil, nil, err
		}
		prevHop = srcSeq.HopDuration
	}
	return path, srcSeq, refSeq, nil
}

// projectResult runs C4 over the final pass's path and wraps it in a
// Result, flattening the phone timeline across words when any word
// carries phones.
func projectResult(path timeline.Path, ref timeline.Reference, srcSeq, refSeq *mfcc.FrameSequence, sourceDuration float64, method project.PhoneMethod) (timeline.Result, error) {
	cfg := project.Config{
		SourceHop:      srcSeq.HopDuration,
		ReferenceHop:   refSeq.HopDuration,
		SourceDuration: sourceDuration,
		Method:         method,
	}
	words, err := project.ProjectWords(path, ref, cfg)
	if err != nil {
		return timeline.Result{}, err
	}
	result := timeline.Result{WordTimeline: words}
	for _, w := range words {
		result.PhoneTimeline = append(result.PhoneTimeline, w.Phones...)
	}
	return result, nil
}

// AlignPlain runs the unassisted alignment of spec §4.5: pass-planned
// multi-resolution DTW followed by reference timeline projection.
func AlignPlain(sourceAudio, referenceAudio audio.RawAudio, ref timeline.Reference, cfg Config, cancel CancelFunc) (timeline.Result, error) {
	if err := checkReferenceDuration(referenceAudio, ref); err != nil {
		return timeline.Result{}, err
	}
	passes, err := PlanPasses(sourceAudio.Duration(), cfg.Granularity, cfg.WindowDurations)
	if err != nil {
		return timeline.Result{}, err
	}
	path, srcSeq, refSeq, err := runPasses(sourceAudio, referenceAudio, cfg, passes, cancel)
	if err != nil {
		return timeline.Result{}, err
	}
	result, err := projectResult(path, ref, srcSeq, refSeq, sourceAudio.Duration(), cfg.PhoneAlignmentMethod)
	if err != nil {
		return timeline.Result{}, err
	}
	conf := Confidence(path, srcSeq.Frames, refSeq.Frames, distance.For(distance.Euclidean))
	result.Confidence = &conf
	return result, nil
}

// AlignWithRecognition runs the assisted variant of spec §4.5: match the
// recognizer's word sequence against the reference words, anchor a
// sub-alignment per match, concatenate, and project.
func AlignWithRecognition(sourceAudio, referenceAudio audio.RawAudio, ref timeline.Reference, recognition timeline.Recognition, cfg Config, cancel CancelFunc) (timeline.Result, error) {
	if err := checkReferenceDuration(referenceAudio, ref); err != nil {
		return timeline.Result{}, err
	}

	defaultMFCC := mfcc.DefaultConfig()
	granularities := cfg.Granularity
	if len(granularities) == 0 {
		granularities = DefaultGranularities(sourceAudio.Duration())
	}
	g := granularities[len(granularities)-1]
	srcSeq, refSeq, err := extractPassFeatures(sourceAudio, referenceAudio, g, cfg.MFCC, defaultMFCC)
	if err != nil {
		return timeline.Result{}, err
	}

	recWords := make([]string, len(recognition.Words))
	for i, w := range recognition.Words {
		recWords[i] = w.Text
	}
	refWords := make([]string, len(ref.Words))
	for i, w := range ref.Words {
		refWords[i] = w.Text
	}
	runs := match.Runs(match.Align(recWords, refWords))
	if err := match.RequireNonEmpty(runs); err != nil {
		return timeline.Result{}, err
	}

	anchors := make([]dtwengine.Anchor, len(runs))
	for i, r := range runs {
		srcStartSec := recognition.Words[r.RecStart].StartTime
		srcEndSec := recognition.Words[r.RecEnd-1].EndTime
		refStartSec := ref.Words[r.RefStart].StartTime
		refEndSec := ref.Words[r.RefEnd-1].EndTime

		srcStart := srcSeq.FrameIndexFloor(srcStartSec)
		srcEnd := srcSeq.FrameIndexCeil(srcEndSec) + 1
		refStart := refSeq.FrameIndexFloor(refStartSec)
		refEnd := refSeq.FrameIndexCeil(refEndSec) + 1
		if srcEnd > srcSeq.Len() {
			srcEnd = srcSeq.Len()
		}
		if refEnd > refSeq.Len() {
			refEnd = refSeq.Len()
		}
		anchors[i] = dtwengine.Anchor{
			Source: dtwengine.Interval{Start: srcStart, End: srcEnd},
			Ref:    dtwengine.Interval{Start: refStart, End: refEnd},
		}
	}

	dist := distance.For(distance.Euclidean)
	path, err := dtwengine.AlignAnchored(srcSeq.Frames, refSeq.Frames, anchors, anchorBandWidth, dist, cancel)
	if err != nil {
		return timeline.Result{}, err
	}

	result, err := projectResult(path, ref, srcSeq, refSeq, sourceAudio.Duration(), cfg.PhoneAlignmentMethod)
	if err != nil {
		return timeline.Result{}, err
	}
	conf := Confidence(path, srcSeq.Frames, refSeq.Frames, dist)
	result.Confidence = &conf
	return result, nil
}

// AlignWithEmbeddings runs the same pass-planned band refinement as
// AlignPlain, but the distance kernel operates on caller-supplied
// embedding sequences instead of re-extracted MFCCs. Unlike MFCC frames,
// an embedding sequence has one fixed length set by the caller — it does
// not grow or shrink with pass granularity — so the frame grid (NSource,
// NRef) stays fixed across every pass, and only the band width narrows
// pass to pass. MFCC is extracted once, at the finest configured
// granularity, purely to validate that length against the embeddings and
// to provide frame-to-time conversion for projection (spec §4.5).
func AlignWithEmbeddings(sourceAudio, referenceAudio audio.RawAudio, ref timeline.Reference, sourceEmbeddings, referenceEmbeddings [][]float32, cfg Config, cancel CancelFunc) (timeline.Result, error) {
	if err := checkReferenceDuration(referenceAudio, ref); err != nil {
		return timeline.Result{}, err
	}
	if len(sourceEmbeddings) == 0 || len(referenceEmbeddings) == 0 {
		return timeline.Result{}, alignerr.New(alignerr.EmptyInput, "embedding sequences must be non-empty")
	}

	passes, err := PlanPasses(sourceAudio.Duration(), cfg.Granularity, cfg.WindowDurations)
	if err != nil {
		return timeline.Result{}, err
	}

	defaultMFCC := mfcc.DefaultConfig()
	finest := passes[len(passes)-1].Granularity
	srcSeq, refSeq, err := extractPassFeatures(sourceAudio, referenceAudio, finest, cfg.MFCC, defaultMFCC)
	if err != nil {
		return timeline.Result{}, err
	}
	if len(sourceEmbeddings) != srcSeq.Len() || len(referenceEmbeddings) != refSeq.Len() {
		return timeline.Result{}, alignerr.New(alignerr.ReferenceMismatch,
			"embedding sequence length (%d, %d) does not match MFCC frame count (%d, %d) at granularity %s",
			len(sourceEmbeddings), len(referenceEmbeddings), srcSeq.Len(), refSeq.Len(), finest)
	}

	dist := distance.For(distance.Cosine)
	var path timeline.Path
	for i, pass := range passes {
		if cancel != nil && cancel() {
			return timeline.Result{}, alignerr.New(alignerr.Cancelled, "alignment cancelled before pass %d", i)
		}

		var band dtwengine.Band
		if i == 0 {
			band, err = dtwengine.NewUniformBand(len(sourceEmbeddings), len(referenceEmbeddings), pass.BandWidth)
		} else {
			band, err = dtwengine.NewBandAroundPath(path, len(sourceEmbeddings), len(referenceEmbeddings), pass.BandWidth)
		}
		if err != nil {
			return timeline.Result{}, err
		}

		path, err = dtwengine.Align(sourceEmbeddings, referenceEmbeddings, band, dist, cancel, cfg.CancelEveryRows)
		if err != nil {
			return timeline.Result{}, err
		}
	}

	result, err := projectResult(path, ref, srcSeq, refSeq, sourceAudio.Duration(), cfg.PhoneAlignmentMethod)
	if err != nil {
		return timeline.Result{}, err
	}
	conf := Confidence(path, sourceEmbeddings, referenceEmbeddings, dist)
	result.Confidence = &conf
	return result, nil
}
