// Package timeline holds the core's nested interval-tree data model (spec
// §3): reference timelines consumed from the external G2P synthesizer,
// flat recognition timelines consumed in assisted mode, and the
// word/phone timelines the core produces.
package timeline

// PhoneEntry is a single phone interval within a word (spec §3).
type PhoneEntry struct {
	Symbol    string
	StartTime float64 // seconds
	EndTime   float64 // seconds
}

// Duration returns EndTime - StartTime.
func (p PhoneEntry) Duration() float64 { return p.EndTime - p.StartTime }

// WordEntry is a single word interval, with its child phone intervals
// stored inline rather than via back-pointers (spec §9: "store phone
// lists inside word entries rather than back-pointers").
type WordEntry struct {
	Text      string
	StartTime float64 // seconds
	EndTime   float64 // seconds
	Phones    []PhoneEntry
}

// Duration returns EndTime - StartTime.
func (w WordEntry) Duration() float64 { return w.EndTime - w.StartTime }

// Reference is the two-level nested interval tree synthesized externally
// (spec §3 ReferenceTimeline): word entries, each carrying its phones.
type Reference struct {
	Words []WordEntry
	// Duration is the total reference audio duration in seconds; the
	// union of word intervals must cover [0, Duration] except for
	// explicit silence gaps (spec §3 invariant).
	Duration float64
}

// RecognitionWord is one entry of the flat recognizer output consumed
// only by the assisted-mode orchestrator (spec §6).
type RecognitionWord struct {
	Text      string
	StartTime float64
	EndTime   float64
}

// Recognition is the flat word sequence produced by the external
// recognizer (spec §3 "Recognition timeline input").
type Recognition struct {
	Words []RecognitionWord
}

// Result is the core's output (spec §3 AlignmentResult): a mandatory word
// timeline in source time, an optional phone timeline, and an optional
// confidence score.
type Result struct {
	WordTimeline  []WordEntry
	PhoneTimeline []PhoneEntry // optional, flattened across words when present
	Confidence    *float64     // optional
}
