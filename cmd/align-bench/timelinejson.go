package main

import (
	"encoding/json"
	"os"

	"github.com/cwbudde/speechalign/timeline"
)

// phoneFile and wordFile mirror timeline.PhoneEntry/WordEntry with JSON
// tags; the core's own types carry no wire format (spec §6: timelines are
// a data interface, not a serialization format), so the host owns this
// mapping.
type phoneFile struct {
	Type      string  `json:"type,omitempty"`
	Symbol    string  `json:"symbol"`
	StartTime float64 `json:"startTime"`
	EndTime   float64 `json:"endTime"`
}

type wordFile struct {
	Type      string      `json:"type,omitempty"`
	Text      string      `json:"text"`
	StartTime float64     `json:"startTime"`
	EndTime   float64     `json:"endTime"`
	Phones    []phoneFile `json:"phones,omitempty"`
}

type referenceFile struct {
	Words    []wordFile `json:"words"`
	Duration float64    `json:"duration"`
}

type recognitionWordFile struct {
	Text      string  `json:"text"`
	StartTime float64 `json:"startTime"`
	EndTime   float64 `json:"endTime"`
}

type recognitionFile struct {
	Words []recognitionWordFile `json:"words"`
}

func loadReferenceTimeline(path string) (timeline.Reference, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return timeline.Reference{}, err
	}
	var f referenceFile
	if err := json.Unmarshal(b, &f); err != nil {
		return timeline.Reference{}, err
	}
	ref := timeline.Reference{Duration: f.Duration, Words: make([]timeline.WordEntry, len(f.Words))}
	for i, w := range f.Words {
		if w.Type != "" {
			if _, err := timeline.ParseKind(w.Type); err != nil {
				return timeline.Reference{}, err
			}
		}
		phones := make([]timeline.PhoneEntry, len(w.Phones))
		for j, p := range w.Phones {
			if p.Type != "" {
				if _, err := timeline.ParseKind(p.Type); err != nil {
					return timeline.Reference{}, err
				}
			}
			phones[j] = timeline.PhoneEntry{Symbol: p.Symbol, StartTime: p.StartTime, EndTime: p.EndTime}
		}
		ref.Words[i] = timeline.WordEntry{Text: w.Text, StartTime: w.StartTime, EndTime: w.EndTime, Phones: phones}
	}
	return ref, nil
}

func loadRecognitionTimeline(path string) (timeline.Recognition, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return timeline.Recognition{}, err
	}
	var f recognitionFile
	if err := json.Unmarshal(b, &f); err != nil {
		return timeline.Recognition{}, err
	}
	rec := timeline.Recognition{Words: make([]timeline.RecognitionWord, len(f.Words))}
	for i, w := range f.Words {
		rec.Words[i] = timeline.RecognitionWord{Text: w.Text, StartTime: w.StartTime, EndTime: w.EndTime}
	}
	return rec, nil
}

// resultFile mirrors timeline.Result for JSON output.
type resultFile struct {
	Words      []wordFile `json:"words"`
	Confidence *float64   `json:"confidence,omitempty"`
}

func toResultFile(result timeline.Result) resultFile {
	out := resultFile{Words: make([]wordFile, len(result.WordTimeline)), Confidence: result.Confidence}
	for i, w := range result.WordTimeline {
		phones := make([]phoneFile, len(w.Phones))
		for j, p := range w.Phones {
			phones[j] = phoneFile{Symbol: p.Symbol, StartTime: p.StartTime, EndTime: p.EndTime}
		}
		out.Words[i] = wordFile{Text: w.Text, StartTime: w.StartTime, EndTime: w.EndTime, Phones: phones}
	}
	return out
}
