package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadReferenceTimelineParsesWordsAndPhones(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ref.json")
	const body = `{
		"duration": 0.7,
		"words": [
			{"text": "hello", "startTime": 0.0, "endTime": 0.3, "phones": [
				{"symbol": "h", "startTime": 0.0, "endTime": 0.1},
				{"symbol": "e", "startTime": 0.1, "endTime": 0.3}
			]},
			{"text": "world", "startTime": 0.3, "endTime": 0.7}
		]
	}`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("unexpected write error: %v", err)
	}

	ref, err := loadReferenceTimeline(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ref.Duration != 0.7 {
		t.Fatalf("expected duration 0.7, got %v", ref.Duration)
	}
	if len(ref.Words) != 2 {
		t.Fatalf("expected 2 words, got %d", len(ref.Words))
	}
	if len(ref.Words[0].Phones) != 2 {
		t.Fatalf("expected 2 phones for first word, got %d", len(ref.Words[0].Phones))
	}
}

func TestLoadReferenceTimelineRejectsSentenceKind(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ref.json")
	const body = `{"duration": 1.0, "words": [{"type": "sentence", "text": "hi there", "startTime": 0, "endTime": 1.0}]}`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("unexpected write error: %v", err)
	}
	if _, err := loadReferenceTimeline(path); err == nil {
		t.Fatalf("expected error for sentence-kind entry")
	}
}

func TestLoadRecognitionTimeline(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rec.json")
	const body = `{"words": [{"text": "hello", "startTime": 0.0, "endTime": 0.4}, {"text": "world", "startTime": 0.5, "endTime": 0.9}]}`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("unexpected write error: %v", err)
	}
	rec, err := loadRecognitionTimeline(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rec.Words) != 2 {
		t.Fatalf("expected 2 words, got %d", len(rec.Words))
	}
}
