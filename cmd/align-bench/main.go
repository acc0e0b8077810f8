// align-bench is a demonstration CLI wiring a host around the alignment
// core: it decodes WAV files and JSON timelines, drives the orchestrator,
// and prints the resulting word/phone timeline. None of this is part of
// the core itself (spec §6: "no CLI/server plumbing" inside the core).
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/cwbudde/speechalign/align"
	"github.com/cwbudde/speechalign/internal/audioio"
	"github.com/cwbudde/speechalign/timeline"
)

func main() {
	sourcePath := flag.String("source", "", "Source WAV path (required)")
	referencePath := flag.String("reference", "", "Reference WAV path (required)")
	referenceTimelinePath := flag.String("reference-timeline", "", "Reference timeline JSON path (required)")
	recognitionPath := flag.String("recognition", "", "Optional recognition timeline JSON path; enables assisted mode")
	configPath := flag.String("config", "", "Optional orchestrator config JSON path")
	jsonOut := flag.Bool("json", false, "Print the result as JSON")
	flag.Parse()

	if *sourcePath == "" || *referencePath == "" || *referenceTimelinePath == "" {
		die("source, reference and reference-timeline flags are required")
	}

	sourceAudio, err := audioio.LoadRawAudio(*sourcePath)
	if err != nil {
		die("failed to load source audio: %v", err)
	}
	referenceAudio, err := audioio.LoadRawAudio(*referencePath)
	if err != nil {
		die("failed to load reference audio: %v", err)
	}
	ref, err := loadReferenceTimeline(*referenceTimelinePath)
	if err != nil {
		die("failed to load reference timeline: %v", err)
	}

	cfg := align.DefaultConfig()
	if *configPath != "" {
		cfg, err = align.LoadConfigFile(*configPath)
		if err != nil {
			die("failed to load config: %v", err)
		}
	}

	// A -recognition flag without an explicit config selects the assisted
	// engine; an explicit config's engine must then agree with it.
	if *recognitionPath != "" && *configPath == "" {
		cfg.Engine = align.EngineAssisted
	}

	var result timeline.Result
	switch cfg.Engine {
	case align.EngineEmbeddings:
		die("align-bench has no CLI input format for embedding vectors; drive AlignWithEmbeddings from library code instead")
	case align.EngineAssisted:
		if *recognitionPath == "" {
			die("config selects the assisted engine but -recognition was not provided")
		}
		recognition, err := loadRecognitionTimeline(*recognitionPath)
		if err != nil {
			die("failed to load recognition timeline: %v", err)
		}
		result, err = align.AlignWithRecognition(sourceAudio, referenceAudio, ref, recognition, cfg, nil)
		if err != nil {
			die("assisted alignment failed: %v", err)
		}
	default:
		if *recognitionPath != "" {
			die("config selects the plain engine but -recognition was provided; set \"engine\": \"assisted\" in the config")
		}
		result, err = align.AlignPlain(sourceAudio, referenceAudio, ref, cfg, nil)
		if err != nil {
			die("alignment failed: %v", err)
		}
	}

	if *jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(toResultFile(result)); err != nil {
			die("json encode failed: %v", err)
		}
		return
	}

	printResult(result)
}

func printResult(result timeline.Result) {
	fmt.Printf("Words: %d\n", len(result.WordTimeline))
	for _, w := range result.WordTimeline {
		fmt.Printf("  %-16s [%.3f, %.3f]\n", w.Text, w.StartTime, w.EndTime)
		for _, p := range w.Phones {
			fmt.Printf("    %-6s [%.3f, %.3f]\n", p.Symbol, p.StartTime, p.EndTime)
		}
	}
	if result.Confidence != nil {
		fmt.Printf("Confidence: %.4f\n", *result.Confidence)
	}
}

func die(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
