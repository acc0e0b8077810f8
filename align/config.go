package align

import (
	"encoding/json"
	"os"

	"github.com/cwbudde/speechalign/alignerr"
	"github.com/cwbudde/speechalign/mfcc"
	"github.com/cwbudde/speechalign/project"
)

// Engine selects which of the three public orchestrator operations a
// configuration drives (spec §6 "engine").
type Engine int

const (
	EnginePlain Engine = iota
	EngineAssisted
	EngineEmbeddings
)

// Config is the orchestrator's resolved configuration (spec §6's table of
// recognized options).
type Config struct {
	Engine               Engine
	Granularity          []mfcc.Granularity
	WindowDurations      []string // parallel to Granularity; nil selects defaults
	PhoneAlignmentMethod project.PhoneMethod
	MFCC                 mfcc.Config
	CancelEveryRows      int
}

// DefaultConfig returns a plain-engine configuration with granularity left
// empty (pass planning derives it from audio duration) and the default
// MFCC bundle.
func DefaultConfig() Config {
	return Config{
		Engine:               EnginePlain,
		PhoneAlignmentMethod: project.PhoneMethodDTW,
		MFCC:                 mfcc.DefaultConfig(),
	}
}

// ConfigFile is the JSON-tagged wire form of Config, following
// preset/json.go's pointer-optional pattern: every scalar field is a
// pointer so a present-but-zero value is distinguishable from an absent
// one; the list fields are slices, and an empty list counts as absent.
type ConfigFile struct {
	Engine               *string  `json:"engine"`
	Granularity          []string `json:"granularity"`
	WindowDuration       []string `json:"windowDuration"`
	PhoneAlignmentMethod *string  `json:"phoneAlignmentMethod"`
	MFCCWindowDuration   *float64 `json:"mfcc.windowDuration"`
	MFCCHopDuration      *float64 `json:"mfcc.hopDuration"`
	MFCCFFTOrder         *int     `json:"mfcc.fftOrder"`
}

// LoadConfigFile reads and applies a JSON configuration file on top of
// DefaultConfig (preset/json.go's LoadJSON shape).
func LoadConfigFile(path string) (Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, alignerr.New(alignerr.InvalidConfig, "reading config file: %v", err)
	}
	var f ConfigFile
	if err := json.Unmarshal(b, &f); err != nil {
		return Config{}, alignerr.New(alignerr.InvalidConfig, "parsing config file: %v", err)
	}
	cfg := DefaultConfig()
	if err := ApplyFile(&cfg, &f); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ApplyFile applies a parsed ConfigFile onto an existing Config
// (preset/json.go's ApplyFile shape), validating field-by-field.
func ApplyFile(dst *Config, f *ConfigFile) error {
	if f == nil {
		return nil
	}
	if f.Engine != nil {
		switch *f.Engine {
		case "plain":
			dst.Engine = EnginePlain
		case "assisted":
			dst.Engine = EngineAssisted
		case "embeddings":
			dst.Engine = EngineEmbeddings
		default:
			return alignerr.New(alignerr.InvalidConfig, "unknown engine %q", *f.Engine)
		}
	}
	if len(f.Granularity) > 0 {
		gs := make([]mfcc.Granularity, len(f.Granularity))
		for i, s := range f.Granularity {
			g, err := mfcc.ParseGranularity(s)
			if err != nil {
				return err
			}
			gs[i] = g
		}
		dst.Granularity = gs
	}
	if len(f.WindowDuration) > 0 {
		if dst.Granularity != nil && len(f.WindowDuration) != len(dst.Granularity) {
			return alignerr.New(alignerr.InvalidConfig,
				"windowDuration list has %d entries, granularity has %d", len(f.WindowDuration), len(dst.Granularity))
		}
		dst.WindowDurations = f.WindowDuration
	}
	if f.PhoneAlignmentMethod != nil {
		switch *f.PhoneAlignmentMethod {
		case "dtw":
			dst.PhoneAlignmentMethod = project.PhoneMethodDTW
		case "interpolation":
			dst.PhoneAlignmentMethod = project.PhoneMethodInterpolation
		default:
			return alignerr.New(alignerr.InvalidConfig, "unknown phoneAlignmentMethod %q", *f.PhoneAlignmentMethod)
		}
	}
	if f.MFCCWindowDuration != nil {
		dst.MFCC.WindowDuration = *f.MFCCWindowDuration
	}
	if f.MFCCHopDuration != nil {
		dst.MFCC.HopDuration = *f.MFCCHopDuration
	}
	if f.MFCCFFTOrder != nil {
		dst.MFCC.FFTOrder = *f.MFCCFFTOrder
	}
	return nil
}
