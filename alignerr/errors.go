// Package alignerr defines the error taxonomy shared by every component of
// the alignment core (spec §7). Each kind is a sentinel comparable with
// errors.Is; construction helpers attach a message and, for BandInfeasible,
// a retry hint.
package alignerr

import (
	"errors"
	"fmt"
)

// Kind identifies which branch of the §7 taxonomy an error belongs to.
type Kind int

const (
	// InvalidConfig covers malformed configuration: non-power-of-two FFT
	// order, granularity/window-count mismatch, out-of-range percentage.
	InvalidConfig Kind = iota
	// InvalidAudio covers audio that fails the §6 input contract: wrong
	// sample rate, non-mono, empty, or containing NaN/Inf samples.
	InvalidAudio
	// EmptyInput covers an MFCC (or embedding) sequence with zero frames.
	EmptyInput
	// BandInfeasible covers a cost band that cannot reach the terminal
	// cell; carries a suggested minimum width.
	BandInfeasible
	// ReferenceMismatch covers a reference timeline inconsistent with the
	// reference audio, or a recognition timeline that cannot be matched
	// against reference words.
	ReferenceMismatch
	// Cancelled covers cooperative cancellation firing mid-alignment.
	Cancelled
)

func (k Kind) String() string {
	switch k {
	case InvalidConfig:
		return "InvalidConfig"
	case InvalidAudio:
		return "InvalidAudio"
	case EmptyInput:
		return "EmptyInput"
	case BandInfeasible:
		return "BandInfeasible"
	case ReferenceMismatch:
		return "ReferenceMismatch"
	case Cancelled:
		return "Cancelled"
	default:
		return "Unknown"
	}
}

// Error is the concrete error type returned across the core's public
// operations. It is never wrapped further by callers inside the core —
// propagation is immediate, per §7's "no error is recovered inside the
// core" policy.
type Error struct {
	Kind Kind
	Msg  string

	// SuggestedWidth is set only for BandInfeasible: the minimum window
	// width (in frames) that would let the band reach the terminal cell.
	SuggestedWidth int
}

func (e *Error) Error() string {
	if e.Kind == BandInfeasible && e.SuggestedWidth > 0 {
		return fmt.Sprintf("%s: %s (suggested width >= %d)", e.Kind, e.Msg, e.SuggestedWidth)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

// Is implements the errors.Is sentinel protocol against the Kind
// sentinels below, so callers can write errors.Is(err, alignerr.ErrCancelled)
// regardless of the message or suggested width attached.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// Sentinels for errors.Is comparisons; messages are irrelevant for Is, only
// Kind is compared.
var (
	ErrInvalidConfig     = &Error{Kind: InvalidConfig}
	ErrInvalidAudio      = &Error{Kind: InvalidAudio}
	ErrEmptyInput        = &Error{Kind: EmptyInput}
	ErrBandInfeasible    = &Error{Kind: BandInfeasible}
	ErrReferenceMismatch = &Error{Kind: ReferenceMismatch}
	ErrCancelled         = &Error{Kind: Cancelled}
)

// New constructs a taxonomy error with a formatted message.
func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// NewBandInfeasible constructs a BandInfeasible error carrying the
// suggested minimum width a caller should retry with.
func NewBandInfeasible(suggestedWidth int, format string, args ...any) *Error {
	return &Error{Kind: BandInfeasible, Msg: fmt.Sprintf(format, args...), SuggestedWidth: suggestedWidth}
}

// Of reports whether err is an *Error of the given kind.
func Of(err error, kind Kind) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Kind == kind
}
