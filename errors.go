package bpr5

import (
	"fmt"

	"github.com/mewkiz/pkg/errutil"
)

// Kind classifies a codec-level error so callers can distinguish structural
// problems from I/O failures without string matching.
type Kind int

const (
	// KindMalformedContainer covers bad magic, truncated headers, truncated
	// varints, and block lengths that overrun the remaining input.
	KindMalformedContainer Kind = iota
	// KindResidualUnderflow covers a block's decompressed stream ending
	// before all of its rows are consumed, or leaving unconsumed bytes.
	KindResidualUnderflow
	// KindUnknownPredictor covers a predictor id byte outside {0,1,2,3}.
	KindUnknownPredictor
	// KindUnknownMode covers a delta mode byte outside {0,1}.
	KindUnknownMode
	// KindTextParse covers a token that is not a valid decimal integer.
	KindTextParse
	// KindIO covers an underlying read or write failure.
	KindIO
)

func (k Kind) String() string {
	switch k {
	case KindMalformedContainer:
		return "malformed container"
	case KindResidualUnderflow:
		return "residual underflow"
	case KindUnknownPredictor:
		return "unknown predictor"
	case KindUnknownMode:
		return "unknown delta mode"
	case KindTextParse:
		return "text parse error"
	case KindIO:
		return "I/O error"
	default:
		return "unknown error"
	}
}

// Error is returned by every exported bpr5 operation. Stage names the
// pipeline stage that detected the problem (e.g. "container header",
// "block compressor", "text parser: line 17"), so every error names where it
// was raised.
type Error struct {
	Kind  Kind
	Stage string
	Err   error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("bpr5: %s: %s", e.Stage, e.Kind)
	}
	return fmt.Sprintf("bpr5: %s: %s: %v", e.Stage, e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// errorf builds a structural Error (no underlying cause) with a formatted
// message.
func errorf(kind Kind, stage, format string, a ...interface{}) error {
	return &Error{Kind: kind, Stage: stage, Err: fmt.Errorf(format, a...)}
}

// wrapErr wraps a non-nil underlying error (typically from an io.Reader or
// io.Writer) with position information via errutil, tagging it with kind and
// stage. Returns nil if err is nil, following errutil.Err's own convention of
// only being called from inside an "if err != nil" guard.
func wrapErr(kind Kind, stage string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Stage: stage, Err: errutil.Err(err)}
}
