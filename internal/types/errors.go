package types

import (
	"fmt"
)

// Kind classifies a decode failure.
type Kind int

const (
	// KindEOF means the stream ended in the middle of a field.
	KindEOF Kind = iota + 1
	// KindInvalidData means a structural rule of the format was violated.
	KindInvalidData
	// KindInvalidUTF8 means a fixed-size text slot did not hold valid UTF-8.
	KindInvalidUTF8
	// KindNotSupported means the version tag or a grammar feature has no decoder.
	KindNotSupported
	// KindResourceLimit means the allocation budget of the session was exhausted.
	// It matches ErrInvalidData as well as ErrResourceLimit.
	KindResourceLimit
	// KindCancelled means the caller's context was done before a read.
	KindCancelled
	// KindAlreadyConsumed means Load was called on a session that already ran.
	KindAlreadyConsumed
	// KindInternalDispatch means the version table is misconfigured.
	KindInternalDispatch
	// KindIO means the underlying stream failed for a reason other than EOF.
	KindIO
)

// String returns a short name for the kind.
func (k Kind) String() string {
	switch k {
	case KindEOF:
		return "unexpected end of stream"
	case KindInvalidData:
		return "invalid data"
	case KindInvalidUTF8:
		return "invalid UTF-8"
	case KindNotSupported:
		return "not supported"
	case KindResourceLimit:
		return "resource limit exceeded"
	case KindCancelled:
		return "cancelled"
	case KindAlreadyConsumed:
		return "session already consumed"
	case KindInternalDispatch:
		return "internal dispatch error"
	case KindIO:
		return "i/o error"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Error is returned for every failure while decoding a tablature stream.
//
// Use errors.Is with the Err* sentinels to test the kind:
//
//	if errors.Is(err, tablature.ErrNotSupported) {
//		// unknown or unimplemented revision
//	}
type Error struct {
	Err    error  // Underlying cause, if any
	What   string // Field or stage being decoded
	Reason string
	Offset int64 // Stream offset where the field started
	Kind   Kind
}

func (e *Error) Error() string {
	msg := e.Kind.String()
	if e.What != "" {
		msg = fmt.Sprintf("%s at offset %d while reading %s", msg, e.Offset, e.What)
	}
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is a sentinel of the same kind.
// A resource limit error is also an invalid data error.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || t.What != "" || t.Reason != "" || t.Err != nil {
		return false
	}
	if t.Kind == e.Kind {
		return true
	}
	return t.Kind == KindInvalidData && e.Kind == KindResourceLimit
}

// Sentinels for errors.Is comparisons.
var (
	ErrEOF              = &Error{Kind: KindEOF}
	ErrInvalidData      = &Error{Kind: KindInvalidData}
	ErrInvalidUTF8      = &Error{Kind: KindInvalidUTF8}
	ErrNotSupported     = &Error{Kind: KindNotSupported}
	ErrResourceLimit    = &Error{Kind: KindResourceLimit}
	ErrCancelled        = &Error{Kind: KindCancelled}
	ErrAlreadyConsumed  = &Error{Kind: KindAlreadyConsumed}
	ErrInternalDispatch = &Error{Kind: KindInternalDispatch}
	ErrIO               = &Error{Kind: KindIO}
)

// Warning represents a non-fatal issue encountered during decoding.
//
// Warnings record anomalies the grammar tolerates, such as an n-tuplet
// value outside the known set. The offending value is discarded and
// decoding continues. Warnings are collected in Song.Warnings.
type Warning struct {
	// Stage where the warning occurred
	Stage string // "beat", "bend", ...

	// Warning message
	Message string

	// Stream offset where the issue occurred (0 if not applicable)
	Offset int64
}

// String returns a human-readable warning message.
func (w Warning) String() string {
	if w.Offset > 0 {
		return fmt.Sprintf("%s (at offset %d): %s", w.Stage, w.Offset, w.Message)
	}
	return fmt.Sprintf("%s: %s", w.Stage, w.Message)
}
