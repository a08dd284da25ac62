package tablature

import (
	"github.com/simonhull/tablature/internal/types"
)

// Error is the error returned by every failed load.
// Re-exporting from internal/types to maintain public API.
type Error = types.Error

// Kind classifies an Error.
type Kind = types.Kind

// Error kinds.
const (
	KindEOF              = types.KindEOF
	KindInvalidData      = types.KindInvalidData
	KindInvalidUTF8      = types.KindInvalidUTF8
	KindNotSupported     = types.KindNotSupported
	KindResourceLimit    = types.KindResourceLimit
	KindCancelled        = types.KindCancelled
	KindAlreadyConsumed  = types.KindAlreadyConsumed
	KindInternalDispatch = types.KindInternalDispatch
	KindIO               = types.KindIO
)

// Sentinels for errors.Is comparisons.
//
//	if errors.Is(err, tablature.ErrNotSupported) {
//		// unknown or unimplemented revision
//	}
var (
	ErrEOF              = types.ErrEOF
	ErrInvalidData      = types.ErrInvalidData
	ErrInvalidUTF8      = types.ErrInvalidUTF8
	ErrNotSupported     = types.ErrNotSupported
	ErrResourceLimit    = types.ErrResourceLimit
	ErrCancelled        = types.ErrCancelled
	ErrAlreadyConsumed  = types.ErrAlreadyConsumed
	ErrInternalDispatch = types.ErrInternalDispatch
	ErrIO               = types.ErrIO
)

// Warning is an alias to types.Warning.
// Re-exporting from internal/types to maintain public API.
type Warning = types.Warning
