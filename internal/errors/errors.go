// Package errors provides error handling for tagkit.
//
// It re-exports github.com/cockroachdb/errors so every package gets stack
// traces, wrapping and user-facing hints from one import:
//
//	if err := s.UpdateTags(ctx, obj, input, opts); err != nil {
//	    return errors.Wrap(err, "update tags")
//	}
//
//	return errors.WithHint(err, "quote parts that contain ':' or '='")
package errors

import (
	crdb "github.com/cockroachdb/errors"
)

// Creation and wrapping
var (
	New   = crdb.New
	Newf  = crdb.Newf
	Wrap  = crdb.Wrap
	Wrapf = crdb.Wrapf
)

// User-facing messages
var (
	WithHint  = crdb.WithHint
	WithHintf = crdb.WithHintf
)

// Inspection
var (
	Is          = crdb.Is
	As          = crdb.As
	GetAllHints = crdb.GetAllHints
)

var (
	// ErrNotFound indicates the requested tag or association does not exist
	ErrNotFound = New("not found")

	// ErrInvalidRequest indicates malformed caller input
	ErrInvalidRequest = New("invalid request")
)

// IsNotFoundError checks if an error is or wraps ErrNotFound.
func IsNotFoundError(err error) bool {
	return err != nil && Is(err, ErrNotFound)
}

// IsInvalidRequestError checks if an error is or wraps ErrInvalidRequest
func IsInvalidRequestError(err error) bool {
	return err != nil && Is(err, ErrInvalidRequest)
}

// NewNotFoundError creates a not-found error with a formatted message
func NewNotFoundError(format string, args ...interface{}) error {
	return Wrapf(ErrNotFound, format, args...)
}

// NewInvalidRequestError creates an invalid-request error with a formatted message
func NewInvalidRequestError(format string, args ...interface{}) error {
	return Wrapf(ErrInvalidRequest, format, args...)
}
